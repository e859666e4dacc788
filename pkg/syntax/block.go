package syntax

import (
	"errors"
	"fmt"
	"strings"

	"lineterp/pkg/text"
)

// LineError ties a syntax error to a 0-based line index.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line+1, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// Span is the line range of a braced block. Open equals Header when the
// opening brace ends the header line.
type Span struct {
	Header int // line holding the if/for/else/function header
	Open   int // line holding the opening brace
	Close  int // line holding the matching closing brace
}

// BodyStart is the first line inside the braces
func (s Span) BodyStart() int { return s.Open + 1 }

// BodyEnd is the last line inside the braces
func (s Span) BodyEnd() int { return s.Close - 1 }

// IfBlock describes an if or if/else statement.
type IfBlock struct {
	Condition string
	Then      Span
	Else      *Span // nil without an else branch
}

// End is the last line belonging to the statement
func (b IfBlock) End() int {
	if b.Else != nil {
		return b.Else.Close
	}
	return b.Then.Close
}

// ForBlock describes a for statement. Init and Step are already rewritten
// from the increment/decrement shorthand.
type ForBlock struct {
	Init      string
	Condition string
	Step      string
	Body      Span
}

// End is the last line belonging to the statement
func (b ForBlock) End() int {
	return b.Body.Close
}

func opensBlock(line string) bool {
	return strings.HasPrefix(line, "{") || strings.HasSuffix(line, "{")
}

func closesBlock(line string) bool {
	return strings.HasPrefix(line, "}")
}

// FindSpan locates the braces of the block introduced at line header. The
// opening brace either ends the header line or starts the first non-empty
// line after it. Depth rises on every line that starts or ends with '{' and
// falls on every line that starts with '}'; the block closes when it returns
// to zero.
func FindSpan(lines []string, header int) (Span, error) {
	if header < 0 || header >= len(lines) {
		return Span{}, fmt.Errorf("block header %d outside the script", header+1)
	}

	span := Span{Header: header, Open: -1, Close: -1}

	if strings.HasSuffix(lines[header], "{") {
		span.Open = header
	} else {
		for i := header + 1; i < len(lines); i++ {
			if lines[i] == "" {
				continue
			}
			if strings.HasPrefix(lines[i], "{") {
				span.Open = i
			}
			break
		}
	}

	if span.Open < 0 {
		return Span{}, &LineError{Line: header, Err: errors.New("missing opening brace")}
	}

	depth := 1
	for i := span.Open + 1; i < len(lines); i++ {
		if closesBlock(lines[i]) {
			depth--
			if depth == 0 {
				span.Close = i
				return span, nil
			}
		}
		if opensBlock(lines[i]) {
			depth++
		}
	}

	return Span{}, &LineError{Line: header, Err: errors.New("missing closing brace")}
}

// expectBareClose rejects text after the closing brace of a block.
func expectBareClose(lines []string, span Span) error {
	if lines[span.Close] != "}" {
		return &LineError{Line: span.Close, Err: fmt.Errorf("unexpected %q after closing brace", lines[span.Close][1:])}
	}
	return nil
}

// headerArgs returns the text inside the outer parentheses of a header line
// such as "if(x>1){".
func headerArgs(line, keyword string) (string, error) {
	h := strings.TrimSuffix(line, "{")
	if !strings.HasPrefix(h, keyword+"(") || !strings.HasSuffix(h, ")") {
		return "", fmt.Errorf("malformed %s header %q", keyword, line)
	}
	return h[len(keyword)+1 : len(h)-1], nil
}

func isElse(s string) bool {
	return s == "else" || s == "else{"
}

// FindIf parses the if statement at line header. An else branch follows
// when the closing line reads "}else" or "}else{", or when the next line is
// "else" or "else{".
func FindIf(lines []string, header int) (IfBlock, error) {
	cond, err := headerArgs(lines[header], "if")
	if err != nil {
		return IfBlock{}, &LineError{Line: header, Err: err}
	}
	if cond == "" {
		return IfBlock{}, &LineError{Line: header, Err: errors.New("empty condition")}
	}

	then, err := FindSpan(lines, header)
	if err != nil {
		return IfBlock{}, err
	}
	block := IfBlock{Condition: cond, Then: then}

	elseHeader := -1
	switch tail := strings.TrimPrefix(lines[then.Close], "}"); {
	case isElse(tail):
		elseHeader = then.Close
	case tail != "":
		return IfBlock{}, &LineError{Line: then.Close, Err: fmt.Errorf("unexpected %q after closing brace", tail)}
	case then.Close+1 < len(lines) && isElse(lines[then.Close+1]):
		elseHeader = then.Close + 1
	}

	if elseHeader >= 0 {
		span, err := FindSpan(lines, elseHeader)
		if err != nil {
			return IfBlock{}, err
		}
		if err := expectBareClose(lines, span); err != nil {
			return IfBlock{}, err
		}
		block.Else = &span
	}

	return block, nil
}

// FindFor parses the for statement at line header.
func FindFor(lines []string, header int) (ForBlock, error) {
	args, err := headerArgs(lines[header], "for")
	if err != nil {
		return ForBlock{}, &LineError{Line: header, Err: err}
	}

	first := text.Index(args, ';')
	second := -1
	if first >= 0 {
		if j := text.Index(args[first+1:], ';'); j >= 0 {
			second = first + 1 + j
		}
	}
	if second < 0 {
		return ForBlock{}, &LineError{Line: header, Err: fmt.Errorf("for header needs init;condition;step, got %q", args)}
	}

	body, err := FindSpan(lines, header)
	if err != nil {
		return ForBlock{}, err
	}
	if err := expectBareClose(lines, body); err != nil {
		return ForBlock{}, err
	}

	return ForBlock{
		Init:      RewriteIncDec(args[:first]),
		Condition: args[first+1 : second],
		Step:      RewriteIncDec(args[second+1:]),
		Body:      body,
	}, nil
}
