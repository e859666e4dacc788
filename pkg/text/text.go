// Package text holds the quote-aware line utilities used before and during
// interpretation: whitespace and comment stripping, statement truncation and
// splitting on a delimiter.
package text

import (
	"fmt"
	"strings"
)

// keywords after which a single space is significant ("int x", "return x").
var keywords = []string{"void", "int", "char", "string", "return"}

// LineTooLongError is returned by CleanAll when a cleaned line does not fit
// the line buffer.
type LineTooLongError struct {
	Line   int // 1-based
	Length int
	Max    int
}

func (e *LineTooLongError) Error() string {
	return fmt.Sprintf("line %d is %d characters long, the limit is %d", e.Line, e.Length, e.Max)
}

// walk calls fn for every byte of src that sits outside quotes and outside
// parentheses. Returning false from fn stops the walk.
func walk(src string, fn func(i int, c byte) bool) {
	var quote byte
	depth := 0

	for i := 0; i < len(src); i++ {
		c := src[i]

		if quote != 0 {
			switch c {
			case '\\':
				i++
			case quote:
				quote = 0
			}
			continue
		}

		if depth == 0 && c != '\'' && c != '"' {
			if !fn(i, c) {
				return
			}
		}

		switch c {
		case '\'', '"':
			quote = c
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		}
	}
}

// Index returns the index of the first sep outside quotes and parentheses,
// or -1.
func Index(src string, sep byte) int {
	found := -1
	walk(src, func(i int, c byte) bool {
		if c == sep {
			found = i
			return false
		}
		return true
	})
	return found
}

// IndexAny is like Index but matches any byte of chars.
func IndexAny(src, chars string) int {
	found := -1
	walk(src, func(i int, c byte) bool {
		if strings.IndexByte(chars, c) >= 0 {
			found = i
			return false
		}
		return true
	})
	return found
}

// Split cuts src at every sep outside quotes and parentheses. Empty pieces
// are dropped, so "a,,b" yields ["a" "b"].
func Split(src string, sep byte) []string {
	var parts []string
	start := 0

	add := func(end int) {
		if end > start {
			parts = append(parts, src[start:end])
		}
	}

	walk(src, func(i int, c byte) bool {
		if c == sep {
			add(i)
			start = i + 1
		}
		return true
	})
	add(len(src))

	return parts
}

// Clean normalizes one raw script line: tabs are dropped, spaces outside
// quotes are dropped unless they follow a type or return keyword, everything
// after the first unquoted ';' (except in a for( header) or '//' is discarded.
func Clean(line string) string {
	var b strings.Builder
	var quote byte

	for i := 0; i < len(line); i++ {
		c := line[i]

		if quote != 0 {
			b.WriteByte(c)
			switch c {
			case '\\':
				if i+1 < len(line) {
					i++
					b.WriteByte(line[i])
				}
			case quote:
				quote = 0
			}
			continue
		}

		switch c {
		case '\t':
			continue
		case ' ':
			if followsKeyword(line[:i]) {
				b.WriteByte(c)
			}
			continue
		case '\'', '"':
			quote = c
		}
		b.WriteByte(c)
	}

	cleaned := b.String()

	if i := commentStart(cleaned); i >= 0 {
		cleaned = cleaned[:i]
	}

	if !strings.HasPrefix(cleaned, "for(") {
		if i := unquotedIndex(cleaned, ';'); i >= 0 {
			cleaned = cleaned[:i]
		}
	}

	return strings.TrimRight(cleaned, " ")
}

// CleanAll cleans every line and enforces the significant length limit,
// which is one less than the line buffer size. With truncate set, oversize
// lines are cut instead of rejected.
func CleanAll(lines []string, maxLineLength int, truncate bool) ([]string, error) {
	limit := maxLineLength - 1
	out := make([]string, len(lines))

	for i, raw := range lines {
		line := Clean(raw)
		if len(line) > limit {
			if !truncate {
				return nil, &LineTooLongError{Line: i + 1, Length: len(line), Max: limit}
			}
			line = line[:limit]
		}
		out[i] = line
	}

	return out, nil
}

// followsKeyword reports whether prefix ends with a keyword that starts a
// word.
func followsKeyword(prefix string) bool {
	for _, kw := range keywords {
		if !strings.HasSuffix(prefix, kw) {
			continue
		}
		before := len(prefix) - len(kw)
		if before == 0 || !isIdentByte(prefix[before-1]) {
			return true
		}
	}
	return false
}

func isIdentByte(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

// unquotedIndex is Index without parenthesis tracking.
func unquotedIndex(src string, sep byte) int {
	var quote byte
	for i := 0; i < len(src); i++ {
		c := src[i]
		if quote != 0 {
			switch c {
			case '\\':
				i++
			case quote:
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"':
			quote = c
		case sep:
			return i
		}
	}
	return -1
}

// commentStart returns the index of the first unquoted "//", or -1.
func commentStart(src string) int {
	for from := 0; from < len(src); {
		i := unquotedIndex(src[from:], '/')
		if i < 0 {
			return -1
		}
		i += from
		if i+1 < len(src) && src[i+1] == '/' {
			return i
		}
		from = i + 1
	}
	return -1
}
