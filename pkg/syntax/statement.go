package syntax

import (
	"fmt"
	"strings"

	"lineterp/pkg/text"
)

type StmtKind int

const (
	StmtEmpty   StmtKind = iota // blank line
	StmtReturn                  // return [expr]
	StmtSystem                  // system(expr)
	StmtDeclare                 // int|char|string name[=expr][, ...]
	StmtIf                      // if (cond) ...
	StmtFor                     // for (init; cond; step) ...
	StmtAssign                  // name=expr, name++, name--
	StmtCall                    // name(args)
	StmtUnknown
)

var stmtNames = [...]string{
	StmtEmpty:   "empty",
	StmtReturn:  "return",
	StmtSystem:  "system",
	StmtDeclare: "declare",
	StmtIf:      "if",
	StmtFor:     "for",
	StmtAssign:  "assign",
	StmtCall:    "call",
	StmtUnknown: "unknown",
}

func (k StmtKind) String() string {
	if int(k) < len(stmtNames) {
		return stmtNames[k]
	}
	return fmt.Sprintf("StmtKind(%d)", int(k))
}

// DeclItem is one name of a declaration statement. Init is empty when the
// variable takes the zero value of its type.
type DeclItem struct {
	Name string
	Init string
}

type Declaration struct {
	Type  Type
	Items []DeclItem
}

// Statement is the classified shape of one cleaned line.
type Statement struct {
	Kind   StmtKind
	Expr   string      // return value, system argument, assigned value or call text
	Target string      // assignment destination
	Decl   Declaration // StmtDeclare only
}

// Classify recognizes the statement on a cleaned line. Recognizers run in
// dispatch order: empty, return, system, declaration, if, for,
// increment/decrement, assignment, call. A line matching none of them is
// StmtUnknown; a line that matches a shape but is malformed returns an error.
func Classify(line string) (Statement, error) {
	if line == "" {
		return Statement{Kind: StmtEmpty}, nil
	}

	if expr, ok := returnExpr(line); ok {
		return Statement{Kind: StmtReturn, Expr: expr}, nil
	}

	if m := systemRegex.FindStringSubmatch(line); m != nil {
		return Statement{Kind: StmtSystem, Expr: m[1]}, nil
	}

	if decl, ok, err := ParseDeclaration(line); ok || err != nil {
		return Statement{Kind: StmtDeclare, Decl: decl}, err
	}

	if ifHeaderRegex.MatchString(line) {
		return Statement{Kind: StmtIf}, nil
	}

	if forHeaderRegex.MatchString(line) {
		return Statement{Kind: StmtFor}, nil
	}

	line = RewriteIncDec(line)
	if m := assignRegex.FindStringSubmatch(line); m != nil && !strings.HasPrefix(m[2], "=") {
		if m[2] == "" {
			return Statement{}, fmt.Errorf("missing value in assignment to %s", m[1])
		}
		return Statement{Kind: StmtAssign, Target: m[1], Expr: m[2]}, nil
	}

	if _, ok := ParseCall(line); ok {
		return Statement{Kind: StmtCall, Expr: line}, nil
	}

	return Statement{Kind: StmtUnknown}, nil
}

// returnExpr matches "return" followed by nothing or by a non-name character.
func returnExpr(line string) (string, bool) {
	if !strings.HasPrefix(line, "return") {
		return "", false
	}
	rest := line[len("return"):]
	if rest != "" && isIdentByte(rest[0]) {
		return "", false
	}
	return strings.TrimSpace(rest), true
}

// ParseDeclaration recognizes "type name[=expr][,name[=expr]...]". ok is
// false when the line is not a declaration; a declaration with a bad item is
// reported as an error.
func ParseDeclaration(line string) (Declaration, bool, error) {
	m := declRegex.FindStringSubmatch(line)
	if m == nil {
		return Declaration{}, false, nil
	}

	rest := m[2]
	// parentheses before the first '=' mean a function header or call
	if i := strings.IndexAny(rest, "=()"); i >= 0 && rest[i] != '=' {
		return Declaration{}, false, nil
	}

	typ, _ := ParseType(m[1])
	decl := Declaration{Type: typ}

	items := text.Split(rest, ',')
	if len(items) == 0 {
		return decl, true, fmt.Errorf("declaration of %s without a name", typ)
	}

	for _, item := range items {
		name, init, hasInit := strings.Cut(item, "=")
		if !IsIdent(name) {
			return decl, true, fmt.Errorf("invalid variable name %q", name)
		}
		if hasInit && init == "" {
			return decl, true, fmt.Errorf("missing initializer for %s", name)
		}
		decl.Items = append(decl.Items, DeclItem{Name: name, Init: init})
	}

	return decl, true, nil
}

// RewriteIncDec turns "x++" into "x=x+1" and "x--" into "x=x-1". Other
// input is returned unchanged.
func RewriteIncDec(s string) string {
	m := incDecRegex.FindStringSubmatch(s)
	if m == nil {
		return s
	}
	if m[2] == "++" {
		return m[1] + "=" + m[1] + "+1"
	}
	return m[1] + "=" + m[1] + "-1"
}

// Call is a parsed call expression name(arg, ...).
type Call struct {
	Name string
	Args []string
}

// ParseCall recognizes an expression that is entirely one call: a name, an
// opening parenthesis, and its matching closing parenthesis as the last
// character.
func ParseCall(expr string) (Call, bool) {
	m := callNameRegex.FindStringSubmatch(expr)
	if m == nil {
		return Call{}, false
	}

	open := len(m[1])
	if closeParen(expr, open) != len(expr)-1 {
		return Call{}, false
	}

	return Call{
		Name: m[1],
		Args: text.Split(expr[open+1:len(expr)-1], ','),
	}, true
}

// closeParen returns the index of the parenthesis matching the one at open,
// skipping quoted text, or -1.
func closeParen(s string, open int) int {
	depth := 0
	var quote byte
	for i := open; i < len(s); i++ {
		c := s[i]
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
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func isIdentByte(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || isDigit(c)
}
