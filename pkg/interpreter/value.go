package interpreter

import (
	"strconv"
	"strings"

	"lineterp/pkg/syntax"
)

// Value represents a typed value in the interpreter. It owns its payload:
// copying a Value copies the text.
type Value struct {
	Type syntax.Type
	Int  int64
	Char byte
	Text string
}

// IntValue creates a new integer Value.
func IntValue(n int64) Value {
	return Value{Type: syntax.Int, Int: n}
}

// CharValue creates a new character Value.
func CharValue(c byte) Value {
	return Value{Type: syntax.Char, Char: c}
}

// TextValue creates a new string Value.
func TextValue(s string) Value {
	return Value{Type: syntax.String, Text: s}
}

// Zero returns the zero value of t: 0, '\0' or "".
func Zero(t syntax.Type) Value {
	return Value{Type: t}
}

// String renders the value the way it is appended to text: integers in
// decimal, a character as itself (NUL as nothing), text unchanged.
func (v Value) String() string {
	switch v.Type {
	case syntax.Int:
		return strconv.FormatInt(v.Int, 10)
	case syntax.Char:
		if v.Char == 0 {
			return ""
		}
		return string([]byte{v.Char})
	case syntax.String:
		return v.Text
	default:
		return "void"
	}
}

// Literal renders the value in script literal syntax.
func (v Value) Literal() string {
	switch v.Type {
	case syntax.Char:
		q := strconv.QuoteRuneToASCII(rune(v.Char))
		return "'" + q[1:len(q)-1] + "'"
	case syntax.String:
		return strconv.Quote(v.Text)
	default:
		return v.String()
	}
}

// numeric returns the integer view of int and char values.
func (v Value) numeric() (int64, bool) {
	switch v.Type {
	case syntax.Int:
		return v.Int, true
	case syntax.Char:
		return int64(v.Char), true
	default:
		return 0, false
	}
}

// Truthy is the condition value of a lone expression: non-zero numbers and
// non-empty text are true.
func (v Value) Truthy() (bool, error) {
	if n, ok := v.numeric(); ok {
		return n != 0, nil
	}
	if v.Type == syntax.String {
		return v.Text != "", nil
	}
	return false, newError(ErrType, "%s value used as a condition", v.Type)
}

// convert applies the assignment coercions to store v in a variable of
// type dst: int and char convert into each other, anything but void
// converts to text.
func convert(dst syntax.Type, v Value) (Value, error) {
	switch dst {
	case syntax.Int:
		if n, ok := v.numeric(); ok {
			return IntValue(n), nil
		}
	case syntax.Char:
		if n, ok := v.numeric(); ok {
			return CharValue(byte(n)), nil
		}
	case syntax.String:
		if v.Type != syntax.Void {
			return TextValue(v.String()), nil
		}
	}

	return Value{}, newError(ErrType, "can't assign %s value to %s variable", v.Type, dst)
}

// arithmetic evaluates a op b. Text takes part only in '+', where the other
// operand is formatted and concatenated. char op char stays a char (modulo
// 256); any other numeric mix is an int.
func arithmetic(op byte, a, b Value) (Value, error) {
	if a.Type == syntax.Void || b.Type == syntax.Void {
		return Value{}, newError(ErrType, "void value used in expression")
	}

	if a.Type == syntax.String || b.Type == syntax.String {
		if op != '+' {
			return Value{}, newError(ErrType, "operator %c is not defined for %s and %s", op, a.Type, b.Type)
		}
		return TextValue(a.String() + b.String()), nil
	}

	x, _ := a.numeric()
	y, _ := b.numeric()

	var n int64
	switch op {
	case '+':
		n = x + y
	case '-':
		n = x - y
	case '*':
		n = x * y
	case '/':
		if y == 0 {
			return Value{}, newError(ErrRuntime, "division by zero")
		}
		n = x / y
	default:
		return Value{}, newError(ErrSyntax, "unknown operator %c", op)
	}

	if a.Type == syntax.Char && b.Type == syntax.Char {
		return CharValue(byte(n)), nil
	}
	return IntValue(n), nil
}

// compare evaluates a relational operator: numerically for int and char,
// lexicographically for text.
func compare(op string, a, b Value) (bool, error) {
	var c int

	x, xok := a.numeric()
	y, yok := b.numeric()
	switch {
	case xok && yok:
		switch {
		case x < y:
			c = -1
		case x > y:
			c = 1
		}
	case a.Type == syntax.String && b.Type == syntax.String:
		c = strings.Compare(a.Text, b.Text)
	default:
		return false, newError(ErrType, "can't compare %s with %s", a.Type, b.Type)
	}

	switch op {
	case ">":
		return c > 0, nil
	case "<":
		return c < 0, nil
	case ">=":
		return c >= 0, nil
	case "<=":
		return c <= 0, nil
	case "==":
		return c == 0, nil
	case "!=":
		return c != 0, nil
	}

	return false, newError(ErrSyntax, "unknown comparison operator %q", op)
}
