package interpreter

import (
	"errors"
	"fmt"

	"lineterp/pkg/syntax"
)

// Kind classifies a fatal error. Kinds are errors themselves so callers can
// test with errors.Is(err, interpreter.ErrType).
type Kind int

const (
	ErrSyntax  Kind = iota + 1 // unrecognized or malformed line or block
	ErrName                    // unknown variable or function
	ErrType                    // type mismatch
	ErrArity                   // wrong number of arguments
	ErrLimit                   // a fixed capacity was exceeded
	ErrRuntime                 // division by zero, missing return, step limit, cancellation
)

var kindNames = map[Kind]string{
	ErrSyntax:  "syntax error",
	ErrName:    "name error",
	ErrType:    "type error",
	ErrArity:   "arity error",
	ErrLimit:   "limit exceeded",
	ErrRuntime: "runtime error",
}

func (k Kind) Error() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("error kind %d", int(k))
}

// Error is the single fatal error of the interpreter. Execution stops at the
// first one.
type Error struct {
	Kind     Kind
	Line     int    // 1-based script line, 0 when not tied to a line
	Text     string // cleaned text of that line
	Function string // function executing when the error occurred
	Msg      string
	Err      error // underlying cause, if any
}

func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message())
	}
	return e.Message()
}

// Message is the error without its line number
func (e *Error) Message() string {
	msg := fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is matches the error's Kind
func (e *Error) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.Kind
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func wrapError(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}

// syntaxError converts an error from the syntax package, keeping the line it
// points at.
func syntaxError(err error) *Error {
	var lerr *syntax.LineError
	if errors.As(err, &lerr) {
		return &Error{Kind: ErrSyntax, Line: lerr.Line + 1, Msg: lerr.Err.Error()}
	}
	return &Error{Kind: ErrSyntax, Msg: err.Error()}
}
