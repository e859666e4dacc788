package interpreter

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"lineterp/pkg/syntax"
	"lineterp/pkg/text"
)

// operators in scan order. The first one found at top level splits the
// expression and both sides are evaluated recursively: 10-2-3 is 10-(2-3)
// and 2+3*4 is 2+(3*4).
const operators = "+-*/"

// eval evaluates an expression without spaces
func (i *Interpreter) eval(ctx context.Context, expr string) (Value, error) {
	if expr == "" {
		return Value{}, newError(ErrSyntax, "missing operand")
	}

	if call, ok := syntax.ParseCall(expr); ok {
		return i.callExpr(ctx, call)
	}

	for n := 0; n < len(operators); n++ {
		op := operators[n]
		at := operatorIndex(expr, op)
		if at < 0 {
			continue
		}

		left, err := i.eval(ctx, expr[:at])
		if err != nil {
			return Value{}, err
		}
		right, err := i.eval(ctx, expr[at+1:])
		if err != nil {
			return Value{}, err
		}
		return arithmetic(op, left, right)
	}

	return i.operand(expr)
}

// operatorIndex finds the first top-level binary use of op. A '+' or '-'
// at the start of the expression or right after another operator is a
// sign, not an operator.
func operatorIndex(expr string, op byte) int {
	from := 0
	for from < len(expr) {
		at := text.Index(expr[from:], op)
		if at < 0 {
			return -1
		}
		at += from

		sign := at == 0 || ((op == '+' || op == '-') && strings.IndexByte(operators, expr[at-1]) >= 0)
		if !sign {
			return at
		}
		from = at + 1
	}
	return -1
}

// operand evaluates a literal or a variable reference
func (i *Interpreter) operand(s string) (Value, error) {
	switch {
	case syntax.IsIntLiteral(s):
		n, ok := syntax.ParseInt(s)
		if !ok {
			return Value{}, newError(ErrSyntax, "malformed number %q", s)
		}
		return IntValue(n), nil

	case s[0] == '\'':
		c, err := syntax.ParseChar(s)
		if err != nil {
			return Value{}, newError(ErrSyntax, "%v", err)
		}
		return CharValue(c), nil

	case s[0] == '"':
		t, err := syntax.ParseText(s)
		if err != nil {
			return Value{}, newError(ErrSyntax, "%v", err)
		}
		return TextValue(t), nil

	case syntax.IsIdent(s):
		v, err := i.lookupVar(s)
		if err != nil {
			return Value{}, err
		}
		return v.Value, nil
	}

	return Value{}, newError(ErrSyntax, "malformed expression %q", s)
}

// callExpr evaluates a call's arguments and invokes the function
func (i *Interpreter) callExpr(ctx context.Context, c syntax.Call) (Value, error) {
	fn, ok := i.funcIndex[c.Name]
	if !ok {
		return Value{}, i.unknownName("function", c.Name, i.functionNames())
	}

	if len(c.Args) != len(fn.Params) {
		return Value{}, newError(ErrArity, "%s takes %d arguments, got %d", fn.Name, len(fn.Params), len(c.Args))
	}

	args := make([]Value, len(c.Args))
	for n, arg := range c.Args {
		v, err := i.eval(ctx, arg)
		if err != nil {
			return Value{}, err
		}
		args[n] = v
	}

	return i.call(ctx, fn, args)
}

// call pushes a frame for fn, binds the arguments and runs the body.
func (i *Interpreter) call(ctx context.Context, fn *syntax.Function, args []Value) (Value, error) {
	if len(args) != len(fn.Params) {
		return Value{}, newError(ErrArity, "%s takes %d arguments, got %d", fn.Name, len(fn.Params), len(args))
	}

	frame := newFrame(fn, i.limits.MaxVars)
	for n, p := range fn.Params {
		if args[n].Type != p.Type {
			return Value{}, newError(ErrType, "argument %d of %s must be %s, got %s", n+1, fn.Name, p.Type, args[n].Type)
		}
		if err := frame.Locals.declare(&Variable{Name: p.Name, Type: p.Type, Value: args[n]}); err != nil {
			return Value{}, err
		}
	}

	if err := i.stack.Push(frame); err != nil {
		return Value{}, wrapError(ErrLimit, err, "call stack overflow calling %s (max depth %d)", fn.Name, i.stack.Capacity())
	}
	log.Debug("Call", "function", fn.Name, "depth", i.stack.Size())

	err := i.runRange(ctx, fn.Span.BodyStart(), fn.Span.BodyEnd())
	i.stack.Pop()
	if err != nil {
		return Value{}, err
	}

	if !frame.Returned {
		if fn.Return != syntax.Void {
			return Value{}, &Error{
				Kind:     ErrRuntime,
				Line:     fn.Span.Close + 1,
				Text:     i.lines[fn.Span.Close],
				Function: fn.Name,
				Msg:      fmt.Sprintf("%s ended without returning a %s value", fn.Name, fn.Return),
			}
		}
		return Zero(syntax.Void), nil
	}

	if frame.Return.Type != fn.Return {
		return Value{}, newError(ErrType, "%s must return %s, got %s", fn.Name, fn.Return, frame.Return.Type)
	}

	log.Debug("Return", "function", fn.Name, "value", frame.Return.Literal())

	return frame.Return, nil
}

// condition evaluates a comparison, or the truthiness of a lone expression.
// An empty condition is true.
func (i *Interpreter) condition(ctx context.Context, cond string) (bool, error) {
	if cond == "" {
		return true, nil
	}

	at := text.IndexAny(cond, "<>=!")
	if at < 0 {
		v, err := i.eval(ctx, cond)
		if err != nil {
			return false, err
		}
		return v.Truthy()
	}

	op := cond[at : at+1]
	if at+1 < len(cond) && cond[at+1] == '=' {
		op = cond[at : at+2]
	}
	if op == "=" || op == "!" {
		return false, newError(ErrSyntax, "invalid comparison %q", cond)
	}

	left, right := cond[:at], cond[at+len(op):]
	if left == "" || right == "" {
		return false, newError(ErrSyntax, "comparison %q needs two operands", cond)
	}

	a, err := i.eval(ctx, left)
	if err != nil {
		return false, err
	}
	b, err := i.eval(ctx, right)
	if err != nil {
		return false, err
	}

	return compare(op, a, b)
}
