package interpreter

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"lineterp/pkg/syntax"
)

// discoverFunctions fills the function registry
func (i *Interpreter) discoverFunctions() error {
	fns, err := syntax.FindFunctions(i.lines)
	if err != nil {
		return i.atSource(syntaxError(err))
	}

	for _, fn := range fns {
		if len(i.functions) >= i.limits.MaxFunctions {
			return i.atSource(&Error{
				Kind: ErrLimit,
				Line: fn.Span.Header + 1,
				Msg:  fmt.Sprintf("too many functions (max %d) at %s", i.limits.MaxFunctions, fn.Name),
			})
		}

		if err := i.checkFunction(fn); err != nil {
			err.Line = fn.Span.Header + 1
			return i.atSource(err)
		}

		i.functions = append(i.functions, fn)
		i.funcIndex[fn.Name] = fn

		log.Debug("Discovered function", "signature", fn.String(), "from", fn.Span.Header+1, "to", fn.Span.Close+1)
	}

	return nil
}

func (i *Interpreter) checkFunction(fn *syntax.Function) *Error {
	if _, dup := i.funcIndex[fn.Name]; dup {
		return newError(ErrSyntax, "function %s is defined twice", fn.Name)
	}
	if err := i.checkName(fn.Name); err != nil {
		return err
	}
	if len(fn.Params) > i.limits.MaxParams {
		return newError(ErrLimit, "function %s has %d parameters (max %d)", fn.Name, len(fn.Params), i.limits.MaxParams)
	}

	seen := make(map[string]bool, len(fn.Params))
	for _, p := range fn.Params {
		if err := i.checkName(p.Name); err != nil {
			return err
		}
		if seen[p.Name] {
			return newError(ErrSyntax, "parameter %s of %s is declared twice", p.Name, fn.Name)
		}
		seen[p.Name] = true
	}

	return nil
}

func (i *Interpreter) checkName(name string) *Error {
	if len(name) >= i.limits.MaxNameLength {
		return newError(ErrLimit, "name %s is longer than %d characters", name, i.limits.MaxNameLength-1)
	}
	return nil
}

// entryPoint returns main, which must be declared "int main()".
func (i *Interpreter) entryPoint() (*syntax.Function, error) {
	main, ok := i.funcIndex["main"]
	if !ok {
		return nil, newError(ErrName, "no main function")
	}
	if main.Return != syntax.Int || len(main.Params) != 0 {
		return nil, i.atSource(&Error{
			Kind: ErrType,
			Line: main.Span.Header + 1,
			Msg:  fmt.Sprintf("main must be declared int main(), got %s", main),
		})
	}
	return main, nil
}

// inFunction reports whether line idx belongs to a function, header and
// closing brace included.
func (i *Interpreter) inFunction(idx int) bool {
	for _, fn := range i.functions {
		if idx >= fn.Span.Header && idx <= fn.Span.Close {
			return true
		}
	}
	return false
}

// declareGlobals runs every declaration outside function bodies in source
// order. Other top-level lines are ignored.
func (i *Interpreter) declareGlobals(ctx context.Context) error {
	for idx, line := range i.lines {
		if i.inFunction(idx) {
			continue
		}

		decl, ok, err := syntax.ParseDeclaration(line)
		if err != nil {
			return i.atLine(newError(ErrSyntax, "%v", err), idx)
		}
		if !ok {
			if line != "" {
				log.Debug("Ignoring top-level line", "line", idx+1, "text", line)
			}
			continue
		}

		if err := i.declare(ctx, decl); err != nil {
			return i.atLine(err, idx)
		}
	}

	return nil
}

// declare creates the variables of a declaration in the current scope,
// evaluating initializers left to right.
func (i *Interpreter) declare(ctx context.Context, decl syntax.Declaration) error {
	for _, item := range decl.Items {
		if err := i.checkName(item.Name); err != nil {
			return err
		}

		value := Zero(decl.Type)
		if item.Init != "" {
			v, err := i.eval(ctx, item.Init)
			if err != nil {
				return err
			}
			if value, err = convert(decl.Type, v); err != nil {
				return err
			}
		}

		s := i.currentScope()
		if err := s.declare(&Variable{Name: item.Name, Type: decl.Type, Value: value}); err != nil {
			return err
		}

		if s == i.globals {
			log.Debug("Declared global", "type", decl.Type, "name", item.Name, "value", value.Literal())
		}
	}

	return nil
}
