package interpreter

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/log"

	"lineterp/pkg/syntax"
	"lineterp/pkg/text"
)

// runRange executes lines from..to (inclusive) in the current frame. It
// stops early once the frame has returned.
func (i *Interpreter) runRange(ctx context.Context, from, to int) error {
	frame := i.currentFrame()

	for idx := from; idx <= to; {
		n, err := i.runLine(ctx, idx)
		if err != nil {
			return err
		}
		if frame.Returned {
			return nil
		}
		idx += n
	}

	return nil
}

// runLine executes the statement starting at line idx and returns how many
// lines it consumed.
func (i *Interpreter) runLine(ctx context.Context, idx int) (int, error) {
	if err := i.tick(ctx); err != nil {
		return 0, i.atLine(err, idx)
	}

	frame := i.currentFrame()
	line := i.lines[idx]
	stmt, err := syntax.Classify(line)
	if err != nil {
		return 0, i.atLine(newError(ErrSyntax, "%v", err), idx)
	}

	switch stmt.Kind {
	case syntax.StmtEmpty:
		return 1, nil

	case syntax.StmtReturn:
		value := Zero(syntax.Void)
		if stmt.Expr != "" {
			if value, err = i.eval(ctx, stmt.Expr); err != nil {
				return 0, i.atLine(err, idx)
			}
		}
		frame.Return = value
		frame.Returned = true
		return 1, nil

	case syntax.StmtSystem:
		if err := i.system(ctx, stmt.Expr); err != nil {
			return 0, i.atLine(err, idx)
		}
		return 1, nil

	case syntax.StmtIf:
		block, err := syntax.FindIf(i.lines, idx)
		if err != nil {
			return 0, i.atSource(syntaxError(err))
		}
		if err := i.runIf(ctx, block); err != nil {
			return 0, i.atLine(err, idx)
		}
		return block.End() - idx + 1, nil

	case syntax.StmtFor:
		block, err := syntax.FindFor(i.lines, idx)
		if err != nil {
			return 0, i.atSource(syntaxError(err))
		}
		if err := i.runFor(ctx, block); err != nil {
			return 0, i.atLine(err, idx)
		}
		return block.End() - idx + 1, nil

	case syntax.StmtUnknown:
		return 0, i.atLine(newError(ErrSyntax, "unrecognized statement"), idx)
	}

	if err := i.simple(ctx, stmt); err != nil {
		return 0, i.atLine(err, idx)
	}
	return 1, nil
}

// tick counts one step and checks for cancellation and the step limit
func (i *Interpreter) tick(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return wrapError(ErrRuntime, err, "interrupted")
	}

	if i.maxSteps > 0 && i.steps >= i.maxSteps {
		return wrapError(ErrRuntime, ErrMaxStepsExceeded, "stopped after %d steps", i.steps)
	}
	i.steps++

	return nil
}

// simple executes the one-line statements that may also appear in a for
// header: declarations, assignments and calls.
func (i *Interpreter) simple(ctx context.Context, stmt syntax.Statement) error {
	switch stmt.Kind {
	case syntax.StmtEmpty:
		return nil

	case syntax.StmtDeclare:
		return i.declare(ctx, stmt.Decl)

	case syntax.StmtAssign:
		return i.assign(ctx, stmt.Target, stmt.Expr)

	case syntax.StmtCall:
		call, _ := syntax.ParseCall(stmt.Expr)
		_, err := i.callExpr(ctx, call)
		return err
	}

	return newError(ErrSyntax, "%s statement is not allowed here", stmt.Kind)
}

// assign evaluates expr and stores it, converted, into an existing variable
func (i *Interpreter) assign(ctx context.Context, name, expr string) error {
	value, err := i.eval(ctx, expr)
	if err != nil {
		return err
	}

	v, err := i.lookupVar(name)
	if err != nil {
		return err
	}

	converted, err := convert(v.Type, value)
	if err != nil {
		return err
	}
	v.Value = converted

	return nil
}

// runIf evaluates the condition once and runs the chosen branch
func (i *Interpreter) runIf(ctx context.Context, block syntax.IfBlock) error {
	ok, err := i.condition(ctx, block.Condition)
	if err != nil {
		return err
	}

	switch {
	case ok:
		return i.runRange(ctx, block.Then.BodyStart(), block.Then.BodyEnd())
	case block.Else != nil:
		return i.runRange(ctx, block.Else.BodyStart(), block.Else.BodyEnd())
	}

	return nil
}

// runFor runs init once, then the body and step while the condition holds.
func (i *Interpreter) runFor(ctx context.Context, block syntax.ForBlock) error {
	init, err := syntax.Classify(block.Init)
	if err != nil {
		return newError(ErrSyntax, "for init: %v", err)
	}
	step, err := syntax.Classify(block.Step)
	if err != nil {
		return newError(ErrSyntax, "for step: %v", err)
	}

	if err := i.simple(ctx, init); err != nil {
		return err
	}

	frame := i.currentFrame()
	for {
		// an iteration counts even when the body is empty
		if err := i.tick(ctx); err != nil {
			return err
		}

		ok, err := i.condition(ctx, block.Condition)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}

		if err := i.runRange(ctx, block.Body.BodyStart(), block.Body.BodyEnd()); err != nil {
			return err
		}
		if frame.Returned {
			return nil
		}

		if err := i.simple(ctx, step); err != nil {
			return err
		}
	}
}

// system evaluates a text expression and launches it as a program.
func (i *Interpreter) system(ctx context.Context, expr string) error {
	value, err := i.eval(ctx, expr)
	if err != nil {
		return err
	}
	if value.Type != syntax.String {
		return newError(ErrType, "system needs a string, got %s", value.Type)
	}

	argv := commandArgs(value.Text)
	if len(argv) == 0 {
		return newError(ErrRuntime, "system called with an empty command")
	}

	if err := i.launcher.Launch(ctx, argv); err != nil {
		return wrapError(ErrRuntime, err, "system %s", argv[0])
	}

	return nil
}

// commandArgs splits a command line at spaces outside quotes and removes
// the quotes around each argument.
func commandArgs(cmd string) []string {
	parts := text.Split(cmd, ' ')
	for n, p := range parts {
		if len(p) >= 2 && (p[0] == '"' || p[0] == '\'') && p[len(p)-1] == p[0] {
			parts[n] = p[1 : len(p)-1]
		}
	}
	return parts
}

// atLine attributes err to line idx unless a nested line already claimed it.
func (i *Interpreter) atLine(err error, idx int) error {
	var e *Error
	if !errors.As(err, &e) {
		e = wrapError(ErrRuntime, err, "failed")
	}

	if e.Line == 0 {
		e.Line = idx + 1
		if f := i.currentFrame(); f != nil {
			e.Function = f.Function.Name
		}
		log.Debug("Error", "line", e.Line, "kind", e.Kind, "message", e.Msg)
	}

	return i.atSource(e)
}

// atSource fills in the text of the line the error points at
func (i *Interpreter) atSource(e *Error) error {
	if e.Text == "" && e.Line > 0 && e.Line <= len(i.lines) {
		e.Text = strings.TrimSpace(i.lines[e.Line-1])
	}
	return e
}
