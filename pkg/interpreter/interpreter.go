package interpreter

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"

	"lineterp/pkg/process"
	"lineterp/pkg/stack"
	"lineterp/pkg/syntax"
)

// Limits are the fixed capacities of a run.
type Limits struct {
	MaxNameLength int // names must be shorter than this
	MaxVars       int // per scope, parameters included
	MaxFunctions  int
	MaxParams     int
	MaxStackDepth int
}

// DefaultLimits returns the classic capacities
func DefaultLimits() Limits {
	return Limits{
		MaxNameLength: 24,
		MaxVars:       8,
		MaxFunctions:  4,
		MaxParams:     8,
		MaxStackDepth: 8,
	}
}

// Interpreter executes a cleaned script line by line
type Interpreter struct {
	lines  []string
	limits Limits

	functions []*syntax.Function
	funcIndex map[string]*syntax.Function

	globals *scope
	stack   *stack.Stack[*Frame]

	launcher process.Launcher

	maxSteps int // maximum steps (0 = unlimited)
	steps    int // steps executed
}

type Option func(*Interpreter)

// WithLimits replaces the default capacities
func WithLimits(l Limits) Option {
	return func(i *Interpreter) { i.limits = l }
}

// WithLauncher sets the launcher used by system(...)
func WithLauncher(l process.Launcher) Option {
	return func(i *Interpreter) { i.launcher = l }
}

// WithMaxSteps sets a maximum number of steps before returning ErrMaxStepsExceeded.
// Every executed line and every loop iteration is a step.
func WithMaxSteps(n int) Option {
	return func(i *Interpreter) { i.maxSteps = n }
}

// New creates an interpreter for already cleaned lines
func New(lines []string, opts ...Option) *Interpreter {
	it := &Interpreter{
		lines:  append([]string(nil), lines...),
		limits: DefaultLimits(),
	}

	for _, o := range opts {
		o(it)
	}

	it.stack = stack.NewStack[*Frame](it.limits.MaxStackDepth)

	if it.launcher == nil {
		it.launcher = process.NewExec()
	}

	it.Reset()

	return it
}

// Reset clears runtime state (registry, globals, call stack, counters)
func (i *Interpreter) Reset() {
	i.functions = nil
	i.funcIndex = make(map[string]*syntax.Function)
	i.globals = newScope(i.limits.MaxVars)
	i.stack.Reset()
	i.steps = 0
}

// Run discovers functions and globals, then calls main. It returns the
// value main returned.
func (i *Interpreter) Run(ctx context.Context) (Value, error) {
	i.Reset()

	if err := i.discoverFunctions(); err != nil {
		return Value{}, err
	}

	main, err := i.entryPoint()
	if err != nil {
		return Value{}, err
	}

	if err := i.declareGlobals(ctx); err != nil {
		return Value{}, err
	}

	log.Debug("Running main", "functions", len(i.functions), "globals", len(i.globals.vars))

	return i.call(ctx, main, nil)
}

// Steps returns the number of steps taken by the last run
func (i *Interpreter) Steps() int {
	return i.steps
}

// Functions returns the discovered functions in source order
func (i *Interpreter) Functions() []*syntax.Function {
	return i.functions
}

// Globals returns a snapshot of the global variables in declaration order
func (i *Interpreter) Globals() []Variable {
	vars := make([]Variable, len(i.globals.vars))
	for n, v := range i.globals.vars {
		vars[n] = *v
	}
	return vars
}

// Global returns the current value of a global variable
func (i *Interpreter) Global(name string) (Value, bool) {
	v := i.globals.lookup(name)
	if v == nil {
		return Value{}, false
	}
	return v.Value, true
}

// currentFrame returns the active user call, or nil while globals are
// being initialized.
func (i *Interpreter) currentFrame() *Frame {
	f, _ := i.stack.Peek()
	return f
}

// scope returns the table new declarations go to
func (i *Interpreter) currentScope() *scope {
	if f := i.currentFrame(); f != nil {
		return f.Locals
	}
	return i.globals
}

// lookupVar resolves a name in the current frame, then in the globals.
func (i *Interpreter) lookupVar(name string) (*Variable, error) {
	if f := i.currentFrame(); f != nil {
		if v := f.Locals.lookup(name); v != nil {
			return v, nil
		}
	}
	if v := i.globals.lookup(name); v != nil {
		return v, nil
	}

	return nil, i.unknownName("variable", name, i.visibleNames())
}

func (i *Interpreter) visibleNames() []string {
	names := i.globals.names()
	if f := i.currentFrame(); f != nil {
		names = append(f.Locals.names(), names...)
	}
	return names
}

func (i *Interpreter) functionNames() []string {
	names := make([]string, len(i.functions))
	for n, fn := range i.functions {
		names[n] = fn.Name
	}
	return names
}

var ErrMaxStepsExceeded = errors.New("maximum steps exceeded")
