package interpreter

import (
	"slices"

	"lineterp/pkg/syntax"
)

// Variable is a named, typed storage slot. Its type never changes after
// declaration.
type Variable struct {
	Name  string
	Type  syntax.Type
	Value Value
}

// scope is an ordered variable table with a fixed capacity. Redeclaring a
// name replaces the earlier entry, and the survivor takes the position of
// the last declaration.
type scope struct {
	vars []*Variable
	max  int
}

func newScope(max int) *scope {
	return &scope{vars: make([]*Variable, 0, max), max: max}
}

func (s *scope) lookup(name string) *Variable {
	for _, v := range s.vars {
		if v.Name == name {
			return v
		}
	}
	return nil
}

func (s *scope) declare(v *Variable) error {
	s.vars = slices.DeleteFunc(s.vars, func(old *Variable) bool {
		return old.Name == v.Name
	})
	if len(s.vars) >= s.max {
		return newError(ErrLimit, "too many variables (max %d) declaring %s", s.max, v.Name)
	}
	s.vars = append(s.vars, v)
	return nil
}

func (s *scope) names() []string {
	names := make([]string, len(s.vars))
	for i, v := range s.vars {
		names[i] = v.Name
	}
	return names
}

// Frame represents a user function call frame.
type Frame struct {
	Function *syntax.Function
	Locals   *scope

	Return   Value // set by a return statement
	Returned bool  // true once a return statement ran
}

func newFrame(fn *syntax.Function, maxVars int) *Frame {
	return &Frame{
		Function: fn,
		Locals:   newScope(maxVars),
		Return:   Zero(syntax.Void),
	}
}
