package syntax

import (
	"fmt"
	"regexp"
)

// Type is the type tag of a value, variable, parameter or function result.
type Type int

const (
	Void   Type = iota // void (functions only)
	Int                // int
	Char               // char
	String             // string (text)
)

var typeNames = map[Type]string{
	Void:   "void",
	Int:    "int",
	Char:   "char",
	String: "string",
}

// String returns the keyword spelling of the type
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// ParseType maps a type keyword to its Type
func ParseType(word string) (Type, bool) {
	for t, name := range typeNames {
		if name == word {
			return t, true
		}
	}
	return Void, false
}

// Line recognizers. Lines reaching these have already been cleaned, so the
// only spaces left are the ones following a type or return keyword.
var (
	identRegex     = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	declRegex      = regexp.MustCompile(`^(int|char|string) (.*)$`)
	paramRegex     = regexp.MustCompile(`^(int|char|string) ([A-Za-z_][A-Za-z0-9_]*)$`)
	headerRegex    = regexp.MustCompile(`^(void|int|char|string) ([A-Za-z_][A-Za-z0-9_]*)\((.*)\)(\{?)$`)
	headerPrefix   = regexp.MustCompile(`^(void|int|char|string) [A-Za-z_][A-Za-z0-9_]*\(`)
	systemRegex    = regexp.MustCompile(`^system\((.*)\)$`)
	incDecRegex    = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)(\+\+|--)$`)
	assignRegex    = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)=(.*)$`)
	callNameRegex  = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)\(`)
	ifHeaderRegex  = regexp.MustCompile(`^if\(`)
	forHeaderRegex = regexp.MustCompile(`^for\(`)
)

// IsIdent reports whether s is a valid variable or function name
func IsIdent(s string) bool {
	return identRegex.MatchString(s)
}
