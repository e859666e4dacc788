package syntax

import (
	"fmt"
	"strings"

	"lineterp/pkg/text"
)

type Param struct {
	Type Type
	Name string
}

// Function is a user function found in the script.
type Function struct {
	Name   string
	Return Type
	Params []Param
	Span   Span // header, opening and closing brace lines of the body
}

// String renders the function signature
func (f *Function) String() string {
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.Type.String() + " " + p.Name
	}
	return fmt.Sprintf("%s %s(%s)", f.Return, f.Name, strings.Join(params, ", "))
}

// ParseFunctionHeader recognizes "type name(params)" optionally followed by
// the opening brace. ok is false for lines that are not headers. A line that
// starts like a header but does not parse is an error.
// The returned function has no span yet.
func ParseFunctionHeader(line string) (fn *Function, ok bool, err error) {
	m := headerRegex.FindStringSubmatch(line)
	if m == nil {
		if headerPrefix.MatchString(line) {
			return nil, true, fmt.Errorf("malformed function header %q", line)
		}
		return nil, false, nil
	}

	ret, _ := ParseType(m[1])
	fn = &Function{Name: m[2], Return: ret}

	for _, part := range text.Split(m[3], ',') {
		pm := paramRegex.FindStringSubmatch(part)
		if pm == nil {
			return nil, true, fmt.Errorf("malformed parameter %q of function %s", part, fn.Name)
		}
		typ, _ := ParseType(pm[1])
		fn.Params = append(fn.Params, Param{Type: typ, Name: pm[2]})
	}

	return fn, true, nil
}

// FindFunctions scans the lines for function headers and locates each
// body. Bodies are not searched for further headers. Functions are returned
// in source order.
func FindFunctions(lines []string) ([]*Function, error) {
	var fns []*Function

	for i := 0; i < len(lines); i++ {
		fn, ok, err := ParseFunctionHeader(lines[i])
		if err != nil {
			return nil, &LineError{Line: i, Err: err}
		}
		if !ok {
			continue
		}

		span, err := FindSpan(lines, i)
		if err != nil {
			return nil, err
		}
		if err := expectBareClose(lines, span); err != nil {
			return nil, err
		}

		fn.Span = span
		fns = append(fns, fn)
		i = span.Close
	}

	return fns, nil
}
