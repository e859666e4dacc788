package syntax_test

import (
	"errors"
	"reflect"
	"testing"

	"lineterp/pkg/syntax"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		line        string
		kind        syntax.StmtKind
		target      string
		expr        string
		description string
	}{
		{"", syntax.StmtEmpty, "", "", "empty line"},
		{"return x+1", syntax.StmtReturn, "", "x+1", "return with value"},
		{"return", syntax.StmtReturn, "", "", "bare return"},
		{"return(1)", syntax.StmtReturn, "", "(1)", "return without space"},
		{"returned=1", syntax.StmtAssign, "returned", "1", "name starting with return"},
		{"system(\"/bin/ls\")", syntax.StmtSystem, "", "\"/bin/ls\"", "system call"},
		{"int a=1,b", syntax.StmtDeclare, "", "", "declaration"},
		{"if(a>1)", syntax.StmtIf, "", "", "if header"},
		{"for(i=0;i<3;i++){", syntax.StmtFor, "", "", "for header"},
		{"i++", syntax.StmtAssign, "i", "i+1", "increment"},
		{"count--", syntax.StmtAssign, "count", "count-1", "decrement"},
		{"s=\"a=b\"", syntax.StmtAssign, "s", "\"a=b\"", "assignment"},
		{"f(1,2)", syntax.StmtCall, "", "f(1,2)", "call statement"},
		{"a==b", syntax.StmtUnknown, "", "", "comparison is not a statement"},
		{"else", syntax.StmtUnknown, "", "", "dangling else"},
		{"}", syntax.StmtUnknown, "", "", "stray brace"},
	}

	for _, test := range tests {
		stmt, err := syntax.Classify(test.line)
		if err != nil {
			t.Errorf("%s: unexpected error %v", test.description, err)
			continue
		}
		if stmt.Kind != test.kind {
			t.Errorf("%s: expected %s, got %s", test.description, test.kind, stmt.Kind)
		}
		if stmt.Target != test.target {
			t.Errorf("%s: expected target %q, got %q", test.description, test.target, stmt.Target)
		}
		if stmt.Expr != test.expr {
			t.Errorf("%s: expected expr %q, got %q", test.description, test.expr, stmt.Expr)
		}
	}
}

func TestClassifyErrors(t *testing.T) {
	for _, line := range []string{"x=", "int 1a", "int a=", "char a,b=,c"} {
		if _, err := syntax.Classify(line); err == nil {
			t.Errorf("expected %q to be rejected", line)
		}
	}
}

func TestParseDeclaration(t *testing.T) {
	decl, ok, err := syntax.ParseDeclaration("string s=\"a,b\",t,u=f(1,2)")
	if !ok || err != nil {
		t.Fatalf("expected a declaration, got ok=%v err=%v", ok, err)
	}

	expected := syntax.Declaration{
		Type: syntax.String,
		Items: []syntax.DeclItem{
			{Name: "s", Init: "\"a,b\""},
			{Name: "t"},
			{Name: "u", Init: "f(1,2)"},
		},
	}
	if !reflect.DeepEqual(decl, expected) {
		t.Errorf("expected %+v, got %+v", expected, decl)
	}

	if _, ok, _ := syntax.ParseDeclaration("int main()"); ok {
		t.Errorf("a function header is not a declaration")
	}
}

func TestLiterals(t *testing.T) {
	ints := []struct {
		input    string
		expected int64
		ok       bool
	}{
		{"0", 0, true},
		{"42", 42, true},
		{"-7", -7, true},
		{"12abc", 12, true},
		{"abc", 0, false},
		{"-", 0, false},
	}
	for _, test := range ints {
		n, ok := syntax.ParseInt(test.input)
		if n != test.expected || ok != test.ok {
			t.Errorf("ParseInt(%q) = %d, %v; expected %d, %v", test.input, n, ok, test.expected, test.ok)
		}
	}

	chars := []struct {
		input    string
		expected byte
	}{
		{"'a'", 'a'},
		{"'\\n'", '\n'},
		{"'\\t'", '\t'},
		{"'\\0'", 0},
		{"'\\''", '\''},
		{"'\\\\'", '\\'},
		{"''", 0},
	}
	for _, test := range chars {
		c, err := syntax.ParseChar(test.input)
		if err != nil || c != test.expected {
			t.Errorf("ParseChar(%q) = %q, %v; expected %q", test.input, c, err, test.expected)
		}
	}

	for _, bad := range []string{"'ab'", "'\\q'", "'a"} {
		if _, err := syntax.ParseChar(bad); err == nil {
			t.Errorf("ParseChar(%q) should fail", bad)
		}
	}

	s, err := syntax.ParseText("\"a\\tb\\n\\\"c\\\"\"")
	if err != nil || s != "a\tb\n\"c\"" {
		t.Errorf("ParseText decoded %q, %v", s, err)
	}
	if _, err := syntax.ParseText("\"abc\\\""); err == nil {
		t.Errorf("expected an error for a trailing backslash")
	}
}

func TestParseCall(t *testing.T) {
	call, ok := syntax.ParseCall("f(a,g(1,2),\"x,y\")")
	if !ok {
		t.Fatalf("expected a call")
	}
	if call.Name != "f" || !reflect.DeepEqual(call.Args, []string{"a", "g(1,2)", "\"x,y\""}) {
		t.Errorf("unexpected call %+v", call)
	}

	if call, ok := syntax.ParseCall("main()"); !ok || len(call.Args) != 0 {
		t.Errorf("expected a call without arguments, got %+v, %v", call, ok)
	}

	for _, expr := range []string{"f(1)+g(2)", "(1)", "f", "f(1"} {
		if _, ok := syntax.ParseCall(expr); ok {
			t.Errorf("%q is not a single call", expr)
		}
	}
}

func TestFindFunctions(t *testing.T) {
	lines := []string{
		"int g=1",
		"int add(int a,int b)",
		"{",
		"return a+b",
		"}",
		"void hello(){",
		"if(g){",
		"g=0",
		"}",
		"}",
	}

	fns, err := syntax.FindFunctions(lines)
	if err != nil {
		t.Fatalf("FindFunctions failed: %v", err)
	}
	if len(fns) != 2 {
		t.Fatalf("expected 2 functions, got %d", len(fns))
	}

	add := fns[0]
	if add.String() != "int add(int a, int b)" {
		t.Errorf("unexpected signature %q", add.String())
	}
	if add.Span != (syntax.Span{Header: 1, Open: 2, Close: 4}) {
		t.Errorf("unexpected span %+v", add.Span)
	}

	hello := fns[1]
	if hello.Return != syntax.Void || len(hello.Params) != 0 {
		t.Errorf("unexpected function %s", hello)
	}
	if hello.Span != (syntax.Span{Header: 5, Open: 5, Close: 9}) {
		t.Errorf("unexpected span %+v", hello.Span)
	}
}

func TestFindFunctionsErrors(t *testing.T) {
	tests := []struct {
		lines       []string
		line        int
		description string
	}{
		{[]string{"int f(int)", "{", "}"}, 0, "parameter without a name"},
		{[]string{"int f(int a", "{", "}"}, 0, "missing parenthesis"},
		{[]string{"int f()", "{", "return 1"}, 0, "unterminated body"},
		{[]string{"int f()", "return 1"}, 0, "missing opening brace"},
	}

	for _, test := range tests {
		_, err := syntax.FindFunctions(test.lines)
		var lerr *syntax.LineError
		if !errors.As(err, &lerr) {
			t.Errorf("%s: expected a LineError, got %v", test.description, err)
			continue
		}
		if lerr.Line != test.line {
			t.Errorf("%s: expected line %d, got %d", test.description, test.line, lerr.Line)
		}
	}
}

func TestFindSpanNested(t *testing.T) {
	lines := []string{
		"if(a)",
		"{",
		"if(b){",
		"x=1",
		"}else{",
		"x=2",
		"}",
		"}",
		"y=1",
	}

	span, err := syntax.FindSpan(lines, 0)
	if err != nil {
		t.Fatalf("FindSpan failed: %v", err)
	}
	if span != (syntax.Span{Header: 0, Open: 1, Close: 7}) {
		t.Errorf("unexpected span %+v", span)
	}
	if span.BodyStart() != 2 || span.BodyEnd() != 6 {
		t.Errorf("unexpected body %d-%d", span.BodyStart(), span.BodyEnd())
	}
}

func TestFindIf(t *testing.T) {
	allman := []string{
		"if(x>1)",
		"{",
		"y=1",
		"}",
		"else",
		"{",
		"y=2",
		"}",
	}

	block, err := syntax.FindIf(allman, 0)
	if err != nil {
		t.Fatalf("FindIf failed: %v", err)
	}
	if block.Condition != "x>1" {
		t.Errorf("unexpected condition %q", block.Condition)
	}
	if block.Else == nil || block.Else.BodyStart() != 6 || block.End() != 7 {
		t.Errorf("unexpected else branch %+v", block.Else)
	}

	kr := []string{"if(f(x)==1){", "y=1", "}else{", "y=2", "}", "z=1"}
	block, err = syntax.FindIf(kr, 0)
	if err != nil {
		t.Fatalf("FindIf failed: %v", err)
	}
	if block.Condition != "f(x)==1" {
		t.Errorf("unexpected condition %q", block.Condition)
	}
	if block.Then.BodyStart() != 1 || block.Then.BodyEnd() != 1 {
		t.Errorf("unexpected then body %+v", block.Then)
	}
	if block.Else == nil || block.Else.BodyStart() != 3 || block.End() != 4 {
		t.Errorf("unexpected else branch %+v", block.Else)
	}

	plain := []string{"if(x)", "{", "}", "x=1"}
	block, err = syntax.FindIf(plain, 0)
	if err != nil || block.Else != nil || block.End() != 2 {
		t.Errorf("unexpected if block %+v, %v", block, err)
	}

	if _, err := syntax.FindIf([]string{"if()", "{", "}"}, 0); err == nil {
		t.Errorf("expected an error for an empty condition")
	}
}

func TestFindFor(t *testing.T) {
	lines := []string{"for(int i=0;i<3;i++)", "{", "s=s+i", "}"}

	block, err := syntax.FindFor(lines, 0)
	if err != nil {
		t.Fatalf("FindFor failed: %v", err)
	}
	if block.Init != "int i=0" || block.Condition != "i<3" || block.Step != "i=i+1" {
		t.Errorf("unexpected header %+v", block)
	}
	if block.Body.BodyStart() != 2 || block.End() != 3 {
		t.Errorf("unexpected body %+v", block.Body)
	}

	if _, err := syntax.FindFor([]string{"for(i=0)", "{", "}"}, 0); err == nil {
		t.Errorf("expected an error for a header without semicolons")
	}
}
