package text_test

import (
	"errors"
	"reflect"
	"testing"

	"lineterp/pkg/text"
)

func TestClean(t *testing.T) {
	tests := []struct {
		input       string
		expected    string
		description string
	}{
		{"  x = 1;", "x=1", "spaces and semicolon"},
		{"\tint a = 1, b;", "int a=1,b", "space after type keyword is kept"},
		{"string s = \"a b; c\";", "string s=\"a b; c\"", "quoted text untouched"},
		{"char c = ' ';", "char c=' '", "quoted space kept"},
		{"return x + 1;", "return x+1", "space after return kept"},
		{"return;", "return", "bare return"},
		{"print x", "printx", "keyword suffix inside a word does not count"},
		{"// a comment", "", "comment line blanked"},
		{"x = 2; // trailing", "x=2", "remainder after semicolon dropped"},
		{"x = 2 // trailing", "x=2", "trailing comment dropped"},
		{"for (int i = 0; i < 3; i++)", "for(int i=0;i<3;i++)", "for keeps its semicolons"},
		{"x = 1; y = 2;", "x=1", "only the first statement survives"},
		{"fortune = x;", "fortune=x", "name starting with for is not a for header"},
		{"format++;", "format++", "increment of a for-prefixed name"},
		{"forget();", "forget()", "call of a for-prefixed function"},
		{"for(;;)", "for(;;)", "empty for header"},
		{"char c = '\\'';", "char c='\\''", "escaped quote inside char literal"},
		{"", "", "empty line"},
	}

	for _, test := range tests {
		if got := text.Clean(test.input); got != test.expected {
			t.Errorf("%s: Clean(%q) = %q, expected %q", test.description, test.input, got, test.expected)
		}
	}
}

func TestSplit(t *testing.T) {
	tests := []struct {
		input    string
		sep      byte
		expected []string
	}{
		{"a,b,c", ',', []string{"a", "b", "c"}},
		{"a,,b,", ',', []string{"a", "b"}},
		{"x=\"a=b\"", '=', []string{"x", "\"a=b\""}},
		{"f(1,2),g", ',', []string{"f(1,2)", "g"}},
		{"'a',','", ',', []string{"'a'", "','"}},
		{"/bin/echo hello world", ' ', []string{"/bin/echo", "hello", "world"}},
		{"", ',', nil},
	}

	for _, test := range tests {
		got := text.Split(test.input, test.sep)
		if !reflect.DeepEqual(got, test.expected) {
			t.Errorf("Split(%q, %q) = %q, expected %q", test.input, test.sep, got, test.expected)
		}
	}
}

func TestIndex(t *testing.T) {
	tests := []struct {
		input    string
		sep      byte
		expected int
	}{
		{"1+2", '+', 1},
		{"\"a+b\"+c", '+', 5},
		{"f(x+1)+2", '+', 6},
		{"f(x+1)", '+', -1},
		{"'+'", '+', -1},
	}

	for _, test := range tests {
		if got := text.Index(test.input, test.sep); got != test.expected {
			t.Errorf("Index(%q, %q) = %d, expected %d", test.input, test.sep, got, test.expected)
		}
	}

	if got := text.IndexAny("f(a<b)>=c", "<>=!"); got != 6 {
		t.Errorf("IndexAny skipped to %d, expected 6", got)
	}
}

func TestCleanAll(t *testing.T) {
	lines := []string{"int main()", "{", "   return 0;   ", "}"}

	cleaned, err := text.CleanAll(lines, 32, false)
	if err != nil {
		t.Fatalf("CleanAll failed: %v", err)
	}
	if cleaned[2] != "return 0" {
		t.Errorf("expected %q, got %q", "return 0", cleaned[2])
	}

	long := []string{"string s=\"abcdefghijklmnopqrstuvwxyz\""}
	_, err = text.CleanAll(long, 32, false)
	var tooLong *text.LineTooLongError
	if !errors.As(err, &tooLong) {
		t.Fatalf("expected LineTooLongError, got %v", err)
	}
	if tooLong.Line != 1 || tooLong.Max != 31 {
		t.Errorf("unexpected error details: %+v", tooLong)
	}

	cleaned, err = text.CleanAll(long, 32, true)
	if err != nil {
		t.Fatalf("truncating CleanAll failed: %v", err)
	}
	if len(cleaned[0]) != 31 {
		t.Errorf("expected the line to be cut to 31 characters, got %d", len(cleaned[0]))
	}
}
