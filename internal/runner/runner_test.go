package runner_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lineterp/internal/runner"
	"lineterp/pkg/color"
	"lineterp/pkg/interpreter"
	"lineterp/pkg/process"
	"lineterp/pkg/source"
	"lineterp/pkg/text"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func newRunner(t *testing.T, script string) (*runner.Runner, *bytes.Buffer) {
	t.Helper()

	prev := color.IsColorEnabled()
	color.EnableColor(false)
	t.Cleanup(func() { color.EnableColor(prev) })

	var out bytes.Buffer
	return &runner.Runner{
		SourceFile: writeFile(t, "script.c", script),
		Out:        &out,
		Launcher: process.Func(func(context.Context, []string) error {
			return nil
		}),
	}, &out
}

func TestRunReturnsMainResult(t *testing.T) {
	r, out := newRunner(t, "int x = 2;\nint main()\n{\n\treturn x * 3;\n}\n")
	r.Verbose = true

	status, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if status != 6 {
		t.Errorf("expected status 6, got %d", status)
	}

	for _, want := range []string{"=== Cleaned Source ===", "  4 | return x*3", "int main()", "int x = 2"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("expected %q in verbose output:\n%s", want, out.String())
		}
	}
}

func TestRunReportsScriptErrors(t *testing.T) {
	r, out := newRunner(t, "int main()\n{\n\treturn 1/0;\n}\n")

	status, err := r.Run(context.Background())
	if !errors.Is(err, interpreter.ErrRuntime) {
		t.Fatalf("expected a runtime error, got %v", err)
	}
	if status != 1 {
		t.Errorf("expected status 1, got %d", status)
	}
	if !strings.Contains(out.String(), "Error at line 3: runtime error: division by zero") {
		t.Errorf("unexpected error output:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "3 | return 1/0") {
		t.Errorf("expected the offending line in:\n%s", out.String())
	}
}

func TestRunSourceLimits(t *testing.T) {
	long := "int main()\n{\n\treturn 1111111111+1111111111+1111111111;\n}\n"

	r, _ := newRunner(t, long)
	var tooLong *text.LineTooLongError
	if _, err := r.Run(context.Background()); !errors.As(err, &tooLong) || tooLong.Line != 3 {
		t.Errorf("expected a line length error on line 3, got %v", err)
	}

	many := strings.Repeat("\n", 50) + "int main()\n{\nreturn 0\n}\n"
	r, _ = newRunner(t, many)
	var tooMany *source.ErrTooManyLines
	if _, err := r.Run(context.Background()); !errors.As(err, &tooMany) {
		t.Errorf("expected a line count error, got %v", err)
	}

	huge := "int main()\n{\nreturn 7\n}\n" + strings.Repeat("x", 70*1024) + "\n"
	r, _ = newRunner(t, huge)
	r.Truncate = true
	if status, err := r.Run(context.Background()); err != nil || status != 7 {
		t.Errorf("expected a very long line to be truncated, got %d, %v", status, err)
	}
}

func TestRunConfig(t *testing.T) {
	r, _ := newRunner(t, "int a\nint b\nint main()\n{\nreturn 0\n}\n")
	r.ConfigFile = writeFile(t, "lineterp.yaml", "limits:\n  max_vars: 1\n")

	if _, err := r.Run(context.Background()); !errors.Is(err, interpreter.ErrLimit) {
		t.Errorf("expected the config limit to apply, got %v", err)
	}

	r.ConfigFile = writeFile(t, "bad.yaml", "limits:\n  max_varz: 1\n")
	if _, err := r.Run(context.Background()); err == nil {
		t.Errorf("expected an unknown config field to fail")
	}
}

func TestRunMaxSteps(t *testing.T) {
	r, _ := newRunner(t, "int main()\n{\nfor(;;)\n{\n}\nreturn 0\n}\n")
	r.MaxSteps = 50

	if _, err := r.Run(context.Background()); !errors.Is(err, interpreter.ErrMaxStepsExceeded) {
		t.Errorf("expected the step limit to stop the loop, got %v", err)
	}
}
