package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"lineterp/internal/config"
	"lineterp/pkg/color"
	"lineterp/pkg/interpreter"
	"lineterp/pkg/process"
	"lineterp/pkg/source"
	"lineterp/pkg/text"
)

type Runner struct {
	Help       bool   // Show help message
	Verbose    bool   // Enable verbose output
	NoColor    bool   // Disable colored output
	Truncate   bool   // Cut oversize sources instead of failing
	MaxSteps   int    // Maximum executed lines, 0 keeps the config value
	ConfigFile string // Path to a YAML config file
	SourceFile string // Path to the script

	Out      io.Writer        // listings and script errors, stdout when nil
	Launcher process.Launcher // runs system(...), os/exec when nil
}

// Run loads, cleans and executes the script. It returns the value main
// returned, to be used as the exit status.
func (opts *Runner) Run(ctx context.Context) (int, error) {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	cfg, err := opts.config()
	if err != nil {
		return 1, err
	}

	log.Info("Processing file", "file", opts.SourceFile)

	raw, err := source.Load(opts.SourceFile, cfg.Limits.MaxLines, cfg.Truncate())
	if err != nil {
		fmt.Fprintln(out, color.ErrorWithLine(0, "", err.Error()))
		return 1, fmt.Errorf("loading failed: %w", err)
	}

	lines, err := text.CleanAll(raw, cfg.Limits.MaxLineLength, cfg.Truncate())
	if err != nil {
		var tooLong *text.LineTooLongError
		if errors.As(err, &tooLong) {
			fmt.Fprintln(out, color.ErrorWithLine(tooLong.Line, raw[tooLong.Line-1], err.Error()))
		}
		return 1, fmt.Errorf("cleaning failed: %w", err)
	}

	if opts.Verbose {
		printListing(out, lines)
	}

	intr := interpreter.New(lines,
		interpreter.WithLimits(interpreter.Limits{
			MaxNameLength: cfg.Limits.MaxNameLength,
			MaxVars:       cfg.Limits.MaxVars,
			MaxFunctions:  cfg.Limits.MaxFunctions,
			MaxParams:     cfg.Limits.MaxParams,
			MaxStackDepth: cfg.Limits.MaxStackDepth,
		}),
		interpreter.WithMaxSteps(cfg.Runtime.MaxSteps),
		interpreter.WithLauncher(opts.launcher()),
	)

	result, err := intr.Run(ctx)

	if opts.Verbose {
		printRegistry(out, intr)
	}

	if err != nil {
		fmt.Fprintln(out, color.RedText("\n=== Runtime Error ==="))
		printError(out, err)
		return 1, fmt.Errorf("execution failed: %w", err)
	}

	log.Debug("Script finished", "result", result.Literal(), "steps", intr.Steps())

	return int(result.Int), nil
}

// config loads the config file, if any, and applies the flag overrides
func (opts *Runner) config() (config.Config, error) {
	cfg := config.Default()
	if opts.ConfigFile != "" {
		var err error
		if cfg, err = config.Load(opts.ConfigFile); err != nil {
			return config.Config{}, err
		}
	}

	if opts.Truncate {
		cfg.Runtime.Overflow = config.OverflowTruncate
	}
	if opts.MaxSteps > 0 {
		cfg.Runtime.MaxSteps = opts.MaxSteps
	}

	log.Debug("Configuration", "limits", fmt.Sprintf("%+v", cfg.Limits), "max_steps", cfg.Runtime.MaxSteps, "overflow", cfg.Runtime.Overflow)

	return cfg, nil
}

func (opts *Runner) launcher() process.Launcher {
	if opts.Launcher != nil {
		return opts.Launcher
	}
	return process.NewExec()
}

func printListing(out io.Writer, lines []string) {
	fmt.Fprintln(out, color.GreenText("=== Cleaned Source ==="))
	for i, line := range lines {
		fmt.Fprintf(out, "%s %s %s\n", color.LineNumber(i+1), color.GrayText("|"), line)
	}
}

func printRegistry(out io.Writer, intr *interpreter.Interpreter) {
	fmt.Fprintln(out, color.GreenText("\n=== Functions ==="))
	if len(intr.Functions()) == 0 {
		fmt.Fprintln(out, color.GrayText("No functions."))
	}
	for _, fn := range intr.Functions() {
		fmt.Fprintf(out, "%s %s\n", color.YellowText(fn.String()),
			color.GrayText(fmt.Sprintf("lines %d-%d", fn.Span.Header+1, fn.Span.Close+1)))
	}

	fmt.Fprintln(out, color.GreenText("\n=== Globals ==="))
	if len(intr.Globals()) == 0 {
		fmt.Fprintln(out, color.GrayText("No globals."))
	}
	for _, v := range intr.Globals() {
		fmt.Fprintf(out, "%s %s = %s\n", color.CyanText(v.Type.String()), color.BoldText(v.Name), color.BlueText(v.Value.Literal()))
	}
}

func printError(out io.Writer, err error) {
	var ierr *interpreter.Error
	if !errors.As(err, &ierr) {
		fmt.Fprintln(out, color.ErrorWithLine(0, "", err.Error()))
		return
	}

	msg := ierr.Message()
	if ierr.Function != "" {
		msg += color.GrayText(" (in " + ierr.Function + ")")
	}
	fmt.Fprintln(out, color.ErrorWithLine(ierr.Line, ierr.Text, msg))
}
