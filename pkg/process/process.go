// Package process launches the external programs requested by system(...).
package process

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"

	"github.com/charmbracelet/log"
)

// Launcher starts a program and blocks until it exits. The exit status is
// not reported to the caller.
type Launcher interface {
	Launch(ctx context.Context, argv []string) error
}

// Func adapts a function to the Launcher interface.
type Func func(ctx context.Context, argv []string) error

func (f Func) Launch(ctx context.Context, argv []string) error {
	return f(ctx, argv)
}

var ErrNoCommand = errors.New("empty command")

// Exec runs programs with os/exec, sharing the given standard streams.
type Exec struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewExec returns an Exec wired to the process's own standard streams
func NewExec() *Exec {
	return &Exec{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

// Launch runs argv[0] with the remaining arguments and waits for it. A
// program that fails to start or exits non-zero is only logged.
func (e *Exec) Launch(ctx context.Context, argv []string) error {
	if len(argv) == 0 {
		return ErrNoCommand
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdin = e.Stdin
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr

	log.Debug("Launching command", "argv", argv)

	err := cmd.Run()

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		log.Debug("Command finished", "program", argv[0])
	case errors.As(err, &exitErr):
		log.Warn("Command exited with an error", "program", argv[0], "status", exitErr.ExitCode())
	default:
		log.Warn("Command could not be started", "program", argv[0], "error", err)
	}

	// cancellation is the caller's concern, not the script's
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	return nil
}
