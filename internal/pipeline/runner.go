// Where: internal/pipeline/runner.go
// What: Subprocess execution for compiled command lines.
// Why: Forward output and relay exit status without reinterpreting failures.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/poruru-code/samdeploy/internal/command"
)

// Runner executes one command line in dir.
type Runner interface {
	Run(ctx context.Context, dir string, argv []string) error
}

// ExitError is returned for the error sentinel, which is never spawned.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// ExitCode returns the code carried by err: the subprocess exit status, the
// sentinel code, 0 for nil and 1 for anything else.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var sentinel *ExitError
	if errors.As(err, &sentinel) {
		return sentinel.Code
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
		return exitErr.ExitCode()
	}
	return 1
}

// ExecRunner is a concrete implementation of Runner using os/exec.
type ExecRunner struct {
	Stdout io.Writer
	Stderr io.Writer
}

func (r ExecRunner) Run(ctx context.Context, dir string, argv []string) error {
	if len(argv) == 0 || strings.TrimSpace(argv[0]) == "" {
		return errEmptyCommand
	}
	if code, ok := command.ExitCode(argv); ok {
		if code == 0 {
			return nil
		}
		return &ExitError{Code: code}
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir
	cmd.Stdout = writerOr(r.Stdout, os.Stdout)
	cmd.Stderr = writerOr(r.Stderr, os.Stderr)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("run %s: %w", argv[0], err)
	}
	return nil
}

func writerOr(w, fallback io.Writer) io.Writer {
	if w == nil {
		return fallback
	}
	return w
}
