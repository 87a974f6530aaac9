// Where: internal/pipeline/errors.go
// What: Error definitions for stage orchestration.
// Why: Ensure consistent error wrapping without dynamic error creation.
package pipeline

import (
	"errors"
	"fmt"
)

var (
	// ErrSkipped is returned by a stage that has nothing to do.
	ErrSkipped = errors.New("stage skipped")
	// ErrPackagedTemplateMissing reports a package run that exited 0 without output.
	ErrPackagedTemplateMissing = errors.New("couldn't generate output SAM template")
	// ErrUnknownStage reports a target that is not registered.
	ErrUnknownStage = errors.New("unknown stage")

	errEmptyCommand   = errors.New("command is empty")
	errDuplicateStage = errors.New("duplicate stage")
	errStageCycle     = errors.New("stage dependency cycle")
	errRunnerNil      = errors.New("command runner is nil")
)

// StageError attributes a failure to the stage that produced it.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
