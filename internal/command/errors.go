// Where: internal/command/errors.go
// What: Error kinds produced while compiling command clauses.
// Why: Let callers convert build-time failures into the error sentinel.
package command

import "errors"

var (
	// ErrMissingConfiguration reports a required value that was not configured.
	ErrMissingConfiguration = errors.New("missing configuration")
	// ErrFileNotFound reports a referenced template path that does not exist.
	ErrFileNotFound = errors.New("file not found")
	// ErrBuilderState reports a Builder used out of order or after Build.
	ErrBuilderState = errors.New("invalid builder state")

	errProgramRequired = errors.New("program is required")
)
