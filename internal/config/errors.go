// Where: internal/config/errors.go
// What: Error definitions for configuration handling.
// Why: Let the CLI distinguish user configuration mistakes.
package config

import "errors"

var (
	ErrConfigNotFound     = errors.New("configuration file not found")
	ErrInvalidConfig      = errors.New("invalid configuration")
	ErrUnknownEnvironment = errors.New("unknown environment")
)
