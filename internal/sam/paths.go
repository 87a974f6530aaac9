// Where: internal/sam/paths.go
// What: Existence checks for template paths passed to the SAM CLI.
// Why: Fail before spawning when a referenced file or directory is missing.
package sam

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/poruru-code/samdeploy/internal/command"
)

var stat = os.Stat

// ExistingFile returns the absolute path of a regular file.
func ExistingFile(path, label string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("%w: %s path", command.ErrMissingConfiguration, label)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	info, err := stat(abs)
	if err != nil || !info.Mode().IsRegular() {
		return "", fmt.Errorf("%w: %s couldn't be found in %s", command.ErrFileNotFound, label, abs)
	}
	return abs, nil
}

// WritableTarget returns the absolute path of a file whose parent directory exists.
func WritableTarget(path, label string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("%w: %s path", command.ErrMissingConfiguration, label)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	parent := filepath.Dir(abs)
	info, err := stat(parent)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("%w: %s directory (%s) is invalid", command.ErrFileNotFound, label, parent)
	}
	return abs, nil
}
