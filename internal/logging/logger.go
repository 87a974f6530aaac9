// Where: internal/logging/logger.go
// What: Leveled logger construction.
// Why: Route dry-run banners and build-time errors through one stderr logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/poruru-code/samdeploy/internal/meta"
)

// New returns a logger writing to out at the named level (debug, info, warn, error).
// An empty level means info.
func New(out io.Writer, level string) (*log.Logger, error) {
	if out == nil {
		out = os.Stderr
	}
	lvl := log.InfoLevel
	if name := strings.TrimSpace(level); name != "" {
		parsed, err := log.ParseLevel(strings.ToLower(name))
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
		lvl = parsed
	}
	return log.NewWithOptions(out, log.Options{
		Prefix: meta.AppName,
		Level:  lvl,
	}), nil
}
