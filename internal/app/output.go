// Where: internal/app/output.go
// What: Shared error output helpers for CLI commands.
// Why: Keep failure messages and next-step hints consistent.
package app

import (
	"fmt"
	"io"

	"github.com/poruru-code/samdeploy/internal/ui"
)

func exitWithError(out io.Writer, err error) int {
	fmt.Fprintln(out, err)
	return 1
}

// exitWithSuggestion prints an error followed by suggested next steps.
func exitWithSuggestion(out io.Writer, message string, suggestions []string) int {
	console := ui.New(out)
	console.Warn(message)
	if len(suggestions) > 0 {
		console.Info("Next steps:")
		for _, s := range suggestions {
			console.ItemPlain("- " + s)
		}
	}
	return 1
}

// exitWithSuggestionAndAvailable prints an error with suggestions and available options.
func exitWithSuggestionAndAvailable(out io.Writer, message string, suggestions, available []string) int {
	exitWithSuggestion(out, message, suggestions)
	if len(available) > 0 {
		ui.New(out).Info("Available:")
		for _, a := range available {
			ui.New(out).ItemPlain("- " + a)
		}
	}
	return 1
}
