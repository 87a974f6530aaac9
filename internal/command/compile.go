// Where: internal/command/compile.go
// What: Pure compiler from an ordered clause list to a token sequence.
// Why: Keep argument ordering deterministic and free of logging side effects.
package command

import (
	"strconv"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

const (
	// DryRunBanner prefixes the human-readable command logged in dry-run mode.
	DryRunBanner = "Dry run, command to execute: "

	dryRunProgram = "echo"
	errorProgram  = "return"
)

// Spec lists the clauses of one command invocation in emission order.
type Spec struct {
	Program string
	Task    string
	DryRun  bool
	Clauses []Clause
}

// Command is the compiled token sequence ready for execution.
// Planned is set only for dry-run commands and holds what would have run.
type Command struct {
	Tokens  []string
	Planned []string
}

// IsDryRun reports whether the command is the dry-run sentinel.
func (c Command) IsDryRun() bool {
	return c.Planned != nil
}

// String joins the tokens with single spaces.
func (c Command) String() string {
	return Render(c.Tokens)
}

// Compile renders spec into a command. In dry-run mode it always returns the
// echo sentinel; Planned carries every clause that could be rendered.
func Compile(spec Spec) (Command, error) {
	if spec.DryRun {
		planned, _ := render(spec, true)
		if planned == nil {
			planned = []string{}
		}
		return Command{Tokens: DryRunCommand(), Planned: planned}, nil
	}

	tokens, err := render(spec, false)
	if err != nil {
		return Command{}, err
	}
	return Command{Tokens: tokens}, nil
}

func render(spec Spec, lenient bool) ([]string, error) {
	if isBlank(spec.Program) {
		return nil, errProgramRequired
	}
	tokens := []string{spec.Program}
	if !isBlank(spec.Task) {
		tokens = append(tokens, spec.Task)
	}
	for _, clause := range spec.Clauses {
		rendered, err := clause.tokens()
		if err != nil {
			if lenient {
				continue
			}
			return nil, err
		}
		tokens = append(tokens, rendered...)
	}
	return tokens, nil
}

// DryRunCommand returns the no-op sentinel used instead of a real invocation.
func DryRunCommand() []string {
	return []string{dryRunProgram}
}

// ErrorCommand returns the sentinel that exits with code when run by a shell.
func ErrorCommand(code int) []string {
	return []string{errorProgram, strconv.Itoa(code)}
}

// ExitCode reports the exit code carried by an error sentinel.
func ExitCode(tokens []string) (int, bool) {
	if len(tokens) != 2 || tokens[0] != errorProgram {
		return 0, false
	}
	code, err := strconv.Atoi(tokens[1])
	if err != nil {
		return 0, false
	}
	return code, true
}

// Render joins tokens with single spaces.
func Render(tokens []string) string {
	return strings.Join(tokens, " ")
}

// Quote renders tokens as a line that a POSIX shell parses back into the same tokens.
func Quote(tokens []string) (string, error) {
	quoted := make([]string, 0, len(tokens))
	for _, token := range tokens {
		q, err := syntax.Quote(token, syntax.LangPOSIX)
		if err != nil {
			return "", err
		}
		quoted = append(quoted, q)
	}
	return strings.Join(quoted, " "), nil
}
