// Where: internal/app/plan.go
// What: Print the command line a stage would execute.
// Why: Let users inspect and copy the exact SAM invocation.
package app

import (
	"context"
	"fmt"

	"github.com/poruru-code/samdeploy/internal/command"
	"github.com/poruru-code/samdeploy/internal/pipeline"
	"github.com/poruru-code/samdeploy/internal/sam"
)

// PlanCmd prints a stage's compiled command without running it.
type PlanCmd struct {
	Stage string `arg:"" enum:"build,validate,package,deploy" help:"Stage to print (build, validate, package, deploy)"`
}

func runPlan(_ context.Context, cli CLI, deps Dependencies) int {
	inv, err := resolveInvocation(cli, deps)
	if err != nil {
		suggestions, available := invocationErrorHint(err, inv.File)
		return exitWithSuggestionAndAvailable(deps.Out, err.Error(), suggestions, available)
	}

	call := sam.Invocation{Binary: inv.SamBinary, Settings: inv.Effective.Settings}
	var builder *command.Builder
	if cli.Plan.Stage == pipeline.StageBuild {
		var ok bool
		if builder, ok = sam.BuildCommand(call); !ok {
			fmt.Fprintln(deps.Out, "build_command is not configured")
			return 0
		}
	} else if builder, err = sam.CommandFor(cli.Plan.Stage, call); err != nil {
		return exitWithError(deps.Out, err)
	}

	cmd, err := builder.Build()
	if err != nil {
		return exitWithError(deps.Out, err)
	}
	line, err := command.Quote(cmd.Tokens)
	if err != nil {
		return exitWithError(deps.Out, err)
	}
	fmt.Fprintln(deps.Out, line)
	return 0
}
