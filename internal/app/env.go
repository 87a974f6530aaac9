// Where: internal/app/env.go
// What: Environment inspection commands.
// Why: Show which environments samdeploy.yml declares and which one is the default.
package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/poruru-code/samdeploy/internal/meta"
)

// EnvCmd groups environment subcommands.
type EnvCmd struct {
	List EnvListCmd `cmd:"" default:"1" help:"List environments"`
}

type EnvListCmd struct{}

// runEnvList prints declared environments, marking the default with an asterisk.
// An undeclared default environment is listed as well since it resolves to the
// global settings.
func runEnvList(_ context.Context, cli CLI, deps Dependencies) int {
	host, err := deps.HostEnv()
	if err != nil {
		return exitWithError(deps.Out, err)
	}
	file, err := loadConfigFile(cli, deps, host)
	if err != nil {
		suggestions, _ := invocationErrorHint(err, file)
		return exitWithSuggestion(deps.Out, err.Error(), suggestions)
	}

	defaultEnv := strings.TrimSpace(file.DefaultEnvironment)
	if defaultEnv == "" {
		defaultEnv = meta.DefaultEnvironment
	}
	names := file.EnvironmentNames()
	if _, declared := file.Environments[defaultEnv]; !declared {
		fmt.Fprintf(deps.Out, "* %s (global)\n", defaultEnv)
	}
	for _, name := range names {
		if name == defaultEnv {
			fmt.Fprintf(deps.Out, "* %s\n", name)
			continue
		}
		fmt.Fprintln(deps.Out, name)
	}
	return 0
}
