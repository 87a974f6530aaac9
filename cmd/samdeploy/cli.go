// Where: cmd/samdeploy/cli.go
// What: CLI dependency wiring helpers.
// Why: Centralize construction for testability.
package main

import (
	"os"

	"github.com/poruru-code/samdeploy/internal/app"
	"github.com/poruru-code/samdeploy/internal/config"
	"github.com/poruru-code/samdeploy/internal/interaction"
	"github.com/poruru-code/samdeploy/internal/pipeline"
)

var (
	getwd       = os.Getwd
	isTerminal  = interaction.IsTerminal
	loadHostEnv = config.LoadHostEnv
)

// buildDependencies constructs the runtime dependencies of the CLI.
// Commands run in the working directory's project and write to stdout/stderr.
func buildDependencies() (app.Dependencies, error) {
	projectDir, err := getwd()
	if err != nil {
		return app.Dependencies{}, err
	}

	return app.Dependencies{
		ProjectDir: projectDir,
		Out:        os.Stdout,
		ErrOut:     os.Stderr,
		Runner:     pipeline.ExecRunner{Stdout: os.Stdout, Stderr: os.Stderr},
		Prompter:   interaction.HuhPrompter{},
		Interactive: func() bool {
			return isTerminal(os.Stdin) && isTerminal(os.Stdout)
		},
		HostEnv: loadHostEnv,
	}, nil
}
