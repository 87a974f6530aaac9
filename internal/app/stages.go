// Where: internal/app/stages.go
// What: build/generate/validate/package/deploy command handlers.
// Why: Run the requested stage with its dependency chain and relay the exit status.
package app

import (
	"context"
	"fmt"

	"github.com/poruru-code/samdeploy/internal/pipeline"
	"github.com/poruru-code/samdeploy/internal/ui"
)

var stageEmoji = map[string]string{
	pipeline.StageBuild:    "🔨",
	pipeline.StageGenerate: "📝",
	pipeline.StageValidate: "🔍",
	pipeline.StagePackage:  "📦",
	pipeline.StageDeploy:   "🚀",
}

// consoleObserver reports stage progress on the console.
type consoleObserver struct {
	console *ui.Console
}

func (o consoleObserver) StageStarted(name string) {
	o.console.BlockStart(stageEmoji[name], "Running "+name)
}

func (o consoleObserver) StageSkipped(name string) {
	o.console.ItemPlain(name + " not configured, skipping")
}

func (o consoleObserver) StageFinished(name string, err error) {
	if err != nil {
		o.console.Error(fmt.Sprintf("%s failed", name))
		return
	}
	o.console.Success(name + " completed")
}

func stageHandler(target string) commandHandler {
	return func(ctx context.Context, cli CLI, deps Dependencies) int {
		return runStage(ctx, target, cli, deps)
	}
}

// runStage resolves the invocation and runs target with its dependencies.
func runStage(ctx context.Context, target string, cli CLI, deps Dependencies) int {
	console := ui.NewWithEmoji(deps.Out, !cli.NoEmoji)

	inv, err := resolveInvocation(cli, deps)
	if err != nil {
		suggestions, available := invocationErrorHint(err, inv.File)
		return exitWithSuggestionAndAvailable(deps.Out, err.Error(), suggestions, available)
	}

	printSummary(console, target, inv)

	if target == pipeline.StageDeploy && !inv.DryRun && !cli.Yes {
		ok, err := confirmDeploy(inv, deps)
		if err != nil {
			return exitWithError(deps.Out, err)
		}
		if !ok {
			console.Warn("Deploy cancelled")
			return 1
		}
	}

	p, err := pipeline.NewSAM(pipeline.Options{
		Effective: inv.Effective,
		Binary:    inv.SamBinary,
		DryRun:    inv.DryRun,
		Dir:       inv.File.Dir(),
		Runner:    deps.Runner,
		Logger:    inv.Logger,
		Observer:  consoleObserver{console: console},
	})
	if err != nil {
		return exitWithError(deps.Out, err)
	}

	if err := p.Run(ctx, target); err != nil {
		inv.Logger.Error(err.Error())
		return pipeline.ExitCode(err)
	}
	return 0
}

func printSummary(console *ui.Console, target string, inv invocation) {
	s := inv.Effective.Settings
	console.BlockStart("⚙️", "samdeploy "+target)
	console.Item("Config", inv.File.Path)
	console.Item("Environment", inv.Effective.Environment)
	if s.StackName != "" {
		console.Item("Stack", s.StackName)
	}
	if s.Region != "" {
		console.Item("Region", s.Region)
	}
	if s.RoleARN != "" {
		console.Item("Role ARN", s.RoleARN)
	}
	console.Item("Template", s.Template)
	console.Item("Packaged template", s.PackagedTemplate)
	if inv.DryRun {
		console.Item("Dry run", "yes")
	}
	console.BlockEnd()
}

// confirmDeploy asks before deploying from an interactive session.
// Non-interactive sessions proceed without a prompt.
func confirmDeploy(inv invocation, deps Dependencies) (bool, error) {
	if deps.Prompter == nil || !deps.Interactive() {
		return true, nil
	}
	title := fmt.Sprintf("Deploy stack %q to environment %q?", inv.Effective.Settings.StackName, inv.Effective.Environment)
	return deps.Prompter.Confirm(title)
}
