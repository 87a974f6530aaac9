// Where: internal/app/app.go
// What: CLI entrypoint logic.
// Why: Provide a testable command dispatcher.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/poruru-code/samdeploy/internal/config"
	"github.com/poruru-code/samdeploy/internal/interaction"
	"github.com/poruru-code/samdeploy/internal/meta"
	"github.com/poruru-code/samdeploy/internal/pipeline"
	"github.com/poruru-code/samdeploy/internal/version"
)

// Dependencies holds all injected dependencies required for CLI command execution.
type Dependencies struct {
	ProjectDir string
	Out        io.Writer
	ErrOut     io.Writer
	Runner     pipeline.Runner
	Prompter   interaction.Prompter
	// Interactive reports whether prompts may be shown.
	Interactive func() bool
	HostEnv     func() (config.HostEnv, error)
}

// CLI defines the command-line interface structure parsed by Kong.
// It contains global flags and all subcommand definitions.
type CLI struct {
	Config   string `short:"c" help:"Path to samdeploy.yml (default: search upward)"`
	EnvFlag  string `short:"e" name:"env" help:"Environment (default: default_environment or test)"`
	EnvFile  string `name:"env-file" help:"Path to .env file"`
	DryRun   bool   `name:"dry-run" help:"Log commands instead of running them"`
	SamBin   string `name:"sam-bin" help:"SAM CLI executable"`
	LogLevel string `name:"log-level" help:"Log level (debug, info, warn, error)"`
	Yes      bool   `short:"y" help:"Skip confirmation prompts"`
	NoEmoji  bool   `name:"no-emoji" help:"Disable emoji in output"`

	Init     InitCmd     `cmd:"" help:"Create samdeploy.yml in the project directory"`
	Build    BuildCmd    `cmd:"" help:"Run the host build command"`
	Generate GenerateCmd `cmd:"" help:"Render the SAM template from source_template"`
	Validate ValidateCmd `cmd:"" help:"Validate the SAM template"`
	Package  PackageCmd  `cmd:"" help:"Package the SAM application"`
	Deploy   DeployCmd   `cmd:"" help:"Deploy the SAM application"`
	Plan     PlanCmd     `cmd:"" help:"Print the command a stage would run"`
	Env      EnvCmd      `cmd:"" name:"env" help:"Inspect environments"`
	Version  VersionCmd  `cmd:"" help:"Show version information"`
}

type (
	BuildCmd    struct{}
	GenerateCmd struct{}
	ValidateCmd struct{}
	PackageCmd  struct{}
	DeployCmd   struct{}
	VersionCmd  struct{}
)

// Run is the main entry point for CLI command execution.
// It parses the command-line arguments, identifies the requested command,
// and dispatches to the appropriate handler. Returns the process exit code.
func Run(ctx context.Context, args []string, deps Dependencies) int {
	deps = withDefaults(deps)
	out := deps.Out

	cli := CLI{}
	parser, err := kong.New(&cli,
		kong.Name(meta.AppName),
		kong.Description("Run AWS SAM CLI build, validate, package and deploy steps from samdeploy.yml."),
		kong.Writers(out, deps.ErrOut),
	)
	if err != nil {
		return exitWithError(out, err)
	}

	if len(args) == 0 {
		return runNoArgs(parser)
	}
	kctx, err := parser.Parse(args)
	if err != nil {
		return handleParseError(args, err, deps)
	}

	loadEnvFile(cli.EnvFile, deps)

	command := kctx.Command()
	if exitCode, handled := dispatchCommand(ctx, command, cli, deps); handled {
		return exitCode
	}

	fmt.Fprintln(out, "unknown command")
	return 1
}

func withDefaults(deps Dependencies) Dependencies {
	if deps.Out == nil {
		deps.Out = os.Stdout
	}
	if deps.ErrOut == nil {
		deps.ErrOut = os.Stderr
	}
	if deps.ProjectDir == "" {
		deps.ProjectDir = "."
	}
	if deps.Runner == nil {
		deps.Runner = pipeline.ExecRunner{Stdout: deps.Out, Stderr: deps.ErrOut}
	}
	if deps.Interactive == nil {
		deps.Interactive = func() bool { return false }
	}
	if deps.HostEnv == nil {
		deps.HostEnv = config.LoadHostEnv
	}
	return deps
}

// loadEnvFile loads the given .env file, or .env in the project directory when present.
func loadEnvFile(path string, deps Dependencies) {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			fmt.Fprintf(deps.Out, "Warning: failed to load env file %s: %v\n", path, err)
		}
		return
	}
	defaultPath := filepath.Join(deps.ProjectDir, ".env")
	if _, err := os.Stat(defaultPath); err == nil {
		if err := godotenv.Load(defaultPath); err != nil {
			fmt.Fprintf(deps.Out, "Warning: failed to load .env: %v\n", err)
		}
	}
}

type commandHandler func(context.Context, CLI, Dependencies) int

func dispatchCommand(ctx context.Context, command string, cli CLI, deps Dependencies) (int, bool) {
	exactHandlers := map[string]commandHandler{
		"init":     runInit,
		"build":    stageHandler(pipeline.StageBuild),
		"generate": stageHandler(pipeline.StageGenerate),
		"validate": stageHandler(pipeline.StageValidate),
		"package":  stageHandler(pipeline.StagePackage),
		"deploy":   stageHandler(pipeline.StageDeploy),
		"env":      runEnvList,
		"env list": runEnvList,
		"version":  func(_ context.Context, _ CLI, deps Dependencies) int { return runVersion(deps.Out) },
	}
	if handler, ok := exactHandlers[command]; ok {
		return handler(ctx, cli, deps), true
	}

	if strings.HasPrefix(command, "plan") {
		return runPlan(ctx, cli, deps), true
	}
	return 1, false
}

// runNoArgs prints usage instead of failing on a missing command.
func runNoArgs(parser *kong.Kong) int {
	kctx, err := kong.Trace(parser, nil)
	if err != nil {
		return 1
	}
	if err := kctx.PrintUsage(false); err != nil {
		return 1
	}
	return 0
}

// runVersion prints the version information of the CLI.
func runVersion(out io.Writer) int {
	fmt.Fprintln(out, version.String())
	return 0
}

// handleParseError prints parse errors with a pointer to the command help.
func handleParseError(args []string, err error, deps Dependencies) int {
	help := meta.AppName + " --help"
	if cmd := commandName(args); cmd != "" {
		help = meta.AppName + " " + cmd + " --help"
	}
	return exitWithSuggestion(deps.Out, err.Error(), []string{help})
}

// commandName extracts the first non-flag argument from the command line,
// which represents the command name. Recognizes and skips known flag pairs.
func commandName(args []string) string {
	skipNext := false
	for _, arg := range args {
		if skipNext {
			skipNext = false
			continue
		}
		if strings.HasPrefix(arg, "-") {
			switch arg {
			case "-e", "--env", "-c", "--config", "--env-file", "--sam-bin", "--log-level":
				skipNext = true
			}
			continue
		}
		return arg
	}
	return ""
}
