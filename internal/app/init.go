// Where: internal/app/init.go
// What: Init command helpers.
// Why: Write a starter samdeploy.yml for a SAM project.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/poruru-code/samdeploy/internal/config"
	"github.com/poruru-code/samdeploy/internal/meta"
	"github.com/poruru-code/samdeploy/internal/ui"
)

var errConfigExists = errors.New("configuration already exists")

// InitCmd writes samdeploy.yml into the project directory.
type InitCmd struct {
	Template     string   `short:"t" default:"template.yml" help:"SAM template path, relative to the project"`
	StackName    string   `name:"stack-name" help:"Stack name (default: project directory name)"`
	Region       string   `help:"AWS region"`
	S3Bucket     string   `name:"s3-bucket" help:"Artifact bucket for sam package"`
	Environments []string `name:"environments" sep:"," help:"Environments to declare; the first becomes the default"`
	Force        bool     `help:"Overwrite an existing samdeploy.yml"`
}

func runInit(_ context.Context, cli CLI, deps Dependencies) int {
	path, err := writeInitialConfig(deps.ProjectDir, cli.Init)
	if err != nil {
		if errors.Is(err, errConfigExists) {
			return exitWithSuggestion(deps.Out, err.Error(), []string{meta.AppName + " init --force"})
		}
		return exitWithError(deps.Out, err)
	}
	console := ui.NewWithEmoji(deps.Out, !cli.NoEmoji)
	console.Success("Created " + path)
	console.Info("Next: " + meta.AppName + " plan deploy")
	return 0
}

// writeInitialConfig saves the starter configuration and returns its path.
func writeInitialConfig(projectDir string, opts InitCmd) (string, error) {
	dir, err := filepath.Abs(projectDir)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, meta.ConfigFileNames[0])
	if _, err := os.Stat(path); err == nil && !opts.Force {
		return "", fmt.Errorf("%w: %s", errConfigExists, path)
	}

	stack := strings.TrimSpace(opts.StackName)
	if stack == "" {
		stack = normalizeStackName(filepath.Base(dir))
	}

	file := config.File{
		Settings: config.Settings{
			Template:         opts.Template,
			PackagedTemplate: "packaged.yml",
			StackName:        stack,
			Region:           strings.TrimSpace(opts.Region),
			S3Bucket:         strings.TrimSpace(opts.S3Bucket),
			Capabilities:     []string{"CAPABILITY_IAM"},
		},
	}
	for _, env := range normalizeEnvs(opts.Environments) {
		if file.Environments == nil {
			file.Environments = map[string]config.Settings{}
			file.DefaultEnvironment = env
		}
		file.Environments[env] = config.Settings{StackName: stack + "-" + env}
	}

	if err := config.Save(path, file); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

func normalizeEnvs(envs []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(envs))
	for _, env := range envs {
		env = strings.TrimSpace(env)
		if env == "" || seen[env] {
			continue
		}
		seen[env] = true
		out = append(out, env)
	}
	return out
}

// normalizeStackName maps a directory name onto CloudFormation's
// [A-Za-z][-A-Za-z0-9]* stack name alphabet.
func normalizeStackName(value string) string {
	var b strings.Builder
	for _, r := range value {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	name := strings.Trim(b.String(), "-")
	for strings.Contains(name, "--") {
		name = strings.ReplaceAll(name, "--", "-")
	}
	if name == "" || !(name[0] >= 'a' && name[0] <= 'z' || name[0] >= 'A' && name[0] <= 'Z') {
		name = "stack-" + name
	}
	return strings.TrimSuffix(name, "-")
}
