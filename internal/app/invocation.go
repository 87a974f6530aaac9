// Where: internal/app/invocation.go
// What: Resolve flags, host environment and config file into one invocation.
// Why: Build the effective configuration once, at the orchestration boundary.
package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/poruru-code/samdeploy/internal/config"
	"github.com/poruru-code/samdeploy/internal/logging"
	"github.com/poruru-code/samdeploy/internal/meta"
)

// invocation is the read-only input of one command run.
type invocation struct {
	File      config.File
	Effective config.Effective
	DryRun    bool
	SamBinary string
	Logger    *log.Logger
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// loadConfigFile locates and parses the configuration file.
func loadConfigFile(cli CLI, deps Dependencies, host config.HostEnv) (config.File, error) {
	path, err := config.FindConfigFile(firstNonEmpty(cli.Config, host.ConfigPath), deps.ProjectDir)
	if err != nil {
		return config.File{}, err
	}
	return config.Load(path)
}

// resolveInvocation merges flags over host variables and resolves the environment.
// Flags take precedence over SAMDEPLOY_* variables. On environment errors the
// returned invocation still carries the loaded file.
func resolveInvocation(cli CLI, deps Dependencies) (invocation, error) {
	host, err := deps.HostEnv()
	if err != nil {
		return invocation{}, err
	}

	logger, err := logging.New(deps.ErrOut, firstNonEmpty(cli.LogLevel, host.LogLevel))
	if err != nil {
		return invocation{}, err
	}

	file, err := loadConfigFile(cli, deps, host)
	if err != nil {
		return invocation{}, err
	}

	env, err := selectEnvironment(firstNonEmpty(cli.EnvFlag, host.Environment), file, deps)
	if err != nil {
		return invocation{File: file}, err
	}

	effective, err := config.Resolve(file, env)
	if err != nil {
		return invocation{File: file}, err
	}

	return invocation{
		File:      file,
		Effective: effective,
		DryRun:    cli.DryRun || host.DryRun,
		SamBinary: firstNonEmpty(cli.SamBin, host.SamBinary, meta.DefaultSamBinary),
		Logger:    logger,
	}, nil
}

// selectEnvironment prompts for an environment when none was requested, the
// file declares several and the session is interactive.
func selectEnvironment(requested string, file config.File, deps Dependencies) (string, error) {
	if requested != "" || strings.TrimSpace(file.DefaultEnvironment) != "" {
		return requested, nil
	}
	names := file.EnvironmentNames()
	if len(names) < 2 || deps.Prompter == nil || !deps.Interactive() {
		return requested, nil
	}
	selected, err := deps.Prompter.Select("Select environment", names)
	if err != nil {
		return "", fmt.Errorf("select environment: %w", err)
	}
	return selected, nil
}

// invocationErrorHint returns follow-up suggestions for configuration failures.
func invocationErrorHint(err error, file config.File) ([]string, []string) {
	switch {
	case errors.Is(err, config.ErrConfigNotFound):
		return []string{
			meta.AppName + " init",
			"pass --config <path> or set " + meta.EnvPrefix + "_CONFIG",
		}, nil
	case errors.Is(err, config.ErrUnknownEnvironment):
		return []string{meta.AppName + " env list"}, file.EnvironmentNames()
	default:
		return nil, nil
	}
}
