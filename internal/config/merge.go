// Where: internal/config/merge.go
// What: Global/environment settings merge and environment selection.
// Why: Produce one immutable effective configuration per invocation.
package config

import (
	"fmt"
	"strings"

	"dario.cat/mergo"
	"github.com/poruru-code/samdeploy/internal/meta"
)

// Merge overlays override onto global field by field. Non-empty override
// values win; empty strings, empty lists and false flags fall through.
// List and map fields are replaced as a whole, never appended.
func Merge(global, override Settings) (Settings, error) {
	merged := global
	if err := mergo.Merge(&merged, override, mergo.WithOverride); err != nil {
		return Settings{}, fmt.Errorf("merge settings: %w", err)
	}
	return merged, nil
}

// Effective is the resolved configuration for one invocation.
type Effective struct {
	Environment string
	Settings    Settings
}

// Resolve selects env from file and merges it over the global section.
// An empty env selects the file's default environment. The default
// environment may be left undeclared, in which case the global section is
// used as is; any other undeclared name is an error.
func Resolve(file File, env string) (Effective, error) {
	defaultEnv := strings.TrimSpace(file.DefaultEnvironment)
	if defaultEnv == "" {
		defaultEnv = meta.DefaultEnvironment
	}

	name := strings.TrimSpace(env)
	if name == "" {
		name = defaultEnv
	}

	settings := file.Settings
	override, declared := file.Environments[name]
	switch {
	case declared:
		merged, err := Merge(settings, override)
		if err != nil {
			return Effective{}, err
		}
		settings = merged
	case name != defaultEnv:
		return Effective{}, fmt.Errorf("%w: %q (declared: %s)", ErrUnknownEnvironment, name, declaredList(file))
	}

	settings = settings.withDefaults().withBaseDir(file.Dir())
	return Effective{Environment: name, Settings: settings}, nil
}

func declaredList(file File) string {
	names := file.EnvironmentNames()
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ", ")
}
