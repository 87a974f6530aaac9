// Where: internal/config/env.go
// What: Host environment variables that influence an invocation.
// Why: Allow CI pipelines to select environment/dry-run without flags.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/poruru-code/samdeploy/internal/meta"
)

// HostEnv holds SAMDEPLOY_* variables. Command-line flags take precedence.
type HostEnv struct {
	Environment string `env:"ENV"`
	ConfigPath  string `env:"CONFIG"`
	DryRun      bool   `env:"DRY_RUN"`
	SamBinary   string `env:"SAM_BIN" envDefault:"sam"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
}

// LoadHostEnv parses the prefixed host environment.
func LoadHostEnv() (HostEnv, error) {
	return parseHostEnv(nil)
}

func parseHostEnv(environment map[string]string) (HostEnv, error) {
	var host HostEnv
	opts := env.Options{Prefix: meta.EnvPrefix + "_"}
	if environment != nil {
		opts.Environment = environment
	}
	if err := env.ParseWithOptions(&host, opts); err != nil {
		return HostEnv{}, fmt.Errorf("parse host environment: %w", err)
	}
	return host, nil
}
