// Where: internal/config/file.go
// What: Project configuration file discovery and loading.
// Why: Read samdeploy.yml consistently and reject malformed files early.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/poruru-code/samdeploy/internal/meta"
	"gopkg.in/yaml.v3"
)

// File is the parsed project configuration: global settings plus named
// environment overrides.
type File struct {
	Settings           `yaml:",inline"`
	DefaultEnvironment string              `yaml:"default_environment,omitempty"`
	Environments       map[string]Settings `yaml:"environments,omitempty"`

	// Path is the absolute location the file was loaded from.
	Path string `yaml:"-"`
}

// Dir returns the directory relative paths are resolved against.
func (f File) Dir() string {
	if f.Path == "" {
		return ""
	}
	return filepath.Dir(f.Path)
}

// EnvironmentNames lists declared environments in sorted order.
func (f File) EnvironmentNames() []string {
	names := make([]string, 0, len(f.Environments))
	for name := range f.Environments {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Load reads, validates and decodes the configuration file at path.
func Load(path string) (File, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return File{}, fmt.Errorf("resolve config path: %w", err)
	}
	payload, err := os.ReadFile(abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return File{}, fmt.Errorf("%w: %s", ErrConfigNotFound, abs)
		}
		return File{}, fmt.Errorf("read config: %w", err)
	}

	file, err := Parse(payload)
	if err != nil {
		return File{}, fmt.Errorf("%s: %w", abs, err)
	}
	file.Path = abs
	return file, nil
}

// Parse validates payload against the configuration schema and decodes it.
func Parse(payload []byte) (File, error) {
	if len(bytes.TrimSpace(payload)) == 0 {
		return File{}, nil
	}
	if err := validateSchema(payload); err != nil {
		return File{}, err
	}

	var file File
	decoder := yaml.NewDecoder(bytes.NewReader(payload))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		return File{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return file, nil
}

// Save writes file to path as YAML.
func Save(path string, file File) error {
	payload, err := yaml.Marshal(&file)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o644)
}

// FindConfigFile returns the configuration file to use.
// Priority:
// 1. explicit path (flag or host environment variable)
// 2. upward search for samdeploy.yml / samdeploy.yaml from startDir
func FindConfigFile(explicit, startDir string) (string, error) {
	if explicit = strings.TrimSpace(explicit); explicit != "" {
		return filepath.Abs(explicit)
	}

	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}
	for {
		for _, name := range meta.ConfigFileNames {
			candidate := filepath.Join(dir, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", fmt.Errorf("%w: no %s found from %s", ErrConfigNotFound, meta.ConfigFileNames[0], startDir)
}
