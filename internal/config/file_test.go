// Where: internal/config/file_test.go
// What: Tests for configuration discovery, validation and decoding.
// Why: Ensure malformed files are rejected and order-sensitive fields survive.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

const sampleConfig = `
template: template.yml
packaged_template: build/packaged.yml
s3_bucket: example-s3-bucket
region: eu-west-1
force_upload: true
capabilities:
  - CAPABILITY_IAM
  - CAPABILITY_NAMED_IAM
parameter_overrides:
  Zeta: "1"
  Alpha: two
  Port: 8080
default_environment: dev
environments:
  dev:
    stack_name: app-dev
  prod:
    stack_name: app-prod
    region: us-east-1
    parameter_overrides:
      Zeta: "9"
  empty:
`

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "samdeploy.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDecodesOrderedParameters(t *testing.T) {
	path := writeConfig(t, t.TempDir(), sampleConfig)

	file, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if file.Path != path {
		t.Fatalf("unexpected path: %s", file.Path)
	}
	want := Parameters{{Key: "Zeta", Value: "1"}, {Key: "Alpha", Value: "two"}, {Key: "Port", Value: "8080"}}
	if !reflect.DeepEqual(file.ParameterOverrides, want) {
		t.Fatalf("unexpected parameters: %#v", file.ParameterOverrides)
	}
	if got := file.EnvironmentNames(); !reflect.DeepEqual(got, []string{"dev", "empty", "prod"}) {
		t.Fatalf("unexpected environments: %v", got)
	}
	if !file.ForceUpload {
		t.Fatalf("expected force_upload")
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "templat: typo.yml\n")
	if _, err := Load(path); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected invalid config, got %v", err)
	}
}

func TestLoadRejectsUnknownEnvironmentKeys(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "environments:\n  prod:\n    stack: x\n")
	if _, err := Load(path); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected invalid config, got %v", err)
	}
}

func TestLoadRejectsWrongTypes(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "capabilities: CAPABILITY_IAM\n")
	if _, err := Load(path); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected invalid config, got %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	if !errors.Is(err, ErrConfigNotFound) {
		t.Fatalf("expected config not found, got %v", err)
	}
}

func TestParseEmptyPayload(t *testing.T) {
	file, err := Parse([]byte("\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(file.Environments) != 0 {
		t.Fatalf("expected no environments")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "samdeploy.yml")
	file := File{
		Settings: Settings{
			StackName:          "stack",
			Tags:               []string{"a", "b"},
			ParameterOverrides: Parameters{{Key: "B", Value: "1"}, {Key: "A", Value: "2"}},
		},
		Environments: map[string]Settings{"prod": {Region: "eu-west-1"}},
	}
	if err := Save(path, file); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	loaded.Path = ""
	if !reflect.DeepEqual(file, loaded) {
		t.Fatalf("round trip mismatch:\n got: %#v\nwant: %#v", loaded, file)
	}
}

func TestFindConfigFileSearchesUpward(t *testing.T) {
	root := t.TempDir()
	path := writeConfig(t, root, "stack_name: x\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	got, err := FindConfigFile("", nested)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got != path {
		t.Fatalf("unexpected config path: %s", got)
	}
}

func TestFindConfigFileExplicit(t *testing.T) {
	got, err := FindConfigFile("/etc/custom.yml", t.TempDir())
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got != "/etc/custom.yml" {
		t.Fatalf("unexpected path: %s", got)
	}
}

func TestFindConfigFileMissing(t *testing.T) {
	if _, err := FindConfigFile("", t.TempDir()); !errors.Is(err, ErrConfigNotFound) {
		t.Fatalf("expected config not found, got %v", err)
	}
}
