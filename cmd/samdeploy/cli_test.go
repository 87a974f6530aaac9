// Where: cmd/samdeploy/cli_test.go
// What: Tests for CLI dependency wiring.
// Why: Ensure buildDependencies is deterministic.
package main

import (
	"errors"
	"os"
	"testing"
)

func TestBuildDependenciesSuccess(t *testing.T) {
	origGetwd := getwd
	origIsTerminal := isTerminal
	t.Cleanup(func() {
		getwd = origGetwd
		isTerminal = origIsTerminal
	})

	getwd = func() (string, error) {
		return "/project", nil
	}
	isTerminal = func(*os.File) bool { return false }

	deps, err := buildDependencies()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if deps.ProjectDir != "/project" {
		t.Fatalf("unexpected project dir: %s", deps.ProjectDir)
	}
	if deps.Runner == nil || deps.Prompter == nil || deps.HostEnv == nil {
		t.Fatalf("expected runner, prompter and host env loader")
	}
	if deps.Interactive() {
		t.Fatalf("expected non-interactive session without a terminal")
	}
}

func TestBuildDependenciesGetwdError(t *testing.T) {
	origGetwd := getwd
	t.Cleanup(func() { getwd = origGetwd })

	getwd = func() (string, error) {
		return "", errors.New("boom")
	}

	if _, err := buildDependencies(); err == nil {
		t.Fatalf("expected error")
	}
}
