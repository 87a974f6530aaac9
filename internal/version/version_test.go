// Where: internal/version/version_test.go
// What: Tests for version reporting.
// Why: Keep linked, VCS and fallback versions stable.
package version

import (
	"runtime/debug"
	"testing"
)

func stubBuildInfo(t *testing.T, info *debug.BuildInfo, ok bool) {
	t.Helper()
	orig := readBuildInfo
	t.Cleanup(func() { readBuildInfo = orig })
	readBuildInfo = func() (*debug.BuildInfo, bool) { return info, ok }
}

func TestGetVersionPrefersLinkedVersion(t *testing.T) {
	orig := Version
	t.Cleanup(func() { Version = orig })
	Version = "v1.2.3"
	stubBuildInfo(t, nil, false)

	if got := GetVersion(); got != "v1.2.3" {
		t.Fatalf("expected linked version, got %q", got)
	}
}

func TestGetVersionShortensRevision(t *testing.T) {
	stubBuildInfo(t, &debug.BuildInfo{Settings: []debug.BuildSetting{
		{Key: "vcs.revision", Value: "0123456789abcdef"},
		{Key: "vcs.modified", Value: "true"},
	}}, true)

	if got := GetVersion(); got != "0123456 (dirty)" {
		t.Fatalf("unexpected version: %q", got)
	}
}

func TestGetVersionFallsBackToDev(t *testing.T) {
	stubBuildInfo(t, nil, false)
	if got := GetVersion(); got != "dev" {
		t.Fatalf("expected dev, got %q", got)
	}

	stubBuildInfo(t, &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}}, true)
	if got := GetVersion(); got != "dev" {
		t.Fatalf("expected dev for devel build, got %q", got)
	}
}

func TestStringIncludesAppName(t *testing.T) {
	stubBuildInfo(t, nil, false)
	if got := String(); got != "samdeploy dev" {
		t.Fatalf("unexpected version line: %q", got)
	}
}
