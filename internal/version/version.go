// Where: internal/version/version.go
// What: Version information retrieval.
// Why: Report which build of samdeploy produced a deployment.
package version

import (
	"fmt"
	"runtime/debug"

	"github.com/poruru-code/samdeploy/internal/meta"
)

// Version is set at link time with -ldflags "-X .../internal/version.Version=v1.2.3".
var Version = ""

var readBuildInfo = debug.ReadBuildInfo

// GetVersion returns the release version when one was linked in. Otherwise it
// falls back to the VCS revision from build info, marked "(dirty)" for a
// modified tree, or "dev" when neither is available.
func GetVersion() string {
	if Version != "" {
		return Version
	}
	info, ok := readBuildInfo()
	if !ok {
		return "dev"
	}

	var revision string
	var modified bool
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
			if len(revision) > 7 {
				revision = revision[:7]
			}
		case "vcs.modified":
			modified = setting.Value == "true"
		}
	}

	if revision == "" {
		if v := info.Main.Version; v != "" && v != "(devel)" {
			return v
		}
		return "dev"
	}
	if modified {
		return revision + " (dirty)"
	}
	return revision
}

// String renders the version line printed by `samdeploy version`.
func String() string {
	return fmt.Sprintf("%s %s", meta.AppName, GetVersion())
}
