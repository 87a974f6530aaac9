// Where: internal/meta/meta.go
// What: CLI metadata constants.
// Why: Keep naming and defaults in one place.
package meta

const (
	// Project Identity
	AppName   = "samdeploy"
	EnvPrefix = "SAMDEPLOY"

	// Defaults
	DefaultEnvironment = "test"
	DefaultSamBinary   = "sam"
)

// ConfigFileNames lists accepted project configuration file names in lookup order.
var ConfigFileNames = []string{"samdeploy.yml", "samdeploy.yaml"}
