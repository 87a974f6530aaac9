// Where: internal/config/settings.go
// What: Deployment settings shared by the global section and each environment.
// Why: Give the SAM command compiler one typed snapshot per invocation.
package config

import (
	"path/filepath"
	"strings"
)

// Settings holds every option that feeds a SAM CLI invocation.
// The same shape is used for the global section and for environment overrides.
type Settings struct {
	Template         string `yaml:"template,omitempty"`
	SourceTemplate   string `yaml:"source_template,omitempty"`
	PackagedTemplate string `yaml:"packaged_template,omitempty"`
	CodeURI          string `yaml:"code_uri,omitempty"`

	S3Bucket  string `yaml:"s3_bucket,omitempty"`
	S3Prefix  string `yaml:"s3_prefix,omitempty"`
	Profile   string `yaml:"profile,omitempty"`
	Region    string `yaml:"region,omitempty"`
	KMSKeyID  string `yaml:"kms_key_id,omitempty"`
	StackName string `yaml:"stack_name,omitempty"`
	RoleARN   string `yaml:"role_arn,omitempty"`

	Capabilities       []string   `yaml:"capabilities,omitempty"`
	NotificationARNs   []string   `yaml:"notification_arns,omitempty"`
	Tags               []string   `yaml:"tags,omitempty"`
	ParameterOverrides Parameters `yaml:"parameter_overrides,omitempty"`

	ForceUpload            bool `yaml:"force_upload,omitempty"`
	UseJSON                bool `yaml:"use_json,omitempty"`
	Debug                  bool `yaml:"debug,omitempty"`
	NoExecuteChangeset     bool `yaml:"no_execute_changeset,omitempty"`
	FailOnEmptyChangeset   bool `yaml:"fail_on_empty_changeset,omitempty"`
	NoFailOnEmptyChangeset bool `yaml:"no_fail_on_empty_changeset,omitempty"`

	BuildCommand []string   `yaml:"build_command,omitempty"`
	TemplateVars Parameters `yaml:"template_vars,omitempty"`
}

const (
	defaultTemplate         = "template.yml"
	defaultPackagedTemplate = "packaged.yml"
)

// withDefaults fills the template paths when neither level configured them.
func (s Settings) withDefaults() Settings {
	if strings.TrimSpace(s.Template) == "" {
		s.Template = defaultTemplate
	}
	if strings.TrimSpace(s.PackagedTemplate) == "" {
		s.PackagedTemplate = defaultPackagedTemplate
	}
	return s
}

// withBaseDir anchors relative paths at baseDir.
func (s Settings) withBaseDir(baseDir string) Settings {
	s.Template = anchor(baseDir, s.Template)
	s.SourceTemplate = anchor(baseDir, s.SourceTemplate)
	s.PackagedTemplate = anchor(baseDir, s.PackagedTemplate)
	s.CodeURI = anchor(baseDir, s.CodeURI)
	return s
}

func anchor(baseDir, path string) string {
	path = strings.TrimSpace(path)
	if path == "" || filepath.IsAbs(path) || baseDir == "" {
		return path
	}
	return filepath.Join(baseDir, path)
}
