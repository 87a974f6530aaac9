// Where: internal/generator/generate.go
// What: Generate the SAM template consumed by validate/package.
// Why: Point CodeUri at the freshly built artifact before packaging.
package generator

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/poruru-code/samdeploy/internal/config"
)

// ErrNoSourceTemplate reports that generation is not configured.
var ErrNoSourceTemplate = errors.New("no source template configured")

// Request configures one generation run.
type Request struct {
	Environment string
	Settings    config.Settings
	DryRun      bool
}

// Result describes the generated template.
type Result struct {
	Source  string
	Output  string
	Content string
	Written bool
}

// Enabled reports whether settings configure template generation.
func Enabled(settings config.Settings) bool {
	return strings.TrimSpace(settings.SourceTemplate) != ""
}

// Generate renders the source template into the configured template path.
// In dry-run mode the content is rendered but nothing is written.
func Generate(req Request) (Result, error) {
	s := req.Settings
	if !Enabled(s) {
		return Result{}, ErrNoSourceTemplate
	}
	if strings.TrimSpace(s.Template) == "" {
		return Result{}, fmt.Errorf("template output path is required")
	}
	source, err := filepath.Abs(s.SourceTemplate)
	if err != nil {
		return Result{}, err
	}
	output, err := filepath.Abs(s.Template)
	if err != nil {
		return Result{}, err
	}
	if source == output {
		return Result{}, fmt.Errorf("source template and template must differ: %s", source)
	}

	codeURI := strings.TrimSpace(s.CodeURI)
	if codeURI != "" {
		if codeURI, err = filepath.Abs(codeURI); err != nil {
			return Result{}, err
		}
	}

	content, err := RenderFile(source, TemplateData{
		CodeUri:     codeURI,
		Environment: req.Environment,
		StackName:   s.StackName,
		Region:      s.Region,
		Vars:        s.TemplateVars.Map(),
	})
	if err != nil {
		return Result{}, err
	}

	result := Result{Source: source, Output: output, Content: content}
	if req.DryRun {
		return result, nil
	}

	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return Result{}, fmt.Errorf("create template directory: %w", err)
	}
	if err := os.WriteFile(output, []byte(content), 0o644); err != nil {
		return Result{}, fmt.Errorf("write template: %w", err)
	}
	result.Written = true
	return result, nil
}
