// Where: internal/generator/renderer.go
// What: Render source SAM templates with text/template and sprig.
// Why: Inject build outputs (CodeUri) and per-environment values into the template.
package generator

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// TemplateData is the value exposed to source templates.
type TemplateData struct {
	CodeUri     string
	Environment string
	StackName   string
	Region      string
	Vars        map[string]string
}

// RenderFile renders the template stored at path.
func RenderFile(path string, data TemplateData) (string, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read source template: %w", err)
	}
	return Render(filepath.Base(path), string(source), data)
}

// Render renders source. Unknown keys in .Vars are an error.
func Render(name, source string, data TemplateData) (string, error) {
	if data.Vars == nil {
		data.Vars = map[string]string{}
	}
	tmpl, err := template.New(name).
		Funcs(sprig.TxtFuncMap()).
		Option("missingkey=error").
		Parse(source)
	if err != nil {
		return "", fmt.Errorf("parse source template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render source template: %w", err)
	}
	return buf.String(), nil
}
