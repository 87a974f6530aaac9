// Where: internal/architecture/imports_test.go
// What: Import graph scanning shared by the boundary tests.
// Why: Parse imports once per test instead of re-walking the tree in every rule.
package architecture

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const modulePath = "github.com/poruru-code/samdeploy/"

// packageImports maps a package directory relative to the module root
// (for example "internal/sam") to the import paths of its non-test files.
type packageImports map[string]map[string][]string

func scanImports(t *testing.T) packageImports {
	t.Helper()
	root := resolveModuleRoot(t)
	fset := token.NewFileSet()
	graph := packageImports{}

	for _, top := range []string{"internal", "cmd"} {
		err := filepath.WalkDir(filepath.Join(root, top), func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !strings.HasSuffix(d.Name(), ".go") || strings.HasSuffix(d.Name(), "_test.go") {
				return nil
			}
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			pkg := filepath.ToSlash(filepath.Dir(rel))
			file, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
			if err != nil {
				return err
			}
			if graph[pkg] == nil {
				graph[pkg] = map[string][]string{}
			}
			for _, imp := range file.Imports {
				importPath := strings.Trim(imp.Path.Value, "\"")
				graph[pkg][importPath] = append(graph[pkg][importPath], filepath.Base(path))
			}
			return nil
		})
		if err != nil {
			t.Fatalf("scan %s: %v", top, err)
		}
	}
	return graph
}

// internalDeps returns the module-local packages pkg imports.
func (g packageImports) internalDeps(pkg string) []string {
	var deps []string
	for importPath := range g[pkg] {
		if strings.HasPrefix(importPath, modulePath) {
			deps = append(deps, strings.TrimPrefix(importPath, modulePath))
		}
	}
	return deps
}

func resolveModuleRoot(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	return filepath.Clean(filepath.Join(wd, "..", ".."))
}
