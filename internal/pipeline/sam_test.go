// Where: internal/pipeline/sam_test.go
// What: Tests for the SAM stage chain.
// Why: Ensure ordering, dry-run propagation and the package postcondition.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/poruru-code/samdeploy/internal/config"
)

type fakeRunner struct {
	calls   [][]string
	dirs    []string
	results map[string]error
	onRun   func(argv []string)
}

func (f *fakeRunner) Run(_ context.Context, dir string, argv []string) error {
	f.calls = append(f.calls, append([]string(nil), argv...))
	f.dirs = append(f.dirs, dir)
	if f.onRun != nil {
		f.onRun(argv)
	}
	key := argv[0]
	if len(argv) > 1 {
		key += " " + argv[1]
	}
	return f.results[key]
}

type nopLogger struct {
	infos []string
}

func (l *nopLogger) Info(msg any, _ ...any) { l.infos = append(l.infos, fmt.Sprint(msg)) }
func (l *nopLogger) Error(any, ...any)      {}

type fixture struct {
	dir       string
	template  string
	packaged  string
	effective config.Effective
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	dir := t.TempDir()
	template := filepath.Join(dir, "template.yml")
	if err := os.WriteFile(template, []byte("Resources: {}\n"), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}
	packaged := filepath.Join(dir, "packaged.yml")
	return fixture{
		dir:      dir,
		template: template,
		packaged: packaged,
		effective: config.Effective{
			Environment: "test",
			Settings: config.Settings{
				Template:         template,
				PackagedTemplate: packaged,
				StackName:        "stack",
				S3Bucket:         "bucket",
			},
		},
	}
}

func commandNames(calls [][]string) []string {
	out := make([]string, 0, len(calls))
	for _, argv := range calls {
		out = append(out, strings.Join(argv[:min(2, len(argv))], " "))
	}
	return out
}

func TestSAMDeployRunsFullChain(t *testing.T) {
	fx := newFixture(t)
	fx.effective.Settings.BuildCommand = []string{"make", "build"}
	runner := &fakeRunner{onRun: func(argv []string) {
		if len(argv) > 1 && argv[1] == "package" {
			_ = os.WriteFile(fx.packaged, []byte("packaged"), 0o644)
		}
	}}

	p, err := NewSAM(Options{Effective: fx.effective, Dir: fx.dir, Runner: runner})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := p.Run(context.Background(), StageDeploy); err != nil {
		t.Fatalf("run: %v", err)
	}

	want := []string{"make build", "sam validate", "sam package", "sam deploy"}
	if got := commandNames(runner.calls); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected commands: %v", got)
	}
	for _, dir := range runner.dirs {
		if dir != fx.dir {
			t.Fatalf("unexpected working dir: %s", dir)
		}
	}
}

func TestSAMPackageMissingOutput(t *testing.T) {
	fx := newFixture(t)
	runner := &fakeRunner{}

	p, err := NewSAM(Options{Effective: fx.effective, Runner: runner})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	err = p.Run(context.Background(), StageDeploy)
	if !errors.Is(err, ErrPackagedTemplateMissing) {
		t.Fatalf("expected packaged template missing, got %v", err)
	}
	if got := commandNames(runner.calls); !reflect.DeepEqual(got, []string{"sam validate", "sam package"}) {
		t.Fatalf("deploy must not run: %v", got)
	}
}

func TestSAMValidateFailureAborts(t *testing.T) {
	fx := newFixture(t)
	failure := &ExitError{Code: 2}
	runner := &fakeRunner{results: map[string]error{"sam validate": failure}}

	p, err := NewSAM(Options{Effective: fx.effective, Runner: runner})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	err = p.Run(context.Background(), StageDeploy)
	if !errors.Is(err, failure) || ExitCode(err) != 2 {
		t.Fatalf("expected validate failure to surface, got %v", err)
	}
	if len(runner.calls) != 1 {
		t.Fatalf("expected only validate to run, got %v", runner.calls)
	}
}

func TestSAMMissingTemplateRunsErrorSentinel(t *testing.T) {
	fx := newFixture(t)
	fx.effective.Settings.Template = filepath.Join(fx.dir, "missing.yml")
	runner := &fakeRunner{results: map[string]error{"return 1": &ExitError{Code: 1}}}

	p, err := NewSAM(Options{Effective: fx.effective, Runner: runner})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	err = p.Run(context.Background(), StageValidate)
	if ExitCode(err) != 1 {
		t.Fatalf("expected sentinel failure, got %v", err)
	}
	if !reflect.DeepEqual(runner.calls, [][]string{{"return", "1"}}) {
		t.Fatalf("unexpected calls: %v", runner.calls)
	}
}

func TestSAMDryRun(t *testing.T) {
	fx := newFixture(t)
	source := filepath.Join(fx.dir, "template.src.yml")
	if err := os.WriteFile(source, []byte("CodeUri: {{ .CodeUri }}\n"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}
	fx.effective.Settings.SourceTemplate = source
	fx.effective.Settings.Template = filepath.Join(fx.dir, "generated.yml")
	fx.effective.Settings.BuildCommand = []string{"make"}

	runner := &fakeRunner{}
	logger := &nopLogger{}
	p, err := NewSAM(Options{Effective: fx.effective, DryRun: true, Runner: runner, Logger: logger})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := p.Run(context.Background(), StageDeploy); err != nil {
		t.Fatalf("run: %v", err)
	}
	for _, argv := range runner.calls {
		if !reflect.DeepEqual(argv, []string{"echo"}) {
			t.Fatalf("dry run must only execute echo, got %v", argv)
		}
	}
	if len(runner.calls) != 4 {
		t.Fatalf("expected build, validate, package and deploy, got %d calls", len(runner.calls))
	}
	if _, err := os.Stat(fx.effective.Settings.Template); !os.IsNotExist(err) {
		t.Fatalf("dry run must not write the generated template")
	}
	banners := 0
	for _, msg := range logger.infos {
		if strings.HasPrefix(msg, "Dry run, command to execute: ") {
			banners++
		}
	}
	if banners != 4 {
		t.Fatalf("expected a dry-run banner per command, got %v", logger.infos)
	}
}

func TestSAMGenerateBeforeValidate(t *testing.T) {
	fx := newFixture(t)
	source := filepath.Join(fx.dir, "template.src.yml")
	if err := os.WriteFile(source, []byte("Resources: {}\n"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}
	fx.effective.Settings.SourceTemplate = source
	fx.effective.Settings.Template = filepath.Join(fx.dir, "out", "template.yml")

	runner := &fakeRunner{onRun: func(argv []string) {
		if argv[1] == "validate" {
			if _, err := os.Stat(fx.effective.Settings.Template); err != nil {
				t.Errorf("template must be generated before validate: %v", err)
			}
		}
	}}
	p, err := NewSAM(Options{Effective: fx.effective, Runner: runner})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := p.Run(context.Background(), StageValidate); err != nil {
		t.Fatalf("run: %v", err)
	}
}

func TestNewSAMRequiresRunner(t *testing.T) {
	if _, err := NewSAM(Options{}); !errors.Is(err, errRunnerNil) {
		t.Fatalf("expected runner error, got %v", err)
	}
}
