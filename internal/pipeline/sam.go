// Where: internal/pipeline/sam.go
// What: The SAM deployment stages wired to the command compiler.
// Why: Keep stage ordering and postconditions in one place, apart from CLI parsing.
package pipeline

import (
	"context"
	"fmt"
	"os"

	"github.com/poruru-code/samdeploy/internal/command"
	"github.com/poruru-code/samdeploy/internal/config"
	"github.com/poruru-code/samdeploy/internal/generator"
	"github.com/poruru-code/samdeploy/internal/sam"
)

// Stage names.
const (
	StageBuild    = "build"
	StageGenerate = "generate"
	StageValidate = "validate"
	StagePackage  = "package"
	StageDeploy   = "deploy"
)

// Options configures the SAM pipeline for one invocation.
type Options struct {
	Effective config.Effective
	Binary    string
	DryRun    bool
	Dir       string
	Runner    Runner
	Logger    sam.Logger
	Observer  Observer
}

// NewSAM builds the build → generate → validate → package → deploy pipeline.
func NewSAM(opts Options) (*Pipeline, error) {
	if opts.Runner == nil {
		return nil, errRunnerNil
	}
	s := samStages{opts: opts}
	return New(opts.Observer,
		Stage{Name: StageBuild, Run: s.build},
		Stage{Name: StageGenerate, DependsOn: []string{StageBuild}, Run: s.generate},
		Stage{Name: StageValidate, DependsOn: []string{StageGenerate}, Run: s.validate},
		Stage{Name: StagePackage, DependsOn: []string{StageValidate}, Run: s.pack},
		Stage{Name: StageDeploy, DependsOn: []string{StagePackage}, Run: s.deploy},
	)
}

type samStages struct {
	opts Options
}

func (s samStages) invocation() sam.Invocation {
	return sam.Invocation{
		Binary:   s.opts.Binary,
		Settings: s.opts.Effective.Settings,
		DryRun:   s.opts.DryRun,
	}
}

func (s samStages) exec(ctx context.Context, b *command.Builder) error {
	argv := sam.CommandLine(b, s.opts.Logger)
	return s.opts.Runner.Run(ctx, s.opts.Dir, argv)
}

func (s samStages) build(ctx context.Context) error {
	b, ok := sam.BuildCommand(s.invocation())
	if !ok {
		return ErrSkipped
	}
	return s.exec(ctx, b)
}

func (s samStages) generate(_ context.Context) error {
	if !generator.Enabled(s.opts.Effective.Settings) {
		return ErrSkipped
	}
	res, err := generator.Generate(generator.Request{
		Environment: s.opts.Effective.Environment,
		Settings:    s.opts.Effective.Settings,
		DryRun:      s.opts.DryRun,
	})
	if err != nil {
		return err
	}
	if !res.Written && s.opts.Logger != nil {
		s.opts.Logger.Info("Dry run, template not written", "source", res.Source, "output", res.Output)
	}
	return nil
}

func (s samStages) validate(ctx context.Context) error {
	return s.exec(ctx, sam.ValidateCommand(s.invocation()))
}

func (s samStages) pack(ctx context.Context) error {
	if err := s.exec(ctx, sam.PackageCommand(s.invocation())); err != nil {
		return err
	}
	if s.opts.DryRun {
		return nil
	}
	packaged := s.opts.Effective.Settings.PackagedTemplate
	if info, err := os.Stat(packaged); err != nil || info.IsDir() {
		return fmt.Errorf("%w: %s", ErrPackagedTemplateMissing, packaged)
	}
	if s.opts.Logger != nil {
		s.opts.Logger.Info("Successfully created output SAM template", "path", packaged)
	}
	return nil
}

func (s samStages) deploy(ctx context.Context) error {
	return s.exec(ctx, sam.DeployCommand(s.invocation()))
}
