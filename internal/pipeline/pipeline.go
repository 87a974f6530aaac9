// Where: internal/pipeline/pipeline.go
// What: Sequential stage runner with declared dependencies.
// Why: Run build → generate → validate → package → deploy in order and stop at the first failure.
package pipeline

import (
	"context"
	"errors"
	"fmt"
)

// Stage is one step of the pipeline.
type Stage struct {
	Name      string
	DependsOn []string
	Run       func(ctx context.Context) error
}

// Observer receives stage progress notifications.
type Observer interface {
	StageStarted(name string)
	StageSkipped(name string)
	StageFinished(name string, err error)
}

// Pipeline holds stages by name.
type Pipeline struct {
	stages   map[string]Stage
	order    []string
	observer Observer
}

// New registers stages. Dependencies must name registered stages and must not form a cycle.
func New(observer Observer, stages ...Stage) (*Pipeline, error) {
	p := &Pipeline{stages: map[string]Stage{}, observer: observer}
	for _, stage := range stages {
		if _, exists := p.stages[stage.Name]; exists {
			return nil, fmt.Errorf("%w: %s", errDuplicateStage, stage.Name)
		}
		p.stages[stage.Name] = stage
		p.order = append(p.order, stage.Name)
	}
	for _, name := range p.order {
		if _, err := p.Plan(name); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Names lists registered stages in registration order.
func (p *Pipeline) Names() []string {
	return append([]string(nil), p.order...)
}

// Plan returns the stages target depends on, followed by target itself.
func (p *Pipeline) Plan(target string) ([]string, error) {
	var plan []string
	done := map[string]bool{}
	visiting := map[string]bool{}

	var visit func(name string) error
	visit = func(name string) error {
		if done[name] {
			return nil
		}
		if visiting[name] {
			return fmt.Errorf("%w at %s", errStageCycle, name)
		}
		stage, ok := p.stages[name]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownStage, name)
		}
		visiting[name] = true
		for _, dep := range stage.DependsOn {
			if err := visit(dep); err != nil {
				return err
			}
		}
		visiting[name] = false
		done[name] = true
		plan = append(plan, name)
		return nil
	}

	if err := visit(target); err != nil {
		return nil, err
	}
	return plan, nil
}

// Run executes the plan for target. The first failing stage aborts the run;
// its error is returned wrapped in a StageError.
func (p *Pipeline) Run(ctx context.Context, target string) error {
	plan, err := p.Plan(target)
	if err != nil {
		return err
	}
	for _, name := range plan {
		if err := ctx.Err(); err != nil {
			return err
		}
		stage := p.stages[name]
		p.started(name)
		err := stage.Run(ctx)
		if errors.Is(err, ErrSkipped) {
			p.skipped(name)
			continue
		}
		p.finished(name, err)
		if err != nil {
			return &StageError{Stage: name, Err: err}
		}
	}
	return nil
}

func (p *Pipeline) started(name string) {
	if p.observer != nil {
		p.observer.StageStarted(name)
	}
}

func (p *Pipeline) skipped(name string) {
	if p.observer != nil {
		p.observer.StageSkipped(name)
	}
}

func (p *Pipeline) finished(name string, err error) {
	if p.observer != nil {
		p.observer.StageFinished(name, err)
	}
}
