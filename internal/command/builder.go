// Where: internal/command/builder.go
// What: Single-use fluent builder over Spec/Compile.
// Why: Offer chained clause accumulation while rejecting reuse.
package command

import "fmt"

type builderState int

const (
	stateUninitialized builderState = iota
	stateTaskSet
	stateAccumulating
	stateBuilt
)

func (s builderState) String() string {
	switch s {
	case stateUninitialized:
		return "uninitialized"
	case stateTaskSet:
		return "task-set"
	case stateAccumulating:
		return "accumulating"
	case stateBuilt:
		return "built"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Builder accumulates clauses for one command. It is consumed by Build.
type Builder struct {
	spec  Spec
	state builderState
	err   error
}

// New starts a builder for program.
func New(program string, dryRun bool) *Builder {
	return &Builder{spec: Spec{Program: program, DryRun: dryRun}}
}

// Task sets the subcommand. It must be the first call.
func (b *Builder) Task(name string) *Builder {
	if b.state != stateUninitialized {
		b.fail("task")
		return b
	}
	b.spec.Task = name
	b.state = stateTaskSet
	return b
}

// Option appends a bare flag clause.
func (b *Builder) Option(flag string, enabled bool) *Builder {
	return b.add(Option(flag, enabled))
}

// Argument appends a flag/value clause.
func (b *Builder) Argument(flag, value string) *Builder {
	return b.add(Argument(flag, value))
}

// Required appends a flag/value clause whose value must be present.
func (b *Builder) Required(flag, value string) *Builder {
	return b.add(Required(flag, value))
}

// List appends a comma-joined list clause.
func (b *Builder) List(flag string, values []string) *Builder {
	return b.add(List(flag, values))
}

// Map appends a key=value clause.
func (b *Builder) Map(flag string, pairs []Pair) *Builder {
	return b.add(Map(flag, pairs))
}

// Resolved appends a flag whose value is computed at build time.
// A resolver error fails Build.
func (b *Builder) Resolved(flag string, resolve func() (string, error)) *Builder {
	return b.add(Resolved(flag, resolve))
}

// Clause appends a prepared clause.
func (b *Builder) Clause(clause Clause) *Builder {
	return b.add(clause)
}

func (b *Builder) add(clause Clause) *Builder {
	if b.state != stateTaskSet && b.state != stateAccumulating {
		b.fail(clause.flag)
		return b
	}
	b.spec.Clauses = append(b.spec.Clauses, clause)
	b.state = stateAccumulating
	return b
}

func (b *Builder) fail(call string) {
	if b.err == nil {
		b.err = fmt.Errorf("%w: %s called in %s state", ErrBuilderState, call, b.state)
	}
}

// Build compiles the accumulated clauses. Any further call on the builder fails.
func (b *Builder) Build() (Command, error) {
	if b.state == stateBuilt {
		return Command{}, fmt.Errorf("%w: build called twice", ErrBuilderState)
	}
	if b.state == stateUninitialized {
		b.fail("build")
	}
	b.state = stateBuilt
	if b.err != nil {
		return Command{}, b.err
	}
	return Compile(b.spec)
}
