// Where: internal/command/clause.go
// What: Clause constructors for SAM CLI argument vectors.
// Why: Describe each flag/argument unit as data so compilation stays pure.
package command

import (
	"fmt"
	"strings"
)

type clauseKind int

const (
	kindOption clauseKind = iota
	kindArgument
	kindRequired
	kindList
	kindMap
	kindResolved
)

// Pair is a single key=value entry of a map-valued argument.
type Pair struct {
	Key   string
	Value string
}

// Clause is one flag or argument unit of a command line.
type Clause struct {
	kind    clauseKind
	flag    string
	enabled bool
	value   string
	values  []string
	pairs   []Pair
	resolve func() (string, error)
}

// Flag returns the flag name the clause emits.
func (c Clause) Flag() string {
	return c.flag
}

// Option emits flag when enabled is true.
func Option(flag string, enabled bool) Clause {
	return Clause{kind: kindOption, flag: flag, enabled: enabled}
}

// Argument emits flag followed by value when value is non-empty.
func Argument(flag, value string) Clause {
	return Clause{kind: kindArgument, flag: flag, value: value}
}

// Required behaves like Argument but treats an empty value as missing configuration.
func Required(flag, value string) Clause {
	return Clause{kind: kindRequired, flag: flag, value: value}
}

// List emits flag followed by the values joined with commas, in stored order.
func List(flag string, values []string) Clause {
	return Clause{kind: kindList, flag: flag, values: values}
}

// Map emits flag followed by one key=value token per pair, in insertion order.
func Map(flag string, pairs []Pair) Clause {
	return Clause{kind: kindMap, flag: flag, pairs: pairs}
}

// Resolved emits flag followed by the value returned from resolve.
// A resolver error aborts compilation.
func Resolved(flag string, resolve func() (string, error)) Clause {
	return Clause{kind: kindResolved, flag: flag, resolve: resolve}
}

// tokens renders the clause. A nil slice with nil error means the clause is skipped.
func (c Clause) tokens() ([]string, error) {
	switch c.kind {
	case kindOption:
		if !c.enabled {
			return nil, nil
		}
		return []string{c.flag}, nil
	case kindArgument:
		if isBlank(c.value) {
			return nil, nil
		}
		return []string{c.flag, c.value}, nil
	case kindRequired:
		if isBlank(c.value) {
			return nil, fmt.Errorf("%w: %s", ErrMissingConfiguration, c.flag)
		}
		return []string{c.flag, c.value}, nil
	case kindList:
		if len(c.values) == 0 {
			return nil, nil
		}
		return []string{c.flag, strings.Join(c.values, ",")}, nil
	case kindMap:
		if len(c.pairs) == 0 {
			return nil, nil
		}
		out := make([]string, 0, len(c.pairs)+1)
		out = append(out, c.flag)
		for _, pair := range c.pairs {
			out = append(out, pair.Key+"="+pair.Value)
		}
		return out, nil
	case kindResolved:
		if c.resolve == nil {
			return nil, fmt.Errorf("%w: %s", ErrMissingConfiguration, c.flag)
		}
		value, err := c.resolve()
		if err != nil {
			return nil, err
		}
		if isBlank(value) {
			return nil, nil
		}
		return []string{c.flag, value}, nil
	default:
		return nil, fmt.Errorf("unknown clause kind %d for %s", c.kind, c.flag)
	}
}

func isBlank(value string) bool {
	return strings.TrimSpace(value) == ""
}
