// Where: internal/config/parameters.go
// What: Ordered string map decoded from a YAML mapping.
// Why: Parameter overrides are emitted in the order they are written.
package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Parameter is one key/value entry of an ordered mapping.
type Parameter struct {
	Key   string
	Value string
}

// Parameters keeps mapping entries in document order.
type Parameters []Parameter

// Map returns the entries as a plain map for template rendering.
func (p Parameters) Map() map[string]string {
	out := make(map[string]string, len(p))
	for _, entry := range p {
		out[entry.Key] = entry.Value
	}
	return out
}

// UnmarshalYAML decodes a mapping of scalars, keeping key order.
// A repeated key keeps its first position and takes the last value.
func (p *Parameters) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		*p = nil
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping of parameters", node.Line)
	}

	out := make(Parameters, 0, len(node.Content)/2)
	index := map[string]int{}
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]
		if valueNode.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: parameter %q must be a scalar", valueNode.Line, keyNode.Value)
		}
		value := valueNode.Value
		if valueNode.Tag == "!!null" {
			value = ""
		}
		if pos, ok := index[keyNode.Value]; ok {
			out[pos].Value = value
			continue
		}
		index[keyNode.Value] = len(out)
		out = append(out, Parameter{Key: keyNode.Value, Value: value})
	}
	*p = out
	return nil
}

// MarshalYAML encodes the entries as a mapping in stored order.
func (p Parameters) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, entry := range p {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: entry.Key},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: entry.Value},
		)
	}
	return node, nil
}
