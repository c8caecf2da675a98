// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package types

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// UnmarshalYAML accepts both `type: string` and `type: [string, "null"]`.
func (t *SchemaType) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*t = SchemaType{node.Value}
		return nil
	case yaml.SequenceNode:
		var kinds []string
		if err := node.Decode(&kinds); err != nil {
			return fmt.Errorf("failed to decode type list: %w", err)
		}
		*t = kinds
		return nil
	default:
		return fmt.Errorf("line %d: type must be a string or a list of strings", node.Line)
	}
}

// MarshalYAML writes a single kind as a scalar.
func (t SchemaType) MarshalYAML() (interface{}, error) {
	if k, ok := t.Single(); ok {
		return k, nil
	}
	return []string(t), nil
}

// UnmarshalYAML accepts both the boolean and the numeric spelling.
func (b *Bound) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: exclusive bound must be a boolean or a number", node.Line)
	}
	if node.ShortTag() == "!!bool" {
		return node.Decode(&b.Flag)
	}
	var v float64
	if err := node.Decode(&v); err != nil {
		return fmt.Errorf("line %d: exclusive bound must be a boolean or a number", node.Line)
	}
	b.Value = &v
	return nil
}

// MarshalYAML writes the spelling the bound was read with.
func (b Bound) MarshalYAML() (interface{}, error) {
	if b.Value != nil {
		return *b.Value, nil
	}
	return b.Flag, nil
}

// UnmarshalYAML accepts a single item schema or a list of positional schemas.
func (i *Items) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.MappingNode:
		var s Schema
		if err := node.Decode(&s); err != nil {
			return err
		}
		i.Schema = &s
		return nil
	case yaml.SequenceNode:
		var tuple []*Schema
		if err := node.Decode(&tuple); err != nil {
			return err
		}
		i.Tuple = tuple
		return nil
	default:
		return fmt.Errorf("line %d: items must be a schema or a list of schemas", node.Line)
	}
}

// MarshalYAML writes the single schema or the tuple.
func (i Items) MarshalYAML() (interface{}, error) {
	if i.Schema != nil {
		return i.Schema, nil
	}
	return i.Tuple, nil
}

// UnmarshalYAML accepts a boolean or a schema. An empty schema is the same as true.
func (a *AdditionalProperties) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		return node.Decode(&a.Allowed)
	case yaml.MappingNode:
		a.Allowed = true
		if len(node.Content) == 0 {
			return nil
		}
		var s Schema
		if err := node.Decode(&s); err != nil {
			return err
		}
		a.Schema = &s
		return nil
	default:
		return fmt.Errorf("line %d: additionalProperties must be a boolean or a schema", node.Line)
	}
}

// MarshalYAML writes the schema when present, the flag otherwise.
func (a AdditionalProperties) MarshalYAML() (interface{}, error) {
	if a.Schema != nil {
		return a.Schema, nil
	}
	return a.Allowed, nil
}

// UnmarshalYAML keeps properties in document order.
func (p *Properties) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: properties must be a mapping", node.Line)
	}
	props := make(Properties, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		var s Schema
		if err := node.Content[i+1].Decode(&s); err != nil {
			return fmt.Errorf("property %q: %w", node.Content[i].Value, err)
		}
		props = append(props, Property{Name: node.Content[i].Value, Schema: &s})
	}
	*p = props
	return nil
}

// MarshalYAML writes properties back as an ordered mapping.
func (p Properties) MarshalYAML() (interface{}, error) {
	out := &yaml.Node{Kind: yaml.MappingNode}
	for _, prop := range p {
		var value yaml.Node
		if err := value.Encode(prop.Schema); err != nil {
			return nil, err
		}
		out.Content = append(out.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: prop.Name}, &value)
	}
	return out, nil
}
