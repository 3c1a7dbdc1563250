package assignment

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// UnmarshalYAML decodes a mapping of field name to record, keeping order.
func (m *Map) UnmarshalYAML(node *yaml.Node) error {
	*m = *NewMap()

	if isNull(node) || isEmptySequence(node) {
		return nil
	}

	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: content must be a mapping", node.Line)
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value

		c := &Component{}
		if !isNull(node.Content[i+1]) {
			if err := node.Content[i+1].Decode(c); err != nil {
				return fmt.Errorf("field %q: %w", name, err)
			}
		}

		m.Set(name, c)
	}

	return nil
}

// MarshalYAML encodes the map in insertion order.
func (m *Map) MarshalYAML() (any, error) {
	out := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}

	var err error

	m.Range(func(name string, c *Component) bool {
		value := &yaml.Node{}
		if c == nil {
			c = &Component{}
		}

		if err = value.Encode(c); err != nil {
			err = fmt.Errorf("field %q: %w", name, err)
			return false
		}

		out.Content = append(out.Content, keyNode(name), value)

		return true
	})

	if err != nil {
		return nil, err
	}

	return out, nil
}

// UnmarshalYAML accepts both a name-to-true mapping and a plain list.
func (h *HiddenSet) UnmarshalYAML(node *yaml.Node) error {
	*h = *NewHiddenSet()

	switch {
	case isNull(node):
		return nil
	case node.Kind == yaml.SequenceNode:
		for _, item := range node.Content {
			h.Add(item.Value)
		}
	case node.Kind == yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			h.Add(node.Content[i].Value)
		}
	default:
		return fmt.Errorf("line %d: hidden must be a mapping or a list", node.Line)
	}

	return nil
}

// MarshalYAML encodes the set as a name-to-true mapping.
func (h *HiddenSet) MarshalYAML() (any, error) {
	out := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, name := range h.Names() {
		out.Content = append(out.Content, keyNode(name),
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: "true"})
	}

	return out, nil
}

func keyNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func isNull(node *yaml.Node) bool {
	return node == nil || (node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null")
}

func isEmptySequence(node *yaml.Node) bool {
	return node.Kind == yaml.SequenceNode && len(node.Content) == 0
}
