package build

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"entity-display/internal/settings"
)

// UnmarshalYAML decodes a mapping. Non-property keys holding a mapping or
// null become child nodes; mapping properties become *settings.Map.
func (n *Node) UnmarshalYAML(node *yaml.Node) error {
	*n = *New()

	if node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null" {
		return nil
	}

	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: a render node must be a mapping", node.Line)
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		value := node.Content[i+1]

		v, err := decodeValue(key, value)
		if err != nil {
			return fmt.Errorf("key %q: %w", key, err)
		}

		n.Set(key, v)
	}

	return nil
}

func decodeValue(key string, value *yaml.Node) (any, error) {
	if value.Kind == yaml.AliasNode {
		value = value.Alias
	}

	isNull := value.Kind == yaml.ScalarNode && value.ShortTag() == "!!null"

	switch {
	case !IsProperty(key) && (value.Kind == yaml.MappingNode || isNull):
		child := New()
		if err := child.UnmarshalYAML(value); err != nil {
			return nil, err
		}

		return child, nil
	case value.Kind == yaml.MappingNode:
		m := settings.New()
		if err := value.Decode(m); err != nil {
			return nil, err
		}

		return m, nil
	default:
		var v any
		if err := value.Decode(&v); err != nil {
			return nil, err
		}

		return v, nil
	}
}

// MarshalYAML encodes the node as a mapping in insertion order.
func (n *Node) MarshalYAML() (any, error) {
	out := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}

	var err error

	n.Range(func(k string, v any) bool {
		value := &yaml.Node{}

		if child, ok := v.(*Node); ok {
			var encoded any

			encoded, err = child.MarshalYAML()
			if err == nil {
				value = encoded.(*yaml.Node)
			}
		} else {
			err = value.Encode(v)
		}

		if err != nil {
			err = fmt.Errorf("key %q: %w", k, err)
			return false
		}

		out.Content = append(out.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}, value)

		return true
	})

	if err != nil {
		return nil, err
	}

	return out, nil
}
