package settings

import (
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"
)

// UnmarshalYAML decodes a mapping node, keeping key order at every depth.
// A null node decodes to an empty map.
func (m *Map) UnmarshalYAML(node *yaml.Node) error {
	node = resolveNode(node)

	m.om = orderedmap.New[string, any]()

	switch node.Kind {
	case yaml.MappingNode:
	case yaml.ScalarNode:
		if node.ShortTag() == "!!null" {
			return nil
		}

		return fmt.Errorf("line %d: expected mapping, got scalar %q", node.Line, node.Value)
	case yaml.SequenceNode:
		if len(node.Content) == 0 {
			// PHP-style exports write empty settings as [].
			return nil
		}

		return fmt.Errorf("line %d: expected mapping, got sequence", node.Line)
	default:
		return fmt.Errorf("line %d: expected mapping", node.Line)
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		key := resolveNode(node.Content[i])
		if key.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: settings keys must be scalars", key.Line)
		}

		v, err := decodeValue(node.Content[i+1])
		if err != nil {
			return fmt.Errorf("settings key %q: %w", key.Value, err)
		}

		m.Set(key.Value, v)
	}

	return nil
}

// MarshalYAML encodes m as a mapping node in insertion order.
func (m *Map) MarshalYAML() (any, error) {
	out := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}

	var err error

	m.Range(func(k string, v any) bool {
		var valueNode *yaml.Node

		valueNode, err = encodeValue(v)
		if err != nil {
			err = fmt.Errorf("settings key %q: %w", k, err)
			return false
		}

		out.Content = append(out.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
			valueNode,
		)

		return true
	})

	if err != nil {
		return nil, err
	}

	return out, nil
}

func decodeValue(node *yaml.Node) (any, error) {
	node = resolveNode(node)

	switch node.Kind {
	case yaml.MappingNode:
		nested := New()
		if err := nested.UnmarshalYAML(node); err != nil {
			return nil, err
		}

		return nested, nil
	case yaml.SequenceNode:
		items := make([]any, 0, len(node.Content))

		for _, child := range node.Content {
			v, err := decodeValue(child)
			if err != nil {
				return nil, err
			}

			items = append(items, v)
		}

		return items, nil
	default:
		var v any
		if err := node.Decode(&v); err != nil {
			return nil, err
		}

		return v, nil
	}
}

func encodeValue(v any) (*yaml.Node, error) {
	if nested, ok := v.(*Map); ok {
		n, err := nested.MarshalYAML()
		if err != nil {
			return nil, err
		}

		return n.(*yaml.Node), nil
	}

	n := &yaml.Node{}
	if err := n.Encode(v); err != nil {
		return nil, err
	}

	return n, nil
}

func resolveNode(node *yaml.Node) *yaml.Node {
	for node != nil {
		switch node.Kind {
		case yaml.DocumentNode:
			if len(node.Content) == 0 {
				return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null"}
			}

			node = node.Content[0]
		case yaml.AliasNode:
			node = node.Alias
		default:
			return node
		}
	}

	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null"}
}
