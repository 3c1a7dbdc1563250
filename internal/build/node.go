// Package build holds the render tree that displays are projected onto.
//
// A Node is an insertion-ordered map. Keys starting with '#' are properties
// (markup, theme hook, settings); every other key names a child node, such
// as a field or a region container. Nodes are shared by pointer, so a child
// returned by Child can be mutated in place.
package build

import (
	"reflect"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"entity-display/internal/settings"
)

// Node is a render tree node. A nil *Node is a valid, empty, read-only node.
type Node struct {
	om *orderedmap.OrderedMap[string, any]
}

// New returns an empty node.
func New() *Node {
	return &Node{om: orderedmap.New[string, any]()}
}

// Markup returns a node with a single #markup property.
func Markup(s string) *Node {
	n := New()
	n.Set("#markup", s)

	return n
}

// LayoutKey is the key the region containers of a projected build sit under.
const LayoutKey = "_layout"

// IsProperty reports whether key names a property rather than a child.
func IsProperty(key string) bool {
	return strings.HasPrefix(key, "#")
}

// Len returns the number of keys.
func (n *Node) Len() int {
	if n == nil || n.om == nil {
		return 0
	}

	return n.om.Len()
}

// Keys returns all keys in insertion order.
func (n *Node) Keys() []string {
	keys := make([]string, 0, n.Len())
	n.Range(func(k string, _ any) bool {
		keys = append(keys, k)
		return true
	})

	return keys
}

// Has reports whether key is present.
func (n *Node) Has(key string) bool {
	_, ok := n.Get(key)
	return ok
}

// Get returns the raw value under key.
func (n *Node) Get(key string) (any, bool) {
	if n == nil || n.om == nil {
		return nil, false
	}

	return n.om.Get(key)
}

// Set stores v under key. An existing key keeps its position.
func (n *Node) Set(key string, v any) {
	if n.om == nil {
		n.om = orderedmap.New[string, any]()
	}

	n.om.Set(key, v)
}

// Prop returns the property key, which must start with '#'.
func (n *Node) Prop(key string) (any, bool) {
	if !IsProperty(key) {
		return nil, false
	}

	return n.Get(key)
}

// Child returns the child node under key, or nil.
func (n *Node) Child(key string) *Node {
	v, _ := n.Get(key)
	c, _ := v.(*Node)

	return c
}

// SetChild stores c under key.
func (n *Node) SetChild(key string, c *Node) {
	n.Set(key, c)
}

// EnsureChild returns the child under key, appending an empty one if absent.
func (n *Node) EnsureChild(key string) *Node {
	if c := n.Child(key); c != nil {
		return c
	}

	c := New()
	n.Set(key, c)

	return c
}

// Remove deletes key and returns its value.
func (n *Node) Remove(key string) (any, bool) {
	if n == nil || n.om == nil {
		return nil, false
	}

	return n.om.Delete(key)
}

// Children returns the keys of child nodes in insertion order.
func (n *Node) Children() []string {
	var keys []string

	n.Range(func(k string, v any) bool {
		if _, ok := v.(*Node); ok && !IsProperty(k) {
			keys = append(keys, k)
		}

		return true
	})

	return keys
}

// Range calls fn for every pair in insertion order until fn returns false.
func (n *Node) Range(fn func(key string, v any) bool) {
	if n == nil || n.om == nil {
		return
	}

	for p := n.om.Oldest(); p != nil; p = p.Next() {
		if !fn(p.Key, p.Value) {
			return
		}
	}
}

// Clone returns a deep copy. Cloning nil yields nil.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}

	out := New()
	n.Range(func(k string, v any) bool {
		out.Set(k, cloneValue(v))
		return true
	})

	return out
}

// Equal reports whether both nodes hold the same keys in the same order with
// deeply equal values. A nil node only equals another nil node.
func (n *Node) Equal(o *Node) bool {
	if n == nil || o == nil {
		return n == nil && o == nil
	}

	a, b := n.Keys(), o.Keys()
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i] != b[i] {
			return false
		}

		av, _ := n.Get(a[i])
		bv, _ := o.Get(b[i])

		if !valuesEqual(av, bv) {
			return false
		}
	}

	return true
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case *Node:
		return val.Clone()
	case *settings.Map:
		return val.Clone()
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}

		return out
	case []string:
		return append([]string(nil), val...)
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = cloneValue(item)
		}

		return out
	default:
		return v
	}
}

func valuesEqual(a, b any) bool {
	switch av := a.(type) {
	case *Node:
		bv, ok := b.(*Node)
		return ok && av.Equal(bv)
	case *settings.Map:
		bv, ok := b.(*settings.Map)
		return ok && av.Equal(bv)
	default:
		return reflect.DeepEqual(a, b)
	}
}
