// Package settings holds the opaque, order-preserving configuration maps that
// ride along with layouts and field assignments. Nothing in the reconciliation
// or projection logic interprets their contents.
package settings

import (
	"fmt"
	"reflect"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Map is an insertion-ordered string-keyed map. Nested mappings are *Map and
// sequences are []any so that key order survives a load/save cycle at every
// depth. A nil *Map is a valid, empty, read-only map.
type Map struct {
	om *orderedmap.OrderedMap[string, any]
}

// New returns an empty map.
func New() *Map {
	return &Map{om: orderedmap.New[string, any]()}
}

// FromPairs builds a map from alternating keys and values. It panics on an
// odd number of arguments or a non-string key.
func FromPairs(kv ...any) *Map {
	if len(kv)%2 != 0 {
		panic("settings.FromPairs: odd number of arguments")
	}

	m := New()

	for i := 0; i < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			panic(fmt.Sprintf("settings.FromPairs: key %v is not a string", kv[i]))
		}

		m.Set(key, kv[i+1])
	}

	return m
}

// Len returns the number of keys.
func (m *Map) Len() int {
	if m == nil || m.om == nil {
		return 0
	}

	return m.om.Len()
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (any, bool) {
	if m == nil || m.om == nil {
		return nil, false
	}

	return m.om.Get(key)
}

// Has reports whether key is present.
func (m *Map) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Set stores v under key. An existing key keeps its position.
func (m *Map) Set(key string, v any) {
	if m.om == nil {
		m.om = orderedmap.New[string, any]()
	}

	m.om.Set(key, v)
}

// Delete removes key and reports whether it was present.
func (m *Map) Delete(key string) bool {
	if m == nil || m.om == nil {
		return false
	}

	_, ok := m.om.Delete(key)

	return ok
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string {
	keys := make([]string, 0, m.Len())
	m.Range(func(k string, _ any) bool {
		keys = append(keys, k)
		return true
	})

	return keys
}

// Range calls fn for every pair in insertion order until fn returns false.
func (m *Map) Range(fn func(key string, v any) bool) {
	if m == nil || m.om == nil {
		return
	}

	for p := m.om.Oldest(); p != nil; p = p.Next() {
		if !fn(p.Key, p.Value) {
			return
		}
	}
}

// Clone returns a deep copy. Cloning nil yields nil.
func (m *Map) Clone() *Map {
	if m == nil {
		return nil
	}

	out := New()
	m.Range(func(k string, v any) bool {
		out.Set(k, cloneValue(v))
		return true
	})

	return out
}

// Equal reports whether both maps hold the same keys, in the same order, with
// deeply equal values. A nil map only equals another nil map.
func (m *Map) Equal(o *Map) bool {
	if m == nil || o == nil {
		return m == nil && o == nil
	}

	if m.Len() != o.Len() {
		return false
	}

	mk, ok := m.Keys(), o.Keys()
	for i := range mk {
		if mk[i] != ok[i] {
			return false
		}

		a, _ := m.Get(mk[i])
		b, _ := o.Get(mk[i])

		if !valuesEqual(a, b) {
			return false
		}
	}

	return true
}

// ApplyDefaults stores every key of defaults that m does not have yet and
// returns the keys it filled, in defaults order. Existing values are kept.
func (m *Map) ApplyDefaults(defaults *Map) []string {
	var filled []string

	defaults.Range(func(k string, v any) bool {
		if !m.Has(k) {
			m.Set(k, cloneValue(v))
			filled = append(filled, k)
		}

		return true
	})

	return filled
}

// ToMap converts m into plain Go maps and slices, losing key order.
func (m *Map) ToMap() map[string]any {
	out := make(map[string]any, m.Len())
	m.Range(func(k string, v any) bool {
		out[k] = plainValue(v)
		return true
	})

	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case *Map:
		return val.Clone()
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}

		return out
	case []string:
		return append([]string(nil), val...)
	default:
		return v
	}
}

func plainValue(v any) any {
	switch val := v.(type) {
	case *Map:
		return val.ToMap()
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = plainValue(item)
		}

		return out
	default:
		return v
	}
}

func valuesEqual(a, b any) bool {
	switch av := a.(type) {
	case *Map:
		bv, ok := b.(*Map)
		return ok && av.Equal(bv)
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}

		for i := range av {
			if !valuesEqual(av[i], bv[i]) {
				return false
			}
		}

		return true
	default:
		return reflect.DeepEqual(a, b)
	}
}
