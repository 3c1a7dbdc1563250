// Package assignment models the per-field placement records of a display:
// which region a field renders in, at what weight, with which formatter or
// widget settings. It also holds the set of hidden fields.
package assignment

import (
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"entity-display/internal/settings"
)

const (
	// HiddenRegion is the pseudo-region that marks a field as not rendered.
	// No layout may declare it.
	HiddenRegion = "hidden"

	// HiddenType is the component type that marks a field as not rendered.
	HiddenType = "hidden"
)

// Component is the assignment record of one field.
type Component struct {
	Type               string        `yaml:"type,omitempty"`
	Label              string        `yaml:"label,omitempty"`
	Region             string        `yaml:"region,omitempty"`
	Weight             *int          `yaml:"weight,omitempty"`
	Settings           *settings.Map `yaml:"settings,omitempty"`
	ThirdPartySettings *settings.Map `yaml:"third_party_settings,omitempty"`
}

// WeightOf returns a pointer to w.
func WeightOf(w int) *int {
	return &w
}

// WeightValue returns the weight, treating an absent weight as 0.
func (c *Component) WeightValue() int {
	if c == nil || c.Weight == nil {
		return 0
	}

	return *c.Weight
}

// IsHidden reports whether the record asks for the field not to be rendered.
func (c *Component) IsHidden() bool {
	return c != nil && (c.Type == HiddenType || c.Region == HiddenRegion)
}

// Clone returns a deep copy.
func (c *Component) Clone() *Component {
	if c == nil {
		return nil
	}

	out := *c
	if c.Weight != nil {
		out.Weight = WeightOf(*c.Weight)
	}

	out.Settings = c.Settings.Clone()
	out.ThirdPartySettings = c.ThirdPartySettings.Clone()

	return &out
}

// Equal reports deep equality.
func (c *Component) Equal(o *Component) bool {
	if c == nil || o == nil {
		return c == nil && o == nil
	}

	if c.Type != o.Type || c.Label != o.Label || c.Region != o.Region {
		return false
	}

	if (c.Weight == nil) != (o.Weight == nil) || (c.Weight != nil && *c.Weight != *o.Weight) {
		return false
	}

	return c.Settings.Equal(o.Settings) && c.ThirdPartySettings.Equal(o.ThirdPartySettings)
}

func (c *Component) String() string {
	if c == nil {
		return "<nil>"
	}

	w := "-"
	if c.Weight != nil {
		w = fmt.Sprint(*c.Weight)
	}

	return fmt.Sprintf("{type:%s region:%s weight:%s}", c.Type, c.Region, w)
}

// Map is the insertion-ordered content section of a display: field name to
// assignment record. A nil *Map reads as empty.
type Map struct {
	om *orderedmap.OrderedMap[string, *Component]
}

// NewMap returns an empty map.
func NewMap() *Map {
	return &Map{om: orderedmap.New[string, *Component]()}
}

// Len returns the number of assigned fields.
func (m *Map) Len() int {
	if m == nil || m.om == nil {
		return 0
	}

	return m.om.Len()
}

// Get returns the record of name, or nil.
func (m *Map) Get(name string) *Component {
	if m == nil || m.om == nil {
		return nil
	}

	c, _ := m.om.Get(name)

	return c
}

// Has reports whether name is assigned.
func (m *Map) Has(name string) bool {
	if m == nil || m.om == nil {
		return false
	}

	_, ok := m.om.Get(name)

	return ok
}

// Set assigns c to name. An existing entry keeps its position.
func (m *Map) Set(name string, c *Component) {
	if m.om == nil {
		m.om = orderedmap.New[string, *Component]()
	}

	m.om.Set(name, c)
}

// Delete removes name and reports whether it was assigned.
func (m *Map) Delete(name string) bool {
	if m == nil || m.om == nil {
		return false
	}

	_, ok := m.om.Delete(name)

	return ok
}

// Names returns the assigned field names in insertion order.
func (m *Map) Names() []string {
	names := make([]string, 0, m.Len())
	m.Range(func(name string, _ *Component) bool {
		names = append(names, name)
		return true
	})

	return names
}

// Range calls fn for every entry in insertion order until fn returns false.
func (m *Map) Range(fn func(name string, c *Component) bool) {
	if m == nil || m.om == nil {
		return
	}

	for p := m.om.Oldest(); p != nil; p = p.Next() {
		if !fn(p.Key, p.Value) {
			return
		}
	}
}

// Clone returns a deep copy. Cloning nil yields an empty map.
func (m *Map) Clone() *Map {
	out := NewMap()
	m.Range(func(name string, c *Component) bool {
		out.Set(name, c.Clone())
		return true
	})

	return out
}

// Equal reports whether both maps hold equal records in the same order.
func (m *Map) Equal(o *Map) bool {
	if m.Len() != o.Len() {
		return false
	}

	a, b := m.Names(), o.Names()
	for i := range a {
		if a[i] != b[i] || !m.Get(a[i]).Equal(o.Get(b[i])) {
			return false
		}
	}

	return true
}

// InRegion returns the names assigned to region, in insertion order.
func (m *Map) InRegion(region string) []string {
	var names []string

	m.Range(func(name string, c *Component) bool {
		if c != nil && c.Region == region {
			names = append(names, name)
		}

		return true
	})

	return names
}

// MaxWeight returns the largest weight in region and whether the region has
// any entry at all. Absent weights count as 0.
func (m *Map) MaxWeight(region string) (int, bool) {
	maxW, found := 0, false

	m.Range(func(_ string, c *Component) bool {
		if c == nil || c.Region != region {
			return true
		}

		if w := c.WeightValue(); !found || w > maxW {
			maxW = w
		}

		found = true

		return true
	})

	return maxW, found
}

// HiddenSet is the insertion-ordered set of fields that are not rendered.
type HiddenSet struct {
	om *orderedmap.OrderedMap[string, bool]
}

// NewHiddenSet returns a set holding names.
func NewHiddenSet(names ...string) *HiddenSet {
	h := &HiddenSet{om: orderedmap.New[string, bool]()}
	for _, n := range names {
		h.Add(n)
	}

	return h
}

// Add marks name as hidden.
func (h *HiddenSet) Add(name string) {
	if h.om == nil {
		h.om = orderedmap.New[string, bool]()
	}

	h.om.Set(name, true)
}

// Remove unmarks name and reports whether it was hidden.
func (h *HiddenSet) Remove(name string) bool {
	if h == nil || h.om == nil {
		return false
	}

	_, ok := h.om.Delete(name)

	return ok
}

// Has reports whether name is hidden.
func (h *HiddenSet) Has(name string) bool {
	if h == nil || h.om == nil {
		return false
	}

	_, ok := h.om.Get(name)

	return ok
}

// Len returns the number of hidden fields.
func (h *HiddenSet) Len() int {
	if h == nil || h.om == nil {
		return 0
	}

	return h.om.Len()
}

// Names returns the hidden field names in insertion order.
func (h *HiddenSet) Names() []string {
	names := make([]string, 0, h.Len())
	if h == nil || h.om == nil {
		return names
	}

	for p := h.om.Oldest(); p != nil; p = p.Next() {
		names = append(names, p.Key)
	}

	return names
}

// Clone returns a copy. Cloning nil yields an empty set.
func (h *HiddenSet) Clone() *HiddenSet {
	return NewHiddenSet(h.Names()...)
}

// Equal reports whether both sets hold the same names in the same order.
func (h *HiddenSet) Equal(o *HiddenSet) bool {
	a, b := h.Names(), o.Names()
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}
