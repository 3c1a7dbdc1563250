// Package region provides the ordered region catalog of a layout.
package region

import (
	"fmt"

	"entity-display/internal/build"
	"entity-display/internal/diagnostic"
)

// Hidden is reserved for fields that are not rendered and may never be
// declared by a layout.
const Hidden = "hidden"

// Region is a named slot of a layout.
type Region struct {
	ID    string
	Label string
}

// Of builds unlabeled regions from ids.
func Of(ids ...string) []Region {
	out := make([]Region, len(ids))
	for i, id := range ids {
		out[i] = Region{ID: id}
	}

	return out
}

// Catalog is an immutable, ordered, duplicate-free list of regions with a
// designated default.
type Catalog struct {
	regions []Region
	index   map[string]int
	def     string
}

// New builds a catalog. An empty defaultRegion selects the first region.
func New(regions []Region, defaultRegion string) (*Catalog, error) {
	return NewScoped("", regions, defaultRegion)
}

// NewScoped is New with scope attached to every reported diagnostic.
func NewScoped(scope string, regions []Region, defaultRegion string) (*Catalog, error) {
	var diags diagnostic.Diagnostics

	if len(regions) == 0 {
		diags.AddError("empty_catalog", "a layout must declare at least one region", scope, "")
	}

	c := &Catalog{
		regions: make([]Region, 0, len(regions)),
		index:   make(map[string]int, len(regions)),
	}

	for _, r := range regions {
		switch {
		case r.ID == "":
			diags.AddError("empty_region_id", "region id must not be empty", scope, "")
			continue
		case r.ID == Hidden || r.ID == build.LayoutKey || build.IsProperty(r.ID):
			diags.AddError("reserved_region",
				fmt.Sprintf("region id %q is reserved", r.ID), scope, r.ID)
			continue
		}

		if _, dup := c.index[r.ID]; dup {
			diags.AddError("duplicate_region",
				fmt.Sprintf("region %q is declared more than once", r.ID), scope, r.ID)
			continue
		}

		c.index[r.ID] = len(c.regions)
		c.regions = append(c.regions, r)
	}

	switch {
	case defaultRegion == "" && len(c.regions) > 0:
		c.def = c.regions[0].ID
	case defaultRegion != "":
		if _, ok := c.index[defaultRegion]; !ok {
			diags.AddError("unknown_default_region",
				fmt.Sprintf("default region %q is not declared", defaultRegion), scope, defaultRegion)
		}

		c.def = defaultRegion
	}

	if err := diagnostic.NewConfigurationError(&diags); err != nil {
		return nil, err
	}

	return c, nil
}

// MustNew is New that panics on error.
func MustNew(regions []Region, defaultRegion string) *Catalog {
	c, err := New(regions, defaultRegion)
	if err != nil {
		panic(err)
	}

	return c
}

// Len returns the number of regions.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}

	return len(c.regions)
}

// IDs returns the region ids in catalog order.
func (c *Catalog) IDs() []string {
	ids := make([]string, 0, c.Len())
	if c == nil {
		return ids
	}

	for _, r := range c.regions {
		ids = append(ids, r.ID)
	}

	return ids
}

// Regions returns a copy of the regions in catalog order.
func (c *Catalog) Regions() []Region {
	if c == nil {
		return nil
	}

	return append([]Region(nil), c.regions...)
}

// Has reports whether id is declared.
func (c *Catalog) Has(id string) bool {
	return c.Index(id) >= 0
}

// Index returns the position of id, or -1.
func (c *Catalog) Index(id string) int {
	if c == nil {
		return -1
	}

	i, ok := c.index[id]
	if !ok {
		return -1
	}

	return i
}

// Default returns the default region id.
func (c *Catalog) Default() string {
	if c == nil {
		return ""
	}

	return c.def
}

// Label returns the label of id, falling back to the id itself.
func (c *Catalog) Label(id string) string {
	if i := c.Index(id); i >= 0 && c.regions[i].Label != "" {
		return c.regions[i].Label
	}

	return id
}
