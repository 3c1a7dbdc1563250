// Package layout describes layout plugins: a named set of regions plus the
// presentation metadata a renderer needs (theme hook, asset libraries,
// default settings). Definitions are loaded from HCL files.
package layout

import (
	"fmt"
	"strings"

	"entity-display/internal/common"
	"entity-display/internal/region"
	"entity-display/internal/settings"
)

// DefaultID names the built-in single-region layout used when a display
// does not pick one.
const DefaultID = "layout_default"

// Definition is a layout plugin definition.
type Definition struct {
	ID            string
	Label         string
	Category      string
	ThemeHook     string
	Libraries     []string
	DefaultRegion string
	Regions       []region.Region
	Settings      *settings.Map

	// Source is the file the definition was loaded from, if any.
	Source string
}

// Default returns the built-in layout: one "content" region, no theme hook.
func Default() *Definition {
	return &Definition{
		ID:            DefaultID,
		Label:         "Default",
		Category:      "Columns: 1",
		DefaultRegion: "content",
		Regions:       []region.Region{{ID: "content", Label: "Content"}},
		Settings:      settings.New(),
	}
}

// RegionIDs returns the declared region ids in order.
func (d *Definition) RegionIDs() []string {
	ids := make([]string, len(d.Regions))
	for i, r := range d.Regions {
		ids[i] = r.ID
	}

	return ids
}

// DefaultRegionID returns the explicit default region, or the first one.
func (d *Definition) DefaultRegionID() string {
	if d.DefaultRegion != "" {
		return d.DefaultRegion
	}

	if r, ok := common.First(d.Regions); ok {
		return r.ID
	}

	return ""
}

// Catalog builds the region catalog of the layout.
func (d *Definition) Catalog() (*region.Catalog, error) {
	return region.NewScoped(d.ID, d.Regions, d.DefaultRegion)
}

// Provider resolves layout ids to definitions.
type Provider interface {
	Resolve(id string) (*Definition, error)
}

// UnknownLayoutError is returned when no definition exists for ID.
type UnknownLayoutError struct {
	ID          string
	Suggestions []string
}

func (e *UnknownLayoutError) Error() string {
	msg := fmt.Sprintf("unknown layout %q", e.ID)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %q?)", strings.Join(e.Suggestions, `", "`))
	}

	return msg
}

// ResolveCatalog resolves id and builds its region catalog.
func ResolveCatalog(p Provider, id string) (*Definition, *region.Catalog, error) {
	def, err := p.Resolve(id)
	if err != nil {
		return nil, nil, err
	}

	cat, err := def.Catalog()
	if err != nil {
		return nil, nil, err
	}

	return def, cat, nil
}
