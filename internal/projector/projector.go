// Package projector moves the fields of a flat render tree into the regions
// of a layout and gives access to a single field's output wherever it was
// moved.
package projector

import (
	"fmt"
	"sort"

	"entity-display/internal/assignment"
	"entity-display/internal/build"
	"entity-display/internal/common"
	"entity-display/internal/diagnostic"
	"entity-display/internal/field"
	"entity-display/internal/layout"
	"entity-display/internal/match"
	"entity-display/internal/region"
	"entity-display/internal/settings"
)

// LayoutKey is the build key the region containers are placed under.
const LayoutKey = build.LayoutKey

const (
	processGroup   = "process_group"
	preRenderGroup = "pre_render_group"
)

// Projector applies one display's assignments to builds. It does not modify
// its inputs and may be shared across goroutines as long as each build is
// only touched by one of them.
type Projector struct {
	layout   *layout.Definition
	catalog  *region.Catalog
	fields   *field.Catalog
	content  *assignment.Map
	settings *settings.Map
}

// New returns a projector for def. fields may be nil, in which case every
// assigned field counts as configurable.
func New(def *layout.Definition, fields *field.Catalog, content *assignment.Map, layoutSettings *settings.Map) (*Projector, error) {
	if def == nil {
		return nil, fmt.Errorf("layout definition must not be nil")
	}

	cat, err := def.Catalog()
	if err != nil {
		return nil, err
	}

	return &Projector{
		layout:   def,
		catalog:  cat,
		fields:   fields,
		content:  content,
		settings: layoutSettings,
	}, nil
}

// Catalog returns the region catalog of the layout.
func (p *Projector) Catalog() *region.Catalog {
	return p.catalog
}

// Apply projects b for the display context of the field catalog.
func (p *Projector) Apply(b *build.Node) error {
	if p.fields.Context() == field.Form {
		return p.ApplyFormLayout(b)
	}

	return p.ApplyLayout(b)
}

type placed struct {
	name   string
	region string
	weight int
	order  int
}

// ApplyLayout moves every assigned, configurable field present in b under
// b[LayoutKey][region]. Regions follow catalog order and all of them are
// created, including empty ones. Fields within a region follow weight, then
// their order in b. Unassigned and non-configurable fields stay where they
// are. On error b is left untouched.
func (p *Projector) ApplyLayout(b *build.Node) error {
	fields, err := p.collect(b)
	if err != nil {
		return err
	}

	l, existed := b.Child(LayoutKey), true
	if l == nil {
		l, existed = build.New(), false
	}

	for _, id := range p.catalog.IDs() {
		l.EnsureChild(id)
	}

	for _, f := range fields {
		node := b.Child(f.name)
		b.Remove(f.name)
		l.Child(f.region).SetChild(f.name, node)
	}

	p.decorate(l)

	if !existed {
		b.SetChild(LayoutKey, l)
	}

	return nil
}

// ApplyFormLayout keeps fields at the top level of b and points them at
// their region with #group, unless they already belong to a group. A group
// container per region is added under b[LayoutKey]; nothing is added when no
// field is placed.
func (p *Projector) ApplyFormLayout(b *build.Node) error {
	fields, err := p.collect(b)
	if err != nil {
		return err
	}

	if common.IsEmpty(fields) {
		return nil
	}

	for _, f := range fields {
		node := b.Child(f.name)
		if !node.Has("#group") {
			node.Set("#group", f.region)
		}
	}

	l, existed := b.Child(LayoutKey), true
	if l == nil {
		l, existed = build.New(), false
	}

	for _, id := range p.catalog.IDs() {
		group := l.EnsureChild(id)
		group.Set("#process", []string{processGroup})
		group.Set("#pre_render", []string{preRenderGroup})
	}

	p.decorate(l)

	if !existed {
		b.SetChild(LayoutKey, l)
	}

	return nil
}

// collect returns the fields of b to place, sorted by weight and build
// order. It fails if any of them points at a region the catalog lacks.
func (p *Projector) collect(b *build.Node) ([]placed, error) {
	var (
		out   []placed
		diags diagnostic.Diagnostics
	)

	for i, name := range b.Children() {
		if name == LayoutKey {
			continue
		}

		regionID, ok := p.placement(name)
		if !ok {
			continue
		}

		if !p.catalog.Has(regionID) {
			diags.AddError("stale_region",
				fmt.Sprintf("field %q is assigned to region %q which layout %q does not declare", name, regionID, p.layout.ID),
				p.layout.ID, name).
				WithSuggestions(match.Suggest(regionID, p.catalog.IDs(), match.DefaultLimit))

			continue
		}

		out = append(out, placed{
			name:   name,
			region: regionID,
			weight: p.content.Get(name).WeightValue(),
			order:  i,
		})
	}

	if err := diagnostic.NewConfigurationError(&diags); err != nil {
		return nil, err
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].weight != out[j].weight {
			return out[i].weight < out[j].weight
		}

		return out[i].order < out[j].order
	})

	return out, nil
}

// placement returns the region name is rendered in, if it is placed at all.
// Fields unknown to the field catalog but assigned count as configurable.
func (p *Projector) placement(name string) (string, bool) {
	c := p.content.Get(name)
	if c == nil || c.IsHidden() {
		return "", false
	}

	if p.fields.Has(name) && !p.fields.IsConfigurable(name) {
		return "", false
	}

	if c.Region == "" {
		return p.catalog.Default(), true
	}

	return c.Region, true
}

func (p *Projector) decorate(l *build.Node) {
	s := p.settings.Clone()
	if s == nil {
		s = settings.New()
	}

	l.Set("#settings", s)
	l.Set("#layout", p.layout.ID)

	if p.layout.ThemeHook != "" {
		l.Set("#theme", p.layout.ThemeHook)
	}

	if len(p.layout.Libraries) > 0 {
		l.Set("#attached", map[string]any{
			"library": append([]string(nil), p.layout.Libraries...),
		})
	}
}

// GetFieldFromBuild returns the node of name wherever it sits in b: its
// assigned region first, then the top level, then any region. The returned
// node aliases b. It returns nil when b does not hold the field.
func (p *Projector) GetFieldFromBuild(name string, b *build.Node) *build.Node {
	if holder := p.holder(name, b); holder != nil {
		return holder.Child(name)
	}

	return nil
}

// SetFieldOnBuild writes node for name into b. A field already present is
// replaced where it sits. Otherwise an assigned, configurable field goes to
// its region and any other known field to the top level. A field known to
// neither the field catalog nor the assignments is rejected.
func (p *Projector) SetFieldOnBuild(name string, node *build.Node, b *build.Node) error {
	if !p.fields.Has(name) && !p.content.Has(name) {
		candidates := append(p.fields.Names(), p.content.Names()...)

		return &InvalidArgumentError{
			Field:       name,
			Suggestions: match.Suggest(name, candidates, match.DefaultLimit),
		}
	}

	if holder := p.holder(name, b); holder != nil {
		holder.SetChild(name, node)
		return nil
	}

	regionID, ok := p.placement(name)
	if !ok || p.fields.Context() == field.Form {
		b.SetChild(name, node)
		return nil
	}

	b.EnsureChild(LayoutKey).EnsureChild(regionID).SetChild(name, node)

	return nil
}

// holder returns the node that directly contains name.
func (p *Projector) holder(name string, b *build.Node) *build.Node {
	l := b.Child(LayoutKey)

	if regionID, ok := p.placement(name); ok {
		if r := l.Child(regionID); r.Child(name) != nil {
			return r
		}
	}

	if name != LayoutKey && b.Child(name) != nil {
		return b
	}

	for _, regionID := range l.Children() {
		if r := l.Child(regionID); r.Child(name) != nil {
			return r
		}
	}

	return nil
}
