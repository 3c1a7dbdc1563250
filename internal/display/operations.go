package display

import (
	"entity-display/internal/assignment"
	"entity-display/internal/field"
	"entity-display/internal/layout"
	"entity-display/internal/projector"
	"entity-display/internal/reconcile"
	"entity-display/internal/settings"
)

// Component returns a copy of the assignment of name, or nil.
func (c *Config) Component(name string) *assignment.Component {
	return c.Content.Get(name).Clone()
}

// SetComponent assigns comp to name and takes the field off the hidden list.
// A component without weight sinks below every other component.
func (c *Config) SetComponent(name string, comp *assignment.Component) {
	comp = comp.Clone()
	if comp == nil {
		comp = &assignment.Component{}
	}

	if comp.Weight == nil {
		comp.Weight = assignment.WeightOf(c.nextWeight())
	}

	if c.Content == nil {
		c.Content = assignment.NewMap()
	}

	c.Content.Set(name, comp)
	c.Hidden.Remove(name)
}

// RemoveComponent drops the assignment of name and hides the field.
func (c *Config) RemoveComponent(name string) {
	c.Content.Delete(name)

	if c.Hidden == nil {
		c.Hidden = assignment.NewHiddenSet()
	}

	c.Hidden.Add(name)
}

func (c *Config) nextWeight() int {
	next, found := 0, false

	c.Content.Range(func(_ string, comp *assignment.Component) bool {
		if w := comp.WeightValue() + 1; !found || w > next {
			next = w
		}

		found = true

		return true
	})

	return next
}

// SetLayoutFromID switches the record to layout id with layoutSettings and
// reconciles the assignments against the new regions. An unresolvable
// current layout is tolerated; an unresolvable id is not. On error the
// record is unchanged.
func (c *Config) SetLayoutFromID(
	p layout.Provider,
	id string,
	layoutSettings *settings.Map,
	fields *field.Catalog,
) ([]reconcile.Change, error) {
	_, newCatalog, err := layout.ResolveCatalog(p, id)
	if err != nil {
		return nil, err
	}

	_, oldCatalog, err := layout.ResolveCatalog(p, c.LayoutID)
	if err != nil {
		oldCatalog = nil
	}

	res, err := reconcile.Engine{Fields: fields}.Reconcile(oldCatalog, newCatalog, c.Content, c.Hidden)
	if err != nil {
		return nil, err
	}

	s := layoutSettings.Clone()
	if s == nil {
		s = settings.New()
	}

	c.LayoutID = id
	c.LayoutSettings = s
	c.Content = res.Content
	c.Hidden = res.Hidden

	return res.Changes, nil
}

// PreSave prepares the record for persistence: assignments are reconciled
// with the current layout and field catalog, and missing layout settings
// receive the layout's defaults. On error the record is left unchanged.
func (c *Config) PreSave(p layout.Provider, fields *field.Catalog) ([]reconcile.Change, error) {
	next := c.Clone()
	applyDefaults(next)

	def, cat, err := layout.ResolveCatalog(p, next.LayoutID)
	if err != nil {
		return nil, err
	}

	res, err := reconcile.Engine{Fields: fields}.Reconcile(cat, cat, next.Content, next.Hidden)
	if err != nil {
		return nil, err
	}

	next.Content = res.Content
	next.Hidden = res.Hidden
	next.UpdateLayoutDefaults(def)

	*c = *next

	return res.Changes, nil
}

// UpdateLayoutDefaults fills every layout setting the record lacks with the
// default declared by def and returns the keys it filled.
func (c *Config) UpdateLayoutDefaults(def *layout.Definition) []string {
	if c.LayoutSettings == nil {
		c.LayoutSettings = settings.New()
	}

	return c.LayoutSettings.ApplyDefaults(def.Settings)
}

// Projector returns a projector for the record's current layout.
func (c *Config) Projector(p layout.Provider, fields *field.Catalog) (*projector.Projector, error) {
	def, err := p.Resolve(c.LayoutID)
	if err != nil {
		return nil, err
	}

	if fields == nil {
		fields = field.NewCatalog(c.Context)
	}

	return projector.New(def, fields, c.Content, c.LayoutSettings)
}
