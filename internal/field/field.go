// Package field provides the field catalog of an entity bundle: which fields
// and extra fields exist for a display context and whether their placement
// may be managed.
package field

import (
	"fmt"
)

// Context is the display context a catalog is built for.
type Context string

const (
	View Context = "view"
	Form Context = "form"
)

// ParseContext accepts "view" and "form". An empty string means View.
func ParseContext(s string) (Context, error) {
	switch Context(s) {
	case "", View:
		return View, nil
	case Form:
		return Form, nil
	default:
		return "", fmt.Errorf("unknown display context %q (want %q or %q)", s, View, Form)
	}
}

// ExtraKey returns the key extra fields are declared under for c.
func (c Context) ExtraKey() string {
	if c == Form {
		return "form"
	}

	return "display"
}

// Definition is a schema field definition.
type Definition struct {
	Name             string
	Type             string
	Label            string
	ViewConfigurable bool
	FormConfigurable bool
}

// IsDisplayConfigurable reports whether the placement of the field may be
// managed in ctx.
func (d Definition) IsDisplayConfigurable(ctx Context) bool {
	if ctx == Form {
		return d.FormConfigurable
	}

	return d.ViewConfigurable
}

// ExtraField is a pseudo-field contributed outside the schema.
type ExtraField struct {
	Name    string
	Label   string
	Visible bool
	// Weight is the weight declared by the provider. It is informational:
	// reconciliation appends new fields after the existing ones instead.
	Weight  int
}

// Provider supplies field definitions and extra fields for a bundle.
type Provider interface {
	FieldDefinitions(entityType, bundle string) ([]Definition, error)
	ExtraFields(entityType, bundle string, ctx Context) ([]ExtraField, error)
}

// Entry is one field of a catalog.
type Entry struct {
	Name         string
	Type         string
	Label        string
	Configurable bool
	Extra        bool
	Visible      bool
	// Weight is the declared weight of an extra field, kept for callers that
	// present the catalog. Reconciliation does not read it.
	Weight       int
}

// Catalog is the ordered set of fields of one bundle in one display context.
// A nil *Catalog knows no fields.
type Catalog struct {
	ctx     Context
	entries []Entry
	index   map[string]int
}

// NewCatalog builds a catalog. A later entry with the same name replaces the
// earlier one in place.
func NewCatalog(ctx Context, entries ...Entry) *Catalog {
	c := &Catalog{ctx: ctx, index: make(map[string]int, len(entries))}

	for _, e := range entries {
		if i, ok := c.index[e.Name]; ok {
			c.entries[i] = e
			continue
		}

		c.index[e.Name] = len(c.entries)
		c.entries = append(c.entries, e)
	}

	return c
}

// Load builds the catalog of entityType/bundle for ctx from p. Extra fields
// override base fields of the same name.
func Load(p Provider, entityType, bundle string, ctx Context) (*Catalog, error) {
	defs, err := p.FieldDefinitions(entityType, bundle)
	if err != nil {
		return nil, fmt.Errorf("failed to load field definitions of %s.%s: %w", entityType, bundle, err)
	}

	extras, err := p.ExtraFields(entityType, bundle, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load extra fields of %s.%s: %w", entityType, bundle, err)
	}

	entries := make([]Entry, 0, len(defs)+len(extras))

	for _, d := range defs {
		entries = append(entries, Entry{
			Name:         d.Name,
			Type:         d.Type,
			Label:        d.Label,
			Configurable: d.IsDisplayConfigurable(ctx),
			Visible:      true,
		})
	}

	for _, x := range extras {
		entries = append(entries, Entry{
			Name:         x.Name,
			Label:        x.Label,
			Configurable: true,
			Extra:        true,
			Visible:      x.Visible,
			Weight:       x.Weight,
		})
	}

	return NewCatalog(ctx, entries...), nil
}

// Context returns the display context of the catalog.
func (c *Catalog) Context() Context {
	if c == nil {
		return View
	}

	return c.ctx
}

// Len returns the number of fields.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}

	return len(c.entries)
}

// Lookup returns the entry of name.
func (c *Catalog) Lookup(name string) (Entry, bool) {
	if c == nil {
		return Entry{}, false
	}

	i, ok := c.index[name]
	if !ok {
		return Entry{}, false
	}

	return c.entries[i], true
}

// Has reports whether name is a field of the bundle.
func (c *Catalog) Has(name string) bool {
	_, ok := c.Lookup(name)
	return ok
}

// IsConfigurable reports whether name exists and is configurable.
func (c *Catalog) IsConfigurable(name string) bool {
	e, ok := c.Lookup(name)
	return ok && e.Configurable
}

// Entries returns a copy of the entries in catalog order.
func (c *Catalog) Entries() []Entry {
	if c == nil {
		return nil
	}

	return append([]Entry(nil), c.entries...)
}

// Names returns every field name in catalog order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, c.Len())
	for _, e := range c.Entries() {
		names = append(names, e.Name)
	}

	return names
}
