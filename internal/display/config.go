package display

import (
	"fmt"

	"entity-display/internal/assignment"
	"entity-display/internal/field"
	"entity-display/internal/layout"
	"entity-display/internal/settings"
)

// DefaultMode is the mode of a display record that does not name one.
const DefaultMode = "default"

// Config is a display record.
type Config struct {
	ID               string                `yaml:"id"`
	TargetEntityType string                `yaml:"targetEntityType"`
	Bundle           string                `yaml:"bundle"`
	Mode             string                `yaml:"mode"`
	Context          field.Context         `yaml:"context"`
	Status           bool                  `yaml:"status"`
	LayoutID         string                `yaml:"layout_id"`
	LayoutSettings   *settings.Map         `yaml:"layout_settings"`
	Content          *assignment.Map       `yaml:"content"`
	Hidden           *assignment.HiddenSet `yaml:"hidden"`
}

// New returns an enabled, empty record using the default layout.
func New(entityType, bundle, mode string, ctx field.Context) *Config {
	c := &Config{
		TargetEntityType: entityType,
		Bundle:           bundle,
		Mode:             mode,
		Context:          ctx,
		Status:           true,
	}
	applyDefaults(c)

	return c
}

// applyDefaults fills in default values for optional keys.
func applyDefaults(c *Config) {
	if c.Mode == "" {
		c.Mode = DefaultMode
	}

	if c.Context == "" {
		c.Context = field.View
	}

	if c.LayoutID == "" {
		c.LayoutID = layout.DefaultID
	}

	if c.ID == "" {
		c.ID = fmt.Sprintf("%s.%s.%s", c.TargetEntityType, c.Bundle, c.Mode)
	}

	if c.LayoutSettings == nil {
		c.LayoutSettings = settings.New()
	}

	if c.Content == nil {
		c.Content = assignment.NewMap()
	}

	if c.Hidden == nil {
		c.Hidden = assignment.NewHiddenSet()
	}
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	out.LayoutSettings = c.LayoutSettings.Clone()
	out.Content = c.Content.Clone()
	out.Hidden = c.Hidden.Clone()

	return &out
}

// Equal reports deep equality, including key order.
func (c *Config) Equal(o *Config) bool {
	if c == nil || o == nil {
		return c == nil && o == nil
	}

	return c.ID == o.ID &&
		c.TargetEntityType == o.TargetEntityType &&
		c.Bundle == o.Bundle &&
		c.Mode == o.Mode &&
		c.Context == o.Context &&
		c.Status == o.Status &&
		c.LayoutID == o.LayoutID &&
		c.LayoutSettings.Equal(o.LayoutSettings) &&
		c.Content.Equal(o.Content) &&
		c.Hidden.Equal(o.Hidden)
}

// FieldCatalog loads the field catalog of the record's bundle and context.
func (c *Config) FieldCatalog(p field.Provider) (*field.Catalog, error) {
	return field.Load(p, c.TargetEntityType, c.Bundle, c.Context)
}
