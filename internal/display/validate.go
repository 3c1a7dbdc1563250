package display

import (
	"errors"
	"fmt"

	"entity-display/internal/assignment"
	"entity-display/internal/diagnostic"
	"entity-display/internal/field"
	"entity-display/internal/layout"
	"entity-display/internal/match"
	"entity-display/internal/region"
)

// Validate checks the record against the layout registry and, when fields is
// not nil, the field catalog. It reports everything it finds instead of
// stopping at the first problem.
func (c *Config) Validate(p layout.Provider, fields *field.Catalog) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if c == nil {
		res.AddError("display_is_nil", "display record is nil", "", "")
		return res
	}

	scope := c.ID

	if c.TargetEntityType == "" {
		res.AddError("missing_target_entity_type", "targetEntityType must be set", scope, "")
	}

	if c.Bundle == "" {
		res.AddError("missing_bundle", "bundle must be set", scope, "")
	}

	if _, err := field.ParseContext(string(c.Context)); err != nil {
		res.AddError("invalid_context", err.Error(), scope, "")
	}

	cat := validateLayout(res, scope, p, c.LayoutID)

	c.Content.Range(func(name string, comp *assignment.Component) bool {
		validateComponent(res, scope, name, comp, cat, fields)
		return true
	})

	for _, name := range c.Hidden.Names() {
		if c.Content.Has(name) {
			res.AddWarning("hidden_and_assigned",
				fmt.Sprintf("field %q is both assigned and hidden; it will be shown", name), scope, name)
		}

		if fields != nil && !fields.Has(name) {
			res.AddWarning("unknown_hidden_field",
				fmt.Sprintf("hidden field %q is not defined", name), scope, name).
				WithSuggestions(match.Suggest(name, fields.Names(), match.DefaultLimit))
		}
	}

	return res
}

func validateLayout(res *diagnostic.Diagnostics, scope string, p layout.Provider, id string) *region.Catalog {
	_, cat, err := layout.ResolveCatalog(p, id)

	var (
		unknown *layout.UnknownLayoutError
		invalid *diagnostic.ConfigurationError
	)

	switch {
	case err == nil:
		return cat
	case errors.As(err, &unknown):
		res.AddError("unknown_layout", fmt.Sprintf("layout %q is not registered", id), scope, "").
			WithSuggestions(unknown.Suggestions)
	case errors.As(err, &invalid):
		res.Merge(invalid.Diagnostics)
	default:
		res.AddError("layout_error", err.Error(), scope, "")
	}

	return nil
}

func validateComponent(
	res *diagnostic.Diagnostics,
	scope, name string,
	comp *assignment.Component,
	cat *region.Catalog,
	fields *field.Catalog,
) {
	if name == "" {
		res.AddError("empty_field_name", "content holds an assignment without a field name", scope, "")
		return
	}

	if fields != nil {
		e, ok := fields.Lookup(name)

		switch {
		case !ok:
			res.AddError("unknown_field", fmt.Sprintf("field %q is not defined", name), scope, name).
				WithSuggestions(match.Suggest(name, fields.Names(), match.DefaultLimit))

			return
		case !e.Configurable:
			res.AddWarning("non_configurable",
				fmt.Sprintf("field %q is not configurable and will be removed on save", name), scope, name)

			return
		}
	}

	switch {
	case comp.IsHidden():
		res.AddInfo("pending_hidden", fmt.Sprintf("field %q will be hidden on save", name), scope, name)
	case comp.Region == "":
		res.AddInfo("missing_region", fmt.Sprintf("field %q will be placed in the default region on save", name), scope, name)
	case cat != nil && !cat.Has(comp.Region):
		res.AddError("stale_region",
			fmt.Sprintf("field %q is assigned to undeclared region %q", name, comp.Region), scope, name).
			WithSuggestions(match.Suggest(comp.Region, cat.IDs(), match.DefaultLimit))
	}
}
