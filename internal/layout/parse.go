package layout

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"entity-display/internal/region"
	"entity-display/internal/settings"
)

type fileRoot struct {
	Layouts []*layoutBlock `hcl:"layout,block"`
}

type layoutBlock struct {
	ID            string         `hcl:"id,label"`
	Label         string         `hcl:"label,optional"`
	Category      string         `hcl:"category,optional"`
	ThemeHook     string         `hcl:"theme_hook,optional"`
	Libraries     []string       `hcl:"libraries,optional"`
	DefaultRegion string         `hcl:"default_region,optional"`
	Settings      hcl.Expression `hcl:"settings,optional"`
	Regions       []*regionBlock `hcl:"region,block"`
}

type regionBlock struct {
	ID    string `hcl:"id,label"`
	Label string `hcl:"label,optional"`
}

// ParseFile reads layout definitions from an HCL file.
func ParseFile(filename string) ([]*Definition, error) {
	parser := hclparse.NewParser()

	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse layout file %s: %w", filename, diags)
	}

	return decode(file, filename)
}

// Parse reads layout definitions from HCL source. filename is only used in
// messages.
func Parse(src []byte, filename string) ([]*Definition, error) {
	parser := hclparse.NewParser()

	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse layout file %s: %w", filename, diags)
	}

	return decode(file, filename)
}

func decode(file *hcl.File, filename string) ([]*Definition, error) {
	var root fileRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode layout file %s: %w", filename, diags)
	}

	defs := make([]*Definition, 0, len(root.Layouts))

	for _, lb := range root.Layouts {
		def := &Definition{
			ID:            lb.ID,
			Label:         lb.Label,
			Category:      lb.Category,
			ThemeHook:     lb.ThemeHook,
			Libraries:     lb.Libraries,
			DefaultRegion: lb.DefaultRegion,
			Source:        filename,
		}

		if def.Label == "" {
			def.Label = def.ID
		}

		for _, rb := range lb.Regions {
			def.Regions = append(def.Regions, region.Region{ID: rb.ID, Label: rb.Label})
		}

		s, err := settingsFromExpr(lb.Settings)
		if err != nil {
			return nil, fmt.Errorf("layout %q in %s: %w", lb.ID, filename, err)
		}

		def.Settings = s
		defs = append(defs, def)
	}

	return defs, nil
}

// settingsFromExpr converts an object expression to an ordered map. Object
// expressions are walked key by key so that source order is kept.
func settingsFromExpr(expr hcl.Expression) (*settings.Map, error) {
	out := settings.New()

	if expr == nil {
		return out, nil
	}

	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, diags
	}

	if val.IsNull() {
		return out, nil
	}

	pairs, diags := hcl.ExprMap(expr)
	if diags.HasErrors() {
		return nil, fmt.Errorf("settings must be an object: %w", diags)
	}

	for _, pair := range pairs {
		key, diags := pair.Key.Value(nil)
		if diags.HasErrors() {
			return nil, diags
		}

		if key.Type() != cty.String || key.IsNull() {
			return nil, errors.New("settings keys must be strings")
		}

		v, err := exprToNative(pair.Value)
		if err != nil {
			return nil, fmt.Errorf("setting %q: %w", key.AsString(), err)
		}

		out.Set(key.AsString(), v)
	}

	return out, nil
}

func exprToNative(expr hcl.Expression) (any, error) {
	if _, diags := hcl.ExprMap(expr); !diags.HasErrors() {
		return settingsFromExpr(expr)
	}

	if items, diags := hcl.ExprList(expr); !diags.HasErrors() {
		out := make([]any, 0, len(items))

		for _, item := range items {
			v, err := exprToNative(item)
			if err != nil {
				return nil, err
			}

			out = append(out, v)
		}

		return out, nil
	}

	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, diags
	}

	return ctyToNative(val)
}

func ctyToNative(val cty.Value) (any, error) {
	if !val.IsKnown() || val.IsNull() {
		return nil, nil
	}

	switch val.Type() {
	case cty.String:
		return val.AsString(), nil
	case cty.Bool:
		return val.True(), nil
	case cty.Number:
		bf := val.AsBigFloat()
		if bf.IsInt() {
			if i, acc := bf.Int64(); acc == big.Exact {
				return int(i), nil
			}
		}

		f, _ := bf.Float64()

		return f, nil
	}

	return nil, fmt.Errorf("unsupported value type %s", val.Type().FriendlyName())
}
