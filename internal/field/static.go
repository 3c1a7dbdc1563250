package field

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// StaticProvider serves field catalogs from a YAML document:
//
//	entity_types:
//	  node:
//	    article:
//	      fields:
//	        - name: title
//	          view_configurable: false
//	      extra_fields:
//	        display:
//	          - name: links
//	            weight: 100
//
// view_configurable, form_configurable and visible default to true.
type StaticProvider struct {
	bundles map[string]map[string]*bundleFile
}

type catalogFile struct {
	EntityTypes map[string]map[string]*bundleFile `yaml:"entity_types"`
}

type bundleFile struct {
	Fields      []fieldFile            `yaml:"fields"`
	ExtraFields map[string][]extraFile `yaml:"extra_fields"`
}

type fieldFile struct {
	Name             string `yaml:"name"`
	Type             string `yaml:"type"`
	Label            string `yaml:"label"`
	ViewConfigurable *bool  `yaml:"view_configurable"`
	FormConfigurable *bool  `yaml:"form_configurable"`
}

type extraFile struct {
	Name    string `yaml:"name"`
	Label   string `yaml:"label"`
	Visible *bool  `yaml:"visible"`
	Weight  int    `yaml:"weight"`
}

// LoadFile reads a static catalog from a YAML file.
func LoadFile(path string) (*StaticProvider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read field catalog: %w", err)
	}

	return Parse(data)
}

// Parse reads a static catalog from YAML.
func Parse(data []byte) (*StaticProvider, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse field catalog: %w", err)
	}

	for et, bundles := range f.EntityTypes {
		for b, bf := range bundles {
			if bf == nil {
				continue
			}

			for i, fd := range bf.Fields {
				if fd.Name == "" {
					return nil, fmt.Errorf("%s.%s: field %d has no name", et, b, i)
				}
			}

			for key, extras := range bf.ExtraFields {
				if key != View.ExtraKey() && key != Form.ExtraKey() {
					return nil, fmt.Errorf("%s.%s: unknown extra field context %q", et, b, key)
				}

				for i, x := range extras {
					if x.Name == "" {
						return nil, fmt.Errorf("%s.%s: extra field %d has no name", et, b, i)
					}
				}
			}
		}
	}

	return &StaticProvider{bundles: f.EntityTypes}, nil
}

// FieldDefinitions implements Provider. An unknown bundle has no fields.
func (p *StaticProvider) FieldDefinitions(entityType, bundle string) ([]Definition, error) {
	bf := p.bundle(entityType, bundle)
	if bf == nil {
		return nil, nil
	}

	defs := make([]Definition, 0, len(bf.Fields))
	for _, fd := range bf.Fields {
		defs = append(defs, Definition{
			Name:             fd.Name,
			Type:             fd.Type,
			Label:            fd.Label,
			ViewConfigurable: boolOr(fd.ViewConfigurable, true),
			FormConfigurable: boolOr(fd.FormConfigurable, true),
		})
	}

	return defs, nil
}

// ExtraFields implements Provider. An unknown bundle has no extra fields.
func (p *StaticProvider) ExtraFields(entityType, bundle string, ctx Context) ([]ExtraField, error) {
	bf := p.bundle(entityType, bundle)
	if bf == nil {
		return nil, nil
	}

	src := bf.ExtraFields[ctx.ExtraKey()]

	extras := make([]ExtraField, 0, len(src))
	for _, x := range src {
		extras = append(extras, ExtraField{
			Name:    x.Name,
			Label:   x.Label,
			Visible: boolOr(x.Visible, true),
			Weight:  x.Weight,
		})
	}

	return extras, nil
}

func (p *StaticProvider) bundle(entityType, bundle string) *bundleFile {
	if p == nil {
		return nil
	}

	return p.bundles[entityType][bundle]
}

func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}

	return *b
}
