package display

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"entity-display/internal/field"
)

// LoadFile loads and parses a display record from the given path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read display file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a display record and applies defaults.
func Parse(data []byte) (*Config, error) {
	var c Config

	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse display YAML: %w", err)
	}

	ctx, err := field.ParseContext(string(c.Context))
	if err != nil {
		return nil, fmt.Errorf("failed to parse display YAML: %w", err)
	}

	c.Context = ctx
	applyDefaults(&c)

	return &c, nil
}

// Marshal serializes a display record to YAML with two-space indentation.
func Marshal(c *Config) ([]byte, error) {
	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	if err := enc.Encode(c); err != nil {
		return nil, err
	}

	if err := enc.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// WriteFile writes a display record to the given path.
func WriteFile(c *Config, path string) error {
	data, err := Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal display: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write display file %s: %w", path, err)
	}

	return nil
}
