package region

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"entity-display/internal/diagnostic"
)

func TestNew(t *testing.T) {
	c, err := New([]Region{{ID: "left", Label: "Left"}, {ID: "right"}}, "")
	require.NoError(t, err)

	assert.Equal(t, []string{"left", "right"}, c.IDs())
	assert.Equal(t, "left", c.Default())
	assert.Equal(t, 1, c.Index("right"))
	assert.Equal(t, -1, c.Index("content"))
	assert.True(t, c.Has("left"))
	assert.Equal(t, "Left", c.Label("left"))
	assert.Equal(t, "right", c.Label("right"))
	assert.Equal(t, 2, c.Len())
}

func TestNew_ExplicitDefault(t *testing.T) {
	c, err := New(Of("first", "second", "third"), "second")
	require.NoError(t, err)
	assert.Equal(t, "second", c.Default())
}

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name    string
		regions []Region
		def     string
		codes   []string
	}{
		{name: "empty", codes: []string{"empty_catalog"}},
		{name: "duplicate", regions: Of("a", "a"), codes: []string{"duplicate_region"}},
		{name: "reserved", regions: Of("a", Hidden), codes: []string{"reserved_region"}},
		{name: "property key", regions: Of("main", "#settings"), codes: []string{"reserved_region"}},
		{name: "layout key", regions: Of("main", "_layout"), codes: []string{"reserved_region"}},
		{name: "blank id", regions: Of("a", ""), codes: []string{"empty_region_id"}},
		{name: "unknown default", regions: Of("a"), def: "b", codes: []string{"unknown_default_region"}},
		{
			name:    "everything at once",
			regions: Of("a", "a", Hidden),
			def:     "z",
			codes:   []string{"duplicate_region", "reserved_region", "unknown_default_region"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewScoped("two_column", tt.regions, tt.def)
			require.Error(t, err)
			assert.Nil(t, c)

			var ce *diagnostic.ConfigurationError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, tt.codes, ce.Diagnostics.Codes())

			for _, d := range ce.Diagnostics.Errors {
				assert.Equal(t, "two_column", d.Scope)
			}
		})
	}
}

func TestNilCatalog(t *testing.T) {
	var c *Catalog

	assert.Equal(t, 0, c.Len())
	assert.Empty(t, c.IDs())
	assert.False(t, c.Has("a"))
	assert.Equal(t, "", c.Default())
}

func TestMustNew_Panics(t *testing.T) {
	assert.Panics(t, func() { MustNew(nil, "") })
}
