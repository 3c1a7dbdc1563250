package field

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseContext(t *testing.T) {
	c, err := ParseContext("")
	require.NoError(t, err)
	assert.Equal(t, View, c)

	c, err = ParseContext("form")
	require.NoError(t, err)
	assert.Equal(t, Form, c)
	assert.Equal(t, "form", c.ExtraKey())
	assert.Equal(t, "display", View.ExtraKey())

	_, err = ParseContext("print")
	require.Error(t, err)
}

func TestNewCatalog_LaterEntryWins(t *testing.T) {
	c := NewCatalog(View,
		Entry{Name: "a", Configurable: false},
		Entry{Name: "b", Configurable: true},
		Entry{Name: "a", Configurable: true, Extra: true},
	)

	assert.Equal(t, []string{"a", "b"}, c.Names())
	assert.True(t, c.IsConfigurable("a"))

	e, ok := c.Lookup("a")
	require.True(t, ok)
	assert.True(t, e.Extra)
}

func TestNilCatalog(t *testing.T) {
	var c *Catalog

	assert.False(t, c.Has("a"))
	assert.False(t, c.IsConfigurable("a"))
	assert.Equal(t, 0, c.Len())
	assert.Empty(t, c.Names())
	assert.Equal(t, View, c.Context())
}

func TestStaticProvider_View(t *testing.T) {
	p, err := LoadFile(filepath.Join("testdata", "fields.yml"))
	require.NoError(t, err)

	c, err := Load(p, "entity_test", "entity_test", View)
	require.NoError(t, err)

	assert.Equal(t, View, c.Context())
	assert.Equal(t,
		[]string{"name", "test1", "test2", "test3", "test4", "id", "created", "links"},
		c.Names())

	assert.False(t, c.IsConfigurable("id"))
	assert.True(t, c.IsConfigurable("created"), "created is only locked on forms")

	test2, ok := c.Lookup("test2")
	require.True(t, ok)
	assert.True(t, test2.Extra, "extra field overrides base field")
	assert.Equal(t, "Test two as extra", test2.Label)

	links, _ := c.Lookup("links")
	assert.Equal(t, 100, links.Weight)
	assert.True(t, links.Visible)
}

func TestStaticProvider_Form(t *testing.T) {
	p, err := LoadFile(filepath.Join("testdata", "fields.yml"))
	require.NoError(t, err)

	c, err := Load(p, "entity_test", "entity_test", Form)
	require.NoError(t, err)

	assert.False(t, c.IsConfigurable("created"))
	assert.False(t, c.Has("links"))

	sel, ok := c.Lookup("langcode_selector")
	require.True(t, ok)
	assert.False(t, sel.Visible)
}

func TestStaticProvider_UnknownBundle(t *testing.T) {
	p, err := Parse([]byte("entity_types: {}"))
	require.NoError(t, err)

	c, err := Load(p, "node", "page", View)
	require.NoError(t, err)
	assert.Equal(t, 0, c.Len())
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{name: "syntax", src: "entity_types: [", want: "failed to parse field catalog"},
		{name: "nameless field", src: "entity_types: {n: {b: {fields: [{type: string}]}}}", want: "field 0 has no name"},
		{name: "bad context", src: "entity_types: {n: {b: {extra_fields: {print: []}}}}", want: `unknown extra field context "print"`},
		{name: "nameless extra", src: "entity_types: {n: {b: {extra_fields: {form: [{}]}}}}", want: "extra field 0 has no name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

type failingProvider struct{ defsErr, extrasErr error }

func (f failingProvider) FieldDefinitions(string, string) ([]Definition, error) {
	return nil, f.defsErr
}

func (f failingProvider) ExtraFields(string, string, Context) ([]ExtraField, error) {
	return nil, f.extrasErr
}

func TestLoad_ProviderErrors(t *testing.T) {
	boom := errors.New("boom")

	_, err := Load(failingProvider{defsErr: boom}, "n", "b", View)
	require.ErrorIs(t, err, boom)

	_, err = Load(failingProvider{extrasErr: boom}, "n", "b", View)
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "extra fields of n.b")
}
