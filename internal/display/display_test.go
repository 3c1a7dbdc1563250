package display

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"entity-display/internal/assignment"
	"entity-display/internal/build"
	"entity-display/internal/field"
	"entity-display/internal/layout"
	"entity-display/internal/projector"
	"entity-display/internal/reconcile"
	"entity-display/internal/settings"
)

func registry(t *testing.T) *layout.Registry {
	t.Helper()

	r := layout.NewRegistry()
	require.NoError(t, r.LoadDir(context.Background(), filepath.Join("testdata", "layouts.hcl")))

	return r
}

func articleFields() *field.Catalog {
	return field.NewCatalog(field.View,
		field.Entry{Name: "body", Configurable: true, Visible: true},
		field.Entry{Name: "comment", Configurable: true, Visible: true},
		field.Entry{Name: "links", Configurable: true, Extra: true, Visible: true},
	)
}

func TestParse_Defaults(t *testing.T) {
	c, err := Parse([]byte("targetEntityType: node\nbundle: page\n"))
	require.NoError(t, err)

	assert.Equal(t, "node.page.default", c.ID)
	assert.Equal(t, DefaultMode, c.Mode)
	assert.Equal(t, field.View, c.Context)
	assert.Equal(t, layout.DefaultID, c.LayoutID)
	assert.NotNil(t, c.LayoutSettings)
	assert.Equal(t, 0, c.Content.Len())
	assert.Equal(t, 0, c.Hidden.Len())
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse([]byte("content: [1"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse display YAML")

	_, err = Parse([]byte("targetEntityType: node\ncontext: print\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown display context "print"`)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err)
}

func TestRoundTripIsNoop(t *testing.T) {
	src, err := os.ReadFile(filepath.Join("testdata", "article.yml"))
	require.NoError(t, err)

	c, err := Parse(src)
	require.NoError(t, err)

	before := c.Clone()

	changes, err := c.PreSave(registry(t), articleFields())
	require.NoError(t, err)
	assert.Empty(t, changes)
	assert.True(t, before.Equal(c), cmp.Diff(before, c))

	out, err := Marshal(c)
	require.NoError(t, err)
	assert.Equal(t, string(src), string(out))
}

func TestWriteFile(t *testing.T) {
	c := New("node", "page", "teaser", field.Form)
	c.SetComponent("body", &assignment.Component{Region: "content"})

	path := filepath.Join(t.TempDir(), "out.yml")
	require.NoError(t, WriteFile(c, path))

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.True(t, c.Equal(loaded), cmp.Diff(c, loaded))
	assert.Equal(t, "node.page.teaser", loaded.ID)
}

func TestComponentOperations(t *testing.T) {
	c := New("node", "article", "", field.View)

	c.SetComponent("a", &assignment.Component{Region: "content", Weight: assignment.WeightOf(5)})
	c.SetComponent("b", &assignment.Component{Region: "content"})
	assert.Equal(t, 6, *c.Component("b").Weight, "unweighted components sink to the bottom")

	c.RemoveComponent("a")
	assert.Nil(t, c.Component("a"))
	assert.Equal(t, []string{"a"}, c.Hidden.Names())

	c.SetComponent("a", nil)
	assert.False(t, c.Hidden.Has("a"))
	assert.Equal(t, 7, *c.Component("a").Weight)

	got := c.Component("b")
	got.Region = "elsewhere"
	assert.Equal(t, "content", c.Component("b").Region, "Component returns a copy")
}

// Mirrors the lifecycle of a display across saves and layout switches.
func TestPreSaveAndLayoutSwitch(t *testing.T) {
	reg := registry(t)
	fields := field.NewCatalog(field.View,
		field.Entry{Name: "foo", Configurable: true, Visible: true},
		field.Entry{Name: "bar", Configurable: true, Visible: true},
		field.Entry{Name: "name", Configurable: false, Visible: true},
	)

	c, err := Parse([]byte(`
targetEntityType: entity_test
bundle: entity_test
mode: default
status: true
content:
  foo:
    type: visible
  bar:
    type: hidden
  name:
    type: hidden
    region: content
`))
	require.NoError(t, err)
	assert.Equal(t, "entity_test.entity_test.default", c.ID)

	_, err = c.PreSave(reg, fields)
	require.NoError(t, err)

	assert.Equal(t, []string{"foo"}, c.Content.Names())
	assert.Equal(t, &assignment.Component{Type: "visible", Region: "content"}, c.Component("foo"))
	assert.Equal(t, []string{"bar"}, c.Hidden.Names())
	assert.Equal(t, 0, c.LayoutSettings.Len())

	changes, err := c.SetLayoutFromID(reg, "test_layout_main_and_footer", nil, fields)
	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.Equal(t, reconcile.ChangeRehomed, changes[0].Kind)

	assert.Equal(t, "test_layout_main_and_footer", c.LayoutID)
	assert.Equal(t, "main", c.Component("foo").Region)
	assert.Equal(t, 0, *c.Component("foo").Weight)
	assert.Equal(t, 0, c.LayoutSettings.Len(), "defaults are only added on save")

	_, err = c.PreSave(reg, fields)
	require.NoError(t, err)
	assert.True(t, c.LayoutSettings.Equal(settings.FromPairs("setting_1", "Default")))

	_, err = c.SetLayoutFromID(reg, "test_layout_main_and_footer", settings.FromPairs("setting_1", "foobar"), fields)
	require.NoError(t, err)
	_, err = c.PreSave(reg, fields)
	require.NoError(t, err)
	assert.True(t, c.LayoutSettings.Equal(settings.FromPairs("setting_1", "foobar")))

	foo := c.Component("foo")
	foo.Region = "footer"
	c.SetComponent("foo", foo)
	_, err = c.PreSave(reg, fields)
	require.NoError(t, err)
	assert.Equal(t, "footer", c.Component("foo").Region)

	changes, err = c.SetLayoutFromID(reg, "test_layout_content_and_footer", nil, fields)
	require.NoError(t, err)
	assert.Empty(t, changes, "footer survives the switch")

	_, err = c.PreSave(reg, fields)
	require.NoError(t, err)
	assert.Equal(t, "test_layout_content_and_footer", c.LayoutID)
	assert.Equal(t, 0, c.LayoutSettings.Len())
	assert.Equal(t, "footer", c.Component("foo").Region)
}

func TestSetLayoutFromID_Errors(t *testing.T) {
	reg := registry(t)

	c := New("node", "article", "", field.View)
	c.SetComponent("body", &assignment.Component{Region: "content"})
	before := c.Clone()

	_, err := c.SetLayoutFromID(reg, "layout_twocoll", nil, nil)

	var ule *layout.UnknownLayoutError
	require.ErrorAs(t, err, &ule)
	assert.Equal(t, []string{"layout_twocol"}, ule.Suggestions)
	assert.True(t, before.Equal(c), "record untouched on error")

	strict := field.NewCatalog(field.View, field.Entry{Name: "title", Configurable: true})
	changes, err := c.SetLayoutFromID(reg, "layout_twocol", nil, strict)
	require.NoError(t, err)
	assert.NotEmpty(t, changes)
	assert.Equal(t, []string{"title"}, c.Content.Names(), "body is gone from the catalog")
}

func TestSetLayoutFromID_ToleratesUnknownCurrentLayout(t *testing.T) {
	c := New("node", "article", "", field.View)
	c.LayoutID = "retired_layout"
	c.SetComponent("body", &assignment.Component{Region: "sidebar"})

	_, err := c.SetLayoutFromID(registry(t), "layout_twocol", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "first", c.Component("body").Region)
}

func TestPreSave_UnknownLayout(t *testing.T) {
	c := New("node", "article", "", field.View)
	c.LayoutID = "nope"

	_, err := c.PreSave(registry(t), nil)

	var ule *layout.UnknownLayoutError
	assert.ErrorAs(t, err, &ule)
}

func TestPreSave_FailureLeavesRecordUntouched(t *testing.T) {
	c := &Config{TargetEntityType: "node", Bundle: "article", LayoutID: "layout_twocoll"}
	c.Content = assignment.NewMap()
	c.Content.Set("body", &assignment.Component{Region: "gone"})
	before := c.Clone()

	_, err := c.PreSave(registry(t), nil)
	require.Error(t, err)

	assert.Empty(t, c.Mode, "defaults are not applied when saving fails")
	assert.Empty(t, c.ID)
	assert.Equal(t, field.Context(""), c.Context)
	assert.Nil(t, c.LayoutSettings)
	assert.Nil(t, c.Hidden)
	assert.True(t, before.Content.Equal(c.Content))

	c.LayoutID = "layout_twocol"
	_, err = c.PreSave(registry(t), nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultMode, c.Mode)
	assert.Equal(t, "node.article.default", c.ID)
	assert.Equal(t, "first", c.Component("body").Region)
}

func TestUpdateLayoutDefaults(t *testing.T) {
	c := New("node", "article", "", field.View)
	c.LayoutSettings = settings.FromPairs("keep", 1)

	def := &layout.Definition{ID: "x", Settings: settings.FromPairs("keep", 2, "add", "v")}
	assert.Equal(t, []string{"add"}, c.UpdateLayoutDefaults(def))
	assert.True(t, c.LayoutSettings.Equal(settings.FromPairs("keep", 1, "add", "v")))

	c.LayoutSettings = nil
	assert.Equal(t, []string{"keep", "add"}, c.UpdateLayoutDefaults(def))
}

func TestValidate(t *testing.T) {
	c, err := Parse([]byte(`
targetEntityType: node
bundle: article
layout_id: layout_twocol
content:
  bdy:
    region: first
  body:
    region: sidebar
  links:
    type: hidden
  comment: {}
hidden:
  comment: true
  commnt: true
`))
	require.NoError(t, err)

	d := c.Validate(registry(t), articleFields())

	assert.Equal(t, []string{"unknown_field", "stale_region"}, d.Codes())
	assert.Equal(t, []string{"body"}, d.Errors[0].Suggestions)
	assert.Empty(t, d.Errors[1].Suggestions, "no region name is close to sidebar")

	var warnings []string
	for _, w := range d.Warnings {
		warnings = append(warnings, w.Code+":"+w.Field)
	}

	assert.Equal(t, []string{"hidden_and_assigned:comment", "unknown_hidden_field:commnt"}, warnings)

	var infos []string
	for _, i := range d.Infos {
		infos = append(infos, i.Code+":"+i.Field)
	}

	assert.Equal(t, []string{"pending_hidden:links", "missing_region:comment"}, infos)
}

func TestValidate_RecordLevel(t *testing.T) {
	c := &Config{Context: "print", LayoutID: "layout_twocoll"}

	d := c.Validate(registry(t), nil)
	assert.Equal(t,
		[]string{"missing_target_entity_type", "missing_bundle", "invalid_context", "unknown_layout"},
		d.Codes())

	var nilConfig *Config
	assert.Equal(t, []string{"display_is_nil"}, nilConfig.Validate(registry(t), nil).Codes())
}

func TestProjector(t *testing.T) {
	src, err := os.ReadFile(filepath.Join("testdata", "article.yml"))
	require.NoError(t, err)

	c, err := Parse(src)
	require.NoError(t, err)

	p, err := c.Projector(registry(t), nil)
	require.NoError(t, err)

	b := build.New()
	b.SetChild("body", build.Markup("Body"))
	b.SetChild("links", build.Markup("Links"))
	b.SetChild("comment", build.Markup("Comment"))
	require.NoError(t, p.Apply(b))

	l := b.Child(projector.LayoutKey)
	require.NotNil(t, l)
	assert.Equal(t, []string{"comment", projector.LayoutKey}, b.Children())
	assert.Equal(t, []string{"body"}, l.Child("first").Children())
	assert.Equal(t, []string{"links"}, l.Child("second").Children())

	theme, _ := l.Prop("#theme")
	assert.Equal(t, "layout__twocol", theme)

	c.LayoutID = "missing"
	_, err = c.Projector(registry(t), nil)
	require.Error(t, err)
}
