package diagnostic

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnostics_Err(t *testing.T) {
	var d Diagnostics

	require.NoError(t, d.Err())
	require.NoError(t, NewConfigurationError(&d))

	d.AddError("duplicate_region", `region "left" is declared twice`, "two_column", "left")
	d.AddError("unknown_field", `field "bdy" is not defined`, "node.article.default", "bdy").
		WithSuggestions([]string{"body"})
	d.AddWarning("non_configurable", "ignored", "", "title")
	d.AddInfo("rehomed", "moved", "", "foo")

	assert.True(t, d.HasErrors())
	assert.Equal(t, []string{"duplicate_region", "unknown_field"}, d.Codes())
	assert.Len(t, d.All(), 4)
	assert.Equal(t,
		`[two_column] left: [duplicate_region] region "left" is declared twice; `+
			`[node.article.default] bdy: [unknown_field] field "bdy" is not defined (did you mean "body"?)`,
		d.Err().Error())
}

func TestConfigurationError(t *testing.T) {
	var d Diagnostics
	d.AddError("empty_catalog", "layout declares no regions", "", "")

	err := fmt.Errorf("failed to reconcile: %w", NewConfigurationError(&d))

	assert.True(t, IsConfigurationError(err))
	assert.False(t, IsConfigurationError(fmt.Errorf("plain")))

	var ce *ConfigurationError
	require.ErrorAs(t, err, &ce)
	assert.True(t, ce.HasCode("empty_catalog"))
	assert.False(t, ce.HasCode("stale_region"))
	assert.Equal(t, "configuration error: [empty_catalog] layout declares no regions", ce.Error())
}

func TestSeverity_String(t *testing.T) {
	assert.Equal(t, "info", SeverityInfo.String())
	assert.Equal(t, "warning", SeverityWarning.String())
	assert.Equal(t, "error", SeverityError.String())
	assert.Equal(t, "unknown", Severity(9).String())
}
