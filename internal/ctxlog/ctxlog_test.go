package ctxlog

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer

	logger := New("debug", "text", &buf)
	ctx := WithLogger(context.Background(), logger)

	require.Same(t, logger, FromContext(ctx))
	assert.Same(t, slog.Default(), FromContext(context.Background()))

	FromContext(ctx).Debug("loaded", "file", "a.hcl")
	assert.Contains(t, buf.String(), "file=a.hcl")
}

func TestNew_LevelAndFormat(t *testing.T) {
	var buf bytes.Buffer

	logger := New("warn", "json", &buf)
	logger.Info("dropped")
	logger.Warn("kept", "layout", "two_column")

	out := buf.String()
	assert.NotContains(t, out, "dropped")
	assert.Contains(t, out, `"layout":"two_column"`)
}
