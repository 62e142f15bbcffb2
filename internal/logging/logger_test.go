package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogger_StandardizesErrorKey(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, slog.LevelInfo)

	logger.Info("boom", "error", "disk full")
	logger.Debug("hidden")

	out := buf.String()
	assert.Contains(t, out, "err=\"disk full\"")
	assert.NotContains(t, out, "error=")
	assert.NotContains(t, out, "hidden")
}

func TestLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	NewJSON(&buf, slog.LevelDebug).Warn("x", "error", "y")
	assert.Contains(t, buf.String(), `"err":"y"`)
}
