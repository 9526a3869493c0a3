package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter(t *testing.T) {
	t.Run("production logs JSON at the configured level", func(t *testing.T) {
		var buf bytes.Buffer
		log := NewWithWriter(&buf, "production", "warn")
		log.Info("dropped")
		log.Warn("kept", "donation_id", "d-1")

		var line map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
		assert.Equal(t, "kept", line["msg"])
		assert.Equal(t, "d-1", line["donation_id"])
	})

	t.Run("development logs text", func(t *testing.T) {
		var buf bytes.Buffer
		NewWithWriter(&buf, "development", "debug").Debug("hello")
		assert.Contains(t, buf.String(), "msg=hello")
	})
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}
