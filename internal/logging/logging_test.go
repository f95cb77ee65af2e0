package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
		ok   bool
	}{
		{"debug", slog.LevelDebug, true},
		{"INFO", slog.LevelInfo, true},
		{"Warn", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"", slog.LevelInfo, true},
		{"verbose", slog.LevelInfo, false},
	}
	for _, tt := range tests {
		got, ok := ParseLevel(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
	}
}

func TestSetupJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := Setup("debug", "json", &buf)
	logger.Debug("solved", "method", "jacobi", "iterations", 12)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "solved", entry["msg"])
	assert.Equal(t, "jacobi", entry["method"])
	assert.Equal(t, float64(12), entry["iterations"])
}

func TestSetupFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := Setup("error", "text", &buf)
	logger.Info("hidden")
	assert.Empty(t, buf.String())
}

func TestSetupInvalidLevelWarns(t *testing.T) {
	var buf bytes.Buffer
	Setup("loud", "text", &buf)
	assert.True(t, strings.Contains(buf.String(), "invalid log level"))
	assert.Contains(t, buf.String(), "configured_level=loud")
}
