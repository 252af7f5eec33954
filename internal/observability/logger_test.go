package observability

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helixir/openalex-mcp/internal/config"
)

func TestNewLogger(t *testing.T) {
	t.Run("creates logger with defaults", func(t *testing.T) {
		logger := NewLogger(config.LoggingConfig{Level: "info", Format: "json", Output: "stderr"})

		assert.NotEqual(t, zerolog.Logger{}, logger)
	})

	t.Run("unknown output falls back to stderr", func(t *testing.T) {
		logger := NewLogger(config.LoggingConfig{Level: "info", Format: "json", Output: "syslog"})

		assert.NotEqual(t, zerolog.Logger{}, logger)
	})

	t.Run("creates logger with console format", func(t *testing.T) {
		logger := NewLogger(config.LoggingConfig{Level: "debug", Format: "console", Output: "stderr"})

		assert.NotEqual(t, zerolog.Logger{}, logger)
	})
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"panic", zerolog.PanicLevel},
		{"INFO", zerolog.InfoLevel},
		{"unknown", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLevel(tt.input))
		})
	}
}

func TestWithToolContext(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	toolLogger := WithToolContext(logger, "search_works", "req-123")
	toolLogger.Info().Msg("invoked")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "search_works", entry["tool"])
	assert.Equal(t, "req-123", entry["request_id"])
}

func TestWithRequestContext(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	requestLogger := WithRequestContext(logger, "works")
	requestLogger.Info().Msg("request")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "works", entry["endpoint"])
}
