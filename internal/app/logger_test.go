package app

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/community-engine/internal/config"
)

func TestNewLogger_SetsDefault(t *testing.T) {
	logger := NewLogger(config.LogConfig{Level: "info", Format: "json"})
	require.NotNil(t, logger)
	assert.Equal(t, logger.Handler(), slog.Default().Handler())
}

func TestNewLogger_JSONFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	newLogger(&buf, config.LogConfig{Level: "info", Format: "json"}).Info("discussion created", slog.String("author", "Sarah Chen"))

	var m map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m))
	assert.Equal(t, "discussion created", m["msg"])
	assert.Equal(t, "Sarah Chen", m["author"])
	assert.Equal(t, "community-engine", m["app"])
	assert.NotContains(t, m, "source", "json format should not include source")
}

func TestNewLogger_TextFormatAddsSource(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	newLogger(&buf, config.LogConfig{Level: "info", Format: "text"}).Info("hello")

	assert.Contains(t, buf.String(), "source=")
	assert.Contains(t, buf.String(), "app=community-engine")
}

func TestNewLogger_Levels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{" warn ", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"unknown", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run("level_"+tt.level, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			logger := newLogger(&buf, config.LogConfig{Level: tt.level, Format: "text"})

			logger.Log(context.Background(), tt.want, "should appear")
			assert.NotZero(t, buf.Len(), "expected output at %v", tt.want)

			buf.Reset()
			logger.Log(context.Background(), tt.want-1, "should be suppressed")
			assert.Zero(t, buf.Len(), "level %v should suppress %v", tt.want, tt.want-1)
		})
	}
}
