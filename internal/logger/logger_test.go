package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/supplier-ledger/internal/config"
)

func TestNewLogger(t *testing.T) {
	testCases := []struct {
		name              string
		logLevel          string
		expectedSlogLevel slog.Level
	}{
		{"DebugLevel", "debug", slog.LevelDebug},
		{"InfoLevel", "info", slog.LevelInfo},
		{"WarnLevel", "warn", slog.LevelWarn},
		{"WarningAlias", "WARNING", slog.LevelWarn},
		{"ErrorLevel", "error", slog.LevelError},
		{"DefaultToInfo", "unknown", slog.LevelInfo},
		{"EmptyToInfo", "", slog.LevelInfo},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &config.Config{
				Logging: config.LoggingConfig{Level: tc.logLevel},
			}

			logger := New(&bytes.Buffer{}, cfg)
			require.NotNil(t, logger)

			assert.True(t, logger.Enabled(context.Background(), tc.expectedSlogLevel))
			if tc.expectedSlogLevel > slog.LevelDebug {
				assert.False(t, logger.Enabled(context.Background(), tc.expectedSlogLevel-4))
			}
		})
	}
}

func TestNew_TagsApplication(t *testing.T) {
	var buf bytes.Buffer
	cfg := &config.Config{
		Application: config.ApplicationConfig{Name: "supplier-ledger", Env: "test"},
		Logging:     config.LoggingConfig{Level: "info"},
	}

	New(&buf, cfg)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "logger initialized", line["msg"])
	assert.Equal(t, "supplier-ledger", line["app"])
	assert.Equal(t, "test", line["env"])
}

func TestDiscard(t *testing.T) {
	assert.False(t, Discard().Enabled(context.Background(), slog.LevelError))
}
