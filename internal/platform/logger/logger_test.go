package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/tasks-api/internal/config"
)

func TestSetup(t *testing.T) {
	// Setup swaps the process default logger, so these cases run serially.
	originalLogger := slog.Default()
	defer slog.SetDefault(originalLogger)

	tests := []struct {
		name     string
		logLevel string
	}{
		{"debug level", "debug"},
		{"info level", "info"},
		{"warn level", "warn"},
		{"error level", "error"},
		{"uppercase level", "INFO"},
		{"invalid level falls back to info", "verbose"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			logger, err := Setup(config.ServerConfig{LogLevel: tc.logLevel})
			require.NoError(t, err)
			assert.NotNil(t, logger)
		})
	}
}

func TestContextLogger(t *testing.T) {
	t.Run("round trips a logger through the context", func(t *testing.T) {
		buf, testLogger, cleanup := SetupTestLogger(t, nil)
		defer cleanup()

		ctx := WithLogger(context.Background(), testLogger.With("trace_id", "abc123"))

		FromContext(ctx).Info("request handled")

		entries, err := buf.GetLogEntries()
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "request handled", entries[0]["msg"])
		assert.Equal(t, "abc123", entries[0]["trace_id"])
	})

	t.Run("falls back to the default logger", func(t *testing.T) {
		logger := FromContext(context.Background())
		assert.NotNil(t, logger)
	})

	t.Run("FromContextOrDefault prefers the context logger", func(t *testing.T) {
		_, testLogger, cleanup := SetupTestLogger(t, nil)
		defer cleanup()

		fallback := slog.Default()
		ctx := WithLogger(context.Background(), testLogger)

		assert.Same(t, testLogger, FromContextOrDefault(ctx, fallback))
		assert.Same(t, fallback, FromContextOrDefault(context.Background(), fallback))
	})
}
