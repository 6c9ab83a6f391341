package logger

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck-api/internal/config"
)

func TestSetup(t *testing.T) {
	tests := []struct {
		name     string
		logLevel string
	}{
		{"debug_level", "debug"},
		{"info_level", "info"},
		{"warn_level", "warn"},
		{"error_level", "error"},
		{"case_insensitive", "DEBUG"},
		{"invalid_falls_back_to_info", "noisy"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			logger, err := Setup(config.ServerConfig{LogLevel: tc.logLevel})
			require.NoError(t, err)
			require.NotNil(t, logger)
			assert.Same(t, logger, slog.Default())
		})
	}
}

func TestWithLoggerAndFromContext(t *testing.T) {
	custom := slog.New(slog.NewTextHandler(os.Stderr, nil))

	ctx := WithLogger(context.Background(), custom)
	assert.Same(t, custom, FromContext(ctx))

	t.Run("nil_logger_panics", func(t *testing.T) {
		assert.Panics(t, func() {
			WithLogger(context.Background(), nil)
		})
	})
}

func TestFromContextOrDefault(t *testing.T) {
	custom := slog.New(slog.NewTextHandler(os.Stderr, nil))
	fallback := slog.New(slog.NewTextHandler(os.Stderr, nil))

	tests := []struct {
		name     string
		ctx      context.Context
		def      *slog.Logger
		expected *slog.Logger
	}{
		{"context_logger_wins", WithLogger(context.Background(), custom), fallback, custom},
		{"fallback_when_absent", context.Background(), fallback, fallback},
		{"process_default_when_both_absent", context.Background(), nil, slog.Default()},
		{"nil_context", nil, fallback, fallback},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Same(t, tc.expected, FromContextOrDefault(tc.ctx, tc.def))
		})
	}
}
