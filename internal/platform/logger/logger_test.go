package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "WARN"} {
		log, err := Setup(level)
		require.NoError(t, err, "level %q should be accepted", level)
		assert.NotNil(t, log)
	}

	_, err := Setup("verbose")
	assert.Error(t, err)
}

func TestLoggerContext(t *testing.T) {
	base := slog.Default().With(slog.String("request_id", "test"))

	ctx := WithLogger(context.Background(), base)
	assert.Equal(t, base, FromContext(ctx))
	assert.Equal(t, base, FromContextOrDefault(ctx, slog.Default()))

	// Without a logger in the context the fallbacks apply.
	assert.NotNil(t, FromContext(context.Background()))
	fallback := slog.Default().With(slog.String("component", "x"))
	assert.Equal(t, fallback, FromContextOrDefault(context.Background(), fallback))
}
