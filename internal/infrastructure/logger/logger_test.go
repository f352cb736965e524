package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"DEBUG", zapcore.DebugLevel},
		{"unknown", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLevel(tt.input))
		})
	}
}

func TestNew(t *testing.T) {
	t.Run("nil config uses defaults", func(t *testing.T) {
		log, err := New(nil)
		require.NoError(t, err)
		require.NotNil(t, log)
	})

	t.Run("json format", func(t *testing.T) {
		log, err := New(&Config{Level: "info", Format: "json", Output: "stdout"})
		require.NoError(t, err)
		require.NotNil(t, log)
	})
}

func TestFromContext(t *testing.T) {
	t.Run("empty context returns base logger", func(t *testing.T) {
		base := zap.NewNop()
		assert.Same(t, base, FromContext(context.Background(), base))
	})

	t.Run("nil base does not panic", func(t *testing.T) {
		ctx := WithTenantID(context.Background(), "t-1")
		assert.NotNil(t, FromContext(ctx, nil))
	})

	t.Run("enriched context returns child logger", func(t *testing.T) {
		base := zap.NewNop()
		ctx := WithRequestID(context.Background(), "req-1")
		ctx = WithConnectionID(ctx, "conn-1")
		ctx = WithEntity(ctx, "sale")
		assert.NotSame(t, base, FromContext(ctx, base))
	})
}

func TestRequestIDFromContext(t *testing.T) {
	assert.Empty(t, RequestIDFromContext(context.Background()))

	ctx := WithRequestID(context.Background(), "abc-123")
	assert.Equal(t, "abc-123", RequestIDFromContext(ctx))
}
