package logger

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromContextOrDefault(t *testing.T) {
	t.Parallel()
	defaultLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	stored := slog.New(slog.NewTextHandler(io.Discard, nil)).With("component", "test")

	tests := []struct {
		name     string
		ctx      context.Context
		expected *slog.Logger
	}{
		{
			name:     "logger present in context",
			ctx:      WithLogger(context.Background(), stored),
			expected: stored,
		},
		{
			name:     "logger absent falls back",
			ctx:      context.Background(),
			expected: defaultLogger,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FromContextOrDefault(tt.ctx, defaultLogger)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestFromContextOrDefaultNilFallback(t *testing.T) {
	t.Parallel()
	result := FromContextOrDefault(context.Background(), nil)
	assert.NotNil(t, result)
}

func TestFromContext(t *testing.T) {
	t.Parallel()
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	stored := slog.New(slog.NewTextHandler(io.Discard, nil))
	got, ok := FromContext(WithLogger(context.Background(), stored))
	assert.True(t, ok)
	assert.Equal(t, stored, got)
}
