package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/infrastructure/config"
	"go.uber.org/zap/zaptest"
)

func TestNewIdempotencyStore(t *testing.T) {
	ctx := context.Background()
	unreachable := config.RedisConfig{Enabled: true, Host: "127.0.0.1", Port: 1}

	t.Run("disabled redis uses memory", func(t *testing.T) {
		store, err := NewIdempotencyStore(ctx, config.RedisConfig{}, true, zaptest.NewLogger(t))
		require.NoError(t, err)
		defer store.Close()
		assert.IsType(t, &InMemoryIdempotencyStore{}, store)
	})

	t.Run("unreachable redis falls back outside production", func(t *testing.T) {
		store, err := NewIdempotencyStore(ctx, unreachable, false, zaptest.NewLogger(t))
		require.NoError(t, err)
		defer store.Close()
		assert.IsType(t, &InMemoryIdempotencyStore{}, store)
	})

	t.Run("unreachable redis fails in production", func(t *testing.T) {
		_, err := NewIdempotencyStore(ctx, unreachable, true, zaptest.NewLogger(t))
		assert.Error(t, err)
	})
}
