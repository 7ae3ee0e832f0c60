package cache

import (
	"context"
	"fmt"

	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/shared"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/infrastructure/config"
	"go.uber.org/zap"
)

// NewIdempotencyStore picks the store for the payout signal forwarder.
// With Redis disabled it returns an in-memory store. With Redis enabled an
// unreachable server is an error in production and a logged fallback to
// memory elsewhere.
func NewIdempotencyStore(ctx context.Context, cfg config.RedisConfig, production bool, logger *zap.Logger) (shared.IdempotencyStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if !cfg.Enabled {
		logger.Info("redis disabled, using in-memory idempotency store")
		return NewInMemoryIdempotencyStore(), nil
	}

	client, err := NewRedisClient(ctx, cfg)
	if err == nil {
		logger.Info("using redis idempotency store", zap.String("addr", cfg.Addr()))
		return NewRedisIdempotencyStore(client, DefaultKeyPrefix), nil
	}
	if production {
		return nil, fmt.Errorf("redis is required for idempotency in production: %w", err)
	}

	logger.Warn("redis unavailable, falling back to in-memory idempotency store",
		zap.String("addr", cfg.Addr()),
		zap.Error(err),
	)
	return NewInMemoryIdempotencyStore(), nil
}
