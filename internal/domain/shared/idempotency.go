package shared

import (
	"context"
	"time"
)

// DefaultIdempotencyTTL bounds how long a forwarded payout signal is remembered
const DefaultIdempotencyTTL = 24 * time.Hour

// IdempotencyStore remembers which event IDs a consumer has already handled.
// The in-memory store serves a single process; the Redis store is shared by
// every replica.
type IdempotencyStore interface {
	// MarkProcessed reports true only for the first mark of key within ttl
	MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error)
	IsProcessed(ctx context.Context, key string) (bool, error)
	Close() error
}

// IdempotencyConfig controls duplicate suppression for an event consumer
type IdempotencyConfig struct {
	TTL     time.Duration
	Enabled bool
}

// DefaultIdempotencyConfig enables suppression with DefaultIdempotencyTTL
func DefaultIdempotencyConfig() IdempotencyConfig {
	return IdempotencyConfig{
		TTL:     DefaultIdempotencyTTL,
		Enabled: true,
	}
}

// EffectiveTTL returns TTL, or DefaultIdempotencyTTL when unset
func (c IdempotencyConfig) EffectiveTTL() time.Duration {
	if c.TTL <= 0 {
		return DefaultIdempotencyTTL
	}
	return c.TTL
}
