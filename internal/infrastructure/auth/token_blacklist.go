package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultBlacklistPrefix namespaces revocation keys in Redis
const DefaultBlacklistPrefix = "marketplace:token:blacklist:"

// TokenBlacklist invalidates tokens before they expire.
// A subject groups tokens, e.g. every token acting for one vendor.
type TokenBlacklist interface {
	// AddToBlacklist revokes a single token by its JTI; ttl should cover the token's remaining lifetime
	AddToBlacklist(ctx context.Context, jti string, ttl time.Duration) error
	IsBlacklisted(ctx context.Context, jti string) (bool, error)

	// RevokeSubject invalidates every token of the subject issued up to now
	RevokeSubject(ctx context.Context, subject string, ttl time.Duration) error
	// IsSubjectRevoked reports whether a token issued at issuedAt predates the subject's revocation
	IsSubjectRevoked(ctx context.Context, subject string, issuedAt time.Time) (bool, error)
}

// UserSubject is the revocation subject for all tokens of a user
func UserSubject(userID string) string {
	return "user:" + userID
}

// VendorSubject is the revocation subject for all tokens acting for a vendor
func VendorSubject(vendorID string) string {
	return "vendor:" + vendorID
}

// RedisTokenBlacklist implements TokenBlacklist using Redis
type RedisTokenBlacklist struct {
	client    redis.UniversalClient
	keyPrefix string
	now       func() time.Time
}

// NewRedisTokenBlacklist creates a token blacklist on an existing Redis client
func NewRedisTokenBlacklist(client redis.UniversalClient, keyPrefix string) *RedisTokenBlacklist {
	if keyPrefix == "" {
		keyPrefix = DefaultBlacklistPrefix
	}
	return &RedisTokenBlacklist{
		client:    client,
		keyPrefix: keyPrefix,
		now:       time.Now,
	}
}

func (b *RedisTokenBlacklist) jtiKey(jti string) string {
	return b.keyPrefix + "jti:" + jti
}

func (b *RedisTokenBlacklist) subjectKey(subject string) string {
	return b.keyPrefix + subject
}

// AddToBlacklist adds a token's JTI to the blacklist
func (b *RedisTokenBlacklist) AddToBlacklist(ctx context.Context, jti string, ttl time.Duration) error {
	if err := b.client.Set(ctx, b.jtiKey(jti), "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to add token to blacklist: %w", err)
	}
	return nil
}

// IsBlacklisted checks if a token's JTI is in the blacklist
func (b *RedisTokenBlacklist) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	exists, err := b.client.Exists(ctx, b.jtiKey(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token blacklist: %w", err)
	}
	return exists > 0, nil
}

// RevokeSubject stores the revocation time in nanoseconds
func (b *RedisTokenBlacklist) RevokeSubject(ctx context.Context, subject string, ttl time.Duration) error {
	at := b.now().UnixNano()
	if err := b.client.Set(ctx, b.subjectKey(subject), at, ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke %s: %w", subject, err)
	}
	return nil
}

// IsSubjectRevoked compares the token's issue time to the stored revocation time
func (b *RedisTokenBlacklist) IsSubjectRevoked(ctx context.Context, subject string, issuedAt time.Time) (bool, error) {
	raw, err := b.client.Get(ctx, b.subjectKey(subject)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check revocation of %s: %w", subject, err)
	}

	revokedAt, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return false, fmt.Errorf("failed to parse revocation timestamp: %w", err)
	}
	return !issuedAt.After(time.Unix(0, revokedAt)), nil
}

var _ TokenBlacklist = (*RedisTokenBlacklist)(nil)

// InMemoryTokenBlacklist keeps revocations in process memory.
// Only suitable for a single instance.
type InMemoryTokenBlacklist struct {
	mu       sync.Mutex
	jtis     map[string]time.Time // jti -> expiry
	subjects map[string]time.Time // subject -> revoked at
	now      func() time.Time
}

// NewInMemoryTokenBlacklist creates a new in-memory token blacklist
func NewInMemoryTokenBlacklist() *InMemoryTokenBlacklist {
	return newInMemoryTokenBlacklist(time.Now)
}

func newInMemoryTokenBlacklist(now func() time.Time) *InMemoryTokenBlacklist {
	return &InMemoryTokenBlacklist{
		jtis:     make(map[string]time.Time),
		subjects: make(map[string]time.Time),
		now:      now,
	}
}

// AddToBlacklist adds a token's JTI to the in-memory blacklist
func (b *InMemoryTokenBlacklist) AddToBlacklist(_ context.Context, jti string, ttl time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.jtis[jti] = b.now().Add(ttl)
	return nil
}

// IsBlacklisted checks if a token's JTI is blacklisted and not expired
func (b *InMemoryTokenBlacklist) IsBlacklisted(_ context.Context, jti string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	expiry, ok := b.jtis[jti]
	if !ok {
		return false, nil
	}
	if b.now().After(expiry) {
		delete(b.jtis, jti)
		return false, nil
	}
	return true, nil
}

// RevokeSubject records the revocation time; ttl is not enforced in memory
func (b *InMemoryTokenBlacklist) RevokeSubject(_ context.Context, subject string, _ time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subjects[subject] = b.now()
	return nil
}

// IsSubjectRevoked reports whether the token predates the subject's revocation
func (b *InMemoryTokenBlacklist) IsSubjectRevoked(_ context.Context, subject string, issuedAt time.Time) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	revokedAt, ok := b.subjects[subject]
	if !ok {
		return false, nil
	}
	return !issuedAt.After(revokedAt), nil
}

var _ TokenBlacklist = (*InMemoryTokenBlacklist)(nil)
