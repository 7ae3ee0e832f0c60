package cache

import (
	"context"
	"sync"
	"time"

	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/shared"
)

const defaultSweepInterval = 5 * time.Minute

// InMemoryIdempotencyStore keeps processed keys in a map with per-key
// expiry. State is per process, so it only deduplicates on a single node.
type InMemoryIdempotencyStore struct {
	mu        sync.Mutex
	expiries  map[string]time.Time
	now       func() time.Time
	stop      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemoryIdempotencyStore creates a store that sweeps expired keys every five minutes
func NewInMemoryIdempotencyStore() *InMemoryIdempotencyStore {
	return newInMemoryIdempotencyStore(defaultSweepInterval, time.Now)
}

func newInMemoryIdempotencyStore(sweep time.Duration, now func() time.Time) *InMemoryIdempotencyStore {
	s := &InMemoryIdempotencyStore{
		expiries: make(map[string]time.Time),
		now:      now,
		stop:     make(chan struct{}),
	}
	s.wg.Add(1)
	go s.sweepLoop(sweep)
	return s
}

// MarkProcessed records key until ttl elapses. It returns false while an
// unexpired mark exists.
func (s *InMemoryIdempotencyStore) MarkProcessed(_ context.Context, key string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if exp, ok := s.expiries[key]; ok && now.Before(exp) {
		return false, nil
	}
	s.expiries[key] = now.Add(ttl)
	return true, nil
}

// IsProcessed reports whether an unexpired mark exists for key
func (s *InMemoryIdempotencyStore) IsProcessed(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	exp, ok := s.expiries[key]
	return ok && s.now().Before(exp), nil
}

// Size returns the number of stored keys, expired ones included until the next sweep
func (s *InMemoryIdempotencyStore) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.expiries)
}

// Close stops the sweeper. It is safe to call more than once.
func (s *InMemoryIdempotencyStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.stop)
		s.wg.Wait()
	})
	return nil
}

func (s *InMemoryIdempotencyStore) sweepLoop(interval time.Duration) {
	defer s.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *InMemoryIdempotencyStore) sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for key, exp := range s.expiries {
		if !now.Before(exp) {
			delete(s.expiries, key)
		}
	}
}

var _ shared.IdempotencyStore = (*InMemoryIdempotencyStore)(nil)
