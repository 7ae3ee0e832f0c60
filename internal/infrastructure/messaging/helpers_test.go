package messaging

import (
	"testing"

	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/shared"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/infrastructure/cache"
)

func newMemoryStore(t *testing.T) shared.IdempotencyStore {
	t.Helper()
	store := cache.NewInMemoryIdempotencyStore()
	t.Cleanup(func() { _ = store.Close() })
	return store
}
