package shared

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBaseAggregateRoot_MarkModified(t *testing.T) {
	root := NewBaseAggregateRoot()
	assert.Equal(t, 1, root.GetVersion())

	later := root.CreatedAt.Add(time.Minute)
	root.MarkModified(later)
	assert.Equal(t, 2, root.GetVersion())
	assert.True(t, root.UpdatedAt.Equal(later))

	root.MarkModified(root.CreatedAt.Add(-time.Hour))
	assert.Equal(t, 3, root.GetVersion())
	assert.True(t, root.UpdatedAt.Equal(root.CreatedAt))
}

func TestBaseAggregateRoot_DomainEvents(t *testing.T) {
	root := NewBaseAggregateRoot()
	assert.Empty(t, root.GetDomainEvents())

	evt := NewBaseDomainEvent("VendorApproved", "Vendor", root.ID)
	root.AddDomainEvent(&evt)
	assert.Len(t, root.GetDomainEvents(), 1)

	root.ClearDomainEvents()
	assert.Empty(t, root.GetDomainEvents())
}

func TestIdempotencyConfig_EffectiveTTL(t *testing.T) {
	assert.Equal(t, DefaultIdempotencyTTL, IdempotencyConfig{}.EffectiveTTL())
	assert.Equal(t, time.Minute, IdempotencyConfig{TTL: time.Minute}.EffectiveTTL())
	assert.True(t, DefaultIdempotencyConfig().Enabled)
}
