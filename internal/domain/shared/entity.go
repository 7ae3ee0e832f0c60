package shared

import (
	"time"

	"github.com/google/uuid"
)

// Entity is anything with a stable identity and audit timestamps
type Entity interface {
	GetID() uuid.UUID
	GetCreatedAt() time.Time
	GetUpdatedAt() time.Time
}

// BaseEntity carries identity and timestamps for vendors, listings,
// orders and disputes
type BaseEntity struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// GetID returns the entity ID
func (e *BaseEntity) GetID() uuid.UUID {
	return e.ID
}

// GetCreatedAt returns the creation timestamp
func (e *BaseEntity) GetCreatedAt() time.Time {
	return e.CreatedAt
}

// GetUpdatedAt returns the last update timestamp
func (e *BaseEntity) GetUpdatedAt() time.Time {
	return e.UpdatedAt
}

// Touch records a modification at the given instant. Clocks that run
// backwards never move UpdatedAt before CreatedAt.
func (e *BaseEntity) Touch(at time.Time) {
	if at.Before(e.CreatedAt) {
		at = e.CreatedAt
	}
	e.UpdatedAt = at
}

// NewBaseEntity creates an entity with a random v4 ID stamped now (UTC)
func NewBaseEntity() BaseEntity {
	now := time.Now().UTC()
	return BaseEntity{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}
