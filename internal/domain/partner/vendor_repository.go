package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/shared"
)

// VendorRepository defines the persistence port for vendors
type VendorRepository interface {
	// FindByID returns shared.ErrNotFound for unknown ids
	FindByID(ctx context.Context, id uuid.UUID) (*Vendor, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Vendor, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Vendor, error)
	FindByStatus(ctx context.Context, status VendorStatus, filter shared.Filter) ([]Vendor, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	CountByStatus(ctx context.Context) (map[VendorStatus]int64, error)

	// Save inserts a new vendor
	Save(ctx context.Context, vendor *Vendor) error
	// SaveWithLock persists admission fields with an optimistic version check.
	// It returns shared.ErrConcurrencyConflict when the stored version moved.
	SaveWithLock(ctx context.Context, vendor *Vendor) error
	// RecordDelivery atomically adds one order and the given amount to the
	// vendor's sales counters without touching status or version.
	RecordDelivery(ctx context.Context, vendorID uuid.UUID, amount decimal.Decimal) error
}
