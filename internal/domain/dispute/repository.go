package dispute

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/shared"
)

// Repository defines the persistence port for disputes
type Repository interface {
	// FindByID returns shared.ErrNotFound for unknown ids
	FindByID(ctx context.Context, id uuid.UUID) (*Dispute, error)
	FindByVendorOrder(ctx context.Context, vendorOrderID uuid.UUID) ([]Dispute, error)
	// FindUnresolved returns open and investigating disputes, highest priority first
	FindUnresolved(ctx context.Context, filter shared.Filter) ([]Dispute, error)
	// FindUnresolvedByVendorOrders returns open and investigating disputes for any of the given vendor orders
	FindUnresolvedByVendorOrders(ctx context.Context, vendorOrderIDs []uuid.UUID) ([]Dispute, error)
	CountByStatus(ctx context.Context) (map[Status]int64, error)
	// HeldAmount sums the payouts of delivered vendor orders frozen by an
	// unresolved dispute; a nil vendorID covers all vendors
	HeldAmount(ctx context.Context, vendorID *uuid.UUID) (decimal.Decimal, error)

	Save(ctx context.Context, d *Dispute) error
	// SaveWithLock persists a transition with an optimistic version check
	SaveWithLock(ctx context.Context, d *Dispute) error
}
