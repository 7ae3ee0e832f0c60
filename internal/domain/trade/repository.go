package trade

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/shared"
)

// OrderRepository defines the persistence port for customer orders
type OrderRepository interface {
	// FindByID returns shared.ErrNotFound for unknown ids
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	// FindByIDForUpdate is FindByID holding the order's row lock for the
	// rest of the transaction
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]Order, error)
	CountByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) (int64, error)
	// Save inserts a new order
	Save(ctx context.Context, order *Order) error
	// UpdateStatus persists the roll-up status
	UpdateStatus(ctx context.Context, order *Order) error
	// GenerateOrderNumber returns the next human-readable order number.
	// Concurrent callers never receive the same number.
	GenerateOrderNumber(ctx context.Context) (string, error)
}

// VendorOrderFilter narrows vendor order queries
type VendorOrderFilter struct {
	shared.Filter
	Status *VendorOrderStatus
	// ExcludeHeld drops vendor orders with an open or investigating dispute
	ExcludeHeld bool
}

// StatusTotals aggregates vendor orders sharing a status
type StatusTotals struct {
	Status     VendorOrderStatus
	Count      int64
	Subtotal   decimal.Decimal
	Commission decimal.Decimal
	Payout     decimal.Decimal
}

// VendorOrderRepository defines the persistence port for vendor orders
type VendorOrderRepository interface {
	// FindByID returns shared.ErrNotFound for unknown ids
	FindByID(ctx context.Context, id uuid.UUID) (*VendorOrder, error)
	FindByOrder(ctx context.Context, orderID uuid.UUID) ([]VendorOrder, error)
	FindByVendor(ctx context.Context, vendorID uuid.UUID, filter VendorOrderFilter) ([]VendorOrder, error)
	CountByVendor(ctx context.Context, vendorID uuid.UUID, filter VendorOrderFilter) (int64, error)
	// TotalsByStatus aggregates money columns per status; a nil vendorID covers all vendors
	TotalsByStatus(ctx context.Context, vendorID *uuid.UUID) ([]StatusTotals, error)

	// SaveAll inserts new vendor orders with their items
	SaveAll(ctx context.Context, vendorOrders []*VendorOrder) error
	// SaveWithLock persists a transition with a compare-and-set on version.
	// It returns shared.ErrConcurrencyConflict when another writer got there first.
	SaveWithLock(ctx context.Context, vo *VendorOrder) error
}
