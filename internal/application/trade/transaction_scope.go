package trade

import (
	"context"

	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/partner"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/trade"
)

// TransactionScope provides transactional access to fulfillment repositories.
// This interface is defined in the application layer to avoid coupling to infrastructure.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to repositories sharing one transaction.
//
// Aggregate boundary notes:
//   - OrderRepo and VendorOrderRepo are written together at checkout so the
//     order total always matches its vendor orders.
//   - VendorRepo is only used for the delivery counter increment, which must
//     commit or roll back with the delivered transition.
type TransactionalRepositories interface {
	OrderRepo() trade.OrderRepository
	VendorOrderRepo() trade.VendorOrderRepository
	VendorRepo() partner.VendorRepository
}

// NoOpTransactionScope runs the function against plain repositories.
// This is useful for testing or when transaction support is not required.
type NoOpTransactionScope struct {
	orderRepo       trade.OrderRepository
	vendorOrderRepo trade.VendorOrderRepository
	vendorRepo      partner.VendorRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories
func NewNoOpTransactionScope(
	orderRepo trade.OrderRepository,
	vendorOrderRepo trade.VendorOrderRepository,
	vendorRepo partner.VendorRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		orderRepo:       orderRepo,
		vendorOrderRepo: vendorOrderRepo,
		vendorRepo:      vendorRepo,
	}
}

// Execute runs the function without a transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// OrderRepo returns the order repository
func (s *NoOpTransactionScope) OrderRepo() trade.OrderRepository {
	return s.orderRepo
}

// VendorOrderRepo returns the vendor order repository
func (s *NoOpTransactionScope) VendorOrderRepo() trade.VendorOrderRepository {
	return s.vendorOrderRepo
}

// VendorRepo returns the vendor repository
func (s *NoOpTransactionScope) VendorRepo() partner.VendorRepository {
	return s.vendorRepo
}

var (
	_ TransactionScope          = (*NoOpTransactionScope)(nil)
	_ TransactionalRepositories = (*NoOpTransactionScope)(nil)
)
