package persistence

import (
	"context"

	apptrade "github.com/talalabbas84/spledid-beauty-sub000/internal/application/trade"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/partner"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/trade"
	"gorm.io/gorm"
)

// GormTransactionScope implements TransactionScope using GORM transactions.
// It provides atomic execution of checkout and fulfillment writes.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
// If the function succeeds, the transaction is committed.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos apptrade.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// gormTransactionalRepositories provides access to all repositories within a transaction.
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// OrderRepo returns the order repository scoped to the current transaction.
func (r *gormTransactionalRepositories) OrderRepo() trade.OrderRepository {
	return NewGormOrderRepository(r.tx)
}

// VendorOrderRepo returns the vendor order repository scoped to the current transaction.
func (r *gormTransactionalRepositories) VendorOrderRepo() trade.VendorOrderRepository {
	return NewGormVendorOrderRepository(r.tx)
}

// VendorRepo returns the vendor repository scoped to the current transaction.
func (r *gormTransactionalRepositories) VendorRepo() partner.VendorRepository {
	return NewGormVendorRepository(r.tx)
}

// Ensure GormTransactionScope implements TransactionScope
var _ apptrade.TransactionScope = (*GormTransactionScope)(nil)

// Ensure gormTransactionalRepositories implements TransactionalRepositories
var _ apptrade.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
