package trade

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	appcatalog "github.com/talalabbas84/spledid-beauty-sub000/internal/application/catalog"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/partner"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/shared"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/trade"
)

// MockOrderRepository is a mock implementation of trade.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*trade.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]trade.Order, error) {
	args := m.Called(ctx, customerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]trade.Order), args.Error(1)
}

func (m *MockOrderRepository) CountByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, customerID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, order *trade.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, order *trade.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *MockOrderRepository) GenerateOrderNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// MockVendorOrderRepository is a mock implementation of trade.VendorOrderRepository
type MockVendorOrderRepository struct {
	mock.Mock
}

func (m *MockVendorOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.VendorOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.VendorOrder), args.Error(1)
}

func (m *MockVendorOrderRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]trade.VendorOrder, error) {
	args := m.Called(ctx, orderID)
	if fn, ok := args.Get(0).(func(context.Context, uuid.UUID) []trade.VendorOrder); ok {
		return fn(ctx, orderID), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]trade.VendorOrder), args.Error(1)
}

func (m *MockVendorOrderRepository) FindByVendor(ctx context.Context, vendorID uuid.UUID, filter trade.VendorOrderFilter) ([]trade.VendorOrder, error) {
	args := m.Called(ctx, vendorID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]trade.VendorOrder), args.Error(1)
}

func (m *MockVendorOrderRepository) CountByVendor(ctx context.Context, vendorID uuid.UUID, filter trade.VendorOrderFilter) (int64, error) {
	args := m.Called(ctx, vendorID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockVendorOrderRepository) TotalsByStatus(ctx context.Context, vendorID *uuid.UUID) ([]trade.StatusTotals, error) {
	args := m.Called(ctx, vendorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]trade.StatusTotals), args.Error(1)
}

func (m *MockVendorOrderRepository) SaveAll(ctx context.Context, vendorOrders []*trade.VendorOrder) error {
	return m.Called(ctx, vendorOrders).Error(0)
}

func (m *MockVendorOrderRepository) SaveWithLock(ctx context.Context, vo *trade.VendorOrder) error {
	return m.Called(ctx, vo).Error(0)
}

// MockVendorRepository is a mock implementation of partner.VendorRepository
type MockVendorRepository struct {
	mock.Mock
}

func (m *MockVendorRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Vendor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Vendor), args.Error(1)
}

func (m *MockVendorRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]partner.Vendor, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]partner.Vendor), args.Error(1)
}

func (m *MockVendorRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Vendor, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]partner.Vendor), args.Error(1)
}

func (m *MockVendorRepository) FindByStatus(ctx context.Context, status partner.VendorStatus, filter shared.Filter) ([]partner.Vendor, error) {
	args := m.Called(ctx, status, filter)
	return args.Get(0).([]partner.Vendor), args.Error(1)
}

func (m *MockVendorRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockVendorRepository) CountByStatus(ctx context.Context) (map[partner.VendorStatus]int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[partner.VendorStatus]int64), args.Error(1)
}

func (m *MockVendorRepository) Save(ctx context.Context, vendor *partner.Vendor) error {
	return m.Called(ctx, vendor).Error(0)
}

func (m *MockVendorRepository) SaveWithLock(ctx context.Context, vendor *partner.Vendor) error {
	return m.Called(ctx, vendor).Error(0)
}

func (m *MockVendorRepository) RecordDelivery(ctx context.Context, vendorID uuid.UUID, amount decimal.Decimal) error {
	return m.Called(ctx, vendorID, amount).Error(0)
}

// MockProductResolver is a mock implementation of ProductResolver
type MockProductResolver struct {
	mock.Mock
}

func (m *MockProductResolver) ResolveOrderable(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]appcatalog.OrderableProduct, error) {
	args := m.Called(ctx, productIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]appcatalog.OrderableProduct), args.Error(1)
}

// MockPayoutSignaler is a mock implementation of PayoutSignaler
type MockPayoutSignaler struct {
	mock.Mock
}

func (m *MockPayoutSignaler) Signal(ctx context.Context, vendorOrderID uuid.UUID) error {
	return m.Called(ctx, vendorOrderID).Error(0)
}

// MockEventPublisher is a mock implementation of shared.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	return m.Called(ctx, events).Error(0)
}
