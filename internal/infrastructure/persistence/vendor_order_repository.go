package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/shared"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/trade"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormVendorOrderRepository implements VendorOrderRepository using GORM
type GormVendorOrderRepository struct {
	db *gorm.DB
}

// NewGormVendorOrderRepository creates a new GormVendorOrderRepository
func NewGormVendorOrderRepository(db *gorm.DB) *GormVendorOrderRepository {
	return &GormVendorOrderRepository{db: db}
}

// FindByID finds a vendor order with its items
func (r *GormVendorOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.VendorOrder, error) {
	var model models.VendorOrderModel
	if err := r.db.WithContext(ctx).Preload("Items").First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByOrder finds every vendor order split from one customer order
func (r *GormVendorOrderRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]trade.VendorOrder, error) {
	var voModels []models.VendorOrderModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("order_id = ?", orderID).
		Order("created_at ASC, id ASC").
		Find(&voModels).Error; err != nil {
		return nil, err
	}
	return vendorOrdersToDomain(voModels), nil
}

// FindByVendor lists one vendor's orders
func (r *GormVendorOrderRepository) FindByVendor(ctx context.Context, vendorID uuid.UUID, filter trade.VendorOrderFilter) ([]trade.VendorOrder, error) {
	var voModels []models.VendorOrderModel
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.VendorOrderModel{}), vendorID, filter)
	query = paginate(query, filter.Filter, VendorOrderSortFields, "created_at")

	if err := query.Preload("Items").Find(&voModels).Error; err != nil {
		return nil, err
	}
	return vendorOrdersToDomain(voModels), nil
}

// CountByVendor counts one vendor's orders matching the filter
func (r *GormVendorOrderRepository) CountByVendor(ctx context.Context, vendorID uuid.UUID, filter trade.VendorOrderFilter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.VendorOrderModel{}), vendorID, filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// TotalsByStatus aggregates money columns per status
func (r *GormVendorOrderRepository) TotalsByStatus(ctx context.Context, vendorID *uuid.UUID) ([]trade.StatusTotals, error) {
	var rows []struct {
		Status     trade.VendorOrderStatus
		Count      int64
		Subtotal   decimal.NullDecimal
		Commission decimal.NullDecimal
		Payout     decimal.NullDecimal
	}
	query := r.db.WithContext(ctx).
		Model(&models.VendorOrderModel{}).
		Select("status, COUNT(*) AS count, SUM(subtotal) AS subtotal, SUM(commission) AS commission, SUM(payout) AS payout")
	if vendorID != nil {
		query = query.Where("vendor_id = ?", *vendorID)
	}
	if err := query.Group("status").Scan(&rows).Error; err != nil {
		return nil, err
	}

	totals := make([]trade.StatusTotals, len(rows))
	for i, row := range rows {
		totals[i] = trade.StatusTotals{
			Status:     row.Status,
			Count:      row.Count,
			Subtotal:   row.Subtotal.Decimal,
			Commission: row.Commission.Decimal,
			Payout:     row.Payout.Decimal,
		}
	}
	return totals, nil
}

// SaveAll inserts new vendor orders together with their items
func (r *GormVendorOrderRepository) SaveAll(ctx context.Context, vendorOrders []*trade.VendorOrder) error {
	if len(vendorOrders) == 0 {
		return nil
	}
	voModels := make([]*models.VendorOrderModel, len(vendorOrders))
	for i, vo := range vendorOrders {
		voModels[i] = &models.VendorOrderModel{}
		voModels[i].FromDomain(vo)
	}
	// Create saves the Items association in the same statement batch
	return r.db.WithContext(ctx).Create(voModels).Error
}

// SaveWithLock saves a fulfillment transition with optimistic locking (checks version)
func (r *GormVendorOrderRepository) SaveWithLock(ctx context.Context, vo *trade.VendorOrder) error {
	model := &models.VendorOrderModel{}
	model.FromDomain(vo)
	result := r.db.WithContext(ctx).
		Model(&models.VendorOrderModel{}).
		Where("id = ? AND version = ?", vo.ID, vo.Version-1).
		Updates(model.TransitionColumns())

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// applyFilterWithoutPagination scopes the query to a vendor and applies filters
func (r *GormVendorOrderRepository) applyFilterWithoutPagination(query *gorm.DB, vendorID uuid.UUID, filter trade.VendorOrderFilter) *gorm.DB {
	query = query.Where("vendor_id = ?", vendorID)
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Search != "" {
		query = query.Where("order_number LIKE ?", "%"+filter.Search+"%")
	}
	if filter.ExcludeHeld {
		held := r.db.
			Model(&models.DisputeModel{}).
			Select("1").
			Where("disputes.vendor_order_id = vendor_orders.id AND disputes.status IN ?", unresolvedStatuses())
		query = query.Where("NOT EXISTS (?)", held)
	}
	return query
}

func vendorOrdersToDomain(voModels []models.VendorOrderModel) []trade.VendorOrder {
	vendorOrders := make([]trade.VendorOrder, len(voModels))
	for i := range voModels {
		vendorOrders[i] = *voModels[i].ToDomain()
	}
	return vendorOrders
}

// Ensure GormVendorOrderRepository implements VendorOrderRepository
var _ trade.VendorOrderRepository = (*GormVendorOrderRepository)(nil)
