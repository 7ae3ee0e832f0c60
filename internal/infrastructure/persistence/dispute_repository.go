package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/dispute"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/shared"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/trade"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// disputePriorityOrder sorts the admin queue urgent first, oldest first within a priority
const disputePriorityOrder = "CASE priority WHEN 'urgent' THEN 0 WHEN 'high' THEN 1 WHEN 'medium' THEN 2 ELSE 3 END ASC, created_at ASC"

// GormDisputeRepository implements dispute.Repository using GORM
type GormDisputeRepository struct {
	db *gorm.DB
}

// NewGormDisputeRepository creates a new GormDisputeRepository
func NewGormDisputeRepository(db *gorm.DB) *GormDisputeRepository {
	return &GormDisputeRepository{db: db}
}

// FindByID finds a dispute with its evidence
func (r *GormDisputeRepository) FindByID(ctx context.Context, id uuid.UUID) (*dispute.Dispute, error) {
	var model models.DisputeModel
	if err := r.db.WithContext(ctx).Preload("Evidence", orderEvidence).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByVendorOrder lists every dispute raised against a vendor order
func (r *GormDisputeRepository) FindByVendorOrder(ctx context.Context, vendorOrderID uuid.UUID) ([]dispute.Dispute, error) {
	var disputeModels []models.DisputeModel
	if err := r.db.WithContext(ctx).
		Preload("Evidence", orderEvidence).
		Where("vendor_order_id = ?", vendorOrderID).
		Order("created_at ASC").
		Find(&disputeModels).Error; err != nil {
		return nil, err
	}
	return disputesToDomain(disputeModels), nil
}

// FindUnresolved returns the admin work queue
func (r *GormDisputeRepository) FindUnresolved(ctx context.Context, filter shared.Filter) ([]dispute.Dispute, error) {
	filter = filter.Normalize()
	query := r.db.WithContext(ctx).
		Model(&models.DisputeModel{}).
		Where("status IN ?", unresolvedStatuses())
	if priority, ok := filter.Filters["priority"]; ok {
		query = query.Where("priority = ?", priority)
	}

	var disputeModels []models.DisputeModel
	if err := query.
		Order(disputePriorityOrder).
		Offset(filter.Offset()).
		Limit(filter.PageSize).
		Preload("Evidence", orderEvidence).
		Find(&disputeModels).Error; err != nil {
		return nil, err
	}
	return disputesToDomain(disputeModels), nil
}

// FindUnresolvedByVendorOrders returns the payout holds for a batch of vendor orders
func (r *GormDisputeRepository) FindUnresolvedByVendorOrders(ctx context.Context, vendorOrderIDs []uuid.UUID) ([]dispute.Dispute, error) {
	if len(vendorOrderIDs) == 0 {
		return []dispute.Dispute{}, nil
	}
	var disputeModels []models.DisputeModel
	if err := r.db.WithContext(ctx).
		Where("vendor_order_id IN ? AND status IN ?", vendorOrderIDs, unresolvedStatuses()).
		Find(&disputeModels).Error; err != nil {
		return nil, err
	}
	return disputesToDomain(disputeModels), nil
}

// CountByStatus counts disputes grouped by status
func (r *GormDisputeRepository) CountByStatus(ctx context.Context) (map[dispute.Status]int64, error) {
	var rows []struct {
		Status dispute.Status
		Count  int64
	}
	if err := r.db.WithContext(ctx).
		Model(&models.DisputeModel{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	counts := make(map[dispute.Status]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// HeldAmount sums delivered payouts frozen by at least one unresolved dispute.
// A vendor order with several open disputes is counted once.
func (r *GormDisputeRepository) HeldAmount(ctx context.Context, vendorID *uuid.UUID) (decimal.Decimal, error) {
	unresolved := r.db.
		Model(&models.DisputeModel{}).
		Select("1").
		Where("disputes.vendor_order_id = vendor_orders.id AND disputes.status IN ?", unresolvedStatuses())

	query := r.db.WithContext(ctx).
		Model(&models.VendorOrderModel{}).
		Select("SUM(payout)").
		Where("status = ?", trade.VendorOrderStatusDelivered).
		Where("EXISTS (?)", unresolved)
	if vendorID != nil {
		query = query.Where("vendor_id = ?", *vendorID)
	}

	var held decimal.NullDecimal
	if err := query.Row().Scan(&held); err != nil {
		return decimal.Zero, err
	}
	return held.Decimal, nil
}

// Save inserts a new dispute with any evidence already attached
func (r *GormDisputeRepository) Save(ctx context.Context, d *dispute.Dispute) error {
	model := &models.DisputeModel{}
	model.FromDomain(d)
	return r.db.WithContext(ctx).Create(model).Error
}

// SaveWithLock saves a workflow change with optimistic locking (checks version).
// Evidence rows are append-only; rows already stored are left alone.
func (r *GormDisputeRepository) SaveWithLock(ctx context.Context, d *dispute.Dispute) error {
	model := &models.DisputeModel{}
	model.FromDomain(d)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.DisputeModel{}).
			Where("id = ? AND version = ?", d.ID, d.Version-1).
			Updates(model.WorkflowColumns())
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrConcurrencyConflict
		}

		if len(model.Evidence) == 0 {
			return nil
		}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&model.Evidence).Error
	})
}

func unresolvedStatuses() []dispute.Status {
	return []dispute.Status{dispute.StatusOpen, dispute.StatusInvestigating}
}

func orderEvidence(db *gorm.DB) *gorm.DB {
	return db.Order("uploaded_at ASC")
}

func disputesToDomain(disputeModels []models.DisputeModel) []dispute.Dispute {
	disputes := make([]dispute.Dispute, len(disputeModels))
	for i := range disputeModels {
		disputes[i] = *disputeModels[i].ToDomain()
	}
	return disputes
}

// Ensure GormDisputeRepository implements dispute.Repository
var _ dispute.Repository = (*GormDisputeRepository)(nil)
