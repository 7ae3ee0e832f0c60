package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/partner"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/shared"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormVendorRepository implements VendorRepository using GORM
type GormVendorRepository struct {
	db *gorm.DB
}

// NewGormVendorRepository creates a new GormVendorRepository
func NewGormVendorRepository(db *gorm.DB) *GormVendorRepository {
	return &GormVendorRepository{db: db}
}

// FindByID finds a vendor by its ID
func (r *GormVendorRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Vendor, error) {
	var model models.VendorModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDs finds vendors by their IDs; unknown ids are skipped
func (r *GormVendorRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]partner.Vendor, error) {
	if len(ids) == 0 {
		return []partner.Vendor{}, nil
	}
	var vendorModels []models.VendorModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&vendorModels).Error; err != nil {
		return nil, err
	}
	return vendorsToDomain(vendorModels), nil
}

// FindAll finds all vendors matching the filter
func (r *GormVendorRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Vendor, error) {
	var vendorModels []models.VendorModel
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.VendorModel{}), filter)
	query = paginate(query, filter, VendorSortFields, "created_at")

	if err := query.Find(&vendorModels).Error; err != nil {
		return nil, err
	}
	return vendorsToDomain(vendorModels), nil
}

// FindByStatus finds vendors in the given status
func (r *GormVendorRepository) FindByStatus(ctx context.Context, status partner.VendorStatus, filter shared.Filter) ([]partner.Vendor, error) {
	var vendorModels []models.VendorModel
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.VendorModel{}), filter).
		Where("status = ?", status)
	query = paginate(query, filter, VendorSortFields, "created_at")

	if err := query.Find(&vendorModels).Error; err != nil {
		return nil, err
	}
	return vendorsToDomain(vendorModels), nil
}

// Count counts vendors matching the filter
func (r *GormVendorRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.VendorModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByStatus counts vendors grouped by status
func (r *GormVendorRepository) CountByStatus(ctx context.Context) (map[partner.VendorStatus]int64, error) {
	var rows []struct {
		Status partner.VendorStatus
		Count  int64
	}
	if err := r.db.WithContext(ctx).
		Model(&models.VendorModel{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	counts := make(map[partner.VendorStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// Save inserts a new vendor
func (r *GormVendorRepository) Save(ctx context.Context, vendor *partner.Vendor) error {
	return r.db.WithContext(ctx).Create(models.VendorModelFromDomain(vendor)).Error
}

// SaveWithLock saves admission fields with optimistic locking (checks version)
func (r *GormVendorRepository) SaveWithLock(ctx context.Context, vendor *partner.Vendor) error {
	model := models.VendorModelFromDomain(vendor)
	result := r.db.WithContext(ctx).
		Model(&models.VendorModel{}).
		Where("id = ? AND version = ?", vendor.ID, vendor.Version-1).
		Updates(model.AdmissionColumns())

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// RecordDelivery increments the sales counters in a single statement
func (r *GormVendorRepository) RecordDelivery(ctx context.Context, vendorID uuid.UUID, amount decimal.Decimal) error {
	result := r.db.WithContext(ctx).
		Model(&models.VendorModel{}).
		Where("id = ?", vendorID).
		UpdateColumns(map[string]interface{}{
			"total_orders": gorm.Expr("total_orders + 1"),
			"total_sales":  gorm.Expr("total_sales + ?", amount),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyFilterWithoutPagination applies search and field filters
func (r *GormVendorRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(business_name) LIKE ? OR LOWER(contact_email) LIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "owner_id":
			query = query.Where("owner_id = ?", value)
		}
	}

	return query
}

func vendorsToDomain(vendorModels []models.VendorModel) []partner.Vendor {
	vendors := make([]partner.Vendor, len(vendorModels))
	for i := range vendorModels {
		vendors[i] = *vendorModels[i].ToDomain()
	}
	return vendors
}

// Ensure GormVendorRepository implements VendorRepository
var _ partner.VendorRepository = (*GormVendorRepository)(nil)
