package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/catalog"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/shared"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormProductListingRepository implements ProductListingRepository using GORM
type GormProductListingRepository struct {
	db *gorm.DB
}

// NewGormProductListingRepository creates a new GormProductListingRepository
func NewGormProductListingRepository(db *gorm.DB) *GormProductListingRepository {
	return &GormProductListingRepository{db: db}
}

// FindByID finds a listing by its ID
func (r *GormProductListingRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.ProductListing, error) {
	var model models.ProductListingModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDs finds listings by their IDs; unknown ids are skipped
func (r *GormProductListingRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.ProductListing, error) {
	if len(ids) == 0 {
		return []catalog.ProductListing{}, nil
	}
	var listingModels []models.ProductListingModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&listingModels).Error; err != nil {
		return nil, err
	}
	return listingsToDomain(listingModels), nil
}

// FindByVendor finds the listings of one vendor
func (r *GormProductListingRepository) FindByVendor(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) ([]catalog.ProductListing, error) {
	var listingModels []models.ProductListingModel
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.ProductListingModel{}), filter).
		Where("vendor_id = ?", vendorID)
	query = paginate(query, filter, ListingSortFields, "created_at")

	if err := query.Find(&listingModels).Error; err != nil {
		return nil, err
	}
	return listingsToDomain(listingModels), nil
}

// FindByStatus finds listings in the given status, used for the review queue
func (r *GormProductListingRepository) FindByStatus(ctx context.Context, status catalog.ListingStatus, filter shared.Filter) ([]catalog.ProductListing, error) {
	var listingModels []models.ProductListingModel
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.ProductListingModel{}), filter).
		Where("status = ?", status)
	query = paginate(query, filter, ListingSortFields, "created_at")

	if err := query.Find(&listingModels).Error; err != nil {
		return nil, err
	}
	return listingsToDomain(listingModels), nil
}

// CountByStatus counts listings grouped by status
func (r *GormProductListingRepository) CountByStatus(ctx context.Context) (map[catalog.ListingStatus]int64, error) {
	var rows []struct {
		Status catalog.ListingStatus
		Count  int64
	}
	if err := r.db.WithContext(ctx).
		Model(&models.ProductListingModel{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	counts := make(map[catalog.ListingStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// Save inserts a new listing
func (r *GormProductListingRepository) Save(ctx context.Context, listing *catalog.ProductListing) error {
	return r.db.WithContext(ctx).Create(models.ProductListingModelFromDomain(listing)).Error
}

// SaveWithLock saves review fields with optimistic locking (checks version)
func (r *GormProductListingRepository) SaveWithLock(ctx context.Context, listing *catalog.ProductListing) error {
	result := r.db.WithContext(ctx).
		Model(&models.ProductListingModel{}).
		Where("id = ? AND version = ?", listing.ID, listing.Version-1).
		Updates(map[string]interface{}{
			"status":           listing.Status,
			"rejection_reason": listing.RejectionReason,
			"reviewed_by":      listing.ReviewedBy,
			"reviewed_at":      listing.ReviewedAt,
			"updated_at":       listing.UpdatedAt,
			"version":          listing.Version,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// applyFilterWithoutPagination applies search and field filters
func (r *GormProductListingRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(sku) LIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "category":
			query = query.Where("category = ?", value)
		}
	}

	return query
}

func listingsToDomain(listingModels []models.ProductListingModel) []catalog.ProductListing {
	listings := make([]catalog.ProductListing, len(listingModels))
	for i := range listingModels {
		listings[i] = *listingModels[i].ToDomain()
	}
	return listings
}

// Ensure GormProductListingRepository implements ProductListingRepository
var _ catalog.ProductListingRepository = (*GormProductListingRepository)(nil)
