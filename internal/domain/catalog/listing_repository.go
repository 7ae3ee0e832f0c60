package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/shared"
)

// ProductListingRepository defines the persistence port for listings
type ProductListingRepository interface {
	// FindByID returns shared.ErrNotFound for unknown ids
	FindByID(ctx context.Context, id uuid.UUID) (*ProductListing, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]ProductListing, error)
	FindByVendor(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) ([]ProductListing, error)
	FindByStatus(ctx context.Context, status ListingStatus, filter shared.Filter) ([]ProductListing, error)
	CountByStatus(ctx context.Context) (map[ListingStatus]int64, error)

	Save(ctx context.Context, listing *ProductListing) error
	// SaveWithLock persists review fields with an optimistic version check
	SaveWithLock(ctx context.Context, listing *ProductListing) error
}
