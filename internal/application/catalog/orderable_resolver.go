package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/catalog"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/partner"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/shared"
)

// OrderableProduct is the catalog snapshot checkout copies into a vendor order
type OrderableProduct struct {
	ProductID uuid.UUID
	VendorID  uuid.UUID
	SKU       string
	Name      string
	Price     decimal.Decimal
	Currency  string
}

// OrderableResolver resolves products for checkout.
// The trade context uses it without depending on catalog repositories.
type OrderableResolver struct {
	listingRepo catalog.ProductListingRepository
	vendorRepo  partner.VendorRepository
}

// NewOrderableResolver creates a new OrderableResolver
func NewOrderableResolver(listingRepo catalog.ProductListingRepository, vendorRepo partner.VendorRepository) *OrderableResolver {
	return &OrderableResolver{
		listingRepo: listingRepo,
		vendorRepo:  vendorRepo,
	}
}

// ResolveOrderable loads the given products and fails on the first one that
// is unknown or not orderable. Every product must be approved and so must
// its vendor.
func (r *OrderableResolver) ResolveOrderable(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]OrderableProduct, error) {
	if len(productIDs) == 0 {
		return make(map[uuid.UUID]OrderableProduct), nil
	}

	listings, err := r.listingRepo.FindByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*catalog.ProductListing, len(listings))
	vendorIDs := make([]uuid.UUID, 0, len(listings))
	seenVendor := make(map[uuid.UUID]bool)
	for i := range listings {
		byID[listings[i].ID] = &listings[i]
		if !seenVendor[listings[i].VendorID] {
			seenVendor[listings[i].VendorID] = true
			vendorIDs = append(vendorIDs, listings[i].VendorID)
		}
	}

	vendors, err := r.vendorRepo.FindByIDs(ctx, vendorIDs)
	if err != nil {
		return nil, err
	}
	vendorByID := make(map[uuid.UUID]*partner.Vendor, len(vendors))
	for i := range vendors {
		vendorByID[vendors[i].ID] = &vendors[i]
	}

	result := make(map[uuid.UUID]OrderableProduct, len(productIDs))
	for _, id := range productIDs {
		listing, ok := byID[id]
		if !ok {
			return nil, shared.NewNotFoundError(catalog.AggregateTypeProductListing, id)
		}
		vendor, ok := vendorByID[listing.VendorID]
		if !ok {
			return nil, shared.NewNotFoundError(partner.AggregateTypeVendor, listing.VendorID)
		}
		if err := catalog.CheckOrderable(listing, vendor); err != nil {
			return nil, err
		}
		result[id] = OrderableProduct{
			ProductID: listing.ID,
			VendorID:  listing.VendorID,
			SKU:       listing.SKU,
			Name:      listing.Name,
			Price:     listing.Price,
			Currency:  listing.Currency,
		}
	}

	return result, nil
}
