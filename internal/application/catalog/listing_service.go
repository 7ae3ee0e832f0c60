package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/catalog"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/partner"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/shared"
	"go.uber.org/zap"
)

// ListingService handles product submission and review
type ListingService struct {
	listingRepo     catalog.ProductListingRepository
	vendorRepo      partner.VendorRepository
	defaultCurrency string
	eventPublisher  shared.EventPublisher
	logger          *zap.Logger
}

// NewListingService creates a new ListingService
func NewListingService(
	listingRepo catalog.ProductListingRepository,
	vendorRepo partner.VendorRepository,
	defaultCurrency string,
	logger *zap.Logger,
) *ListingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ListingService{
		listingRepo:     listingRepo,
		vendorRepo:      vendorRepo,
		defaultCurrency: defaultCurrency,
		logger:          logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *ListingService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Submit creates a pending listing for an approved vendor
func (s *ListingService) Submit(ctx context.Context, actor shared.Actor, vendorID uuid.UUID, req SubmitProductRequest) (*ProductResponse, error) {
	if err := actor.RequireVendorOrAdmin(vendorID, "submit product"); err != nil {
		return nil, err
	}

	vendor, err := s.vendorRepo.FindByID(ctx, vendorID)
	if err != nil {
		return nil, err
	}

	listing, err := catalog.NewProductListing(vendor, req.toDraft(), s.defaultCurrency)
	if err != nil {
		return nil, err
	}

	if err := s.listingRepo.Save(ctx, listing); err != nil {
		return nil, err
	}
	s.publish(ctx, listing)

	s.logger.Info("product submitted",
		zap.String("product_id", listing.ID.String()),
		zap.String("vendor_id", vendorID.String()),
		zap.String("sku", listing.SKU),
	)

	response := ToProductResponse(listing)
	return &response, nil
}

// Resubmit creates a new pending listing from a rejected one
func (s *ListingService) Resubmit(ctx context.Context, actor shared.Actor, listingID uuid.UUID, req SubmitProductRequest) (*ProductResponse, error) {
	if err := actor.Validate(); err != nil {
		return nil, err
	}

	source, err := s.listingRepo.FindByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if err := actor.RequireVendorOrAdmin(source.VendorID, "resubmit product"); err != nil {
		return nil, err
	}

	vendor, err := s.vendorRepo.FindByID(ctx, source.VendorID)
	if err != nil {
		return nil, err
	}

	listing, err := source.Resubmit(vendor, req.toDraft())
	if err != nil {
		return nil, err
	}

	if err := s.listingRepo.Save(ctx, listing); err != nil {
		return nil, err
	}
	s.publish(ctx, listing)

	s.logger.Info("product resubmitted",
		zap.String("product_id", listing.ID.String()),
		zap.String("previous_listing_id", source.ID.String()),
		zap.String("vendor_id", vendor.ID.String()),
	)

	response := ToProductResponse(listing)
	return &response, nil
}

// Approve publishes a pending listing
func (s *ListingService) Approve(ctx context.Context, actor shared.Actor, listingID uuid.UUID) (*ProductResponse, error) {
	if err := actor.RequireAdmin("approve product"); err != nil {
		return nil, err
	}
	return s.review(ctx, listingID, catalog.ListingStatusApproved, func(l *catalog.ProductListing) error {
		return l.Approve(actor.UserID)
	})
}

// Reject refuses a pending listing with a reason shown to the vendor
func (s *ListingService) Reject(ctx context.Context, actor shared.Actor, listingID uuid.UUID, req RejectProductRequest) (*ProductResponse, error) {
	if err := actor.RequireAdmin("reject product"); err != nil {
		return nil, err
	}
	return s.review(ctx, listingID, catalog.ListingStatusRejected, func(l *catalog.ProductListing) error {
		return l.Reject(actor.UserID, req.Reason)
	})
}

// GetByID returns a listing. Listings that have not been approved are only
// visible to their vendor and admins.
func (s *ListingService) GetByID(ctx context.Context, actor shared.Actor, listingID uuid.UUID) (*ProductResponse, error) {
	if err := actor.Validate(); err != nil {
		return nil, err
	}

	listing, err := s.listingRepo.FindByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if !listing.IsApproved() && !actor.IsAdmin() && !actor.ActsFor(listing.VendorID) {
		return nil, shared.NewNotFoundError(catalog.AggregateTypeProductListing, listingID)
	}

	response := ToProductResponse(listing)
	return &response, nil
}

// ListVendorProducts lists every listing of a vendor, including rejected history
func (s *ListingService) ListVendorProducts(ctx context.Context, actor shared.Actor, vendorID uuid.UUID, filter ProductListFilter) ([]ProductResponse, error) {
	if err := actor.RequireVendorOrAdmin(vendorID, "list vendor products"); err != nil {
		return nil, err
	}

	listings, err := s.listingRepo.FindByVendor(ctx, vendorID, shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  "created_at",
		OrderDir: "desc",
	}.Normalize())
	if err != nil {
		return nil, err
	}

	return ToProductResponses(listings), nil
}

// GetPending returns listings waiting for review, oldest first
func (s *ListingService) GetPending(ctx context.Context, actor shared.Actor, filter ProductListFilter) ([]ProductResponse, error) {
	if err := actor.RequireAdmin("list pending products"); err != nil {
		return nil, err
	}

	listings, err := s.listingRepo.FindByStatus(ctx, catalog.ListingStatusPending, shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  "created_at",
		OrderDir: "asc",
	}.Normalize())
	if err != nil {
		return nil, err
	}

	return ToProductResponses(listings), nil
}

// CheckOrderability reports whether a listing can be bought right now
func (s *ListingService) CheckOrderability(ctx context.Context, actor shared.Actor, listingID uuid.UUID) (*OrderabilityResponse, error) {
	if err := actor.Validate(); err != nil {
		return nil, err
	}

	listing, err := s.listingRepo.FindByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	vendor, err := s.vendorRepo.FindByID(ctx, listing.VendorID)
	if err != nil {
		return nil, err
	}

	response := OrderabilityResponse{
		ProductID:     listing.ID,
		VendorID:      vendor.ID,
		Orderable:     catalog.IsOrderable(listing, vendor.Status),
		ListingStatus: listing.Status.String(),
		VendorStatus:  vendor.Status.String(),
	}
	if err := catalog.CheckOrderable(listing, vendor); err != nil {
		var domainErr *shared.DomainError
		if errors.As(err, &domainErr) {
			response.Reason = domainErr.Message
		} else {
			response.Reason = err.Error()
		}
	}

	return &response, nil
}

func (s *ListingService) review(
	ctx context.Context,
	listingID uuid.UUID,
	target catalog.ListingStatus,
	apply func(l *catalog.ProductListing) error,
) (*ProductResponse, error) {
	listing, err := s.listingRepo.FindByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if err := apply(listing); err != nil {
		return nil, err
	}

	if err := s.listingRepo.SaveWithLock(ctx, listing); err != nil {
		if errors.Is(err, shared.ErrConcurrencyConflict) {
			current, findErr := s.listingRepo.FindByID(ctx, listingID)
			if findErr != nil {
				return nil, findErr
			}
			return nil, shared.NewInvalidTransitionError(catalog.AggregateTypeProductListing, listingID, current.Status.String(), target.String())
		}
		return nil, err
	}
	s.publish(ctx, listing)

	s.logger.Info("product reviewed",
		zap.String("product_id", listing.ID.String()),
		zap.String("vendor_id", listing.VendorID.String()),
		zap.String("to", listing.Status.String()),
	)

	response := ToProductResponse(listing)
	return &response, nil
}

func (s *ListingService) publish(ctx context.Context, listing *catalog.ProductListing) {
	if err := shared.PublishAndClear(ctx, s.eventPublisher, listing); err != nil {
		s.logger.Warn("failed to publish listing events",
			zap.String("product_id", listing.ID.String()),
			zap.Error(err),
		)
	}
}
