package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/partner"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/shared"
)

// ListingStatus represents the approval status of a product listing
type ListingStatus string

const (
	ListingStatusPending  ListingStatus = "pending"
	ListingStatusApproved ListingStatus = "approved"
	ListingStatusRejected ListingStatus = "rejected"
)

// IsValid checks if the status is known
func (s ListingStatus) IsValid() bool {
	switch s {
	case ListingStatusPending, ListingStatusApproved, ListingStatusRejected:
		return true
	}
	return false
}

// String returns the string representation of the status
func (s ListingStatus) String() string {
	return string(s)
}

// ProductDraft is the vendor-supplied content of a listing
type ProductDraft struct {
	SKU         string
	Name        string
	Description string
	Category    string
	Price       decimal.Decimal
	Currency    string
}

// Validate checks the required listing fields
func (d ProductDraft) Validate() error {
	if strings.TrimSpace(d.SKU) == "" {
		return shared.NewValidationError("sku", "SKU is required")
	}
	if len(d.SKU) > 64 {
		return shared.NewValidationError("sku", "SKU cannot exceed 64 characters")
	}
	if strings.TrimSpace(d.Name) == "" {
		return shared.NewValidationError("name", "product name is required")
	}
	if len(d.Name) > 200 {
		return shared.NewValidationError("name", "product name cannot exceed 200 characters")
	}
	if !d.Price.IsPositive() {
		return shared.NewValidationError("price", "price must be positive")
	}
	return nil
}

// ProductListing is a vendor's request to sell a product on the marketplace.
// Decisions are final for a record; resubmission creates a new pending listing
// linked through PreviousListingID so the rejected one stays as audit history.
type ProductListing struct {
	shared.BaseAggregateRoot
	VendorID          uuid.UUID
	SKU               string
	Name              string
	Description       string
	Category          string
	Price             decimal.Decimal
	Currency          string
	Status            ListingStatus
	RejectionReason   string
	PreviousListingID *uuid.UUID
	ReviewedBy        *uuid.UUID
	ReviewedAt        *time.Time
}

// NewProductListing submits a draft for approval.
// The owning vendor must be approved.
func NewProductListing(vendor *partner.Vendor, draft ProductDraft, defaultCurrency string) (*ProductListing, error) {
	if err := vendor.RequireApproved(); err != nil {
		return nil, err
	}
	draft.SKU = strings.ToUpper(strings.TrimSpace(draft.SKU))
	draft.Name = strings.TrimSpace(draft.Name)
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	currency := strings.ToUpper(strings.TrimSpace(draft.Currency))
	if currency == "" {
		currency = defaultCurrency
	}

	listing := &ProductListing{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		VendorID:          vendor.ID,
		SKU:               draft.SKU,
		Name:              draft.Name,
		Description:       draft.Description,
		Category:          draft.Category,
		Price:             draft.Price.Round(2),
		Currency:          currency,
		Status:            ListingStatusPending,
	}

	listing.AddDomainEvent(NewListingSubmittedEvent(listing))

	return listing, nil
}

// Approve publishes a pending listing
func (l *ProductListing) Approve(reviewerID uuid.UUID) error {
	if l.Status != ListingStatusPending {
		return l.invalidTransition(ListingStatusApproved)
	}

	now := time.Now()
	l.Status = ListingStatusApproved
	l.ReviewedBy = &reviewerID
	l.ReviewedAt = &now
	l.MarkModified(now)

	l.AddDomainEvent(NewListingReviewedEvent(EventTypeListingApproved, l))

	return nil
}

// Reject refuses a pending listing; the reason is surfaced to the vendor
func (l *ProductListing) Reject(reviewerID uuid.UUID, reason string) error {
	if l.Status != ListingStatusPending {
		return l.invalidTransition(ListingStatusRejected)
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return shared.NewValidationError("reason", "rejection reason is required")
	}

	now := time.Now()
	l.Status = ListingStatusRejected
	l.RejectionReason = reason
	l.ReviewedBy = &reviewerID
	l.ReviewedAt = &now
	l.MarkModified(now)

	l.AddDomainEvent(NewListingReviewedEvent(EventTypeListingRejected, l))

	return nil
}

// Resubmit creates a new pending listing from a rejected one.
// The receiver is left unchanged.
func (l *ProductListing) Resubmit(vendor *partner.Vendor, draft ProductDraft) (*ProductListing, error) {
	if l.Status != ListingStatusRejected {
		return nil, l.invalidTransition("resubmitted")
	}
	if vendor.ID != l.VendorID {
		return nil, shared.NewValidationError("vendor_id", "listing belongs to another vendor")
	}

	next, err := NewProductListing(vendor, draft, l.Currency)
	if err != nil {
		return nil, err
	}
	previous := l.ID
	next.PreviousListingID = &previous

	return next, nil
}

// IsApproved reports whether the listing itself passed review
func (l *ProductListing) IsApproved() bool {
	return l.Status == ListingStatusApproved
}

func (l *ProductListing) invalidTransition(target ListingStatus) error {
	return shared.NewInvalidTransitionError(AggregateTypeProductListing, l.ID, l.Status.String(), target.String())
}
