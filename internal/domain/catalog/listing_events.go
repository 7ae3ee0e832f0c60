package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/shared"
)

// Aggregate type constant for ProductListing
const AggregateTypeProductListing = "ProductListing"

// Event type constants for ProductListing
const (
	EventTypeListingSubmitted = "ListingSubmitted"
	EventTypeListingApproved  = "ListingApproved"
	EventTypeListingRejected  = "ListingRejected"
)

// ListingSubmittedEvent is published when a vendor submits or resubmits a listing
type ListingSubmittedEvent struct {
	shared.BaseDomainEvent
	ListingID         uuid.UUID       `json:"listing_id"`
	VendorID          uuid.UUID       `json:"vendor_id"`
	SKU               string          `json:"sku"`
	Price             decimal.Decimal `json:"price"`
	PreviousListingID *uuid.UUID      `json:"previous_listing_id,omitempty"`
}

// NewListingSubmittedEvent creates a new ListingSubmittedEvent
func NewListingSubmittedEvent(l *ProductListing) *ListingSubmittedEvent {
	return &ListingSubmittedEvent{
		BaseDomainEvent:   shared.NewBaseDomainEvent(EventTypeListingSubmitted, AggregateTypeProductListing, l.ID),
		ListingID:         l.ID,
		VendorID:          l.VendorID,
		SKU:               l.SKU,
		Price:             l.Price,
		PreviousListingID: l.PreviousListingID,
	}
}

// ListingReviewedEvent is published when an admin approves or rejects a listing
type ListingReviewedEvent struct {
	shared.BaseDomainEvent
	ListingID  uuid.UUID     `json:"listing_id"`
	VendorID   uuid.UUID     `json:"vendor_id"`
	Status     ListingStatus `json:"status"`
	Reason     string        `json:"reason,omitempty"`
	ReviewedBy *uuid.UUID    `json:"reviewed_by,omitempty"`
}

// NewListingReviewedEvent creates a new ListingReviewedEvent
func NewListingReviewedEvent(eventType string, l *ProductListing) *ListingReviewedEvent {
	return &ListingReviewedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, AggregateTypeProductListing, l.ID),
		ListingID:       l.ID,
		VendorID:        l.VendorID,
		Status:          l.Status,
		Reason:          l.RejectionReason,
		ReviewedBy:      l.ReviewedBy,
	}
}
