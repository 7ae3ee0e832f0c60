package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/catalog"
)

// SubmitProductRequest represents a vendor's product draft
type SubmitProductRequest struct {
	SKU         string          `json:"sku" binding:"required,min=1,max=64"`
	Name        string          `json:"name" binding:"required,min=1,max=200"`
	Description string          `json:"description" binding:"max=4000"`
	Category    string          `json:"category" binding:"max=100"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Currency    string          `json:"currency" binding:"omitempty,len=3"`
}

// RejectProductRequest represents a request to reject a listing
type RejectProductRequest struct {
	Reason string `json:"reason" binding:"required,min=1,max=500"`
}

// ProductListFilter represents paging options for listing queries
type ProductListFilter struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ProductResponse represents a product listing in API responses
type ProductResponse struct {
	ID                uuid.UUID       `json:"id"`
	VendorID          uuid.UUID       `json:"vendor_id"`
	SKU               string          `json:"sku"`
	Name              string          `json:"name"`
	Description       string          `json:"description,omitempty"`
	Category          string          `json:"category,omitempty"`
	Price             decimal.Decimal `json:"price"`
	Currency          string          `json:"currency"`
	Status            string          `json:"status"`
	RejectionReason   string          `json:"rejection_reason,omitempty"`
	PreviousListingID *uuid.UUID      `json:"previous_listing_id,omitempty"`
	ReviewedBy        *uuid.UUID      `json:"reviewed_by,omitempty"`
	ReviewedAt        *time.Time      `json:"reviewed_at,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
	Version           int             `json:"version"`
}

// OrderabilityResponse explains whether a product can be ordered right now
type OrderabilityResponse struct {
	ProductID     uuid.UUID `json:"product_id"`
	VendorID      uuid.UUID `json:"vendor_id"`
	Orderable     bool      `json:"orderable"`
	ListingStatus string    `json:"listing_status"`
	VendorStatus  string    `json:"vendor_status"`
	Reason        string    `json:"reason,omitempty"`
}

// ToProductResponse converts a domain ProductListing to ProductResponse
func ToProductResponse(l *catalog.ProductListing) ProductResponse {
	return ProductResponse{
		ID:                l.ID,
		VendorID:          l.VendorID,
		SKU:               l.SKU,
		Name:              l.Name,
		Description:       l.Description,
		Category:          l.Category,
		Price:             l.Price,
		Currency:          l.Currency,
		Status:            l.Status.String(),
		RejectionReason:   l.RejectionReason,
		PreviousListingID: l.PreviousListingID,
		ReviewedBy:        l.ReviewedBy,
		ReviewedAt:        l.ReviewedAt,
		CreatedAt:         l.CreatedAt,
		UpdatedAt:         l.UpdatedAt,
		Version:           l.Version,
	}
}

// ToProductResponses converts a slice of listings to responses
func ToProductResponses(listings []catalog.ProductListing) []ProductResponse {
	responses := make([]ProductResponse, len(listings))
	for i := range listings {
		responses[i] = ToProductResponse(&listings[i])
	}
	return responses
}

func (r SubmitProductRequest) toDraft() catalog.ProductDraft {
	return catalog.ProductDraft{
		SKU:         r.SKU,
		Name:        r.Name,
		Description: r.Description,
		Category:    r.Category,
		Price:       r.Price,
		Currency:    r.Currency,
	}
}
