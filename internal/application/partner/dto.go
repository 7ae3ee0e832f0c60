package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/partner"
)

// SubmitVendorRequest represents a vendor application
type SubmitVendorRequest struct {
	BusinessName string `json:"business_name" binding:"required,min=1,max=200"`
	ContactEmail string `json:"contact_email" binding:"required,email"`
	Phone        string `json:"phone" binding:"max=50"`
	TaxID        string `json:"tax_id" binding:"max=50"`
	Address      string `json:"address" binding:"max=500"`
	Description  string `json:"description" binding:"max=2000"`
}

// RejectVendorRequest represents a request to reject a vendor application
type RejectVendorRequest struct {
	Reason string `json:"reason" binding:"required,min=1,max=500"`
}

// SuspendVendorRequest represents a request to suspend a vendor
type SuspendVendorRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

// VendorListFilter represents filter options for vendor lists
type VendorListFilter struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Status   string `form:"status" binding:"omitempty,oneof=pending approved rejected suspended"`
	Search   string `form:"search"`
}

// VendorResponse represents a vendor in API responses
type VendorResponse struct {
	ID               uuid.UUID       `json:"id"`
	OwnerID          uuid.UUID       `json:"owner_id"`
	BusinessName     string          `json:"business_name"`
	ContactEmail     string          `json:"contact_email"`
	Phone            string          `json:"phone,omitempty"`
	TaxID            string          `json:"tax_id,omitempty"`
	Address          string          `json:"address,omitempty"`
	Description      string          `json:"description,omitempty"`
	Status           string          `json:"status"`
	RejectionReason  string          `json:"rejection_reason,omitempty"`
	SuspensionReason string          `json:"suspension_reason,omitempty"`
	TotalOrders      int64           `json:"total_orders"`
	TotalSales       decimal.Decimal `json:"total_sales"`
	Rating           decimal.Decimal `json:"rating"`
	ReviewedBy       *uuid.UUID      `json:"reviewed_by,omitempty"`
	ApprovedAt       *time.Time      `json:"approved_at,omitempty"`
	RejectedAt       *time.Time      `json:"rejected_at,omitempty"`
	SuspendedAt      *time.Time      `json:"suspended_at,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
	Version          int             `json:"version"`
}

// ToVendorResponse converts a domain Vendor to VendorResponse
func ToVendorResponse(v *partner.Vendor) VendorResponse {
	return VendorResponse{
		ID:               v.ID,
		OwnerID:          v.OwnerID,
		BusinessName:     v.Profile.BusinessName,
		ContactEmail:     v.Profile.ContactEmail,
		Phone:            v.Profile.Phone,
		TaxID:            v.Profile.TaxID,
		Address:          v.Profile.Address,
		Description:      v.Profile.Description,
		Status:           v.Status.String(),
		RejectionReason:  v.RejectionReason,
		SuspensionReason: v.SuspensionReason,
		TotalOrders:      v.TotalOrders,
		TotalSales:       v.TotalSales,
		Rating:           v.Rating,
		ReviewedBy:       v.ReviewedBy,
		ApprovedAt:       v.ApprovedAt,
		RejectedAt:       v.RejectedAt,
		SuspendedAt:      v.SuspendedAt,
		CreatedAt:        v.CreatedAt,
		UpdatedAt:        v.UpdatedAt,
		Version:          v.Version,
	}
}

// ToVendorResponses converts a slice of domain Vendors to responses
func ToVendorResponses(vendors []partner.Vendor) []VendorResponse {
	responses := make([]VendorResponse, len(vendors))
	for i := range vendors {
		responses[i] = ToVendorResponse(&vendors[i])
	}
	return responses
}
