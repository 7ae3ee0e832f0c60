package dispute

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/dispute"
)

// OpenDisputeRequest represents a claim against a vendor order
type OpenDisputeRequest struct {
	Type        string          `json:"type" binding:"required,oneof=item_not_received not_as_described damaged refund_request other"`
	Description string          `json:"description" binding:"required,min=1,max=4000"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Priority    string          `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
}

// DecideDisputeRequest represents a resolution or closure
type DecideDisputeRequest struct {
	Resolution string `json:"resolution" binding:"required,min=1,max=4000"`
}

// AttachEvidenceRequest represents a request for an evidence upload slot
type AttachEvidenceRequest struct {
	FileName    string `json:"file_name" binding:"required,min=1,max=255"`
	ContentType string `json:"content_type" binding:"required,max=100"`
}

// DisputeListFilter represents paging options for the admin queue
type DisputeListFilter struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// EvidenceResponse represents an evidence file in API responses
type EvidenceResponse struct {
	ID          uuid.UUID  `json:"id"`
	FileName    string     `json:"file_name"`
	ContentType string     `json:"content_type"`
	ObjectKey   string     `json:"object_key"`
	UploadedBy  uuid.UUID  `json:"uploaded_by"`
	UploadedAt  time.Time  `json:"uploaded_at"`
	DownloadURL string     `json:"download_url,omitempty"`
	URLExpires  *time.Time `json:"url_expires_at,omitempty"`
}

// EvidenceUploadResponse carries the presigned upload slot for new evidence
type EvidenceUploadResponse struct {
	Evidence  EvidenceResponse `json:"evidence"`
	UploadURL string           `json:"upload_url"`
	ExpiresAt time.Time        `json:"expires_at"`
}

// DisputeResponse represents a dispute in API responses
type DisputeResponse struct {
	ID            uuid.UUID          `json:"id"`
	VendorOrderID uuid.UUID          `json:"vendor_order_id"`
	OrderID       uuid.UUID          `json:"order_id"`
	VendorID      uuid.UUID          `json:"vendor_id"`
	CustomerID    uuid.UUID          `json:"customer_id"`
	OpenedBy      uuid.UUID          `json:"opened_by"`
	OpenedByRole  string             `json:"opened_by_role"`
	Type          string             `json:"type"`
	Description   string             `json:"description"`
	Amount        decimal.Decimal    `json:"amount"`
	Priority      string             `json:"priority"`
	Status        string             `json:"status"`
	Resolution    string             `json:"resolution,omitempty"`
	ResolvedBy    *uuid.UUID         `json:"resolved_by,omitempty"`
	Evidence      []EvidenceResponse `json:"evidence"`
	ResolvedAt    *time.Time         `json:"resolved_at,omitempty"`
	ClosedAt      *time.Time         `json:"closed_at,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
	Version       int                `json:"version"`
}

// ToDisputeResponse converts a domain Dispute to DisputeResponse
func ToDisputeResponse(d *dispute.Dispute) DisputeResponse {
	evidence := make([]EvidenceResponse, len(d.Evidence))
	for i, ev := range d.Evidence {
		evidence[i] = toEvidenceResponse(ev)
	}
	return DisputeResponse{
		ID:            d.ID,
		VendorOrderID: d.VendorOrderID,
		OrderID:       d.OrderID,
		VendorID:      d.VendorID,
		CustomerID:    d.CustomerID,
		OpenedBy:      d.OpenedBy,
		OpenedByRole:  string(d.OpenedByRole),
		Type:          string(d.Type),
		Description:   d.Description,
		Amount:        d.Amount,
		Priority:      string(d.Priority),
		Status:        d.Status.String(),
		Resolution:    d.Resolution,
		ResolvedBy:    d.ResolvedBy,
		Evidence:      evidence,
		ResolvedAt:    d.ResolvedAt,
		ClosedAt:      d.ClosedAt,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
		Version:       d.Version,
	}
}

// ToDisputeResponses converts a slice of disputes to responses
func ToDisputeResponses(disputes []dispute.Dispute) []DisputeResponse {
	responses := make([]DisputeResponse, len(disputes))
	for i := range disputes {
		responses[i] = ToDisputeResponse(&disputes[i])
	}
	return responses
}

func toEvidenceResponse(ev dispute.Evidence) EvidenceResponse {
	return EvidenceResponse{
		ID:          ev.ID,
		FileName:    ev.FileName,
		ContentType: ev.ContentType,
		ObjectKey:   ev.ObjectKey,
		UploadedBy:  ev.UploadedBy,
		UploadedAt:  ev.UploadedAt,
	}
}
