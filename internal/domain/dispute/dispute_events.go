package dispute

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/shared"
)

// Aggregate type constant for Dispute
const AggregateTypeDispute = "Dispute"

// Event type constants for Dispute
const (
	EventTypeDisputeOpened        = "DisputeOpened"
	EventTypeDisputeStatusChanged = "DisputeStatusChanged"
)

// DisputeOpenedEvent is published when a dispute is raised against a vendor order
type DisputeOpenedEvent struct {
	shared.BaseDomainEvent
	DisputeID     uuid.UUID       `json:"dispute_id"`
	VendorOrderID uuid.UUID       `json:"vendor_order_id"`
	VendorID      uuid.UUID       `json:"vendor_id"`
	Type          Type            `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	Priority      Priority        `json:"priority"`
}

// NewDisputeOpenedEvent creates a new DisputeOpenedEvent
func NewDisputeOpenedEvent(d *Dispute) *DisputeOpenedEvent {
	return &DisputeOpenedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDisputeOpened, AggregateTypeDispute, d.ID),
		DisputeID:       d.ID,
		VendorOrderID:   d.VendorOrderID,
		VendorID:        d.VendorID,
		Type:            d.Type,
		Amount:          d.Amount,
		Priority:        d.Priority,
	}
}

// DisputeStatusChangedEvent is published on every dispute transition
type DisputeStatusChangedEvent struct {
	shared.BaseDomainEvent
	DisputeID     uuid.UUID `json:"dispute_id"`
	VendorOrderID uuid.UUID `json:"vendor_order_id"`
	FromStatus    Status    `json:"from_status"`
	ToStatus      Status    `json:"to_status"`
	Resolution    string    `json:"resolution,omitempty"`
}

// NewDisputeStatusChangedEvent creates a new DisputeStatusChangedEvent
func NewDisputeStatusChangedEvent(d *Dispute, from Status) *DisputeStatusChangedEvent {
	return &DisputeStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDisputeStatusChanged, AggregateTypeDispute, d.ID),
		DisputeID:       d.ID,
		VendorOrderID:   d.VendorOrderID,
		FromStatus:      from,
		ToStatus:        d.Status,
		Resolution:      d.Resolution,
	}
}
