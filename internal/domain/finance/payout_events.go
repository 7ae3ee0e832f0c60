package finance

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/shared"
)

// AggregateTypeVendorOrderPayout is the aggregate type payout signals are raised for
const AggregateTypeVendorOrderPayout = "VendorOrder"

// Payout signal event types, consumed by the external payout scheduler
const (
	EventTypePayoutEligible = "PayoutEligible"
	EventTypePayoutHeld     = "PayoutHeld"
)

// PayoutSignalEvent tells the payout scheduler whether a vendor order may be paid
type PayoutSignalEvent struct {
	shared.BaseDomainEvent
	VendorOrderID    uuid.UUID       `json:"vendor_order_id"`
	VendorID         uuid.UUID       `json:"vendor_id"`
	Payout           decimal.Decimal `json:"payout"`
	Reason           string          `json:"reason"`
	BlockingDisputes []uuid.UUID     `json:"blocking_disputes,omitempty"`
}

// NewPayoutSignalEvent converts an eligibility decision into a signal event
func NewPayoutSignalEvent(vendorID uuid.UUID, e Eligibility) *PayoutSignalEvent {
	eventType := EventTypePayoutHeld
	if e.Eligible {
		eventType = EventTypePayoutEligible
	}
	return &PayoutSignalEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(eventType, AggregateTypeVendorOrderPayout, e.VendorOrderID),
		VendorOrderID:    e.VendorOrderID,
		VendorID:         vendorID,
		Payout:           e.Payout,
		Reason:           e.Reason,
		BlockingDisputes: e.BlockingDisputes,
	}
}
