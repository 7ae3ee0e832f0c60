package finance

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Settleable is the fulfillment view the payout rules need
type Settleable interface {
	SettlementID() uuid.UUID
	IsDelivered() bool
	PayoutAmount() decimal.Decimal
}

// PayoutHold is anything that can freeze a payout, such as an unresolved dispute
type PayoutHold interface {
	HoldID() uuid.UUID
	BlocksPayout() bool
}

// Reasons reported with an eligibility decision
const (
	ReasonEligible     = "eligible"
	ReasonNotDelivered = "not_delivered"
	ReasonDisputed     = "dispute_pending"
)

// Eligibility is the answer to "can this vendor order be paid out right now"
type Eligibility struct {
	VendorOrderID    uuid.UUID       `json:"vendor_order_id"`
	Eligible         bool            `json:"eligible"`
	Reason           string          `json:"reason"`
	Payout           decimal.Decimal `json:"payout"`
	BlockingDisputes []uuid.UUID     `json:"blocking_disputes,omitempty"`
}

// EvaluatePayout derives payout eligibility from the order and its holds.
// Nothing is stored, so calling it repeatedly always gives the current answer.
func EvaluatePayout(order Settleable, holds ...PayoutHold) Eligibility {
	e := Eligibility{
		VendorOrderID: order.SettlementID(),
		Payout:        order.PayoutAmount(),
	}
	for _, h := range holds {
		if h.BlocksPayout() {
			e.BlockingDisputes = append(e.BlockingDisputes, h.HoldID())
		}
	}

	switch {
	case len(e.BlockingDisputes) > 0:
		e.Reason = ReasonDisputed
	case !order.IsDelivered():
		e.Reason = ReasonNotDelivered
	default:
		e.Eligible = true
		e.Reason = ReasonEligible
	}
	return e
}
