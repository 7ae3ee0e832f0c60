package finance

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/finance"
)

// PayoutEligibilityResponse answers whether a vendor order can be paid out now
type PayoutEligibilityResponse struct {
	VendorOrderID    uuid.UUID       `json:"vendor_order_id"`
	VendorID         uuid.UUID       `json:"vendor_id"`
	Status           string          `json:"status"`
	Eligible         bool            `json:"eligible"`
	Reason           string          `json:"reason"`
	Subtotal         decimal.Decimal `json:"subtotal"`
	Commission       decimal.Decimal `json:"commission"`
	Payout           decimal.Decimal `json:"payout"`
	BlockingDisputes []uuid.UUID     `json:"blocking_disputes,omitempty"`
}

// PayoutSummaryResponse aggregates a vendor's settled and held money
type PayoutSummaryResponse struct {
	VendorID          uuid.UUID       `json:"vendor_id"`
	DeliveredOrders   int64           `json:"delivered_orders"`
	DeliveredSubtotal decimal.Decimal `json:"delivered_subtotal"`
	Commission        decimal.Decimal `json:"commission"`
	Payout            decimal.Decimal `json:"payout"`
	HeldAmount        decimal.Decimal `json:"held_amount"`
	EligibleAmount    decimal.Decimal `json:"eligible_amount"`
	PendingPayout     decimal.Decimal `json:"pending_payout"`
}

// EligiblePayoutFilter represents paging options for the eligible payout list
type EligiblePayoutFilter struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

func toEligibilityResponse(vendorID uuid.UUID, status string, breakdown finance.Breakdown, e finance.Eligibility) PayoutEligibilityResponse {
	return PayoutEligibilityResponse{
		VendorOrderID:    e.VendorOrderID,
		VendorID:         vendorID,
		Status:           status,
		Eligible:         e.Eligible,
		Reason:           e.Reason,
		Subtotal:         breakdown.Subtotal,
		Commission:       breakdown.Commission,
		Payout:           breakdown.Payout,
		BlockingDisputes: e.BlockingDisputes,
	}
}
