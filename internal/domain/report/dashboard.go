package report

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/trade"
)

// StatusCount is a count of records sharing a status
type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// FulfillmentSummary is a read model over vendor orders
type FulfillmentSummary struct {
	ByStatus         []trade.StatusTotals `json:"-"`
	TotalOrders      int64                `json:"total_orders"`
	DeliveredOrders  int64                `json:"delivered_orders"`
	ReturnedOrders   int64                `json:"returned_orders"`
	DeliveredSales   decimal.Decimal      `json:"delivered_sales"`
	CommissionEarned decimal.Decimal      `json:"commission_earned"`
	VendorPayouts    decimal.Decimal      `json:"vendor_payouts"`
	OpenPipeline     decimal.Decimal      `json:"open_pipeline"`
}

// Dashboard is the admin back-office overview, computed on demand
type Dashboard struct {
	GeneratedAt     time.Time          `json:"generated_at"`
	Vendors         []StatusCount      `json:"vendors"`
	Listings        []StatusCount      `json:"listings"`
	Disputes        []StatusCount      `json:"disputes"`
	PendingVendors  int64              `json:"pending_vendors"`
	PendingListings int64              `json:"pending_listings"`
	OpenDisputes    int64              `json:"open_disputes"`
	Fulfillment     FulfillmentSummary `json:"fulfillment"`
	PayoutsHeld     decimal.Decimal    `json:"payouts_held"`
}

// SummarizeFulfillment folds per-status totals into a summary.
// Delivered orders count as earned; pending, processing and shipped orders form the open pipeline.
func SummarizeFulfillment(totals []trade.StatusTotals) FulfillmentSummary {
	s := FulfillmentSummary{
		ByStatus:         totals,
		DeliveredSales:   decimal.Zero,
		CommissionEarned: decimal.Zero,
		VendorPayouts:    decimal.Zero,
		OpenPipeline:     decimal.Zero,
	}
	for _, t := range totals {
		s.TotalOrders += t.Count
		switch t.Status {
		case trade.VendorOrderStatusDelivered:
			s.DeliveredOrders += t.Count
			s.DeliveredSales = s.DeliveredSales.Add(t.Subtotal)
			s.CommissionEarned = s.CommissionEarned.Add(t.Commission)
			s.VendorPayouts = s.VendorPayouts.Add(t.Payout)
		case trade.VendorOrderStatusReturned:
			s.ReturnedOrders += t.Count
		default:
			s.OpenPipeline = s.OpenPipeline.Add(t.Subtotal)
		}
	}
	return s
}

// CountsFrom converts a status count map into a stable, ordered slice
func CountsFrom[S ~string](counts map[S]int64, order []S) []StatusCount {
	result := make([]StatusCount, 0, len(order))
	for _, status := range order {
		result = append(result, StatusCount{Status: string(status), Count: counts[status]})
	}
	return result
}
