package trade

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/finance"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/shared"
)

// VendorOrderStatus represents the fulfillment status of a vendor's sub-order
type VendorOrderStatus string

const (
	VendorOrderStatusPending    VendorOrderStatus = "pending"
	VendorOrderStatusProcessing VendorOrderStatus = "processing"
	VendorOrderStatusShipped    VendorOrderStatus = "shipped"
	VendorOrderStatusDelivered  VendorOrderStatus = "delivered"
	VendorOrderStatusReturned   VendorOrderStatus = "returned"
)

// AllVendorOrderStatuses lists every status in graph order
func AllVendorOrderStatuses() []VendorOrderStatus {
	return []VendorOrderStatus{
		VendorOrderStatusPending,
		VendorOrderStatusProcessing,
		VendorOrderStatusShipped,
		VendorOrderStatusDelivered,
		VendorOrderStatusReturned,
	}
}

// IsValid checks if the status is known
func (s VendorOrderStatus) IsValid() bool {
	switch s {
	case VendorOrderStatusPending, VendorOrderStatusProcessing, VendorOrderStatusShipped,
		VendorOrderStatusDelivered, VendorOrderStatusReturned:
		return true
	}
	return false
}

// String returns the string representation of the status
func (s VendorOrderStatus) String() string {
	return string(s)
}

// IsTerminal reports whether no further fulfillment transition exists
func (s VendorOrderStatus) IsTerminal() bool {
	return s == VendorOrderStatusDelivered || s == VendorOrderStatusReturned
}

// CanTransitionTo checks the fulfillment graph:
//
//	pending -> processing -> shipped -> delivered
//	pending | processing | shipped -> returned
func (s VendorOrderStatus) CanTransitionTo(target VendorOrderStatus) bool {
	switch s {
	case VendorOrderStatusPending:
		return target == VendorOrderStatusProcessing ||
			target == VendorOrderStatusShipped ||
			target == VendorOrderStatusReturned
	case VendorOrderStatusProcessing:
		return target == VendorOrderStatusShipped || target == VendorOrderStatusReturned
	case VendorOrderStatusShipped:
		return target == VendorOrderStatusDelivered || target == VendorOrderStatusReturned
	default:
		return false
	}
}

// AcceptsDisputes reports whether a dispute may be opened against an order in this status
func (s VendorOrderStatus) AcceptsDisputes() bool {
	return s == VendorOrderStatusShipped || s == VendorOrderStatusDelivered
}

// VendorOrderItem is a price and quantity snapshot taken at checkout
type VendorOrderItem struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	SKU       string
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
	Amount    decimal.Decimal
}

// VendorOrder is the part of a customer order fulfilled by a single vendor.
//
// OriginalSubtotal is the checkout snapshot that the parent order total is built from.
// Subtotal is the settlement basis for commission and payout; it equals
// OriginalSubtotal until the order is returned, when it drops to zero.
type VendorOrder struct {
	shared.BaseAggregateRoot
	OrderID          uuid.UUID
	OrderNumber      string
	VendorID         uuid.UUID
	CustomerID       uuid.UUID
	Currency         string
	Items            []VendorOrderItem
	OriginalSubtotal decimal.Decimal
	Subtotal         decimal.Decimal
	CommissionRate   decimal.Decimal
	Commission       decimal.Decimal
	Payout           decimal.Decimal
	Status           VendorOrderStatus
	Carrier          string
	TrackingNumber   string
	ReturnReason     string
	ProcessingAt     *time.Time
	ShippedAt        *time.Time
	DeliveredAt      *time.Time
	ReturnedAt       *time.Time
}

func newVendorOrder(order *Order, vendorID uuid.UUID, items []VendorOrderItem, rate decimal.Decimal) (*VendorOrder, error) {
	if err := finance.ValidateRate(rate); err != nil {
		return nil, err
	}

	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Amount)
	}

	vo := &VendorOrder{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderID:           order.ID,
		OrderNumber:       order.OrderNumber,
		VendorID:          vendorID,
		CustomerID:        order.CustomerID,
		Currency:          order.Currency,
		Items:             items,
		OriginalSubtotal:  subtotal,
		CommissionRate:    rate,
		Status:            VendorOrderStatusPending,
	}
	vo.applyBreakdown(finance.CalculateCommission(subtotal, rate))

	return vo, nil
}

// MarkProcessing records that the vendor started preparing the order
func (vo *VendorOrder) MarkProcessing() error {
	if vo.Status != VendorOrderStatusPending {
		return vo.invalidTransition(VendorOrderStatusProcessing)
	}

	now := time.Now()
	vo.transition(VendorOrderStatusProcessing, now)
	vo.ProcessingAt = &now

	return nil
}

// Ship hands the order to a carrier
func (vo *VendorOrder) Ship(carrier, trackingNumber string) error {
	if !vo.Status.CanTransitionTo(VendorOrderStatusShipped) {
		return vo.invalidTransition(VendorOrderStatusShipped)
	}
	carrier = strings.TrimSpace(carrier)
	trackingNumber = strings.TrimSpace(trackingNumber)
	if carrier == "" {
		return shared.NewValidationError("carrier", "carrier is required")
	}
	if trackingNumber == "" {
		return shared.NewValidationError("tracking_number", "tracking number is required")
	}

	now := time.Now()
	vo.Carrier = carrier
	vo.TrackingNumber = trackingNumber
	vo.transition(VendorOrderStatusShipped, now)
	vo.ShippedAt = &now

	return nil
}

// ConfirmDelivery records the carrier's delivery confirmation
func (vo *VendorOrder) ConfirmDelivery() error {
	if vo.Status != VendorOrderStatusShipped {
		return vo.invalidTransition(VendorOrderStatusDelivered)
	}

	now := time.Now()
	vo.transition(VendorOrderStatusDelivered, now)
	vo.DeliveredAt = &now

	return nil
}

// MarkReturned diverts the order to returned. The settlement basis and with it
// commission and payout drop to zero, since returns earn the vendor nothing.
func (vo *VendorOrder) MarkReturned(reason string) error {
	if !vo.Status.CanTransitionTo(VendorOrderStatusReturned) {
		return vo.invalidTransition(VendorOrderStatusReturned)
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return shared.NewValidationError("reason", "return reason is required")
	}

	now := time.Now()
	vo.ReturnReason = reason
	vo.applyBreakdown(finance.CalculateCommission(decimal.Zero, vo.CommissionRate))
	vo.transition(VendorOrderStatusReturned, now)
	vo.ReturnedAt = &now

	return nil
}

// Breakdown returns the current commission split
func (vo *VendorOrder) Breakdown() finance.Breakdown {
	return finance.Breakdown{
		Subtotal:   vo.Subtotal,
		Rate:       vo.CommissionRate,
		Commission: vo.Commission,
		Payout:     vo.Payout,
	}
}

// SettlementID implements finance.Settleable
func (vo *VendorOrder) SettlementID() uuid.UUID {
	return vo.ID
}

// IsDelivered implements finance.Settleable
func (vo *VendorOrder) IsDelivered() bool {
	return vo.Status == VendorOrderStatusDelivered
}

// PayoutAmount implements finance.Settleable
func (vo *VendorOrder) PayoutAmount() decimal.Decimal {
	return vo.Payout
}

// ItemCount returns the total quantity across items
func (vo *VendorOrder) ItemCount() int {
	total := 0
	for _, item := range vo.Items {
		total += item.Quantity
	}
	return total
}

func (vo *VendorOrder) applyBreakdown(b finance.Breakdown) {
	vo.Subtotal = b.Subtotal
	vo.Commission = b.Commission
	vo.Payout = b.Payout
}

func (vo *VendorOrder) transition(target VendorOrderStatus, now time.Time) {
	from := vo.Status
	vo.Status = target
	vo.MarkModified(now)
	vo.AddDomainEvent(NewVendorOrderStatusChangedEvent(vo, from, target))
}

func (vo *VendorOrder) invalidTransition(target VendorOrderStatus) error {
	return shared.NewInvalidTransitionError(AggregateTypeVendorOrder, vo.ID, vo.Status.String(), target.String())
}

var _ finance.Settleable = (*VendorOrder)(nil)
