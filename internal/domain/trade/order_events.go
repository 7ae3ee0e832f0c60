package trade

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/shared"
)

// Aggregate type constants
const (
	AggregateTypeOrder       = "Order"
	AggregateTypeVendorOrder = "VendorOrder"
)

// Event type constants
const (
	EventTypeOrderPlaced              = "OrderPlaced"
	EventTypeVendorOrderCreated       = "VendorOrderCreated"
	EventTypeVendorOrderStatusChanged = "VendorOrderStatusChanged"
)

// OrderPlacedEvent is published after checkout created an order and its vendor orders
type OrderPlacedEvent struct {
	shared.BaseDomainEvent
	OrderID        uuid.UUID       `json:"order_id"`
	OrderNumber    string          `json:"order_number"`
	CustomerID     uuid.UUID       `json:"customer_id"`
	Total          decimal.Decimal `json:"total"`
	VendorOrderIDs []uuid.UUID     `json:"vendor_order_ids"`
}

// NewOrderPlacedEvent creates a new OrderPlacedEvent
func NewOrderPlacedEvent(o *Order, vendorOrders []*VendorOrder) *OrderPlacedEvent {
	ids := make([]uuid.UUID, 0, len(vendorOrders))
	for _, vo := range vendorOrders {
		ids = append(ids, vo.ID)
	}
	return &OrderPlacedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderPlaced, AggregateTypeOrder, o.ID),
		OrderID:         o.ID,
		OrderNumber:     o.OrderNumber,
		CustomerID:      o.CustomerID,
		Total:           o.Total,
		VendorOrderIDs:  ids,
	}
}

// VendorOrderCreatedEvent is published for each vendor order split out at checkout
type VendorOrderCreatedEvent struct {
	shared.BaseDomainEvent
	VendorOrderID uuid.UUID       `json:"vendor_order_id"`
	OrderID       uuid.UUID       `json:"order_id"`
	VendorID      uuid.UUID       `json:"vendor_id"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Commission    decimal.Decimal `json:"commission"`
	Payout        decimal.Decimal `json:"payout"`
}

// NewVendorOrderCreatedEvent creates a new VendorOrderCreatedEvent
func NewVendorOrderCreatedEvent(vo *VendorOrder) *VendorOrderCreatedEvent {
	return &VendorOrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeVendorOrderCreated, AggregateTypeVendorOrder, vo.ID),
		VendorOrderID:   vo.ID,
		OrderID:         vo.OrderID,
		VendorID:        vo.VendorID,
		Subtotal:        vo.Subtotal,
		Commission:      vo.Commission,
		Payout:          vo.Payout,
	}
}

// VendorOrderStatusChangedEvent is published on every fulfillment transition
type VendorOrderStatusChangedEvent struct {
	shared.BaseDomainEvent
	VendorOrderID  uuid.UUID         `json:"vendor_order_id"`
	OrderID        uuid.UUID         `json:"order_id"`
	VendorID       uuid.UUID         `json:"vendor_id"`
	FromStatus     VendorOrderStatus `json:"from_status"`
	ToStatus       VendorOrderStatus `json:"to_status"`
	Carrier        string            `json:"carrier,omitempty"`
	TrackingNumber string            `json:"tracking_number,omitempty"`
	Reason         string            `json:"reason,omitempty"`
}

// NewVendorOrderStatusChangedEvent creates a new VendorOrderStatusChangedEvent
func NewVendorOrderStatusChangedEvent(vo *VendorOrder, from, to VendorOrderStatus) *VendorOrderStatusChangedEvent {
	return &VendorOrderStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeVendorOrderStatusChanged, AggregateTypeVendorOrder, vo.ID),
		VendorOrderID:   vo.ID,
		OrderID:         vo.OrderID,
		VendorID:        vo.VendorID,
		FromStatus:      from,
		ToStatus:        to,
		Carrier:         vo.Carrier,
		TrackingNumber:  vo.TrackingNumber,
		Reason:          vo.ReturnReason,
	}
}
