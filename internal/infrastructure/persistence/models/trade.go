package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/trade"
)

// OrderModel is the persistence model for the customer Order aggregate
type OrderModel struct {
	AggregateModel
	OrderNumber      string            `gorm:"type:varchar(50);not null;uniqueIndex"`
	CustomerID       uuid.UUID         `gorm:"type:uuid;not null;index"`
	PaymentReference string            `gorm:"type:varchar(100);not null"`
	Currency         string            `gorm:"type:varchar(3);not null"`
	Total            decimal.Decimal   `gorm:"type:decimal(18,4);not null"`
	Status           trade.OrderStatus `gorm:"type:varchar(20);not null;default:'pending'"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// OrderNumberSequenceModel holds the last order number issued on a UTC day
type OrderNumberSequenceModel struct {
	Day       string `gorm:"type:varchar(8);primaryKey"`
	LastValue int64  `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderNumberSequenceModel) TableName() string {
	return "order_number_sequences"
}

// ToDomain converts the persistence model to a domain Order
func (m *OrderModel) ToDomain() *trade.Order {
	return &trade.Order{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		OrderNumber:       m.OrderNumber,
		CustomerID:        m.CustomerID,
		PaymentReference:  m.PaymentReference,
		Currency:          m.Currency,
		Total:             m.Total,
		Status:            m.Status,
	}
}

// FromDomain populates the persistence model from a domain Order
func (m *OrderModel) FromDomain(o *trade.Order) {
	m.FromDomainAggregateRoot(o.BaseAggregateRoot)
	m.OrderNumber = o.OrderNumber
	m.CustomerID = o.CustomerID
	m.PaymentReference = o.PaymentReference
	m.Currency = o.Currency
	m.Total = o.Total
	m.Status = o.Status
}

// VendorOrderModel is the persistence model for the VendorOrder aggregate
type VendorOrderModel struct {
	AggregateModel
	OrderID          uuid.UUID               `gorm:"type:uuid;not null;index"`
	OrderNumber      string                  `gorm:"type:varchar(50);not null"`
	VendorID         uuid.UUID               `gorm:"type:uuid;not null;index"`
	CustomerID       uuid.UUID               `gorm:"type:uuid;not null;index"`
	Currency         string                  `gorm:"type:varchar(3);not null"`
	OriginalSubtotal decimal.Decimal         `gorm:"type:decimal(18,4);not null"`
	Subtotal         decimal.Decimal         `gorm:"type:decimal(18,4);not null"`
	CommissionRate   decimal.Decimal         `gorm:"type:decimal(5,4);not null"`
	Commission       decimal.Decimal         `gorm:"type:decimal(18,4);not null"`
	Payout           decimal.Decimal         `gorm:"type:decimal(18,4);not null"`
	Status           trade.VendorOrderStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	Carrier          string                  `gorm:"type:varchar(100)"`
	TrackingNumber   string                  `gorm:"type:varchar(100)"`
	ReturnReason     string                  `gorm:"type:text"`
	ProcessingAt     *time.Time
	ShippedAt        *time.Time
	DeliveredAt      *time.Time
	ReturnedAt       *time.Time
	Items            []VendorOrderItemModel `gorm:"foreignKey:VendorOrderID;references:ID"`
}

// TableName returns the table name for GORM
func (VendorOrderModel) TableName() string {
	return "vendor_orders"
}

// ToDomain converts the persistence model and its items to a domain VendorOrder
func (m *VendorOrderModel) ToDomain() *trade.VendorOrder {
	items := make([]trade.VendorOrderItem, len(m.Items))
	for i := range m.Items {
		items[i] = m.Items[i].ToDomain()
	}
	return &trade.VendorOrder{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		OrderID:           m.OrderID,
		OrderNumber:       m.OrderNumber,
		VendorID:          m.VendorID,
		CustomerID:        m.CustomerID,
		Currency:          m.Currency,
		Items:             items,
		OriginalSubtotal:  m.OriginalSubtotal,
		Subtotal:          m.Subtotal,
		CommissionRate:    m.CommissionRate,
		Commission:        m.Commission,
		Payout:            m.Payout,
		Status:            m.Status,
		Carrier:           m.Carrier,
		TrackingNumber:    m.TrackingNumber,
		ReturnReason:      m.ReturnReason,
		ProcessingAt:      m.ProcessingAt,
		ShippedAt:         m.ShippedAt,
		DeliveredAt:       m.DeliveredAt,
		ReturnedAt:        m.ReturnedAt,
	}
}

// FromDomain populates the persistence model and its items from a domain VendorOrder
func (m *VendorOrderModel) FromDomain(vo *trade.VendorOrder) {
	m.FromDomainAggregateRoot(vo.BaseAggregateRoot)
	m.OrderID = vo.OrderID
	m.OrderNumber = vo.OrderNumber
	m.VendorID = vo.VendorID
	m.CustomerID = vo.CustomerID
	m.Currency = vo.Currency
	m.OriginalSubtotal = vo.OriginalSubtotal
	m.Subtotal = vo.Subtotal
	m.CommissionRate = vo.CommissionRate
	m.Commission = vo.Commission
	m.Payout = vo.Payout
	m.Status = vo.Status
	m.Carrier = vo.Carrier
	m.TrackingNumber = vo.TrackingNumber
	m.ReturnReason = vo.ReturnReason
	m.ProcessingAt = vo.ProcessingAt
	m.ShippedAt = vo.ShippedAt
	m.DeliveredAt = vo.DeliveredAt
	m.ReturnedAt = vo.ReturnedAt
	m.Items = make([]VendorOrderItemModel, len(vo.Items))
	for i, item := range vo.Items {
		m.Items[i] = VendorOrderItemModel{
			ID:            item.ID,
			VendorOrderID: vo.ID,
			ProductID:     item.ProductID,
			SKU:           item.SKU,
			Name:          item.Name,
			UnitPrice:     item.UnitPrice,
			Quantity:      item.Quantity,
			Amount:        item.Amount,
		}
	}
}

// TransitionColumns are the columns a fulfillment transition may change.
// Items and checkout snapshots are immutable after creation.
func (m *VendorOrderModel) TransitionColumns() map[string]interface{} {
	return map[string]interface{}{
		"status":          m.Status,
		"subtotal":        m.Subtotal,
		"commission":      m.Commission,
		"payout":          m.Payout,
		"carrier":         m.Carrier,
		"tracking_number": m.TrackingNumber,
		"return_reason":   m.ReturnReason,
		"processing_at":   m.ProcessingAt,
		"shipped_at":      m.ShippedAt,
		"delivered_at":    m.DeliveredAt,
		"returned_at":     m.ReturnedAt,
		"updated_at":      m.UpdatedAt,
		"version":         m.Version,
	}
}

// VendorOrderItemModel is the persistence model for a vendor order line snapshot
type VendorOrderItemModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key"`
	VendorOrderID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID     uuid.UUID       `gorm:"type:uuid;not null"`
	SKU           string          `gorm:"type:varchar(100);not null"`
	Name          string          `gorm:"type:varchar(200);not null"`
	UnitPrice     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Quantity      int             `gorm:"not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (VendorOrderItemModel) TableName() string {
	return "vendor_order_items"
}

// ToDomain converts the persistence model to a domain VendorOrderItem
func (m *VendorOrderItemModel) ToDomain() trade.VendorOrderItem {
	return trade.VendorOrderItem{
		ID:        m.ID,
		ProductID: m.ProductID,
		SKU:       m.SKU,
		Name:      m.Name,
		UnitPrice: m.UnitPrice,
		Quantity:  m.Quantity,
		Amount:    m.Amount,
	}
}
