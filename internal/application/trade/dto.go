package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/trade"
)

// CreateOrderRequest represents an authorized cart handed over by checkout
type CreateOrderRequest struct {
	PaymentReference string                 `json:"payment_reference" binding:"required,min=1,max=200"`
	Items            []CreateOrderItemInput `json:"items" binding:"required,min=1,dive"`
}

// CreateOrderItemInput represents one cart line
type CreateOrderItemInput struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

// ShipOrderRequest represents a request to mark a vendor order shipped
type ShipOrderRequest struct {
	Carrier        string `json:"carrier" binding:"required,min=1,max=100"`
	TrackingNumber string `json:"tracking_number" binding:"required,min=1,max=100"`
}

// ReturnOrderRequest represents a request to mark a vendor order returned
type ReturnOrderRequest struct {
	Reason string `json:"reason" binding:"required,min=1,max=500"`
}

// VendorOrderListFilter represents filter options for a vendor's orders
type VendorOrderListFilter struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Status   string `form:"status" binding:"omitempty,oneof=pending processing shipped delivered returned"`
}

// OrderListFilter represents filter options for a customer's own orders
type OrderListFilter struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Search   string `form:"search" binding:"omitempty,max=50"`
	Status   string `form:"status" binding:"omitempty,oneof=pending processing shipped completed returned"`
	OrderBy  string `form:"order_by" binding:"omitempty,oneof=created_at order_number status total"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc ASC DESC"`
}

// VendorOrderItemResponse represents a vendor order line in API responses
type VendorOrderItemResponse struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"product_id"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Amount    decimal.Decimal `json:"amount"`
}

// VendorOrderResponse represents a vendor order in API responses
type VendorOrderResponse struct {
	ID               uuid.UUID                 `json:"id"`
	OrderID          uuid.UUID                 `json:"order_id"`
	OrderNumber      string                    `json:"order_number"`
	VendorID         uuid.UUID                 `json:"vendor_id"`
	CustomerID       uuid.UUID                 `json:"customer_id"`
	Currency         string                    `json:"currency"`
	Items            []VendorOrderItemResponse `json:"items"`
	ItemCount        int                       `json:"item_count"`
	OriginalSubtotal decimal.Decimal           `json:"original_subtotal"`
	Subtotal         decimal.Decimal           `json:"subtotal"`
	CommissionRate   decimal.Decimal           `json:"commission_rate"`
	Commission       decimal.Decimal           `json:"commission"`
	Payout           decimal.Decimal           `json:"payout"`
	Status           string                    `json:"status"`
	Carrier          string                    `json:"carrier,omitempty"`
	TrackingNumber   string                    `json:"tracking_number,omitempty"`
	ReturnReason     string                    `json:"return_reason,omitempty"`
	ProcessingAt     *time.Time                `json:"processing_at,omitempty"`
	ShippedAt        *time.Time                `json:"shipped_at,omitempty"`
	DeliveredAt      *time.Time                `json:"delivered_at,omitempty"`
	ReturnedAt       *time.Time                `json:"returned_at,omitempty"`
	CreatedAt        time.Time                 `json:"created_at"`
	UpdatedAt        time.Time                 `json:"updated_at"`
	Version          int                       `json:"version"`
}

// OrderResponse represents a customer order with its vendor orders
type OrderResponse struct {
	ID               uuid.UUID             `json:"id"`
	OrderNumber      string                `json:"order_number"`
	CustomerID       uuid.UUID             `json:"customer_id"`
	PaymentReference string                `json:"payment_reference"`
	Currency         string                `json:"currency"`
	Total            decimal.Decimal       `json:"total"`
	Status           string                `json:"status"`
	VendorOrders     []VendorOrderResponse `json:"vendor_orders"`
	CreatedAt        time.Time             `json:"created_at"`
	UpdatedAt        time.Time             `json:"updated_at"`
}

// OrderSummaryResponse represents an order in list responses
type OrderSummaryResponse struct {
	ID          uuid.UUID       `json:"id"`
	OrderNumber string          `json:"order_number"`
	Currency    string          `json:"currency"`
	Total       decimal.Decimal `json:"total"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ToVendorOrderResponse converts a domain VendorOrder to VendorOrderResponse
func ToVendorOrderResponse(vo *trade.VendorOrder) VendorOrderResponse {
	items := make([]VendorOrderItemResponse, len(vo.Items))
	for i, item := range vo.Items {
		items[i] = VendorOrderItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			SKU:       item.SKU,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
			Amount:    item.Amount,
		}
	}
	return VendorOrderResponse{
		ID:               vo.ID,
		OrderID:          vo.OrderID,
		OrderNumber:      vo.OrderNumber,
		VendorID:         vo.VendorID,
		CustomerID:       vo.CustomerID,
		Currency:         vo.Currency,
		Items:            items,
		ItemCount:        vo.ItemCount(),
		OriginalSubtotal: vo.OriginalSubtotal,
		Subtotal:         vo.Subtotal,
		CommissionRate:   vo.CommissionRate,
		Commission:       vo.Commission,
		Payout:           vo.Payout,
		Status:           vo.Status.String(),
		Carrier:          vo.Carrier,
		TrackingNumber:   vo.TrackingNumber,
		ReturnReason:     vo.ReturnReason,
		ProcessingAt:     vo.ProcessingAt,
		ShippedAt:        vo.ShippedAt,
		DeliveredAt:      vo.DeliveredAt,
		ReturnedAt:       vo.ReturnedAt,
		CreatedAt:        vo.CreatedAt,
		UpdatedAt:        vo.UpdatedAt,
		Version:          vo.Version,
	}
}

// ToVendorOrderResponses converts a slice of vendor orders to responses
func ToVendorOrderResponses(vendorOrders []trade.VendorOrder) []VendorOrderResponse {
	responses := make([]VendorOrderResponse, len(vendorOrders))
	for i := range vendorOrders {
		responses[i] = ToVendorOrderResponse(&vendorOrders[i])
	}
	return responses
}

// ToOrderResponse converts an order and its vendor orders to OrderResponse
func ToOrderResponse(order *trade.Order, vendorOrders []trade.VendorOrder) OrderResponse {
	return OrderResponse{
		ID:               order.ID,
		OrderNumber:      order.OrderNumber,
		CustomerID:       order.CustomerID,
		PaymentReference: order.PaymentReference,
		Currency:         order.Currency,
		Total:            order.Total,
		Status:           order.Status.String(),
		VendorOrders:     ToVendorOrderResponses(vendorOrders),
		CreatedAt:        order.CreatedAt,
		UpdatedAt:        order.UpdatedAt,
	}
}

// ToOrderSummaryResponses converts orders to list responses
func ToOrderSummaryResponses(orders []trade.Order) []OrderSummaryResponse {
	responses := make([]OrderSummaryResponse, len(orders))
	for i, o := range orders {
		responses[i] = OrderSummaryResponse{
			ID:          o.ID,
			OrderNumber: o.OrderNumber,
			Currency:    o.Currency,
			Total:       o.Total,
			Status:      o.Status.String(),
			CreatedAt:   o.CreatedAt,
			UpdatedAt:   o.UpdatedAt,
		}
	}
	return responses
}
