package trade

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/shared"
)

// OrderStatus is the customer-facing roll-up of the vendor orders' statuses
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusReturned   OrderStatus = "returned"
)

// String returns the string representation of the status
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid reports whether s is a known order status
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped, OrderStatusCompleted, OrderStatusReturned:
		return true
	}
	return false
}

// RollUpStatus derives the order status from its vendor orders
func RollUpStatus(statuses []VendorOrderStatus) OrderStatus {
	if len(statuses) == 0 {
		return OrderStatusPending
	}
	allPending, allReturned, allTerminal, allShippedOrLater := true, true, true, true
	for _, s := range statuses {
		if s != VendorOrderStatusPending {
			allPending = false
		}
		if s != VendorOrderStatusReturned {
			allReturned = false
		}
		if !s.IsTerminal() {
			allTerminal = false
		}
		if s == VendorOrderStatusPending || s == VendorOrderStatusProcessing {
			allShippedOrLater = false
		}
	}
	switch {
	case allPending:
		return OrderStatusPending
	case allReturned:
		return OrderStatusReturned
	case allTerminal:
		return OrderStatusCompleted
	case allShippedOrLater:
		return OrderStatusShipped
	default:
		return OrderStatusProcessing
	}
}

// CartLine is one authorized cart entry, resolved against the catalog
type CartLine struct {
	ProductID uuid.UUID
	VendorID  uuid.UUID
	SKU       string
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
}

// Order is the customer-facing aggregate created at checkout.
// Apart from the status roll-up it never changes after creation.
type Order struct {
	shared.BaseAggregateRoot
	OrderNumber      string
	CustomerID       uuid.UUID
	PaymentReference string
	Currency         string
	Total            decimal.Decimal
	Status           OrderStatus
}

// RateFunc returns the commission rate for a vendor
type RateFunc func(vendorID uuid.UUID) (decimal.Decimal, error)

// PlaceOrder partitions an authorized cart into one vendor order per vendor.
// Prices and quantities are copied from the lines so later catalog changes do
// not reach existing orders. The order total is the sum of the vendor subtotals.
func PlaceOrder(customerID uuid.UUID, orderNumber, paymentReference, currency string, lines []CartLine, rateFor RateFunc) (*Order, []*VendorOrder, error) {
	if customerID == uuid.Nil {
		return nil, nil, shared.NewValidationError("customer_id", "customer is required")
	}
	paymentReference = strings.TrimSpace(paymentReference)
	if paymentReference == "" {
		return nil, nil, shared.NewValidationError("payment_reference", "payment authorization is required")
	}
	if len(lines) == 0 {
		return nil, nil, shared.NewValidationError("lines", "order must contain at least one line")
	}

	groups, vendorOrder, err := partitionByVendor(lines)
	if err != nil {
		return nil, nil, err
	}

	order := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       orderNumber,
		CustomerID:        customerID,
		PaymentReference:  paymentReference,
		Currency:          currency,
		Total:             decimal.Zero,
		Status:            OrderStatusPending,
	}

	vendorOrders := make([]*VendorOrder, 0, len(groups))
	for _, vendorID := range vendorOrder {
		rate, err := rateFor(vendorID)
		if err != nil {
			return nil, nil, err
		}
		vo, err := newVendorOrder(order, vendorID, groups[vendorID], rate)
		if err != nil {
			return nil, nil, err
		}
		vo.AddDomainEvent(NewVendorOrderCreatedEvent(vo))
		vendorOrders = append(vendorOrders, vo)
	}
	order.Total = SumSubtotals(vendorOrders)

	order.AddDomainEvent(NewOrderPlacedEvent(order, vendorOrders))

	return order, vendorOrders, nil
}

// partitionByVendor groups lines per vendor, keeping the first-seen vendor order
func partitionByVendor(lines []CartLine) (map[uuid.UUID][]VendorOrderItem, []uuid.UUID, error) {
	groups := make(map[uuid.UUID][]VendorOrderItem)
	seenProducts := make(map[uuid.UUID]bool, len(lines))
	var vendors []uuid.UUID

	for _, line := range lines {
		if line.ProductID == uuid.Nil || line.VendorID == uuid.Nil {
			return nil, nil, shared.NewValidationError("product_id", "line must reference a product and its vendor")
		}
		if seenProducts[line.ProductID] {
			return nil, nil, shared.NewValidationError("product_id", "product "+line.ProductID.String()+" appears more than once")
		}
		seenProducts[line.ProductID] = true
		if line.Quantity <= 0 {
			return nil, nil, shared.NewValidationError("quantity", "quantity must be positive")
		}
		if line.UnitPrice.IsNegative() {
			return nil, nil, shared.NewValidationError("unit_price", "unit price cannot be negative")
		}

		if _, ok := groups[line.VendorID]; !ok {
			vendors = append(vendors, line.VendorID)
		}
		groups[line.VendorID] = append(groups[line.VendorID], VendorOrderItem{
			ID:        uuid.New(),
			ProductID: line.ProductID,
			SKU:       line.SKU,
			Name:      line.Name,
			UnitPrice: line.UnitPrice,
			Quantity:  line.Quantity,
			Amount:    line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))).Round(2),
		})
	}

	return groups, vendors, nil
}

// RefreshStatus recomputes the roll-up from the current vendor orders.
// It returns true when the status changed.
func (o *Order) RefreshStatus(vendorOrders []VendorOrder) bool {
	statuses := make([]VendorOrderStatus, 0, len(vendorOrders))
	for _, vo := range vendorOrders {
		statuses = append(statuses, vo.Status)
	}
	next := RollUpStatus(statuses)
	if next == o.Status {
		return false
	}
	o.Status = next
	o.MarkModified(time.Now())
	return true
}

// SumSubtotals adds up the checkout subtotals of the given vendor orders
func SumSubtotals(vendorOrders []*VendorOrder) decimal.Decimal {
	total := decimal.Zero
	for _, vo := range vendorOrders {
		total = total.Add(vo.OriginalSubtotal)
	}
	return total
}

// SortByVendor orders vendor orders deterministically for presentation
func SortByVendor(vendorOrders []VendorOrder) {
	sort.SliceStable(vendorOrders, func(i, j int) bool {
		return vendorOrders[i].VendorID.String() < vendorOrders[j].VendorID.String()
	})
}
