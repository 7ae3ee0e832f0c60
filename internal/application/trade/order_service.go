package trade

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	appcatalog "github.com/talalabbas84/spledid-beauty-sub000/internal/application/catalog"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/finance"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/shared"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/trade"
	"go.uber.org/zap"
)

// ProductResolver resolves cart products against the catalog
type ProductResolver interface {
	ResolveOrderable(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]appcatalog.OrderableProduct, error)
}

// OrderService turns authorized carts into orders and vendor orders
type OrderService struct {
	orderRepo       trade.OrderRepository
	vendorOrderRepo trade.VendorOrderRepository
	products        ProductResolver
	rates           finance.CommissionRateProvider
	txScope         TransactionScope
	defaultCurrency string
	eventPublisher  shared.EventPublisher
	logger          *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(
	orderRepo trade.OrderRepository,
	vendorOrderRepo trade.VendorOrderRepository,
	products ProductResolver,
	rates finance.CommissionRateProvider,
	txScope TransactionScope,
	defaultCurrency string,
	logger *zap.Logger,
) *OrderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderService{
		orderRepo:       orderRepo,
		vendorOrderRepo: vendorOrderRepo,
		products:        products,
		rates:           rates,
		txScope:         txScope,
		defaultCurrency: defaultCurrency,
		logger:          logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *OrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// CreateOrder splits an authorized cart into one vendor order per vendor.
// Every product must be orderable; prices are copied from the catalog.
func (s *OrderService) CreateOrder(ctx context.Context, actor shared.Actor, req CreateOrderRequest) (*OrderResponse, error) {
	if err := actor.RequireRole("create order", shared.RoleCustomer); err != nil {
		return nil, err
	}
	if len(req.Items) == 0 {
		return nil, shared.NewValidationError("items", "order must contain at least one line")
	}

	productIDs := make([]uuid.UUID, 0, len(req.Items))
	seen := make(map[uuid.UUID]bool, len(req.Items))
	for _, item := range req.Items {
		if seen[item.ProductID] {
			return nil, shared.NewValidationError("product_id", "product "+item.ProductID.String()+" appears more than once")
		}
		seen[item.ProductID] = true
		productIDs = append(productIDs, item.ProductID)
	}

	products, err := s.products.ResolveOrderable(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	currency := ""
	lines := make([]trade.CartLine, 0, len(req.Items))
	for _, item := range req.Items {
		p := products[item.ProductID]
		if currency == "" {
			currency = p.Currency
		} else if p.Currency != currency {
			return nil, shared.NewValidationError("items", "all products in an order must share one currency")
		}
		lines = append(lines, trade.CartLine{
			ProductID: p.ProductID,
			VendorID:  p.VendorID,
			SKU:       p.SKU,
			Name:      p.Name,
			UnitPrice: p.Price,
			Quantity:  item.Quantity,
		})
	}
	if currency == "" {
		currency = s.defaultCurrency
	}

	rateFor := func(vendorID uuid.UUID) (decimal.Decimal, error) {
		return s.rates.CommissionRate(ctx, vendorID)
	}

	// Allocated outside the transaction so concurrent checkouts only contend
	// on the counter for one statement. A failed checkout leaves a gap.
	orderNumber, err := s.orderRepo.GenerateOrderNumber(ctx)
	if err != nil {
		return nil, err
	}

	var (
		order        *trade.Order
		vendorOrders []*trade.VendorOrder
	)
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		order, vendorOrders, err = trade.PlaceOrder(actor.UserID, orderNumber, req.PaymentReference, currency, lines, rateFor)
		if err != nil {
			return err
		}
		if err := repos.OrderRepo().Save(ctx, order); err != nil {
			return err
		}
		return repos.VendorOrderRepo().SaveAll(ctx, vendorOrders)
	})
	if err != nil {
		return nil, err
	}

	aggregates := make([]shared.AggregateRoot, 0, len(vendorOrders)+1)
	aggregates = append(aggregates, order)
	for _, vo := range vendorOrders {
		aggregates = append(aggregates, vo)
	}
	if err := shared.PublishAndClear(ctx, s.eventPublisher, aggregates...); err != nil {
		s.logger.Warn("failed to publish order events", zap.String("order_id", order.ID.String()), zap.Error(err))
	}

	s.logger.Info("order placed",
		zap.String("order_id", order.ID.String()),
		zap.String("order_number", order.OrderNumber),
		zap.Int("vendor_orders", len(vendorOrders)),
		zap.String("total", order.Total.String()),
	)

	values := make([]trade.VendorOrder, len(vendorOrders))
	for i, vo := range vendorOrders {
		values[i] = *vo
	}
	response := ToOrderResponse(order, values)
	return &response, nil
}

// GetOrder returns an order with its vendor orders to its customer or an admin
func (s *OrderService) GetOrder(ctx context.Context, actor shared.Actor, orderID uuid.UUID) (*OrderResponse, error) {
	if err := actor.Validate(); err != nil {
		return nil, err
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := actor.RequireCustomerOrAdmin(order.CustomerID, "view order"); err != nil {
		return nil, err
	}

	vendorOrders, err := s.vendorOrderRepo.FindByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	trade.SortByVendor(vendorOrders)

	response := ToOrderResponse(order, vendorOrders)
	return &response, nil
}

// ListOrders pages through the calling customer's own orders, newest first
func (s *OrderService) ListOrders(ctx context.Context, actor shared.Actor, filter OrderListFilter) ([]OrderSummaryResponse, int64, error) {
	if err := actor.RequireRole("list orders", shared.RoleCustomer); err != nil {
		return nil, 0, err
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		Search:   filter.Search,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
	}
	if domainFilter.OrderBy == "" {
		domainFilter.OrderBy = "created_at"
		domainFilter.OrderDir = "desc"
	}
	if filter.Status != "" {
		status := trade.OrderStatus(filter.Status)
		if !status.IsValid() {
			return nil, 0, shared.NewValidationError("status", "unknown order status")
		}
		domainFilter.Filters = map[string]interface{}{"status": status}
	}
	domainFilter = domainFilter.Normalize()

	orders, err := s.orderRepo.FindByCustomer(ctx, actor.UserID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.orderRepo.CountByCustomer(ctx, actor.UserID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToOrderSummaryResponses(orders), total, nil
}
