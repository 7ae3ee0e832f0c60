package handler

import (
	"github.com/gin-gonic/gin"
	tradeapp "github.com/talalabbas84/spledid-beauty-sub000/internal/application/trade"
)

// OrderHandler serves order placement and vendor order fulfillment
type OrderHandler struct {
	BaseHandler
	orderService       *tradeapp.OrderService
	fulfillmentService *tradeapp.FulfillmentService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *tradeapp.OrderService, fulfillmentService *tradeapp.FulfillmentService) *OrderHandler {
	return &OrderHandler{
		orderService:       orderService,
		fulfillmentService: fulfillmentService,
	}
}

// RegisterRoutes registers order and vendor order routes
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/orders", h.CreateOrder)
	rg.GET("/orders", h.ListOrders)
	rg.GET("/orders/:id", h.GetOrder)

	rg.GET("/vendors/:id/orders", h.ListVendorOrders)
	rg.GET("/vendor-orders/:id", h.GetVendorOrder)
	rg.POST("/vendor-orders/:id/processing", h.MarkProcessing)
	rg.POST("/vendor-orders/:id/ship", h.Ship)
	rg.POST("/vendor-orders/:id/deliver", h.ConfirmDelivery)
	rg.POST("/vendor-orders/:id/return", h.MarkReturned)
}

// CreateOrder handles POST /orders
// @Summary      Place an order
// @Description  Split an authorized cart into one vendor order per vendor
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        request body tradeapp.CreateOrderRequest true "Cart and payment authorization"
// @Success      201 {object} dto.Response{data=tradeapp.OrderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /orders [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var req tradeapp.CreateOrderRequest
	if !h.bindJSON(c, &req) {
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, order)
}

// ListOrders handles GET /orders, the calling customer's order history
// @Summary      List my orders
// @Description  Retrieve the calling customer's orders, newest first
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        status query string false "Order status" Enums(pending, processing, shipped, completed, returned)
// @Param        search query string false "Search term (order number)"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Param        order_by query string false "Order by field" default(created_at)
// @Param        order_dir query string false "Order direction" Enums(asc, desc) default(desc)
// @Success      200 {object} dto.Response{data=[]tradeapp.OrderSummaryResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var filter tradeapp.OrderListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	filter.Page, filter.PageSize = page(filter.Page, filter.PageSize)

	orders, total, err := h.orderService.ListOrders(c.Request.Context(), actor, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, orders, total, filter.Page, filter.PageSize)
}

// GetOrder handles GET /orders/:id
// @Summary      Get order by ID
// @Description  Retrieve an order with its vendor orders
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {object} dto.Response{data=tradeapp.OrderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	orderID, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), actor, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// ListVendorOrders handles GET /vendors/:id/orders
// @Summary      List vendor orders
// @Description  Retrieve a vendor's orders with optional status filter
// @Tags         vendor-orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Vendor ID" format(uuid)
// @Param        status query string false "Vendor order status" Enums(pending, processing, shipped, delivered, returned)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} dto.Response{data=[]tradeapp.VendorOrderResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /vendors/{id}/orders [get]
func (h *OrderHandler) ListVendorOrders(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	vendorID, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var filter tradeapp.VendorOrderListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	filter.Page, filter.PageSize = page(filter.Page, filter.PageSize)

	orders, total, err := h.fulfillmentService.GetVendorOrders(c.Request.Context(), actor, vendorID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, orders, total, filter.Page, filter.PageSize)
}

// GetVendorOrder handles GET /vendor-orders/:id
// @Summary      Get vendor order by ID
// @Description  Retrieve a vendor order with its items and money split
// @Tags         vendor-orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Vendor order ID" format(uuid)
// @Success      200 {object} dto.Response{data=tradeapp.VendorOrderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /vendor-orders/{id} [get]
func (h *OrderHandler) GetVendorOrder(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	vo, err := h.fulfillmentService.GetVendorOrder(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, vo)
}

// MarkProcessing handles POST /vendor-orders/:id/processing
// @Summary      Mark vendor order processing
// @Description  Move a pending vendor order to processing
// @Tags         vendor-orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Vendor order ID" format(uuid)
// @Success      200 {object} dto.Response{data=tradeapp.VendorOrderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /vendor-orders/{id}/processing [post]
func (h *OrderHandler) MarkProcessing(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	vo, err := h.fulfillmentService.MarkProcessing(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, vo)
}

// Ship handles POST /vendor-orders/:id/ship
// @Summary      Ship vendor order
// @Description  Record carrier and tracking number and move to shipped
// @Tags         vendor-orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Vendor order ID" format(uuid)
// @Param        request body tradeapp.ShipOrderRequest true "Shipment details"
// @Success      200 {object} dto.Response{data=tradeapp.VendorOrderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /vendor-orders/{id}/ship [post]
func (h *OrderHandler) Ship(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req tradeapp.ShipOrderRequest
	if !h.bindJSON(c, &req) {
		return
	}

	vo, err := h.fulfillmentService.Ship(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, vo)
}

// ConfirmDelivery handles POST /vendor-orders/:id/deliver
// @Summary      Confirm delivery
// @Description  Mark a shipped vendor order delivered and settle commission
// @Tags         vendor-orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Vendor order ID" format(uuid)
// @Success      200 {object} dto.Response{data=tradeapp.VendorOrderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /vendor-orders/{id}/deliver [post]
func (h *OrderHandler) ConfirmDelivery(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	vo, err := h.fulfillmentService.ConfirmDelivery(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, vo)
}

// MarkReturned handles POST /vendor-orders/:id/return
// @Summary      Mark vendor order returned
// @Description  Return a shipped or delivered vendor order; money fields drop to zero
// @Tags         vendor-orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Vendor order ID" format(uuid)
// @Param        request body tradeapp.ReturnOrderRequest true "Return reason"
// @Success      200 {object} dto.Response{data=tradeapp.VendorOrderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /vendor-orders/{id}/return [post]
func (h *OrderHandler) MarkReturned(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req tradeapp.ReturnOrderRequest
	if !h.bindJSON(c, &req) {
		return
	}

	vo, err := h.fulfillmentService.MarkReturned(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, vo)
}
