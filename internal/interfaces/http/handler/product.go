package handler

import (
	"github.com/gin-gonic/gin"
	catalogapp "github.com/talalabbas84/spledid-beauty-sub000/internal/application/catalog"
)

// ProductHandler serves product listing submission and review
type ProductHandler struct {
	BaseHandler
	listingService *catalogapp.ListingService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(listingService *catalogapp.ListingService) *ProductHandler {
	return &ProductHandler{listingService: listingService}
}

// RegisterRoutes registers vendor and shopper product routes
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/vendors/:id/products", h.Submit)
	rg.GET("/vendors/:id/products", h.ListVendorProducts)
	rg.POST("/products/:id/resubmit", h.Resubmit)
	rg.GET("/products/:id", h.GetByID)
	rg.GET("/products/:id/orderability", h.CheckOrderability)
}

// RegisterAdminRoutes registers the product review queue
func (h *ProductHandler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	admin.GET("/products/pending", h.GetPending)
	admin.POST("/products/:id/approve", h.Approve)
	admin.POST("/products/:id/reject", h.Reject)
}

// Submit handles POST /vendors/:id/products
// @Summary      Submit a product listing
// @Description  Submit a listing for an approved vendor; it starts pending review
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id path string true "Vendor ID" format(uuid)
// @Param        request body catalogapp.SubmitProductRequest true "Product listing"
// @Success      201 {object} dto.Response{data=catalogapp.ProductResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /vendors/{id}/products [post]
func (h *ProductHandler) Submit(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	vendorID, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req catalogapp.SubmitProductRequest
	if !h.bindJSON(c, &req) {
		return
	}

	product, err := h.listingService.Submit(c.Request.Context(), actor, vendorID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, product)
}

// Resubmit handles POST /products/:id/resubmit
// @Summary      Resubmit a rejected listing
// @Description  Create a new pending listing from a rejected one
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id path string true "Rejected listing ID" format(uuid)
// @Param        request body catalogapp.SubmitProductRequest true "Revised product listing"
// @Success      201 {object} dto.Response{data=catalogapp.ProductResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /products/{id}/resubmit [post]
func (h *ProductHandler) Resubmit(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	listingID, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req catalogapp.SubmitProductRequest
	if !h.bindJSON(c, &req) {
		return
	}

	product, err := h.listingService.Resubmit(c.Request.Context(), actor, listingID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, product)
}

// ListVendorProducts handles GET /vendors/:id/products
// @Summary      List vendor products
// @Description  Retrieve a vendor's listings
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id path string true "Vendor ID" format(uuid)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} dto.Response{data=[]catalogapp.ProductResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /vendors/{id}/products [get]
func (h *ProductHandler) ListVendorProducts(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	vendorID, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var filter catalogapp.ProductListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	filter.Page, filter.PageSize = page(filter.Page, filter.PageSize)

	products, err := h.listingService.ListVendorProducts(c.Request.Context(), actor, vendorID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, products)
}

// GetByID handles GET /products/:id
// @Summary      Get product by ID
// @Description  Retrieve a product listing
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id path string true "Listing ID" format(uuid)
// @Success      200 {object} dto.Response{data=catalogapp.ProductResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /products/{id} [get]
func (h *ProductHandler) GetByID(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	listingID, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	product, err := h.listingService.GetByID(c.Request.Context(), actor, listingID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// CheckOrderability handles GET /products/:id/orderability
// @Summary      Check orderability
// @Description  Report whether a listing can be ordered right now and why not
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id path string true "Listing ID" format(uuid)
// @Success      200 {object} dto.Response{data=catalogapp.OrderabilityResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /products/{id}/orderability [get]
func (h *ProductHandler) CheckOrderability(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	listingID, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	result, err := h.listingService.CheckOrderability(c.Request.Context(), actor, listingID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// GetPending handles GET /admin/products/pending
// @Summary      List pending listings
// @Description  Retrieve listings awaiting review, oldest first
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} dto.Response{data=[]catalogapp.ProductResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/products/pending [get]
func (h *ProductHandler) GetPending(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var filter catalogapp.ProductListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	filter.Page, filter.PageSize = page(filter.Page, filter.PageSize)

	products, err := h.listingService.GetPending(c.Request.Context(), actor, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, products)
}

// Approve handles POST /admin/products/:id/approve
// @Summary      Approve a listing
// @Description  Approve a pending product listing
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id path string true "Listing ID" format(uuid)
// @Success      200 {object} dto.Response{data=catalogapp.ProductResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/products/{id}/approve [post]
func (h *ProductHandler) Approve(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	listingID, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	product, err := h.listingService.Approve(c.Request.Context(), actor, listingID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Reject handles POST /admin/products/:id/reject
// @Summary      Reject a listing
// @Description  Reject a pending product listing with a reason
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id path string true "Listing ID" format(uuid)
// @Param        request body catalogapp.RejectProductRequest true "Rejection reason"
// @Success      200 {object} dto.Response{data=catalogapp.ProductResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/products/{id}/reject [post]
func (h *ProductHandler) Reject(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	listingID, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req catalogapp.RejectProductRequest
	if !h.bindJSON(c, &req) {
		return
	}

	product, err := h.listingService.Reject(c.Request.Context(), actor, listingID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}
