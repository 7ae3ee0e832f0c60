package handler

import (
	"github.com/gin-gonic/gin"
	partnerapp "github.com/talalabbas84/spledid-beauty-sub000/internal/application/partner"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/interfaces/http/dto"
)

// VendorHandler serves the vendor registry
type VendorHandler struct {
	BaseHandler
	vendorService *partnerapp.VendorService
}

// NewVendorHandler creates a new VendorHandler
func NewVendorHandler(vendorService *partnerapp.VendorService) *VendorHandler {
	return &VendorHandler{vendorService: vendorService}
}

// RegisterRoutes registers vendor routes; admin routes expect an admin-only group
func (h *VendorHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/vendors", h.Submit)
	rg.GET("/vendors/:id", h.GetByID)
}

// RegisterAdminRoutes registers the vendor review queue
func (h *VendorHandler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	admin.GET("/vendors", h.List)
	admin.GET("/vendors/pending", h.GetPending)
	admin.POST("/vendors/:id/approve", h.Approve)
	admin.POST("/vendors/:id/reject", h.Reject)
	admin.POST("/vendors/:id/suspend", h.Suspend)
	admin.POST("/vendors/:id/reinstate", h.Reinstate)
}

// Submit handles POST /vendors
// @Summary      Submit a vendor application
// @Description  Submit a business profile for admin review; the vendor starts pending
// @Tags         vendors
// @Accept       json
// @Produce      json
// @Param        request body partnerapp.SubmitVendorRequest true "Vendor application"
// @Success      201 {object} dto.Response{data=partnerapp.VendorResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /vendors [post]
func (h *VendorHandler) Submit(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var req partnerapp.SubmitVendorRequest
	if !h.bindJSON(c, &req) {
		return
	}

	vendor, err := h.vendorService.Submit(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, vendor)
}

// GetByID handles GET /vendors/:id
// @Summary      Get vendor by ID
// @Description  Retrieve a vendor; owners and admins only
// @Tags         vendors
// @Accept       json
// @Produce      json
// @Param        id path string true "Vendor ID" format(uuid)
// @Success      200 {object} dto.Response{data=partnerapp.VendorResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /vendors/{id} [get]
func (h *VendorHandler) GetByID(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	vendor, err := h.vendorService.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, vendor)
}

// List handles GET /admin/vendors
// @Summary      List vendors
// @Description  Retrieve a paginated list of vendors with optional filtering
// @Tags         vendors
// @Accept       json
// @Produce      json
// @Param        status query string false "Vendor status" Enums(pending, approved, rejected, suspended)
// @Param        search query string false "Search term (business name)"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} dto.Response{data=[]partnerapp.VendorResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/vendors [get]
func (h *VendorHandler) List(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var filter partnerapp.VendorListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	filter.Page, filter.PageSize = page(filter.Page, filter.PageSize)

	vendors, total, err := h.vendorService.List(c.Request.Context(), actor, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, vendors, total, filter.Page, filter.PageSize)
}

// GetPending handles GET /admin/vendors/pending
// @Summary      List pending vendors
// @Description  Retrieve vendor applications awaiting review, oldest first
// @Tags         vendors
// @Accept       json
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} dto.Response{data=[]partnerapp.VendorResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/vendors/pending [get]
func (h *VendorHandler) GetPending(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var filter dto.PageRequest
	if !h.bindQuery(c, &filter) {
		return
	}
	p, size := page(filter.Page, filter.PageSize)

	vendors, err := h.vendorService.GetPending(c.Request.Context(), actor, p, size)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, vendors)
}

// Approve handles POST /admin/vendors/:id/approve
// @Summary      Approve a vendor
// @Description  Approve a pending vendor application
// @Tags         vendors
// @Accept       json
// @Produce      json
// @Param        id path string true "Vendor ID" format(uuid)
// @Success      200 {object} dto.Response{data=partnerapp.VendorResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/vendors/{id}/approve [post]
func (h *VendorHandler) Approve(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	vendor, err := h.vendorService.Approve(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, vendor)
}

// Reject handles POST /admin/vendors/:id/reject
// @Summary      Reject a vendor
// @Description  Reject a pending vendor application with a reason
// @Tags         vendors
// @Accept       json
// @Produce      json
// @Param        id path string true "Vendor ID" format(uuid)
// @Param        request body partnerapp.RejectVendorRequest true "Rejection reason"
// @Success      200 {object} dto.Response{data=partnerapp.VendorResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/vendors/{id}/reject [post]
func (h *VendorHandler) Reject(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req partnerapp.RejectVendorRequest
	if !h.bindJSON(c, &req) {
		return
	}

	vendor, err := h.vendorService.Reject(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, vendor)
}

// Suspend handles POST /admin/vendors/:id/suspend. The body is optional.
// @Summary      Suspend a vendor
// @Description  Suspend an approved vendor; new orders for its products are refused
// @Tags         vendors
// @Accept       json
// @Produce      json
// @Param        id path string true "Vendor ID" format(uuid)
// @Param        request body partnerapp.SuspendVendorRequest false "Suspension reason"
// @Success      200 {object} dto.Response{data=partnerapp.VendorResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/vendors/{id}/suspend [post]
func (h *VendorHandler) Suspend(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req partnerapp.SuspendVendorRequest
	if c.Request.ContentLength != 0 && !h.bindJSON(c, &req) {
		return
	}

	vendor, err := h.vendorService.Suspend(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, vendor)
}

// Reinstate handles POST /admin/vendors/:id/reinstate
// @Summary      Reinstate a vendor
// @Description  Return a suspended vendor to approved
// @Tags         vendors
// @Accept       json
// @Produce      json
// @Param        id path string true "Vendor ID" format(uuid)
// @Success      200 {object} dto.Response{data=partnerapp.VendorResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/vendors/{id}/reinstate [post]
func (h *VendorHandler) Reinstate(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	vendor, err := h.vendorService.Reinstate(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, vendor)
}
