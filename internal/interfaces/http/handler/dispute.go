package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	disputeapp "github.com/talalabbas84/spledid-beauty-sub000/internal/application/dispute"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/shared"
)

// DisputeHandler serves dispute intake and arbitration
type DisputeHandler struct {
	BaseHandler
	disputeService *disputeapp.DisputeService
}

// NewDisputeHandler creates a new DisputeHandler
func NewDisputeHandler(disputeService *disputeapp.DisputeService) *DisputeHandler {
	return &DisputeHandler{disputeService: disputeService}
}

// RegisterRoutes registers dispute routes open to the parties of an order
func (h *DisputeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/vendor-orders/:id/disputes", h.Open)
	rg.GET("/vendor-orders/:id/disputes", h.ListForVendorOrder)
	rg.GET("/disputes/:id", h.GetByID)
	rg.POST("/disputes/:id/evidence", h.AttachEvidence)
}

// RegisterAdminRoutes registers arbitration routes
func (h *DisputeHandler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	admin.GET("/disputes/open", h.GetOpen)
	admin.POST("/disputes/:id/investigate", h.MarkInvestigating)
	admin.POST("/disputes/:id/resolve", h.Resolve)
	admin.POST("/disputes/:id/close", h.Close)
}

// Open handles POST /vendor-orders/:id/disputes
// @Summary      Open a dispute
// @Description  Open a dispute against a shipped or delivered vendor order
// @Tags         disputes
// @Accept       json
// @Produce      json
// @Param        id path string true "Vendor order ID" format(uuid)
// @Param        request body disputeapp.OpenDisputeRequest true "Dispute claim"
// @Success      201 {object} dto.Response{data=disputeapp.DisputeResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /vendor-orders/{id}/disputes [post]
func (h *DisputeHandler) Open(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	vendorOrderID, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req disputeapp.OpenDisputeRequest
	if !h.bindJSON(c, &req) {
		return
	}

	d, err := h.disputeService.Open(c.Request.Context(), actor, vendorOrderID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, d)
}

// ListForVendorOrder handles GET /vendor-orders/:id/disputes
// @Summary      List disputes for a vendor order
// @Description  Retrieve every dispute raised on a vendor order
// @Tags         disputes
// @Accept       json
// @Produce      json
// @Param        id path string true "Vendor order ID" format(uuid)
// @Success      200 {object} dto.Response{data=[]disputeapp.DisputeResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /vendor-orders/{id}/disputes [get]
func (h *DisputeHandler) ListForVendorOrder(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	vendorOrderID, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	disputes, err := h.disputeService.ListForVendorOrder(c.Request.Context(), actor, vendorOrderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, disputes)
}

// GetByID handles GET /disputes/:id
// @Summary      Get dispute by ID
// @Description  Retrieve a dispute with its evidence
// @Tags         disputes
// @Accept       json
// @Produce      json
// @Param        id path string true "Dispute ID" format(uuid)
// @Success      200 {object} dto.Response{data=disputeapp.DisputeResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /disputes/{id} [get]
func (h *DisputeHandler) GetByID(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	d, err := h.disputeService.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, d)
}

// AttachEvidence handles POST /disputes/:id/evidence
// @Summary      Attach evidence
// @Description  Register an evidence file and return a presigned upload URL
// @Tags         disputes
// @Accept       json
// @Produce      json
// @Param        id path string true "Dispute ID" format(uuid)
// @Param        request body disputeapp.AttachEvidenceRequest true "Evidence file metadata"
// @Success      201 {object} dto.Response{data=disputeapp.EvidenceUploadResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /disputes/{id}/evidence [post]
func (h *DisputeHandler) AttachEvidence(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req disputeapp.AttachEvidenceRequest
	if !h.bindJSON(c, &req) {
		return
	}

	upload, err := h.disputeService.AttachEvidence(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, upload)
}

// GetOpen handles GET /admin/disputes/open
// @Summary      List open disputes
// @Description  Retrieve unresolved disputes, most urgent first
// @Tags         disputes
// @Accept       json
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} dto.Response{data=[]disputeapp.DisputeResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/disputes/open [get]
func (h *DisputeHandler) GetOpen(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var filter disputeapp.DisputeListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	filter.Page, filter.PageSize = page(filter.Page, filter.PageSize)

	disputes, err := h.disputeService.GetOpen(c.Request.Context(), actor, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, disputes)
}

// MarkInvestigating handles POST /admin/disputes/:id/investigate
// @Summary      Investigate a dispute
// @Description  Move an open dispute to investigating
// @Tags         disputes
// @Accept       json
// @Produce      json
// @Param        id path string true "Dispute ID" format(uuid)
// @Success      200 {object} dto.Response{data=disputeapp.DisputeResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/disputes/{id}/investigate [post]
func (h *DisputeHandler) MarkInvestigating(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	d, err := h.disputeService.MarkInvestigating(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, d)
}

// Resolve handles POST /admin/disputes/:id/resolve
// @Summary      Resolve a dispute
// @Description  Decide a dispute in the customer's favour
// @Tags         disputes
// @Accept       json
// @Produce      json
// @Param        id path string true "Dispute ID" format(uuid)
// @Param        request body disputeapp.DecideDisputeRequest true "Resolution"
// @Success      200 {object} dto.Response{data=disputeapp.DisputeResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/disputes/{id}/resolve [post]
func (h *DisputeHandler) Resolve(c *gin.Context) {
	h.decide(c, h.disputeService.Resolve)
}

// Close handles POST /admin/disputes/:id/close
// @Summary      Close a dispute
// @Description  Close a dispute without granting the claim
// @Tags         disputes
// @Accept       json
// @Produce      json
// @Param        id path string true "Dispute ID" format(uuid)
// @Param        request body disputeapp.DecideDisputeRequest true "Resolution"
// @Success      200 {object} dto.Response{data=disputeapp.DisputeResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/disputes/{id}/close [post]
func (h *DisputeHandler) Close(c *gin.Context) {
	h.decide(c, h.disputeService.Close)
}

type decideFunc func(ctx context.Context, actor shared.Actor, id uuid.UUID, req disputeapp.DecideDisputeRequest) (*disputeapp.DisputeResponse, error)

func (h *DisputeHandler) decide(c *gin.Context, fn decideFunc) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req disputeapp.DecideDisputeRequest
	if !h.bindJSON(c, &req) {
		return
	}

	d, err := fn(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, d)
}
