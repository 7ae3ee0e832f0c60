package handler

import (
	"github.com/gin-gonic/gin"
	financeapp "github.com/talalabbas84/spledid-beauty-sub000/internal/application/finance"
)

// PayoutHandler serves commission and payout queries
type PayoutHandler struct {
	BaseHandler
	payoutService *financeapp.PayoutService
}

// NewPayoutHandler creates a new PayoutHandler
func NewPayoutHandler(payoutService *financeapp.PayoutService) *PayoutHandler {
	return &PayoutHandler{payoutService: payoutService}
}

// RegisterRoutes registers vendor-facing payout routes
func (h *PayoutHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/vendor-orders/:id/payout-eligibility", h.GetEligibility)
	rg.GET("/vendors/:id/payouts/summary", h.GetSummary)
}

// RegisterAdminRoutes registers the settlement queue
func (h *PayoutHandler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	admin.GET("/vendors/:id/payouts/eligible", h.ListEligible)
}

// GetEligibility handles GET /vendor-orders/:id/payout-eligibility
// @Summary      Get payout eligibility
// @Description  Report whether a vendor order can be paid out and what holds it
// @Tags         payouts
// @Accept       json
// @Produce      json
// @Param        id path string true "Vendor order ID" format(uuid)
// @Success      200 {object} dto.Response{data=financeapp.PayoutEligibilityResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /vendor-orders/{id}/payout-eligibility [get]
func (h *PayoutHandler) GetEligibility(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	result, err := h.payoutService.IsPayoutEligible(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// GetSummary handles GET /vendors/:id/payouts/summary
// @Summary      Get vendor payout summary
// @Description  Aggregate delivered, held and pending payouts for a vendor
// @Tags         payouts
// @Accept       json
// @Produce      json
// @Param        id path string true "Vendor ID" format(uuid)
// @Success      200 {object} dto.Response{data=financeapp.PayoutSummaryResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /vendors/{id}/payouts/summary [get]
func (h *PayoutHandler) GetSummary(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	vendorID, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	summary, err := h.payoutService.GetVendorPayoutSummary(c.Request.Context(), actor, vendorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// ListEligible handles GET /admin/vendors/:id/payouts/eligible
// @Summary      List eligible payouts
// @Description  Retrieve a vendor's delivered orders with no unresolved dispute, oldest delivery first
// @Tags         payouts
// @Accept       json
// @Produce      json
// @Param        id path string true "Vendor ID" format(uuid)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} dto.Response{data=[]financeapp.PayoutEligibilityResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/vendors/{id}/payouts/eligible [get]
func (h *PayoutHandler) ListEligible(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	vendorID, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var filter financeapp.EligiblePayoutFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	filter.Page, filter.PageSize = page(filter.Page, filter.PageSize)

	payouts, err := h.payoutService.ListEligiblePayouts(c.Request.Context(), actor, vendorID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, payouts)
}
