package handler

import (
	"github.com/gin-gonic/gin"
	reportapp "github.com/talalabbas84/spledid-beauty-sub000/internal/application/report"
)

// DashboardHandler serves the admin back-office overview
type DashboardHandler struct {
	BaseHandler
	dashboardService *reportapp.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *reportapp.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// RegisterAdminRoutes registers the dashboard route
func (h *DashboardHandler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	admin.GET("/dashboard", h.GetDashboard)
}

// GetDashboard handles GET /admin/dashboard
// @Summary      Get admin dashboard
// @Description  Marketplace-wide counts of vendors, listings, orders, disputes and money
// @Tags         dashboard
// @Accept       json
// @Produce      json
// @Success      200 {object} dto.Response{data=report.Dashboard}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/dashboard [get]
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	dashboard, err := h.dashboardService.GetDashboard(c.Request.Context(), actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dashboard)
}
