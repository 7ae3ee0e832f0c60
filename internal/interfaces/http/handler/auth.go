package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/infrastructure/auth"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/interfaces/http/middleware"
)

// AuthHandler exposes the caller's identity and token revocation
type AuthHandler struct {
	BaseHandler
	authenticator *auth.Authenticator
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authenticator *auth.Authenticator) *AuthHandler {
	return &AuthHandler{authenticator: authenticator}
}

// MeResponse describes the authenticated caller
type MeResponse struct {
	Role      string     `json:"role"`
	UserID    string     `json:"user_id"`
	VendorID  string     `json:"vendor_id,omitempty"`
	TokenID   string     `json:"token_id,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// RegisterRoutes registers auth routes
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/auth/me", h.Me)
	rg.POST("/auth/revoke", h.Revoke)
}

// Me handles GET /auth/me
// @Summary      Get current caller
// @Description  Describe the authenticated caller and its token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Success      200 {object} dto.Response{data=MeResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	resp := MeResponse{
		Role:   string(actor.Role),
		UserID: actor.UserID.String(),
	}
	if actor.VendorID != uuid.Nil {
		resp.VendorID = actor.VendorID.String()
	}
	if claims, ok := middleware.ClaimsFromContext(c); ok {
		resp.TokenID = claims.ID
		if claims.ExpiresAt != nil {
			exp := claims.ExpiresAt.Time
			resp.ExpiresAt = &exp
		}
	}
	h.Success(c, resp)
}

// Revoke handles POST /auth/revoke, blacklisting the presented token
// @Summary      Revoke token
// @Description  Blacklist the presented token until it expires
// @Tags         auth
// @Accept       json
// @Produce      json
// @Success      200 {object} dto.Response
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /auth/revoke [post]
func (h *AuthHandler) Revoke(c *gin.Context) {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	if err := h.authenticator.Revoke(c.Request.Context(), claims); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"revoked": true})
}
