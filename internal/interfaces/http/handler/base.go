package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/shared"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/infrastructure/logger"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/interfaces/http/dto"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta sends a success response with pagination meta
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data any, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, total, page, pageSize))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// Error sends an error response with the status derived from code
func (h *BaseHandler) Error(c *gin.Context, code, message string) {
	c.JSON(dto.GetHTTPStatus(code), dto.NewErrorResponseWithRequestID(code, message, middleware.GetRequestID(c)))
}

// Unauthorized sends a 401 unauthorized response
func (h *BaseHandler) Unauthorized(c *gin.Context, message string) {
	h.Error(c, dto.ErrCodeUnauthorized, message)
}

// InternalError sends a 500 response without leaking the cause
func (h *BaseHandler) InternalError(c *gin.Context) {
	h.Error(c, dto.ErrCodeInternal, "An unexpected error occurred")
}

// HandleError maps domain errors to their status and envelope; anything
// else is logged and answered with INTERNAL_ERROR
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		var details any
		if len(domainErr.Details) > 0 {
			details = domainErr.Details
		}
		c.JSON(dto.GetHTTPStatus(domainErr.Code), dto.NewDetailedErrorResponse(
			domainErr.Code,
			domainErr.Message,
			middleware.GetRequestID(c),
			details,
		))
		return
	}

	logger.GetGinLogger(c).Error("Request failed",
		zap.String("route", c.FullPath()),
		zap.Error(err),
	)
	_ = c.Error(err)
	h.InternalError(c)
}

// actor returns the authenticated caller, answering 401 when absent
func (h *BaseHandler) actor(c *gin.Context) (shared.Actor, bool) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return shared.Actor{}, false
	}
	return actor, true
}

// pathID parses a uuid path parameter, answering VALIDATION_ERROR when malformed
func (h *BaseHandler) pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewDetailedErrorResponse(
			dto.ErrCodeValidation,
			"Invalid "+name+" format",
			middleware.GetRequestID(c),
			map[string]string{"field": name},
		))
		return uuid.Nil, false
	}
	return id, true
}

// bindJSON binds and validates the request body
func (h *BaseHandler) bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		middleware.HandleValidationError(c, err)
		return false
	}
	return true
}

// bindQuery binds and validates query parameters
func (h *BaseHandler) bindQuery(c *gin.Context, req any) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		middleware.HandleValidationError(c, err)
		return false
	}
	return true
}

// page normalizes paging values the way the services do
func page(p, size int) (int, int) {
	if p < 1 {
		p = dto.DefaultPage
	}
	if size < 1 {
		size = dto.DefaultPageSize
	}
	return p, size
}
