package dto

import (
	"net/http"

	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/shared"
)

// Domain error codes, shared with shared.DomainError
const (
	ErrCodeInvalidTransition   = shared.CodeInvalidTransition
	ErrCodeNotFound            = shared.CodeNotFound
	ErrCodeValidation          = shared.CodeValidation
	ErrCodePermissionDenied    = shared.CodePermissionDenied
	ErrCodeVendorNotApproved   = shared.CodeVendorNotApproved
	ErrCodeConcurrencyConflict = shared.CodeConcurrencyConflict
)

// Transport error codes
const (
	ErrCodeInternal        = "INTERNAL_ERROR"
	ErrCodeUnauthorized    = "UNAUTHORIZED"
	ErrCodeTokenExpired    = "TOKEN_EXPIRED"
	ErrCodeTokenRevoked    = "TOKEN_REVOKED"
	ErrCodeRateLimited     = "RATE_LIMIT_EXCEEDED"
	ErrCodeRequestTooLarge = "REQUEST_TOO_LARGE"
	ErrCodeRouteNotFound   = "ROUTE_NOT_FOUND"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInvalidTransition:   http.StatusConflict,
	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeValidation:          http.StatusBadRequest,
	ErrCodePermissionDenied:    http.StatusForbidden,
	ErrCodeVendorNotApproved:   http.StatusUnprocessableEntity,
	ErrCodeConcurrencyConflict: http.StatusConflict,

	ErrCodeInternal:        http.StatusInternalServerError,
	ErrCodeUnauthorized:    http.StatusUnauthorized,
	ErrCodeTokenExpired:    http.StatusUnauthorized,
	ErrCodeTokenRevoked:    http.StatusUnauthorized,
	ErrCodeRateLimited:     http.StatusTooManyRequests,
	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,
	ErrCodeRouteNotFound:   http.StatusNotFound,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes map to 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
