package shared

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Error codes understood by every bounded context and by the HTTP layer.
const (
	CodeInvalidTransition   = "INVALID_TRANSITION"
	CodeNotFound            = "NOT_FOUND"
	CodeValidation          = "VALIDATION_ERROR"
	CodePermissionDenied    = "PERMISSION_DENIED"
	CodeVendorNotApproved   = "VENDOR_NOT_APPROVED"
	CodeConcurrencyConflict = "CONCURRENCY_CONFLICT"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is reports whether target is a DomainError carrying the same code, so that
// errors.Is(err, ErrNotFound) matches any not-found error regardless of message.
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// WithDetail returns a copy of the error with an additional context entry
func (e *DomainError) WithDetail(key, value string) *DomainError {
	details := make(map[string]string, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value
	return &DomainError{Code: e.Code, Message: e.Message, Details: details}
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewInvalidTransitionError reports a status precondition that was not met.
func NewInvalidTransitionError(entity string, id uuid.UUID, current, requested string) *DomainError {
	return &DomainError{
		Code:    CodeInvalidTransition,
		Message: fmt.Sprintf("cannot move %s %s from %s to %s", entity, id, current, requested),
		Details: map[string]string{
			"entity":          entity,
			"id":              id.String(),
			"current_state":   current,
			"requested_state": requested,
		},
	}
}

// NewNotFoundError reports an unknown entity id
func NewNotFoundError(entity string, id uuid.UUID) *DomainError {
	return &DomainError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s %s not found", entity, id),
		Details: map[string]string{
			"entity": entity,
			"id":     id.String(),
		},
	}
}

// NewValidationError reports a missing or malformed field
func NewValidationError(field, message string) *DomainError {
	return &DomainError{
		Code:    CodeValidation,
		Message: message,
		Details: map[string]string{"field": field},
	}
}

// NewPermissionDeniedError reports an actor that may not perform the operation
func NewPermissionDeniedError(actor Actor, operation string) *DomainError {
	return &DomainError{
		Code:    CodePermissionDenied,
		Message: fmt.Sprintf("%s may not %s", actor.Role, operation),
		Details: map[string]string{
			"role":      string(actor.Role),
			"operation": operation,
		},
	}
}

// NewVendorNotApprovedError reports an action blocked by the vendor's admission state
func NewVendorNotApprovedError(vendorID uuid.UUID, status string) *DomainError {
	return &DomainError{
		Code:    CodeVendorNotApproved,
		Message: fmt.Sprintf("vendor %s is %s, not approved", vendorID, status),
		Details: map[string]string{
			"entity":        "Vendor",
			"id":            vendorID.String(),
			"current_state": status,
		},
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError(CodeNotFound, "Resource not found")
	ErrInvalidTransition   = NewDomainError(CodeInvalidTransition, "Operation not allowed in current state")
	ErrValidation          = NewDomainError(CodeValidation, "Invalid input provided")
	ErrPermissionDenied    = NewDomainError(CodePermissionDenied, "Not allowed to perform this action")
	ErrVendorNotApproved   = NewDomainError(CodeVendorNotApproved, "Vendor is not approved")
	ErrConcurrencyConflict = NewDomainError(CodeConcurrencyConflict, "Resource was modified by another process")
)
