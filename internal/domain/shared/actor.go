package shared

import (
	"github.com/google/uuid"
)

// Role identifies which surface an actor is acting through
type Role string

const (
	RoleCustomer Role = "customer"
	RoleVendor   Role = "vendor"
	RoleAdmin    Role = "admin"
)

// IsValid checks if the role is known
func (r Role) IsValid() bool {
	switch r {
	case RoleCustomer, RoleVendor, RoleAdmin:
		return true
	}
	return false
}

// Actor is the authenticated caller of a core operation.
// VendorID is only set for RoleVendor.
type Actor struct {
	Role     Role
	UserID   uuid.UUID
	VendorID uuid.UUID
}

// Customer builds a customer actor
func Customer(userID uuid.UUID) Actor {
	return Actor{Role: RoleCustomer, UserID: userID}
}

// VendorActor builds an actor acting for the given vendor
func VendorActor(userID, vendorID uuid.UUID) Actor {
	return Actor{Role: RoleVendor, UserID: userID, VendorID: vendorID}
}

// Admin builds a platform admin actor
func Admin(userID uuid.UUID) Actor {
	return Actor{Role: RoleAdmin, UserID: userID}
}

// IsAdmin reports whether the actor is a platform admin
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// ActsFor reports whether the actor is the given vendor
func (a Actor) ActsFor(vendorID uuid.UUID) bool {
	return a.Role == RoleVendor && a.VendorID != uuid.Nil && a.VendorID == vendorID
}

// Validate rejects actors without identity or with an unknown role
func (a Actor) Validate() error {
	if !a.Role.IsValid() {
		return NewDomainError(CodePermissionDenied, "unknown actor role")
	}
	if a.UserID == uuid.Nil {
		return NewDomainError(CodePermissionDenied, "actor has no identity")
	}
	if a.Role == RoleVendor && a.VendorID == uuid.Nil {
		return NewDomainError(CodePermissionDenied, "vendor actor has no vendor id")
	}
	return nil
}

// RequireAdmin fails unless the actor is an admin
func (a Actor) RequireAdmin(operation string) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if !a.IsAdmin() {
		return NewPermissionDeniedError(a, operation)
	}
	return nil
}

// RequireVendor fails unless the actor is the given vendor
func (a Actor) RequireVendor(vendorID uuid.UUID, operation string) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if !a.ActsFor(vendorID) {
		return NewPermissionDeniedError(a, operation)
	}
	return nil
}

// RequireVendorOrAdmin fails unless the actor is the given vendor or an admin
func (a Actor) RequireVendorOrAdmin(vendorID uuid.UUID, operation string) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if !a.IsAdmin() && !a.ActsFor(vendorID) {
		return NewPermissionDeniedError(a, operation)
	}
	return nil
}

// RequireCustomerOrAdmin fails unless the actor is the given customer or an admin
func (a Actor) RequireCustomerOrAdmin(customerID uuid.UUID, operation string) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if a.IsAdmin() {
		return nil
	}
	if a.Role != RoleCustomer || a.UserID != customerID {
		return NewPermissionDeniedError(a, operation)
	}
	return nil
}

// RequireRole fails unless the actor has one of the given roles
func (a Actor) RequireRole(operation string, roles ...Role) error {
	if err := a.Validate(); err != nil {
		return err
	}
	for _, r := range roles {
		if a.Role == r {
			return nil
		}
	}
	return NewPermissionDeniedError(a, operation)
}
