package partner

import (
	"github.com/google/uuid"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/shared"
)

// Aggregate type constant for Vendor
const AggregateTypeVendor = "Vendor"

// Event type constants for Vendor
const (
	EventTypeVendorSubmitted  = "VendorSubmitted"
	EventTypeVendorApproved   = "VendorApproved"
	EventTypeVendorRejected   = "VendorRejected"
	EventTypeVendorSuspended  = "VendorSuspended"
	EventTypeVendorReinstated = "VendorReinstated"
)

// VendorSubmittedEvent is published when a vendor application is registered
type VendorSubmittedEvent struct {
	shared.BaseDomainEvent
	VendorID     uuid.UUID `json:"vendor_id"`
	OwnerID      uuid.UUID `json:"owner_id"`
	BusinessName string    `json:"business_name"`
}

// NewVendorSubmittedEvent creates a new VendorSubmittedEvent
func NewVendorSubmittedEvent(v *Vendor) *VendorSubmittedEvent {
	return &VendorSubmittedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeVendorSubmitted, AggregateTypeVendor, v.ID),
		VendorID:        v.ID,
		OwnerID:         v.OwnerID,
		BusinessName:    v.Profile.BusinessName,
	}
}

// VendorStatusEvent carries an admission decision
type VendorStatusEvent struct {
	shared.BaseDomainEvent
	VendorID   uuid.UUID    `json:"vendor_id"`
	Status     VendorStatus `json:"status"`
	Reason     string       `json:"reason,omitempty"`
	ReviewedBy *uuid.UUID   `json:"reviewed_by,omitempty"`
}

func newVendorStatusEvent(eventType string, v *Vendor, reason string) *VendorStatusEvent {
	return &VendorStatusEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, AggregateTypeVendor, v.ID),
		VendorID:        v.ID,
		Status:          v.Status,
		Reason:          reason,
		ReviewedBy:      v.ReviewedBy,
	}
}

// NewVendorApprovedEvent creates the event for an approved vendor
func NewVendorApprovedEvent(v *Vendor) *VendorStatusEvent {
	return newVendorStatusEvent(EventTypeVendorApproved, v, "")
}

// NewVendorRejectedEvent creates the event for a rejected vendor
func NewVendorRejectedEvent(v *Vendor) *VendorStatusEvent {
	return newVendorStatusEvent(EventTypeVendorRejected, v, v.RejectionReason)
}

// NewVendorSuspendedEvent creates the event for a suspended vendor
func NewVendorSuspendedEvent(v *Vendor) *VendorStatusEvent {
	return newVendorStatusEvent(EventTypeVendorSuspended, v, v.SuspensionReason)
}

// NewVendorReinstatedEvent creates the event for a reinstated vendor
func NewVendorReinstatedEvent(v *Vendor) *VendorStatusEvent {
	return newVendorStatusEvent(EventTypeVendorReinstated, v, "")
}
