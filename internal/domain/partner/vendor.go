package partner

import (
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/shared"
)

// VendorStatus represents the admission status of a vendor
type VendorStatus string

const (
	VendorStatusPending   VendorStatus = "pending"
	VendorStatusApproved  VendorStatus = "approved"
	VendorStatusRejected  VendorStatus = "rejected"
	VendorStatusSuspended VendorStatus = "suspended"
)

// IsValid checks if the status is a known vendor status
func (s VendorStatus) IsValid() bool {
	switch s {
	case VendorStatusPending, VendorStatusApproved, VendorStatusRejected, VendorStatusSuspended:
		return true
	}
	return false
}

// String returns the string representation of the status
func (s VendorStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status.
// Rejected is terminal; a suspended vendor only returns to approved through reinstatement.
func (s VendorStatus) CanTransitionTo(target VendorStatus) bool {
	switch s {
	case VendorStatusPending:
		return target == VendorStatusApproved || target == VendorStatusRejected
	case VendorStatusApproved:
		return target == VendorStatusSuspended
	case VendorStatusSuspended:
		return target == VendorStatusApproved
	default:
		return false
	}
}

// BusinessProfile holds the application data a vendor registers with
type BusinessProfile struct {
	BusinessName string
	ContactEmail string
	Phone        string
	TaxID        string
	Address      string
	Description  string
}

// Validate checks that the required business fields are present
func (p BusinessProfile) Validate() error {
	if strings.TrimSpace(p.BusinessName) == "" {
		return shared.NewValidationError("business_name", "business name is required")
	}
	if len(p.BusinessName) > 200 {
		return shared.NewValidationError("business_name", "business name cannot exceed 200 characters")
	}
	if strings.TrimSpace(p.ContactEmail) == "" {
		return shared.NewValidationError("contact_email", "contact email is required")
	}
	if _, err := mail.ParseAddress(p.ContactEmail); err != nil {
		return shared.NewValidationError("contact_email", "contact email is not a valid address")
	}
	return nil
}

// Vendor is the aggregate root of the vendor registry.
// Sales counters are only changed by delivery confirmation, through the repository's
// atomic increment, so admin status changes and deliveries never overwrite each other.
type Vendor struct {
	shared.BaseAggregateRoot
	OwnerID          uuid.UUID
	Profile          BusinessProfile
	Status           VendorStatus
	RejectionReason  string
	SuspensionReason string
	TotalOrders      int64
	TotalSales       decimal.Decimal
	Rating           decimal.Decimal
	ReviewedBy       *uuid.UUID
	ApprovedAt       *time.Time
	RejectedAt       *time.Time
	SuspendedAt      *time.Time
}

// NewVendor registers a vendor application in pending status
func NewVendor(ownerID uuid.UUID, profile BusinessProfile) (*Vendor, error) {
	if ownerID == uuid.Nil {
		return nil, shared.NewValidationError("owner_id", "owner is required")
	}
	profile.BusinessName = strings.TrimSpace(profile.BusinessName)
	profile.ContactEmail = strings.TrimSpace(profile.ContactEmail)
	if err := profile.Validate(); err != nil {
		return nil, err
	}

	vendor := &Vendor{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OwnerID:           ownerID,
		Profile:           profile,
		Status:            VendorStatusPending,
		TotalSales:        decimal.Zero,
		Rating:            decimal.Zero,
	}

	vendor.AddDomainEvent(NewVendorSubmittedEvent(vendor))

	return vendor, nil
}

// Approve admits a pending vendor. Approving an already approved vendor is a
// no-op and reports changed=false so retried admin actions succeed silently.
func (v *Vendor) Approve(reviewerID uuid.UUID) (changed bool, err error) {
	if v.Status == VendorStatusApproved {
		return false, nil
	}
	if v.Status != VendorStatusPending {
		return false, v.invalidTransition(VendorStatusApproved)
	}

	now := time.Now()
	v.Status = VendorStatusApproved
	v.ReviewedBy = &reviewerID
	v.ApprovedAt = &now
	v.touch(now)

	v.AddDomainEvent(NewVendorApprovedEvent(v))

	return true, nil
}

// Reject refuses a pending vendor application
func (v *Vendor) Reject(reviewerID uuid.UUID, reason string) error {
	if v.Status != VendorStatusPending {
		return v.invalidTransition(VendorStatusRejected)
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return shared.NewValidationError("reason", "rejection reason is required")
	}

	now := time.Now()
	v.Status = VendorStatusRejected
	v.RejectionReason = reason
	v.ReviewedBy = &reviewerID
	v.RejectedAt = &now
	v.touch(now)

	v.AddDomainEvent(NewVendorRejectedEvent(v))

	return nil
}

// Suspend blocks an approved vendor from taking new orders.
// Existing vendor orders are left untouched.
func (v *Vendor) Suspend(reviewerID uuid.UUID, reason string) error {
	if !v.Status.CanTransitionTo(VendorStatusSuspended) {
		return v.invalidTransition(VendorStatusSuspended)
	}

	now := time.Now()
	v.Status = VendorStatusSuspended
	v.SuspensionReason = strings.TrimSpace(reason)
	v.ReviewedBy = &reviewerID
	v.SuspendedAt = &now
	v.touch(now)

	v.AddDomainEvent(NewVendorSuspendedEvent(v))

	return nil
}

// Reinstate re-approves a suspended vendor
func (v *Vendor) Reinstate(reviewerID uuid.UUID) error {
	if v.Status != VendorStatusSuspended {
		return v.invalidTransition(VendorStatusApproved)
	}

	now := time.Now()
	v.Status = VendorStatusApproved
	v.SuspensionReason = ""
	v.ReviewedBy = &reviewerID
	v.ApprovedAt = &now
	v.SuspendedAt = nil
	v.touch(now)

	v.AddDomainEvent(NewVendorReinstatedEvent(v))

	return nil
}

// IsApproved reports whether the vendor may list and sell products
func (v *Vendor) IsApproved() bool {
	return v.Status == VendorStatusApproved
}

// RequireApproved returns VendorNotApproved unless the vendor is approved
func (v *Vendor) RequireApproved() error {
	if !v.IsApproved() {
		return shared.NewVendorNotApprovedError(v.ID, v.Status.String())
	}
	return nil
}

func (v *Vendor) touch(now time.Time) {
	v.MarkModified(now)
}

func (v *Vendor) invalidTransition(target VendorStatus) error {
	return shared.NewInvalidTransitionError(AggregateTypeVendor, v.ID, v.Status.String(), target.String())
}
