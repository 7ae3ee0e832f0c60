package dispute

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/finance"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/shared"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/trade"
)

// Status represents the status of a dispute
type Status string

const (
	StatusOpen          Status = "open"
	StatusInvestigating Status = "investigating"
	StatusResolved      Status = "resolved"
	StatusClosed        Status = "closed"
)

// IsValid checks if the status is known
func (s Status) IsValid() bool {
	switch s {
	case StatusOpen, StatusInvestigating, StatusResolved, StatusClosed:
		return true
	}
	return false
}

// String returns the string representation of the status
func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether the dispute has been decided
func (s Status) IsTerminal() bool {
	return s == StatusResolved || s == StatusClosed
}

// CanTransitionTo checks the dispute graph:
//
//	open -> investigating -> resolved | closed
//	open -> resolved | closed
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusOpen:
		return target == StatusInvestigating || target == StatusResolved || target == StatusClosed
	case StatusInvestigating:
		return target == StatusResolved || target == StatusClosed
	default:
		return false
	}
}

// Type classifies what the customer is disputing
type Type string

const (
	TypeItemNotReceived Type = "item_not_received"
	TypeNotAsDescribed  Type = "not_as_described"
	TypeDamaged         Type = "damaged"
	TypeRefundRequest   Type = "refund_request"
	TypeOther           Type = "other"
)

// IsValid checks if the type is known
func (t Type) IsValid() bool {
	switch t {
	case TypeItemNotReceived, TypeNotAsDescribed, TypeDamaged, TypeRefundRequest, TypeOther:
		return true
	}
	return false
}

// Priority orders the admin work queue
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// IsValid checks if the priority is known
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Evidence is a file uploaded to object storage in support of a dispute
type Evidence struct {
	ID          uuid.UUID
	ObjectKey   string
	FileName    string
	ContentType string
	UploadedBy  uuid.UUID
	UploadedAt  time.Time
}

// Claim is the input for opening a dispute
type Claim struct {
	Type        Type
	Description string
	Amount      decimal.Decimal
	Priority    Priority
}

// Dispute is a claim raised against one vendor order. While it is open or
// under investigation the vendor order's payout is held.
type Dispute struct {
	shared.BaseAggregateRoot
	VendorOrderID   uuid.UUID
	OrderID         uuid.UUID
	VendorID        uuid.UUID
	CustomerID      uuid.UUID
	OpenedBy        uuid.UUID
	OpenedByRole    shared.Role
	Type            Type
	Description     string
	Amount          decimal.Decimal
	Priority        Priority
	Status          Status
	Resolution      string
	ResolvedBy      *uuid.UUID
	Evidence        []Evidence
	InvestigatingAt *time.Time
	ResolvedAt      *time.Time
	ClosedAt        *time.Time
}

// Open creates a dispute against a shipped or delivered vendor order
func Open(vo *trade.VendorOrder, openedBy shared.Actor, claim Claim) (*Dispute, error) {
	if !vo.Status.AcceptsDisputes() {
		return nil, shared.NewInvalidTransitionError(trade.AggregateTypeVendorOrder, vo.ID, vo.Status.String(), "disputed")
	}
	if !claim.Type.IsValid() {
		return nil, shared.NewValidationError("type", "unknown dispute type")
	}
	description := strings.TrimSpace(claim.Description)
	if description == "" {
		return nil, shared.NewValidationError("description", "description is required")
	}
	if !claim.Amount.IsPositive() {
		return nil, shared.NewValidationError("amount", "disputed amount must be positive")
	}
	if claim.Amount.GreaterThan(vo.OriginalSubtotal) {
		return nil, shared.NewValidationError("amount", "disputed amount exceeds the vendor order subtotal")
	}
	priority := claim.Priority
	if priority == "" {
		priority = PriorityMedium
	}
	if !priority.IsValid() {
		return nil, shared.NewValidationError("priority", "unknown priority")
	}

	d := &Dispute{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		VendorOrderID:     vo.ID,
		OrderID:           vo.OrderID,
		VendorID:          vo.VendorID,
		CustomerID:        vo.CustomerID,
		OpenedBy:          openedBy.UserID,
		OpenedByRole:      openedBy.Role,
		Type:              claim.Type,
		Description:       description,
		Amount:            claim.Amount.Round(finance.MoneyPlaces),
		Priority:          priority,
		Status:            StatusOpen,
	}

	d.AddDomainEvent(NewDisputeOpenedEvent(d))

	return d, nil
}

// MarkInvestigating moves an open dispute under investigation
func (d *Dispute) MarkInvestigating() error {
	if d.Status != StatusOpen {
		return d.invalidTransition(StatusInvestigating)
	}

	now := time.Now()
	d.InvestigatingAt = &now
	d.transition(StatusInvestigating, now)

	return nil
}

// Resolve decides the dispute with a resolution text
func (d *Dispute) Resolve(adminID uuid.UUID, resolution string) error {
	if err := d.decide(StatusResolved, adminID, resolution); err != nil {
		return err
	}
	now := d.UpdatedAt
	d.ResolvedAt = &now
	return nil
}

// Close ends the dispute without a decision in the customer's favour
func (d *Dispute) Close(adminID uuid.UUID, resolution string) error {
	if err := d.decide(StatusClosed, adminID, resolution); err != nil {
		return err
	}
	now := d.UpdatedAt
	d.ClosedAt = &now
	return nil
}

func (d *Dispute) decide(target Status, adminID uuid.UUID, resolution string) error {
	if !d.Status.CanTransitionTo(target) {
		return d.invalidTransition(target)
	}
	resolution = strings.TrimSpace(resolution)
	if resolution == "" {
		return shared.NewValidationError("resolution", "resolution is required")
	}

	d.Resolution = resolution
	d.ResolvedBy = &adminID
	d.transition(target, time.Now())

	return nil
}

// AddEvidence records an uploaded evidence object on an undecided dispute
func (d *Dispute) AddEvidence(uploadedBy uuid.UUID, objectKey, fileName, contentType string) (*Evidence, error) {
	if d.Status.IsTerminal() {
		return nil, d.invalidTransition("evidence_added")
	}
	if strings.TrimSpace(fileName) == "" {
		return nil, shared.NewValidationError("file_name", "file name is required")
	}

	now := time.Now()
	ev := Evidence{
		ID:          uuid.New(),
		ObjectKey:   objectKey,
		FileName:    fileName,
		ContentType: contentType,
		UploadedBy:  uploadedBy,
		UploadedAt:  now,
	}
	d.Evidence = append(d.Evidence, ev)
	d.MarkModified(now)

	return &ev, nil
}

// IsParticipant reports whether the actor is a party to the dispute
func (d *Dispute) IsParticipant(actor shared.Actor) bool {
	switch actor.Role {
	case shared.RoleAdmin:
		return true
	case shared.RoleCustomer:
		return actor.UserID == d.CustomerID
	case shared.RoleVendor:
		return actor.VendorID == d.VendorID
	}
	return false
}

// HoldID implements finance.PayoutHold
func (d *Dispute) HoldID() uuid.UUID {
	return d.ID
}

// BlocksPayout implements finance.PayoutHold
func (d *Dispute) BlocksPayout() bool {
	return !d.Status.IsTerminal()
}

func (d *Dispute) transition(target Status, now time.Time) {
	from := d.Status
	d.Status = target
	d.MarkModified(now)
	d.AddDomainEvent(NewDisputeStatusChangedEvent(d, from))
}

func (d *Dispute) invalidTransition(target Status) error {
	return shared.NewInvalidTransitionError(AggregateTypeDispute, d.ID, d.Status.String(), target.String())
}

// Holds converts disputes into payout holds
func Holds(disputes []Dispute) []finance.PayoutHold {
	holds := make([]finance.PayoutHold, 0, len(disputes))
	for i := range disputes {
		holds = append(holds, &disputes[i])
	}
	return holds
}

var _ finance.PayoutHold = (*Dispute)(nil)
