package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/dispute"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/shared"
)

// DisputeModel is the persistence model for the Dispute aggregate
type DisputeModel struct {
	AggregateModel
	VendorOrderID   uuid.UUID        `gorm:"type:uuid;not null;index"`
	OrderID         uuid.UUID        `gorm:"type:uuid;not null"`
	VendorID        uuid.UUID        `gorm:"type:uuid;not null;index"`
	CustomerID      uuid.UUID        `gorm:"type:uuid;not null;index"`
	OpenedBy        uuid.UUID        `gorm:"type:uuid;not null"`
	OpenedByRole    shared.Role      `gorm:"type:varchar(20);not null"`
	Type            dispute.Type     `gorm:"type:varchar(30);not null"`
	Description     string           `gorm:"type:text;not null"`
	Amount          decimal.Decimal  `gorm:"type:decimal(18,4);not null"`
	Priority        dispute.Priority `gorm:"type:varchar(10);not null;default:'medium'"`
	Status          dispute.Status   `gorm:"type:varchar(20);not null;default:'open';index"`
	Resolution      string           `gorm:"type:text"`
	ResolvedBy      *uuid.UUID       `gorm:"type:uuid"`
	InvestigatingAt *time.Time
	ResolvedAt      *time.Time
	ClosedAt        *time.Time
	Evidence        []DisputeEvidenceModel `gorm:"foreignKey:DisputeID;references:ID"`
}

// TableName returns the table name for GORM
func (DisputeModel) TableName() string {
	return "disputes"
}

// ToDomain converts the persistence model and its evidence to a domain Dispute
func (m *DisputeModel) ToDomain() *dispute.Dispute {
	evidence := make([]dispute.Evidence, len(m.Evidence))
	for i := range m.Evidence {
		evidence[i] = m.Evidence[i].ToDomain()
	}
	return &dispute.Dispute{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		VendorOrderID:     m.VendorOrderID,
		OrderID:           m.OrderID,
		VendorID:          m.VendorID,
		CustomerID:        m.CustomerID,
		OpenedBy:          m.OpenedBy,
		OpenedByRole:      m.OpenedByRole,
		Type:              m.Type,
		Description:       m.Description,
		Amount:            m.Amount,
		Priority:          m.Priority,
		Status:            m.Status,
		Resolution:        m.Resolution,
		ResolvedBy:        m.ResolvedBy,
		Evidence:          evidence,
		InvestigatingAt:   m.InvestigatingAt,
		ResolvedAt:        m.ResolvedAt,
		ClosedAt:          m.ClosedAt,
	}
}

// FromDomain populates the persistence model and its evidence from a domain Dispute
func (m *DisputeModel) FromDomain(d *dispute.Dispute) {
	m.FromDomainAggregateRoot(d.BaseAggregateRoot)
	m.VendorOrderID = d.VendorOrderID
	m.OrderID = d.OrderID
	m.VendorID = d.VendorID
	m.CustomerID = d.CustomerID
	m.OpenedBy = d.OpenedBy
	m.OpenedByRole = d.OpenedByRole
	m.Type = d.Type
	m.Description = d.Description
	m.Amount = d.Amount
	m.Priority = d.Priority
	m.Status = d.Status
	m.Resolution = d.Resolution
	m.ResolvedBy = d.ResolvedBy
	m.InvestigatingAt = d.InvestigatingAt
	m.ResolvedAt = d.ResolvedAt
	m.ClosedAt = d.ClosedAt
	m.Evidence = make([]DisputeEvidenceModel, len(d.Evidence))
	for i, ev := range d.Evidence {
		m.Evidence[i] = DisputeEvidenceModel{
			ID:          ev.ID,
			DisputeID:   d.ID,
			ObjectKey:   ev.ObjectKey,
			FileName:    ev.FileName,
			ContentType: ev.ContentType,
			UploadedBy:  ev.UploadedBy,
			UploadedAt:  ev.UploadedAt,
		}
	}
}

// WorkflowColumns are the columns a dispute transition may change
func (m *DisputeModel) WorkflowColumns() map[string]interface{} {
	return map[string]interface{}{
		"status":           m.Status,
		"resolution":       m.Resolution,
		"resolved_by":      m.ResolvedBy,
		"investigating_at": m.InvestigatingAt,
		"resolved_at":      m.ResolvedAt,
		"closed_at":        m.ClosedAt,
		"updated_at":       m.UpdatedAt,
		"version":          m.Version,
	}
}

// DisputeEvidenceModel is the persistence model for an evidence object reference
type DisputeEvidenceModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	DisputeID   uuid.UUID `gorm:"type:uuid;not null;index"`
	ObjectKey   string    `gorm:"type:varchar(500);not null;uniqueIndex"`
	FileName    string    `gorm:"type:varchar(255);not null"`
	ContentType string    `gorm:"type:varchar(100)"`
	UploadedBy  uuid.UUID `gorm:"type:uuid;not null"`
	UploadedAt  time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (DisputeEvidenceModel) TableName() string {
	return "dispute_evidence"
}

// ToDomain converts the persistence model to a domain Evidence
func (m *DisputeEvidenceModel) ToDomain() dispute.Evidence {
	return dispute.Evidence{
		ID:          m.ID,
		ObjectKey:   m.ObjectKey,
		FileName:    m.FileName,
		ContentType: m.ContentType,
		UploadedBy:  m.UploadedBy,
		UploadedAt:  m.UploadedAt,
	}
}

// AllModels lists every model for sqlite AutoMigrate
func AllModels() []interface{} {
	return []interface{}{
		&VendorModel{},
		&ProductListingModel{},
		&OrderModel{},
		&OrderNumberSequenceModel{},
		&VendorOrderModel{},
		&VendorOrderItemModel{},
		&DisputeModel{},
		&DisputeEvidenceModel{},
	}
}
