package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/partner"
)

// VendorModel is the persistence model for the Vendor aggregate
type VendorModel struct {
	AggregateModel
	OwnerID          uuid.UUID            `gorm:"type:uuid;not null;index"`
	BusinessName     string               `gorm:"type:varchar(200);not null"`
	ContactEmail     string               `gorm:"type:varchar(200);not null"`
	Phone            string               `gorm:"type:varchar(50)"`
	TaxID            string               `gorm:"type:varchar(50)"`
	Address          string               `gorm:"type:text"`
	Description      string               `gorm:"type:text"`
	Status           partner.VendorStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	RejectionReason  string               `gorm:"type:text"`
	SuspensionReason string               `gorm:"type:text"`
	TotalOrders      int64                `gorm:"not null;default:0"`
	TotalSales       decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	Rating           decimal.Decimal      `gorm:"type:decimal(3,2);not null;default:0"`
	ReviewedBy       *uuid.UUID           `gorm:"type:uuid"`
	ApprovedAt       *time.Time
	RejectedAt       *time.Time
	SuspendedAt      *time.Time
}

// TableName returns the table name for GORM
func (VendorModel) TableName() string {
	return "vendors"
}

// ToDomain converts the persistence model to a domain Vendor
func (m *VendorModel) ToDomain() *partner.Vendor {
	return &partner.Vendor{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		OwnerID:           m.OwnerID,
		Profile: partner.BusinessProfile{
			BusinessName: m.BusinessName,
			ContactEmail: m.ContactEmail,
			Phone:        m.Phone,
			TaxID:        m.TaxID,
			Address:      m.Address,
			Description:  m.Description,
		},
		Status:           m.Status,
		RejectionReason:  m.RejectionReason,
		SuspensionReason: m.SuspensionReason,
		TotalOrders:      m.TotalOrders,
		TotalSales:       m.TotalSales,
		Rating:           m.Rating,
		ReviewedBy:       m.ReviewedBy,
		ApprovedAt:       m.ApprovedAt,
		RejectedAt:       m.RejectedAt,
		SuspendedAt:      m.SuspendedAt,
	}
}

// FromDomain populates the persistence model from a domain Vendor
func (m *VendorModel) FromDomain(v *partner.Vendor) {
	m.FromDomainAggregateRoot(v.BaseAggregateRoot)
	m.OwnerID = v.OwnerID
	m.BusinessName = v.Profile.BusinessName
	m.ContactEmail = v.Profile.ContactEmail
	m.Phone = v.Profile.Phone
	m.TaxID = v.Profile.TaxID
	m.Address = v.Profile.Address
	m.Description = v.Profile.Description
	m.Status = v.Status
	m.RejectionReason = v.RejectionReason
	m.SuspensionReason = v.SuspensionReason
	m.TotalOrders = v.TotalOrders
	m.TotalSales = v.TotalSales
	m.Rating = v.Rating
	m.ReviewedBy = v.ReviewedBy
	m.ApprovedAt = v.ApprovedAt
	m.RejectedAt = v.RejectedAt
	m.SuspendedAt = v.SuspendedAt
}

// AdmissionColumns are the columns an admin transition may change.
// Sales counters are deliberately absent; they only move through RecordDelivery.
func (m *VendorModel) AdmissionColumns() map[string]interface{} {
	return map[string]interface{}{
		"status":            m.Status,
		"rejection_reason":  m.RejectionReason,
		"suspension_reason": m.SuspensionReason,
		"reviewed_by":       m.ReviewedBy,
		"approved_at":       m.ApprovedAt,
		"rejected_at":       m.RejectedAt,
		"suspended_at":      m.SuspendedAt,
		"updated_at":        m.UpdatedAt,
		"version":           m.Version,
	}
}

// VendorModelFromDomain creates a new persistence model from a domain Vendor
func VendorModelFromDomain(v *partner.Vendor) *VendorModel {
	m := &VendorModel{}
	m.FromDomain(v)
	return m
}
