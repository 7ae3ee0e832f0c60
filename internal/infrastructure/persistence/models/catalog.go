package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/catalog"
)

// ProductListingModel is the persistence model for the ProductListing aggregate
type ProductListingModel struct {
	AggregateModel
	VendorID          uuid.UUID             `gorm:"type:uuid;not null;index"`
	SKU               string                `gorm:"type:varchar(100);not null"`
	Name              string                `gorm:"type:varchar(200);not null"`
	Description       string                `gorm:"type:text"`
	Category          string                `gorm:"type:varchar(100)"`
	Price             decimal.Decimal       `gorm:"type:decimal(18,4);not null"`
	Currency          string                `gorm:"type:varchar(3);not null"`
	Status            catalog.ListingStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	RejectionReason   string                `gorm:"type:text"`
	PreviousListingID *uuid.UUID            `gorm:"type:uuid;index"`
	ReviewedBy        *uuid.UUID            `gorm:"type:uuid"`
	ReviewedAt        *time.Time
}

// TableName returns the table name for GORM
func (ProductListingModel) TableName() string {
	return "product_listings"
}

// ToDomain converts the persistence model to a domain ProductListing
func (m *ProductListingModel) ToDomain() *catalog.ProductListing {
	return &catalog.ProductListing{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		VendorID:          m.VendorID,
		SKU:               m.SKU,
		Name:              m.Name,
		Description:       m.Description,
		Category:          m.Category,
		Price:             m.Price,
		Currency:          m.Currency,
		Status:            m.Status,
		RejectionReason:   m.RejectionReason,
		PreviousListingID: m.PreviousListingID,
		ReviewedBy:        m.ReviewedBy,
		ReviewedAt:        m.ReviewedAt,
	}
}

// FromDomain populates the persistence model from a domain ProductListing
func (m *ProductListingModel) FromDomain(l *catalog.ProductListing) {
	m.FromDomainAggregateRoot(l.BaseAggregateRoot)
	m.VendorID = l.VendorID
	m.SKU = l.SKU
	m.Name = l.Name
	m.Description = l.Description
	m.Category = l.Category
	m.Price = l.Price
	m.Currency = l.Currency
	m.Status = l.Status
	m.RejectionReason = l.RejectionReason
	m.PreviousListingID = l.PreviousListingID
	m.ReviewedBy = l.ReviewedBy
	m.ReviewedAt = l.ReviewedAt
}

// ProductListingModelFromDomain creates a new persistence model from a domain ProductListing
func ProductListingModelFromDomain(l *catalog.ProductListing) *ProductListingModel {
	m := &ProductListingModel{}
	m.FromDomain(l)
	return m
}
