// Package models contains GORM persistence models that map to database tables.
// They are kept apart from the domain aggregates so the domain stays free of
// ORM tags; each model converts with FromDomain and ToDomain.
//
//   - partner.go: vendors
//   - catalog.go: product listings
//   - trade.go: orders, vendor orders and their items
//   - dispute.go: disputes and evidence
package models
