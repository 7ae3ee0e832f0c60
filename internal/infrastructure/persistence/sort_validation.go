package persistence

import (
	"strings"

	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/shared"
	"gorm.io/gorm"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// VendorSortFields contains allowed sort fields for vendors
var VendorSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"business_name": true,
	"status":        true,
	"total_orders":  true,
	"total_sales":   true,
	"rating":        true,
}

// ListingSortFields contains allowed sort fields for product listings
var ListingSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"sku":        true,
	"price":      true,
	"status":     true,
	"category":   true,
}

// VendorOrderSortFields contains allowed sort fields for vendor orders
var VendorOrderSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"order_number": true,
	"status":       true,
	"subtotal":     true,
	"payout":       true,
	"shipped_at":   true,
	"delivered_at": true,
}

// OrderSortFields contains allowed sort fields for customer orders
var OrderSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"order_number": true,
	"status":       true,
	"total":        true,
}

// paginate applies a normalized filter's paging and a whitelisted ordering
func paginate(query *gorm.DB, filter shared.Filter, allowed map[string]bool, defaultField string) *gorm.DB {
	filter = filter.Normalize()
	field := ValidateSortField(filter.OrderBy, allowed, defaultField)
	dir := ValidateSortOrder(filter.OrderDir)
	return query.Order(field + " " + dir).Offset(filter.Offset()).Limit(filter.PageSize)
}
