package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/shared"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestValidateSortOrder(t *testing.T) {
	assert.Equal(t, "ASC", ValidateSortOrder(" asc "))
	assert.Equal(t, "DESC", ValidateSortOrder("desc"))
	assert.Equal(t, "DESC", ValidateSortOrder(""))
	assert.Equal(t, "DESC", ValidateSortOrder("ASC; DROP TABLE vendors;--"))
}

func TestValidateSortField(t *testing.T) {
	tests := []struct {
		field   string
		allowed map[string]bool
		want    string
	}{
		{"business_name", VendorSortFields, "business_name"},
		{"price", ListingSortFields, "price"},
		{"payout", VendorOrderSortFields, "payout"},
		{"total", OrderSortFields, "total"},
		{"password_hash", VendorSortFields, "created_at"},
		{"price; DROP TABLE orders", ListingSortFields, "created_at"},
		{"  ", OrderSortFields, "created_at"},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateSortField(tt.field, tt.allowed, "created_at"))
		})
	}
}

func TestPaginate(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{DryRun: true})
	require.NoError(t, err)

	tests := []struct {
		name   string
		filter shared.Filter
		want   string
	}{
		{"defaults", shared.Filter{}, "ORDER BY created_at DESC LIMIT 20"},
		{"whitelisted field ascending", shared.Filter{Page: 3, PageSize: 10, OrderBy: "price", OrderDir: "asc"}, "ORDER BY price ASC LIMIT 10 OFFSET 20"},
		{"unknown field falls back", shared.Filter{OrderBy: "1=1", OrderDir: "asc"}, "ORDER BY created_at ASC LIMIT 20"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rows []map[string]any
			stmt := paginate(db.Table("product_listings"), tt.filter, ListingSortFields, "created_at").Find(&rows).Statement
			assert.Contains(t, stmt.SQL.String(), tt.want)
		})
	}
}
