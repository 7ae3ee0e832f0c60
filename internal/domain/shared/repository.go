package shared

import "strings"

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Filter carries paging, ordering and free-form criteria into repositories.
// OrderBy is checked against a per-table whitelist before use.
type Filter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Search   string
	Filters  map[string]interface{}
}

// DefaultFilter returns the first page, newest first
func DefaultFilter() Filter {
	return Filter{
		Page:     1,
		PageSize: DefaultPageSize,
		OrderBy:  "created_at",
		OrderDir: "desc",
		Filters:  make(map[string]interface{}),
	}
}

// Normalize fills zero paging values, caps the page size at MaxPageSize and
// folds OrderDir to "asc" or "desc"
func (f Filter) Normalize() Filter {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.PageSize <= 0 {
		f.PageSize = DefaultPageSize
	}
	if f.PageSize > MaxPageSize {
		f.PageSize = MaxPageSize
	}
	if strings.EqualFold(strings.TrimSpace(f.OrderDir), "asc") {
		f.OrderDir = "asc"
	} else {
		f.OrderDir = "desc"
	}
	return f
}

// Offset returns the row offset for the current page
func (f Filter) Offset() int {
	return (f.Page - 1) * f.PageSize
}
