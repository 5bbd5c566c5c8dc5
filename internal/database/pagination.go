package database

import "math"

const DefaultPageSize = 20

// Pagination is a 1-based page request.
type Pagination struct {
	Page     int
	PageSize int
}

// Normalize replaces a page below 1 with 1 and a page size below 1 with
// DefaultPageSize. Large page sizes are kept as requested.
func (p Pagination) Normalize() Pagination {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	return p
}

// Offset is the number of rows before the page. It saturates at math.MaxInt
// so a page far past the end stays past the end.
func (p Pagination) Offset() int {
	if p.Page <= 1 || p.PageSize < 1 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.PageSize {
		return math.MaxInt
	}
	return (p.Page - 1) * p.PageSize
}

type PagedResult[T any] struct {
	Items    []T
	Page     int
	PageSize int
	Total    int64
}
