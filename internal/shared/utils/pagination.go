package utils

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// ClampPaging normalizes a page request: page >= 1 and 1 <= size <= MaxPageSize.
// Oversized requests are truncated, never rejected.
func ClampPaging(page, size int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 1
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return page, size
}

// Offset returns the number of rows to skip for a clamped page.
func Offset(page, size int) int {
	return (page - 1) * size
}

// PagedResult is a single page of items plus the size of the full result set.
type PagedResult[T any] struct {
	Items      []T `json:"items"`
	TotalCount int `json:"totalCount"`
	PageNumber int `json:"pageNumber"`
	PageSize   int `json:"pageSize"`
}
