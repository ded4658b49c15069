package common

import "time"

// TimeRange is a shared period filter.
type TimeRange struct {
	From *time.Time
	To   *time.Time
}

// Sort is the shared sort spec. Each domain validates its allowed columns.
type Sort struct {
	Column string
	Order  SortOrder
}

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Page is an offset paging spec (1-based; PerPage <= 0 means adapter default).
type Page struct {
	Number  int
	PerPage int
}

// PageResult is a generic offset paging result.
type PageResult[T any] struct {
	Items      []T
	TotalCount int
	TotalPages int
	Page       int
	PerPage    int
}
