package order

import (
	"context"
	"errors"

	common "atelier/internal/domain/common"
)

// Filter narrows order listings.
type Filter struct {
	UserID   string
	Statuses []Status
	Created  common.TimeRange
}

// Sort uses common.Sort; allowed columns below.
type Sort = common.Sort
type SortOrder = common.SortOrder

const (
	SortAsc  SortOrder = common.SortAsc
	SortDesc SortOrder = common.SortDesc
)

const (
	SortByCreatedAt string = "createdAt"
	SortByStatus    string = "status"
)

// Paging aliases
type Page = common.Page
type PageResult = common.PageResult[Order]

// Repository is the persistence port for Order.
// Order rows are append-only after creation except for the status column.
type Repository interface {
	// Queries
	GetByID(ctx context.Context, id string) (Order, error)
	List(ctx context.Context, filter Filter, sort Sort, page Page) (PageResult, error)

	// Commands
	// Create fails with ErrConflict when the id already exists; with ids
	// generated before the write this doubles as the idempotency guard.
	Create(ctx context.Context, o Order) (Order, error)
	UpdateStatus(ctx context.Context, id string, next Status) (Order, error)
}

// Standard repository errors
var (
	ErrNotFound = errors.New("order: not found")
	ErrConflict = errors.New("order: conflict")
)
