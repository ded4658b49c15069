// internal/application/usecase/order_usecase.go
package usecase

import (
	"context"
	"errors"
	"strings"

	orderdom "atelier/internal/domain/order"
	orderitem "atelier/internal/domain/orderItem"
)

var (
	ErrOrderInvalidArgument = errors.New("order_usecase: invalid argument")
	ErrOrderForbidden       = errors.New("order_usecase: order belongs to another user")
)

// OrderDetail is an order with its immutable lines, for the confirmation
// and history screens.
type OrderDetail struct {
	Order orderdom.Order
	Items []orderitem.OrderItem
}

// OrderUsecase serves the order read side and the status lifecycle.
type OrderUsecase struct {
	orders orderdom.Repository
	items  orderitem.Repository
}

func NewOrderUsecase(orders orderdom.Repository, items orderitem.Repository) *OrderUsecase {
	return &OrderUsecase{orders: orders, items: items}
}

// GetForUser returns the order with items, enforcing ownership.
func (uc *OrderUsecase) GetForUser(ctx context.Context, userID, orderID string) (OrderDetail, error) {
	uid, err := requireUserID(userID)
	if err != nil {
		return OrderDetail{}, err
	}
	oid := strings.TrimSpace(orderID)
	if oid == "" {
		return OrderDetail{}, ErrOrderInvalidArgument
	}

	ctx, cancel := withReadTimeout(ctx)
	defer cancel()

	o, err := uc.orders.GetByID(ctx, oid)
	if err != nil {
		return OrderDetail{}, err
	}
	if o.UserID != uid {
		return OrderDetail{}, ErrOrderForbidden
	}

	its, err := uc.items.ListByOrderID(ctx, oid)
	if err != nil {
		return OrderDetail{}, err
	}
	return OrderDetail{Order: o, Items: its}, nil
}

// ListForUser returns the user's orders, newest first.
func (uc *OrderUsecase) ListForUser(ctx context.Context, userID string, page orderdom.Page) (orderdom.PageResult, error) {
	uid, err := requireUserID(userID)
	if err != nil {
		return orderdom.PageResult{}, err
	}

	ctx, cancel := withReadTimeout(ctx)
	defer cancel()

	return uc.orders.List(ctx,
		orderdom.Filter{UserID: uid},
		orderdom.Sort{Column: orderdom.SortByCreatedAt, Order: orderdom.SortDesc},
		page,
	)
}

// AdvanceStatus moves an order along its lifecycle (operator path; the
// storefront never calls this). The transition rule lives in the domain.
func (uc *OrderUsecase) AdvanceStatus(ctx context.Context, orderID string, next orderdom.Status) (orderdom.Order, error) {
	oid := strings.TrimSpace(orderID)
	if oid == "" {
		return orderdom.Order{}, ErrOrderInvalidArgument
	}

	o, err := uc.orders.GetByID(ctx, oid)
	if err != nil {
		return orderdom.Order{}, err
	}
	if err := o.Advance(next); err != nil {
		return orderdom.Order{}, err
	}
	return uc.orders.UpdateStatus(ctx, oid, next)
}
