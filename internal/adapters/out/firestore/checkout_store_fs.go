// internal/adapters/out/firestore/checkout_store_fs.go
package firestore

import (
	"context"
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"atelier/internal/domain/checkout"
	invdom "atelier/internal/domain/inventory"
)

// CheckoutStoreFS commits a whole placement in one Firestore transaction:
// order, order items, stock reservations and the cart delete land together
// or not at all.
//
// Firestore requires every read of a transaction to happen before its first
// write, which is why checkout.Store hands over the complete write set
// instead of exposing per-step methods.
type CheckoutStoreFS struct {
	Client *firestore.Client
}

func NewCheckoutStoreFS(client *firestore.Client) *CheckoutStoreFS {
	return &CheckoutStoreFS{Client: client}
}

func (s *CheckoutStoreFS) Place(ctx context.Context, p checkout.Placement) error {
	if s.Client == nil {
		return errors.New("checkout_store_fs: firestore client is nil")
	}

	orderID := strings.TrimSpace(p.Order.ID)
	if orderID == "" {
		return &checkout.StageError{Stage: checkout.StageValidating, Err: errors.New("checkout_store_fs: order id is empty")}
	}

	orders := s.Client.Collection("orders")
	items := s.Client.Collection("order_items")
	inventory := s.Client.Collection("inventory")
	carts := s.Client.Collection("carts")

	err := s.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		// ---- reads (all of them, before any write) ----
		orderRef := orders.Doc(orderID)
		if _, err := tx.Get(orderRef); err == nil {
			// same idempotency key committed before; nothing to do
			return errAlreadyPlaced
		} else if status.Code(err) != codes.NotFound {
			return err
		}

		now := time.Now().UTC()
		invWrites := make(map[*firestore.DocumentRef]inventoryDoc, len(p.Reservations))
		for _, res := range p.Reservations {
			ref := inventory.Doc(res.VariantID)
			snap, err := tx.Get(ref)
			if err != nil {
				if status.Code(err) == codes.NotFound {
					return &checkout.StageError{Stage: checkout.StageReservingStock, OrderID: orderID, Err: invdom.ErrNotFound}
				}
				return err
			}
			inv, err := docToInventory(snap)
			if err != nil {
				return err
			}
			if err := inv.Reserve(res.Qty, now); err != nil {
				return &checkout.StageError{Stage: checkout.StageReservingStock, OrderID: orderID, Err: err}
			}
			invWrites[ref] = inventoryToDoc(inv)
		}

		// ---- writes ----
		if err := tx.Create(orderRef, orderToDoc(p.Order)); err != nil {
			return &checkout.StageError{Stage: checkout.StagePlacingOrder, OrderID: orderID, Err: err}
		}
		for _, it := range p.Items {
			if err := tx.Create(items.Doc(it.ID), orderItemToDoc(it)); err != nil {
				return &checkout.StageError{Stage: checkout.StagePlacingItems, OrderID: orderID, Err: err}
			}
		}
		for ref, doc := range invWrites {
			if err := tx.Set(ref, doc); err != nil {
				return &checkout.StageError{Stage: checkout.StageReservingStock, OrderID: orderID, Err: err}
			}
		}
		if uid := strings.TrimSpace(p.CartUserID); uid != "" {
			if err := tx.Delete(carts.Doc(uid)); err != nil {
				return &checkout.StageError{Stage: checkout.StageClearingCart, OrderID: orderID, Err: err}
			}
		}
		return nil
	})
	if errors.Is(err, errAlreadyPlaced) {
		return nil
	}
	return err
}

var errAlreadyPlaced = errors.New("checkout_store_fs: order already placed")
