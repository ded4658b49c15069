// internal/adapters/out/firestore/orderItem_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	orderitem "atelier/internal/domain/orderItem"
	"atelier/internal/domain/pricing"
)

// OrderItemRepositoryFS implements orderitem.Repository with Firestore.
//
// Collection design:
// - collection: order_items
// - docId: item id
// - indexed fields: orderId, createdAt
type OrderItemRepositoryFS struct {
	Client *firestore.Client
}

func NewOrderItemRepositoryFS(client *firestore.Client) *OrderItemRepositoryFS {
	return &OrderItemRepositoryFS{Client: client}
}

func (r *OrderItemRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection("order_items")
}

// ============================================================
// orderitem.Repository
// ============================================================

// CreateMany writes all items of one order in a single batch.
func (r *OrderItemRepositoryFS) CreateMany(ctx context.Context, items []orderitem.OrderItem) error {
	if r.Client == nil {
		return errors.New("orderitem_repository_fs: firestore client is nil")
	}
	if len(items) == 0 {
		return nil
	}

	b := r.Client.Batch()
	for _, it := range items {
		id := strings.TrimSpace(it.ID)
		if id == "" {
			return errors.New("orderitem_repository_fs: item id is empty")
		}
		b.Create(r.col().Doc(id), orderItemToDoc(it))
	}
	_, err := b.Commit(ctx)
	return err
}

func (r *OrderItemRepositoryFS) ListByOrderID(ctx context.Context, orderID string) ([]orderitem.OrderItem, error) {
	if r.Client == nil {
		return nil, errors.New("orderitem_repository_fs: firestore client is nil")
	}

	oid := strings.TrimSpace(orderID)
	if oid == "" {
		return []orderitem.OrderItem{}, nil
	}

	it := r.col().
		Where("orderId", "==", oid).
		OrderBy("createdAt", firestore.Asc).
		Documents(ctx)
	defer it.Stop()

	out := make([]orderitem.OrderItem, 0, 8)
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		oi, err := docToOrderItem(snap)
		if err != nil {
			return nil, err
		}
		out = append(out, oi)
	}
	return out, nil
}

// -----------------------------------------
// Firestore DTO
// -----------------------------------------

type orderItemDoc struct {
	OrderID   string `firestore:"orderId"`
	ProductID string `firestore:"productId"`
	VariantID string `firestore:"variantId"`

	ProductName string `firestore:"productName"`
	Size        string `firestore:"size"`
	Color       string `firestore:"color"`

	Quantity   int   `firestore:"quantity"`
	UnitPrice  int64 `firestore:"unitPrice"`
	TotalPrice int64 `firestore:"totalPrice"`

	CreatedAt time.Time `firestore:"createdAt"`
}

func orderItemToDoc(it orderitem.OrderItem) orderItemDoc {
	return orderItemDoc{
		OrderID:     it.OrderID,
		ProductID:   it.ProductID,
		VariantID:   it.VariantID,
		ProductName: it.ProductName,
		Size:        it.Size,
		Color:       it.Color,
		Quantity:    it.Quantity,
		UnitPrice:   int64(it.UnitPrice),
		TotalPrice:  int64(it.TotalPrice),
		CreatedAt:   it.CreatedAt,
	}
}

func docToOrderItem(snap *firestore.DocumentSnapshot) (orderitem.OrderItem, error) {
	var d orderItemDoc
	if err := snap.DataTo(&d); err != nil {
		return orderitem.OrderItem{}, err
	}
	return orderitem.OrderItem{
		ID:          snap.Ref.ID,
		OrderID:     d.OrderID,
		ProductID:   d.ProductID,
		VariantID:   d.VariantID,
		ProductName: d.ProductName,
		Size:        d.Size,
		Color:       d.Color,
		Quantity:    d.Quantity,
		UnitPrice:   pricing.Cents(d.UnitPrice),
		TotalPrice:  pricing.Cents(d.TotalPrice),
		CreatedAt:   d.CreatedAt,
	}, nil
}
