// internal/adapters/out/firestore/order_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	orderdom "atelier/internal/domain/order"
	"atelier/internal/domain/pricing"
)

// OrderRepositoryFS implements order.Repository with Firestore.
//
// Collection design:
// - collection: orders
// - docId: order id (generated before the write)
// - indexed fields: userId, status, createdAt
type OrderRepositoryFS struct {
	Client *firestore.Client
}

func NewOrderRepositoryFS(client *firestore.Client) *OrderRepositoryFS {
	return &OrderRepositoryFS{Client: client}
}

func (r *OrderRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection("orders")
}

const defaultOrderPerPage = 20

// ============================================================
// order.Repository
// ============================================================

func (r *OrderRepositoryFS) GetByID(ctx context.Context, id string) (orderdom.Order, error) {
	if r.Client == nil {
		return orderdom.Order{}, errors.New("order_repository_fs: firestore client is nil")
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return orderdom.Order{}, orderdom.ErrNotFound
	}

	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return orderdom.Order{}, orderdom.ErrNotFound
		}
		return orderdom.Order{}, err
	}

	return docToOrder(snap)
}

func (r *OrderRepositoryFS) List(ctx context.Context, filter orderdom.Filter, sort orderdom.Sort, page orderdom.Page) (orderdom.PageResult, error) {
	if r.Client == nil {
		return orderdom.PageResult{}, errors.New("order_repository_fs: firestore client is nil")
	}

	q := r.buildQuery(filter, sort)

	// Count first, then page. Offset paging matches the admin listing UI;
	// cursor paging is not needed at this collection size.
	total, err := countDocs(ctx, q)
	if err != nil {
		return orderdom.PageResult{}, err
	}

	perPage := page.PerPage
	if perPage <= 0 {
		perPage = defaultOrderPerPage
	}
	number := page.Number
	if number <= 0 {
		number = 1
	}

	it := q.Offset((number - 1) * perPage).Limit(perPage).Documents(ctx)
	defer it.Stop()

	items := make([]orderdom.Order, 0, perPage)
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return orderdom.PageResult{}, err
		}
		o, err := docToOrder(snap)
		if err != nil {
			return orderdom.PageResult{}, err
		}
		items = append(items, o)
	}

	totalPages := (total + perPage - 1) / perPage
	return orderdom.PageResult{
		Items:      items,
		TotalCount: total,
		TotalPages: totalPages,
		Page:       number,
		PerPage:    perPage,
	}, nil
}

// Create inserts the order. A duplicate docId maps to ErrConflict; with ids
// generated before the write this is the idempotency guard.
func (r *OrderRepositoryFS) Create(ctx context.Context, o orderdom.Order) (orderdom.Order, error) {
	if r.Client == nil {
		return orderdom.Order{}, errors.New("order_repository_fs: firestore client is nil")
	}

	id := strings.TrimSpace(o.ID)
	if id == "" {
		return orderdom.Order{}, orderdom.ErrNotFound
	}

	if _, err := r.col().Doc(id).Create(ctx, orderToDoc(o)); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return orderdom.Order{}, orderdom.ErrConflict
		}
		return orderdom.Order{}, err
	}
	return o, nil
}

// UpdateStatus advances the status inside one transaction so the lifecycle
// check runs against the currently stored value.
func (r *OrderRepositoryFS) UpdateStatus(ctx context.Context, id string, next orderdom.Status) (orderdom.Order, error) {
	if r.Client == nil {
		return orderdom.Order{}, errors.New("order_repository_fs: firestore client is nil")
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return orderdom.Order{}, orderdom.ErrNotFound
	}

	ref := r.col().Doc(id)
	var out orderdom.Order

	err := r.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return orderdom.ErrNotFound
			}
			return err
		}

		o, err := docToOrder(snap)
		if err != nil {
			return err
		}
		if err := o.Advance(next); err != nil {
			return err
		}

		out = o
		return tx.Update(ref, []firestore.Update{
			{Path: "status", Value: string(o.Status)},
		})
	})
	if err != nil {
		return orderdom.Order{}, err
	}
	return out, nil
}

// -----------------------------------------
// Query building
// -----------------------------------------

func (r *OrderRepositoryFS) buildQuery(filter orderdom.Filter, sort orderdom.Sort) firestore.Query {
	q := r.col().Query

	if uid := strings.TrimSpace(filter.UserID); uid != "" {
		q = q.Where("userId", "==", uid)
	}
	if len(filter.Statuses) > 0 {
		ss := make([]string, 0, len(filter.Statuses))
		for _, s := range filter.Statuses {
			ss = append(ss, string(s))
		}
		q = q.Where("status", "in", ss)
	}
	if filter.Created.From != nil {
		q = q.Where("createdAt", ">=", filter.Created.From.UTC())
	}
	if filter.Created.To != nil {
		q = q.Where("createdAt", "<", filter.Created.To.UTC())
	}

	col := sort.Column
	if col != orderdom.SortByCreatedAt && col != orderdom.SortByStatus {
		col = orderdom.SortByCreatedAt
	}
	dir := firestore.Desc
	if sort.Order == orderdom.SortAsc {
		dir = firestore.Asc
	}
	return q.OrderBy(col, dir)
}

// countDocs fetches document keys only to size the result set.
func countDocs(ctx context.Context, q firestore.Query) (int, error) {
	snaps, err := q.Select().Documents(ctx).GetAll()
	if err != nil {
		return 0, err
	}
	return len(snaps), nil
}

// -----------------------------------------
// Firestore DTO
// -----------------------------------------

type orderDoc struct {
	UserID string `firestore:"userId"`
	Status string `firestore:"status"`

	Shipping orderShippingDoc `firestore:"shipping"`
	Payment  string           `firestore:"paymentMethod"`

	Subtotal int64 `firestore:"subtotal"`
	Shipfee  int64 `firestore:"shippingFee"`
	Tax      int64 `firestore:"tax"`
	Total    int64 `firestore:"total"`

	CreatedAt time.Time `firestore:"createdAt"`
}

type orderShippingDoc struct {
	FullName string `firestore:"fullName"`
	Email    string `firestore:"email"`
	Phone    string `firestore:"phone"`
	Address  string `firestore:"address"`
	City     string `firestore:"city"`
	State    string `firestore:"state"`
	ZipCode  string `firestore:"zipCode"`
	Country  string `firestore:"country"`
}

func orderToDoc(o orderdom.Order) orderDoc {
	return orderDoc{
		UserID: o.UserID,
		Status: string(o.Status),
		Shipping: orderShippingDoc{
			FullName: o.ShippingSnapshot.FullName,
			Email:    o.ShippingSnapshot.Email,
			Phone:    o.ShippingSnapshot.Phone,
			Address:  o.ShippingSnapshot.Address,
			City:     o.ShippingSnapshot.City,
			State:    o.ShippingSnapshot.State,
			ZipCode:  o.ShippingSnapshot.ZipCode,
			Country:  o.ShippingSnapshot.Country,
		},
		Payment:   string(o.PaymentMethod),
		Subtotal:  int64(o.Totals.Subtotal),
		Shipfee:   int64(o.Totals.Shipping),
		Tax:       int64(o.Totals.Tax),
		Total:     int64(o.Totals.Total),
		CreatedAt: o.CreatedAt,
	}
}

func docToOrder(snap *firestore.DocumentSnapshot) (orderdom.Order, error) {
	var d orderDoc
	if err := snap.DataTo(&d); err != nil {
		return orderdom.Order{}, err
	}

	o := orderdom.Order{
		ID:     snap.Ref.ID,
		UserID: d.UserID,
		Status: orderdom.Status(d.Status),
		ShippingSnapshot: orderdom.ShippingSnapshot{
			FullName: d.Shipping.FullName,
			Email:    d.Shipping.Email,
			Phone:    d.Shipping.Phone,
			Address:  d.Shipping.Address,
			City:     d.Shipping.City,
			State:    d.Shipping.State,
			ZipCode:  d.Shipping.ZipCode,
			Country:  d.Shipping.Country,
		},
		PaymentMethod: orderdom.PaymentMethod(d.Payment),
		Totals: pricing.Totals{
			Subtotal: pricing.Cents(d.Subtotal),
			Shipping: pricing.Cents(d.Shipfee),
			Tax:      pricing.Cents(d.Tax),
			Total:    pricing.Cents(d.Total),
		},
		CreatedAt: d.CreatedAt,
	}
	return o, nil
}
