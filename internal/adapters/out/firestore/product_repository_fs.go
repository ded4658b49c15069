// internal/adapters/out/firestore/product_repository_fs.go
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

	"atelier/internal/domain/pricing"
	proddom "atelier/internal/domain/product"
)

// ProductRepositoryFS is the Firestore implementation of product.Repository.
//
// Collection design:
// - collection: products
// - docId: product id
type ProductRepositoryFS struct {
	Client *firestore.Client
}

func NewProductRepositoryFS(client *firestore.Client) *ProductRepositoryFS {
	return &ProductRepositoryFS{Client: client}
}

func (r *ProductRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection("products")
}

// ============================================================
// product.Repository
// ============================================================

// GetByID returns a single Product by docId.
func (r *ProductRepositoryFS) GetByID(ctx context.Context, id string) (proddom.Product, error) {
	if r.Client == nil {
		return proddom.Product{}, errors.New("product_repository_fs: firestore client is nil")
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return proddom.Product{}, proddom.ErrNotFound
	}

	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return proddom.Product{}, proddom.ErrNotFound
		}
		return proddom.Product{}, err
	}

	return docToProduct(snap)
}

// ListActive returns active products, newest first. Empty categoryID means
// all categories.
func (r *ProductRepositoryFS) ListActive(ctx context.Context, categoryID string) ([]proddom.Product, error) {
	if r.Client == nil {
		return nil, errors.New("product_repository_fs: firestore client is nil")
	}

	q := r.col().Where("active", "==", true)
	if cid := strings.TrimSpace(categoryID); cid != "" {
		q = q.Where("categoryId", "==", cid)
	}
	q = q.OrderBy("createdAt", firestore.Desc)

	it := q.Documents(ctx)
	defer it.Stop()

	out := make([]proddom.Product, 0, 16)
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		p, err := docToProduct(snap)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// -----------------------------------------
// Firestore DTO
// -----------------------------------------

type productDoc struct {
	Name        string    `firestore:"name"`
	Brand       string    `firestore:"brand"`
	Description string    `firestore:"description"`
	BasePrice   int64     `firestore:"basePrice"`
	CategoryID  string    `firestore:"categoryId"`
	Active      bool      `firestore:"active"`
	Tags        []string  `firestore:"tags"`
	CreatedAt   time.Time `firestore:"createdAt"`
}

func docToProduct(snap *firestore.DocumentSnapshot) (proddom.Product, error) {
	var d productDoc
	if err := snap.DataTo(&d); err != nil {
		return proddom.Product{}, err
	}
	// docId is the source of truth for the id.
	return proddom.New(snap.Ref.ID, d.Name, d.Brand, d.Description, pricing.Cents(d.BasePrice), d.CategoryID, d.Active, d.Tags, d.CreatedAt)
}
