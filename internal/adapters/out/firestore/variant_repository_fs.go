// internal/adapters/out/firestore/variant_repository_fs.go
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
	vardom "atelier/internal/domain/variant"
)

// VariantRepositoryFS is the Firestore implementation of variant.Repository.
//
// Collection design:
// - collection: product_variants
// - docId: variant id
// - indexed fields: productId, available, size
type VariantRepositoryFS struct {
	Client *firestore.Client
}

func NewVariantRepositoryFS(client *firestore.Client) *VariantRepositoryFS {
	return &VariantRepositoryFS{Client: client}
}

func (r *VariantRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection("product_variants")
}

// ============================================================
// variant.Repository
// ============================================================

func (r *VariantRepositoryFS) GetByID(ctx context.Context, id string) (vardom.Variant, error) {
	if r.Client == nil {
		return vardom.Variant{}, errors.New("variant_repository_fs: firestore client is nil")
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return vardom.Variant{}, vardom.ErrNotFound
	}

	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return vardom.Variant{}, vardom.ErrNotFound
		}
		return vardom.Variant{}, err
	}

	return docToVariant(snap)
}

func (r *VariantRepositoryFS) ListByProductID(ctx context.Context, productID string, availableOnly bool) ([]vardom.Variant, error) {
	if r.Client == nil {
		return nil, errors.New("variant_repository_fs: firestore client is nil")
	}

	pid := strings.TrimSpace(productID)
	if pid == "" {
		return []vardom.Variant{}, nil
	}

	q := r.col().Where("productId", "==", pid)
	if availableOnly {
		q = q.Where("available", "==", true)
	}
	q = q.OrderBy("size", firestore.Asc)

	it := q.Documents(ctx)
	defer it.Stop()

	out := make([]vardom.Variant, 0, 8)
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		v, err := docToVariant(snap)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// -----------------------------------------
// Firestore DTO
// -----------------------------------------

type variantDoc struct {
	ProductID       string    `firestore:"productId"`
	Size            string    `firestore:"size"`
	Color           string    `firestore:"color"`
	ColorHex        string    `firestore:"colorHex"`
	PriceAdjustment int64     `firestore:"priceAdjustment"`
	Available       bool      `firestore:"available"`
	SKU             string    `firestore:"sku"`
	CreatedAt       time.Time `firestore:"createdAt"`
}

func docToVariant(snap *firestore.DocumentSnapshot) (vardom.Variant, error) {
	var d variantDoc
	if err := snap.DataTo(&d); err != nil {
		return vardom.Variant{}, err
	}
	return vardom.New(snap.Ref.ID, d.ProductID, d.Size, d.Color, d.ColorHex, pricing.Cents(d.PriceAdjustment), d.Available, d.SKU, d.CreatedAt)
}
