// internal/adapters/out/firestore/cart_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	cartdom "atelier/internal/domain/cart"
)

// CartRepositoryFS implements cart.Repository using Firestore.
//
// Collection design:
// - collection: carts
// - docId: userId (docId is the source of truth)
// - fields: lines(array), createdAt, updatedAt, expiresAt
//
// TTL:
// - Configure Firestore TTL on "expiresAt".
type CartRepositoryFS struct {
	Client *firestore.Client
}

func NewCartRepositoryFS(client *firestore.Client) *CartRepositoryFS {
	return &CartRepositoryFS{Client: client}
}

func (r *CartRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection("carts")
}

// GetByUserID returns (nil, nil) if not found (nil policy).
func (r *CartRepositoryFS) GetByUserID(ctx context.Context, userID string) (*cartdom.Cart, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("cart_repository_fs: firestore client is nil")
	}

	uid := strings.TrimSpace(userID)
	if uid == "" {
		return nil, errors.New("cart_repository_fs: userID is empty")
	}

	snap, err := r.col().Doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, err
	}

	return docToCart(snap)
}

// Mutate runs fn against the current cart inside one transaction. A missing
// doc hands fn a fresh empty cart. The read, the mutation and the write
// commit against the same snapshot, so two concurrent mutations of one cart
// serialize instead of overwriting each other.
func (r *CartRepositoryFS) Mutate(ctx context.Context, userID string, fn func(c *cartdom.Cart) error) (*cartdom.Cart, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("cart_repository_fs: firestore client is nil")
	}

	uid := strings.TrimSpace(userID)
	if uid == "" {
		return nil, errors.New("cart_repository_fs: userID is empty")
	}
	if fn == nil {
		return nil, errors.New("cart_repository_fs: mutate fn is nil")
	}

	ref := r.col().Doc(uid)
	var out *cartdom.Cart

	err := r.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		var c *cartdom.Cart

		snap, err := tx.Get(ref)
		switch {
		case err == nil:
			c, err = docToCart(snap)
			if err != nil {
				return err
			}
		case status.Code(err) == codes.NotFound:
			c, err = cartdom.NewCart(uid, nil, time.Now().UTC())
			if err != nil {
				return err
			}
		default:
			return err
		}

		if err := fn(c); err != nil {
			return err
		}

		out = c
		return tx.Set(ref, cartToDoc(c))
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *CartRepositoryFS) DeleteByUserID(ctx context.Context, userID string) error {
	if r == nil || r.Client == nil {
		return errors.New("cart_repository_fs: firestore client is nil")
	}

	uid := strings.TrimSpace(userID)
	if uid == "" {
		return errors.New("cart_repository_fs: userID is empty")
	}

	// Delete is a no-op on a missing doc, which keeps this idempotent.
	_, err := r.col().Doc(uid).Delete(ctx)
	return err
}

// -----------------------------------------
// Firestore DTO
// -----------------------------------------

type cartDoc struct {
	Lines     []cartLineDoc `firestore:"lines"`
	CreatedAt time.Time     `firestore:"createdAt"`
	UpdatedAt time.Time     `firestore:"updatedAt"`
	ExpiresAt time.Time     `firestore:"expiresAt"`
}

type cartLineDoc struct {
	ProductID string `firestore:"productId"`
	VariantID string `firestore:"variantId"`
	Qty       int    `firestore:"qty"`
}

func cartToDoc(c *cartdom.Cart) cartDoc {
	lines := make([]cartLineDoc, 0, len(c.Lines))
	for _, l := range c.Lines {
		if strings.TrimSpace(l.VariantID) == "" || l.Qty <= 0 {
			continue
		}
		lines = append(lines, cartLineDoc{
			ProductID: l.ProductID,
			VariantID: l.VariantID,
			Qty:       l.Qty,
		})
	}
	return cartDoc{
		Lines:     lines,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		ExpiresAt: c.ExpiresAt,
	}
}

func docToCart(snap *firestore.DocumentSnapshot) (*cartdom.Cart, error) {
	var d cartDoc
	if err := snap.DataTo(&d); err != nil {
		return nil, err
	}

	lines := make([]cartdom.Line, 0, len(d.Lines))
	for _, l := range d.Lines {
		if strings.TrimSpace(l.VariantID) == "" || l.Qty <= 0 {
			continue
		}
		lines = append(lines, cartdom.Line{
			ProductID: strings.TrimSpace(l.ProductID),
			VariantID: strings.TrimSpace(l.VariantID),
			Qty:       l.Qty,
		})
	}

	// docId is the userId; a doc-level id field is not stored.
	c := &cartdom.Cart{
		ID:        snap.Ref.ID,
		Lines:     lines,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
		ExpiresAt: d.ExpiresAt,
	}
	return c, nil
}
