// internal/adapters/out/firestore/inventory_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	invdom "atelier/internal/domain/inventory"
)

// InventoryRepositoryFS implements inventory.Repository with Firestore.
//
// Collection design:
// - collection: inventory
// - docId: variantId (one record per variant)
// - fields: quantity, reservedQuantity, updatedAt
type InventoryRepositoryFS struct {
	Client *firestore.Client
}

func NewInventoryRepositoryFS(client *firestore.Client) *InventoryRepositoryFS {
	return &InventoryRepositoryFS{Client: client}
}

func (r *InventoryRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection("inventory")
}

// ============================================================
// inventory.Repository
// ============================================================

func (r *InventoryRepositoryFS) GetByVariantID(ctx context.Context, variantID string) (invdom.Inventory, error) {
	if r.Client == nil {
		return invdom.Inventory{}, errors.New("inventory_repository_fs: firestore client is nil")
	}

	vid := strings.TrimSpace(variantID)
	if vid == "" {
		return invdom.Inventory{}, invdom.ErrNotFound
	}

	snap, err := r.col().Doc(vid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return invdom.Inventory{}, invdom.ErrNotFound
		}
		return invdom.Inventory{}, err
	}

	return docToInventory(snap)
}

// Reserve consumes qty units of available stock as one conditional
// transaction. The check and the increment run against the same snapshot;
// two reservations racing for the last unit cannot both commit.
func (r *InventoryRepositoryFS) Reserve(ctx context.Context, variantID string, qty int) error {
	if r.Client == nil {
		return errors.New("inventory_repository_fs: firestore client is nil")
	}

	vid := strings.TrimSpace(variantID)
	if vid == "" {
		return invdom.ErrNotFound
	}
	if qty <= 0 {
		return invdom.ErrInvalidReserveQty
	}

	ref := r.col().Doc(vid)

	return r.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return invdom.ErrNotFound
			}
			return err
		}

		inv, err := docToInventory(snap)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		if err := inv.Reserve(qty, now); err != nil {
			return err
		}

		return tx.Set(ref, inventoryToDoc(inv))
	})
}

// -----------------------------------------
// Firestore DTO
// -----------------------------------------

type inventoryDoc struct {
	Quantity  int       `firestore:"quantity"`
	Reserved  int       `firestore:"reservedQuantity"`
	UpdatedAt time.Time `firestore:"updatedAt"`
}

func docToInventory(snap *firestore.DocumentSnapshot) (invdom.Inventory, error) {
	var d inventoryDoc
	if err := snap.DataTo(&d); err != nil {
		return invdom.Inventory{}, err
	}
	return invdom.New(snap.Ref.ID, d.Quantity, d.Reserved, d.UpdatedAt)
}

func inventoryToDoc(inv invdom.Inventory) inventoryDoc {
	return inventoryDoc{
		Quantity:  inv.Quantity,
		Reserved:  inv.Reserved,
		UpdatedAt: inv.UpdatedAt,
	}
}
