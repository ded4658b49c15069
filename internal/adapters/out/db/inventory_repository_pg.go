// internal/adapters/out/db/inventory_repository_pg.go
package db

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	dbcommon "atelier/internal/adapters/out/db/common"
	invdom "atelier/internal/domain/inventory"
)

// InventoryRepositoryPG implements inventory.Repository with PostgreSQL.
//
// Table: inventory(variant_id PK, quantity, reserved_quantity, updated_at)
type InventoryRepositoryPG struct {
	DB *sql.DB
}

func NewInventoryRepositoryPG(db *sql.DB) *InventoryRepositoryPG {
	return &InventoryRepositoryPG{DB: db}
}

// =======================
// Queries
// =======================

func (r *InventoryRepositoryPG) GetByVariantID(ctx context.Context, variantID string) (invdom.Inventory, error) {
	const q = `
SELECT variant_id, quantity, reserved_quantity, updated_at
FROM inventory
WHERE variant_id = $1
`
	row := r.DB.QueryRowContext(ctx, q, strings.TrimSpace(variantID))
	inv, err := scanInventory(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return invdom.Inventory{}, invdom.ErrNotFound
		}
		return invdom.Inventory{}, err
	}
	return inv, nil
}

// =======================
// Mutations
// =======================

// Reserve consumes qty units of available stock. The availability check and
// the increment are one conditional UPDATE, so concurrent reservations for
// the last unit serialize on the row lock and only one succeeds.
func (r *InventoryRepositoryPG) Reserve(ctx context.Context, variantID string, qty int) error {
	vid := strings.TrimSpace(variantID)
	if vid == "" {
		return invdom.ErrNotFound
	}
	if qty <= 0 {
		return invdom.ErrInvalidReserveQty
	}

	const q = `
UPDATE inventory
SET reserved_quantity = reserved_quantity + $2,
    updated_at        = $3
WHERE variant_id = $1
  AND quantity - reserved_quantity >= $2
`
	res, err := r.DB.ExecContext(ctx, q, vid, qty, time.Now().UTC())
	if err != nil {
		return err
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if aff == 0 {
		// Distinguish "no row" from "not enough stock".
		var one int
		err := r.DB.QueryRowContext(ctx, `SELECT 1 FROM inventory WHERE variant_id = $1`, vid).Scan(&one)
		if errors.Is(err, sql.ErrNoRows) {
			return invdom.ErrNotFound
		}
		if err != nil {
			return err
		}
		return invdom.ErrInsufficientStock
	}
	return nil
}

// =======================
// Helpers
// =======================

func scanInventory(s dbcommon.RowScanner) (invdom.Inventory, error) {
	var (
		variantID          string
		quantity, reserved int
		updatedAt          time.Time
	)
	if err := s.Scan(&variantID, &quantity, &reserved, &updatedAt); err != nil {
		return invdom.Inventory{}, err
	}
	return invdom.New(variantID, quantity, reserved, updatedAt)
}
