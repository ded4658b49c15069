// internal/adapters/out/db/variant_repository_pg.go
package db

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	dbcommon "atelier/internal/adapters/out/db/common"
	"atelier/internal/domain/pricing"
	vardom "atelier/internal/domain/variant"
)

// VariantRepositoryPG implements variant.Repository with PostgreSQL.
//
// Table: product_variants(id PK, product_id, size, color, color_hex,
// price_adjustment, available, sku, created_at)
type VariantRepositoryPG struct {
	DB *sql.DB
}

func NewVariantRepositoryPG(db *sql.DB) *VariantRepositoryPG {
	return &VariantRepositoryPG{DB: db}
}

const variantColumns = `id, product_id, size, color, color_hex, price_adjustment, available, sku, created_at`

// =======================
// Queries
// =======================

func (r *VariantRepositoryPG) GetByID(ctx context.Context, id string) (vardom.Variant, error) {
	const q = `
SELECT ` + variantColumns + `
FROM product_variants
WHERE id = $1
`
	row := r.DB.QueryRowContext(ctx, q, strings.TrimSpace(id))
	v, err := scanVariant(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return vardom.Variant{}, vardom.ErrNotFound
		}
		return vardom.Variant{}, err
	}
	return v, nil
}

func (r *VariantRepositoryPG) ListByProductID(ctx context.Context, productID string, availableOnly bool) ([]vardom.Variant, error) {
	pid := strings.TrimSpace(productID)
	if pid == "" {
		return []vardom.Variant{}, nil
	}

	q := `
SELECT ` + variantColumns + `
FROM product_variants
WHERE product_id = $1
`
	if availableOnly {
		q += ` AND available = TRUE`
	}
	q += `
ORDER BY size ASC, color ASC
`

	rows, err := r.DB.QueryContext(ctx, q, pid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]vardom.Variant, 0, 8)
	for rows.Next() {
		v, err := scanVariant(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// =======================
// Helpers
// =======================

func scanVariant(s dbcommon.RowScanner) (vardom.Variant, error) {
	var (
		id, productID, size, color string
		colorHexNS, skuNS          sql.NullString
		priceAdjustment            int64
		available                  bool
		createdAt                  time.Time
	)
	if err := s.Scan(&id, &productID, &size, &color, &colorHexNS, &priceAdjustment, &available, &skuNS, &createdAt); err != nil {
		return vardom.Variant{}, err
	}
	return vardom.New(id, productID, size, color, colorHexNS.String, pricing.Cents(priceAdjustment), available, skuNS.String, createdAt)
}
