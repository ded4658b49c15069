// internal/adapters/out/db/product_repository_pg.go
package db

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/lib/pq"

	dbcommon "atelier/internal/adapters/out/db/common"
	"atelier/internal/domain/pricing"
	proddom "atelier/internal/domain/product"
)

// ProductRepositoryPG implements product.Repository with PostgreSQL.
//
// Table: products(id PK, name, brand, description, base_price, category_id,
// active, tags, created_at)
type ProductRepositoryPG struct {
	DB *sql.DB
}

func NewProductRepositoryPG(db *sql.DB) *ProductRepositoryPG {
	return &ProductRepositoryPG{DB: db}
}

const productColumns = `id, name, brand, description, base_price, category_id, active, tags, created_at`

// =======================
// Queries
// =======================

func (r *ProductRepositoryPG) GetByID(ctx context.Context, id string) (proddom.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products
WHERE id = $1
`
	row := r.DB.QueryRowContext(ctx, q, strings.TrimSpace(id))
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return proddom.Product{}, proddom.ErrNotFound
		}
		return proddom.Product{}, err
	}
	return p, nil
}

func (r *ProductRepositoryPG) ListActive(ctx context.Context, categoryID string) ([]proddom.Product, error) {
	q := `
SELECT ` + productColumns + `
FROM products
WHERE active = TRUE
`
	args := []any{}
	if cid := strings.TrimSpace(categoryID); cid != "" {
		q += ` AND category_id = $1`
		args = append(args, cid)
	}
	q += `
ORDER BY created_at DESC, id DESC
`

	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]proddom.Product, 0, 16)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// =======================
// Helpers
// =======================

func scanProduct(s dbcommon.RowScanner) (proddom.Product, error) {
	var (
		id, name               string
		brandNS, descNS, catNS sql.NullString
		basePrice              int64
		active                 bool
		tags                   pq.StringArray
		createdAt              time.Time
	)
	if err := s.Scan(&id, &name, &brandNS, &descNS, &basePrice, &catNS, &active, &tags, &createdAt); err != nil {
		return proddom.Product{}, err
	}
	return proddom.New(id, name, brandNS.String, descNS.String, pricing.Cents(basePrice), catNS.String, active, tags, createdAt)
}
