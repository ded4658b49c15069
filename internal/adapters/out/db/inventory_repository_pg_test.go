// internal/adapters/out/db/inventory_repository_pg_test.go
package db

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	invdom "atelier/internal/domain/inventory"
)

const reserveSQL = `
UPDATE inventory
SET reserved_quantity = reserved_quantity + $2,
    updated_at        = $3
WHERE variant_id = $1
  AND quantity - reserved_quantity >= $2
`

func TestInventoryPGGetByVariantID(t *testing.T) {
	dbc, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer dbc.Close()

	repo := NewInventoryRepositoryPG(dbc)

	rows := sqlmock.NewRows([]string{"variant_id", "quantity", "reserved_quantity", "updated_at"}).
		AddRow("v1", 10, 3, time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT variant_id, quantity, reserved_quantity, updated_at")).
		WithArgs("v1").
		WillReturnRows(rows)

	inv, err := repo.GetByVariantID(context.Background(), "v1")
	require.NoError(t, err)
	assert.Equal(t, 7, inv.Available())

	mock.ExpectQuery(regexp.QuoteMeta("SELECT variant_id, quantity, reserved_quantity, updated_at")).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"variant_id", "quantity", "reserved_quantity", "updated_at"}))

	_, err = repo.GetByVariantID(context.Background(), "missing")
	assert.ErrorIs(t, err, invdom.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInventoryPGReserveConsumesStock(t *testing.T) {
	dbc, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer dbc.Close()

	repo := NewInventoryRepositoryPG(dbc)

	mock.ExpectExec(regexp.QuoteMeta(reserveSQL)).
		WithArgs("v1", 2, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Reserve(context.Background(), "v1", 2))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInventoryPGReserveInsufficientStock(t *testing.T) {
	dbc, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer dbc.Close()

	repo := NewInventoryRepositoryPG(dbc)

	// conditional UPDATE touches no row, followup probe finds the row
	mock.ExpectExec(regexp.QuoteMeta(reserveSQL)).
		WithArgs("v1", 5, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM inventory WHERE variant_id = $1")).
		WithArgs("v1").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

	err = repo.Reserve(context.Background(), "v1", 5)
	assert.ErrorIs(t, err, invdom.ErrInsufficientStock)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInventoryPGReserveUnknownVariant(t *testing.T) {
	dbc, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer dbc.Close()

	repo := NewInventoryRepositoryPG(dbc)

	mock.ExpectExec(regexp.QuoteMeta(reserveSQL)).
		WithArgs("ghost", 1, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM inventory WHERE variant_id = $1")).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}))

	err = repo.Reserve(context.Background(), "ghost", 1)
	assert.ErrorIs(t, err, invdom.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInventoryPGReserveRejectsNonPositiveQty(t *testing.T) {
	dbc, _, err := sqlmock.New()
	require.NoError(t, err)
	defer dbc.Close()

	repo := NewInventoryRepositoryPG(dbc)
	assert.ErrorIs(t, repo.Reserve(context.Background(), "v1", 0), invdom.ErrInvalidReserveQty)
}
