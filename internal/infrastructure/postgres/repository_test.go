package postgres_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/lager-api/internal/domain"
	"github.com/jhoicas/lager-api/internal/domain/entity"
	"github.com/jhoicas/lager-api/internal/domain/repository"
	"github.com/jhoicas/lager-api/internal/infrastructure/postgres"
)

// newTestPool conecta a TEST_DATABASE_URL, migra y limpia las tablas. Sin la variable, el test se omite.
func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL no definido")
	}
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = postgres.NewMigrator(pool).Up(ctx)
	require.NoError(t, err)
	_, err = pool.Exec(ctx, `TRUNCATE items, warehouses RESTART IDENTITY`)
	require.NoError(t, err)
	return pool
}

func TestRepositories_Postgres(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	runner := postgres.NewTxRunner(pool)

	var warehouseID int64
	err := runner.Run(ctx, func(warehouses repository.WarehouseRepository, items repository.ItemRepository) error {
		w := &entity.Warehouse{Name: "Garage", CreatedAt: time.Now().UTC(), IsActive: true}
		if err := warehouses.Create(ctx, w); err != nil {
			return err
		}
		warehouseID = w.ID
		return items.Create(ctx, &entity.Item{
			Code: "abcd1234", Name: "Tornillos 100%", CreatedAt: time.Now().UTC(), IsActive: true, WarehouseID: &w.ID,
		})
	})
	require.NoError(t, err)

	warehouses := postgres.NewWarehouseRepository(pool)
	items := postgres.NewItemRepository(pool)

	err = warehouses.Create(ctx, &entity.Warehouse{Name: "Garage", CreatedAt: time.Now().UTC(), IsActive: true})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	found, err := items.List(ctx, entity.ItemFilter{Search: "%"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Nil(t, found[0].Quantity)

	none, err := items.List(ctx, entity.ItemFilter{Search: "_"})
	require.NoError(t, err)
	assert.Empty(t, none)

	n, err := items.ClearWarehouse(ctx, warehouseID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	ok, err := items.Deactivate(ctx, found[0].ID)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = items.Deactivate(ctx, found[0].ID)
	require.NoError(t, err)
	assert.False(t, ok)
}
