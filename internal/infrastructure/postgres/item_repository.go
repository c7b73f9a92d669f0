package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/lager-api/internal/domain"
	"github.com/jhoicas/lager-api/internal/domain/entity"
	"github.com/jhoicas/lager-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

const itemColumns = `id, code, name, quantity, created_at, is_active, warehouse_id`

// ItemRepo implementación del puerto ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador de persistencia para ítems. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// Create persiste un nuevo ítem y asigna su ID.
func (r *ItemRepo) Create(ctx context.Context, item *entity.Item) error {
	query := `
		INSERT INTO items (code, name, quantity, created_at, is_active, warehouse_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		item.Code, item.Name, item.Quantity, item.CreatedAt, item.IsActive, item.WarehouseID,
	).Scan(&item.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID obtiene un ítem por ID.
func (r *ItemRepo) GetByID(ctx context.Context, id int64) (*entity.Item, error) {
	it, err := scanItem(r.q.QueryRow(ctx, `SELECT `+itemColumns+` FROM items WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	return it, nil
}

// GetActiveByCode obtiene un ítem activo por código.
func (r *ItemRepo) GetActiveByCode(ctx context.Context, code string) (*entity.Item, error) {
	it, err := scanItem(r.q.QueryRow(ctx,
		`SELECT `+itemColumns+` FROM items WHERE code = $1 AND is_active`, code))
	if err != nil {
		return nil, fmt.Errorf("get item by code: %w", err)
	}
	return it, nil
}

// CodeExists indica si algún ítem usa el código.
func (r *ItemRepo) CodeExists(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM items WHERE code = $1)`, code).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("code exists: %w", err)
	}
	return exists, nil
}

// List lista ítems por fecha de creación descendente.
func (r *ItemRepo) List(ctx context.Context, filter entity.ItemFilter) ([]*entity.Item, error) {
	var where []string
	var args []any
	if filter.ActiveOnly {
		where = append(where, `is_active`)
	}
	if filter.Search != "" {
		args = append(args, likePattern(filter.Search))
		where = append(where, fmt.Sprintf(`name ILIKE $%d ESCAPE '\'`, len(args)))
	}
	if filter.WarehouseID != nil {
		args = append(args, *filter.WarehouseID)
		where = append(where, fmt.Sprintf(`warehouse_id = $%d`, len(args)))
	}
	query := `SELECT ` + itemColumns + ` FROM items`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, ` AND `)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	var list []*entity.Item
	for rows.Next() {
		var it entity.Item
		if err := rows.Scan(&it.ID, &it.Code, &it.Name, &it.Quantity, &it.CreatedAt, &it.IsActive, &it.WarehouseID); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// Deactivate retira un ítem activo.
func (r *ItemRepo) Deactivate(ctx context.Context, id int64) (bool, error) {
	cmd, err := r.q.Exec(ctx, `UPDATE items SET is_active = false WHERE id = $1 AND is_active`, id)
	if err != nil {
		return false, fmt.Errorf("deactivate item: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// SetWarehouse asigna o limpia la bodega de un ítem.
func (r *ItemRepo) SetWarehouse(ctx context.Context, id int64, warehouseID *int64) error {
	_, err := r.q.Exec(ctx, `UPDATE items SET warehouse_id = $2 WHERE id = $1`, id, warehouseID)
	if err != nil {
		return fmt.Errorf("set item warehouse: %w", err)
	}
	return nil
}

// ClearWarehouse desvincula todos los ítems de una bodega.
func (r *ItemRepo) ClearWarehouse(ctx context.Context, warehouseID int64) (int64, error) {
	cmd, err := r.q.Exec(ctx, `UPDATE items SET warehouse_id = NULL WHERE warehouse_id = $1`, warehouseID)
	if err != nil {
		return 0, fmt.Errorf("clear warehouse items: %w", err)
	}
	return cmd.RowsAffected(), nil
}

// Delete elimina un ítem por ID.
func (r *ItemRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.q.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

func scanItem(row pgx.Row) (*entity.Item, error) {
	var it entity.Item
	err := row.Scan(&it.ID, &it.Code, &it.Name, &it.Quantity, &it.CreatedAt, &it.IsActive, &it.WarehouseID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &it, nil
}
