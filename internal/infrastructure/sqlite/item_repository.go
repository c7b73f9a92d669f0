package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jhoicas/lager-api/internal/domain"
	"github.com/jhoicas/lager-api/internal/domain/entity"
	"github.com/jhoicas/lager-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

const itemColumns = `id, code, name, quantity, created_at, is_active, warehouse_id`

// ItemRepo implementación del puerto ItemRepository sobre SQLite (usable con db o tx).
type ItemRepo struct {
	q querier
}

// NewItemRepository construye el adaptador de persistencia para ítems.
func NewItemRepository(q querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// Create persiste un nuevo ítem y asigna su ID.
func (r *ItemRepo) Create(ctx context.Context, it *entity.Item) error {
	res, err := r.q.ExecContext(ctx,
		`INSERT INTO items (code, name, quantity, created_at, is_active, warehouse_id) VALUES (?, ?, ?, ?, ?, ?)`,
		it.Code, it.Name, toNullString(it.Quantity), it.CreatedAt, it.IsActive, toNullInt64(it.WarehouseID),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert item: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("item id: %w", err)
	}
	it.ID = id
	return nil
}

// GetByID obtiene un ítem por ID, activo o no.
func (r *ItemRepo) GetByID(ctx context.Context, id int64) (*entity.Item, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM items WHERE id = ?`, id)
	it, err := scanItem(row)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	return it, nil
}

// GetActiveByCode obtiene un ítem activo por código.
func (r *ItemRepo) GetActiveByCode(ctx context.Context, code string) (*entity.Item, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM items WHERE code = ? AND is_active = 1`, code)
	it, err := scanItem(row)
	if err != nil {
		return nil, fmt.Errorf("get item by code: %w", err)
	}
	return it, nil
}

// CodeExists indica si algún ítem (activo o no) usa el código.
func (r *ItemRepo) CodeExists(ctx context.Context, code string) (bool, error) {
	var n int
	if err := r.q.QueryRowContext(ctx, `SELECT COUNT(1) FROM items WHERE code = ?`, code).Scan(&n); err != nil {
		return false, fmt.Errorf("code exists: %w", err)
	}
	return n > 0, nil
}

// List lista ítems por fecha de creación descendente aplicando el filtro.
func (r *ItemRepo) List(ctx context.Context, f entity.ItemFilter) ([]*entity.Item, error) {
	var where []string
	var args []any
	if f.ActiveOnly {
		where = append(where, `is_active = 1`)
	}
	if f.Search != "" {
		where = append(where, `name LIKE ? ESCAPE '\'`)
		args = append(args, likePattern(f.Search))
	}
	if f.WarehouseID != nil {
		where = append(where, `warehouse_id = ?`)
		args = append(args, *f.WarehouseID)
	}
	query := `SELECT ` + itemColumns + ` FROM items`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, ` AND `)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	var list []*entity.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// Deactivate retira un ítem activo.
func (r *ItemRepo) Deactivate(ctx context.Context, id int64) (bool, error) {
	res, err := r.q.ExecContext(ctx, `UPDATE items SET is_active = 0 WHERE id = ? AND is_active = 1`, id)
	if err != nil {
		return false, fmt.Errorf("deactivate item: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("deactivate item: %w", err)
	}
	return n > 0, nil
}

// SetWarehouse asigna o limpia la bodega de un ítem.
func (r *ItemRepo) SetWarehouse(ctx context.Context, id int64, warehouseID *int64) error {
	if _, err := r.q.ExecContext(ctx,
		`UPDATE items SET warehouse_id = ? WHERE id = ?`, toNullInt64(warehouseID), id,
	); err != nil {
		return fmt.Errorf("set item warehouse: %w", err)
	}
	return nil
}

// ClearWarehouse desvincula todos los ítems de una bodega.
func (r *ItemRepo) ClearWarehouse(ctx context.Context, warehouseID int64) (int64, error) {
	res, err := r.q.ExecContext(ctx, `UPDATE items SET warehouse_id = NULL WHERE warehouse_id = ?`, warehouseID)
	if err != nil {
		return 0, fmt.Errorf("clear warehouse items: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("clear warehouse items: %w", err)
	}
	return n, nil
}

// Delete elimina un ítem por ID.
func (r *ItemRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.q.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

// scanItem devuelve (nil, nil) si no hay fila.
func scanItem(s scanner) (*entity.Item, error) {
	var it entity.Item
	var quantity sql.NullString
	var warehouseID sql.NullInt64
	err := s.Scan(&it.ID, &it.Code, &it.Name, &quantity, &it.CreatedAt, &it.IsActive, &warehouseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	it.Quantity = nullString(quantity)
	it.WarehouseID = nullInt64(warehouseID)
	return &it, nil
}
