package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jhoicas/lager-api/internal/domain"
	"github.com/jhoicas/lager-api/internal/domain/entity"
	"github.com/jhoicas/lager-api/internal/domain/repository"
)

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

const warehouseColumns = `id, name, location, created_at, is_active`

// WarehouseRepo implementación del puerto WarehouseRepository sobre SQLite (usable con db o tx).
type WarehouseRepo struct {
	q querier
}

// NewWarehouseRepository construye el adaptador de persistencia para bodegas.
func NewWarehouseRepository(q querier) *WarehouseRepo {
	return &WarehouseRepo{q: q}
}

// Create persiste una nueva bodega y asigna su ID.
func (r *WarehouseRepo) Create(ctx context.Context, w *entity.Warehouse) error {
	res, err := r.q.ExecContext(ctx,
		`INSERT INTO warehouses (name, location, created_at, is_active) VALUES (?, ?, ?, ?)`,
		w.Name, toNullString(w.Location), w.CreatedAt, w.IsActive,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert warehouse: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("warehouse id: %w", err)
	}
	w.ID = id
	return nil
}

// GetByID obtiene una bodega por ID.
func (r *WarehouseRepo) GetByID(ctx context.Context, id int64) (*entity.Warehouse, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+warehouseColumns+` FROM warehouses WHERE id = ?`, id)
	w, err := scanWarehouse(row)
	if err != nil {
		return nil, fmt.Errorf("get warehouse: %w", err)
	}
	return w, nil
}

// GetByName obtiene una bodega por nombre exacto.
func (r *WarehouseRepo) GetByName(ctx context.Context, name string) (*entity.Warehouse, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+warehouseColumns+` FROM warehouses WHERE name = ?`, name)
	w, err := scanWarehouse(row)
	if err != nil {
		return nil, fmt.Errorf("get warehouse by name: %w", err)
	}
	return w, nil
}

// Update sobrescribe nombre, ubicación y estado.
func (r *WarehouseRepo) Update(ctx context.Context, w *entity.Warehouse) error {
	_, err := r.q.ExecContext(ctx,
		`UPDATE warehouses SET name = ?, location = ?, is_active = ? WHERE id = ?`,
		w.Name, toNullString(w.Location), w.IsActive, w.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update warehouse: %w", err)
	}
	return nil
}

// List lista bodegas por nombre ascendente.
func (r *WarehouseRepo) List(ctx context.Context, activeOnly bool) ([]*entity.Warehouse, error) {
	query := `SELECT ` + warehouseColumns + ` FROM warehouses`
	if activeOnly {
		query += ` WHERE is_active = 1`
	}
	query += ` ORDER BY name ASC`
	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list warehouses: %w", err)
	}
	defer rows.Close()
	var list []*entity.Warehouse
	for rows.Next() {
		w, err := scanWarehouse(rows)
		if err != nil {
			return nil, fmt.Errorf("scan warehouse: %w", err)
		}
		list = append(list, w)
	}
	return list, rows.Err()
}

// Delete elimina una bodega por ID.
func (r *WarehouseRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.q.ExecContext(ctx, `DELETE FROM warehouses WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete warehouse: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

// scanWarehouse devuelve (nil, nil) si no hay fila.
func scanWarehouse(s scanner) (*entity.Warehouse, error) {
	var w entity.Warehouse
	var location sql.NullString
	err := s.Scan(&w.ID, &w.Name, &location, &w.CreatedAt, &w.IsActive)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	w.Location = nullString(location)
	return &w, nil
}
