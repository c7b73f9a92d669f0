package repository

import (
	"context"

	"github.com/jhoicas/lager-api/internal/domain/entity"
)

// WarehouseRepository define el puerto de persistencia para Warehouse (DIP).
// Las búsquedas devuelven (nil, nil) cuando no existe el registro.
type WarehouseRepository interface {
	// Create persiste la bodega y asigna ID. Devuelve domain.ErrDuplicate si el nombre ya existe.
	Create(ctx context.Context, warehouse *entity.Warehouse) error
	GetByID(ctx context.Context, id int64) (*entity.Warehouse, error)
	GetByName(ctx context.Context, name string) (*entity.Warehouse, error)
	// Update sobrescribe nombre, ubicación y estado. Devuelve domain.ErrDuplicate si el nombre ya existe.
	Update(ctx context.Context, warehouse *entity.Warehouse) error
	List(ctx context.Context, activeOnly bool) ([]*entity.Warehouse, error)
	Delete(ctx context.Context, id int64) error
}
