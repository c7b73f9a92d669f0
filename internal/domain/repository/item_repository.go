package repository

import (
	"context"

	"github.com/jhoicas/lager-api/internal/domain/entity"
)

// ItemRepository define el puerto de persistencia para Item (DIP).
// Las búsquedas devuelven (nil, nil) cuando no existe el registro.
type ItemRepository interface {
	// Create persiste el ítem y asigna ID. Devuelve domain.ErrDuplicate si el código ya existe.
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id int64) (*entity.Item, error)
	// GetActiveByCode solo encuentra ítems activos.
	GetActiveByCode(ctx context.Context, code string) (*entity.Item, error)
	// CodeExists considera ítems activos e inactivos.
	CodeExists(ctx context.Context, code string) (bool, error)
	List(ctx context.Context, filter entity.ItemFilter) ([]*entity.Item, error)
	// Deactivate marca el ítem como retirado; devuelve false si ya estaba inactivo o no existe.
	Deactivate(ctx context.Context, id int64) (bool, error)
	SetWarehouse(ctx context.Context, id int64, warehouseID *int64) error
	// ClearWarehouse desvincula todos los ítems de la bodega y devuelve cuántos cambiaron.
	ClearWarehouse(ctx context.Context, warehouseID int64) (int64, error)
	Delete(ctx context.Context, id int64) error
}
