package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/lager-api/internal/application/dto"
	"github.com/jhoicas/lager-api/internal/domain"
	"github.com/jhoicas/lager-api/internal/domain/entity"
	"github.com/jhoicas/lager-api/internal/domain/repository"
)

// WarehouseUseCase casos de uso del registro de bodegas.
type WarehouseUseCase struct {
	tx  TxRunner
	now func() time.Time
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(tx TxRunner) *WarehouseUseCase {
	return &WarehouseUseCase{tx: tx, now: time.Now}
}

// Create crea una nueva bodega activa. El nombre debe ser único entre todas las bodegas.
func (uc *WarehouseUseCase) Create(ctx context.Context, in dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error) {
	name := in.Name
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: name es requerido", domain.ErrInvalidInput)
	}
	warehouse := &entity.Warehouse{
		Name:      name,
		Location:  in.Location,
		CreatedAt: uc.now().UTC(),
		IsActive:  true,
	}
	err := uc.tx.Run(ctx, func(warehouses repository.WarehouseRepository, _ repository.ItemRepository) error {
		existing, err := warehouses.GetByName(ctx, name)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrConflict
		}
		return warehouses.Create(ctx, warehouse)
	})
	if err != nil {
		return nil, conflictOnDuplicate(err)
	}
	return toWarehouseResponse(warehouse), nil
}

// List lista bodegas ordenadas por nombre, opcionalmente solo las activas.
func (uc *WarehouseUseCase) List(ctx context.Context, activeOnly bool) ([]dto.WarehouseResponse, error) {
	var list []*entity.Warehouse
	err := uc.tx.Run(ctx, func(warehouses repository.WarehouseRepository, _ repository.ItemRepository) error {
		var err error
		list, err = warehouses.List(ctx, activeOnly)
		return err
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.WarehouseResponse, 0, len(list))
	for _, w := range list {
		out = append(out, *toWarehouseResponse(w))
	}
	return out, nil
}

// GetByID obtiene una bodega por ID, activa o no.
func (uc *WarehouseUseCase) GetByID(ctx context.Context, id int64) (*dto.WarehouseResponse, error) {
	var warehouse *entity.Warehouse
	err := uc.tx.Run(ctx, func(warehouses repository.WarehouseRepository, _ repository.ItemRepository) error {
		var err error
		warehouse, err = warehouses.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if warehouse == nil {
			return domain.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toWarehouseResponse(warehouse), nil
}

// Update actualiza los campos informados de una bodega.
func (uc *WarehouseUseCase) Update(ctx context.Context, id int64, in dto.UpdateWarehouseRequest) (*dto.WarehouseResponse, error) {
	var name string
	if in.Name != nil {
		name = *in.Name
		if strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("%w: name no puede estar vacío", domain.ErrInvalidInput)
		}
	}
	var warehouse *entity.Warehouse
	err := uc.tx.Run(ctx, func(warehouses repository.WarehouseRepository, _ repository.ItemRepository) error {
		var err error
		warehouse, err = warehouses.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if warehouse == nil {
			return domain.ErrNotFound
		}
		if in.Name != nil {
			other, err := warehouses.GetByName(ctx, name)
			if err != nil {
				return err
			}
			if other != nil && other.ID != id {
				return domain.ErrConflict
			}
			warehouse.Name = name
		}
		if in.Location != nil {
			warehouse.Location = in.Location
		}
		if in.IsActive != nil {
			warehouse.IsActive = *in.IsActive
		}
		return warehouses.Update(ctx, warehouse)
	})
	if err != nil {
		return nil, conflictOnDuplicate(err)
	}
	return toWarehouseResponse(warehouse), nil
}

// Delete borra definitivamente una bodega. Primero desvincula sus ítems y luego elimina la fila,
// ambos pasos dentro de la misma transacción.
func (uc *WarehouseUseCase) Delete(ctx context.Context, id int64) (*dto.DeletedResponse, error) {
	err := uc.tx.Run(ctx, func(warehouses repository.WarehouseRepository, items repository.ItemRepository) error {
		warehouse, err := warehouses.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if warehouse == nil {
			return domain.ErrNotFound
		}
		if _, err := items.ClearWarehouse(ctx, id); err != nil {
			return err
		}
		return warehouses.Delete(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return &dto.DeletedResponse{Message: "Warehouse deleted", ID: id}, nil
}

// ListItems lista los ítems de una bodega, más recientes primero.
func (uc *WarehouseUseCase) ListItems(ctx context.Context, id int64, activeOnly bool) ([]dto.ItemResponse, error) {
	var list []*entity.Item
	err := uc.tx.Run(ctx, func(warehouses repository.WarehouseRepository, items repository.ItemRepository) error {
		warehouse, err := warehouses.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if warehouse == nil {
			return domain.ErrNotFound
		}
		list, err = items.List(ctx, entity.ItemFilter{ActiveOnly: activeOnly, WarehouseID: &id})
		return err
	})
	if err != nil {
		return nil, err
	}
	return toItemResponses(list), nil
}

// requireActiveWarehouse resuelve una bodega existente y activa; cualquier otro caso es ErrNotFound.
func requireActiveWarehouse(ctx context.Context, warehouses repository.WarehouseRepository, id int64) (*entity.Warehouse, error) {
	warehouse, err := warehouses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if warehouse == nil || !warehouse.IsActive {
		return nil, fmt.Errorf("%w: bodega %d no existe o está inactiva", domain.ErrNotFound, id)
	}
	return warehouse, nil
}

// conflictOnDuplicate traduce la violación del índice único (carrera entre dos altas) a ErrConflict.
func conflictOnDuplicate(err error) error {
	if errors.Is(err, domain.ErrDuplicate) {
		return domain.ErrConflict
	}
	return err
}

func toWarehouseResponse(w *entity.Warehouse) *dto.WarehouseResponse {
	if w == nil {
		return nil
	}
	return &dto.WarehouseResponse{
		ID:        w.ID,
		Name:      w.Name,
		Location:  w.Location,
		CreatedAt: w.CreatedAt,
		IsActive:  w.IsActive,
	}
}
