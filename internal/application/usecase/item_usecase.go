package usecase

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jhoicas/lager-api/internal/application/dto"
	"github.com/jhoicas/lager-api/internal/domain"
	"github.com/jhoicas/lager-api/internal/domain/entity"
	"github.com/jhoicas/lager-api/internal/domain/repository"
	"github.com/jhoicas/lager-api/pkg/logger"
)

// ItemUseCase casos de uso del registro de ítems: alta con código QR, búsqueda, retiro y traslado.
type ItemUseCase struct {
	tx        TxRunner
	codes     CodeGenerator
	encoder   QREncoder
	artifacts ArtifactStore
	labels    LabelRenderer
	log       *logger.Logger
	now       func() time.Time
}

// NewItemUseCase construye el caso de uso. Si codes es nil se usan prefijos de UUID.
func NewItemUseCase(
	tx TxRunner,
	codes CodeGenerator,
	encoder QREncoder,
	artifacts ArtifactStore,
	labels LabelRenderer,
	log *logger.Logger,
) *ItemUseCase {
	if codes == nil {
		codes = UUIDCodeGenerator{}
	}
	return &ItemUseCase{
		tx:        tx,
		codes:     codes,
		encoder:   encoder,
		artifacts: artifacts,
		labels:    labels,
		log:       log,
		now:       time.Now,
	}
}

// Create registra un ítem activo, opcionalmente en una bodega activa, y genera su código QR.
// Si la transacción falla después de guardar la imagen, la imagen se descarta.
func (uc *ItemUseCase) Create(ctx context.Context, in dto.CreateItemRequest) (*dto.CreatedItemResponse, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: name es requerido", domain.ErrInvalidInput)
	}
	item := &entity.Item{
		Name:        in.Name,
		Quantity:    in.Quantity,
		WarehouseID: in.WarehouseID,
		CreatedAt:   uc.now().UTC(),
		IsActive:    true,
	}
	var location string
	saved := false
	err := uc.tx.Run(ctx, func(warehouses repository.WarehouseRepository, items repository.ItemRepository) error {
		if item.WarehouseID != nil {
			if _, err := requireActiveWarehouse(ctx, warehouses, *item.WarehouseID); err != nil {
				return err
			}
		}
		code, err := uc.freeCode(ctx, items)
		if err != nil {
			return err
		}
		item.Code = code
		if err := items.Create(ctx, item); err != nil {
			return fmt.Errorf("crear ítem %s: %w", code, err)
		}
		png, err := uc.encoder.EncodePNG(item.Code)
		if err != nil {
			return fmt.Errorf("generar código QR: %w", err)
		}
		location, err = uc.artifacts.Save(ctx, item.Code, png)
		if err != nil {
			return fmt.Errorf("guardar código QR: %w", err)
		}
		saved = true
		return nil
	})
	if err != nil {
		if saved {
			uc.discardArtifact(ctx, item.Code)
		}
		return nil, err
	}
	return &dto.CreatedItemResponse{
		ID:               item.ID,
		Code:             item.Code,
		Name:             item.Name,
		ArtifactLocation: location,
		Quantity:         item.Quantity,
		WarehouseID:      item.WarehouseID,
	}, nil
}

// List lista ítems, más recientes primero, filtrando por estado y por subcadena del nombre.
func (uc *ItemUseCase) List(ctx context.Context, in dto.ListItemsRequest) ([]dto.ItemResponse, error) {
	var list []*entity.Item
	err := uc.tx.Run(ctx, func(_ repository.WarehouseRepository, items repository.ItemRepository) error {
		var err error
		list, err = items.List(ctx, entity.ItemFilter{ActiveOnly: in.ActiveOnly, Search: in.Search})
		return err
	})
	if err != nil {
		return nil, err
	}
	return toItemResponses(list), nil
}

// GetByCode obtiene un ítem activo por su código. Los ítems retirados no son visibles.
func (uc *ItemUseCase) GetByCode(ctx context.Context, code string) (*dto.ItemResponse, error) {
	var item *entity.Item
	err := uc.tx.Run(ctx, func(_ repository.WarehouseRepository, items repository.ItemRepository) error {
		var err error
		item, err = activeItem(ctx, items, code)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// Delete borra definitivamente un ítem (activo o no) junto con su código QR.
func (uc *ItemUseCase) Delete(ctx context.Context, id int64) (*dto.DeletedResponse, error) {
	err := uc.tx.Run(ctx, func(_ repository.WarehouseRepository, items repository.ItemRepository) error {
		item, err := items.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		if err := uc.artifacts.Remove(ctx, item.Code); err != nil {
			return fmt.Errorf("borrar código QR: %w", err)
		}
		return items.Delete(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return &dto.DeletedResponse{Message: "Item deleted", ID: id}, nil
}

// Checkout retira un ítem activo. Un segundo retiro del mismo código devuelve ErrNotFound.
func (uc *ItemUseCase) Checkout(ctx context.Context, code string) (*dto.CheckoutResponse, error) {
	err := uc.tx.Run(ctx, func(_ repository.WarehouseRepository, items repository.ItemRepository) error {
		item, err := activeItem(ctx, items, code)
		if err != nil {
			return err
		}
		changed, err := items.Deactivate(ctx, item.ID)
		if err != nil {
			return err
		}
		if !changed {
			return domain.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dto.CheckoutResponse{Message: fmt.Sprintf("Item %s checked out", code), Code: code}, nil
}

// Move traslada un ítem activo a otra bodega activa, o lo desvincula si warehouseID es nil.
func (uc *ItemUseCase) Move(ctx context.Context, code string, warehouseID *int64) (*dto.MoveItemResponse, error) {
	var item *entity.Item
	err := uc.tx.Run(ctx, func(warehouses repository.WarehouseRepository, items repository.ItemRepository) error {
		var err error
		item, err = activeItem(ctx, items, code)
		if err != nil {
			return err
		}
		if warehouseID != nil {
			if _, err := requireActiveWarehouse(ctx, warehouses, *warehouseID); err != nil {
				return err
			}
		}
		if err := items.SetWarehouse(ctx, item.ID, warehouseID); err != nil {
			return err
		}
		item.WarehouseID = warehouseID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dto.MoveItemResponse{ID: item.ID, Code: item.Code, WarehouseID: item.WarehouseID}, nil
}

// QRCode abre la imagen del código QR. No consulta la BD: la imagen existe mientras exista el ítem.
func (uc *ItemUseCase) QRCode(ctx context.Context, code string) (io.ReadCloser, error) {
	return uc.artifacts.Open(ctx, code)
}

// Label genera la etiqueta PDF de un ítem activo.
func (uc *ItemUseCase) Label(ctx context.Context, code string) ([]byte, error) {
	var label dto.ItemLabel
	err := uc.tx.Run(ctx, func(warehouses repository.WarehouseRepository, items repository.ItemRepository) error {
		item, err := activeItem(ctx, items, code)
		if err != nil {
			return err
		}
		label = dto.ItemLabel{Code: item.Code, Name: item.Name}
		if item.Quantity != nil {
			label.Quantity = *item.Quantity
		}
		if item.WarehouseID != nil {
			warehouse, err := warehouses.GetByID(ctx, *item.WarehouseID)
			if err != nil {
				return err
			}
			if warehouse != nil {
				label.WarehouseName = warehouse.Name
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uc.labels.RenderItemLabel(ctx, label)
}

// freeCode busca un código que no use ningún ítem. El índice único sigue siendo la garantía final.
func (uc *ItemUseCase) freeCode(ctx context.Context, items repository.ItemRepository) (string, error) {
	for i := 0; i < maxCodeAttempts; i++ {
		code := uc.codes.NewCode()
		exists, err := items.CodeExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", fmt.Errorf("sin código libre tras %d intentos", maxCodeAttempts)
}

func (uc *ItemUseCase) discardArtifact(ctx context.Context, code string) {
	if err := uc.artifacts.Remove(ctx, code); err != nil && uc.log != nil {
		uc.log.Warn().Err(err).Str("code", code).Msg("no se pudo descartar el código QR huérfano")
	}
}

func activeItem(ctx context.Context, items repository.ItemRepository, code string) (*entity.Item, error) {
	item, err := items.GetActiveByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("%w: ítem %s no existe o ya fue retirado", domain.ErrNotFound, code)
	}
	return item, nil
}

func toItemResponse(it *entity.Item) *dto.ItemResponse {
	if it == nil {
		return nil
	}
	return &dto.ItemResponse{
		ID:          it.ID,
		Name:        it.Name,
		Code:        it.Code,
		Quantity:    it.Quantity,
		CreatedAt:   it.CreatedAt,
		IsActive:    it.IsActive,
		WarehouseID: it.WarehouseID,
	}
}

func toItemResponses(list []*entity.Item) []dto.ItemResponse {
	out := make([]dto.ItemResponse, 0, len(list))
	for _, it := range list {
		out = append(out, *toItemResponse(it))
	}
	return out
}
