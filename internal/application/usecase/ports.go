package usecase

import (
	"context"
	"io"

	"github.com/jhoicas/lager-api/internal/application/dto"
	"github.com/jhoicas/lager-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Cada operación de los registros abre y libera exactamente una transacción.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		warehouseRepo repository.WarehouseRepository,
		itemRepo repository.ItemRepository,
	) error) error
}

// QREncoder convierte un texto corto en la imagen PNG de su código QR.
type QREncoder interface {
	EncodePNG(content string) ([]byte, error)
}

// ArtifactStore guarda las imágenes generadas, indexadas por el código del ítem.
type ArtifactStore interface {
	// Save guarda la imagen y devuelve su ubicación.
	Save(ctx context.Context, code string, png []byte) (string, error)
	// Open devuelve domain.ErrNotFound si no existe imagen para el código.
	Open(ctx context.Context, code string) (io.ReadCloser, error)
	// Remove no falla si la imagen no existe.
	Remove(ctx context.Context, code string) error
}

// LabelRenderer genera la etiqueta imprimible (PDF) de un ítem.
type LabelRenderer interface {
	RenderItemLabel(ctx context.Context, label dto.ItemLabel) ([]byte, error)
}

// CodeGenerator produce códigos cortos candidatos para ítems nuevos.
type CodeGenerator interface {
	NewCode() string
}
