// Package qrcode codifica el código de un ítem como imagen QR en PNG.
package qrcode

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"

	"github.com/jhoicas/lager-api/internal/application/usecase"
)

var _ usecase.QREncoder = (*Encoder)(nil)

// DefaultSize lado por defecto de la imagen, en píxeles.
const DefaultSize = 256

// Encoder genera QR con corrección de errores media (M).
type Encoder struct {
	size int
}

// NewEncoder construye el encoder. size <= 0 usa DefaultSize.
func NewEncoder(size int) *Encoder {
	if size <= 0 {
		size = DefaultSize
	}
	return &Encoder{size: size}
}

// EncodePNG devuelve el PNG del QR cuyo contenido es exactamente content.
func (e *Encoder) EncodePNG(content string) ([]byte, error) {
	if content == "" {
		return nil, fmt.Errorf("qrcode: contenido vacío")
	}
	code, err := qr.Encode(content, qr.M, qr.Auto)
	if err != nil {
		return nil, fmt.Errorf("qrcode: codificar: %w", err)
	}
	scaled, err := barcode.Scale(code, e.size, e.size)
	if err != nil {
		return nil, fmt.Errorf("qrcode: escalar: %w", err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return nil, fmt.Errorf("qrcode: png: %w", err)
	}
	return buf.Bytes(), nil
}
