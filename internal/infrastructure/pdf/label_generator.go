// Package pdf genera etiquetas imprimibles para los ítems del inventario.
//
// Layout de la etiqueta (100 x 60 mm):
//
//	┌──────────────────────────────────────┐
//	│  ┌────────┐  NOMBRE DEL ÍTEM         │
//	│  │   QR   │  Cantidad: ...           │
//	│  │        │  Bodega: ...             │
//	│  └────────┘                          │
//	│  ────────────────────────────────    │
//	│  CÓDIGO                              │
//	└──────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/lager-api/internal/application/dto"
	"github.com/jhoicas/lager-api/internal/application/usecase"
)

var _ usecase.LabelRenderer = (*LabelGenerator)(nil)

const (
	labelWidth  = 100.0
	labelHeight = 60.0
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// LabelGenerator implementa usecase.LabelRenderer usando Maroto v2.
type LabelGenerator struct{}

// NewLabelGenerator construye el generador.
func NewLabelGenerator() *LabelGenerator { return &LabelGenerator{} }

// RenderItemLabel genera el PDF de una etiqueta y devuelve sus bytes.
func (g *LabelGenerator) RenderItemLabel(_ context.Context, label dto.ItemLabel) ([]byte, error) {
	cfg := config.NewBuilder().
		WithDimensions(labelWidth, labelHeight).
		WithLeftMargin(4).WithRightMargin(4).
		WithTopMargin(4).WithBottomMargin(2).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Etiqueta "+label.Code, true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(bodyRow(label))
	m.AddRows(line.NewRow(2, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(codeRow(label.Code))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar etiqueta: %w", err)
	}
	return doc.GetBytes(), nil
}

// bodyRow: QR (izq) y datos del ítem (der).
func bodyRow(label dto.ItemLabel) core.Row {
	return row.New(36).Add(
		col.New(5).Add(code.NewQr(label.Code, props.Rect{
			Percent: 95,
			Center:  true,
		})),
		col.New(7).Add(
			text.New(label.Name, props.Text{
				Style: fontstyle.Bold, Size: 11, Top: 2, Left: 2, Color: colorPrimary,
			}),
			text.New("Cantidad: "+nonEmpty(label.Quantity, "-"), props.Text{
				Size: 8, Top: 16, Left: 2, Color: colorGray,
			}),
			text.New("Bodega: "+nonEmpty(label.WarehouseName, "sin asignar"), props.Text{
				Size: 8, Top: 22, Left: 2, Color: colorGray,
			}),
		),
	)
}

func codeRow(c string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(c, props.Text{
			Style: fontstyle.Bold, Size: 12, Align: align.Center, Top: 1, Family: "courier",
		}),
	))
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
