// Package pdf genera el acta de entrega de EPP (elementos de protección personal).
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Organización         │  N° Entrega + Fecha          │
//	│  TRABAJADOR: Nombre + ID / Área / Cargo                      │
//	│  TABLA: Cant | Equipo | Talla | Costo Unit. | Subtotal       │
//	│  TOTAL                                                       │
//	│  FIRMAS: Trabajador │ Autoriza       QR(ID de la entrega)    │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/entregas-epp/internal/application/delivery"
	"github.com/jhoicas/entregas-epp/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ delivery.DeliveryPDFGenerator = (*DeliveryPDFGenerator)(nil)

// DeliveryPDFGenerator implementa delivery.DeliveryPDFGenerator usando Maroto v2.
type DeliveryPDFGenerator struct {
	organization string
}

// NewDeliveryPDFGenerator construye el generador; organization va en el encabezado.
func NewDeliveryPDFGenerator(organization string) *DeliveryPDFGenerator {
	return &DeliveryPDFGenerator{organization: organization}
}

// GenerateDeliveryPDF genera el acta y devuelve sus bytes.
func (g *DeliveryPDFGenerator) GenerateDeliveryPDF(ctx context.Context, d *entity.Delivery, lines []delivery.PDFLine) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Acta de entrega de EPP", true).
		WithAuthor(nonEmpty(g.organization, "Entregas EPP"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(d))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(workerRow(d))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(itemRows(lines)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(d.TotalAmount))

	if d.Notes != "" {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("Observaciones: "+d.Notes, props.Text{Size: 8, Top: 2, Color: colorGray}),
		)))
	}
	m.AddRows(row.New(8))
	m.AddRows(signatureRow(d))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: organización (izq) y número de entrega + fecha (der).
func (g *DeliveryPDFGenerator) headerRow(d *entity.Delivery) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(g.organization, "Entregas EPP"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Seguridad y salud en el trabajo", props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("ACTA DE ENTREGA DE EPP", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(shortID(d.ID), props.Text{Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7}),
			text.New("Fecha: "+d.DeliveryDate.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func workerRow(d *entity.Delivery) core.Row {
	return row.New(16).Add(
		col.New(12).Add(
			text.New("TRABAJADOR", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(nonEmpty(d.WorkerName, d.WorkerID), props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(fmt.Sprintf("ID: %s   |   Área: %s   |   Cargo: %s",
				nonEmpty(d.WorkerID, "-"),
				nonEmpty(d.Area, "-"),
				nonEmpty(d.Position, "-"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Equipo", 5, align.Left),
		h("Talla", 2, align.Center),
		h("Costo Unit.", 2, align.Right),
		h("Subtotal", 2, align.Right),
	)
}

func itemRows(lines []delivery.PDFLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(fmt.Sprintf("%d", l.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(5).Add(text.New(l.EquipmentName, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(nonEmpty(l.VariantLabel, "-"), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(money(l.UnitCost), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(money(l.Subtotal()), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

func totalRow(total decimal.Decimal) core.Row {
	return row.New(10).Add(
		col.New(8),
		col.New(2).Add(text.New("TOTAL:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2, Right: 2,
		})),
		col.New(2).Add(text.New(money(total), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2, Right: 1,
		})),
	)
}

// signatureRow: firmas del trabajador y de quien autoriza, con QR del ID de la entrega.
func signatureRow(d *entity.Delivery) core.Row {
	sign := func(label, name string) core.Col {
		return col.New(4).Add(
			text.New("______________________________", props.Text{Size: 9, Align: align.Center, Top: 18}),
			text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Center, Top: 24}),
			text.New(name, props.Text{Size: 8, Align: align.Center, Top: 29, Color: colorGray}),
		)
	}
	return row.New(40).Add(
		sign("Recibí conforme", nonEmpty(d.WorkerName, d.WorkerID)),
		sign("Autoriza", nonEmpty(d.AuthorizedBy, "-")),
		col.New(4).Add(code.NewQr(d.ID, props.Rect{Percent: 80, Center: true})),
	)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// shortID primeros 8 caracteres del UUID, en mayúsculas.
func shortID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return "N° " + strings.ToUpper(id)
}

// money formatea con signo $ y puntos de miles, sin decimales. Ej: 1250000 -> "$1.250.000".
func money(d decimal.Decimal) string {
	s := d.Round(0).Abs().StringFixed(0)
	n := len(s)
	buf := make([]byte, 0, n+n/3+2)
	if d.Round(0).IsNegative() {
		buf = append(buf, '-')
	}
	buf = append(buf, '$')
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
