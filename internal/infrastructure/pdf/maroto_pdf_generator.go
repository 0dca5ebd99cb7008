// Package pdf implementa la generación del estado de cuenta imprimible de una
// factura de agua por apartamento.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Edificio + Dirección  │  N° Factura + Periodo       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ARRENDATARIO: Nombre + Apartamento                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Concepto | Lectura/Consumo | Tarifa | Monto          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Agua / Bombeo / TOTAL A PAGAR                      │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
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

	appbilling "github.com/Check-karim/apartement-management-system-sub000/internal/application/billing"
	"github.com/Check-karim/apartement-management-system-sub000/internal/application/notify"
	"github.com/Check-karim/apartement-management-system-sub000/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 90, Blue: 140}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ appbilling.BillPDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa billing.BillPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	formatter notify.CurrencyFormatter
}

// NewMarotoPDFGenerator construye el generador con el formateador de moneda.
func NewMarotoPDFGenerator(formatter notify.CurrencyFormatter) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{formatter: formatter}
}

// GenerateBillPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateBillPDF(
	_ context.Context,
	bill *entity.Bill,
	apartment *entity.Apartment,
	building *entity.Building,
	invoice *entity.UtilityInvoice,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Factura de Agua", true).
		WithAuthor(building.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(bill, building, invoice))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(g.tenantRow(apartment))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range g.tableDetailRows(bill) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalsRow(bill))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: edificio + dirección (izq) y N° de factura + periodo (der).
func (g *MarotoPDFGenerator) headerRow(bill *entity.Bill, building *entity.Building, invoice *entity.UtilityInvoice) core.Row {
	periodo := invoice.PeriodStart.Format("02/01/2006") + " - " + invoice.PeriodEnd.Format("02/01/2006")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(building.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(building.Address, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("FACTURA DE AGUA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(bill.ID, props.Text{
				Size: 7, Align: align.Right, Top: 8, Color: colorGray,
			}),
			text.New("Periodo: "+periodo, props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

// tenantRow: datos del arrendatario y la unidad.
func (g *MarotoPDFGenerator) tenantRow(apartment *entity.Apartment) core.Row {
	return row.New(12).Add(
		col.New(7).Add(
			text.New("Arrendatario: "+apartment.TenantName, props.Text{Size: 9, Top: 2}),
			text.New("Apartamento: "+apartment.Number, props.Text{Size: 9, Top: 7}),
		),
		col.New(5).Add(
			text.New("Tel: "+apartment.TenantPhone, props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de desglose.
func tableHeaderRow() core.Row {
	header := props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}
	headerRight := props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1, Align: align.Right}
	return row.New(7).Add(
		col.New(5).Add(text.New("Concepto", header)),
		col.New(3).Add(text.New("Consumo (m³)", headerRight)),
		col.New(2).Add(text.New("Tarifa", headerRight)),
		col.New(2).Add(text.New("Monto", headerRight)),
	)
}

// tableDetailRows: lecturas del medidor y los dos conceptos de cobro.
func (g *MarotoPDFGenerator) tableDetailRows(bill *entity.Bill) []core.Row {
	cell := props.Text{Size: 8, Top: 1}
	cellRight := props.Text{Size: 8, Top: 1, Align: align.Right}
	lecturas := fmt.Sprintf("Lectura anterior %s — lectura actual %s",
		bill.PreviousReading.String(), bill.CurrentReading.String())

	return []core.Row{
		row.New(6).Add(
			col.New(12).Add(text.New(lecturas, props.Text{Size: 8, Top: 1, Color: colorGray})),
		),
		row.New(6).Add(
			col.New(5).Add(text.New("Consumo de agua", cell)),
			col.New(3).Add(text.New(bill.Consumed.String(), cellRight)),
			col.New(2).Add(text.New(bill.WaterRate.StringFixed(4), cellRight)),
			col.New(2).Add(text.New(g.formatter.Format(bill.WaterAmount), cellRight)),
		),
		row.New(6).Add(
			col.New(5).Add(text.New("Bombeo (costo compartido)", cell)),
			col.New(3).Add(text.New(bill.Consumed.String(), cellRight)),
			col.New(2).Add(text.New(bill.PumpRate.StringFixed(4), cellRight)),
			col.New(2).Add(text.New(g.formatter.Format(bill.PumpAmount), cellRight)),
		),
	}
}

// totalsRow: total a pagar y estado de pago.
func (g *MarotoPDFGenerator) totalsRow(bill *entity.Bill) core.Row {
	estado := "PENDIENTE"
	if bill.IsPaid {
		estado = "PAGADA"
	}
	return row.New(12).Add(
		col.New(7).Add(
			text.New("Estado: "+estado, props.Text{Size: 9, Top: 3, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("TOTAL A PAGAR", props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 1, Color: colorPrimary,
			}),
			text.New(g.formatter.Format(bill.TotalAmount), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 6,
			}),
		),
	)
}
