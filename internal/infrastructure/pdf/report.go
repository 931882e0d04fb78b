// Package pdf genera el reporte de inventario en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + servidor     │  Fecha de generación        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: Productos | Valor | Stock bajo | Agotados          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Categoría | SKUs | Unidades | Valor                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: SKU | Nombre | Stock | Mínimo | Estado               │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"time"

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

	"github.com/jhoicas/nexus-inventory/internal/domain/entity"
	"github.com/jhoicas/nexus-inventory/internal/domain/inventory"
	"github.com/jhoicas/nexus-inventory/pkg/money"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorDanger  = &props.Color{Red: 176, Green: 32, Blue: 32}
	colorWarning = &props.Color{Red: 191, Green: 120, Blue: 0}
)

// maxAttentionRows tope de filas en la tabla de productos que requieren atención.
const maxAttentionRows = 200

// ReportInput datos del reporte. Products es la instantánea del store de productos.
type ReportInput struct {
	Title       string
	Source      string
	GeneratedAt time.Time
	Products    []entity.Product
}

// ReportGenerator construye el reporte de inventario con Maroto v2.
type ReportGenerator struct{}

// NewReportGenerator construye el generador.
func NewReportGenerator() *ReportGenerator { return &ReportGenerator{} }

// GenerateInventoryReport genera el PDF y devuelve sus bytes.
func (g *ReportGenerator) GenerateInventoryReport(ctx context.Context, in ReportInput) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if in.Title == "" {
		in.Title = "Reporte de inventario"
	}
	if in.GeneratedAt.IsZero() {
		in.GeneratedAt = time.Now()
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(in.Title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(in))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(inventory.Summarize(in.Products)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle("VALOR POR CATEGORÍA"))
	m.AddRows(tableHeader([]column{{"Categoría", 6, align.Left}, {"SKUs", 2, align.Center}, {"Unidades", 2, align.Right}, {"Valor", 2, align.Right}}))
	m.AddRows(categoryRows(inventory.CategoryAggregate(in.Products))...)

	m.AddRows(line.NewRow(3))
	attention := inventory.NeedsAttention(in.Products)
	m.AddRows(sectionTitle(fmt.Sprintf("REQUIEREN ATENCIÓN (%d)", len(attention))))
	m.AddRows(tableHeader([]column{{"SKU", 3, align.Left}, {"Nombre", 5, align.Left}, {"Stock", 1, align.Right}, {"Mínimo", 1, align.Right}, {"Estado", 2, align.Center}}))
	m.AddRows(attentionRows(attention)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(in ReportInput) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(in.Title, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New(nonEmpty(in.Source, "—"), props.Text{Size: 8, Top: 9, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("Generado: "+in.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

func summaryRow(s inventory.Summary) core.Row {
	cell := func(label, value string, c *props.Color) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 7, Align: align.Center, Color: colorGray, Top: 1}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 12, Align: align.Center, Color: c, Top: 6}),
		)
	}
	return row.New(16).Add(
		cell("Productos", money.Units(s.TotalItems), colorPrimary),
		cell("Valor del inventario", money.Format(s.TotalValue), colorPrimary),
		cell("Stock bajo", money.Units(s.LowStockCount), colorWarning),
		cell("Agotados", money.Units(s.OutOfStockCount), colorDanger),
	)
}

func sectionTitle(title string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2}),
	))
}

type column struct {
	label string
	size  int
	align align.Type
}

func tableHeader(cols []column) core.Row {
	r := row.New(6)
	for _, c := range cols {
		r.Add(col.New(c.size).Add(text.New(c.label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: c.align, Top: 1, Left: 1, Right: 1,
		})))
	}
	return r
}

func categoryRows(rows []inventory.CategoryRow) []core.Row {
	if len(rows) == 0 {
		return []core.Row{emptyRow("Sin productos")}
	}
	out := make([]core.Row, 0, len(rows))
	for _, c := range rows {
		out = append(out, row.New(5).Add(
			col.New(6).Add(text.New(c.Category, props.Text{Size: 8, Left: 1})),
			col.New(2).Add(text.New(strconv.Itoa(c.SKUs), props.Text{Size: 8, Align: align.Center})),
			col.New(2).Add(text.New(money.Units(c.Units), props.Text{Size: 8, Align: align.Right, Right: 1})),
			col.New(2).Add(text.New(money.Format(c.Value), props.Text{Size: 8, Align: align.Right, Right: 1})),
		))
	}
	return out
}

func attentionRows(products []entity.Product) []core.Row {
	if len(products) == 0 {
		return []core.Row{emptyRow("Todo el inventario está en stock")}
	}
	if len(products) > maxAttentionRows {
		products = products[:maxAttentionRows]
	}
	out := make([]core.Row, 0, len(products))
	for _, p := range products {
		status := inventory.ClassifyStatus(p)
		c := colorWarning
		if status == inventory.StatusOutOfStock {
			c = colorDanger
		}
		out = append(out, row.New(5).Add(
			col.New(3).Add(text.New(p.SKU, props.Text{Size: 8, Left: 1})),
			col.New(5).Add(text.New(p.Name, props.Text{Size: 8})),
			col.New(1).Add(text.New(strconv.Itoa(p.StockQuantity), props.Text{Size: 8, Align: align.Right})),
			col.New(1).Add(text.New(strconv.Itoa(p.MinStockLevel), props.Text{Size: 8, Align: align.Right})),
			col.New(2).Add(text.New(statusLabel(status), props.Text{Size: 8, Align: align.Center, Color: c, Style: fontstyle.Bold})),
		))
	}
	return out
}

func emptyRow(msg string) core.Row {
	return row.New(6).Add(col.New(12).Add(
		text.New(msg, props.Text{Size: 8, Align: align.Center, Color: colorGray, Top: 1}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func statusLabel(s inventory.Status) string {
	switch s {
	case inventory.StatusOutOfStock:
		return "Agotado"
	case inventory.StatusLowStock:
		return "Stock bajo"
	}
	return "En stock"
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
