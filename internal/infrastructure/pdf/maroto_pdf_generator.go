// Package pdf genera el reporte de ventas del panel admin en A4.
//
// Layout de la página:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre de la tienda │ LAPORAN PENJUALAN + periodo   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Tanggal | Pesanan | Barang | Kategori | Qty | ...    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Total barang / Total pendapatan                    │
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
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/storefront-api/internal/application/dto"
	"github.com/jhoicas/storefront-api/internal/application/report"
)

var _ report.SalesPDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 22, Green: 101, Blue: 52}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa report.SalesPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	storeName string
}

// NewMarotoPDFGenerator construye el generador; storeName va en el encabezado.
func NewMarotoPDFGenerator(storeName string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{storeName: storeName}
}

// GenerateSalesReport genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateSalesReport(_ context.Context, rep *dto.SalesReportResponse) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Laporan Penjualan", true).
		WithAuthor(g.storeName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(rep))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	if len(rep.Rows) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("Tidak ada penjualan pada periode ini.", props.Text{
				Size: 9, Align: align.Center, Color: colorGray, Top: 3,
			}),
		)))
	}
	m.AddRows(tableDetailRows(rep.Rows)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(rep))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre de la tienda (izq) y título + periodo (der).
func (g *MarotoPDFGenerator) headerRow(rep *dto.SalesReportResponse) core.Row {
	filtro := "Semua kategori"
	if rep.CategoryID > 0 {
		filtro = fmt.Sprintf("Kategori #%d", rep.CategoryID)
	}
	return row.New(18).Add(
		col.New(6).Add(
			text.New(g.storeName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(filtro, props.Text{Size: 8, Top: 9, Color: colorGray}),
		),
		col.New(6).Add(
			text.New("LAPORAN PENJUALAN", props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Periode: "+period(rep.StartDate, rep.EndDate), props.Text{
				Size: 8, Align: align.Right, Top: 8,
			}),
			text.New("Dibuat: "+rep.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Tanggal", 2, align.Left),
		h("Pesanan", 1, align.Center),
		h("Nama Barang", 3, align.Left),
		h("Kategori", 2, align.Left),
		h("Qty", 1, align.Center),
		h("Harga", 1, align.Right),
		h("Total", 2, align.Right),
	)
}

// tableDetailRows: una fila por venta.
func tableDetailRows(rows []dto.SalesRow) []core.Row {
	result := make([]core.Row, 0, len(rows))
	for _, r := range rows {
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(r.Tanggal.Format("02/01/2006"), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(fmt.Sprintf("#%d", r.OrderID), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(3).Add(text.New(r.NamaBarang, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(nonEmpty(r.CategoryNama, "-"), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(fmt.Sprint(r.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(1).Add(text.New(FormatRupiah(r.HargaBarang), props.Text{Size: 7, Align: align.Right, Top: 1})),
			col.New(2).Add(text.New(FormatRupiah(r.Total), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(rep *dto.SalesReportResponse) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	return row.New(16).Add(
		col.New(6),
		col.New(3).Add(
			label("Total barang:"),
			text.New("Total pendapatan:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 6,
			}),
		),
		col.New(3).Add(
			text.New(fmt.Sprint(rep.TotalItems), props.Text{Size: 9, Align: align.Right, Right: 1}),
			text.New(FormatRupiah(rep.TotalRevenue), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 6,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

var idPrinter = message.NewPrinter(language.Indonesian)

// FormatRupiah redondea a rupias enteras con separador de miles del locale id.
// Ej: 1234567.5 → "Rp 1.234.568"
func FormatRupiah(d decimal.Decimal) string {
	return "Rp " + idPrinter.Sprintf("%d", d.Round(0).IntPart())
}

func period(start, end string) string {
	switch {
	case start == "" && end == "":
		return "semua"
	case start == "":
		return "s/d " + end
	case end == "":
		return start + " s/d sekarang"
	}
	return start + " s/d " + end
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
