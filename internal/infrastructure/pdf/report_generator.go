// Package pdf genera el reporte de inventario exportable.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre de la tienda      │  Laporan Inventaris + Fecha │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TARJETAS: Nilai inventaris | Rata-rata harga | Stok rendah  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Kategori | Stok                                      │
//	│  TABLA: Produk stok rendah | Kategori | Stok                 │
//	│  TABLA: Bulan | Penjualan | Keuntungan                       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: aviso de productos sin categoría                    │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
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

	"github.com/andidelouise/TOKO-APP-V2/internal/application/dto"
	"github.com/andidelouise/TOKO-APP-V2/internal/application/reporting"
	"github.com/andidelouise/TOKO-APP-V2/pkg/rupiah"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 30, Green: 64, Blue: 175}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorDanger  = &props.Color{Red: 185, Green: 28, Blue: 28}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ reporting.ReportRenderer = (*ReportGenerator)(nil)

// ReportGenerator implementa reporting.ReportRenderer usando Maroto v2.
type ReportGenerator struct {
	title string
	now   func() time.Time
}

// NewReportGenerator construye el generador. title va en el encabezado (nombre de la tienda).
func NewReportGenerator(title string) *ReportGenerator {
	return &ReportGenerator{title: title, now: time.Now}
}

// Render genera el PDF y devuelve sus bytes.
func (g *ReportGenerator) Render(report *dto.ReportDTO) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("pdf: reporte nil")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Laporan Inventaris", true).
		WithAuthor(g.title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.title, g.now()))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(cardsRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle("Stok per Kategori"))
	m.AddRows(tableHeader([]string{"Kategori", "Stok"}, []int{8, 4}))
	for _, c := range report.CategoryStock {
		m.AddRows(tableRow([]string{c.Category, rupiah.Int(c.Stock)}, []int{8, 4}, nil))
	}

	m.AddRows(sectionTitle(fmt.Sprintf("Produk Stok Rendah (< %d)", report.LowStockThreshold)))
	m.AddRows(tableHeader([]string{"Produk", "Kategori", "Stok"}, []int{6, 4, 2}))
	if len(report.LowStock) == 0 {
		m.AddRows(tableRow([]string{"Tidak ada produk dengan stok rendah.", "", ""}, []int{6, 4, 2}, nil))
	}
	for _, p := range report.LowStock {
		m.AddRows(tableRow([]string{p.Name, p.Category, rupiah.Int(p.Stock)}, []int{6, 4, 2}, colorDanger))
	}

	m.AddRows(sectionTitle("Penjualan Bulanan"))
	m.AddRows(tableHeader([]string{"Bulan", "Penjualan", "Keuntungan"}, []int{4, 4, 4}))
	for _, s := range report.Sales {
		m.AddRows(tableRow([]string{s.Month, rupiah.Format(s.Sales), rupiah.Format(s.Profit)}, []int{4, 4, 4}, nil))
	}

	if report.UnlabeledProducts > 0 {
		m.AddRows(line.NewRow(3))
		m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New(fmt.Sprintf("%d produk tanpa label kategori dikelompokkan sebagai \"%s\".",
				report.UnlabeledProducts, reporting.UnlabeledCategory),
				props.Text{Size: 7, Color: colorGray, Top: 2}),
		)))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre de la tienda (izq) y título + fecha (der).
func headerRow(title string, now time.Time) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("LAPORAN INVENTARIS", props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Tanggal: "+now.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

// cardsRow: las cuatro tarjetas de estadísticas.
func cardsRow(r *dto.ReportDTO) core.Row {
	card := func(label, value string) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Top: 2, Align: align.Center}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 11, Top: 7, Align: align.Center}),
		)
	}
	return row.New(18).Add(
		card("Nilai Inventaris", r.InventoryValueLabel),
		card("Rata-rata Harga", r.AveragePriceLabel),
		card("Stok Rendah", rupiah.Int(r.LowStockCount)),
		card("Total Produk", rupiah.Int(r.ProductCount)),
	)
}

func sectionTitle(s string) core.Row {
	return row.New(9).Add(col.New(12).Add(
		text.New(s, props.Text{Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 3}),
	))
}

func tableHeader(labels []string, sizes []int) core.Row {
	cols := make([]core.Col, 0, len(labels))
	for i, l := range labels {
		cols = append(cols, col.New(sizes[i]).Add(text.New(l, props.Text{
			Style: fontstyle.Bold, Size: 8, Top: 1, Left: 1, Align: cellAlign(i),
		})))
	}
	return row.New(6).Add(cols...)
}

func tableRow(values []string, sizes []int, color *props.Color) core.Row {
	cols := make([]core.Col, 0, len(values))
	for i, v := range values {
		cols = append(cols, col.New(sizes[i]).Add(text.New(v, props.Text{
			Size: 8, Top: 1, Left: 1, Right: 1, Align: cellAlign(i), Color: color,
		})))
	}
	return row.New(6).Add(cols...)
}

// cellAlign: primera columna a la izquierda, el resto (números) a la derecha.
func cellAlign(i int) align.Type {
	if i == 0 {
		return align.Left
	}
	return align.Right
}
