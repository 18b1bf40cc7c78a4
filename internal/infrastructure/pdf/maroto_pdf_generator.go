// Package pdf genera el kartu persediaan FIFO en PDF con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa + Título    │  Fecha de emisión + ID       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Tanggal | Uraian | Mutasi | HPP | Lot | Saldo        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RINGKASAN: Unidades / Valor / HPP total / Costo promedio    │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

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

	appinventory "github.com/jhoicas/fifo-ledger/internal/application/inventory"
	"github.com/jhoicas/fifo-ledger/internal/domain/entity"
	"github.com/jhoicas/fifo-ledger/pkg/money"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorStripe  = &props.Color{Red: 240, Green: 244, Blue: 248}
)

// alto de una línea de lote dentro de una celda
const lotLineHeight = 4

// ── Generator ─────────────────────────────────────────────────────────────────

var _ appinventory.LedgerPDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa inventory.LedgerPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateLedgerPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateLedgerPDF(ctx context.Context, ws appinventory.Worksheet) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fmtr := newAmountFormatter(ws.Currency)

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle(ws.Title, true).
		WithAuthor(nonEmpty(ws.Company, "fifo-ledger"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(ws))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for i, r := range ws.Rows {
		m.AddRows(tableRow(r, fmtr, i%2 == 1))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(summaryRow(ws, fmtr))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: empresa + título (izq) y fecha de emisión + ID (der).
func headerRow(ws appinventory.Worksheet) core.Row {
	id := ws.ID
	if len(id) > 8 {
		id = id[:8]
	}
	return row.New(16).Add(
		col.New(8).Add(
			text.New(nonEmpty(ws.Company, "-"), props.Text{
				Size: 9, Top: 1, Color: colorGray,
			}),
			text.New(ws.Title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 6,
			}),
		),
		col.New(4).Add(
			text.New("Tanggal cetak: "+ws.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New("Ref: "+nonEmpty(id, "-")+"  |  "+ws.Currency, props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla con fondo azul.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Tanggal", 2, align.Left),
		h("Uraian", 3, align.Left),
		h("Mutasi", 1, align.Right),
		h("HPP", 2, align.Right),
		h("Lot (unit @ harga)", 2, align.Left),
		h("Saldo", 2, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableRow: una fila del kartu; la celda de lotes lista un lote por línea.
func tableRow(r appinventory.WorksheetRow, fmtr amountFormatter, striped bool) core.Row {
	lots := lotLines(r.Lots)
	height := float64(lotLineHeight*len(lots) + 3)
	if height < 7 {
		height = 7
	}

	date := ""
	if !r.Date.IsZero() {
		date = r.Date.Format("02/01/2006")
	}
	hpp := ""
	if !r.CostOfWithdrawal.IsZero() {
		hpp = fmtr(r.CostOfWithdrawal)
	}
	delta := ""
	if r.Description != appinventory.DescClosing {
		delta = fmt.Sprintf("%+d", r.QuantityDelta)
	}

	cell := func(s string, size int, a align.Type, bold bool) core.Col {
		p := props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}
		if bold {
			p.Style = fontstyle.Bold
		}
		return col.New(size).Add(text.New(s, p))
	}
	isBalance := r.Description == appinventory.DescOpening || r.Description == appinventory.DescClosing

	rw := row.New(height).Add(
		cell(date, 2, align.Left, false),
		cell(r.Description, 3, align.Left, isBalance),
		cell(delta, 1, align.Right, false),
		cell(hpp, 2, align.Right, false),
		cell(strings.Join(lots, "\n"), 2, align.Left, false),
		cell(fmt.Sprintf("%d unit\n%s", r.TotalQuantity, fmtr(r.TotalValue)), 2, align.Right, isBalance),
	)
	if striped {
		return rw.WithStyle(&props.Cell{BackgroundColor: colorStripe})
	}
	return rw
}

// summaryRow: bloque de totales alineado a la derecha.
func summaryRow(ws appinventory.Worksheet, fmtr amountFormatter) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top,
		})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	res := ws.Result

	return row.New(26).Add(
		col.New(4), // espacio izquierdo
		col.New(4).Add(
			label("Persediaan akhir (unit):", 1),
			label("Nilai persediaan:", 7),
			label("Total HPP:", 13),
			label("Harga rata-rata:", 19),
		),
		col.New(4).Add(
			value(fmt.Sprintf("%d", res.TotalQuantity), 1),
			value(fmtr(res.TotalValue), 7),
			value(fmtr(res.TotalCostOfWithdrawals), 13),
			value(fmtr(ws.AverageCost), 19),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

type amountFormatter func(decimal.Decimal) string

// newAmountFormatter usa el símbolo de la moneda si es conocida; si no, el monto a 2 decimales.
func newAmountFormatter(currency string) amountFormatter {
	f, err := money.NewFormatter(currency)
	if err != nil {
		return money.Fixed
	}
	return f.Format
}

func lotLines(lots entity.Ledger) []string {
	if len(lots) == 0 {
		return []string{"-"}
	}
	out := make([]string, 0, len(lots))
	for _, l := range lots {
		out = append(out, fmt.Sprintf("%d @ %s", l.Quantity, money.Fixed(l.UnitCost)))
	}
	return out
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
