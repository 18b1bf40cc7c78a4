package spreadsheet

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	appinventory "github.com/jhoicas/fifo-ledger/internal/application/inventory"
	"github.com/jhoicas/fifo-ledger/pkg/money"
)

// Nombres de las hojas exportadas.
const (
	SheetLedger  = "Kartu Persediaan"
	SheetSummary = "Ringkasan"
)

var ledgerHeader = []any{"Tanggal", "Uraian", "Mutasi (unit)", "HPP", "Lot (unit @ harga)", "Saldo (unit)", "Saldo (nilai)"}

const (
	amountFormat = "#,##0.00"
	dateFormat   = "yyyy-mm-dd"
	headerColor  = "00467F"
)

var _ appinventory.WorkbookWriter = (*WorkbookWriter)(nil)

// WorkbookWriter implementa inventory.WorkbookWriter con excelize.
type WorkbookWriter struct{}

// NewWorkbookWriter construye el exportador.
func NewWorkbookWriter() *WorkbookWriter { return &WorkbookWriter{} }

type styles struct {
	header, amount, date, lots, bold int
}

// WriteWorkbook arma el libro y devuelve sus bytes. Los montos se redondean a 2 decimales
// solo al escribir la celda.
func (w *WorkbookWriter) WriteWorkbook(ctx context.Context, ws appinventory.Worksheet) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), SheetLedger); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}
	if _, err := f.NewSheet(SheetSummary); err != nil {
		return nil, fmt.Errorf("xlsx: crear hoja: %w", err)
	}
	st, err := newStyles(f)
	if err != nil {
		return nil, err
	}
	if err := writeLedgerSheet(f, ws, st); err != nil {
		return nil, err
	}
	if err := writeSummarySheet(f, ws, st); err != nil {
		return nil, err
	}
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir: %w", err)
	}
	return buf.Bytes(), nil
}

func newStyles(f *excelize.File) (styles, error) {
	var st styles
	var err error
	amountFmt, dateFmt := amountFormat, dateFormat

	if st.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{headerColor}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	}); err != nil {
		return st, fmt.Errorf("xlsx: estilo: %w", err)
	}
	if st.amount, err = f.NewStyle(&excelize.Style{
		CustomNumFmt: &amountFmt,
		Alignment:    &excelize.Alignment{Vertical: "top"},
	}); err != nil {
		return st, fmt.Errorf("xlsx: estilo: %w", err)
	}
	if st.date, err = f.NewStyle(&excelize.Style{
		CustomNumFmt: &dateFmt,
		Alignment:    &excelize.Alignment{Vertical: "top"},
	}); err != nil {
		return st, fmt.Errorf("xlsx: estilo: %w", err)
	}
	if st.lots, err = f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
	}); err != nil {
		return st, fmt.Errorf("xlsx: estilo: %w", err)
	}
	if st.bold, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Vertical: "top"},
	}); err != nil {
		return st, fmt.Errorf("xlsx: estilo: %w", err)
	}
	return st, nil
}

func writeLedgerSheet(f *excelize.File, ws appinventory.Worksheet, st styles) error {
	sheet := SheetLedger
	if err := f.SetSheetRow(sheet, "A1", &ledgerHeader); err != nil {
		return fmt.Errorf("xlsx: encabezado: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", "G1", st.header); err != nil {
		return fmt.Errorf("xlsx: encabezado: %w", err)
	}

	for i, r := range ws.Rows {
		line := i + 2
		var date any
		if !r.Date.IsZero() {
			date = r.Date
		}
		var hpp any
		if !r.CostOfWithdrawal.IsZero() {
			hpp = amount(r.CostOfWithdrawal)
		}
		var delta any = r.QuantityDelta
		if r.Description == appinventory.DescClosing {
			delta = nil
		}
		values := []any{date, r.Description, delta, hpp, lotsCell(r), r.TotalQuantity, amount(r.TotalValue)}
		if err := f.SetSheetRow(sheet, cell("A", line), &values); err != nil {
			return fmt.Errorf("xlsx: fila %d: %w", line, err)
		}
		for _, s := range []struct {
			from, to string
			id       int
		}{
			{"A", "A", st.date},
			{"B", "B", st.lots},
			{"D", "D", st.amount},
			{"E", "E", st.lots},
			{"G", "G", st.amount},
		} {
			if err := f.SetCellStyle(sheet, cell(s.from, line), cell(s.to, line), s.id); err != nil {
				return fmt.Errorf("xlsx: estilo fila %d: %w", line, err)
			}
		}
		if r.Description == appinventory.DescOpening || r.Description == appinventory.DescClosing {
			if err := f.SetCellStyle(sheet, cell("B", line), cell("B", line), st.bold); err != nil {
				return fmt.Errorf("xlsx: estilo fila %d: %w", line, err)
			}
		}
	}

	widths := map[string]float64{"A": 12, "B": 26, "C": 13, "D": 16, "E": 22, "F": 12, "G": 18}
	for c, wdt := range widths {
		if err := f.SetColWidth(sheet, c, c, wdt); err != nil {
			return fmt.Errorf("xlsx: ancho columna %s: %w", c, err)
		}
	}
	return f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})
}

func writeSummarySheet(f *excelize.File, ws appinventory.Worksheet, st styles) error {
	sheet := SheetSummary
	res := ws.Result
	rows := [][]any{
		{"Judul", ws.Title},
		{"Perusahaan", ws.Company},
		{"Mata uang", ws.Currency},
		{"Tanggal cetak", ws.GeneratedAt.Format("2006-01-02 15:04")},
		{"Persediaan akhir (unit)", res.TotalQuantity},
		{"Nilai persediaan", amount(res.TotalValue)},
		{"Total HPP", amount(res.TotalCostOfWithdrawals)},
		{"Harga rata-rata", amount(ws.AverageCost)},
		{"Jumlah lot", len(res.EndingLots)},
	}
	for i := range rows {
		line := i + 1
		if err := f.SetSheetRow(sheet, cell("A", line), &rows[i]); err != nil {
			return fmt.Errorf("xlsx: resumen fila %d: %w", line, err)
		}
		if err := f.SetCellStyle(sheet, cell("A", line), cell("A", line), st.bold); err != nil {
			return fmt.Errorf("xlsx: resumen fila %d: %w", line, err)
		}
	}
	for _, line := range []int{6, 7, 8} {
		if err := f.SetCellStyle(sheet, cell("B", line), cell("B", line), st.amount); err != nil {
			return fmt.Errorf("xlsx: resumen fila %d: %w", line, err)
		}
	}
	if err := f.SetColWidth(sheet, "A", "A", 24); err != nil {
		return err
	}
	return f.SetColWidth(sheet, "B", "B", 28)
}

// lotsCell un lote por línea, del más antiguo al más reciente.
func lotsCell(r appinventory.WorksheetRow) string {
	if len(r.Lots) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(r.Lots))
	for _, l := range r.Lots {
		parts = append(parts, fmt.Sprintf("%d @ %s", l.Quantity, money.Fixed(l.UnitCost)))
	}
	return strings.Join(parts, "\n")
}

func amount(d decimal.Decimal) float64 {
	return money.Round(d).InexactFloat64()
}

func cell(col string, line int) string {
	return fmt.Sprintf("%s%d", col, line)
}
