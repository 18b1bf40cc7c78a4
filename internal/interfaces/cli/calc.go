package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/fifo-ledger/internal/application/inventory"
	"github.com/jhoicas/fifo-ledger/pkg/money"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	numberStyle = cellStyle.Align(lipgloss.Right)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#8A8A8A", Dark: "#5F5F5F"})
)

// CalcCmd calcula e imprime el kartu persediaan.
type CalcCmd struct {
	File     string   `help:"Hoja xlsx o csv con columnas Tanggal, Jenis, Unit, Nilai ('-' = csv por stdin)." arg:""`
	Opening  []string `help:"Lote inicial QTY@COST (repetible)." placeholder:"QTY@COST"`
	Trace    bool     `help:"Imprime el estado del libro después de cada transacción."`
	XLSX     string   `help:"Exporta el kartu persediaan a este xlsx." name:"xlsx" type:"path"`
	PDF      string   `help:"Exporta el kartu persediaan a este PDF." name:"pdf" type:"path"`
	Title    string   `help:"Título de las exportaciones." default:"Kartu Persediaan FIFO"`
	Currency string   `help:"Moneda ISO 4217 para mostrar montos (por defecto REPORT_CURRENCY)."`
}

func (cmd *CalcCmd) Run(ctx *kong.Context, deps *Deps) error {
	runCtx := context.Background()

	opening, err := openingLedger(cmd.Opening)
	if err != nil {
		return err
	}
	txs, err := readWorksheet(deps, cmd.File)
	if err != nil {
		printError(ctx.Stderr, "no se pudo leer la hoja")
		return err
	}
	ws, err := deps.Ledger.BuildWorksheet(runCtx, opening, txs, cmd.Title)
	if err != nil {
		printError(ctx.Stderr, "cálculo rechazado")
		return err
	}

	currency := cmd.Currency
	if currency == "" {
		currency = ws.Currency
	}
	ws.Currency = strings.ToUpper(currency)
	format := amountFormatter(ws.Currency)

	if cmd.Trace {
		_, _ = fmt.Fprintln(ctx.Stdout, ledgerTable(ws, format))
	} else {
		_, _ = fmt.Fprintln(ctx.Stdout, lotsTable(ws, format))
	}
	printSummary(ctx, ws, format)

	if cmd.XLSX != "" {
		if err := writeFile(runCtx, cmd.XLSX, func(c context.Context) ([]byte, error) {
			return deps.Workbook.WriteWorkbook(c, ws)
		}); err != nil {
			return fmt.Errorf("exportar xlsx: %w", err)
		}
		printSuccess(ctx.Stdout, "xlsx escrito en "+cmd.XLSX)
	}
	if cmd.PDF != "" {
		if err := writeFile(runCtx, cmd.PDF, func(c context.Context) ([]byte, error) {
			return deps.PDF.GenerateLedgerPDF(c, ws)
		}); err != nil {
			return fmt.Errorf("exportar pdf: %w", err)
		}
		printSuccess(ctx.Stdout, "pdf escrito en "+cmd.PDF)
	}
	return nil
}

func printSummary(ctx *kong.Context, ws inventory.Worksheet, format func(decimal.Decimal) string) {
	res := ws.Result
	printInfof(ctx.Stdout, "Persediaan akhir: %d unit, nilai %s", res.TotalQuantity, format(res.TotalValue))
	printInfof(ctx.Stdout, "Total HPP: %s", format(res.TotalCostOfWithdrawals))
	printInfof(ctx.Stdout, "Harga rata-rata: %s", format(ws.AverageCost))
}

// ledgerTable una fila por paso con el libro completo (traza de auditoría).
func ledgerTable(ws inventory.Worksheet, format func(decimal.Decimal) string) string {
	rows := make([][]string, 0, len(ws.Rows))
	for _, r := range ws.Rows {
		date := ""
		if !r.Date.IsZero() {
			date = r.Date.Format("2006-01-02")
		}
		hpp := ""
		if !r.CostOfWithdrawal.IsZero() {
			hpp = format(r.CostOfWithdrawal)
		}
		rows = append(rows, []string{
			date,
			r.Description,
			hpp,
			lotsText(r),
			fmt.Sprintf("%d", r.TotalQuantity),
			format(r.TotalValue),
		})
	}
	return newTable([]string{"Tanggal", "Uraian", "HPP", "Lot", "Unit", "Nilai"}, rows, 2, 4, 5)
}

// lotsTable los lotes que quedan al final, del más antiguo al más reciente.
func lotsTable(ws inventory.Worksheet, format func(decimal.Decimal) string) string {
	rows := make([][]string, 0, len(ws.Result.EndingLots))
	for i, l := range ws.Result.EndingLots {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d", l.Quantity),
			money.Fixed(l.UnitCost),
			format(l.Value()),
		})
	}
	return newTable([]string{"#", "Unit", "Harga", "Nilai"}, rows, 0, 1, 2, 3)
}

func newTable(headers []string, rows [][]string, numeric ...int) string {
	isNumeric := make(map[int]bool, len(numeric))
	for _, c := range numeric {
		isNumeric[c] = true
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case isNumeric[col]:
				return numberStyle
			default:
				return cellStyle
			}
		})
	return t.String()
}

func lotsText(r inventory.WorksheetRow) string {
	if len(r.Lots) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(r.Lots))
	for _, l := range r.Lots {
		parts = append(parts, fmt.Sprintf("%d @ %s", l.Quantity, money.Fixed(l.UnitCost)))
	}
	return strings.Join(parts, "\n")
}

// amountFormatter símbolo de la moneda si es conocida; si no, 2 decimales.
func amountFormatter(currency string) func(decimal.Decimal) string {
	f, err := money.NewFormatter(currency)
	if err != nil {
		return money.Fixed
	}
	return f.Format
}
