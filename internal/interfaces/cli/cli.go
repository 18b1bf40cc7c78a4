// Package cli implementa los comandos de línea de comandos del motor FIFO (kong).
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/fifo-ledger/internal/application/inventory"
	"github.com/jhoicas/fifo-ledger/internal/domain/entity"
	"github.com/jhoicas/fifo-ledger/pkg/config"
)

var (
	successSymbol = "✓"
	errorSymbol   = "✗"
	infoSymbol    = "→"

	successStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#00A86B", Dark: "#00D787"})
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#D7005F", Dark: "#FF5F87"})
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#005FAF", Dark: "#5FAFFF"})
)

// Deps dependencias inyectadas en los comandos con kong.Bind.
type Deps struct {
	Ledger   *inventory.LedgerUseCase
	Parser   inventory.WorksheetParser
	Workbook inventory.WorkbookWriter
	PDF      inventory.LedgerPDFGenerator
	Config   *config.Config
}

// Commands raíz del CLI.
type Commands struct {
	Calc  CalcCmd  `cmd:"" help:"Calcula el kartu persediaan FIFO de una hoja xlsx o csv."`
	Check CheckCmd `cmd:"" help:"Valida que ninguna salida de la hoja quede sin stock."`
	Token TokenCmd `cmd:"" help:"Emite un token JWT para un cliente de la API."`
}

// ParseOpeningLot interpreta QTY@COST.
func ParseOpeningLot(raw string) (entity.Lot, error) {
	qtyPart, costPart, ok := strings.Cut(strings.TrimSpace(raw), "@")
	if !ok {
		return entity.Lot{}, fmt.Errorf("lote %q: formato esperado QTY@COST", raw)
	}
	qty, err := strconv.ParseInt(strings.TrimSpace(qtyPart), 10, 64)
	if err != nil {
		return entity.Lot{}, fmt.Errorf("lote %q: cantidad inválida", raw)
	}
	cost, err := decimal.NewFromString(strings.TrimSpace(costPart))
	if err != nil {
		return entity.Lot{}, fmt.Errorf("lote %q: costo inválido", raw)
	}
	return entity.Lot{Quantity: qty, UnitCost: cost}, nil
}

// openingLedger interpreta los --opening en orden (el primero es el lote más antiguo).
func openingLedger(raw []string) (entity.Ledger, error) {
	out := make(entity.Ledger, 0, len(raw))
	for _, r := range raw {
		lot, err := ParseOpeningLot(r)
		if err != nil {
			return nil, err
		}
		out = append(out, lot)
	}
	return out, nil
}

// readWorksheet lee las transacciones del archivo (o stdin con "-", formato csv).
func readWorksheet(deps *Deps, file string) ([]entity.Transaction, error) {
	if file == "-" {
		return deps.Parser.Parse("stdin.csv", os.Stdin)
	}
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return deps.Parser.Parse(file, f)
}

func writeFile(ctx context.Context, path string, render func(context.Context) ([]byte, error)) error {
	data, err := render(ctx)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func printSuccess(w io.Writer, message string) {
	_, _ = fmt.Fprintf(w, "%s %s\n", successStyle.Render(successSymbol), message)
}

func printError(w io.Writer, message string) {
	_, _ = fmt.Fprintf(w, "%s %s\n", errorStyle.Render(errorSymbol), errorStyle.Render(message))
}

func printInfof(w io.Writer, format string, args ...interface{}) {
	_, _ = fmt.Fprintf(w, "%s %s\n", infoStyle.Render(infoSymbol), fmt.Sprintf(format, args...))
}
