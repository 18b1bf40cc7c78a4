package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/jhoicas/fifo-ledger/internal/domain"
)

// ErrRejected la hoja no pasa la validación (el detalle ya se imprimió).
var ErrRejected = errors.New("hoja rechazada")

// CheckCmd valida una hoja sin imprimir el libro.
type CheckCmd struct {
	File    string   `help:"Hoja xlsx o csv ('-' = csv por stdin)." arg:""`
	Opening []string `help:"Lote inicial QTY@COST (repetible)." placeholder:"QTY@COST"`
}

func (cmd *CheckCmd) Run(ctx *kong.Context, deps *Deps) error {
	opening, err := openingLedger(cmd.Opening)
	if err != nil {
		return err
	}
	txs, err := readWorksheet(deps, cmd.File)
	if err != nil {
		printError(ctx.Stderr, err.Error())
		return ErrRejected
	}
	if _, err := deps.Ledger.Run(context.Background(), opening, txs, false); err != nil {
		var se *domain.InsufficientStockError
		if errors.As(err, &se) {
			printError(ctx.Stderr, fmt.Sprintf("stock insuficiente: %s", se.Error()))
		} else {
			printError(ctx.Stderr, err.Error())
		}
		return ErrRejected
	}
	printSuccess(ctx.Stdout, fmt.Sprintf("%d transacciones, ninguna salida sin stock", len(txs)))
	return nil
}
