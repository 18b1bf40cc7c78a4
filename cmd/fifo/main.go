package main

import (
	"github.com/alecthomas/kong"

	"github.com/jhoicas/fifo-ledger/internal/application/inventory"
	infrapdf "github.com/jhoicas/fifo-ledger/internal/infrastructure/pdf"
	"github.com/jhoicas/fifo-ledger/internal/infrastructure/spreadsheet"
	"github.com/jhoicas/fifo-ledger/internal/interfaces/cli"
	"github.com/jhoicas/fifo-ledger/pkg/config"
	"github.com/jhoicas/fifo-ledger/pkg/logger"
)

var (
	// Version se define con ldflags al compilar.
	Version = "dev"
)

type Globals struct {
	Verbose bool             `help:"Registra el detalle del cálculo en stderr." short:"v"`
	Version kong.VersionFlag `help:"Muestra la versión."`
}

func main() {
	var app struct {
		Globals
		cli.Commands
	}

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	ctx := kong.Parse(&app,
		kong.Name("fifo"),
		kong.Description("Kartu persediaan FIFO: lotes, HPP y saldo a partir de una hoja de mutaciones."),
		kong.UsageOnError(),
		kong.Vars{"version": Version},
	)

	log := logger.Nop()
	if app.Verbose {
		log = logger.New(logger.Config{Env: "development", Level: "debug", Output: ctx.Stderr})
	}

	parser := spreadsheet.NewParser()
	workbook := spreadsheet.NewWorkbookWriter()
	pdf := infrapdf.NewMarotoPDFGenerator()
	ledgerUC := inventory.NewLedgerUseCase(nil, parser, workbook, pdf, inventory.LedgerConfig{
		MaxTransactions: cfg.FIFO.MaxTransactions,
		Currency:        cfg.Report.Currency,
		Company:         cfg.Report.Company,
	}, log)

	err = ctx.Run(&cli.Deps{
		Ledger:   ledgerUC,
		Parser:   parser,
		Workbook: workbook,
		PDF:      pdf,
		Config:   cfg,
	})
	ctx.FatalIfErrorf(err)
}
