package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/fifo-ledger/internal/application/inventory"
	"github.com/jhoicas/fifo-ledger/internal/domain/repository"
	infrapdf "github.com/jhoicas/fifo-ledger/internal/infrastructure/pdf"
	"github.com/jhoicas/fifo-ledger/internal/infrastructure/postgres"
	"github.com/jhoicas/fifo-ledger/internal/infrastructure/spreadsheet"
	httpRouter "github.com/jhoicas/fifo-ledger/internal/interfaces/http"
	"github.com/jhoicas/fifo-ledger/pkg/config"
	"github.com/jhoicas/fifo-ledger/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Int("max_transactions", cfg.FIFO.MaxTransactions).
		Msg("iniciando aplicación")

	// PostgreSQL es opcional: solo alimenta GET /api/fifo/products/:product_id.
	var movements repository.InventoryMovementRepository
	if cfg.DB.Enabled() {
		ctx := context.Background()
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		movements = postgres.NewInventoryMovementRepository(pool)
	} else {
		log.Warn().Msg("sin base de datos: el libro por producto responde 503")
	}
	if cfg.JWT.Secret == "" {
		log.Warn().Msg("JWT_SECRET vacío: API sin autenticación")
	}

	ledgerUC := inventory.NewLedgerUseCase(
		movements,
		spreadsheet.NewParser(),
		spreadsheet.NewWorkbookWriter(),
		infrapdf.NewMarotoPDFGenerator(),
		inventory.LedgerConfig{
			MaxTransactions: cfg.FIFO.MaxTransactions,
			Currency:        cfg.Report.Currency,
			Company:         cfg.Report.Company,
		},
		log,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    cfg.HTTP.BodyLimitMB * 1024 * 1024,
		ErrorHandler: httpRouter.ErrorHandler(log),
	})
	app.Use(httpRouter.RequestLogger(log))
	// Un panic de invariantes del motor llega al ErrorHandler como error.
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "FIFO Ledger API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "database": movements != nil})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		LedgerUC:  ledgerUC,
		JWTSecret: cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
