package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/fifo-ledger/internal/application/inventory"
	"github.com/jhoicas/fifo-ledger/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	LedgerUC  *inventory.LedgerUseCase
	JWTSecret string // vacío = API sin autenticación
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	guard := func(scope string) []fiber.Handler {
		if deps.JWTSecret == "" {
			return nil
		}
		return []fiber.Handler{AuthMiddleware(deps.JWTSecret), RequireScope(scope)}
	}
	route := func(scope string, h fiber.Handler) []fiber.Handler {
		return append(guard(scope), h)
	}

	fifo := api.Group("/fifo")
	h := NewFIFOHandler(deps.LedgerUC)
	fifo.Post("/calculate", route(jwt.ScopeCalculate, h.Calculate)...)
	fifo.Post("/transactions", route(jwt.ScopeCalculate, h.AddTransaction)...)
	fifo.Delete("/transactions/:index", route(jwt.ScopeCalculate, h.RemoveTransaction)...)
	fifo.Post("/import", route(jwt.ScopeCalculate, h.Import)...)
	fifo.Post("/export/xlsx", route(jwt.ScopeCalculate, h.ExportXLSX)...)
	fifo.Post("/export/pdf", route(jwt.ScopeCalculate, h.ExportPDF)...)

	fifo.Get("/products/:product_id", route(jwt.ScopeReadMovements, h.ProductLedger)...)
}
