package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/fifo-ledger/internal/domain/entity"
)

// AverageUnitCost costo unitario promedio ponderado de los lotes del libro.
// Es una columna informativa del reporte: el costeo de las salidas sigue siendo FIFO.
// Libro vacío = 0.
//
//	Promedio = Σ(Cantidad * CostoUnitario) / Σ Cantidad
func AverageUnitCost(ledger entity.Ledger) decimal.Decimal {
	qty := ledger.TotalQuantity()
	if qty <= 0 {
		return decimal.Zero
	}
	return ledger.TotalValue().Div(decimal.NewFromInt(qty))
}
