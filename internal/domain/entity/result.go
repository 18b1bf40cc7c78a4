package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Step estado intermedio tras aplicar una transacción (una fila del kartu persediaan).
// Index es la posición de la transacción en la lista original del caller.
type Step struct {
	Index            int
	Transaction      Transaction
	CostOfWithdrawal decimal.Decimal // cero para entradas
	Consumed         []Lot           // porciones tomadas de cada lote (solo salidas)
	Lots             Ledger          // snapshot del libro después del paso
}

// Date fecha de la transacción del paso.
func (s Step) Date() time.Time { return s.Transaction.Date }

// Result salida de una corrida del motor. Todos los montos van a precisión completa;
// el redondeo a 2 decimales es responsabilidad de la capa de presentación.
type Result struct {
	OpeningLots            Ledger
	EndingLots             Ledger
	TotalQuantity          int64
	TotalValue             decimal.Decimal
	TotalCostOfWithdrawals decimal.Decimal
	Steps                  []Step // vacío salvo que se pida la traza
}
