// Package inventory contiene el motor de costeo FIFO: una función pura sobre un
// libro de lotes en memoria y una lista de transacciones.
//
// Flujo de Apply:
//
//	copia del saldo inicial → validación de campos → orden cronológico estable →
//	por transacción: entrada (append) | salida (validar disponibilidad → consumir desde el índice 0) →
//	totales del libro final
//
// Los montos se acumulan a precisión completa; nunca se redondea aquí.
package inventory

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/fifo-ledger/internal/domain"
	"github.com/jhoicas/fifo-ledger/internal/domain/entity"
)

// Options modifica la salida de Apply sin cambiar su semántica.
type Options struct {
	// Trace incluye en Result.Steps un snapshot del libro por transacción procesada.
	Trace bool
}

// Apply aplica transactions sobre una copia de opening y devuelve el resultado.
// No modifica opening ni transactions. Errores posibles:
//   - *domain.ValidationError        campo inválido en un lote inicial o en una transacción.
//   - *domain.InsufficientStockError una salida supera lo disponible en su posición cronológica.
//
// Una violación de invariantes del libro (bug del motor) produce panic con *domain.InvariantViolation.
func Apply(opening entity.Ledger, transactions []entity.Transaction, opts Options) (entity.Result, error) {
	ledger, err := copyOpening(opening)
	if err != nil {
		return entity.Result{}, err
	}
	for i, tx := range transactions {
		if err := ValidateTransaction(i, tx); err != nil {
			return entity.Result{}, err
		}
	}

	res := entity.Result{
		OpeningLots:            ledger.Clone(),
		TotalCostOfWithdrawals: decimal.Zero,
	}
	if opts.Trace {
		res.Steps = make([]entity.Step, 0, len(transactions))
	}

	available := ledger.TotalQuantity()
	for _, idx := range chronological(transactions) {
		tx := transactions[idx]
		step := entity.Step{Index: idx, Transaction: tx.Clone(), CostOfWithdrawal: decimal.Zero}

		switch tx.Kind {
		case entity.KindAddition:
			if available > math.MaxInt64-tx.Quantity {
				return entity.Result{}, domain.NewValidationError(idx, "quantity",
					fmt.Sprintf("la entrada lleva el total del libro por encima de %d unidades", int64(math.MaxInt64)))
			}
			ledger = append(ledger, entity.Lot{Quantity: tx.Quantity, UnitCost: *tx.UnitCost})
			available += tx.Quantity
		case entity.KindWithdrawal:
			if err := ValidateWithdrawal(available, tx.Quantity); err != nil {
				var insufficient *domain.InsufficientStockError
				if errors.As(err, &insufficient) {
					insufficient.Index = idx
					insufficient.Date = tx.Date
				}
				return entity.Result{}, err
			}
			var cost decimal.Decimal
			var consumed []entity.Lot
			ledger, cost, consumed = consume(ledger, tx.Quantity)
			available -= tx.Quantity
			res.TotalCostOfWithdrawals = res.TotalCostOfWithdrawals.Add(cost)
			step.CostOfWithdrawal = cost
			step.Consumed = consumed
		}

		if opts.Trace {
			step.Lots = ledger.Clone()
			res.Steps = append(res.Steps, step)
		}
	}

	checkLedger(ledger, available)

	res.EndingLots = ledger.Clone()
	res.TotalQuantity = ledger.TotalQuantity()
	res.TotalValue = ledger.TotalValue()
	return res, nil
}

// consume retira quantity unidades desde el lote más antiguo hacia adelante.
// Devuelve el libro resultante, el costo de lo retirado y las porciones consumidas.
// El llamador garantiza quantity <= total del libro.
func consume(ledger entity.Ledger, quantity int64) (entity.Ledger, decimal.Decimal, []entity.Lot) {
	remaining := quantity
	cost := decimal.Zero
	var consumed []entity.Lot

	for remaining > 0 && len(ledger) > 0 {
		oldest := ledger[0]
		if oldest.Quantity <= remaining {
			// El lote completo se consume
			cost = cost.Add(oldest.Value())
			consumed = append(consumed, oldest)
			remaining -= oldest.Quantity
			ledger = ledger[1:]
			continue
		}
		// Solo una parte del lote más antiguo
		portion := entity.Lot{Quantity: remaining, UnitCost: oldest.UnitCost}
		cost = cost.Add(portion.Value())
		consumed = append(consumed, portion)
		ledger[0].Quantity = oldest.Quantity - remaining
		remaining = 0
	}

	if remaining > 0 {
		panic(&domain.InvariantViolation{
			Detail: fmt.Sprintf("salida validada de %d unidades dejó %d sin cubrir", quantity, remaining),
		})
	}
	return ledger, cost, consumed
}

// copyOpening valida y copia el saldo inicial; los lotes con cantidad 0 se descartan.
// El total no puede superar math.MaxInt64.
func copyOpening(opening entity.Ledger) (entity.Ledger, error) {
	ledger := make(entity.Ledger, 0, len(opening))
	var total int64
	for i, lot := range opening {
		if lot.Quantity < 0 {
			return nil, domain.NewValidationError(-1, fmt.Sprintf("opening_lots[%d].quantity", i), "no puede ser negativa")
		}
		if lot.UnitCost.IsNegative() {
			return nil, domain.NewValidationError(-1, fmt.Sprintf("opening_lots[%d].unit_cost", i), "no puede ser negativo")
		}
		if lot.Quantity == 0 {
			continue
		}
		if total > math.MaxInt64-lot.Quantity {
			return nil, domain.NewValidationError(-1, fmt.Sprintf("opening_lots[%d].quantity", i),
				fmt.Sprintf("el saldo inicial supera %d unidades", int64(math.MaxInt64)))
		}
		total += lot.Quantity
		ledger = append(ledger, lot)
	}
	return ledger, nil
}

// chronological devuelve los índices de transactions ordenados por fecha ascendente.
// Empates conservan el orden de entrada.
func chronological(transactions []entity.Transaction) []int {
	order := make([]int, len(transactions))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return transactions[order[a]].Date.Before(transactions[order[b]].Date)
	})
	return order
}

// checkLedger verifica los invariantes del libro final. Cualquier fallo es un bug del motor.
func checkLedger(ledger entity.Ledger, available int64) {
	for i, lot := range ledger {
		if lot.Quantity <= 0 {
			panic(&domain.InvariantViolation{Detail: fmt.Sprintf("lote %d con cantidad %d", i, lot.Quantity)})
		}
		if lot.UnitCost.IsNegative() {
			panic(&domain.InvariantViolation{Detail: fmt.Sprintf("lote %d con costo %s", i, lot.UnitCost)})
		}
	}
	if total := ledger.TotalQuantity(); total != available {
		panic(&domain.InvariantViolation{Detail: fmt.Sprintf("total del libro %d, esperado %d", total, available)})
	}
}
