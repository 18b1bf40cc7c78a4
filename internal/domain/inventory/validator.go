package inventory

import (
	"github.com/jhoicas/fifo-ledger/internal/domain"
	"github.com/jhoicas/fifo-ledger/internal/domain/entity"
)

// ValidateTransaction valida los campos de una transacción antes de aceptarla en la lista.
// index es su posición en la lista del caller (para el mensaje por campo).
func ValidateTransaction(index int, tx entity.Transaction) error {
	if tx.Date.IsZero() {
		return domain.NewValidationError(index, "date", "fecha requerida")
	}
	if !tx.Kind.Valid() {
		return domain.NewValidationError(index, "kind", "debe ser addition o withdrawal")
	}
	if tx.Quantity <= 0 {
		return domain.NewValidationError(index, "quantity", "debe ser mayor que 0")
	}
	if tx.Kind == entity.KindAddition {
		if tx.UnitCost == nil {
			return domain.NewValidationError(index, "unit_cost", "requerido en una entrada")
		}
		if tx.UnitCost.IsNegative() {
			return domain.NewValidationError(index, "unit_cost", "no puede ser negativo")
		}
	}
	return nil
}

// ValidateWithdrawal rechaza una salida que supera las unidades disponibles.
// available debe ser el total del libro en la posición cronológica de la salida.
func ValidateWithdrawal(available, requested int64) error {
	if requested > available {
		return &domain.InsufficientStockError{Index: -1, Requested: requested, Available: available}
	}
	return nil
}

// Accept valida candidate contra la lista ya aceptada (validar y luego confirmar).
// Reproduce cronológicamente opening + accepted + candidate; si alguna salida queda
// sin cubrir la candidata se rechaza y accepted no cambia.
// Devuelve una lista nueva; accepted no se modifica.
func Accept(opening entity.Ledger, accepted []entity.Transaction, candidate entity.Transaction) ([]entity.Transaction, error) {
	if err := ValidateTransaction(len(accepted), candidate); err != nil {
		return nil, err
	}
	next := cloneTransactions(accepted, len(accepted)+1)
	next = append(next, candidate.Clone())
	if _, err := Apply(opening, next, Options{}); err != nil {
		return nil, err
	}
	return next, nil
}

// Remove elimina la transacción index y recalcula desde el saldo inicial.
// Se rechaza si la lista resultante deja alguna salida sin cubrir.
func Remove(opening entity.Ledger, accepted []entity.Transaction, index int) ([]entity.Transaction, entity.Result, error) {
	if index < 0 || index >= len(accepted) {
		return nil, entity.Result{}, domain.NewValidationError(-1, "index", "fuera de rango")
	}
	next := make([]entity.Transaction, 0, len(accepted)-1)
	for i, tx := range accepted {
		if i == index {
			continue
		}
		next = append(next, tx.Clone())
	}
	res, err := Apply(opening, next, Options{})
	if err != nil {
		return nil, entity.Result{}, err
	}
	return next, res, nil
}

func cloneTransactions(src []entity.Transaction, capacity int) []entity.Transaction {
	out := make([]entity.Transaction, 0, capacity)
	for _, tx := range src {
		out = append(out, tx.Clone())
	}
	return out
}
