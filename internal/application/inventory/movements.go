package inventory

import (
	"fmt"

	"github.com/jhoicas/fifo-ledger/internal/domain"
	"github.com/jhoicas/fifo-ledger/internal/domain/entity"
)

// FromMovements traduce movimientos almacenados a transacciones FIFO.
//   - IN                 → entrada de Quantity a UnitCost.
//   - OUT                → salida de |Quantity|.
//   - ADJUSTMENT         → entrada si Quantity > 0, salida si Quantity < 0.
//
// El motor trabaja con unidades enteras: una cantidad fraccionaria es ErrInvalidInput.
// Movimientos con cantidad 0 se omiten. Los errores llevan Index -1 y el ID del
// movimiento en Field (la posición en movements no es un índice de transacción).
func FromMovements(movements []*entity.InventoryMovement) ([]entity.Transaction, error) {
	out := make([]entity.Transaction, 0, len(movements))
	for i, m := range movements {
		if m == nil || m.Quantity.IsZero() {
			continue
		}
		if !m.Quantity.Equal(m.Quantity.Truncate(0)) {
			return nil, domain.NewValidationError(-1, movementField(m, i, "quantity"),
				fmt.Sprintf("cantidad fraccionaria %s", m.Quantity))
		}
		qty := m.Quantity.Abs().IntPart()

		switch m.Type {
		case entity.MovementTypeIN:
			out = append(out, entity.Addition(m.Date, qty, m.UnitCost))
		case entity.MovementTypeOUT:
			out = append(out, entity.Withdrawal(m.Date, qty))
		case entity.MovementTypeADJUSTMENT:
			if m.Quantity.IsPositive() {
				out = append(out, entity.Addition(m.Date, qty, m.UnitCost))
			} else {
				out = append(out, entity.Withdrawal(m.Date, qty))
			}
		default:
			return nil, domain.NewValidationError(-1, movementField(m, i, "type"), fmt.Sprintf("tipo de movimiento no soportado %q", m.Type))
		}
	}
	return out, nil
}

func movementField(m *entity.InventoryMovement, i int, field string) string {
	id := m.ID
	if id == "" {
		id = fmt.Sprintf("#%d", i)
	}
	return fmt.Sprintf("movimiento %s: %s", id, field)
}
