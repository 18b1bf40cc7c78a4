package entity

import "github.com/shopspring/decimal"

// Lot capa de costo: unidades adquiridas a un mismo costo unitario.
// Un lote con Quantity == 0 está agotado y no debe permanecer en el libro.
type Lot struct {
	Quantity int64
	UnitCost decimal.Decimal
}

// Value devuelve Quantity * UnitCost sin redondeo.
func (l Lot) Value() decimal.Decimal {
	return l.UnitCost.Mul(decimal.NewFromInt(l.Quantity))
}

// Ledger libro de lotes ordenado por fecha de adquisición (índice 0 = más antiguo).
type Ledger []Lot

// Clone copia el libro; los lotes son valores y nunca se comparten entre corridas.
func (l Ledger) Clone() Ledger {
	if l == nil {
		return Ledger{}
	}
	out := make(Ledger, len(l))
	copy(out, l)
	return out
}

// TotalQuantity suma de unidades de todos los lotes.
func (l Ledger) TotalQuantity() int64 {
	var total int64
	for _, lot := range l {
		total += lot.Quantity
	}
	return total
}

// TotalValue suma de Quantity * UnitCost de todos los lotes.
func (l Ledger) TotalValue() decimal.Decimal {
	total := decimal.Zero
	for _, lot := range l {
		total = total.Add(lot.Value())
	}
	return total
}
