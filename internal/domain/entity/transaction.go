package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind tipo de mutación de inventario.
type TransactionKind string

// Tipos de transacción FIFO.
const (
	KindAddition   TransactionKind = "addition"   // tambah: crea un lote nuevo al final
	KindWithdrawal TransactionKind = "withdrawal" // kurang: consume desde el lote más antiguo
)

// Valid indica si el tipo es conocido.
func (k TransactionKind) Valid() bool {
	return k == KindAddition || k == KindWithdrawal
}

// Transaction registro inmutable de un movimiento de inventario.
// UnitCost es obligatorio en KindAddition e ignorado en KindWithdrawal.
type Transaction struct {
	Date     time.Time
	Kind     TransactionKind
	Quantity int64
	UnitCost *decimal.Decimal
}

// Addition construye una transacción de entrada.
func Addition(date time.Time, quantity int64, unitCost decimal.Decimal) Transaction {
	return Transaction{Date: date, Kind: KindAddition, Quantity: quantity, UnitCost: &unitCost}
}

// Withdrawal construye una transacción de salida.
func Withdrawal(date time.Time, quantity int64) Transaction {
	return Transaction{Date: date, Kind: KindWithdrawal, Quantity: quantity}
}

// Clone copia la transacción incluido el costo unitario apuntado.
func (t Transaction) Clone() Transaction {
	if t.UnitCost != nil {
		c := *t.UnitCost
		t.UnitCost = &c
	}
	return t
}
