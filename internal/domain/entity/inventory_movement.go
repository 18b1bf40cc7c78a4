package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento almacenados en inventory_movements.
const (
	MovementTypeIN         = "IN"         // entrada
	MovementTypeOUT        = "OUT"        // salida
	MovementTypeADJUSTMENT = "ADJUSTMENT" // ajuste (signo de Quantity)
)

// InventoryMovement movimiento persistido por el sistema de inventario.
// Es solo una fuente de transacciones: el motor FIFO no escribe en la tabla.
type InventoryMovement struct {
	ID          string
	ProductID   string
	WarehouseID string
	Type        string
	Quantity    decimal.Decimal // positivo entrada/ajuste+, negativo salida
	UnitCost    decimal.Decimal
	Date        time.Time
}
