package repository

import (
	"context"

	"github.com/jhoicas/fifo-ledger/internal/domain/entity"
)

// InventoryMovementRepository define el puerto de lectura de movimientos de inventario
// almacenados. El motor FIFO solo los consume como fuente de transacciones.
type InventoryMovementRepository interface {
	// ListForProduct devuelve los movimientos de un producto en orden cronológico.
	// warehouseID vacío = todas las bodegas.
	ListForProduct(ctx context.Context, productID, warehouseID string) ([]*entity.InventoryMovement, error)
}
