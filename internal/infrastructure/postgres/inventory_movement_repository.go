package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/fifo-ledger/internal/domain/entity"
	"github.com/jhoicas/fifo-ledger/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

// InventoryMovementRepo lectura de inventory_movements (usable con pool o tx).
type InventoryMovementRepo struct {
	q Querier
}

// NewInventoryMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryMovementRepository(q Querier) *InventoryMovementRepo {
	return &InventoryMovementRepo{q: q}
}

// ListForProduct lista los movimientos de un producto del más antiguo al más reciente.
// A igual fecha se respeta el orden de registro para que el motor reciba el orden real.
func (r *InventoryMovementRepo) ListForProduct(ctx context.Context, productID, warehouseID string) ([]*entity.InventoryMovement, error) {
	query, args := listForProductQuery(productID, warehouseID)
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapErr("list movements for product", err)
	}
	defer rows.Close()

	var list []*entity.InventoryMovement
	for rows.Next() {
		var m entity.InventoryMovement
		if err := rows.Scan(&m.ID, &m.ProductID, &m.WarehouseID, &m.Type,
			&m.Quantity, &m.UnitCost, &m.Date); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("list movements for product", err)
	}
	return list, nil
}

func listForProductQuery(productID, warehouseID string) (string, []any) {
	query := `
		SELECT id, product_id, warehouse_id, type, quantity, COALESCE(unit_cost, 0), date
		FROM inventory_movements WHERE product_id = $1`
	args := []any{productID}
	if warehouseID != "" {
		query += " AND warehouse_id = $2"
		args = append(args, warehouseID)
	}
	query += " ORDER BY date ASC, created_at ASC, id ASC"
	return query, args
}
