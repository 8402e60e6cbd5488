package postgres

import (
	"context"
	"fmt"

	"github.com/Hoanqia/Thesis-sub001/internal/domain"
	"github.com/Hoanqia/Thesis-sub001/internal/domain/entity"
	"github.com/Hoanqia/Thesis-sub001/internal/domain/repository"
)

var _ repository.StockLotAllocationRepository = (*StockLotAllocationRepo)(nil)

// StockLotAllocationRepo implementación sobre PostgreSQL (usable con pool o tx).
// La tabla tiene unique (order_item_id, stock_lot_id): una línea nunca asigna
// dos veces el mismo lote.
type StockLotAllocationRepo struct {
	q Querier
}

// NewStockLotAllocationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockLotAllocationRepository(q Querier) *StockLotAllocationRepo {
	return &StockLotAllocationRepo{q: q}
}

// Create persiste una asignación (inmutable después).
func (r *StockLotAllocationRepo) Create(ctx context.Context, alloc *entity.StockLotAllocation) error {
	query := `
		INSERT INTO stock_lot_allocations (id, order_item_id, stock_lot_id, allocated_quantity, unit_cost_at_allocation, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		alloc.ID, alloc.OrderItemID, alloc.StockLotID, alloc.Quantity, alloc.UnitCost, alloc.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert allocation: %w", err)
	}
	return nil
}

func (r *StockLotAllocationRepo) list(ctx context.Context, where string, arg any) ([]*entity.StockLotAllocation, error) {
	query := `
		SELECT id, order_item_id, stock_lot_id, allocated_quantity, unit_cost_at_allocation, created_at
		FROM stock_lot_allocations WHERE ` + where + ` ORDER BY created_at ASC, id ASC`
	rows, err := r.q.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("list allocations: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockLotAllocation
	for rows.Next() {
		var a entity.StockLotAllocation
		if err := rows.Scan(&a.ID, &a.OrderItemID, &a.StockLotID, &a.Quantity, &a.UnitCost, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan allocation: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// ListByOrderItem lista las asignaciones de una línea de orden.
func (r *StockLotAllocationRepo) ListByOrderItem(ctx context.Context, orderItemID string) ([]*entity.StockLotAllocation, error) {
	return r.list(ctx, "order_item_id = $1", orderItemID)
}

// ListByLot lista las asignaciones que consumieron un lote.
func (r *StockLotAllocationRepo) ListByLot(ctx context.Context, lotID string) ([]*entity.StockLotAllocation, error) {
	return r.list(ctx, "stock_lot_id = $1", lotID)
}
