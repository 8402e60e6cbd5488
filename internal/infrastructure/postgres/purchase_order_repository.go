package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Hoanqia/Thesis-sub001/internal/domain"
	"github.com/Hoanqia/Thesis-sub001/internal/domain/entity"
	"github.com/Hoanqia/Thesis-sub001/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo implementación sobre PostgreSQL (usable con pool o tx).
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

// GetByID obtiene la orden de compra; nil si no existe.
func (r *PurchaseOrderRepo) GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	query := `
		SELECT id, supplier_id, status, created_by, created_at, updated_at
		FROM purchase_orders WHERE id = $1`
	var po entity.PurchaseOrder
	err := r.q.QueryRow(ctx, query, id).Scan(
		&po.ID, &po.SupplierID, &po.Status, &po.CreatedBy, &po.CreatedAt, &po.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	return &po, nil
}

// ListItemsForUpdate bloquea las líneas de la orden (FOR UPDATE): dos
// recepciones concurrentes de la misma orden se serializan aquí.
func (r *PurchaseOrderRepo) ListItemsForUpdate(ctx context.Context, purchaseOrderID string) ([]*entity.PurchaseOrderItem, error) {
	query := `
		SELECT id, purchase_order_id, variant_id, ordered_quantity, received_quantity, unit_cost
		FROM purchase_order_items
		WHERE purchase_order_id = $1
		ORDER BY id ASC
		FOR UPDATE`
	rows, err := r.q.Query(ctx, query, purchaseOrderID)
	if err != nil {
		return nil, fmt.Errorf("list po items for update: %w", err)
	}
	defer rows.Close()
	var items []*entity.PurchaseOrderItem
	for rows.Next() {
		var it entity.PurchaseOrderItem
		if err := rows.Scan(&it.ID, &it.PurchaseOrderID, &it.VariantID,
			&it.OrderedQuantity, &it.ReceivedQuantity, &it.UnitCost); err != nil {
			return nil, fmt.Errorf("scan po item: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

// AddReceivedQuantity acumula lo recibido sin exceder lo ordenado (update
// condicional; el caso de uso ya validó contra Outstanding).
func (r *PurchaseOrderRepo) AddReceivedQuantity(ctx context.Context, itemID string, quantity int64) error {
	query := `
		UPDATE purchase_order_items
		SET received_quantity = received_quantity + $2
		WHERE id = $1 AND ordered_quantity - received_quantity >= $2`
	tag, err := r.q.Exec(ctx, query, itemID, quantity)
	if err != nil {
		return fmt.Errorf("add received quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOverReceipt
	}
	return nil
}

// UpdateStatus actualiza el estado derivado de la orden.
func (r *PurchaseOrderRepo) UpdateStatus(ctx context.Context, purchaseOrderID, status string) error {
	query := `UPDATE purchase_orders SET status = $2, updated_at = now() WHERE id = $1`
	if _, err := r.q.Exec(ctx, query, purchaseOrderID, status); err != nil {
		return fmt.Errorf("update po status: %w", err)
	}
	return nil
}
