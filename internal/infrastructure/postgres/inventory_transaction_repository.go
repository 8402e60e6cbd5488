package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Hoanqia/Thesis-sub001/internal/domain/entity"
	"github.com/Hoanqia/Thesis-sub001/internal/domain/repository"
)

var _ repository.InventoryTransactionRepository = (*InventoryTransactionRepo)(nil)

// InventoryTransactionRepo implementación sobre PostgreSQL (usable con pool o tx).
// El libro es append-only: este adaptador solo inserta y lista.
type InventoryTransactionRepo struct {
	q Querier
}

// NewInventoryTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryTransactionRepository(q Querier) *InventoryTransactionRepo {
	return &InventoryTransactionRepo{q: q}
}

const txnColumns = `id, variant_id, stock_lot_id, type, quantity, ref_kind, ref_id, actor_id, notes, created_at`

// Create persiste una transacción de inventario.
func (r *InventoryTransactionRepo) Create(ctx context.Context, txn *entity.InventoryTransaction) error {
	query := `
		INSERT INTO inventory_transactions (id, variant_id, stock_lot_id, type, quantity, ref_kind, ref_id, actor_id, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	actorID := (*string)(nil)
	if txn.ActorID != "" {
		actorID = &txn.ActorID
	}
	_, err := r.q.Exec(ctx, query,
		txn.ID, txn.VariantID, txn.StockLotID, txn.Type, txn.Quantity,
		txn.RefKind, txn.RefID, actorID, txn.Notes, txn.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert inventory transaction: %w", err)
	}
	return nil
}

func (r *InventoryTransactionRepo) queryRows(ctx context.Context, query string, args ...any) ([]*entity.InventoryTransaction, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryTransaction
	for rows.Next() {
		var t entity.InventoryTransaction
		var actorID *string
		if err := rows.Scan(&t.ID, &t.VariantID, &t.StockLotID, &t.Type, &t.Quantity,
			&t.RefKind, &t.RefID, &actorID, &t.Notes, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		if actorID != nil {
			t.ActorID = *actorID
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

// ListByVariant lista el libro de una variante en un rango de fechas.
func (r *InventoryTransactionRepo) ListByVariant(ctx context.Context, variantID string, from, to *time.Time, limit, offset int) ([]*entity.InventoryTransaction, error) {
	query := `SELECT ` + txnColumns + ` FROM inventory_transactions WHERE variant_id = $1`
	args := []any{variantID}
	pos := 2
	if from != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)
	return r.queryRows(ctx, query, args...)
}

// ListByLot lista las transacciones que afectaron un lote, en orden cronológico.
func (r *InventoryTransactionRepo) ListByLot(ctx context.Context, lotID string) ([]*entity.InventoryTransaction, error) {
	query := `SELECT ` + txnColumns + ` FROM inventory_transactions WHERE stock_lot_id = $1 ORDER BY created_at ASC`
	return r.queryRows(ctx, query, lotID)
}
