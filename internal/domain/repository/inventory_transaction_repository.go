package repository

import (
	"context"
	"time"

	"github.com/Hoanqia/Thesis-sub001/internal/domain/entity"
)

// InventoryTransactionRepository define el puerto del libro de transacciones.
// Append-only: no existen Update ni Delete.
type InventoryTransactionRepository interface {
	Create(ctx context.Context, txn *entity.InventoryTransaction) error
	ListByVariant(ctx context.Context, variantID string, from, to *time.Time, limit, offset int) ([]*entity.InventoryTransaction, error)
	ListByLot(ctx context.Context, lotID string) ([]*entity.InventoryTransaction, error)
}
