package inventory

import (
	"context"

	"github.com/Hoanqia/Thesis-sub001/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando los
// repositorios del motor de stock atados a esa tx. Garantiza que asignación,
// reserva y ajuste sean todo-o-nada: cualquier error hace rollback completo.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		lotRepo repository.StockLotRepository,
		allocRepo repository.StockLotAllocationRepository,
		txnRepo repository.InventoryTransactionRepository,
		resRepo repository.ReservedStockRepository,
		variantRepo repository.VariantRepository,
	) error) error
}
