package repository

import (
	"context"

	"github.com/Hoanqia/Thesis-sub001/internal/domain/entity"
)

// StockLotAllocationRepository define el puerto para las asignaciones lote→línea de venta.
// Las asignaciones son inmutables: solo se crean y se consultan.
type StockLotAllocationRepository interface {
	Create(ctx context.Context, alloc *entity.StockLotAllocation) error
	ListByOrderItem(ctx context.Context, orderItemID string) ([]*entity.StockLotAllocation, error)
	ListByLot(ctx context.Context, lotID string) ([]*entity.StockLotAllocation, error)
}
