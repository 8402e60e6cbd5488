package repository

import (
	"context"

	"github.com/Hoanqia/Thesis-sub001/internal/domain/entity"
)

// PurchaseOrderRepository define el puerto para órdenes de compra y sus líneas.
type PurchaseOrderRepository interface {
	GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	// ListItemsForUpdate bloquea las líneas de la orden para actualizar
	// received_quantity sin carreras entre recepciones concurrentes.
	ListItemsForUpdate(ctx context.Context, purchaseOrderID string) ([]*entity.PurchaseOrderItem, error)
	AddReceivedQuantity(ctx context.Context, itemID string, quantity int64) error
	UpdateStatus(ctx context.Context, purchaseOrderID, status string) error
}
