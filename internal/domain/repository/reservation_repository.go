package repository

import (
	"context"
	"time"

	"github.com/Hoanqia/Thesis-sub001/internal/domain/entity"
)

// ReservedStockRepository define el puerto para las retenciones temporales de stock.
type ReservedStockRepository interface {
	// CreateBatch inserta todas las líneas de una reserva (mismo batch_id).
	CreateBatch(ctx context.Context, rows []*entity.ReservedStock) error
	// ListActiveByHolderForUpdate devuelve las reservas sin confirmar del holder
	// bloqueando las filas, para que confirm y el sweep no compitan.
	ListActiveByHolderForUpdate(ctx context.Context, holderID string) ([]*entity.ReservedStock, error)
	ListByHolder(ctx context.Context, holderID string) ([]*entity.ReservedStock, error)
	// DeleteByHolder elimina las reservas sin confirmar del holder. Idempotente:
	// cero filas afectadas no es error.
	DeleteByHolder(ctx context.Context, holderID string) error
	Delete(ctx context.Context, id string) error
	// DeleteExpired elimina las reservas vencidas y sin confirmar; devuelve cuántas.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
	// SumActiveByVariant suma las reservas activas de la variante al instante dado.
	SumActiveByVariant(ctx context.Context, variantID string, now time.Time) (int64, error)
}
