package repository

import (
	"context"
	"time"

	"github.com/Hoanqia/Thesis-sub001/internal/domain/entity"
)

// LotFilter filtra el listado de lotes.
type LotFilter struct {
	VariantID  string
	SupplierID string     // vía join con la orden de compra de origen
	Depleted   *bool      // true = solo agotados, false = solo con remanente
	From, To   *time.Time // rango sobre purchase_date
	Limit      int
	Offset     int
}

// StockLotRepository define el puerto de persistencia para lotes de stock.
// Los métodos ForUpdate y AddQuantityOut solo tienen sentido dentro de una
// transacción; el adaptador acepta pool o tx.
type StockLotRepository interface {
	Create(ctx context.Context, lot *entity.StockLot) error
	GetByID(ctx context.Context, id string) (*entity.StockLot, error)
	// GetByIDForUpdate bloquea la fila del lote (SELECT FOR UPDATE) dentro de la tx.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.StockLot, error)
	// ListByVariantForUpdate devuelve los lotes con remanente de la variante,
	// ordenados purchase_date asc, id asc, bloqueando las filas (FOR UPDATE).
	ListByVariantForUpdate(ctx context.Context, variantID string) ([]*entity.StockLot, error)
	// AddQuantityOut incrementa quantity_out solo si el remanente alcanza
	// (update condicional). Devuelve ErrConcurrencyConflict si la condición
	// ya no se cumple al ejecutar.
	AddQuantityOut(ctx context.Context, lotID string, quantity int64) error
	List(ctx context.Context, filter LotFilter) ([]*entity.StockLot, error)
	SumRemainingByVariant(ctx context.Context, variantID string) (int64, error)
}
