package receiving

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Hoanqia/Thesis-sub001/internal/domain/entity"
	"github.com/Hoanqia/Thesis-sub001/internal/domain/repository"
)

// ReceivingTxRunner ejecuta una función dentro de una transacción que incluye
// los repos de recepción: orden de compra, GRN, lotes y libro de transacciones.
// Una recepción completa (GRN) es una sola tx: cualquier línea que falle
// aborta el lote entero sin dejar lotes huérfanos.
type ReceivingTxRunner interface {
	RunReceiving(ctx context.Context, fn func(
		poRepo repository.PurchaseOrderRepository,
		grnRepo repository.GRNRepository,
		lotRepo repository.StockLotRepository,
		txnRepo repository.InventoryTransactionRepository,
	) error) error
}

// GRNItemForPDF es una línea del GRN enriquecida para la representación impresa.
type GRNItemForPDF struct {
	SKU      string
	Name     string
	Quantity int64
	UnitCost decimal.Decimal
	Subtotal decimal.Decimal
}

// GRNPDFGenerator genera la representación gráfica de una nota de recepción.
type GRNPDFGenerator interface {
	GenerateGRNPDF(ctx context.Context, grn *entity.GRN, po *entity.PurchaseOrder, items []GRNItemForPDF) ([]byte, error)
}
