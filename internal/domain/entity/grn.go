package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// GRN (goods-received note) documenta la recepción física de una orden de compra.
type GRN struct {
	ID              string
	PurchaseOrderID string
	CreatedBy       string
	CreatedAt       time.Time
}

// GRNItem registra la recepción de una línea: origina exactamente un StockLot.
type GRNItem struct {
	ID                  string
	GRNID               string
	PurchaseOrderItemID string
	VariantID           string
	Quantity            int64
	UnitCost            decimal.Decimal
}
