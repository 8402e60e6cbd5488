package dto

import "github.com/shopspring/decimal"

// ReceiptLineRequest línea de recepción contra una línea de la orden de compra.
type ReceiptLineRequest struct {
	PurchaseOrderItemID string          `json:"purchase_order_item_id"`
	Quantity            int64           `json:"quantity"`
	UnitCost            decimal.Decimal `json:"unit_cost"`
}

// ReceiveRequest body para POST /api/receiving/grns.
type ReceiveRequest struct {
	PurchaseOrderID string               `json:"purchase_order_id"`
	Lines           []ReceiptLineRequest `json:"lines"`
}

// ReceiveResponse GRN creado y lotes materializados.
type ReceiveResponse struct {
	GRNID       string        `json:"grn_id"`
	LotsCreated []StockLotDTO `json:"lots_created"`
}
