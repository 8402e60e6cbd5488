package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReserveLineRequest línea de una reserva: variante y cantidad.
type ReserveLineRequest struct {
	VariantID string `json:"variant_id"`
	Quantity  int64  `json:"quantity"`
}

// ReserveRequest body para POST /api/stock/reservations. El holder sale del token.
type ReserveRequest struct {
	Lines []ReserveLineRequest `json:"lines"`
}

// ReserveResponse devuelve el id del batch reservado.
type ReserveResponse struct {
	ReservationBatchID string `json:"reservation_batch_id"`
}

// ConfirmItemRequest mapea una variante reservada a su línea de orden.
type ConfirmItemRequest struct {
	VariantID   string `json:"variant_id"`
	OrderItemID string `json:"order_item_id"`
}

// ConfirmRequest body para POST /api/stock/reservations/confirm.
type ConfirmRequest struct {
	OrderID string               `json:"order_id"`
	Items   []ConfirmItemRequest `json:"items"`
}

// AllocationDTO una asignación lote→línea con el costo snapshot.
type AllocationDTO struct {
	StockLotID string          `json:"stock_lot_id"`
	Quantity   int64           `json:"quantity"`
	UnitCost   decimal.Decimal `json:"unit_cost"`
}

// ConfirmLineResponse resultado por línea confirmada: asignaciones y COGS.
type ConfirmLineResponse struct {
	OrderItemID  string          `json:"order_item_id"`
	VariantID    string          `json:"variant_id"`
	Allocations  []AllocationDTO `json:"allocations"`
	SubtotalCOGS decimal.Decimal `json:"subtotal_cogs"`
}

// ReservationStatusDTO estado de una reserva del holder.
type ReservationStatusDTO struct {
	ID        string    `json:"id"`
	BatchID   string    `json:"batch_id"`
	VariantID string    `json:"variant_id"`
	Quantity  int64     `json:"quantity"`
	Active    bool      `json:"active"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AdjustLotRequest body para POST /api/stock/lots/:id/adjustments (negativo).
type AdjustLotRequest struct {
	Quantity int64  `json:"quantity"` // magnitud a descontar, > 0
	Type     string `json:"type"`     // damage | loss | return_to_supplier
	Notes    string `json:"notes,omitempty"`
}

// IntakeLotRequest body para POST /api/stock/lots (devolución o stock encontrado).
type IntakeLotRequest struct {
	VariantID string          `json:"variant_id"`
	Quantity  int64           `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	Kind      string          `json:"kind"` // customer_return | found
	Notes     string          `json:"notes,omitempty"`
}

// StockLotDTO representación de un lote en respuestas.
type StockLotDTO struct {
	ID           string          `json:"id"`
	VariantID    string          `json:"variant_id"`
	OriginKind   string          `json:"origin_kind"`
	OriginID     string          `json:"origin_id"`
	QuantityIn   int64           `json:"quantity_in"`
	QuantityOut  int64           `json:"quantity_out"`
	Remaining    int64           `json:"remaining"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	PurchaseDate time.Time       `json:"purchase_date"`
}

// LotAllocationDTO una asignación vista desde el lote.
type LotAllocationDTO struct {
	ID          string          `json:"id"`
	OrderItemID string          `json:"order_item_id"`
	Quantity    int64           `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	CreatedAt   time.Time       `json:"created_at"`
}

// LotDetailResponse lote con su historial completo.
type LotDetailResponse struct {
	Lot          StockLotDTO        `json:"lot"`
	Allocations  []LotAllocationDTO `json:"allocations"`
	Transactions []TransactionDTO   `json:"transactions"`
}

// TransactionDTO una entrada del libro de inventario.
type TransactionDTO struct {
	ID         string    `json:"id"`
	VariantID  string    `json:"variant_id"`
	StockLotID *string   `json:"stock_lot_id,omitempty"`
	Type       string    `json:"type"`
	Quantity   int64     `json:"quantity"`
	RefKind    string    `json:"ref_kind"`
	RefID      string    `json:"ref_id"`
	ActorID    string    `json:"actor_id,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// AvailabilityResponse snapshot de disponibilidad de una variante.
type AvailabilityResponse struct {
	VariantID        string `json:"variant_id"`
	LotsRemaining    int64  `json:"lots_remaining"`
	ActiveReserved   int64  `json:"active_reserved"`
	AvailableForSale int64  `json:"available_for_sale"`
}
