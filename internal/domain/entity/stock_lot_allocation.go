package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockLotAllocation vincula una línea de venta con el lote que la financió.
// UnitCost es un snapshot del costo del lote al momento de asignar: fija el
// COGS de la venta y no cambia aunque el lote reciba ajustes posteriores.
// Inmutable una vez creada; las cancelaciones se compensan con nuevos lotes
// de devolución, nunca borrando asignaciones.
type StockLotAllocation struct {
	ID          string
	OrderItemID string
	StockLotID  string
	Quantity    int64
	UnitCost    decimal.Decimal
	CreatedAt   time.Time
}

// Subtotal devuelve el costo total asignado (Quantity * UnitCost).
func (a *StockLotAllocation) Subtotal() decimal.Decimal {
	return a.UnitCost.Mul(decimal.NewFromInt(a.Quantity))
}
