package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Origen de un lote: unión etiquetada (kind + id) en lugar de columnas polimórficas sueltas.
const (
	OriginGRNItem        = "grn_item"        // recepción de orden de compra
	OriginCustomerReturn = "customer_return" // devolución de cliente
	OriginFound          = "found"           // stock encontrado en conteo físico
)

// StockLot representa un lote físico de recepción: una entrada de mercancía con
// un costo unitario fijo. QuantityIn es inmutable una vez creado; QuantityOut
// solo crece (consumos FIFO y ajustes negativos). El costo del lote es la base
// contable del COGS y nunca cambia.
type StockLot struct {
	ID           string
	VariantID    string
	OriginKind   string // grn_item | customer_return | found
	OriginID     string
	QuantityIn   int64
	QuantityOut  int64
	UnitCost     decimal.Decimal
	PurchaseDate time.Time // clave de ordenamiento FIFO
	CreatedAt    time.Time
}

// Remaining devuelve las unidades aún disponibles del lote.
func (l *StockLot) Remaining() int64 {
	return l.QuantityIn - l.QuantityOut
}

// Depleted indica si el lote ya fue consumido por completo.
func (l *StockLot) Depleted() bool {
	return l.Remaining() <= 0
}
