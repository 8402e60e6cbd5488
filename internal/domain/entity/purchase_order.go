package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de compra. El estado se deriva de comparar lo recibido
// contra lo ordenado en todas sus líneas.
const (
	POStatusPending           = "pending"
	POStatusConfirmed         = "confirmed"
	POStatusPartiallyReceived = "partially_received"
	POStatusReceived          = "received"
)

// PurchaseOrder es la orden de compra a un proveedor.
type PurchaseOrder struct {
	ID         string
	SupplierID string
	Status     string
	CreatedBy  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// PurchaseOrderItem es una línea de la orden: cantidad pedida vs acumulado recibido.
type PurchaseOrderItem struct {
	ID               string
	PurchaseOrderID  string
	VariantID        string
	OrderedQuantity  int64
	ReceivedQuantity int64
	UnitCost         decimal.Decimal // costo pactado con el proveedor
}

// Outstanding devuelve las unidades pendientes de recibir.
func (i *PurchaseOrderItem) Outstanding() int64 {
	return i.OrderedQuantity - i.ReceivedQuantity
}

// DeriveStatus calcula el estado de la orden según sus líneas. Si nada se ha
// recibido devuelve el estado actual sin cambios.
func DeriveStatus(current string, items []*PurchaseOrderItem) string {
	allFull := true
	anyReceived := false
	for _, it := range items {
		if it.ReceivedQuantity > 0 {
			anyReceived = true
		}
		if it.ReceivedQuantity < it.OrderedQuantity {
			allFull = false
		}
	}
	switch {
	case allFull && len(items) > 0:
		return POStatusReceived
	case anyReceived:
		return POStatusPartiallyReceived
	default:
		return current
	}
}
