package entity

import "time"

// Tipos de transacción de inventario.
const (
	TxTypeReceipt          = "receipt"            // recepción de compra
	TxTypeSale             = "sale"               // consumo por venta (cantidad negativa)
	TxTypeCustomerReturn   = "customer_return"    // devolución de cliente
	TxTypeDamage           = "damage"             // merma por daño (negativa)
	TxTypeLoss             = "loss"               // pérdida (negativa)
	TxTypeReturnToSupplier = "return_to_supplier" // devolución al proveedor (negativa)
	TxTypeFound            = "found"              // stock encontrado
)

// Kinds del documento causante de una transacción (unión etiquetada).
const (
	TxRefGRNItem    = "grn_item"
	TxRefOrderItem  = "order_item"
	TxRefAdjustment = "adjustment"
)

// InventoryTransaction es un hecho de auditoría append-only: cada creación de
// lote y cada mutación de su quantity_out produce exactamente una transacción.
// Nunca se actualiza ni se borra.
type InventoryTransaction struct {
	ID         string
	VariantID  string
	StockLotID *string // lote afectado, si aplica
	Type       string
	Quantity   int64 // con signo: positivo entra, negativo sale
	RefKind    string
	RefID      string
	ActorID    string
	Notes      string
	CreatedAt  time.Time
}
