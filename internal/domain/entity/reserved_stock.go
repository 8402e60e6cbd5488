package entity

import "time"

// ReservedStock es una retención temporal de stock durante el checkout: aún no
// es una venta. Participa en la disponibilidad mientras esté activa (sin orden
// asociada y sin expirar). Al confirmarse se convierte en asignaciones reales
// y la fila se elimina; al expirar, el sweep la elimina sin tocar lotes.
type ReservedStock struct {
	ID        string
	BatchID   string // agrupa las líneas reservadas en un mismo checkout
	VariantID string
	HolderID  string // usuario o sesión que retiene el stock
	Quantity  int64
	OrderID   *string // nil mientras no se confirme
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Active indica si la reserva sigue reteniendo stock en el instante dado.
func (r *ReservedStock) Active(now time.Time) bool {
	return r.OrderID == nil && now.Before(r.ExpiresAt)
}
