package entity

import "time"

// Variant es la unidad de control de stock (propiedad del catálogo; aquí solo
// los campos que el motor de inventario necesita). La disponibilidad para venta
// se deriva: suma de remanentes de lotes menos reservas activas.
type Variant struct {
	ID        string
	SKU       string
	Name      string
	CreatedAt time.Time
}

// VariantAvailability es el snapshot de disponibilidad de una variante.
type VariantAvailability struct {
	VariantID        string
	LotsRemaining    int64 // suma de (quantity_in - quantity_out) de sus lotes
	ActiveReserved   int64 // suma de reservas activas sin confirmar
	AvailableForSale int64 // LotsRemaining - ActiveReserved
}
