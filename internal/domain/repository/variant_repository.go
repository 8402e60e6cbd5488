package repository

import (
	"context"
	"time"

	"github.com/Hoanqia/Thesis-sub001/internal/domain/entity"
)

// VariantRepository define el puerto mínimo sobre variantes del catálogo que
// el motor de stock necesita. La fila de la variante sirve además como ancla
// de exclusión mutua: reservar y asignar la bloquean primero (FOR UPDATE) para
// que la verificación de disponibilidad y la escritura sean atómicas.
type VariantRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Variant, error)
	// LockByID toma el lock de la fila de la variante dentro de la tx actual.
	LockByID(ctx context.Context, id string) error
	// Availability calcula el snapshot de disponibilidad al instante dado.
	Availability(ctx context.Context, id string, now time.Time) (*entity.VariantAvailability, error)
}
