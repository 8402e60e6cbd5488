package repository

import (
	"context"

	"github.com/Hoanqia/Thesis-sub001/internal/domain/entity"
)

// GRNRepository define el puerto para notas de recepción (GRN) y sus líneas.
type GRNRepository interface {
	Create(ctx context.Context, grn *entity.GRN) error
	CreateItem(ctx context.Context, item *entity.GRNItem) error
	GetByID(ctx context.Context, id string) (*entity.GRN, error)
	ListItems(ctx context.Context, grnID string) ([]*entity.GRNItem, error)
}
