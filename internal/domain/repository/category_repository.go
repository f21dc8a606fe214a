package repository

import (
	"context"

	"github.com/jhoicas/storefront-api/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
// Delete devuelve domain.ErrNotFound o domain.ErrConflict si hay productos que la usan.
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id int64) (*entity.Category, error)
	GetByName(ctx context.Context, name string) (*entity.Category, error)
	List(ctx context.Context) ([]*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id int64) error
}
