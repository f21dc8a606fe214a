package repository

import (
	"context"

	"github.com/jhoicas/storefront-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción (SELECT ... FOR UPDATE).
	GetForUpdate(ctx context.Context, id int64) (*entity.Product, error)
	List(ctx context.Context, filter entity.ProductFilter) ([]*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	// AdjustStock suma delta al stock; devuelve domain.ErrInsufficientStock si quedaría negativo.
	AdjustStock(ctx context.Context, id int64, delta int) error
	Delete(ctx context.Context, id int64) error
}
