package repository

import (
	"context"

	"github.com/jhoicas/storefront-api/internal/domain/entity"
)

// OrderRepository persistencia de pedidos. Las lecturas cargan Checkout y Product.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id int64) (*entity.Order, error)
	GetForUpdate(ctx context.Context, id int64) (*entity.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]*entity.Order, error)
	ListAll(ctx context.Context) ([]*entity.Order, error)
	UpdateStatus(ctx context.Context, order *entity.Order) error
}
