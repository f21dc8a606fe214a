package repository

import (
	"context"

	"github.com/jhoicas/storefront-api/internal/domain/entity"
)

// CheckoutRepository persistencia de las líneas de carrito.
type CheckoutRepository interface {
	Create(ctx context.Context, checkout *entity.Checkout) error
	// GetByID devuelve la línea con su producto cargado.
	GetByID(ctx context.Context, id int64) (*entity.Checkout, error)
	GetForUpdate(ctx context.Context, id int64) (*entity.Checkout, error)
	// FindInCart busca la línea en carrito del usuario para ese producto.
	FindInCart(ctx context.Context, userID, productID int64) (*entity.Checkout, error)
	ListInCart(ctx context.Context, userID int64) ([]*entity.Checkout, error)
	UpdateQuantity(ctx context.Context, id int64, quantity int) error
	MarkOrdered(ctx context.Context, id int64) error
	// Delete solo borra líneas en carrito; si no hay ninguna, ErrInvalidCheckout.
	Delete(ctx context.Context, id int64) error
}
