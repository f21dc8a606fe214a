package cart

import (
	"context"

	"github.com/jhoicas/storefront-api/internal/domain/repository"
)

// TxRunner ejecuta fn en una transacción con repos atados a ella.
// Si fn devuelve error no queda ningún cambio persistido.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		products repository.ProductRepository,
		checkouts repository.CheckoutRepository,
		orders repository.OrderRepository,
	) error) error
}

// CatalogInvalidator invalida el listado de productos cacheado cuando cambia el stock.
type CatalogInvalidator interface {
	Invalidate(ctx context.Context)
}

type noInvalidate struct{}

func (noInvalidate) Invalidate(context.Context) {}
