package cart

import (
	"context"

	"github.com/jhoicas/storefront-api/internal/application/dto"
	"github.com/jhoicas/storefront-api/internal/domain"
	"github.com/jhoicas/storefront-api/internal/domain/entity"
	"github.com/jhoicas/storefront-api/internal/domain/repository"
)

// CartUseCase carrito del usuario autenticado. Toda verificación de stock
// ocurre bajo el bloqueo de la fila del producto.
//
// Orden de bloqueo en todas las transacciones: producto, luego línea de carrito.
type CartUseCase struct {
	tx        TxRunner
	checkouts repository.CheckoutRepository
}

// NewCartUseCase construye el caso de uso.
func NewCartUseCase(tx TxRunner, checkouts repository.CheckoutRepository) *CartUseCase {
	return &CartUseCase{tx: tx, checkouts: checkouts}
}

// Add agrega quantity del producto al carrito. Si ya hay una línea en carrito para ese
// producto se suma a ella. Falla con ErrInsufficientStock si el stock no cubre la cantidad total.
func (uc *CartUseCase) Add(ctx context.Context, userID int64, in dto.AddToCartRequest) (*dto.CheckoutResponse, error) {
	if in.ProductID <= 0 || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	var line *entity.Checkout
	err := uc.tx.Run(ctx, func(products repository.ProductRepository, checkouts repository.CheckoutRepository, _ repository.OrderRepository) error {
		product, err := products.GetForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		existing, err := checkouts.FindInCart(ctx, userID, in.ProductID)
		if err != nil {
			return err
		}
		quantity := in.Quantity
		if existing != nil {
			quantity += existing.Quantity
		}
		if product.Stock < quantity {
			return domain.ErrInsufficientStock
		}
		if existing != nil {
			if err := checkouts.UpdateQuantity(ctx, existing.ID, quantity); err != nil {
				return err
			}
			existing.Quantity = quantity
			existing.Product = product
			line = existing
			return nil
		}
		line = &entity.Checkout{
			UserID:    userID,
			ProductID: in.ProductID,
			Quantity:  quantity,
			Status:    entity.CheckoutInCart,
		}
		if err := checkouts.Create(ctx, line); err != nil {
			return err
		}
		line.Product = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toCheckoutResponse(line), nil
}

// List líneas en carrito del usuario (las ya pedidas no aparecen).
func (uc *CartUseCase) List(ctx context.Context, userID int64) ([]dto.CheckoutResponse, error) {
	list, err := uc.checkouts.ListInCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CheckoutResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCheckoutResponse(c))
	}
	return items, nil
}

// Get una línea del usuario. ErrNotFound si no existe o es de otro usuario.
func (uc *CartUseCase) Get(ctx context.Context, userID, id int64) (*dto.CheckoutResponse, error) {
	c, err := uc.checkouts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil || c.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return toCheckoutResponse(c), nil
}

// UpdateQuantity cambia la cantidad de una línea que sigue en carrito, revisando stock.
func (uc *CartUseCase) UpdateQuantity(ctx context.Context, userID, id int64, in dto.UpdateCartRequest) (*dto.CheckoutResponse, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	var line *entity.Checkout
	err := uc.tx.Run(ctx, func(products repository.ProductRepository, checkouts repository.CheckoutRepository, _ repository.OrderRepository) error {
		peek, err := checkouts.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if peek == nil || peek.UserID != userID {
			return domain.ErrNotFound
		}
		product, err := products.GetForUpdate(ctx, peek.ProductID)
		if err != nil {
			return err
		}
		c, err := checkouts.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if c == nil || product == nil {
			return domain.ErrNotFound
		}
		if !c.InCart() {
			return domain.ErrInvalidCheckout
		}
		if product.Stock < in.Quantity {
			return domain.ErrInsufficientStock
		}
		if err := checkouts.UpdateQuantity(ctx, id, in.Quantity); err != nil {
			return err
		}
		c.Quantity = in.Quantity
		c.Product = product
		line = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toCheckoutResponse(line), nil
}

// Remove quita una línea del carrito. Las líneas ya pedidas no se pueden borrar.
// La línea se bloquea antes de revisar su estado para no competir con Place.
func (uc *CartUseCase) Remove(ctx context.Context, userID, id int64) error {
	return uc.tx.Run(ctx, func(_ repository.ProductRepository, checkouts repository.CheckoutRepository, _ repository.OrderRepository) error {
		c, err := checkouts.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if c == nil || c.UserID != userID {
			return domain.ErrNotFound
		}
		if !c.InCart() {
			return domain.ErrInvalidCheckout
		}
		return checkouts.Delete(ctx, id)
	})
}
