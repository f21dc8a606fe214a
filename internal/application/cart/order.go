package cart

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jhoicas/storefront-api/internal/application/dto"
	"github.com/jhoicas/storefront-api/internal/domain"
	"github.com/jhoicas/storefront-api/internal/domain/entity"
	"github.com/jhoicas/storefront-api/internal/domain/repository"
)

// OrderUseCase pedidos: creación desde una línea de carrito y cambio de estado (admin).
type OrderUseCase struct {
	tx      TxRunner
	orders  repository.OrderRepository
	catalog CatalogInvalidator
	log     zerolog.Logger
}

// NewOrderUseCase construye el caso de uso. catalog puede ser nil (sin cache).
func NewOrderUseCase(tx TxRunner, orders repository.OrderRepository, catalog CatalogInvalidator, log zerolog.Logger) *OrderUseCase {
	if catalog == nil {
		catalog = noInvalidate{}
	}
	return &OrderUseCase{tx: tx, orders: orders, catalog: catalog, log: log}
}

// Place crea un pedido PENDING/UNPAID para una línea en carrito del usuario, descuenta el stock
// y marca la línea como pedida, todo en la misma transacción.
// ErrInvalidCheckout si la línea no existe, es de otro usuario o ya fue pedida.
func (uc *OrderUseCase) Place(ctx context.Context, userID int64, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	method := strings.TrimSpace(in.PaymentMethod)
	if in.CheckoutID <= 0 || method == "" {
		return nil, domain.ErrInvalidInput
	}
	var order *entity.Order
	err := uc.tx.Run(ctx, func(products repository.ProductRepository, checkouts repository.CheckoutRepository, orders repository.OrderRepository) error {
		peek, err := checkouts.GetByID(ctx, in.CheckoutID)
		if err != nil {
			return err
		}
		if peek == nil || peek.UserID != userID || !peek.InCart() {
			return domain.ErrInvalidCheckout
		}
		product, err := products.GetForUpdate(ctx, peek.ProductID)
		if err != nil {
			return err
		}
		line, err := checkouts.GetForUpdate(ctx, in.CheckoutID)
		if err != nil {
			return err
		}
		if product == nil || line == nil || line.UserID != userID || !line.InCart() {
			return domain.ErrInvalidCheckout
		}
		if product.Stock < line.Quantity {
			return domain.ErrInsufficientStock
		}
		if err := products.AdjustStock(ctx, product.ID, -line.Quantity); err != nil {
			return err
		}
		if err := checkouts.MarkOrdered(ctx, line.ID); err != nil {
			return err
		}
		order = &entity.Order{
			UserID:        userID,
			CheckoutID:    line.ID,
			Status:        entity.OrderPending,
			PaymentMethod: method,
			PaymentStatus: entity.PaymentUnpaid,
		}
		if err := orders.Create(ctx, order); err != nil {
			return err
		}
		line.Status = entity.CheckoutOrdered
		product.Stock -= line.Quantity
		line.Product = product
		order.Checkout = line
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.catalog.Invalidate(ctx)
	uc.log.Info().
		Int64("order_id", order.ID).
		Int64("user_id", userID).
		Int64("checkout_id", order.CheckoutID).
		Str("payment_method", method).
		Msg("pedido creado")
	return toOrderResponse(order), nil
}

// ListMine pedidos del usuario, más recientes primero.
func (uc *OrderUseCase) ListMine(ctx context.Context, userID int64) ([]dto.OrderResponse, error) {
	list, err := uc.orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toOrderList(list), nil
}

// ListAll todos los pedidos (panel admin).
func (uc *OrderUseCase) ListAll(ctx context.Context) ([]dto.OrderResponse, error) {
	list, err := uc.orders.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return toOrderList(list), nil
}

// Get un pedido visible para el usuario: el dueño o un admin. Para otros, ErrNotFound.
func (uc *OrderUseCase) Get(ctx context.Context, userID int64, isAdmin bool, id int64) (*dto.OrderResponse, error) {
	o, err := uc.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil || (!isAdmin && o.UserID != userID) {
		return nil, domain.ErrNotFound
	}
	return toOrderResponse(o), nil
}

// UpdateStatus cambia el estado a uno de los cinco válidos (cualquiera puede seguir a cualquiera).
// Entrar en CANCELED devuelve el stock; salir de CANCELED lo vuelve a tomar.
// PAID marca el pago como PAID. Con error el pedido queda intacto.
func (uc *OrderUseCase) UpdateStatus(ctx context.Context, id int64, in dto.UpdateOrderStatusRequest) (*dto.OrderResponse, error) {
	status := strings.TrimSpace(in.Status)
	if !entity.ValidOrderStatus(status) {
		return nil, domain.ErrInvalidStatus
	}
	var updated *entity.Order
	var previous string
	var stockMoved bool
	err := uc.tx.Run(ctx, func(products repository.ProductRepository, _ repository.CheckoutRepository, orders repository.OrderRepository) error {
		o, err := orders.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.ErrNotFound
		}
		previous = o.Status
		if o.Checkout != nil {
			switch {
			case status == entity.OrderCanceled && o.Status != entity.OrderCanceled:
				err = products.AdjustStock(ctx, o.Checkout.ProductID, o.Checkout.Quantity)
			case o.Status == entity.OrderCanceled && status != entity.OrderCanceled:
				err = products.AdjustStock(ctx, o.Checkout.ProductID, -o.Checkout.Quantity)
			}
			if err != nil {
				return err
			}
			stockMoved = (status == entity.OrderCanceled) != (o.Status == entity.OrderCanceled)
		}
		o.Status = status
		if status == entity.OrderPaid {
			o.PaymentStatus = entity.PaymentPaid
		}
		if err := orders.UpdateStatus(ctx, o); err != nil {
			return err
		}
		updated = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	if stockMoved {
		uc.catalog.Invalidate(ctx)
	}
	uc.log.Info().
		Int64("order_id", id).
		Str("from", previous).
		Str("to", status).
		Msg("estado de pedido actualizado")
	return toOrderResponse(updated), nil
}

func toOrderList(list []*entity.Order) []dto.OrderResponse {
	items := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *toOrderResponse(o))
	}
	return items
}
