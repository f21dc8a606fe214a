package cart

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/storefront-api/internal/application/dto"
	"github.com/jhoicas/storefront-api/internal/domain/entity"
)

func toCheckoutResponse(c *entity.Checkout) *dto.CheckoutResponse {
	if c == nil {
		return nil
	}
	out := &dto.CheckoutResponse{
		ID:        c.ID,
		UserID:    c.UserID,
		ProductID: c.ProductID,
		Quantity:  c.Quantity,
		Status:    c.Status,
		CreatedAt: c.CreatedAt,
		Subtotal:  decimal.Zero,
	}
	if c.Product != nil {
		out.Product = &dto.CartProduct{
			ID:          c.ProductID,
			NamaBarang:  c.Product.Name,
			HargaBarang: c.Product.Price,
			PicURL:      c.Product.PicURL,
		}
		out.Subtotal = c.Product.Price.Mul(decimal.NewFromInt(int64(c.Quantity)))
	}
	return out
}

func toOrderResponse(o *entity.Order) *dto.OrderResponse {
	if o == nil {
		return nil
	}
	out := &dto.OrderResponse{
		ID:            o.ID,
		UserID:        o.UserID,
		CheckoutID:    o.CheckoutID,
		Status:        o.Status,
		PaymentMethod: o.PaymentMethod,
		PaymentStatus: o.PaymentStatus,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
		Total:         decimal.Zero,
	}
	if o.Checkout != nil {
		out.Checkout = toCheckoutResponse(o.Checkout)
		out.Total = out.Checkout.Subtotal
	}
	return out
}
