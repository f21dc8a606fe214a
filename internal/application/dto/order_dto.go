package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrderRequest convierte una línea de carrito en pedido.
type CreateOrderRequest struct {
	CheckoutID    int64  `json:"checkoutId" validate:"required,gt=0"`
	PaymentMethod string `json:"paymentMethod" validate:"required,min=1,max=50"`
}

// UpdateOrderStatusRequest el valor se valida contra los cinco estados en el caso de uso.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// OrderResponse salida de un pedido con su línea de carrito.
type OrderResponse struct {
	ID            int64             `json:"id"`
	UserID        int64             `json:"userId"`
	CheckoutID    int64             `json:"checkoutId"`
	Status        string            `json:"status"`
	PaymentMethod string            `json:"paymentMethod"`
	PaymentStatus string            `json:"paymentStatus"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
	Checkout      *CheckoutResponse `json:"checkout,omitempty"`
	Total         decimal.Decimal   `json:"total"`
}
