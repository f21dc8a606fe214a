package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AddToCartRequest agrega (o suma) un producto al carrito.
type AddToCartRequest struct {
	ProductID int64 `json:"productId" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"required,gt=0"`
}

// UpdateCartRequest nueva cantidad de una línea en carrito.
type UpdateCartRequest struct {
	Quantity int `json:"quantity" validate:"required,gt=0"`
}

// CartProduct resumen del producto dentro de una línea.
type CartProduct struct {
	ID          int64           `json:"id"`
	NamaBarang  string          `json:"namaBarang"`
	HargaBarang decimal.Decimal `json:"hargaBarang"`
	PicURL      string          `json:"picUrl"`
}

// CheckoutResponse línea de carrito.
type CheckoutResponse struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"userId"`
	ProductID int64           `json:"productId"`
	Quantity  int             `json:"quantity"`
	Status    int             `json:"status"`
	CreatedAt time.Time       `json:"createdAt"`
	Product   *CartProduct    `json:"product,omitempty"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}
