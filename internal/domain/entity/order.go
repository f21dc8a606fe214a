package entity

import "time"

// Estados de Order.
const (
	OrderPending   = "PENDING"
	OrderPaid      = "PAID"
	OrderShipped   = "SHIPPED"
	OrderDelivered = "DELIVERED"
	OrderCanceled  = "CANCELED"
)

// Estados de pago.
const (
	PaymentUnpaid = "UNPAID"
	PaymentPaid   = "PAID"
)

// OrderStatuses lista cerrada de estados aceptados.
var OrderStatuses = []string{OrderPending, OrderPaid, OrderShipped, OrderDelivered, OrderCanceled}

// ValidOrderStatus indica si s es uno de los cinco estados.
func ValidOrderStatus(s string) bool {
	for _, v := range OrderStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Order pedido creado a partir de una línea de carrito (una por línea).
type Order struct {
	ID            int64
	UserID        int64
	CheckoutID    int64
	Status        string
	PaymentMethod string
	PaymentStatus string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Checkout *Checkout // con Product cargado en lecturas de detalle
}
