package entity

import "time"

// Estados de una línea de carrito.
const (
	CheckoutInCart  = 0
	CheckoutOrdered = 1
)

// Checkout línea de carrito: un producto y una cantidad para un usuario.
// Pasa de CheckoutInCart a CheckoutOrdered al crear el pedido y no vuelve atrás.
type Checkout struct {
	ID        int64
	UserID    int64
	ProductID int64
	Quantity  int
	Status    int
	CreatedAt time.Time

	Product *Product // solo en lecturas con JOIN
}

// InCart indica si la línea sigue en el carrito.
func (c *Checkout) InCart() bool {
	return c.Status == CheckoutInCart
}
