package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleLine una fila del reporte de ventas (un pedido no cancelado).
type SaleLine struct {
	OrderID      int64
	OrderedAt    time.Time
	Status       string
	ProductName  string
	CategoryID   int64
	CategoryName string
	Quantity     int
	UnitPrice    decimal.Decimal
}

// Total precio unitario por cantidad.
func (s SaleLine) Total() decimal.Decimal {
	return s.UnitPrice.Mul(decimal.NewFromInt(int64(s.Quantity)))
}

// SalesFilter rango [From, To) y categoría opcional.
type SalesFilter struct {
	From       *time.Time
	To         *time.Time
	CategoryID int64
}
