package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product artículo a la venta. Stock nunca baja de 0 (CHECK en la tabla).
type Product struct {
	ID            int64
	Name          string
	Price         decimal.Decimal // precio de venta
	OriginalPrice decimal.Decimal // precio antes de descuento (0 = sin descuento)
	Stock         int
	CategoryID    int64
	CategoryName  string // solo en lecturas con JOIN
	PicURL        string // nombre de archivo dentro del directorio de imágenes
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ProductFilter filtros del listado público.
type ProductFilter struct {
	CategoryID int64 // 0 = todas
}
