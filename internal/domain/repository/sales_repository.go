package repository

import (
	"context"

	"github.com/jhoicas/storefront-api/internal/domain/entity"
)

// SalesRepository consultas de solo lectura para el reporte de ventas.
type SalesRepository interface {
	ListSales(ctx context.Context, filter entity.SalesFilter) ([]entity.SaleLine, error)
}
