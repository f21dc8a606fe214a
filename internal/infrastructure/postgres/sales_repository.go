package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/storefront-api/internal/domain/entity"
	"github.com/jhoicas/storefront-api/internal/domain/repository"
)

var _ repository.SalesRepository = (*SalesRepo)(nil)

// SalesRepo consultas de reporte (solo lectura).
type SalesRepo struct {
	q Querier
}

// NewSalesRepository construye el adaptador de reportes.
func NewSalesRepository(q Querier) *SalesRepo {
	return &SalesRepo{q: q}
}

// ListSales una fila por pedido no cancelado dentro del filtro, ordenadas por fecha.
func (r *SalesRepo) ListSales(ctx context.Context, f entity.SalesFilter) ([]entity.SaleLine, error) {
	where := []string{"o.status <> 'CANCELED'"}
	var args []any
	if f.From != nil {
		args = append(args, *f.From)
		where = append(where, fmt.Sprintf("o.created_at >= $%d", len(args)))
	}
	if f.To != nil {
		args = append(args, *f.To)
		where = append(where, fmt.Sprintf("o.created_at < $%d", len(args)))
	}
	if f.CategoryID > 0 {
		args = append(args, f.CategoryID)
		where = append(where, fmt.Sprintf("p.category_id = $%d", len(args)))
	}

	query := `
		SELECT o.id, o.created_at, o.status, p.nama_barang, p.category_id, COALESCE(c.nama, ''),
		       ch.quantity, p.harga_barang
		FROM orders o
		JOIN checkouts ch ON ch.id = o.checkout_id
		JOIN products p ON p.id = ch.product_id
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY o.created_at, o.id`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var out []entity.SaleLine
	for rows.Next() {
		var s entity.SaleLine
		if err := rows.Scan(&s.OrderID, &s.OrderedAt, &s.Status, &s.ProductName, &s.CategoryID, &s.CategoryName,
			&s.Quantity, &s.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
