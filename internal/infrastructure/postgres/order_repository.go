package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/storefront-api/internal/domain"
	"github.com/jhoicas/storefront-api/internal/domain/entity"
	"github.com/jhoicas/storefront-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo pedidos sobre PostgreSQL (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderSelect = `
	SELECT o.id, o.user_id, o.checkout_id, o.status, o.payment_method, o.payment_status, o.created_at, o.updated_at,
	       ch.product_id, ch.quantity, ch.status, ch.created_at,
	       p.nama_barang, p.harga_barang, p.pic_url, p.category_id
	FROM orders o
	JOIN checkouts ch ON ch.id = o.checkout_id
	JOIN products p ON p.id = ch.product_id`

func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO orders (user_id, checkout_id, status, payment_method, payment_status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`,
		o.UserID, o.CheckoutID, o.Status, o.PaymentMethod, o.PaymentStatus,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrInvalidCheckout
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (r *OrderRepo) GetByID(ctx context.Context, id int64) (*entity.Order, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, orderSelect+` WHERE o.id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

func (r *OrderRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Order, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, orderSelect+` WHERE o.id = $1 FOR UPDATE OF o`, id))
	if err != nil {
		return nil, fmt.Errorf("get order for update: %w", err)
	}
	return o, nil
}

func (r *OrderRepo) ListByUser(ctx context.Context, userID int64) ([]*entity.Order, error) {
	return r.list(ctx, orderSelect+` WHERE o.user_id = $1 ORDER BY o.created_at DESC, o.id DESC`, userID)
}

func (r *OrderRepo) ListAll(ctx context.Context) ([]*entity.Order, error) {
	return r.list(ctx, orderSelect+` ORDER BY o.created_at DESC, o.id DESC`)
}

func (r *OrderRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Order, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

// UpdateStatus guarda Status y PaymentStatus.
func (r *OrderRepo) UpdateStatus(ctx context.Context, o *entity.Order) error {
	err := r.q.QueryRow(ctx, `
		UPDATE orders SET status = $2, payment_status = $3, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`,
		o.ID, o.Status, o.PaymentStatus,
	).Scan(&o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update order status: %w", err)
	}
	return nil
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	var ch entity.Checkout
	var p entity.Product
	err := row.Scan(&o.ID, &o.UserID, &o.CheckoutID, &o.Status, &o.PaymentMethod, &o.PaymentStatus, &o.CreatedAt, &o.UpdatedAt,
		&ch.ProductID, &ch.Quantity, &ch.Status, &ch.CreatedAt,
		&p.Name, &p.Price, &p.PicURL, &p.CategoryID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	ch.ID = o.CheckoutID
	ch.UserID = o.UserID
	p.ID = ch.ProductID
	ch.Product = &p
	o.Checkout = &ch
	return &o, nil
}
