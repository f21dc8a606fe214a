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

var _ repository.CheckoutRepository = (*CheckoutRepo)(nil)

// CheckoutRepo líneas de carrito sobre PostgreSQL (usable con pool o tx).
type CheckoutRepo struct {
	q Querier
}

// NewCheckoutRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCheckoutRepository(q Querier) *CheckoutRepo {
	return &CheckoutRepo{q: q}
}

const checkoutSelect = `
	SELECT ch.id, ch.user_id, ch.product_id, ch.quantity, ch.status, ch.created_at,
	       p.nama_barang, p.harga_barang, p.harga_awal, p.stok_barang, p.category_id, p.pic_url
	FROM checkouts ch
	JOIN products p ON p.id = ch.product_id`

func (r *CheckoutRepo) Create(ctx context.Context, c *entity.Checkout) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO checkouts (user_id, product_id, quantity, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		c.UserID, c.ProductID, c.Quantity, c.Status,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert checkout: %w", err)
	}
	return nil
}

func (r *CheckoutRepo) GetByID(ctx context.Context, id int64) (*entity.Checkout, error) {
	c, err := scanCheckout(r.q.QueryRow(ctx, checkoutSelect+` WHERE ch.id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get checkout: %w", err)
	}
	return c, nil
}

// GetForUpdate bloquea la línea de carrito (no el producto).
func (r *CheckoutRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Checkout, error) {
	c, err := scanCheckout(r.q.QueryRow(ctx, checkoutSelect+` WHERE ch.id = $1 FOR UPDATE OF ch`, id))
	if err != nil {
		return nil, fmt.Errorf("get checkout for update: %w", err)
	}
	return c, nil
}

func (r *CheckoutRepo) FindInCart(ctx context.Context, userID, productID int64) (*entity.Checkout, error) {
	c, err := scanCheckout(r.q.QueryRow(ctx,
		checkoutSelect+` WHERE ch.user_id = $1 AND ch.product_id = $2 AND ch.status = $3 FOR UPDATE OF ch`,
		userID, productID, entity.CheckoutInCart,
	))
	if err != nil {
		return nil, fmt.Errorf("find cart line: %w", err)
	}
	return c, nil
}

// ListInCart líneas en carrito del usuario, más recientes primero.
func (r *CheckoutRepo) ListInCart(ctx context.Context, userID int64) ([]*entity.Checkout, error) {
	rows, err := r.q.Query(ctx,
		checkoutSelect+` WHERE ch.user_id = $1 AND ch.status = $2 ORDER BY ch.created_at DESC, ch.id DESC`,
		userID, entity.CheckoutInCart,
	)
	if err != nil {
		return nil, fmt.Errorf("list cart: %w", err)
	}
	defer rows.Close()
	var list []*entity.Checkout
	for rows.Next() {
		c, err := scanCheckout(rows)
		if err != nil {
			return nil, fmt.Errorf("scan checkout: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func (r *CheckoutRepo) UpdateQuantity(ctx context.Context, id int64, quantity int) error {
	cmd, err := r.q.Exec(ctx, `UPDATE checkouts SET quantity = $2 WHERE id = $1`, id, quantity)
	if err != nil {
		return fmt.Errorf("update checkout quantity: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// MarkOrdered pasa la línea a CheckoutOrdered; solo afecta líneas en carrito.
func (r *CheckoutRepo) MarkOrdered(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE checkouts SET status = $2 WHERE id = $1 AND status = $3`,
		id, entity.CheckoutOrdered, entity.CheckoutInCart,
	)
	if err != nil {
		return fmt.Errorf("mark checkout ordered: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrInvalidCheckout
	}
	return nil
}

// Delete borra la línea solo si sigue en carrito; una línea pedida arrastraría su pedido.
func (r *CheckoutRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx,
		`DELETE FROM checkouts WHERE id = $1 AND status = $2`,
		id, entity.CheckoutInCart,
	)
	if err != nil {
		return fmt.Errorf("delete checkout: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrInvalidCheckout
	}
	return nil
}

func scanCheckout(row pgx.Row) (*entity.Checkout, error) {
	var c entity.Checkout
	var p entity.Product
	err := row.Scan(&c.ID, &c.UserID, &c.ProductID, &c.Quantity, &c.Status, &c.CreatedAt,
		&p.Name, &p.Price, &p.OriginalPrice, &p.Stock, &p.CategoryID, &p.PicURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	p.ID = c.ProductID
	c.Product = &p
	return &c, nil
}
