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

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productSelect = `
	SELECT p.id, p.nama_barang, p.harga_barang, p.harga_awal, p.stok_barang, p.category_id,
	       COALESCE(c.nama, ''), p.pic_url, p.created_at, p.updated_at
	FROM products p
	LEFT JOIN categories c ON c.id = p.category_id`

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO products (nama_barang, harga_barang, harga_awal, stok_barang, category_id, pic_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`,
		p.Name, p.Price, p.OriginalPrice, p.Stock, p.CategoryID, p.PicURL,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: la categoría no existe", domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID (con nombre de categoría).
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, productSelect+` WHERE p.id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetForUpdate obtiene el producto y bloquea la fila (SELECT FOR UPDATE).
func (r *ProductRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, productSelect+` WHERE p.id = $1 FOR UPDATE OF p`, id))
	if err != nil {
		return nil, fmt.Errorf("get product for update: %w", err)
	}
	return p, nil
}

// List lista productos, más recientes primero, con filtro opcional por categoría.
func (r *ProductRepo) List(ctx context.Context, filter entity.ProductFilter) ([]*entity.Product, error) {
	query := productSelect
	var args []any
	if filter.CategoryID > 0 {
		query += ` WHERE p.category_id = $1`
		args = append(args, filter.CategoryID)
	}
	query += ` ORDER BY p.created_at DESC, p.id DESC`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Update sobrescribe los campos editables del producto.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	err := r.q.QueryRow(ctx, `
		UPDATE products
		SET nama_barang = $2, harga_barang = $3, harga_awal = $4, stok_barang = $5, category_id = $6, pic_url = $7, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`,
		p.ID, p.Name, p.Price, p.OriginalPrice, p.Stock, p.CategoryID, p.PicURL,
	).Scan(&p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: la categoría no existe", domain.ErrInvalidInput)
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// AdjustStock suma delta al stock solo si el resultado no queda negativo.
func (r *ProductRepo) AdjustStock(ctx context.Context, id int64, delta int) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE products SET stok_barang = stok_barang + $2, updated_at = now()
		WHERE id = $1 AND stok_barang + $2 >= 0`,
		id, delta,
	)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrInsufficientStock
		}
		return fmt.Errorf("adjust stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrInsufficientStock
	}
	return nil
}

// Delete elimina un producto. ErrConflict si aparece en carritos o pedidos.
func (r *ProductRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.Name, &p.Price, &p.OriginalPrice, &p.Stock, &p.CategoryID,
		&p.CategoryName, &p.PicURL, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}
