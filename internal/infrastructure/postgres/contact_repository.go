package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/storefront-api/internal/domain/entity"
	"github.com/jhoicas/storefront-api/internal/domain/repository"
)

var _ repository.ContactRepository = (*ContactRepo)(nil)

// ContactRepo mensajes de contacto.
type ContactRepo struct {
	q Querier
}

func NewContactRepository(q Querier) *ContactRepo {
	return &ContactRepo{q: q}
}

func (r *ContactRepo) Create(ctx context.Context, c *entity.Contact) error {
	err := r.q.QueryRow(ctx,
		`INSERT INTO contacts (name, email, message) VALUES ($1, $2, $3) RETURNING id, created_at`,
		c.Name, c.Email, c.Message,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert contact: %w", err)
	}
	return nil
}

// ListRecent todos los mensajes, más recientes primero.
func (r *ContactRepo) ListRecent(ctx context.Context) ([]*entity.Contact, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, email, message, created_at FROM contacts ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()
	var list []*entity.Contact
	for rows.Next() {
		var c entity.Contact
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Message, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
