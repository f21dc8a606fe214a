package repository

import (
	"context"

	"github.com/jhoicas/storefront-api/internal/domain/entity"
)

// ContactRepository mensajes de contacto (append-only).
type ContactRepository interface {
	Create(ctx context.Context, contact *entity.Contact) error
	ListRecent(ctx context.Context) ([]*entity.Contact, error)
}
