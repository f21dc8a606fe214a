package repository

import (
	"context"

	"github.com/jhoicas/storefront-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Las lecturas devuelven (nil, nil) si no existe; Delete devuelve domain.ErrNotFound.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	ListByRole(ctx context.Context, role string) ([]*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id int64) error
}
