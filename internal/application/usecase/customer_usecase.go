package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/storefront-api/internal/application/auth"
	"github.com/jhoicas/storefront-api/internal/application/dto"
	"github.com/jhoicas/storefront-api/internal/domain"
	"github.com/jhoicas/storefront-api/internal/domain/entity"
	"github.com/jhoicas/storefront-api/internal/domain/repository"
)

// CustomerUseCase gestión de clientes desde el panel admin.
// Solo opera sobre usuarios con role customer; las cuentas admin se ven como inexistentes.
type CustomerUseCase struct {
	repo   repository.UserRepository
	orders repository.OrderRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.UserRepository, orders repository.OrderRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo, orders: orders}
}

func (uc *CustomerUseCase) customer(ctx context.Context, id int64) (*entity.User, error) {
	u, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil || u.Role != entity.RoleCustomer {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

// List usuarios con role customer.
func (uc *CustomerUseCase) List(ctx context.Context) ([]dto.UserResponse, error) {
	list, err := uc.repo.ListByRole(ctx, entity.RoleCustomer)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *auth.ToUserResponse(u))
	}
	return items, nil
}

// GetByID ErrNotFound si no existe o no es cliente.
func (uc *CustomerUseCase) GetByID(ctx context.Context, id int64) (*dto.UserResponse, error) {
	u, err := uc.customer(ctx, id)
	if err != nil {
		return nil, err
	}
	return auth.ToUserResponse(u), nil
}

// Create alta de cliente con password hasheado. ErrEmailAlreadyExists si el email está tomado.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CreateCustomerRequest) (*dto.UserResponse, error) {
	role := in.Role
	if role == "" {
		role = entity.RoleCustomer
	}
	if !entity.ValidRole(role) {
		return nil, fmt.Errorf("%w: role inválido", domain.ErrInvalidInput)
	}
	email := auth.NormalizeEmail(in.Email)
	existing, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{
		Name:         strings.TrimSpace(in.Nama),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := uc.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return auth.ToUserResponse(u), nil
}

// Update aplica solo los campos presentes. Un password nuevo se vuelve a hashear.
func (uc *CustomerUseCase) Update(ctx context.Context, id int64, in dto.UpdateCustomerRequest) (*dto.UserResponse, error) {
	u, err := uc.customer(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Nama != nil {
		name := strings.TrimSpace(*in.Nama)
		if name == "" {
			return nil, fmt.Errorf("%w: nama es obligatorio", domain.ErrInvalidInput)
		}
		u.Name = name
	}
	if in.Email != nil {
		email := auth.NormalizeEmail(*in.Email)
		if email != u.Email {
			other, err := uc.repo.GetByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if other != nil && other.ID != u.ID {
				return nil, domain.ErrEmailAlreadyExists
			}
			u.Email = email
		}
	}
	if in.Password != nil {
		hash, err := auth.HashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = hash
	}
	if in.Role != nil {
		if !entity.ValidRole(*in.Role) {
			return nil, fmt.Errorf("%w: role inválido", domain.ErrInvalidInput)
		}
		u.Role = *in.Role
	}
	if err := uc.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return auth.ToUserResponse(u), nil
}

// Delete ErrNotFound si no existe o no es cliente. Con pedidos no cancelados devuelve
// ErrConflict: borrarlo se llevaría esos pedidos sin devolver el stock.
// El carrito y los pedidos cancelados se borran en cascada.
func (uc *CustomerUseCase) Delete(ctx context.Context, id int64) error {
	if _, err := uc.customer(ctx, id); err != nil {
		return err
	}
	orders, err := uc.orders.ListByUser(ctx, id)
	if err != nil {
		return err
	}
	for _, o := range orders {
		if o.Status != entity.OrderCanceled {
			return fmt.Errorf("%w: el cliente tiene pedidos activos", domain.ErrConflict)
		}
	}
	return uc.repo.Delete(ctx, id)
}
