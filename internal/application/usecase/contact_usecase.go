package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/storefront-api/internal/application/dto"
	"github.com/jhoicas/storefront-api/internal/domain"
	"github.com/jhoicas/storefront-api/internal/domain/entity"
	"github.com/jhoicas/storefront-api/internal/domain/repository"
)

// ContactUseCase formulario de contacto público.
type ContactUseCase struct {
	repo repository.ContactRepository
}

func NewContactUseCase(repo repository.ContactRepository) *ContactUseCase {
	return &ContactUseCase{repo: repo}
}

// Create guarda el mensaje.
func (uc *ContactUseCase) Create(ctx context.Context, in dto.ContactRequest) (*dto.ContactResponse, error) {
	c := &entity.Contact{
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.TrimSpace(in.Email),
		Message: strings.TrimSpace(in.Message),
	}
	if c.Name == "" || c.Email == "" || c.Message == "" {
		return nil, fmt.Errorf("%w: name, email y message son obligatorios", domain.ErrInvalidInput)
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return toContactResponse(c), nil
}

// List mensajes más recientes primero.
func (uc *ContactUseCase) List(ctx context.Context) ([]dto.ContactResponse, error) {
	list, err := uc.repo.ListRecent(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ContactResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toContactResponse(c))
	}
	return items, nil
}

func toContactResponse(c *entity.Contact) *dto.ContactResponse {
	return &dto.ContactResponse{ID: c.ID, Name: c.Name, Email: c.Email, Message: c.Message, CreatedAt: c.CreatedAt}
}
