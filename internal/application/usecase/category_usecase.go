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

// CategoryUseCase CRUD de categorías. Toda mutación invalida el cache del catálogo
// porque el listado de productos lleva el nombre de la categoría.
type CategoryUseCase struct {
	repo  repository.CategoryRepository
	cache CatalogCache
}

// NewCategoryUseCase construye el caso de uso. cache puede ser nil.
func NewCategoryUseCase(repo repository.CategoryRepository, cache CatalogCache) *CategoryUseCase {
	if cache == nil {
		cache = noCache{}
	}
	return &CategoryUseCase{repo: repo, cache: cache}
}

// List todas las categorías por nombre.
func (uc *CategoryUseCase) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCategoryResponse(c))
	}
	return items, nil
}

// GetByID ErrNotFound si no existe.
func (uc *CategoryUseCase) GetByID(ctx context.Context, id int64) (*dto.CategoryResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return toCategoryResponse(c), nil
}

// Create da de alta una categoría.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	name, err := categoryName(in)
	if err != nil {
		return nil, err
	}
	c := &entity.Category{Name: name}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	uc.cache.Invalidate(ctx)
	return toCategoryResponse(c), nil
}

// Update renombra la categoría.
func (uc *CategoryUseCase) Update(ctx context.Context, id int64, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	name, err := categoryName(in)
	if err != nil {
		return nil, err
	}
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	c.Name = name
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	uc.cache.Invalidate(ctx)
	return toCategoryResponse(c), nil
}

// Delete ErrNotFound si no existe, ErrConflict si todavía tiene productos.
func (uc *CategoryUseCase) Delete(ctx context.Context, id int64) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.cache.Invalidate(ctx)
	return nil
}

func categoryName(in dto.CategoryRequest) (string, error) {
	name := strings.TrimSpace(in.Nama)
	if name == "" {
		return "", fmt.Errorf("%w: nama es obligatorio", domain.ErrInvalidInput)
	}
	return name, nil
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{ID: c.ID, Nama: c.Name, CreatedAt: c.CreatedAt}
}
