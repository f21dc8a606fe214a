package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/storefront-api/internal/application/dto"
	"github.com/jhoicas/storefront-api/internal/domain"
	"github.com/jhoicas/storefront-api/internal/domain/entity"
	"github.com/jhoicas/storefront-api/internal/domain/repository"
)

// ProductUseCase catálogo: listado público (con cache) y CRUD de admin con imagen.
type ProductUseCase struct {
	repo       repository.ProductRepository
	categories repository.CategoryRepository
	images     ImageStore
	cache      CatalogCache
	log        zerolog.Logger
}

// NewProductUseCase construye el caso de uso. cache puede ser nil.
func NewProductUseCase(
	repo repository.ProductRepository,
	categories repository.CategoryRepository,
	images ImageStore,
	cache CatalogCache,
	log zerolog.Logger,
) *ProductUseCase {
	if cache == nil {
		cache = noCache{}
	}
	return &ProductUseCase{repo: repo, categories: categories, images: images, cache: cache, log: log}
}

// List productos con el nombre de su categoría, filtrados opcionalmente por categoría.
func (uc *ProductUseCase) List(ctx context.Context, filter entity.ProductFilter) ([]dto.ProductResponse, error) {
	if items, ok := uc.cache.GetProducts(ctx, filter.CategoryID); ok {
		return items, nil
	}
	list, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	uc.cache.SetProducts(ctx, filter.CategoryID, items)
	return items, nil
}

// GetByID obtiene un producto; ErrNotFound si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(p), nil
}

// Create da de alta un producto. La imagen es obligatoria.
func (uc *ProductUseCase) Create(ctx context.Context, form dto.ProductForm, image *dto.ImageUpload) (*dto.ProductResponse, error) {
	product, err := uc.parseForm(ctx, form)
	if err != nil {
		return nil, err
	}
	if image == nil {
		return nil, fmt.Errorf("%w: la imagen es obligatoria", domain.ErrInvalidInput)
	}
	name, err := uc.images.Save(image.Filename, image.Size, image.Content)
	if err != nil {
		return nil, err
	}
	product.PicURL = name
	if err := uc.repo.Create(ctx, product); err != nil {
		uc.removeImage(name)
		return nil, err
	}
	uc.cache.Invalidate(ctx)
	return uc.GetByID(ctx, product.ID)
}

// Update sobrescribe los campos del producto. Con imagen nueva la anterior se borra.
func (uc *ProductUseCase) Update(ctx context.Context, id int64, form dto.ProductForm, image *dto.ImageUpload) (*dto.ProductResponse, error) {
	existing, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrNotFound
	}
	product, err := uc.parseForm(ctx, form)
	if err != nil {
		return nil, err
	}
	product.ID = existing.ID
	product.PicURL = existing.PicURL

	var newImage string
	if image != nil {
		newImage, err = uc.images.Save(image.Filename, image.Size, image.Content)
		if err != nil {
			return nil, err
		}
		product.PicURL = newImage
	}
	if err := uc.repo.Update(ctx, product); err != nil {
		if newImage != "" {
			uc.removeImage(newImage)
		}
		return nil, err
	}
	if newImage != "" && existing.PicURL != "" {
		uc.removeImage(existing.PicURL)
	}
	uc.cache.Invalidate(ctx)
	return uc.GetByID(ctx, id)
}

// Delete elimina el producto y su imagen. ErrConflict si está en carritos o pedidos.
func (uc *ProductUseCase) Delete(ctx context.Context, id int64) error {
	existing, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	if existing.PicURL != "" {
		uc.removeImage(existing.PicURL)
	}
	uc.cache.Invalidate(ctx)
	return nil
}

func (uc *ProductUseCase) removeImage(name string) {
	if err := uc.images.Remove(name); err != nil {
		uc.log.Warn().Err(err).Str("image", name).Msg("no se pudo borrar la imagen")
	}
}

// parseForm convierte los campos de texto del formulario y verifica la categoría.
func (uc *ProductUseCase) parseForm(ctx context.Context, form dto.ProductForm) (*entity.Product, error) {
	name := strings.TrimSpace(form.NamaBarang)
	if name == "" {
		return nil, fmt.Errorf("%w: namaBarang es obligatorio", domain.ErrInvalidInput)
	}
	price, err := parseMoney(form.HargaBarang, "hargaBarang")
	if err != nil {
		return nil, err
	}
	original := decimal.Zero
	if strings.TrimSpace(form.HargaAwal) != "" {
		if original, err = parseMoney(form.HargaAwal, "hargaAwal"); err != nil {
			return nil, err
		}
	}
	stock, err := strconv.Atoi(strings.TrimSpace(form.StokBarang))
	if err != nil || stock < 0 {
		return nil, fmt.Errorf("%w: stokBarang debe ser un entero no negativo", domain.ErrInvalidInput)
	}
	categoryID, err := strconv.ParseInt(strings.TrimSpace(form.CategoryID), 10, 64)
	if err != nil || categoryID <= 0 {
		return nil, fmt.Errorf("%w: categoryId inválido", domain.ErrInvalidInput)
	}
	category, err := uc.categories.GetByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, fmt.Errorf("%w: la categoría no existe", domain.ErrInvalidInput)
	}
	return &entity.Product{
		Name:          name,
		Price:         price,
		OriginalPrice: original,
		Stock:         stock,
		CategoryID:    categoryID,
	}, nil
}

func parseMoney(raw, field string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || d.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %s debe ser un número no negativo", domain.ErrInvalidInput, field)
	}
	return d.Round(2), nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	out := &dto.ProductResponse{
		ID:          p.ID,
		NamaBarang:  p.Name,
		HargaBarang: p.Price,
		HargaAwal:   p.OriginalPrice,
		StokBarang:  p.Stock,
		CategoryID:  p.CategoryID,
		PicURL:      p.PicURL,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.CategoryName != "" {
		out.Category = &dto.CategoryRef{ID: p.CategoryID, Nama: p.CategoryName}
	}
	return out
}
