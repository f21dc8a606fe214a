package usecase

import (
	"context"
	"io"

	"github.com/jhoicas/storefront-api/internal/application/dto"
)

// ImageStore guarda imágenes de producto y devuelve solo el nombre de archivo.
type ImageStore interface {
	// Save valida extensión y tamaño; los rechazos envuelven domain.ErrInvalidInput.
	Save(originalName string, size int64, content io.Reader) (string, error)
	Remove(name string) error
}

// CatalogCache cache del listado público de productos por filtro de categoría.
// Los fallos del cache no deben romper la lectura: el adaptador los registra y responde miss.
type CatalogCache interface {
	GetProducts(ctx context.Context, categoryID int64) ([]dto.ProductResponse, bool)
	SetProducts(ctx context.Context, categoryID int64, items []dto.ProductResponse)
	Invalidate(ctx context.Context)
}

type noCache struct{}

func (noCache) GetProducts(context.Context, int64) ([]dto.ProductResponse, bool) { return nil, false }
func (noCache) SetProducts(context.Context, int64, []dto.ProductResponse)         {}
func (noCache) Invalidate(context.Context)                                          {}
