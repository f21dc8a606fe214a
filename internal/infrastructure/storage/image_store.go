package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/storefront-api/internal/application/usecase"
	"github.com/jhoicas/storefront-api/internal/domain"
)

var _ usecase.ImageStore = (*ImageStore)(nil)

// AllowedExtensions extensiones de imagen aceptadas (en minúsculas).
var AllowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// ImageStore imágenes de producto en disco. Solo el nombre de archivo sale de aquí;
// la URL pública la arma el frontend con el prefijo de estáticos.
type ImageStore struct {
	dir      string
	maxBytes int64
}

// NewImageStore crea dir si no existe.
func NewImageStore(dir string, maxBytes int64) (*ImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: crear %s: %w", dir, err)
	}
	return &ImageStore{dir: dir, maxBytes: maxBytes}, nil
}

// Save escribe el contenido bajo un nombre aleatorio (32 hex) con la extensión original.
func (s *ImageStore) Save(originalName string, size int64, content io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if !AllowedExtensions[ext] {
		return "", fmt.Errorf("%w: extensión de imagen no permitida %q", domain.ErrInvalidInput, ext)
	}
	if s.maxBytes > 0 && size > s.maxBytes {
		return "", fmt.Errorf("%w: la imagen supera %d bytes", domain.ErrInvalidInput, s.maxBytes)
	}

	name := strings.ReplaceAll(uuid.New().String(), "-", "") + ext
	path := filepath.Join(s.dir, name)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("storage: crear archivo: %w", err)
	}

	src := content
	if s.maxBytes > 0 {
		// el tamaño declarado puede mentir
		src = io.LimitReader(content, s.maxBytes+1)
	}
	n, err := io.Copy(f, src)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil && s.maxBytes > 0 && n > s.maxBytes {
		err = fmt.Errorf("%w: la imagen supera %d bytes", domain.ErrInvalidInput, s.maxBytes)
	}
	if err != nil {
		_ = os.Remove(path)
		if errors.Is(err, domain.ErrInvalidInput) {
			return "", err
		}
		return "", fmt.Errorf("storage: escribir imagen: %w", err)
	}
	return name, nil
}

// Remove borra la imagen. Un archivo inexistente no es error.
func (s *ImageStore) Remove(name string) error {
	if name == "" || name != filepath.Base(name) {
		return fmt.Errorf("%w: nombre de imagen inválido", domain.ErrInvalidInput)
	}
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("storage: borrar imagen: %w", err)
	}
	return nil
}

// Path ruta absoluta o relativa de una imagen guardada.
func (s *ImageStore) Path(name string) string {
	return filepath.Join(s.dir, name)
}
