package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/jhoicas/storefront-api/internal/application/dto"
	"github.com/jhoicas/storefront-api/internal/application/usecase"
)

var (
	_ usecase.CatalogCache = (*RedisCatalog)(nil)
	_ usecase.CatalogCache = Noop{}
)

const (
	versionKey    = "catalog:version"
	productPrefix = "catalog:products:"
)

// getProductsScript lee la versión vigente y la lista de esa versión en un solo viaje.
var getProductsScript = redis.NewScript(`
local version = redis.call('GET', KEYS[1])
if not version then
	version = '0'
end
return redis.call('GET', ARGV[1] .. version .. ':' .. ARGV[2])
`)

// RedisCatalog cache del listado de productos. Invalidate sube la versión, así las
// entradas viejas dejan de leerse y expiran solas por TTL.
type RedisCatalog struct {
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

// NewRedisCatalog construye el cache. ttl <= 0 usa 5 minutos.
func NewRedisCatalog(client *redis.Client, ttl time.Duration, log zerolog.Logger) *RedisCatalog {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &RedisCatalog{client: client, ttl: ttl, log: log}
}

// GetProducts miss ante cualquier error; el error se registra.
func (r *RedisCatalog) GetProducts(ctx context.Context, categoryID int64) ([]dto.ProductResponse, bool) {
	raw, err := getProductsScript.Run(ctx, r.client, []string{versionKey}, productPrefix, categoryID).Text()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.log.Warn().Err(err).Msg("cache: leer catálogo")
		}
		return nil, false
	}
	var items []dto.ProductResponse
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		r.log.Warn().Err(err).Msg("cache: decodificar catálogo")
		return nil, false
	}
	return items, true
}

// SetProducts guarda la lista bajo la versión vigente.
func (r *RedisCatalog) SetProducts(ctx context.Context, categoryID int64, items []dto.ProductResponse) {
	version, err := r.client.Get(ctx, versionKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		r.log.Warn().Err(err).Msg("cache: leer versión")
		return
	}
	data, err := json.Marshal(items)
	if err != nil {
		r.log.Warn().Err(err).Msg("cache: codificar catálogo")
		return
	}
	if err := r.client.Set(ctx, productKey(version, categoryID), data, r.ttl).Err(); err != nil {
		r.log.Warn().Err(err).Msg("cache: guardar catálogo")
	}
}

// Invalidate descarta todas las listas cacheadas.
func (r *RedisCatalog) Invalidate(ctx context.Context) {
	if err := r.client.Incr(ctx, versionKey).Err(); err != nil {
		r.log.Error().Err(err).Msg("cache: invalidar catálogo")
	}
}

func productKey(version, categoryID int64) string {
	return fmt.Sprintf("%s%d:%d", productPrefix, version, categoryID)
}

// Noop cache deshabilitado (REDIS_ADDR vacío).
type Noop struct{}

func (Noop) GetProducts(context.Context, int64) ([]dto.ProductResponse, bool) { return nil, false }
func (Noop) SetProducts(context.Context, int64, []dto.ProductResponse)         {}
func (Noop) Invalidate(context.Context)                                          {}
