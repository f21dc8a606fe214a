package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/storefront-api/internal/application/dto"
)

func getRedisClient(t *testing.T) *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis no disponible: %v", err)
	}
	return client
}

func TestRedisCatalog_GetSetInvalidate(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	c := NewRedisCatalog(client, time.Minute, zerolog.Nop())
	c.Invalidate(ctx)

	_, ok := c.GetProducts(ctx, 0)
	assert.False(t, ok, "sin datos es miss")

	items := []dto.ProductResponse{{ID: 1, NamaBarang: "Beras 5kg", HargaBarang: decimal.NewFromInt(65000), StokBarang: 5}}
	c.SetProducts(ctx, 0, items)

	got, ok := c.GetProducts(ctx, 0)
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, "Beras 5kg", got[0].NamaBarang)
	assert.True(t, got[0].HargaBarang.Equal(decimal.NewFromInt(65000)))

	_, ok = c.GetProducts(ctx, 3)
	assert.False(t, ok, "cada filtro tiene su propia entrada")

	c.Invalidate(ctx)
	_, ok = c.GetProducts(ctx, 0)
	assert.False(t, ok, "invalidar descarta la versión anterior")
}

func TestRedisCatalog_ListaVacia(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	c := NewRedisCatalog(client, time.Minute, zerolog.Nop())
	c.Invalidate(ctx)

	c.SetProducts(ctx, 9, []dto.ProductResponse{})
	got, ok := c.GetProducts(ctx, 9)
	require.True(t, ok)
	assert.Empty(t, got)
}

func TestProductKey(t *testing.T) {
	assert.Equal(t, "catalog:products:4:0", productKey(4, 0))
	assert.Equal(t, "catalog:products:0:12", productKey(0, 12))
}

func TestNoop(t *testing.T) {
	var c Noop
	c.SetProducts(context.Background(), 0, []dto.ProductResponse{{ID: 1}})
	_, ok := c.GetProducts(context.Background(), 0)
	assert.False(t, ok)
}
