package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/storefront-api/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("REDIS_ADDR", "")
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "session", cfg.Session.CookieName)
	assert.Equal(t, 1440, cfg.JWT.Expiration)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.HTTP.AllowedOrigins)
	assert.Equal(t, int64(5<<20), cfg.Upload.MaxBytes)
	assert.False(t, cfg.Redis.Enabled())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "8081")
	t.Setenv("JWT_EXPIRATION_MINUTES", "30")
	t.Setenv("AUTH_ALLOW_ADMIN_SIGNUP", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("CATALOG_CACHE_TTL_SECONDS", "60")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8081", cfg.HTTP.Addr())
	assert.Equal(t, 30, cfg.JWT.Expiration)
	assert.True(t, cfg.Session.AllowAdminRegister)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.HTTP.AllowedOrigins)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, time.Minute, cfg.Redis.TTL)
}

func TestValidate_RequiereSecret(t *testing.T) {
	cfg := &config.Config{JWT: config.JWTConfig{Expiration: 60}}
	assert.Error(t, cfg.Validate())

	cfg.JWT.Secret = "s3cr3t"
	assert.NoError(t, cfg.Validate())
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	db := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss", DBName: "shop", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss@db:5432/shop?sslmode=disable", db.ConnectionString())
}
