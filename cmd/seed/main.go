// seed aplica las migraciones y carga los datos iniciales de la tienda:
// la categoría "Sembako" y, si SEED_ADMIN_EMAIL y SEED_ADMIN_PASSWORD están
// definidos, un usuario admin.
//
// Uso: go run ./cmd/seed
package main

import (
	"context"
	"errors"
	"time"

	"github.com/jhoicas/storefront-api/internal/application/auth"
	"github.com/jhoicas/storefront-api/internal/application/dto"
	"github.com/jhoicas/storefront-api/internal/domain"
	"github.com/jhoicas/storefront-api/internal/domain/entity"
	"github.com/jhoicas/storefront-api/internal/infrastructure/postgres"
	"github.com/jhoicas/storefront-api/pkg/config"
	"github.com/jhoicas/storefront-api/pkg/logger"
)

const defaultCategory = "Sembako"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool, log.Zerolog()); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	categories := postgres.NewCategoryRepository(pool)
	existing, err := categories.GetByName(ctx, defaultCategory)
	if err != nil {
		log.Fatal().Err(err).Msg("buscar categoría")
	}
	if existing == nil {
		cat := &entity.Category{Name: defaultCategory}
		if err := categories.Create(ctx, cat); err != nil {
			log.Fatal().Err(err).Msg("crear categoría")
		}
		log.Info().Int64("id", cat.ID).Str("nama", cat.Name).Msg("categoría creada")
	} else {
		log.Info().Int64("id", existing.ID).Msg("categoría ya existe")
	}

	if cfg.Seed.AdminEmail == "" || cfg.Seed.AdminPassword == "" {
		log.Info().Msg("sin SEED_ADMIN_EMAIL/SEED_ADMIN_PASSWORD, no se crea admin")
		return
	}
	// allowAdminRegister=true: aquí sí se permite crear admins
	authUC := auth.NewAuthUseCase(postgres.NewUserRepository(pool), auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, true)
	admin, err := authUC.Register(ctx, dto.RegisterRequest{
		Nama:     "Administrator",
		Email:    cfg.Seed.AdminEmail,
		Password: cfg.Seed.AdminPassword,
		Role:     entity.RoleAdmin,
	})
	switch {
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		log.Info().Str("email", cfg.Seed.AdminEmail).Msg("admin ya existe")
	case err != nil:
		log.Fatal().Err(err).Msg("crear admin")
	default:
		log.Info().Int64("id", admin.ID).Str("email", admin.Email).Msg("admin creado")
	}
}
