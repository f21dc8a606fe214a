package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	_ "github.com/jhoicas/storefront-api/docs"
	"github.com/jhoicas/storefront-api/internal/application/auth"
	"github.com/jhoicas/storefront-api/internal/application/cart"
	"github.com/jhoicas/storefront-api/internal/application/report"
	"github.com/jhoicas/storefront-api/internal/application/usecase"
	"github.com/jhoicas/storefront-api/internal/infrastructure/cache"
	infrapdf "github.com/jhoicas/storefront-api/internal/infrastructure/pdf"
	"github.com/jhoicas/storefront-api/internal/infrastructure/postgres"
	"github.com/jhoicas/storefront-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/storefront-api/internal/interfaces/http"
	"github.com/jhoicas/storefront-api/pkg/config"
	"github.com/jhoicas/storefront-api/pkg/logger"
)

// @title                       Sembako Storefront API
// @version                     1.0
// @description                 Catálogo, carrito, pedidos y reportes de la tienda.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	if err := cfg.Validate(); err != nil {
		panic("configuración inválida: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
		File:  cfg.Log.File,
	})
	defer log.Close()
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool, log.Zerolog()); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	userRepo := postgres.NewUserRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	checkoutRepo := postgres.NewCheckoutRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	contactRepo := postgres.NewContactRepository(pool)
	salesRepo := postgres.NewSalesRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Caché del catálogo: solo si hay Redis configurado y responde.
	var catalog usecase.CatalogCache = cache.Noop{}
	if cfg.Redis.Enabled() {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis no disponible, catálogo sin caché")
		} else {
			catalog = cache.NewRedisCatalog(rdb, cfg.Redis.TTL, log.Zerolog())
			log.Info().Str("addr", cfg.Redis.Addr).Msg("caché de catálogo en redis")
		}
	}

	images, err := storage.NewImageStore(cfg.Upload.Dir, cfg.Upload.MaxBytes)
	if err != nil {
		log.Fatal().Err(err).Msg("directorio de imágenes")
	}

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, cfg.Session.AllowAdminRegister)
	productUC := usecase.NewProductUseCase(productRepo, categoryRepo, images, catalog, log.Zerolog())
	categoryUC := usecase.NewCategoryUseCase(categoryRepo, catalog)
	customerUC := usecase.NewCustomerUseCase(userRepo, orderRepo)
	contactUC := usecase.NewContactUseCase(contactRepo)
	cartUC := cart.NewCartUseCase(txRunner, checkoutRepo)
	orderUC := cart.NewOrderUseCase(txRunner, orderRepo, catalog, log.Zerolog())
	reportUC := report.NewReportUseCase(salesRepo, infrapdf.NewMarotoPDFGenerator(cfg.App.Name), time.Local)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    int(cfg.Upload.MaxBytes) + 1<<20,
		ErrorHandler: httpRouter.FiberErrorHandler,
	})
	app.Use(recover.New())
	app.Use(httpRouter.CORS(cfg.HTTP.AllowedOrigins))
	app.Use(httpRouter.RequestLogger(log.Zerolog()))

	app.Static("/public", cfg.HTTP.PublicDir)

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Sembako Storefront API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		ProductUC:  productUC,
		CategoryUC: categoryUC,
		CustomerUC: customerUC,
		ContactUC:  contactUC,
		CartUC:     cartUC,
		OrderUC:    orderUC,
		ReportUC:   reportUC,
		Users:      userRepo,
		Cookie: httpRouter.SessionCookie{
			Name:   cfg.Session.CookieName,
			Secure: cfg.Session.CookieSecure,
		},
		JWTSecret: cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
