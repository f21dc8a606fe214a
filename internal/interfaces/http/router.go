package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/storefront-api/internal/application/auth"
	"github.com/jhoicas/storefront-api/internal/application/cart"
	"github.com/jhoicas/storefront-api/internal/application/report"
	"github.com/jhoicas/storefront-api/internal/application/usecase"
	"github.com/jhoicas/storefront-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	ProductUC  *usecase.ProductUseCase
	CategoryUC *usecase.CategoryUseCase
	CustomerUC *usecase.CustomerUseCase
	ContactUC  *usecase.ContactUseCase
	CartUC     *cart.CartUseCase
	OrderUC    *cart.OrderUseCase
	ReportUC   *report.ReportUseCase
	Users      userLookup
	Cookie     SessionCookie
	JWTSecret  string
}

// Router registra las rutas de la API. El middleware se pone por ruta para que
// las lecturas públicas no pasen por auth.
func Router(app *fiber.App, deps RouterDeps) {
	authed := AuthMiddleware(AuthConfig{
		JWTSecret:  deps.JWTSecret,
		CookieName: deps.Cookie.Name,
		Users:      deps.Users,
	})
	admin := RequireRole(entity.RoleAdmin)

	app.Get("/protected", authed, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "Protected route"})
	})

	api := app.Group("/api")

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC, deps.Cookie)
	api.Post("/register", authHandler.Register)
	api.Post("/login", authHandler.Login)
	api.Post("/logout", authHandler.Logout)
	api.Get("/me", authed, authHandler.Me)

	// Categorías: lectura pública, escritura admin
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	api.Get("/category", categoryHandler.List)
	api.Get("/categories", categoryHandler.List)
	api.Get("/category/:id", categoryHandler.GetByID)
	api.Post("/category", authed, admin, categoryHandler.Create)
	api.Put("/category/:id", authed, admin, categoryHandler.Update)
	api.Patch("/category/:id", authed, admin, categoryHandler.Update)
	api.Delete("/category/:id", authed, admin, categoryHandler.Delete)

	// Productos
	productHandler := NewProductHandler(deps.ProductUC)
	api.Get("/products", productHandler.List)
	api.Get("/products/:id", productHandler.GetByID)
	api.Post("/products", authed, admin, productHandler.Create)
	api.Put("/products/:id", authed, admin, productHandler.Update)
	api.Patch("/products/:id", authed, admin, productHandler.Update)
	api.Delete("/products/:id", authed, admin, productHandler.Delete)

	// Carrito
	checkoutHandler := NewCheckoutHandler(deps.CartUC)
	checkout := api.Group("/checkout", authed)
	checkout.Get("/", checkoutHandler.List)
	checkout.Post("/", checkoutHandler.Add)
	checkout.Get("/:id", checkoutHandler.GetByID)
	checkout.Put("/:id", checkoutHandler.Update)
	checkout.Patch("/:id", checkoutHandler.Update)
	checkout.Delete("/:id", checkoutHandler.Delete)

	// Pedidos
	orderHandler := NewOrderHandler(deps.OrderUC)
	orders := api.Group("/orders", authed)
	orders.Get("/", orderHandler.ListMine)
	orders.Post("/", orderHandler.Create)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Put("/:id", admin, orderHandler.UpdateStatus)
	orders.Patch("/:id", admin, orderHandler.UpdateStatus)
	api.Get("/admin/orders", authed, admin, orderHandler.ListAll)

	// Clientes (admin)
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers := api.Group("/customers", authed, admin)
	customers.Get("/", customerHandler.List)
	customers.Post("/", customerHandler.Create)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Patch("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)

	// Contacto (público)
	contactHandler := NewContactHandler(deps.ContactUC)
	api.Post("/contact", contactHandler.Create)
	api.Get("/contacts", contactHandler.List)

	// Reportes (admin)
	reportHandler := NewReportHandler(deps.ReportUC)
	api.Get("/transaction", authed, admin, reportHandler.Sales)
	api.Get("/transaction/pdf", authed, admin, reportHandler.SalesPDF)
}
