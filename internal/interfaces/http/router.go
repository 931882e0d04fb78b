package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/nexus-inventory/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC *usecase.ProductUseCase
	StockUC   *usecase.StockUseCase
	AuditUC   *usecase.AuditLogUseCase
	UserUC    *usecase.UserUseCase
	MetaUC    *usecase.MetaUseCase
	Backend   string
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	metaHandler := NewMetaHandler(deps.MetaUC, deps.Backend)
	app.Get("/health", metaHandler.Health)

	api := app.Group("/api/v1")

	// Meta (público)
	api.Get("/meta", metaHandler.Meta)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.StockUC, deps.UserUC)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Patch("/:id/stock", productHandler.AdjustStock)

	movements := protected.Group("/stock-movements")
	movementHandler := NewStockMovementHandler(deps.StockUC, deps.UserUC)
	movements.Get("/", movementHandler.List)
	movements.Post("/", movementHandler.Create)

	auditHandler := NewAuditLogHandler(deps.AuditUC)
	protected.Get("/audit-logs", auditHandler.List)

	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/me", userHandler.Me)
	users.Get("/", userHandler.List)
}
