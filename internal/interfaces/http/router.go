package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalog-api/internal/application/auth"
	"github.com/jhoicas/catalog-api/internal/application/catalog"
	"github.com/jhoicas/catalog-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	CatalogUC *catalog.UseCase
	Store     Pinger
	Service   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", Health(deps.Service, deps.Store))

	api := app.Group("/api/v1")
	requireAuth := AuthMiddleware(deps.AuthUC)

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/", authHandler.Register)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", requireAuth, authHandler.Me)
	authGroup.Put("/password", requireAuth, authHandler.ChangePassword)

	// Products (protegido)
	productHandler := NewProductHandler(deps.CatalogUC)
	products := api.Group("/products", requireAuth)
	products.Post("/", RequireWriteAccess, productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/stats", RequireRole(entity.RoleAdmin), productHandler.Stats)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", RequireWriteAccess, productHandler.Update)
	products.Put("/:id/status", RequireWriteAccess, productHandler.SetStatus)
	products.Patch("/:id/quantity", RequireWriteAccess, productHandler.AdjustQuantity)
	products.Delete("/:id", RequireWriteAccess, productHandler.Delete)
	products.Get("/:id/history", productHandler.History)
}
