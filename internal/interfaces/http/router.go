package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mvalderrama/inventario-api/internal/application/auth"
	"github.com/mvalderrama/inventario-api/internal/application/inventory"
	"github.com/mvalderrama/inventario-api/internal/application/sales"
	"github.com/mvalderrama/inventario-api/internal/application/usecase"
	"github.com/mvalderrama/inventario-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC *usecase.ProductUseCase
	ClientUC  *usecase.ClientUseCase
	StockUC   *inventory.StockUseCase
	SaleUC    *sales.SaleUseCase
	AuthUC    *auth.AuthUseCase
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products + stock (protegido). /low-stock va antes de /:id.
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	stockHandler := NewStockHandler(deps.StockUC)
	products.Get("/low-stock", stockHandler.ListLowStock)
	products.Post("/", RequireRole(entity.RoleStock), productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", RequireRole(entity.RoleStock), productHandler.Update)
	products.Delete("/:id", RequireRole(entity.RoleStock), productHandler.Delete)
	products.Get("/:id/movements", stockHandler.ListMovements)
	products.Post("/:id/movements", RequireRole(entity.RoleStock), stockHandler.RegisterMovement)
	products.Post("/:id/stock", RequireRole(entity.RoleStock), stockHandler.AdjustStock)

	// Sales (protegido). /reports/by-day va antes de /:id.
	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC)
	salesGroup.Get("/reports/by-day", saleHandler.SalesByDay)
	salesGroup.Post("/", RequireRole(entity.RoleVentas), saleHandler.Create)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Put("/:id", RequireRole(entity.RoleVentas), saleHandler.Update)
	salesGroup.Delete("/:id", RequireRole(entity.RoleVentas), saleHandler.Delete)
	salesGroup.Get("/:id/pdf", saleHandler.ReceiptPDF)

	// Clients (protegido)
	clients := protected.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC)
	clients.Post("/", RequireRole(entity.RoleVentas), clientHandler.Create)
	clients.Get("/", clientHandler.List)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Put("/:id", RequireRole(entity.RoleVentas), clientHandler.Update)
	clients.Delete("/:id", RequireRole(entity.RoleVentas), clientHandler.Delete)
}
