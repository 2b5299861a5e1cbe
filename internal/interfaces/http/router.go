package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/get-hunter/hero365-inventory/internal/application/inventory"
	"github.com/get-hunter/hero365-inventory/internal/application/planning"
	"github.com/get-hunter/hero365-inventory/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC       *usecase.ProductUseCase
	StockOperations *inventory.StockOperationsUseCase
	MovementQuery   *inventory.MovementQueryUseCase
	Planning        *planning.ReorderPlanningUseCase
	JWTSecret       string
}

// Router registra las rutas de la API. Todo va detrás del Bearer Token: el
// inventario es siempre por negocio (tenant) y el tenant sale del token.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Inventory operations y ledger (protegido)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.StockOperations, deps.MovementQuery)
	invGroup.Post("/adjustments", inventoryHandler.AdjustStock)
	invGroup.Post("/receipts", inventoryHandler.ReceivePurchase)
	invGroup.Post("/transfers", inventoryHandler.TransferStock)
	invGroup.Post("/reservations", inventoryHandler.ReserveStock)
	invGroup.Post("/releases", inventoryHandler.ReleaseReservation)
	invGroup.Get("/movements", inventoryHandler.ListBusinessMovements)
	invGroup.Get("/products/:id/movements", inventoryHandler.ListProductMovements)
	invGroup.Post("/products/:id/rebuild", inventoryHandler.RebuildProductQuantity)

	// Reorder planning (protegido)
	planGroup := protected.Group("/planning")
	planningHandler := NewPlanningHandler(deps.Planning)
	planGroup.Get("/reorder-suggestions", planningHandler.GetReorderSuggestions)
	planGroup.Get("/optimal-order-quantities", planningHandler.CalculateOptimalOrderQuantities)
	planGroup.Get("/purchase-recommendations", planningHandler.GeneratePurchaseRecommendations)
	planGroup.Put("/reorder-parameters/:id", planningHandler.UpdateReorderParameters)
}
