package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/get-hunter/hero365-inventory/internal/domain/entity"
)

// ReorderFilter filtros opcionales para la consulta de productos en reorden.
type ReorderFilter struct {
	Category   string
	SupplierID string
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// Las cantidades y costos solo se escriben con los métodos Update* dentro
// de la transacción del motor de inventario, nunca con Update.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetByIDForUpdate obtiene el producto bloqueando la fila
	// (SELECT ... FOR UPDATE). Serializa las mutaciones por producto.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Product, error)
	GetByBusinessAndSKU(ctx context.Context, businessID, sku string) (*entity.Product, error)
	ListByBusiness(ctx context.Context, businessID string, limit, offset int) ([]*entity.Product, error)

	// Update actualiza campos descriptivos; no toca cantidades ni costos.
	Update(ctx context.Context, product *entity.Product) error
	UpdateQuantities(ctx context.Context, productID string, onHand, reserved decimal.Decimal) error
	UpdateCost(ctx context.Context, productID string, unitCost, averageCost decimal.Decimal) error
	UpdateReorderParameters(ctx context.Context, productID string, reorderPoint, reorderQty, minQty, maxQty decimal.Decimal) error

	// GetProductsNeedingReorder productos con inventario habilitado cuyo
	// disponible está en o por debajo de su punto de reorden.
	GetProductsNeedingReorder(ctx context.Context, businessID string, filter ReorderFilter) ([]*entity.Product, error)
	GetByIDs(ctx context.Context, businessID string, ids []string) ([]*entity.Product, error)

	SoftDelete(ctx context.Context, id string) error
}
