package repository

import (
	"context"

	"github.com/get-hunter/hero365-inventory/internal/domain/entity"
)

// LocationStockRepository puerto para el stock por ubicación (DIP).
// Respalda los traslados; el on-hand global vive en Product.
type LocationStockRepository interface {
	Get(ctx context.Context, productID, locationID string) (*entity.LocationStock, error)
	// GetForUpdate obtiene el stock de la ubicación bloqueando la fila
	// (SELECT ... FOR UPDATE).
	GetForUpdate(ctx context.Context, productID, locationID string) (*entity.LocationStock, error)
	Upsert(ctx context.Context, stock *entity.LocationStock) error
	ListByProduct(ctx context.Context, productID string) ([]*entity.LocationStock, error)
}
