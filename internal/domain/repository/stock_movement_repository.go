package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/get-hunter/hero365-inventory/internal/domain/entity"
)

// StockMovementRepository puerto de persistencia del ledger (append-only).
// No hay Update ni Delete: las correcciones son movimientos compensatorios.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	GetByID(ctx context.Context, id string) (*entity.StockMovement, error)
	ListByProduct(ctx context.Context, productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
	ListByBusiness(ctx context.Context, businessID string, limit, offset int) ([]*entity.StockMovement, error)

	// ReplayByProduct historial completo en orden cronológico ascendente,
	// para reconstruir el estado del producto desde cero (auditoría).
	ReplayByProduct(ctx context.Context, productID string) ([]*entity.StockMovement, error)

	// UnitsSoldSince unidades vendidas (movimientos SALE) por producto desde
	// la fecha dada; alimenta la extrapolación de demanda anual del EOQ.
	UnitsSoldSince(ctx context.Context, businessID string, productIDs []string, since time.Time) (map[string]decimal.Decimal, error)
}
