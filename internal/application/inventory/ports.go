package inventory

import (
	"context"

	"github.com/get-hunter/hero365-inventory/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que el movimiento del ledger y el
// estado del producto se persistan juntos o ninguno (todo-o-nada).
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
		locationRepo repository.LocationStockRepository,
	) error) error
}
