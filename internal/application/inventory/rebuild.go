package inventory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/get-hunter/hero365-inventory/internal/application/dto"
	"github.com/get-hunter/hero365-inventory/internal/domain"
	"github.com/get-hunter/hero365-inventory/internal/domain/repository"
)

// RebuildProductQuantity reproduce el historial completo de movimientos de
// un producto partiendo de cero y compara el resultado con su on-hand
// actual. Con repair=true, corrige el producto para que vuelva a coincidir
// con el ledger (el ledger es la fuente de verdad).
func (uc *StockOperationsUseCase) RebuildProductQuantity(ctx context.Context, businessID, productID string, repair bool) (*dto.RebuildResult, error) {
	var result *dto.RebuildResult
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
		_ repository.LocationStockRepository,
	) error {
		p, err := lockTrackedProduct(ctx, productRepo, businessID, productID)
		if err != nil {
			return err
		}

		movements, err := movementRepo.ReplayByProduct(ctx, productID)
		if err != nil {
			return err
		}

		ledgerQty := decimal.Zero
		for _, m := range movements {
			// Cada movimiento debe encadenar con el anterior.
			if !m.QuantityBefore.Equal(ledgerQty) {
				return domain.ErrConflict
			}
			ledgerQty = ledgerQty.Add(m.Quantity)
			if !m.QuantityAfter.Equal(ledgerQty) {
				return domain.ErrConflict
			}
		}

		consistent := ledgerQty.Equal(p.QuantityOnHand)
		repaired := false
		if !consistent && repair {
			if err := productRepo.UpdateQuantities(ctx, p.ID, ledgerQty, p.QuantityReserved); err != nil {
				return err
			}
			repaired = true
		}

		result = &dto.RebuildResult{
			ProductID:       p.ID,
			LedgerQuantity:  ledgerQty,
			ProductQuantity: p.QuantityOnHand,
			MovementCount:   len(movements),
			Consistent:      consistent,
			Repaired:        repaired,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
