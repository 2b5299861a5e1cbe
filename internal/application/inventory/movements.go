package inventory

import (
	"context"
	"time"

	"github.com/get-hunter/hero365-inventory/internal/application/dto"
	"github.com/get-hunter/hero365-inventory/internal/domain"
	"github.com/get-hunter/hero365-inventory/internal/domain/entity"
	"github.com/get-hunter/hero365-inventory/internal/domain/repository"
)

// MovementQueryUseCase lado de lectura del ledger: auditoría y trazabilidad.
// Solo consultas; no participa en transacciones de mutación.
type MovementQueryUseCase struct {
	productRepo  repository.ProductRepository
	movementRepo repository.StockMovementRepository
}

// NewMovementQueryUseCase construye el caso de uso de consulta.
func NewMovementQueryUseCase(productRepo repository.ProductRepository, movementRepo repository.StockMovementRepository) *MovementQueryUseCase {
	return &MovementQueryUseCase{productRepo: productRepo, movementRepo: movementRepo}
}

// ListByProduct historial de movimientos de un producto, con rango de
// fechas opcional y paginación.
func (uc *MovementQueryUseCase) ListByProduct(ctx context.Context, businessID, productID string, from, to *time.Time, page dto.PageRequest) ([]dto.MovementDTO, error) {
	page.DefaultPage()

	p, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if p.BusinessID != businessID {
		return nil, domain.ErrForbidden
	}

	movements, err := uc.movementRepo.ListByProduct(ctx, productID, from, to, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toMovementDTOs(movements), nil
}

// ListByBusiness movimientos recientes de todos los productos del negocio.
func (uc *MovementQueryUseCase) ListByBusiness(ctx context.Context, businessID string, page dto.PageRequest) ([]dto.MovementDTO, error) {
	page.DefaultPage()
	movements, err := uc.movementRepo.ListByBusiness(ctx, businessID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toMovementDTOs(movements), nil
}

func toMovementDTOs(movements []*entity.StockMovement) []dto.MovementDTO {
	out := make([]dto.MovementDTO, 0, len(movements))
	for _, m := range movements {
		out = append(out, dto.MovementDTO{
			ID:             m.ID,
			ProductID:      m.ProductID,
			Type:           string(m.Type),
			TypeDisplay:    m.Type.Display(),
			Quantity:       m.Quantity,
			QuantityBefore: m.QuantityBefore,
			QuantityAfter:  m.QuantityAfter,
			UnitCost:       m.UnitCost,
			TotalCost:      m.TotalCost,
			CostBefore:     m.CostBefore,
			CostAfter:      m.CostAfter,
			ReferenceType:  m.ReferenceType,
			ReferenceID:    m.ReferenceID,
			FromLocationID: m.FromLocationID,
			ToLocationID:   m.ToLocationID,
			SupplierID:     m.SupplierID,
			Reason:         m.Reason,
			Notes:          m.Notes,
			CreatedBy:      m.CreatedBy,
			CreatedAt:      m.CreatedAt,
		})
	}
	return out
}
