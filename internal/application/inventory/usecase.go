package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/get-hunter/hero365-inventory/internal/application/dto"
	"github.com/get-hunter/hero365-inventory/internal/domain"
	"github.com/get-hunter/hero365-inventory/internal/domain/entity"
	domaininv "github.com/get-hunter/hero365-inventory/internal/domain/inventory"
	"github.com/get-hunter/hero365-inventory/internal/domain/repository"
)

// StockOperationsUseCase motor de operaciones de inventario: ajuste,
// traslado, recepción de compra, reserva y liberación. Cada operación corre
// como una transacción con bloqueo de fila (SELECT FOR UPDATE) sobre el
// producto, valida las reglas antes de mutar (fail-fast) y escribe un
// movimiento del ledger junto con el nuevo estado del producto.
type StockOperationsUseCase struct {
	txRunner TxRunner
}

// NewStockOperationsUseCase construye el motor.
func NewStockOperationsUseCase(txRunner TxRunner) *StockOperationsUseCase {
	return &StockOperationsUseCase{txRunner: txRunner}
}

// lockTrackedProduct obtiene el producto con bloqueo de fila y valida
// pertenencia al negocio, borrado lógico y manejo de inventario habilitado.
func lockTrackedProduct(ctx context.Context, productRepo repository.ProductRepository, businessID, productID string) (*entity.Product, error) {
	p, err := productRepo.GetByIDForUpdate(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil || p.DeletedAt != nil {
		return nil, domain.ErrNotFound
	}
	if p.BusinessID != businessID {
		return nil, domain.ErrForbidden
	}
	if !p.TrackInventory {
		return nil, domain.ErrTrackingDisabled
	}
	return p, nil
}

// AdjustStock aplica un delta firmado al on-hand (conteos, correcciones).
// El costo no cambia. Falla si el resultado dejaría el on-hand bajo cero o
// por debajo de lo reservado.
func (uc *StockOperationsUseCase) AdjustStock(ctx context.Context, businessID, userID string, in dto.AdjustStockRequest) (*dto.StockOperationResult, error) {
	if in.QuantityChange.IsZero() {
		return nil, domain.ErrZeroMovement
	}
	if in.Reason == "" {
		return nil, domain.ErrInvalidInput
	}

	var result *dto.StockOperationResult
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
		_ repository.LocationStockRepository,
	) error {
		p, err := lockTrackedProduct(ctx, productRepo, businessID, in.ProductID)
		if err != nil {
			return err
		}

		before := p.QuantityOnHand
		after := before.Add(in.QuantityChange)
		if after.IsNegative() || after.LessThan(p.QuantityReserved) {
			return domain.ErrInsufficientStock
		}

		mov := &entity.StockMovement{
			ID:             uuid.New().String(),
			BusinessID:     businessID,
			ProductID:      p.ID,
			Type:           entity.MovementAdjustment,
			Quantity:       in.QuantityChange,
			QuantityBefore: before,
			QuantityAfter:  after,
			UnitCost:       p.AverageCost,
			TotalCost:      in.QuantityChange.Mul(p.AverageCost),
			CostBefore:     p.AverageCost,
			CostAfter:      p.AverageCost,
			ReferenceType:  in.ReferenceType,
			ReferenceID:    in.ReferenceID,
			Reason:         in.Reason,
			Notes:          in.Notes,
			CreatedBy:      userID,
			CreatedAt:      time.Now(),
		}
		if err := mov.Validate(); err != nil {
			return err
		}

		if err := productRepo.UpdateQuantities(ctx, p.ID, after, p.QuantityReserved); err != nil {
			return err
		}
		if err := movementRepo.Create(ctx, mov); err != nil {
			return err
		}

		p.QuantityOnHand = after
		result = operationResult(mov, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ReceivePurchase registra la entrada de una compra: recalcula el costo
// promedio ponderado (o toma el último costo en métodos no promedio),
// incluye los costos adicionales en el landed cost y suma el on-hand.
func (uc *StockOperationsUseCase) ReceivePurchase(ctx context.Context, businessID, userID string, in dto.ReceivePurchaseRequest) (*dto.StockOperationResult, error) {
	if in.Quantity.LessThanOrEqual(decimal.Zero) || in.UnitCost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	extras := domaininv.AdditionalCosts{
		Shipping: in.ShippingCost,
		Duty:     in.DutyCost,
		Other:    in.OtherCosts,
	}
	if err := extras.Validate(); err != nil {
		return nil, err
	}

	var result *dto.StockOperationResult
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
		_ repository.LocationStockRepository,
	) error {
		p, err := lockTrackedProduct(ctx, productRepo, businessID, in.ProductID)
		if err != nil {
			return err
		}

		before := p.QuantityOnHand
		after := before.Add(in.Quantity)

		newAverage := in.UnitCost
		if p.CostingMethod == entity.CostingWeightedAverage {
			newAverage, err = domaininv.WeightedAverageCost(before, p.AverageCost, in.Quantity, in.UnitCost, extras)
			if err != nil {
				return err
			}
		}

		mov := &entity.StockMovement{
			ID:             uuid.New().String(),
			BusinessID:     businessID,
			ProductID:      p.ID,
			Type:           entity.MovementPurchase,
			Quantity:       in.Quantity,
			QuantityBefore: before,
			QuantityAfter:  after,
			UnitCost:       in.UnitCost,
			TotalCost:      domaininv.LandedCost(in.Quantity, in.UnitCost, extras),
			CostBefore:     p.AverageCost,
			CostAfter:      newAverage,
			ReferenceType:  "purchase_order",
			ReferenceID:    in.PurchaseOrderID,
			SupplierID:     in.SupplierID,
			Reason:         "recepción de compra",
			Notes:          in.Notes,
			CreatedBy:      userID,
			CreatedAt:      time.Now(),
		}
		if in.PurchaseOrderID == "" {
			mov.ReferenceType = ""
		}
		if err := mov.Validate(); err != nil {
			return err
		}

		if err := productRepo.UpdateQuantities(ctx, p.ID, after, p.QuantityReserved); err != nil {
			return err
		}
		if err := productRepo.UpdateCost(ctx, p.ID, in.UnitCost, newAverage); err != nil {
			return err
		}
		if err := movementRepo.Create(ctx, mov); err != nil {
			return err
		}

		p.QuantityOnHand = after
		p.UnitCost = in.UnitCost
		p.AverageCost = newAverage
		result = operationResult(mov, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// TransferStock mueve cantidad entre dos ubicaciones del mismo producto.
// El on-hand global no cambia: el movimiento registra delta cero con las
// ubicaciones origen/destino, y los stocks por ubicación se ajustan ±.
func (uc *StockOperationsUseCase) TransferStock(ctx context.Context, businessID, userID string, in dto.TransferStockRequest) (*dto.StockOperationResult, error) {
	if in.Quantity.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if in.FromLocationID == "" || in.ToLocationID == "" || in.FromLocationID == in.ToLocationID {
		return nil, domain.ErrInvalidInput
	}
	if in.Reason == "" {
		return nil, domain.ErrInvalidInput
	}

	var result *dto.StockOperationResult
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
		locationRepo repository.LocationStockRepository,
	) error {
		p, err := lockTrackedProduct(ctx, productRepo, businessID, in.ProductID)
		if err != nil {
			return err
		}

		// Bloquea la ubicación origen; el lock del producto ya serializa
		// los traslados concurrentes del mismo SKU.
		origin, err := locationRepo.GetForUpdate(ctx, p.ID, in.FromLocationID)
		if err != nil {
			return err
		}
		if origin == nil || origin.Quantity.LessThan(in.Quantity) {
			return domain.ErrInsufficientStock
		}
		dest, err := locationRepo.Get(ctx, p.ID, in.ToLocationID)
		if err != nil {
			return err
		}
		if dest == nil {
			dest = &entity.LocationStock{ProductID: p.ID, LocationID: in.ToLocationID, Quantity: decimal.Zero}
		}

		now := time.Now()
		origin.Quantity = origin.Quantity.Sub(in.Quantity)
		dest.Quantity = dest.Quantity.Add(in.Quantity)
		origin.UpdatedAt = now
		dest.UpdatedAt = now
		if err := locationRepo.Upsert(ctx, origin); err != nil {
			return err
		}
		if err := locationRepo.Upsert(ctx, dest); err != nil {
			return err
		}

		mov := &entity.StockMovement{
			ID:             uuid.New().String(),
			BusinessID:     businessID,
			ProductID:      p.ID,
			Type:           entity.MovementTransfer,
			Quantity:       decimal.Zero,
			QuantityBefore: p.QuantityOnHand,
			QuantityAfter:  p.QuantityOnHand,
			UnitCost:       p.AverageCost,
			TotalCost:      in.Quantity.Mul(p.AverageCost),
			CostBefore:     p.AverageCost,
			CostAfter:      p.AverageCost,
			FromLocationID: in.FromLocationID,
			ToLocationID:   in.ToLocationID,
			Reason:         in.Reason,
			CreatedBy:      userID,
			CreatedAt:      now,
		}
		if err := mov.Validate(); err != nil {
			return err
		}
		if err := movementRepo.Create(ctx, mov); err != nil {
			return err
		}

		result = operationResult(mov, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ReserveStock aparta cantidad disponible para una orden o cotización.
// No afecta el on-hand; deja un movimiento RESERVE de delta cero con la
// referencia para conciliación.
func (uc *StockOperationsUseCase) ReserveStock(ctx context.Context, businessID, userID string, in dto.ReserveStockRequest) (*dto.StockOperationResult, error) {
	if in.Quantity.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if in.ReferenceID == "" || in.ReferenceType == "" {
		return nil, domain.ErrInvalidInput
	}

	var result *dto.StockOperationResult
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
		_ repository.LocationStockRepository,
	) error {
		p, err := lockTrackedProduct(ctx, productRepo, businessID, in.ProductID)
		if err != nil {
			return err
		}

		if p.QuantityAvailable().LessThan(in.Quantity) {
			return domain.ErrInsufficientStock
		}
		newReserved := p.QuantityReserved.Add(in.Quantity)

		mov := &entity.StockMovement{
			ID:             uuid.New().String(),
			BusinessID:     businessID,
			ProductID:      p.ID,
			Type:           entity.MovementReserve,
			Quantity:       decimal.Zero,
			QuantityBefore: p.QuantityOnHand,
			QuantityAfter:  p.QuantityOnHand,
			UnitCost:       p.AverageCost,
			TotalCost:      in.Quantity.Mul(p.AverageCost),
			CostBefore:     p.AverageCost,
			CostAfter:      p.AverageCost,
			ReferenceType:  in.ReferenceType,
			ReferenceID:    in.ReferenceID,
			Reason:         "reserva de stock",
			CreatedBy:      userID,
			CreatedAt:      time.Now(),
		}
		if err := mov.Validate(); err != nil {
			return err
		}

		if err := productRepo.UpdateQuantities(ctx, p.ID, p.QuantityOnHand, newReserved); err != nil {
			return err
		}
		if err := movementRepo.Create(ctx, mov); err != nil {
			return err
		}

		p.QuantityReserved = newReserved
		result = operationResult(mov, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ReleaseReservation libera cantidad reservada referenciando la reserva
// original. Falla si se intenta liberar más de lo reservado.
func (uc *StockOperationsUseCase) ReleaseReservation(ctx context.Context, businessID, userID string, in dto.ReleaseReservationRequest) (*dto.StockOperationResult, error) {
	if in.Quantity.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if in.ReferenceID == "" || in.ReferenceType == "" || in.Reason == "" {
		return nil, domain.ErrInvalidInput
	}

	var result *dto.StockOperationResult
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
		_ repository.LocationStockRepository,
	) error {
		p, err := lockTrackedProduct(ctx, productRepo, businessID, in.ProductID)
		if err != nil {
			return err
		}

		if p.QuantityReserved.LessThan(in.Quantity) {
			return domain.ErrInsufficientReserved
		}
		newReserved := p.QuantityReserved.Sub(in.Quantity)

		mov := &entity.StockMovement{
			ID:             uuid.New().String(),
			BusinessID:     businessID,
			ProductID:      p.ID,
			Type:           entity.MovementRelease,
			Quantity:       decimal.Zero,
			QuantityBefore: p.QuantityOnHand,
			QuantityAfter:  p.QuantityOnHand,
			UnitCost:       p.AverageCost,
			TotalCost:      in.Quantity.Mul(p.AverageCost),
			CostBefore:     p.AverageCost,
			CostAfter:      p.AverageCost,
			ReferenceType:  in.ReferenceType,
			ReferenceID:    in.ReferenceID,
			Reason:         in.Reason,
			CreatedBy:      userID,
			CreatedAt:      time.Now(),
		}
		if err := mov.Validate(); err != nil {
			return err
		}

		if err := productRepo.UpdateQuantities(ctx, p.ID, p.QuantityOnHand, newReserved); err != nil {
			return err
		}
		if err := movementRepo.Create(ctx, mov); err != nil {
			return err
		}

		p.QuantityReserved = newReserved
		result = operationResult(mov, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// operationResult proyección del movimiento + estado refrescado del producto.
func operationResult(mov *entity.StockMovement, p *entity.Product) *dto.StockOperationResult {
	return &dto.StockOperationResult{
		MovementID:        mov.ID,
		ProductID:         p.ID,
		QuantityChange:    mov.Quantity,
		QuantityBefore:    mov.QuantityBefore,
		QuantityAfter:     mov.QuantityAfter,
		QuantityOnHand:    p.QuantityOnHand,
		QuantityReserved:  p.QuantityReserved,
		QuantityAvailable: p.QuantityAvailable(),
		UnitCost:          p.UnitCost,
		AverageCost:       p.AverageCost,
		StockStatus:       string(p.StockStatus()),
	}
}
