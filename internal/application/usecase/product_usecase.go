package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/get-hunter/hero365-inventory/internal/application/dto"
	"github.com/get-hunter/hero365-inventory/internal/application/inventory"
	"github.com/get-hunter/hero365-inventory/internal/domain"
	"github.com/get-hunter/hero365-inventory/internal/domain/entity"
	"github.com/get-hunter/hero365-inventory/internal/domain/repository"
)

// ProductUseCase ciclo de vida del producto. Las cantidades nunca se
// escriben directo: el stock inicial entra como movimiento INITIAL en la
// misma transacción de creación, y el borrado es lógico para preservar la
// integridad referencial del ledger.
type ProductUseCase struct {
	txRunner    inventory.TxRunner
	productRepo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(txRunner inventory.TxRunner, productRepo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{txRunner: txRunner, productRepo: productRepo}
}

// Create crea un producto con SKU único por negocio y, si trae stock
// inicial, registra el movimiento INITIAL correspondiente.
func (uc *ProductUseCase) Create(ctx context.Context, businessID, userID string, in dto.CreateProductRequest) (*dto.ProductDTO, error) {
	if in.SKU == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.InitialQuantity.IsNegative() || in.InitialUnitCost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if err := entity.ValidateThresholds(in.ReorderPoint, in.MinimumQuantity, in.MaximumQuantity); err != nil {
		return nil, err
	}

	method := entity.DefaultCostingMethod
	if in.CostingMethod != "" {
		method = entity.CostingMethod(in.CostingMethod)
		if !method.IsValid() {
			return nil, domain.ErrInvalidInput
		}
	}
	track := true
	if in.TrackInventory != nil {
		track = *in.TrackInventory
	}
	if !track && (in.InitialQuantity.GreaterThan(decimal.Zero) || in.ReorderPoint.GreaterThan(decimal.Zero)) {
		// Sin manejo de inventario no hay cantidades ni umbrales.
		return nil, domain.ErrTrackingDisabled
	}

	existing, err := uc.productRepo.GetByBusinessAndSKU(ctx, businessID, in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	p := &entity.Product{
		ID:                uuid.New().String(),
		BusinessID:        businessID,
		SKU:               in.SKU,
		Name:              in.Name,
		Description:       in.Description,
		Category:          in.Category,
		PrimarySupplierID: in.PrimarySupplierID,
		QuantityOnHand:    in.InitialQuantity,
		QuantityReserved:  decimal.Zero,
		UnitCost:          in.InitialUnitCost,
		AverageCost:       in.InitialUnitCost,
		CostingMethod:     method,
		ReorderPoint:      in.ReorderPoint,
		ReorderQuantity:   in.ReorderQuantity,
		MinimumQuantity:   in.MinimumQuantity,
		MaximumQuantity:   in.MaximumQuantity,
		TrackInventory:    track,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	err = uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
		_ repository.LocationStockRepository,
	) error {
		if err := productRepo.Create(ctx, p); err != nil {
			return err
		}
		if p.QuantityOnHand.IsZero() {
			return nil
		}
		mov := &entity.StockMovement{
			ID:             uuid.New().String(),
			BusinessID:     businessID,
			ProductID:      p.ID,
			Type:           entity.MovementInitial,
			Quantity:       p.QuantityOnHand,
			QuantityBefore: decimal.Zero,
			QuantityAfter:  p.QuantityOnHand,
			UnitCost:       p.UnitCost,
			TotalCost:      p.QuantityOnHand.Mul(p.UnitCost),
			CostBefore:     decimal.Zero,
			CostAfter:      p.AverageCost,
			Reason:         "stock inicial",
			CreatedBy:      userID,
			CreatedAt:      now,
		}
		if err := mov.Validate(); err != nil {
			return err
		}
		return movementRepo.Create(ctx, mov)
	})
	if err != nil {
		return nil, err
	}
	return ToProductDTO(p), nil
}

// GetByID obtiene un producto del negocio.
func (uc *ProductUseCase) GetByID(ctx context.Context, businessID, id string) (*dto.ProductDTO, error) {
	p, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil || p.DeletedAt != nil {
		return nil, domain.ErrNotFound
	}
	if p.BusinessID != businessID {
		return nil, domain.ErrForbidden
	}
	return ToProductDTO(p), nil
}

// List lista los productos del negocio con paginación.
func (uc *ProductUseCase) List(ctx context.Context, businessID string, page dto.PageRequest) ([]dto.ProductDTO, error) {
	page.DefaultPage()
	products, err := uc.productRepo.ListByBusiness(ctx, businessID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductDTO, 0, len(products))
	for _, p := range products {
		out = append(out, *ToProductDTO(p))
	}
	return out, nil
}

// Update actualiza campos descriptivos del producto.
func (uc *ProductUseCase) Update(ctx context.Context, businessID, id string, in dto.UpdateProductRequest) (*dto.ProductDTO, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	p, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil || p.DeletedAt != nil {
		return nil, domain.ErrNotFound
	}
	if p.BusinessID != businessID {
		return nil, domain.ErrForbidden
	}

	p.Name = in.Name
	p.Description = in.Description
	p.Category = in.Category
	p.PrimarySupplierID = in.PrimarySupplierID
	p.UpdatedAt = time.Now()
	if err := uc.productRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	return ToProductDTO(p), nil
}

// Delete borrado lógico: el producto deja de listarse pero sus movimientos
// permanecen en el ledger.
func (uc *ProductUseCase) Delete(ctx context.Context, businessID, id string) error {
	p, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil || p.DeletedAt != nil {
		return domain.ErrNotFound
	}
	if p.BusinessID != businessID {
		return domain.ErrForbidden
	}
	return uc.productRepo.SoftDelete(ctx, id)
}

// ToProductDTO proyección de un producto para la API.
func ToProductDTO(p *entity.Product) *dto.ProductDTO {
	return &dto.ProductDTO{
		ID:                p.ID,
		BusinessID:        p.BusinessID,
		SKU:               p.SKU,
		Name:              p.Name,
		Description:       p.Description,
		Category:          p.Category,
		PrimarySupplierID: p.PrimarySupplierID,
		QuantityOnHand:    p.QuantityOnHand,
		QuantityReserved:  p.QuantityReserved,
		QuantityAvailable: p.QuantityAvailable(),
		UnitCost:          p.UnitCost,
		AverageCost:       p.AverageCost,
		CostingMethod:     string(p.CostingMethod),
		CostingDisplay:    p.CostingMethod.Display(),
		ReorderPoint:      p.ReorderPoint,
		ReorderQuantity:   p.ReorderQuantity,
		MinimumQuantity:   p.MinimumQuantity,
		MaximumQuantity:   p.MaximumQuantity,
		TrackInventory:    p.TrackInventory,
		StockStatus:       string(p.StockStatus()),
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}
