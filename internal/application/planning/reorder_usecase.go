package planning

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/get-hunter/hero365-inventory/internal/application/dto"
	"github.com/get-hunter/hero365-inventory/internal/domain"
	"github.com/get-hunter/hero365-inventory/internal/domain/entity"
	domaininv "github.com/get-hunter/hero365-inventory/internal/domain/inventory"
	"github.com/get-hunter/hero365-inventory/internal/domain/repository"
)

// Policy constantes de política de planeación (configurables por despliegue).
type Policy struct {
	HoldingCostRate        decimal.Decimal // fracción anual del costo unitario
	OrderingCost           decimal.Decimal // costo fijo por orden
	DefaultReorderQuantity decimal.Decimal // fallback si el producto no sugiere nada
}

// DefaultPolicy valores por defecto: 20%/año, 50 por orden, 10 unidades.
func DefaultPolicy() Policy {
	return Policy{
		HoldingCostRate:        domaininv.DefaultHoldingCostRate,
		OrderingCost:           domaininv.DefaultOrderingCost,
		DefaultReorderQuantity: domaininv.DefaultReorderQuantity,
	}
}

// ReorderPlanningUseCase lee el estado de productos y el historial del
// ledger para producir sugerencias de reorden, optimización EOQ y
// recomendaciones de compra. Solo lectura salvo UpdateReorderParameters;
// seguro de correr en paralelo con las mutaciones del motor.
type ReorderPlanningUseCase struct {
	productRepo  repository.ProductRepository
	movementRepo repository.StockMovementRepository
	policy       Policy
}

// NewReorderPlanningUseCase construye el caso de uso de planeación.
func NewReorderPlanningUseCase(
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
	policy Policy,
) *ReorderPlanningUseCase {
	if policy.HoldingCostRate.LessThanOrEqual(decimal.Zero) {
		policy.HoldingCostRate = domaininv.DefaultHoldingCostRate
	}
	if policy.OrderingCost.LessThanOrEqual(decimal.Zero) {
		policy.OrderingCost = domaininv.DefaultOrderingCost
	}
	if policy.DefaultReorderQuantity.LessThanOrEqual(decimal.Zero) {
		policy.DefaultReorderQuantity = domaininv.DefaultReorderQuantity
	}
	return &ReorderPlanningUseCase{productRepo: productRepo, movementRepo: movementRepo, policy: policy}
}

// GetReorderSuggestions productos con disponible en o bajo su punto de
// reorden, con cantidad sugerida (reorder_quantity, sugerencia del producto
// o default de política) y el valor agregado de la lista.
func (uc *ReorderPlanningUseCase) GetReorderSuggestions(ctx context.Context, businessID string, filter repository.ReorderFilter) (*dto.ReorderSuggestionsDTO, error) {
	products, err := uc.productRepo.GetProductsNeedingReorder(ctx, businessID, filter)
	if err != nil {
		return nil, err
	}

	out := &dto.ReorderSuggestionsDTO{
		Suggestions:         make([]dto.ReorderSuggestionDTO, 0, len(products)),
		TotalSuggestedValue: decimal.Zero,
	}
	for _, p := range products {
		out.Suggestions = append(out.Suggestions, uc.buildSuggestion(p))
	}
	for _, s := range out.Suggestions {
		out.TotalSuggestedValue = out.TotalSuggestedValue.Add(s.SuggestedCost)
	}
	return out, nil
}

func (uc *ReorderPlanningUseCase) buildSuggestion(p *entity.Product) dto.ReorderSuggestionDTO {
	qty := p.SuggestReorderQuantity()
	if qty.LessThanOrEqual(decimal.Zero) {
		qty = uc.policy.DefaultReorderQuantity
	}
	available := p.QuantityAvailable()
	return dto.ReorderSuggestionDTO{
		ProductID:         p.ID,
		SKU:               p.SKU,
		ProductName:       p.Name,
		SupplierID:        p.PrimarySupplierID,
		QuantityAvailable: available,
		ReorderPoint:      p.ReorderPoint,
		SuggestedQuantity: qty,
		UnitCost:          p.UnitCost,
		SuggestedCost:     qty.Mul(p.UnitCost),
		StockStatus:       string(p.StockStatus()),
		Urgent:            available.LessThanOrEqual(decimal.Zero),
	}
}

// CalculateOptimalOrderQuantities optimización EOQ para los productos dados.
// Sin IDs explícitos se optimizan los candidatos a reorden. La demanda anual
// se extrapola de las ventas del ledger en la ventana de observación
// (forecastDays, default 90). Productos sin ventas o sin costo se omiten
// del resultado: no hay base para optimizar.
func (uc *ReorderPlanningUseCase) CalculateOptimalOrderQuantities(ctx context.Context, businessID string, productIDs []string, forecastDays int) ([]dto.EOQResultDTO, error) {
	if forecastDays <= 0 {
		forecastDays = 90
	}

	var products []*entity.Product
	var err error
	if len(productIDs) == 0 {
		products, err = uc.productRepo.GetProductsNeedingReorder(ctx, businessID, repository.ReorderFilter{})
		if err != nil {
			return nil, err
		}
		for _, p := range products {
			productIDs = append(productIDs, p.ID)
		}
		if len(productIDs) == 0 {
			return []dto.EOQResultDTO{}, nil
		}
	} else {
		products, err = uc.productRepo.GetByIDs(ctx, businessID, productIDs)
		if err != nil {
			return nil, err
		}
	}
	since := time.Now().AddDate(0, 0, -forecastDays)
	unitsSold, err := uc.movementRepo.UnitsSoldSince(ctx, businessID, productIDs, since)
	if err != nil {
		return nil, err
	}

	results := make([]dto.EOQResultDTO, 0, len(products))
	for _, p := range products {
		annualDemand := domaininv.AnnualDemandFromVelocity(unitsSold[p.ID], forecastDays)
		if annualDemand.LessThanOrEqual(decimal.Zero) || p.UnitCost.LessThanOrEqual(decimal.Zero) {
			continue
		}

		holdingPerUnit := p.UnitCost.Mul(uc.policy.HoldingCostRate)
		eoq := domaininv.EconomicOrderQuantity(annualDemand, uc.policy.OrderingCost, holdingPerUnit)
		if eoq.LessThanOrEqual(decimal.Zero) {
			continue
		}

		currentQty := p.ReorderQuantity
		if currentQty.LessThanOrEqual(decimal.Zero) {
			currentQty = uc.policy.DefaultReorderQuantity
		}
		currentCost := domaininv.AnnualTotalCost(annualDemand, currentQty, uc.policy.OrderingCost, holdingPerUnit)
		optimalCost := domaininv.AnnualTotalCost(annualDemand, eoq, uc.policy.OrderingCost, holdingPerUnit)

		results = append(results, dto.EOQResultDTO{
			ProductID:         p.ID,
			SKU:               p.SKU,
			AnnualDemand:      annualDemand.Round(2),
			CurrentOrderQty:   currentQty,
			OptimalOrderQty:   eoq,
			CurrentAnnualCost: currentCost.Round(2),
			OptimalAnnualCost: optimalCost.Round(2),
			PotentialSavings:  domaininv.PotentialSavings(currentCost, optimalCost).Round(2),
		})
	}
	return results, nil
}

// GeneratePurchaseRecommendations agrupa las sugerencias de reorden por
// proveedor principal, filtra grupos bajo minOrderValue y ordena por
// (ítems urgentes desc, valor total desc). Con groupBySupplier=false todo
// queda en un solo grupo.
func (uc *ReorderPlanningUseCase) GeneratePurchaseRecommendations(ctx context.Context, businessID string, groupBySupplier bool, minOrderValue decimal.Decimal) ([]dto.PurchaseRecommendationDTO, error) {
	suggestions, err := uc.GetReorderSuggestions(ctx, businessID, repository.ReorderFilter{})
	if err != nil {
		return nil, err
	}

	groups := map[string][]dto.ReorderSuggestionDTO{}
	for _, s := range suggestions.Suggestions {
		key := ""
		if groupBySupplier {
			key = s.SupplierID
		}
		groups[key] = append(groups[key], s)
	}

	recs := make([]dto.PurchaseRecommendationDTO, 0, len(groups))
	for supplierID, items := range groups {
		rec := dto.PurchaseRecommendationDTO{
			SupplierID: supplierID,
			Items:      items,
			TotalValue: decimal.Zero,
		}
		for _, it := range items {
			rec.TotalValue = rec.TotalValue.Add(it.SuggestedCost)
			if it.Urgent {
				rec.UrgentItems++
			}
		}
		if minOrderValue.GreaterThan(decimal.Zero) && rec.TotalValue.LessThan(minOrderValue) {
			continue
		}
		recs = append(recs, rec)
	}

	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].UrgentItems != recs[j].UrgentItems {
			return recs[i].UrgentItems > recs[j].UrgentItems
		}
		return recs[i].TotalValue.GreaterThan(recs[j].TotalValue)
	})
	return recs, nil
}

// UpdateReorderParameters actualiza los umbrales de reorden del producto
// bajo las mismas invariantes de orden (min <= max, reorder_point >= min).
func (uc *ReorderPlanningUseCase) UpdateReorderParameters(ctx context.Context, businessID, productID string, in dto.UpdateReorderParamsRequest) error {
	if in.ReorderQuantity.IsNegative() {
		return domain.ErrInvalidInput
	}
	if err := entity.ValidateThresholds(in.ReorderPoint, in.MinimumQuantity, in.MaximumQuantity); err != nil {
		return err
	}

	p, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if p == nil || p.DeletedAt != nil {
		return domain.ErrNotFound
	}
	if p.BusinessID != businessID {
		return domain.ErrForbidden
	}
	if !p.TrackInventory {
		return domain.ErrTrackingDisabled
	}

	return uc.productRepo.UpdateReorderParameters(ctx, productID,
		in.ReorderPoint, in.ReorderQuantity, in.MinimumQuantity, in.MaximumQuantity)
}
