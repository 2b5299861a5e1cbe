package planning_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/get-hunter/hero365-inventory/internal/application/dto"
	"github.com/get-hunter/hero365-inventory/internal/application/planning"
	"github.com/get-hunter/hero365-inventory/internal/domain/entity"
	"github.com/get-hunter/hero365-inventory/internal/domain/repository"
)

const bizID = "biz-1"

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// ──────────────────────────────────────────────────────────────────────────────
// Fakes de solo lectura: la planeación consulta productos y el ledger.
// ──────────────────────────────────────────────────────────────────────────────

type stubProductRepo struct {
	products map[string]*entity.Product
	// updated captura la última llamada a UpdateReorderParameters.
	updated map[string][4]decimal.Decimal
}

func newStubProductRepo(products ...*entity.Product) *stubProductRepo {
	r := &stubProductRepo{
		products: map[string]*entity.Product{},
		updated:  map[string][4]decimal.Decimal{},
	}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *stubProductRepo) Create(context.Context, *entity.Product) error { return nil }

func (r *stubProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	return r.products[id], nil
}

func (r *stubProductRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *stubProductRepo) GetByBusinessAndSKU(context.Context, string, string) (*entity.Product, error) {
	return nil, nil
}

func (r *stubProductRepo) ListByBusiness(context.Context, string, int, int) ([]*entity.Product, error) {
	return nil, nil
}

func (r *stubProductRepo) Update(context.Context, *entity.Product) error { return nil }

func (r *stubProductRepo) UpdateQuantities(context.Context, string, decimal.Decimal, decimal.Decimal) error {
	return nil
}

func (r *stubProductRepo) UpdateCost(context.Context, string, decimal.Decimal, decimal.Decimal) error {
	return nil
}

func (r *stubProductRepo) UpdateReorderParameters(_ context.Context, productID string, reorderPoint, reorderQty, minQty, maxQty decimal.Decimal) error {
	r.updated[productID] = [4]decimal.Decimal{reorderPoint, reorderQty, minQty, maxQty}
	return nil
}

func (r *stubProductRepo) GetProductsNeedingReorder(_ context.Context, businessID string, filter repository.ReorderFilter) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		if p.BusinessID != businessID || !p.NeedsReorder() {
			continue
		}
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.SupplierID != "" && p.PrimarySupplierID != filter.SupplierID {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *stubProductRepo) GetByIDs(_ context.Context, businessID string, ids []string) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, id := range ids {
		if p, ok := r.products[id]; ok && p.BusinessID == businessID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *stubProductRepo) SoftDelete(context.Context, string) error { return nil }

type stubMovementRepo struct {
	unitsSold map[string]decimal.Decimal
}

func (r *stubMovementRepo) Create(context.Context, *entity.StockMovement) error { return nil }

func (r *stubMovementRepo) GetByID(context.Context, string) (*entity.StockMovement, error) {
	return nil, nil
}

func (r *stubMovementRepo) ListByProduct(context.Context, string, *time.Time, *time.Time, int, int) ([]*entity.StockMovement, error) {
	return nil, nil
}

func (r *stubMovementRepo) ListByBusiness(context.Context, string, int, int) ([]*entity.StockMovement, error) {
	return nil, nil
}

func (r *stubMovementRepo) ReplayByProduct(context.Context, string) ([]*entity.StockMovement, error) {
	return nil, nil
}

func (r *stubMovementRepo) UnitsSoldSince(context.Context, string, []string, time.Time) (map[string]decimal.Decimal, error) {
	return r.unitsSold, nil
}

func lowStockProduct(id, supplierID string, available, reorderPoint, reorderQty, unitCost string) *entity.Product {
	return &entity.Product{
		ID:                id,
		BusinessID:        bizID,
		SKU:               "SKU-" + id,
		Name:              "Producto " + id,
		PrimarySupplierID: supplierID,
		QuantityOnHand:    dec(available),
		ReorderPoint:      dec(reorderPoint),
		ReorderQuantity:   dec(reorderQty),
		UnitCost:          dec(unitCost),
		CostingMethod:     entity.CostingWeightedAverage,
		TrackInventory:    true,
	}
}

func newPlanner(products []*entity.Product, unitsSold map[string]decimal.Decimal) (*planning.ReorderPlanningUseCase, *stubProductRepo) {
	repo := newStubProductRepo(products...)
	return planning.NewReorderPlanningUseCase(repo, &stubMovementRepo{unitsSold: unitsSold}, planning.DefaultPolicy()), repo
}

func dtoParams(reorderPoint, reorderQty, minQty, maxQty string) dto.UpdateReorderParamsRequest {
	return dto.UpdateReorderParamsRequest{
		ReorderPoint:    dec(reorderPoint),
		ReorderQuantity: dec(reorderQty),
		MinimumQuantity: dec(minQty),
		MaximumQuantity: dec(maxQty),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// GetReorderSuggestions
// ──────────────────────────────────────────────────────────────────────────────

func TestGetReorderSuggestions_SeleccionYValorTotal(t *testing.T) {
	uc, _ := newPlanner([]*entity.Product{
		lowStockProduct("p1", "sup-a", "5", "20", "40", "2.00"),   // bajo: sugiere 40 → $80
		lowStockProduct("p2", "sup-a", "0", "10", "15", "3.00"),   // agotado: sugiere 15 → $45
		lowStockProduct("p3", "sup-a", "100", "20", "40", "2.00"), // holgado: no entra
	}, nil)

	out, err := uc.GetReorderSuggestions(context.Background(), bizID, repository.ReorderFilter{})
	require.NoError(t, err)

	require.Len(t, out.Suggestions, 2)
	assert.True(t, dec("125.00").Equal(out.TotalSuggestedValue),
		"valor total esperado 125.00, obtenido %s", out.TotalSuggestedValue)

	byID := map[string]bool{}
	for _, s := range out.Suggestions {
		byID[s.ProductID] = s.Urgent
	}
	assert.False(t, byID["p1"], "con disponible positivo no es urgente")
	assert.True(t, byID["p2"], "agotado debe marcarse urgente")
}

// Sin reorder_quantity ni máximo configurados, manda el default de política.
func TestGetReorderSuggestions_FallbackDePolitica(t *testing.T) {
	p := lowStockProduct("p1", "", "5", "20", "0", "2.00")
	uc, _ := newPlanner([]*entity.Product{p}, nil)

	out, err := uc.GetReorderSuggestions(context.Background(), bizID, repository.ReorderFilter{})
	require.NoError(t, err)

	require.Len(t, out.Suggestions, 1)
	assert.True(t, dec("10").Equal(out.Suggestions[0].SuggestedQuantity),
		"el fallback de política es 10, obtenido %s", out.Suggestions[0].SuggestedQuantity)
}

func TestGetReorderSuggestions_FiltroPorProveedor(t *testing.T) {
	uc, _ := newPlanner([]*entity.Product{
		lowStockProduct("p1", "sup-a", "5", "20", "40", "2.00"),
		lowStockProduct("p2", "sup-b", "5", "20", "40", "2.00"),
	}, nil)

	out, err := uc.GetReorderSuggestions(context.Background(), bizID, repository.ReorderFilter{SupplierID: "sup-b"})
	require.NoError(t, err)

	require.Len(t, out.Suggestions, 1)
	assert.Equal(t, "p2", out.Suggestions[0].ProductID)
}

// ──────────────────────────────────────────────────────────────────────────────
// CalculateOptimalOrderQuantities
// ──────────────────────────────────────────────────────────────────────────────

func TestCalculateOptimalOrderQuantities_VectorEOQ(t *testing.T) {
	// 90 unidades vendidas en 90 días → demanda anual 365.
	// H = 2.00 * 0.20 = 0.40; EOQ = sqrt(2*365*50/0.40) = sqrt(91250) ≈ 302.08.
	p := lowStockProduct("p1", "sup-a", "5", "20", "40", "2.00")
	uc, _ := newPlanner([]*entity.Product{p}, map[string]decimal.Decimal{"p1": dec("90")})

	results, err := uc.CalculateOptimalOrderQuantities(context.Background(), bizID, []string{"p1"}, 90)
	require.NoError(t, err)
	require.Len(t, results, 1)

	r := results[0]
	assert.True(t, dec("365").Equal(r.AnnualDemand))
	assert.True(t, dec("302.08").Equal(r.OptimalOrderQty),
		"EOQ esperado 302.08, obtenido %s", r.OptimalOrderQty)
	assert.True(t, dec("40").Equal(r.CurrentOrderQty))
	assert.True(t, r.CurrentAnnualCost.GreaterThan(r.OptimalAnnualCost),
		"pedir 40 en vez de ~302 debe costar más al año")
	assert.True(t, r.PotentialSavings.GreaterThan(decimal.Zero))
}

// Sin ventas en la ventana no hay demanda que extrapolar: el producto se omite.
func TestCalculateOptimalOrderQuantities_SinVentasSeOmite(t *testing.T) {
	p := lowStockProduct("p1", "sup-a", "5", "20", "40", "2.00")
	uc, _ := newPlanner([]*entity.Product{p}, nil)

	results, err := uc.CalculateOptimalOrderQuantities(context.Background(), bizID, []string{"p1"}, 90)
	require.NoError(t, err)
	assert.Empty(t, results)
}

// Sin IDs explícitos se optimizan los candidatos a reorden.
func TestCalculateOptimalOrderQuantities_SinIDsUsaCandidatos(t *testing.T) {
	uc, _ := newPlanner([]*entity.Product{
		lowStockProduct("p1", "sup-a", "5", "20", "40", "2.00"),   // candidato
		lowStockProduct("p2", "sup-a", "100", "20", "40", "2.00"), // holgado
	}, map[string]decimal.Decimal{"p1": dec("90"), "p2": dec("90")})

	results, err := uc.CalculateOptimalOrderQuantities(context.Background(), bizID, nil, 90)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "p1", results[0].ProductID)
}

// ──────────────────────────────────────────────────────────────────────────────
// GeneratePurchaseRecommendations
// ──────────────────────────────────────────────────────────────────────────────

func TestGeneratePurchaseRecommendations_AgrupaYOrdena(t *testing.T) {
	uc, _ := newPlanner([]*entity.Product{
		lowStockProduct("p1", "sup-a", "5", "20", "40", "2.00"), // sup-a: $80
		lowStockProduct("p2", "sup-b", "0", "10", "15", "3.00"), // sup-b: $45, 1 urgente
		lowStockProduct("p3", "sup-a", "3", "20", "10", "5.00"), // sup-a: +$50 → $130
	}, nil)

	recs, err := uc.GeneratePurchaseRecommendations(context.Background(), bizID, true, decimal.Zero)
	require.NoError(t, err)
	require.Len(t, recs, 2)

	// sup-b va primero por tener ítems urgentes, aunque valga menos.
	assert.Equal(t, "sup-b", recs[0].SupplierID)
	assert.Equal(t, 1, recs[0].UrgentItems)
	assert.Equal(t, "sup-a", recs[1].SupplierID)
	assert.Len(t, recs[1].Items, 2)
	assert.True(t, dec("130.00").Equal(recs[1].TotalValue),
		"valor de sup-a esperado 130.00, obtenido %s", recs[1].TotalValue)
}

func TestGeneratePurchaseRecommendations_FiltraPorValorMinimo(t *testing.T) {
	uc, _ := newPlanner([]*entity.Product{
		lowStockProduct("p1", "sup-a", "5", "20", "40", "2.00"), // $80
		lowStockProduct("p2", "sup-b", "5", "10", "15", "3.00"), // $45
	}, nil)

	recs, err := uc.GeneratePurchaseRecommendations(context.Background(), bizID, true, dec("50"))
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "sup-a", recs[0].SupplierID)
}

func TestGeneratePurchaseRecommendations_SinAgrupar(t *testing.T) {
	uc, _ := newPlanner([]*entity.Product{
		lowStockProduct("p1", "sup-a", "5", "20", "40", "2.00"),
		lowStockProduct("p2", "sup-b", "5", "10", "15", "3.00"),
	}, nil)

	recs, err := uc.GeneratePurchaseRecommendations(context.Background(), bizID, false, decimal.Zero)
	require.NoError(t, err)
	require.Len(t, recs, 1, "sin agrupar todo queda en un solo grupo")
	assert.Equal(t, "", recs[0].SupplierID)
	assert.Len(t, recs[0].Items, 2)
}

// ──────────────────────────────────────────────────────────────────────────────
// UpdateReorderParameters
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateReorderParameters_Persiste(t *testing.T) {
	p := lowStockProduct("p1", "sup-a", "5", "20", "40", "2.00")
	uc, repo := newPlanner([]*entity.Product{p}, nil)

	err := uc.UpdateReorderParameters(context.Background(), bizID, "p1", dtoParams("25", "50", "10", "200"))
	require.NoError(t, err)

	saved, ok := repo.updated["p1"]
	require.True(t, ok)
	assert.True(t, dec("25").Equal(saved[0]))
	assert.True(t, dec("50").Equal(saved[1]))
	assert.True(t, dec("10").Equal(saved[2]))
	assert.True(t, dec("200").Equal(saved[3]))
}

func TestUpdateReorderParameters_UmbralesInvalidos(t *testing.T) {
	p := lowStockProduct("p1", "sup-a", "5", "20", "40", "2.00")
	uc, repo := newPlanner([]*entity.Product{p}, nil)

	// minimum > maximum
	err := uc.UpdateReorderParameters(context.Background(), bizID, "p1", dtoParams("25", "50", "300", "200"))
	assert.Error(t, err)
	// reorder_point < minimum
	err = uc.UpdateReorderParameters(context.Background(), bizID, "p1", dtoParams("5", "50", "10", "200"))
	assert.Error(t, err)

	assert.Empty(t, repo.updated, "umbrales inválidos no deben persistirse")
}

func TestUpdateReorderParameters_SinTracking(t *testing.T) {
	p := lowStockProduct("p1", "sup-a", "5", "20", "40", "2.00")
	p.TrackInventory = false
	uc, _ := newPlanner([]*entity.Product{p}, nil)

	err := uc.UpdateReorderParameters(context.Background(), bizID, "p1", dtoParams("25", "50", "10", "200"))
	assert.Error(t, err)
}
