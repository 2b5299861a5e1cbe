package entity_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/get-hunter/hero365-inventory/internal/domain"
	"github.com/get-hunter/hero365-inventory/internal/domain/entity"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// ──────────────────────────────────────────────────────────────────────────────
// Cantidades derivadas y estado de stock
// ──────────────────────────────────────────────────────────────────────────────

func TestProduct_QuantityAvailable(t *testing.T) {
	p := &entity.Product{QuantityOnHand: dec("10"), QuantityReserved: dec("3")}
	assert.True(t, dec("7").Equal(p.QuantityAvailable()))
}

func TestProduct_StockStatus(t *testing.T) {
	cases := []struct {
		name               string
		onHand, reserved   string
		reorderPoint       string
		expected           entity.StockStatus
	}{
		{"disponible sobre el punto de reorden", "100", "10", "20", entity.StockStatusInStock},
		{"disponible igual al punto de reorden", "25", "5", "20", entity.StockStatusLowStock},
		{"disponible bajo el punto de reorden", "15", "5", "20", entity.StockStatusLowStock},
		{"disponible en cero", "5", "5", "20", entity.StockStatusOutOfStock},
		{"todo reservado sin punto de reorden", "5", "5", "0", entity.StockStatusOutOfStock},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := &entity.Product{
				QuantityOnHand:   dec(tc.onHand),
				QuantityReserved: dec(tc.reserved),
				ReorderPoint:     dec(tc.reorderPoint),
			}
			assert.Equal(t, tc.expected, p.StockStatus())
		})
	}
}

func TestProduct_NeedsReorder(t *testing.T) {
	now := time.Now()
	base := entity.Product{
		QuantityOnHand: dec("10"),
		ReorderPoint:   dec("20"),
		TrackInventory: true,
	}

	assert.True(t, base.NeedsReorder(), "disponible bajo el punto de reorden debe pedir reposición")

	sinTracking := base
	sinTracking.TrackInventory = false
	assert.False(t, sinTracking.NeedsReorder(), "sin manejo de inventario nunca se sugiere reorden")

	eliminado := base
	eliminado.DeletedAt = &now
	assert.False(t, eliminado.NeedsReorder(), "producto eliminado no entra a la planeación")

	holgado := base
	holgado.QuantityOnHand = dec("100")
	assert.False(t, holgado.NeedsReorder())
}

func TestProduct_SuggestReorderQuantity(t *testing.T) {
	// Con reorder_quantity configurada, esa manda.
	p := &entity.Product{ReorderQuantity: dec("40"), MaximumQuantity: dec("100")}
	assert.True(t, dec("40").Equal(p.SuggestReorderQuantity()))

	// Sin reorder_quantity: llenar hasta el máximo.
	p = &entity.Product{QuantityOnHand: dec("30"), MaximumQuantity: dec("100")}
	assert.True(t, dec("70").Equal(p.SuggestReorderQuantity()))

	// Sin base para sugerir: cero (el caller aplica su default).
	p = &entity.Product{QuantityOnHand: dec("30")}
	assert.True(t, p.SuggestReorderQuantity().IsZero())

	// Ya por encima del máximo: no se sugiere pedido.
	p = &entity.Product{QuantityOnHand: dec("150"), MaximumQuantity: dec("100")}
	assert.True(t, p.SuggestReorderQuantity().IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// Umbrales de reorden
// ──────────────────────────────────────────────────────────────────────────────

func TestValidateThresholds(t *testing.T) {
	cases := []struct {
		name                       string
		reorderPoint, minQty, maxQty string
		wantErr                    bool
	}{
		{"orden correcto", "20", "10", "100", false},
		{"sin máximo configurado", "20", "10", "0", false},
		{"todo en cero", "0", "0", "0", false},
		{"mínimo mayor que máximo", "20", "50", "30", true},
		{"punto de reorden bajo el mínimo", "5", "10", "100", true},
		{"umbral negativo", "-1", "0", "0", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := entity.ValidateThresholds(dec(tc.reorderPoint), dec(tc.minQty), dec(tc.maxQty))
			if tc.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidThresholds)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
