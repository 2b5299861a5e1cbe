package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/get-hunter/hero365-inventory/internal/domain"
	"github.com/get-hunter/hero365-inventory/internal/domain/entity"
)

func validMovement() *entity.StockMovement {
	return &entity.StockMovement{
		BusinessID:     "b-1",
		ProductID:      "p-1",
		Type:           entity.MovementAdjustment,
		Quantity:       dec("5"),
		QuantityBefore: dec("10"),
		QuantityAfter:  dec("15"),
	}
}

// La invariante central del ledger: after = before + quantity.
func TestStockMovement_Validate_CadenaConsistente(t *testing.T) {
	assert.NoError(t, validMovement().Validate())
}

func TestStockMovement_Validate_CadenaRota(t *testing.T) {
	m := validMovement()
	m.QuantityAfter = dec("14")
	assert.ErrorIs(t, m.Validate(), domain.ErrInvalidInput)
}

func TestStockMovement_Validate_ResultadoNegativo(t *testing.T) {
	m := validMovement()
	m.Quantity = dec("-20")
	m.QuantityAfter = dec("-10")
	assert.ErrorIs(t, m.Validate(), domain.ErrInsufficientStock)
}

// Reservas y liberaciones dejan rastro con delta cero; son válidas.
func TestStockMovement_Validate_DeltaCero(t *testing.T) {
	m := validMovement()
	m.Type = entity.MovementReserve
	m.Quantity = decimal.Zero
	m.QuantityAfter = m.QuantityBefore
	assert.NoError(t, m.Validate())
}

func TestStockMovement_Validate_TipoInvalido(t *testing.T) {
	m := validMovement()
	m.Type = entity.MovementType("REGALO")
	assert.ErrorIs(t, m.Validate(), domain.ErrInvalidInput)
}

func TestStockMovement_Validate_SinProductoONegocio(t *testing.T) {
	m := validMovement()
	m.ProductID = ""
	assert.ErrorIs(t, m.Validate(), domain.ErrInvalidInput)

	m = validMovement()
	m.BusinessID = ""
	assert.ErrorIs(t, m.Validate(), domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Enums cerrados y nombres para UI
// ──────────────────────────────────────────────────────────────────────────────

func TestMovementType_EnumCerrado(t *testing.T) {
	assert.True(t, entity.MovementPurchase.IsValid())
	assert.True(t, entity.MovementRelease.IsValid())
	assert.False(t, entity.MovementType("").IsValid())
	assert.False(t, entity.MovementType("purchase").IsValid(), "el enum distingue mayúsculas")
}

func TestMovementType_Display(t *testing.T) {
	assert.Equal(t, "Compra", entity.MovementPurchase.Display())
	assert.Equal(t, "Merma", entity.MovementShrinkage.Display())
	// Tipo desconocido cae al valor crudo, nunca a vacío.
	assert.Equal(t, "X", entity.MovementType("X").Display())
}

func TestCostingMethod_EnumYDisplay(t *testing.T) {
	assert.True(t, entity.CostingWeightedAverage.IsValid())
	assert.False(t, entity.CostingMethod("PROMEDIO").IsValid())
	assert.Equal(t, entity.CostingWeightedAverage, entity.DefaultCostingMethod)

	assert.False(t, entity.CostingWeightedAverage.UsesLayers())
	assert.True(t, entity.CostingFIFO.UsesLayers())

	assert.NotEmpty(t, entity.CostingWeightedAverage.Display())
}

func TestStockStatus_Display(t *testing.T) {
	assert.Equal(t, "En stock", entity.StockStatusInStock.Display())
	assert.Equal(t, "Stock bajo", entity.StockStatusLowStock.Display())
	assert.Equal(t, "Agotado", entity.StockStatusOutOfStock.Display())
}
