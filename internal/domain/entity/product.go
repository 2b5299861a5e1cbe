package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/get-hunter/hero365-inventory/internal/domain"
)

// Product representa un producto o SKU del inventario de un negocio.
// Las cantidades y costos se mutan exclusivamente a través del motor de
// operaciones (movimientos); escribir estos campos por fuera rompe la
// trazabilidad del ledger.
type Product struct {
	ID          string
	BusinessID  string
	SKU         string // único por negocio
	Name        string
	Description string
	Category    string

	// Cantidades. QuantityAvailable no se persiste: es OnHand - Reserved.
	QuantityOnHand   decimal.Decimal
	QuantityReserved decimal.Decimal

	// Costos. UnitCost es el costo de la última transacción;
	// AverageCost el promedio ponderado acumulado.
	UnitCost      decimal.Decimal
	AverageCost   decimal.Decimal
	CostingMethod CostingMethod

	// Umbrales de reorden (cero = no configurado).
	ReorderPoint    decimal.Decimal
	ReorderQuantity decimal.Decimal
	MinimumQuantity decimal.Decimal
	MaximumQuantity decimal.Decimal

	PrimarySupplierID string
	TrackInventory    bool

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time // borrado lógico: los movimientos conservan la referencia
}

// QuantityAvailable cantidad vendible: on-hand menos reservado.
func (p *Product) QuantityAvailable() decimal.Decimal {
	return p.QuantityOnHand.Sub(p.QuantityReserved)
}

// StockStatus estado derivado según disponible y punto de reorden.
func (p *Product) StockStatus() StockStatus {
	available := p.QuantityAvailable()
	switch {
	case available.LessThanOrEqual(decimal.Zero):
		return StockStatusOutOfStock
	case available.LessThanOrEqual(p.ReorderPoint):
		return StockStatusLowStock
	default:
		return StockStatusInStock
	}
}

// NeedsReorder indica si el disponible cayó al punto de reorden o por debajo.
// Solo aplica a productos con manejo de inventario habilitado.
func (p *Product) NeedsReorder() bool {
	if !p.TrackInventory || p.DeletedAt != nil {
		return false
	}
	return p.QuantityAvailable().LessThanOrEqual(p.ReorderPoint)
}

// SuggestReorderQuantity propone una cantidad de pedido cuando no hay
// ReorderQuantity configurada: llenar hasta el máximo si existe.
// Devuelve cero si no hay base para sugerir (el caller aplica su default).
func (p *Product) SuggestReorderQuantity() decimal.Decimal {
	if p.ReorderQuantity.GreaterThan(decimal.Zero) {
		return p.ReorderQuantity
	}
	if p.MaximumQuantity.GreaterThan(decimal.Zero) {
		deficit := p.MaximumQuantity.Sub(p.QuantityAvailable())
		if deficit.GreaterThan(decimal.Zero) {
			return deficit
		}
	}
	return decimal.Zero
}

// ValidateThresholds verifica el orden de los umbrales de reorden:
// minimum <= maximum (si hay máximo) y reorder_point >= minimum.
func ValidateThresholds(reorderPoint, minQty, maxQty decimal.Decimal) error {
	if reorderPoint.IsNegative() || minQty.IsNegative() || maxQty.IsNegative() {
		return domain.ErrInvalidThresholds
	}
	if maxQty.GreaterThan(decimal.Zero) && minQty.GreaterThan(maxQty) {
		return domain.ErrInvalidThresholds
	}
	if reorderPoint.LessThan(minQty) {
		return domain.ErrInvalidThresholds
	}
	return nil
}
