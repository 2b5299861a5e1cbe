package inventory

import (
	"math"

	"github.com/shopspring/decimal"
)

// Constantes de política de planeación. El ledger usa decimales de punta a
// punta; las fórmulas EOQ son estimaciones de planeación y pasan por float64
// solo para la raíz cuadrada.
var (
	// DefaultHoldingCostRate costo anual de mantener una unidad, como
	// fracción de su costo unitario (20%/año).
	DefaultHoldingCostRate = decimal.NewFromFloat(0.20)

	// DefaultOrderingCost costo fijo por orden de compra.
	DefaultOrderingCost = decimal.NewFromInt(50)

	// DefaultReorderQuantity cantidad sugerida cuando el producto no tiene
	// parámetros de reorden configurados.
	DefaultReorderQuantity = decimal.NewFromInt(10)
)

// EconomicOrderQuantity cantidad económica de pedido:
//
//	EOQ = sqrt(2 * D * S / H)
//
// donde D es la demanda anual, S el costo por orden y H el costo anual de
// mantener una unidad. Devuelve cero si algún parámetro no es positivo.
func EconomicOrderQuantity(annualDemand, orderingCost, holdingCostPerUnit decimal.Decimal) decimal.Decimal {
	if annualDemand.LessThanOrEqual(decimal.Zero) ||
		orderingCost.LessThanOrEqual(decimal.Zero) ||
		holdingCostPerUnit.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	d, _ := annualDemand.Float64()
	s, _ := orderingCost.Float64()
	h, _ := holdingCostPerUnit.Float64()
	eoq := math.Sqrt(2 * d * s / h)
	return decimal.NewFromFloat(eoq).Round(2)
}

// AnnualTotalCost costo total anual de ordenar + mantener para un tamaño de
// pedido dado: (D/Q)*S + (Q/2)*H. Devuelve cero si el tamaño no es positivo.
func AnnualTotalCost(annualDemand, orderQty, orderingCost, holdingCostPerUnit decimal.Decimal) decimal.Decimal {
	if orderQty.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	ordering := annualDemand.Div(orderQty).Mul(orderingCost)
	holding := orderQty.Div(decimal.NewFromInt(2)).Mul(holdingCostPerUnit)
	return ordering.Add(holding)
}

// PotentialSavings ahorro anual al pasar del costo actual al óptimo,
// acotado en cero (nunca se reporta ahorro negativo).
func PotentialSavings(currentAnnualCost, optimalAnnualCost decimal.Decimal) decimal.Decimal {
	savings := currentAnnualCost.Sub(optimalAnnualCost)
	if savings.IsNegative() {
		return decimal.Zero
	}
	return savings
}

// AnnualDemandFromVelocity extrapola la demanda anual desde las unidades
// vendidas en una ventana de observación: unidades/ventana * 365.
func AnnualDemandFromVelocity(unitsSold decimal.Decimal, windowDays int) decimal.Decimal {
	if windowDays <= 0 || unitsSold.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return unitsSold.Div(decimal.NewFromInt(int64(windowDays))).Mul(decimal.NewFromInt(365))
}
