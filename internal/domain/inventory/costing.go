package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/get-hunter/hero365-inventory/internal/domain"
)

// AdditionalCosts costos de adquisición que se suman al costo de compra
// para formar el landed cost.
type AdditionalCosts struct {
	Shipping decimal.Decimal
	Duty     decimal.Decimal
	Other    decimal.Decimal
}

// Total suma de los costos adicionales.
func (c AdditionalCosts) Total() decimal.Decimal {
	return c.Shipping.Add(c.Duty).Add(c.Other)
}

// Validate rechaza componentes negativos.
func (c AdditionalCosts) Validate() error {
	if c.Shipping.IsNegative() || c.Duty.IsNegative() || c.Other.IsNegative() {
		return domain.ErrInvalidInput
	}
	return nil
}

// LandedCost costo total de una compra: cantidad * costo unitario + adicionales.
func LandedCost(quantity, unitCost decimal.Decimal, extras AdditionalCosts) decimal.Decimal {
	return quantity.Mul(unitCost).Add(extras.Total())
}

// WeightedAverageCost calcula el nuevo costo promedio ponderado (servicio de
// dominio, sin efectos secundarios).
//
//	NuevoCosto = (QtyActual*CostoActual + QtyEntrada*CostoEntrada + Adicionales) / (QtyActual + QtyEntrada)
//
// Con stock previo cero el promedio parte del costo de entrada, amortizando
// los adicionales sobre la cantidad entrante. Nunca divide por cero: una
// entrada de cantidad cero es inválida.
func WeightedAverageCost(qtyBefore, costBefore, qtyIncoming, unitCostIncoming decimal.Decimal, extras AdditionalCosts) (decimal.Decimal, error) {
	if qtyBefore.IsNegative() || costBefore.IsNegative() ||
		unitCostIncoming.IsNegative() || qtyIncoming.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, domain.ErrInvalidInput
	}
	if err := extras.Validate(); err != nil {
		return decimal.Zero, err
	}

	incomingValue := qtyIncoming.Mul(unitCostIncoming).Add(extras.Total())
	if qtyBefore.IsZero() {
		return incomingValue.Div(qtyIncoming), nil
	}

	totalValue := qtyBefore.Mul(costBefore).Add(incomingValue)
	return totalValue.Div(qtyBefore.Add(qtyIncoming)), nil
}
