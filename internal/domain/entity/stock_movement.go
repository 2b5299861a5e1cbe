package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/get-hunter/hero365-inventory/internal/domain"
)

// MovementType tipo de movimiento del ledger de inventario.
type MovementType string

const (
	MovementPurchase   MovementType = "PURCHASE"
	MovementSale       MovementType = "SALE"
	MovementAdjustment MovementType = "ADJUSTMENT"
	MovementTransfer   MovementType = "TRANSFER"
	MovementReturn     MovementType = "RETURN"
	MovementDamage     MovementType = "DAMAGE"
	MovementShrinkage  MovementType = "SHRINKAGE"
	MovementInitial    MovementType = "INITIAL"
	MovementRecount    MovementType = "RECOUNT"
	MovementReserve    MovementType = "RESERVE"
	MovementRelease    MovementType = "RELEASE"
)

// IsValid verifica que el tipo pertenezca al enum cerrado.
func (t MovementType) IsValid() bool {
	switch t {
	case MovementPurchase, MovementSale, MovementAdjustment, MovementTransfer,
		MovementReturn, MovementDamage, MovementShrinkage, MovementInitial,
		MovementRecount, MovementReserve, MovementRelease:
		return true
	default:
		return false
	}
}

// movementTypeDisplay nombres para UI, separados de la lógica de dominio.
var movementTypeDisplay = map[MovementType]string{
	MovementPurchase:   "Compra",
	MovementSale:       "Venta",
	MovementAdjustment: "Ajuste",
	MovementTransfer:   "Traslado",
	MovementReturn:     "Devolución",
	MovementDamage:     "Daño",
	MovementShrinkage:  "Merma",
	MovementInitial:    "Stock inicial",
	MovementRecount:    "Reconteo",
	MovementReserve:    "Reserva",
	MovementRelease:    "Liberación de reserva",
}

// Display devuelve el nombre legible del tipo de movimiento.
func (t MovementType) Display() string {
	if s, ok := movementTypeDisplay[t]; ok {
		return s
	}
	return string(t)
}

// StockMovement hecho inmutable del ledger: un cambio de cantidad o costo
// sobre un producto, con snapshot antes/después. Nunca se edita; las
// correcciones se hacen con un movimiento compensatorio que referencia
// al original.
type StockMovement struct {
	ID         string
	BusinessID string
	ProductID  string

	Type MovementType

	// Quantity delta firmado aplicado al on-hand. Cero para movimientos
	// que solo dejan rastro de auditoría (reserva, liberación, traslado
	// global entre ubicaciones).
	Quantity       decimal.Decimal
	QuantityBefore decimal.Decimal
	QuantityAfter  decimal.Decimal

	// Snapshot de costos al momento del movimiento. TotalCost incluye
	// los costos adicionales (landed cost) en las compras.
	UnitCost   decimal.Decimal
	TotalCost  decimal.Decimal
	CostBefore decimal.Decimal
	CostAfter  decimal.Decimal

	// Contexto opcional.
	ReferenceType  string // purchase_order, order, estimate, movement...
	ReferenceID    string
	FromLocationID string
	ToLocationID   string
	SupplierID     string
	Reason         string
	Notes          string

	CreatedBy string
	CreatedAt time.Time
}

// Validate verifica las invariantes del ledger antes de persistir:
// tipo válido y quantity_after = quantity_before + quantity.
func (m *StockMovement) Validate() error {
	if !m.Type.IsValid() {
		return domain.ErrInvalidInput
	}
	if m.ProductID == "" || m.BusinessID == "" {
		return domain.ErrInvalidInput
	}
	if !m.QuantityAfter.Equal(m.QuantityBefore.Add(m.Quantity)) {
		return domain.ErrInvalidInput
	}
	if m.QuantityAfter.IsNegative() {
		return domain.ErrInsufficientStock
	}
	return nil
}
