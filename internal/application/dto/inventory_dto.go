package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdjustStockRequest body para POST /api/inventory/adjustments.
// QuantityChange es un delta firmado distinto de cero.
type AdjustStockRequest struct {
	ProductID      string          `json:"product_id" validate:"required,uuid"`
	QuantityChange decimal.Decimal `json:"quantity_change"`
	Reason         string          `json:"reason" validate:"required"`
	ReferenceType  string          `json:"reference_type,omitempty"`
	ReferenceID    string          `json:"reference_id,omitempty"`
	Notes          string          `json:"notes,omitempty"`
}

// TransferStockRequest body para POST /api/inventory/transfers.
// El on-hand global del producto no cambia; las ubicaciones se ajustan ±.
type TransferStockRequest struct {
	ProductID      string          `json:"product_id" validate:"required,uuid"`
	FromLocationID string          `json:"from_location_id" validate:"required"`
	ToLocationID   string          `json:"to_location_id" validate:"required"`
	Quantity       decimal.Decimal `json:"quantity"`
	Reason         string          `json:"reason" validate:"required"`
}

// ReceivePurchaseRequest body para POST /api/inventory/receipts.
// Los costos adicionales (flete, arancel, otros) forman el landed cost.
type ReceivePurchaseRequest struct {
	ProductID       string          `json:"product_id" validate:"required,uuid"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
	SupplierID      string          `json:"supplier_id,omitempty"`
	PurchaseOrderID string          `json:"purchase_order_id,omitempty"`
	InvoiceNumber   string          `json:"invoice_number,omitempty"`
	ShippingCost    decimal.Decimal `json:"shipping_cost,omitempty"`
	DutyCost        decimal.Decimal `json:"duty_cost,omitempty"`
	OtherCosts      decimal.Decimal `json:"other_costs,omitempty"`
	Notes           string          `json:"notes,omitempty"`
}

// ReserveStockRequest body para POST /api/inventory/reservations.
// La pareja (reference_id, reference_type) permite conciliar reserva y
// liberación de forma idempotente.
type ReserveStockRequest struct {
	ProductID     string          `json:"product_id" validate:"required,uuid"`
	Quantity      decimal.Decimal `json:"quantity"`
	ReferenceID   string          `json:"reference_id" validate:"required"`
	ReferenceType string          `json:"reference_type" validate:"required"`
}

// ReleaseReservationRequest body para POST /api/inventory/releases.
type ReleaseReservationRequest struct {
	ProductID     string          `json:"product_id" validate:"required,uuid"`
	Quantity      decimal.Decimal `json:"quantity"`
	ReferenceID   string          `json:"reference_id" validate:"required"`
	ReferenceType string          `json:"reference_type" validate:"required"`
	Reason        string          `json:"reason" validate:"required"`
}

// StockOperationResult resultado de una operación del motor de inventario:
// el movimiento registrado más la proyección refrescada del producto.
type StockOperationResult struct {
	MovementID     string          `json:"movement_id"`
	ProductID      string          `json:"product_id"`
	QuantityChange decimal.Decimal `json:"quantity_change"`
	QuantityBefore decimal.Decimal `json:"quantity_before"`
	QuantityAfter  decimal.Decimal `json:"quantity_after"`

	QuantityOnHand    decimal.Decimal `json:"quantity_on_hand"`
	QuantityReserved  decimal.Decimal `json:"quantity_reserved"`
	QuantityAvailable decimal.Decimal `json:"quantity_available"`
	UnitCost          decimal.Decimal `json:"unit_cost"`
	AverageCost       decimal.Decimal `json:"average_cost"`
	StockStatus       string          `json:"stock_status"`
}

// MovementDTO proyección de un movimiento del ledger para la API.
type MovementDTO struct {
	ID             string          `json:"id"`
	ProductID      string          `json:"product_id"`
	Type           string          `json:"type"`
	TypeDisplay    string          `json:"type_display"`
	Quantity       decimal.Decimal `json:"quantity"`
	QuantityBefore decimal.Decimal `json:"quantity_before"`
	QuantityAfter  decimal.Decimal `json:"quantity_after"`
	UnitCost       decimal.Decimal `json:"unit_cost"`
	TotalCost      decimal.Decimal `json:"total_cost"`
	CostBefore     decimal.Decimal `json:"cost_before"`
	CostAfter      decimal.Decimal `json:"cost_after"`
	ReferenceType  string          `json:"reference_type,omitempty"`
	ReferenceID    string          `json:"reference_id,omitempty"`
	FromLocationID string          `json:"from_location_id,omitempty"`
	ToLocationID   string          `json:"to_location_id,omitempty"`
	SupplierID     string          `json:"supplier_id,omitempty"`
	Reason         string          `json:"reason,omitempty"`
	Notes          string          `json:"notes,omitempty"`
	CreatedBy      string          `json:"created_by,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// RebuildResult resultado de reconstruir el estado de un producto desde su
// historial de movimientos (verificación de auditoría).
type RebuildResult struct {
	ProductID       string          `json:"product_id"`
	LedgerQuantity  decimal.Decimal `json:"ledger_quantity"`
	ProductQuantity decimal.Decimal `json:"product_quantity"`
	MovementCount   int             `json:"movement_count"`
	Consistent      bool            `json:"consistent"`
	Repaired        bool            `json:"repaired"`
}
