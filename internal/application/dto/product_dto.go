package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products.
// InitialQuantity genera un movimiento INITIAL en la misma transacción.
type CreateProductRequest struct {
	SKU               string          `json:"sku" validate:"required"`
	Name              string          `json:"name" validate:"required"`
	Description       string          `json:"description,omitempty"`
	Category          string          `json:"category,omitempty"`
	PrimarySupplierID string          `json:"primary_supplier_id,omitempty"`
	CostingMethod     string          `json:"costing_method,omitempty"`
	TrackInventory    *bool           `json:"track_inventory,omitempty"`
	InitialQuantity   decimal.Decimal `json:"initial_quantity,omitempty"`
	InitialUnitCost   decimal.Decimal `json:"initial_unit_cost,omitempty"`
	ReorderPoint      decimal.Decimal `json:"reorder_point,omitempty"`
	ReorderQuantity   decimal.Decimal `json:"reorder_quantity,omitempty"`
	MinimumQuantity   decimal.Decimal `json:"minimum_quantity,omitempty"`
	MaximumQuantity   decimal.Decimal `json:"maximum_quantity,omitempty"`
}

// UpdateProductRequest body para PUT /api/products/:id.
// Solo campos descriptivos; cantidades y costos se mutan vía movimientos.
type UpdateProductRequest struct {
	Name              string `json:"name" validate:"required"`
	Description       string `json:"description,omitempty"`
	Category          string `json:"category,omitempty"`
	PrimarySupplierID string `json:"primary_supplier_id,omitempty"`
}

// ProductDTO proyección de un producto para la API.
type ProductDTO struct {
	ID                string          `json:"id"`
	BusinessID        string          `json:"business_id"`
	SKU               string          `json:"sku"`
	Name              string          `json:"name"`
	Description       string          `json:"description,omitempty"`
	Category          string          `json:"category,omitempty"`
	PrimarySupplierID string          `json:"primary_supplier_id,omitempty"`
	QuantityOnHand    decimal.Decimal `json:"quantity_on_hand"`
	QuantityReserved  decimal.Decimal `json:"quantity_reserved"`
	QuantityAvailable decimal.Decimal `json:"quantity_available"`
	UnitCost          decimal.Decimal `json:"unit_cost"`
	AverageCost       decimal.Decimal `json:"average_cost"`
	CostingMethod     string          `json:"costing_method"`
	CostingDisplay    string          `json:"costing_method_display"`
	ReorderPoint      decimal.Decimal `json:"reorder_point"`
	ReorderQuantity   decimal.Decimal `json:"reorder_quantity"`
	MinimumQuantity   decimal.Decimal `json:"minimum_quantity"`
	MaximumQuantity   decimal.Decimal `json:"maximum_quantity"`
	TrackInventory    bool            `json:"track_inventory"`
	StockStatus       string          `json:"stock_status"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}
