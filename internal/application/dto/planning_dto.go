package dto

import "github.com/shopspring/decimal"

// ReorderSuggestionDTO producto en o bajo su punto de reorden con la
// cantidad y costo sugeridos de pedido.
type ReorderSuggestionDTO struct {
	ProductID         string          `json:"product_id"`
	SKU               string          `json:"sku"`
	ProductName       string          `json:"product_name"`
	SupplierID        string          `json:"supplier_id,omitempty"`
	QuantityAvailable decimal.Decimal `json:"quantity_available"`
	ReorderPoint      decimal.Decimal `json:"reorder_point"`
	SuggestedQuantity decimal.Decimal `json:"suggested_quantity"`
	UnitCost          decimal.Decimal `json:"unit_cost"`
	SuggestedCost     decimal.Decimal `json:"suggested_cost"`
	StockStatus       string          `json:"stock_status"`
	Urgent            bool            `json:"urgent"` // agotado: disponible en cero
}

// ReorderSuggestionsDTO lista de sugerencias más el valor agregado.
type ReorderSuggestionsDTO struct {
	Suggestions         []ReorderSuggestionDTO `json:"suggestions"`
	TotalSuggestedValue decimal.Decimal        `json:"total_suggested_value"`
}

// EOQResultDTO optimización de cantidad de pedido para un producto.
type EOQResultDTO struct {
	ProductID        string          `json:"product_id"`
	SKU              string          `json:"sku"`
	AnnualDemand     decimal.Decimal `json:"annual_demand"`
	CurrentOrderQty  decimal.Decimal `json:"current_order_qty"`
	OptimalOrderQty  decimal.Decimal `json:"optimal_order_qty"`
	CurrentAnnualCost decimal.Decimal `json:"current_annual_cost"`
	OptimalAnnualCost decimal.Decimal `json:"optimal_annual_cost"`
	PotentialSavings decimal.Decimal `json:"potential_savings"`
}

// PurchaseRecommendationDTO sugerencias agrupadas por proveedor.
type PurchaseRecommendationDTO struct {
	SupplierID  string                 `json:"supplier_id"` // vacío = sin proveedor asignado
	Items       []ReorderSuggestionDTO `json:"items"`
	TotalValue  decimal.Decimal        `json:"total_value"`
	UrgentItems int                    `json:"urgent_items"`
}

// UpdateReorderParamsRequest body para PUT /api/planning/reorder-parameters/:id.
// Sujeto a minimum <= maximum y reorder_point >= minimum.
type UpdateReorderParamsRequest struct {
	ReorderPoint    decimal.Decimal `json:"reorder_point"`
	ReorderQuantity decimal.Decimal `json:"reorder_quantity"`
	MinimumQuantity decimal.Decimal `json:"minimum_quantity"`
	MaximumQuantity decimal.Decimal `json:"maximum_quantity"`
}
