package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/get-hunter/hero365-inventory/internal/application/dto"
	"github.com/get-hunter/hero365-inventory/internal/application/planning"
	"github.com/get-hunter/hero365-inventory/internal/domain/repository"
	"github.com/get-hunter/hero365-inventory/pkg/validator"
)

// PlanningHandler maneja las peticiones HTTP de planificación de reorden (protegido).
type PlanningHandler struct {
	uc *planning.ReorderPlanningUseCase
}

// NewPlanningHandler construye el handler.
func NewPlanningHandler(uc *planning.ReorderPlanningUseCase) *PlanningHandler {
	return &PlanningHandler{uc: uc}
}

// GetReorderSuggestions godoc
// @Summary      Productos en o bajo su punto de reorden
// @Description  Devuelve los productos cuyo disponible está en o bajo el
//
//	punto de reorden, con cantidad y costo sugeridos de pedido.
//
// @Tags         planning
// @Security     Bearer
// @Produce      json
// @Param        category     query  string  false  "Filtrar por categoría"
// @Param        supplier_id  query  string  false  "Filtrar por proveedor"
// @Success      200  {object}  dto.ReorderSuggestionsDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/planning/reorder-suggestions [get]
func (h *PlanningHandler) GetReorderSuggestions(c *fiber.Ctx) error {
	businessID := GetBusinessID(c)
	if businessID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	filter := repository.ReorderFilter{
		Category:   c.Query("category"),
		SupplierID: c.Query("supplier_id"),
	}
	result, err := h.uc.GetReorderSuggestions(c.Context(), businessID, filter)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(result)
}

// CalculateOptimalOrderQuantities godoc
// @Summary      Cantidad económica de pedido (EOQ)
// @Description  Calcula la cantidad óptima de pedido por producto a partir de
//
//	la velocidad de ventas reciente, con el ahorro anual potencial frente a
//	la cantidad de reorden configurada.
//
// @Tags         planning
// @Security     Bearer
// @Produce      json
// @Param        product_ids    query  string  false  "IDs separados por coma. Vacío = todos los candidatos a reorden."
// @Param        forecast_days  query  int     false  "Ventana de demanda en días (default 90)"
// @Success      200  {array}   dto.EOQResultDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/planning/optimal-order-quantities [get]
func (h *PlanningHandler) CalculateOptimalOrderQuantities(c *fiber.Ctx) error {
	businessID := GetBusinessID(c)
	if businessID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var productIDs []string
	if raw := c.Query("product_ids"); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				productIDs = append(productIDs, id)
			}
		}
	}
	forecastDays := c.QueryInt("forecast_days")

	results, err := h.uc.CalculateOptimalOrderQuantities(c.Context(), businessID, productIDs, forecastDays)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(results), "results": results})
}

// GeneratePurchaseRecommendations godoc
// @Summary      Recomendaciones de compra agrupadas por proveedor
// @Tags         planning
// @Security     Bearer
// @Produce      json
// @Param        group_by_supplier  query  bool    false  "Agrupar por proveedor (default true)"
// @Param        min_order_value    query  number  false  "Descartar grupos bajo este valor"
// @Success      200  {array}   dto.PurchaseRecommendationDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/planning/purchase-recommendations [get]
func (h *PlanningHandler) GeneratePurchaseRecommendations(c *fiber.Ctx) error {
	businessID := GetBusinessID(c)
	if businessID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	groupBySupplier := true
	if c.Query("group_by_supplier") != "" {
		groupBySupplier = c.QueryBool("group_by_supplier")
	}
	minOrderValue := decimal.Zero
	if raw := c.Query("min_order_value"); raw != "" {
		v, err := decimal.NewFromString(raw)
		if err != nil || v.IsNegative() {
			return badRequest(c, "min_order_value debe ser un número no negativo")
		}
		minOrderValue = v
	}

	recs, err := h.uc.GeneratePurchaseRecommendations(c.Context(), businessID, groupBySupplier, minOrderValue)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(recs), "recommendations": recs})
}

// UpdateReorderParameters godoc
// @Summary      Actualizar parámetros de reorden de un producto
// @Description  Ajusta punto de reorden, cantidad de reorden y umbrales
//
//	mínimo/máximo. Requiere minimum <= maximum y reorder_point >= minimum.
//
// @Tags         planning
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                         true  "ID del producto (UUID)"
// @Param        body  body  dto.UpdateReorderParamsRequest true  "umbrales de reorden"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/planning/reorder-parameters/{id} [put]
func (h *PlanningHandler) UpdateReorderParameters(c *fiber.Ctx) error {
	businessID := GetBusinessID(c)
	if businessID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	productID := c.Params("id")

	var in dto.UpdateReorderParamsRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if err := validator.Struct(in); err != nil {
		return badRequest(c, err.Error())
	}
	if err := h.uc.UpdateReorderParameters(c.Context(), businessID, productID, in); err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "parámetros de reorden actualizados"})
}
