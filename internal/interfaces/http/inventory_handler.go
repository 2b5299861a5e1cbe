package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/get-hunter/hero365-inventory/internal/application/dto"
	"github.com/get-hunter/hero365-inventory/internal/application/inventory"
	"github.com/get-hunter/hero365-inventory/pkg/validator"
)

// InventoryHandler maneja las peticiones HTTP del motor de operaciones de
// stock y las consultas al ledger de movimientos (protegido).
type InventoryHandler struct {
	ops       *inventory.StockOperationsUseCase
	movements *inventory.MovementQueryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(ops *inventory.StockOperationsUseCase, movements *inventory.MovementQueryUseCase) *InventoryHandler {
	return &InventoryHandler{ops: ops, movements: movements}
}

// AdjustStock godoc
// @Summary      Ajustar stock de un producto
// @Description  Aplica un delta firmado al on-hand y registra el movimiento
//
//	correspondiente en el ledger. El razonamiento del ajuste es obligatorio.
//
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustStockRequest  true  "product_id, quantity_change (delta firmado), reason"
// @Success      200   {object}  dto.StockOperationResult
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/inventory/adjustments [post]
func (h *InventoryHandler) AdjustStock(c *fiber.Ctx) error {
	businessID, userID := GetBusinessID(c), GetUserID(c)
	if businessID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if err := validator.Struct(in); err != nil {
		return badRequest(c, err.Error())
	}
	result, err := h.ops.AdjustStock(c.Context(), businessID, userID, in)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(result)
}

// ReceivePurchase godoc
// @Summary      Recibir mercancía de una orden de compra
// @Description  Aumenta el on-hand y recalcula el costo promedio ponderado
//
//	incluyendo flete, aranceles y otros costos adicionales (landed cost).
//
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReceivePurchaseRequest  true  "product_id, quantity, unit_cost y costos adicionales"
// @Success      200   {object}  dto.StockOperationResult
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/inventory/receipts [post]
func (h *InventoryHandler) ReceivePurchase(c *fiber.Ctx) error {
	businessID, userID := GetBusinessID(c), GetUserID(c)
	if businessID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.ReceivePurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if err := validator.Struct(in); err != nil {
		return badRequest(c, err.Error())
	}
	result, err := h.ops.ReceivePurchase(c.Context(), businessID, userID, in)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(result)
}

// TransferStock godoc
// @Summary      Transferir stock entre ubicaciones
// @Description  Mueve cantidad entre dos ubicaciones del mismo negocio. El
//
//	on-hand global del producto no cambia; queda constancia en el ledger.
//
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransferStockRequest  true  "product_id, from_location_id, to_location_id, quantity, reason"
// @Success      200   {object}  dto.StockOperationResult
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/transfers [post]
func (h *InventoryHandler) TransferStock(c *fiber.Ctx) error {
	businessID, userID := GetBusinessID(c), GetUserID(c)
	if businessID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.TransferStockRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if err := validator.Struct(in); err != nil {
		return badRequest(c, err.Error())
	}
	result, err := h.ops.TransferStock(c.Context(), businessID, userID, in)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(result)
}

// ReserveStock godoc
// @Summary      Reservar stock para una orden
// @Description  Mueve cantidad de disponible a reservado sin alterar el
//
//	on-hand. Falla si el disponible es insuficiente.
//
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReserveStockRequest  true  "product_id, quantity, reference_id, reference_type"
// @Success      200   {object}  dto.StockOperationResult
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/reservations [post]
func (h *InventoryHandler) ReserveStock(c *fiber.Ctx) error {
	businessID, userID := GetBusinessID(c), GetUserID(c)
	if businessID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.ReserveStockRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if err := validator.Struct(in); err != nil {
		return badRequest(c, err.Error())
	}
	result, err := h.ops.ReserveStock(c.Context(), businessID, userID, in)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(result)
}

// ReleaseReservation godoc
// @Summary      Liberar una reserva de stock
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReleaseReservationRequest  true  "product_id, quantity, reference_id, reference_type, reason"
// @Success      200   {object}  dto.StockOperationResult
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/releases [post]
func (h *InventoryHandler) ReleaseReservation(c *fiber.Ctx) error {
	businessID, userID := GetBusinessID(c), GetUserID(c)
	if businessID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.ReleaseReservationRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if err := validator.Struct(in); err != nil {
		return badRequest(c, err.Error())
	}
	result, err := h.ops.ReleaseReservation(c.Context(), businessID, userID, in)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(result)
}

// ListProductMovements godoc
// @Summary      Historial de movimientos de un producto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del producto (UUID)"
// @Param        from    query  string  false  "Desde (RFC3339)"
// @Param        to      query  string  false  "Hasta (RFC3339)"
// @Param        limit   query  int     false  "Máximo de resultados (default 20)"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {array}   dto.MovementDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/products/{id}/movements [get]
func (h *InventoryHandler) ListProductMovements(c *fiber.Ctx) error {
	businessID := GetBusinessID(c)
	if businessID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	productID := c.Params("id")

	var from, to *time.Time
	if v := c.Query("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return badRequest(c, "from debe ser RFC3339")
		}
		from = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return badRequest(c, "to debe ser RFC3339")
		}
		to = &t
	}

	page := dto.PageRequest{Limit: c.QueryInt("limit"), Offset: c.QueryInt("offset")}
	page.DefaultPage()

	list, err := h.movements.ListByProduct(c.Context(), businessID, productID, from, to, page)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "movements": list})
}

// ListBusinessMovements godoc
// @Summary      Movimientos recientes del negocio
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Máximo de resultados (default 20)"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {array}  dto.MovementDTO
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListBusinessMovements(c *fiber.Ctx) error {
	businessID := GetBusinessID(c)
	if businessID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	page := dto.PageRequest{Limit: c.QueryInt("limit"), Offset: c.QueryInt("offset")}
	page.DefaultPage()

	list, err := h.movements.ListByBusiness(c.Context(), businessID, page)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "movements": list})
}

// RebuildProductQuantity godoc
// @Summary      Verificar un producto contra su ledger
// @Description  Reproduce el historial de movimientos desde cero y compara el
//
//	resultado con el on-hand actual. Con repair=true corrige la proyección.
//
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del producto (UUID)"
// @Param        repair  query  bool    false  "Corregir la proyección si difiere"
// @Success      200  {object}  dto.RebuildResult
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventory/products/{id}/rebuild [post]
func (h *InventoryHandler) RebuildProductQuantity(c *fiber.Ctx) error {
	businessID := GetBusinessID(c)
	if businessID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	productID := c.Params("id")
	repair := c.QueryBool("repair")

	result, err := h.ops.RebuildProductQuantity(c.Context(), businessID, productID, repair)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(result)
}
