package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jmcastano/almacen-api/internal/application/dto"
	"github.com/jmcastano/almacen-api/internal/application/ledger"
	"github.com/jmcastano/almacen-api/internal/application/usecase"
	"github.com/jmcastano/almacen-api/internal/domain"
)

// InventoryHandler maneja el inventario actual y las operaciones del ledger.
type InventoryHandler struct {
	ledger  *ledger.LedgerUseCase
	reports *usecase.ReportUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(l *ledger.LedgerUseCase, r *usecase.ReportUseCase) *InventoryHandler {
	return &InventoryHandler{ledger: l, reports: r}
}

// Balances godoc
// @Summary      Inventario actual (una fila por producto)
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.BalanceResponse
// @Router       /api/inventory [get]
func (h *InventoryHandler) Balances(c *fiber.Ctx) error {
	out, err := h.reports.Balances()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// RecordMovement godoc
// @Summary      Registrar movimiento de stock
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordMovementRequest  true  "product_id, quantity_change, unit, total_price"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) RecordMovement(c *fiber.Ctx) error {
	var in dto.RecordMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ProductID == "" || in.QuantityChange == nil || in.Unit == "" || in.TotalPrice == nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id, quantity_change, unit y total_price son requeridos"})
	}
	if !in.QuantityChange.IsPositive() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "quantity_change debe ser mayor que cero"})
	}
	if in.TotalPrice.IsNegative() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "total_price no puede ser negativo"})
	}
	mov, err := h.ledger.RecordMovement(c.Context(), ledger.MovementInput{
		ProductID:      in.ProductID,
		QuantityChange: *in.QuantityChange,
		Unit:           in.Unit,
		TotalPrice:     *in.TotalPrice,
		ActingUserID:   GetUserID(c),
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MovementResponse{
		ID:             mov.ID,
		ProductID:      mov.ProductID,
		QuantityChange: mov.QuantityChange,
		Unit:           mov.Unit,
		TotalPrice:     mov.TotalPrice,
		Kind:           mov.Kind,
		CreatedAt:      mov.CreatedAt,
		CreatedBy:      mov.CreatedBy,
	})
}

// LatestMovements godoc
// @Summary      Últimos movimientos (más recientes primero)
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        limit      query  int     false  "máximo de filas (default 50)"
// @Param        startDate  query  string  false  "YYYY-MM-DD o RFC3339"
// @Param        endDate    query  string  false  "YYYY-MM-DD o RFC3339"
// @Success      200  {array}  dto.DetailedMovementRow
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements/latest [get]
func (h *InventoryHandler) LatestMovements(c *fiber.Ctx) error {
	start, err := parseStartParam(c.Query("startDate"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	end, err := parseEndParam(c.Query("endDate"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	limit := c.QueryInt("limit", 50)
	out, err := h.reports.LatestMovements(limit, start, end)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// DeleteMovement godoc
// @Summary      Eliminar movimiento (revierte su efecto en el balance)
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements/{id} [delete]
func (h *InventoryHandler) DeleteMovement(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	found, err := h.ledger.DeleteMovement(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if !found {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "movimiento no encontrado"})
	}
	return c.JSON(dto.MessageResponse{Message: "movimiento eliminado y balance revertido"})
}
