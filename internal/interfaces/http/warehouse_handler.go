package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ezm-trade/trade-api/internal/application/catalog"
	"github.com/ezm-trade/trade-api/internal/application/dto"
)

// WarehouseHandler handles the central warehouse inventory.
type WarehouseHandler struct {
	uc *catalog.WarehouseUseCase
}

// NewWarehouseHandler builds the handler.
func NewWarehouseHandler(uc *catalog.WarehouseUseCase) *WarehouseHandler {
	return &WarehouseHandler{uc: uc}
}

// List returns warehouse records ordered by SKU.
// GET /api/v1/warehouse
func (h *WarehouseHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByProduct returns the warehouse record of one product.
// GET /api/v1/warehouse/:productId
func (h *WarehouseHandler) GetByProduct(c *fiber.Ctx) error {
	out, err := h.uc.GetByProduct(c.Params("productId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListBelowReorderPoint returns the records due for a purchase order.
// GET /api/v1/warehouse/reorder
func (h *WarehouseHandler) ListBelowReorderPoint(c *fiber.Ctx) error {
	out, err := h.uc.ListBelowReorderPoint()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Upsert creates or updates the warehouse record of one product.
// PUT /api/v1/warehouse/:productId
func (h *WarehouseHandler) Upsert(c *fiber.Ctx) error {
	var in dto.UpsertWarehouseProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	out, err := h.uc.Upsert(c.Params("productId"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
