package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ezm-trade/trade-api/internal/application/catalog"
	"github.com/ezm-trade/trade-api/internal/application/dto"
)

// StoreHandler handles stores and their stock.
type StoreHandler struct {
	uc *catalog.StoreUseCase
}

// NewStoreHandler builds the handler.
func NewStoreHandler(uc *catalog.StoreUseCase) *StoreHandler {
	return &StoreHandler{uc: uc}
}

// Create registers a store.
// POST /api/v1/stores
func (h *StoreHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStoreRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID returns one store.
// GET /api/v1/stores/:id
func (h *StoreHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List returns all stores.
// GET /api/v1/stores
func (h *StoreHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update edits one store.
// PUT /api/v1/stores/:id
func (h *StoreHandler) Update(c *fiber.Ctx) error {
	var in dto.CreateStoreRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete removes one store.
// DELETE /api/v1/stores/:id
func (h *StoreHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListStock godoc
// @Summary      List a store's stock
// @Tags         stores
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "Store ID"
// @Param        limit   query  int     false  "Limit"   default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {array}  dto.StockResponse
// @Router       /api/v1/stores/{id}/stock [get]
func (h *StoreHandler) ListStock(c *fiber.Ctx) error {
	out, err := h.uc.ListStock(c.Params("id"), pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateStockPricing sets selling price and low-stock threshold of one stock row.
// PUT /api/v1/stores/:id/stock/:productId/pricing
func (h *StoreHandler) UpdateStockPricing(c *fiber.Ctx) error {
	var in dto.UpdateStockPricingRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	out, err := h.uc.UpdateStockPricing(c.Params("id"), c.Params("productId"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

type recordSaleRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

// RecordSale decrements stock after a point-of-sale transaction.
// POST /api/v1/stores/:id/sales
func (h *StoreHandler) RecordSale(c *fiber.Ctx) error {
	var in recordSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	if in.ProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id is required"})
	}
	out, err := h.uc.RecordSale(c.Context(), c.Params("id"), in.ProductID, in.Quantity)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
