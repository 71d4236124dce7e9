package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ezm-trade/trade-api/internal/application/dto"
	"github.com/ezm-trade/trade-api/internal/application/orders"
)

// OrderHandler handles purchase orders against suppliers.
type OrderHandler struct {
	uc *orders.UseCase
}

// NewOrderHandler builds the handler.
func NewOrderHandler(uc *orders.UseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// Create godoc
// @Summary      Create a purchase order
// @Tags         purchase-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePurchaseOrderRequest  true  "Order data"
// @Success      201   {object}  dto.PurchaseOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/v1/purchase-orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePurchaseOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	out, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// MarkInTransit records that the supplier dispatched the order.
// POST /api/v1/purchase-orders/:id/in-transit
func (h *OrderHandler) MarkInTransit(c *fiber.Ctx) error {
	out, err := h.uc.MarkInTransit(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ConfirmDelivery credits the warehouse with every order line atomically.
// POST /api/v1/purchase-orders/:id/deliver
func (h *OrderHandler) ConfirmDelivery(c *fiber.Ctx) error {
	out, err := h.uc.ConfirmDelivery(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Cancel aborts a pending order.
// POST /api/v1/purchase-orders/:id/cancel
func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	out, err := h.uc.Cancel(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID returns one order with its lines.
// GET /api/v1/purchase-orders/:id
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List returns orders, optionally filtered by supplier.
// GET /api/v1/purchase-orders
func (h *OrderHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Query("supplier_id"), pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
