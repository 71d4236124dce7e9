package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ezm-trade/trade-api/internal/application/dto"
	"github.com/ezm-trade/trade-api/internal/application/requests"
)

// RestockHandler handles warehouse-to-store restock requests.
type RestockHandler struct {
	uc *requests.RestockUseCase
}

// NewRestockHandler builds the handler.
func NewRestockHandler(uc *requests.RestockUseCase) *RestockHandler {
	return &RestockHandler{uc: uc}
}

// Create godoc
// @Summary      Create a restock request
// @Tags         restock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRestockRequest  true  "Request data"
// @Success      201   {object}  dto.RestockRequestResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/v1/restock-requests [post]
func (h *RestockHandler) Create(c *fiber.Ctx) error {
	storeID := GetStoreID(c)
	if storeID == "" {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "a store-bound account is required"})
	}
	var in dto.CreateRestockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	out, err := h.uc.Create(c.Context(), GetUserID(c), storeID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Approve fulfills the request: warehouse stock moves to the store atomically.
// POST /api/v1/restock-requests/:id/approve
func (h *RestockHandler) Approve(c *fiber.Ctx) error {
	var in dto.ReviewRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	out, err := h.uc.Approve(c.Context(), GetUserID(c), c.Params("id"), in.ApprovedQuantity, in.Notes)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Reject declines a pending request.
// POST /api/v1/restock-requests/:id/reject
func (h *RestockHandler) Reject(c *fiber.Ctx) error {
	var in dto.ReviewRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	out, err := h.uc.Reject(c.Context(), GetUserID(c), c.Params("id"), in.Notes)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Ship records the physical dispatch of a fulfilled request.
// POST /api/v1/restock-requests/:id/ship
func (h *RestockHandler) Ship(c *fiber.Ctx) error {
	var in dto.ShipRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	out, err := h.uc.Ship(c.Context(), GetUserID(c), c.Params("id"), in.ShippedQuantity, in.TrackingNumber)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Receive confirms arrival at the store, flagging quantity discrepancies.
// POST /api/v1/restock-requests/:id/receive
func (h *RestockHandler) Receive(c *fiber.Ctx) error {
	var in dto.ReceiveRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	out, err := h.uc.Receive(c.Context(), GetUserID(c), GetStoreID(c), c.Params("id"), in.ReceivedQuantity, in.Notes)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID returns one restock request.
// GET /api/v1/restock-requests/:id
func (h *RestockHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List returns restock requests, optionally filtered by store and status.
// Store-bound roles only ever see their own store.
// GET /api/v1/restock-requests
func (h *RestockHandler) List(c *fiber.Ctx) error {
	storeID := c.Query("store_id")
	if own := GetStoreID(c); own != "" {
		storeID = own
	}
	page := pageFromQuery(c)
	out, err := h.uc.List(storeID, c.Query("status"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
