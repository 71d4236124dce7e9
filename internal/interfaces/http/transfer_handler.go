package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ezm-trade/trade-api/internal/application/dto"
	"github.com/ezm-trade/trade-api/internal/application/requests"
)

// TransferHandler handles store-to-store transfer requests.
type TransferHandler struct {
	uc *requests.TransferUseCase
}

// NewTransferHandler builds the handler.
func NewTransferHandler(uc *requests.TransferUseCase) *TransferHandler {
	return &TransferHandler{uc: uc}
}

// Create opens a transfer request toward the caller's store.
// POST /api/v1/transfer-requests
func (h *TransferHandler) Create(c *fiber.Ctx) error {
	storeID := GetStoreID(c)
	if storeID == "" {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "a store-bound account is required"})
	}
	var in dto.CreateTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	out, err := h.uc.Create(c.Context(), GetUserID(c), storeID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Approve completes the transfer: stock moves between stores atomically.
// POST /api/v1/transfer-requests/:id/approve
func (h *TransferHandler) Approve(c *fiber.Ctx) error {
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

// Decline rejects a pending transfer.
// POST /api/v1/transfer-requests/:id/decline
func (h *TransferHandler) Decline(c *fiber.Ctx) error {
	var in dto.ReviewRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	out, err := h.uc.Decline(c.Context(), GetUserID(c), c.Params("id"), in.Notes)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID returns one transfer request.
// GET /api/v1/transfer-requests/:id
func (h *TransferHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List returns transfer requests. Store-bound roles see requests touching
// their own store only.
// GET /api/v1/transfer-requests
func (h *TransferHandler) List(c *fiber.Ctx) error {
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
