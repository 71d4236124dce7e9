package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ezm-trade/trade-api/internal/application/catalog"
)

// DropdownHandler serves the cached product option lists used by the request
// creation forms.
type DropdownHandler struct {
	uc *catalog.DropdownUseCase
}

// NewDropdownHandler builds the handler.
func NewDropdownHandler(uc *catalog.DropdownUseCase) *DropdownHandler {
	return &DropdownHandler{uc: uc}
}

// RestockOptions returns the full product catalog.
// GET /api/v1/dropdowns/restock-products
func (h *DropdownHandler) RestockOptions(c *fiber.Ctx) error {
	out, err := h.uc.RestockOptions(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// TransferOptions returns products stocked in other stores.
// GET /api/v1/dropdowns/transfer-products
func (h *DropdownHandler) TransferOptions(c *fiber.Ctx) error {
	out, err := h.uc.TransferOptions(c.Context(), GetStoreID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// WarehouseOptions returns warehouse products with on-hand quantities.
// GET /api/v1/dropdowns/warehouse-products
func (h *DropdownHandler) WarehouseOptions(c *fiber.Ctx) error {
	out, err := h.uc.WarehouseOptions(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
