package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ezm-trade/trade-api/internal/application/catalog"
	"github.com/ezm-trade/trade-api/internal/application/dto"
)

// SupplierHandler handles suppliers and their offered products.
type SupplierHandler struct {
	uc *catalog.SupplierUseCase
}

// NewSupplierHandler builds the handler.
func NewSupplierHandler(uc *catalog.SupplierUseCase) *SupplierHandler {
	return &SupplierHandler{uc: uc}
}

// Create registers a supplier.
// POST /api/v1/suppliers
func (h *SupplierHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSupplierRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID returns one supplier.
// GET /api/v1/suppliers/:id
func (h *SupplierHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List returns all suppliers.
// GET /api/v1/suppliers
func (h *SupplierHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AddProduct adds one product to the supplier's offer list.
// POST /api/v1/suppliers/:id/products
func (h *SupplierHandler) AddProduct(c *fiber.Ctx) error {
	var in dto.CreateSupplierProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	out, err := h.uc.AddProduct(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListProducts returns the supplier's offer list.
// GET /api/v1/suppliers/:id/products
func (h *SupplierHandler) ListProducts(c *fiber.Ctx) error {
	out, err := h.uc.ListProducts(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

type updateSupplierQuantityRequest struct {
	Quantity int64 `json:"quantity"`
}

// UpdateProductQuantity sets the available quantity of one offered product.
// PUT /api/v1/suppliers/products/:id/quantity
func (h *SupplierHandler) UpdateProductQuantity(c *fiber.Ctx) error {
	var in updateSupplierQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	if err := h.uc.UpdateProductQuantity(c.Params("id"), in.Quantity); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
