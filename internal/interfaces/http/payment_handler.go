package http

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"github.com/ezm-trade/trade-api/internal/application/dto"
	"github.com/ezm-trade/trade-api/internal/application/payments"
)

// PaymentHandler handles Chapa checkout initialization and the gateway
// webhook.
type PaymentHandler struct {
	uc *payments.UseCase
}

// NewPaymentHandler builds the handler.
func NewPaymentHandler(uc *payments.UseCase) *PaymentHandler {
	return &PaymentHandler{uc: uc}
}

// Initialize godoc
// @Summary      Initialize a Chapa payment
// @Tags         payments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.InitializePaymentRequest  true  "Payment data"
// @Success      201   {object}  dto.InitializePaymentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/v1/payments/initialize [post]
func (h *PaymentHandler) Initialize(c *fiber.Ctx) error {
	var in dto.InitializePaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	out, err := h.uc.Initialize(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Webhook receives the Chapa settlement callback. The raw body is needed for
// signature verification, so the payload is decoded by hand. Chapa retries
// delivery and may probe with GET or OPTIONS.
// POST /api/v1/payments/webhook
func (h *PaymentHandler) Webhook(c *fiber.Ctx) error {
	if c.Method() != fiber.MethodPost {
		return c.SendStatus(fiber.StatusOK)
	}
	body := c.Body()
	signature := c.Get("Chapa-Signature")
	if signature == "" {
		signature = c.Get("X-Chapa-Signature")
	}

	var payload dto.ChapaWebhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid payload"})
	}
	// Chapa only distinguishes 200 from everything else when deciding whether
	// to redeliver, so every rejection answers 400 regardless of cause.
	if err := h.uc.HandleWebhook(c.Context(), body, signature, payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "WEBHOOK_REJECTED", Message: "webhook rejected"})
	}
	return c.SendStatus(fiber.StatusOK)
}

// GetByTxRef returns one payment.
// GET /api/v1/payments/:txRef
func (h *PaymentHandler) GetByTxRef(c *fiber.Ctx) error {
	out, err := h.uc.GetByTxRef(c.Params("txRef"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List returns payments, newest first.
// GET /api/v1/payments
func (h *PaymentHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
