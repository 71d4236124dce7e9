package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ezm-trade/trade-api/internal/application/notifications"
)

// NotificationHandler serves the caller's in-app notifications.
type NotificationHandler struct {
	svc *notifications.Service
}

// NewNotificationHandler builds the handler.
func NewNotificationHandler(svc *notifications.Service) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

// List returns the caller's notifications, newest first.
// GET /api/v1/notifications
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	page := pageFromQuery(c)
	out, err := h.svc.List(GetUserID(c), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UnreadCount returns the caller's unread notification count.
// GET /api/v1/notifications/unread-count
func (h *NotificationHandler) UnreadCount(c *fiber.Ctx) error {
	count, err := h.svc.UnreadCount(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"count": count})
}

// MarkRead marks one of the caller's notifications read.
// POST /api/v1/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	if err := h.svc.MarkRead(c.Context(), c.Params("id"), GetUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// MarkAllRead marks all of the caller's notifications read.
// POST /api/v1/notifications/read-all
func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	if err := h.svc.MarkAllRead(c.Context(), GetUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
