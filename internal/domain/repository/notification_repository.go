package repository

import "github.com/ezm-trade/trade-api/internal/domain/entity"

// NotificationRepository defines the port for in-app notifications.
type NotificationRepository interface {
	Create(n *entity.Notification) error
	ListByUser(userID string, limit, offset int) ([]*entity.Notification, error)
	CountUnread(userID string) (int, error)
	MarkRead(id, userID string) error
	MarkAllRead(userID string) error
}
