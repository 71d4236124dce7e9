package notifications

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ezm-trade/trade-api/internal/application/dto"
	"github.com/ezm-trade/trade-api/internal/domain/entity"
	"github.com/ezm-trade/trade-api/internal/domain/repository"
	"github.com/ezm-trade/trade-api/pkg/logger"
)

// Mailer sends plain-text email. Implementations must be safe for
// concurrent use; callers treat delivery as best effort.
type Mailer interface {
	Send(to []string, subject, body string) error
}

// CountCache caches small integers (unread counts) with a TTL. A nil or
// disabled cache is expressed by a no-op implementation.
type CountCache interface {
	GetInt(ctx context.Context, key string) (int, bool)
	SetInt(ctx context.Context, key string, value int, ttl time.Duration)
	Delete(ctx context.Context, key string)
}

const unreadCountTTL = 30 * time.Second

// Service writes in-app notifications and mirrors them to email when the
// recipient has an address. Failures are logged and swallowed so workflow
// transactions never fail on notification delivery.
type Service struct {
	notifRepo repository.NotificationRepository
	userRepo  repository.UserRepository
	mailer    Mailer
	cache     CountCache
	log       *logger.Logger
}

// NewService builds the notification service. mailer may be nil when SMTP
// is not configured.
func NewService(
	notifRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
	mailer Mailer,
	cache CountCache,
	log *logger.Logger,
) *Service {
	return &Service{notifRepo: notifRepo, userRepo: userRepo, mailer: mailer, cache: cache, log: log}
}

// Notify writes one notification for a single user.
func (s *Service) Notify(ctx context.Context, userID, kind, title, message string) {
	n := &entity.Notification{
		ID:        uuid.New().String(),
		UserID:    userID,
		Type:      kind,
		Title:     title,
		Message:   message,
		CreatedAt: time.Now(),
	}
	if err := s.notifRepo.Create(n); err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Str("type", kind).Msg("notification write failed")
		return
	}
	s.cache.Delete(ctx, unreadKey(userID))

	if s.mailer == nil {
		return
	}
	user, err := s.userRepo.GetByID(userID)
	if err != nil || user == nil || user.Email == "" {
		return
	}
	if err := s.mailer.Send([]string{user.Email}, title, message); err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("notification email failed")
	}
}

// NotifyRole fans a notification out to every user holding the role.
func (s *Service) NotifyRole(ctx context.Context, role, kind, title, message string) {
	users, err := s.userRepo.ListByRole(role)
	if err != nil {
		s.log.Error().Err(err).Str("role", role).Msg("role fan-out lookup failed")
		return
	}
	for _, u := range users {
		s.Notify(ctx, u.ID, kind, title, message)
	}
}

// List returns a user's notifications, newest first.
func (s *Service) List(userID string, limit, offset int) ([]dto.NotificationResponse, error) {
	list, err := s.notifRepo.ListByUser(userID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.NotificationResponse, 0, len(list))
	for _, n := range list {
		out = append(out, dto.NotificationResponse{
			ID:        n.ID,
			Type:      n.Type,
			Title:     n.Title,
			Message:   n.Message,
			Read:      n.Read,
			CreatedAt: n.CreatedAt,
		})
	}
	return out, nil
}

// UnreadCount returns the number of unread notifications, served from the
// cache when fresh.
func (s *Service) UnreadCount(ctx context.Context, userID string) (int, error) {
	if count, ok := s.cache.GetInt(ctx, unreadKey(userID)); ok {
		return count, nil
	}
	count, err := s.notifRepo.CountUnread(userID)
	if err != nil {
		return 0, err
	}
	s.cache.SetInt(ctx, unreadKey(userID), count, unreadCountTTL)
	return count, nil
}

// MarkRead marks one notification read for its owner.
func (s *Service) MarkRead(ctx context.Context, id, userID string) error {
	if err := s.notifRepo.MarkRead(id, userID); err != nil {
		return err
	}
	s.cache.Delete(ctx, unreadKey(userID))
	return nil
}

// MarkAllRead marks every notification of the user read.
func (s *Service) MarkAllRead(ctx context.Context, userID string) error {
	if err := s.notifRepo.MarkAllRead(userID); err != nil {
		return err
	}
	s.cache.Delete(ctx, unreadKey(userID))
	return nil
}

func unreadKey(userID string) string {
	return "notif:unread:" + userID
}

// NopCache satisfies CountCache when Redis is not configured.
type NopCache struct{}

func (NopCache) GetInt(context.Context, string) (int, bool)         { return 0, false }
func (NopCache) SetInt(context.Context, string, int, time.Duration) {}
func (NopCache) Delete(context.Context, string)                     {}
