package insight

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/community-engine/internal/domain"
)

// ListAdminNotifications returns up to limit notifications, newest first.
// limit <= 0 falls back to the retention size.
func (s *Service) ListAdminNotifications(ctx context.Context, limit int) ([]domain.AdminNotification, error) {
	if limit <= 0 || (s.opts.NotificationLimit > 0 && limit > s.opts.NotificationLimit) {
		limit = s.opts.NotificationLimit
	}
	list, err := s.notifications.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return list, nil
}

// MarkNotificationRead flips the read flag of one notification.
func (s *Service) MarkNotificationRead(ctx context.Context, id uuid.UUID) error {
	if err := s.notifications.MarkRead(ctx, id); err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	s.log.InfoContext(ctx, "notification read", slog.String("notification_id", id.String()))
	return nil
}
