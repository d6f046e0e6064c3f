package repositories

import (
	"context"
	"time"

	"github.com/centsible/centsible_backend/internal/core/domain"
)

// NotificationRepositoryFacade defines operations for recorded notifications.
type NotificationRepositoryFacade interface {
	// SaveNotification persists a notification record.
	SaveNotification(ctx context.Context, n domain.Notification) error

	// ListNotificationsByUser retrieves a paginated list of a user's
	// notifications, newest first.
	ListNotificationsByUser(ctx context.Context, userID string, limit int, offset int) ([]domain.Notification, error)

	// MarkNotificationRead stamps a notification as read by its owner.
	MarkNotificationRead(ctx context.Context, userID string, notificationID string, now time.Time) error
}
