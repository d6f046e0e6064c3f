package services

import (
	"context"

	"github.com/centsible/centsible_backend/internal/core/domain"
)

// Notifier is the outbound alert port used by the recurrence engine and the
// budget pace evaluator. The default implementation persists in-app
// notifications; push delivery would sit behind the same port.
type Notifier interface {
	Notify(ctx context.Context, userID string, req domain.NotificationRequest) error
}

type NotificationSvcFacade interface {
	Notifier
	ListNotifications(ctx context.Context, userID string, limit, offset int) ([]domain.Notification, error)
	MarkRead(ctx context.Context, userID, notificationID string) error
}
