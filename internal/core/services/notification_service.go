package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/centsible/centsible_backend/internal/core/domain"
	portsrepo "github.com/centsible/centsible_backend/internal/core/ports/repositories"
	"github.com/centsible/centsible_backend/internal/middleware"
	"github.com/google/uuid"
)

// NotificationService records notification requests as in-app notifications.
// Push or email delivery would hang off the same Notify entry point.
type NotificationService struct {
	notificationRepo portsrepo.NotificationRepositoryFacade
}

func NewNotificationService(notificationRepo portsrepo.NotificationRepositoryFacade) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo}
}

func (s *NotificationService) Notify(ctx context.Context, userID string, req domain.NotificationRequest) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	n := domain.Notification{
		NotificationID: uuid.NewString(),
		UserID:         userID,
		Title:          req.Title,
		Body:           req.Body,
		Category:       req.Category,
		RefID:          req.RefID,
		CreatedAt:      time.Now(),
	}

	if err := s.notificationRepo.SaveNotification(ctx, n); err != nil {
		logger.Error("Failed to save notification in repository", slog.String("error", err.Error()), slog.String("notification_id", n.NotificationID))
		return err
	}
	return nil
}

func (s *NotificationService) ListNotifications(ctx context.Context, userID string, limit, offset int) ([]domain.Notification, error) {
	notifications, err := s.notificationRepo.ListNotificationsByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	if notifications == nil {
		return []domain.Notification{}, nil
	}
	return notifications, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID string) error {
	return s.notificationRepo.MarkNotificationRead(ctx, userID, notificationID, time.Now())
}
