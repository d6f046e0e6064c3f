package mapping

import (
	"github.com/centsible/centsible_backend/internal/core/domain"
	"github.com/centsible/centsible_backend/internal/models"
)

// ToModelNotification converts a domain Notification to a model Notification
func ToModelNotification(d domain.Notification) models.Notification {
	return models.Notification{
		NotificationID: d.NotificationID,
		UserID:         d.UserID,
		Title:          d.Title,
		Body:           d.Body,
		Category:       string(d.Category),
		RefID:          d.RefID,
		CreatedAt:      d.CreatedAt,
		ReadAt:         d.ReadAt,
	}
}

// ToDomainNotification converts a model Notification to a domain Notification
func ToDomainNotification(m models.Notification) domain.Notification {
	return domain.Notification{
		NotificationID: m.NotificationID,
		UserID:         m.UserID,
		Title:          m.Title,
		Body:           m.Body,
		Category:       domain.NotificationCategory(m.Category),
		RefID:          m.RefID,
		CreatedAt:      m.CreatedAt,
		ReadAt:         m.ReadAt,
	}
}

// ToDomainNotificationSlice converts a slice of model Notifications to domain Notifications
func ToDomainNotificationSlice(ms []models.Notification) []domain.Notification {
	ds := make([]domain.Notification, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainNotification(m)
	}
	return ds
}
