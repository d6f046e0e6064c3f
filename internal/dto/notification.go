package dto

import (
	"time"

	"github.com/centsible/centsible_backend/internal/core/domain"
)

// NotificationResponse defines the data returned for a notification.
type NotificationResponse struct {
	NotificationID string                      `json:"notificationID"`
	Title          string                      `json:"title"`
	Body           string                      `json:"body"`
	Category       domain.NotificationCategory `json:"category"`
	RefID          *int64                      `json:"refID,omitempty"`
	CreatedAt      time.Time                   `json:"createdAt"`
	ReadAt         *time.Time                  `json:"readAt,omitempty"`
}

// ToNotificationResponse converts a domain.Notification to a response DTO
func ToNotificationResponse(n *domain.Notification) NotificationResponse {
	return NotificationResponse{
		NotificationID: n.NotificationID,
		Title:          n.Title,
		Body:           n.Body,
		Category:       n.Category,
		RefID:          n.RefID,
		CreatedAt:      n.CreatedAt,
		ReadAt:         n.ReadAt,
	}
}

// ToListNotificationResponse converts a slice of notifications to DTOs
func ToListNotificationResponse(ns []domain.Notification) []NotificationResponse {
	res := make([]NotificationResponse, len(ns))
	for i, n := range ns {
		res[i] = ToNotificationResponse(&n)
	}
	return res
}

// ListNotificationsParams defines query parameters for listing notifications.
type ListNotificationsParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}
