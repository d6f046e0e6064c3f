package domain

import "time"

// NotificationCategory routes a notification to the right surface.
type NotificationCategory string

const (
	RecurringNotification NotificationCategory = "RECURRING"
	BudgetNotification    NotificationCategory = "BUDGET"
	GeneralNotification   NotificationCategory = "GENERAL"
)

// NotificationRequest is the structured message the reconciler, recurrence
// engine and pace alerter hand to the notifier. The core never renders UI;
// delivery beyond recording the row is an external concern.
type NotificationRequest struct {
	Title    string               `json:"title"`
	Body     string               `json:"body"`
	Category NotificationCategory `json:"category"`
	RefID    *int64               `json:"refID"` // Optional numeric id for client-side collapsing
}

// Notification is a recorded notification request.
type Notification struct {
	NotificationID string               `json:"notificationID"` // Primary key (UUID)
	UserID         string               `json:"userID"`         // FK -> users.user_id (Not Null)
	Title          string               `json:"title"`
	Body           string               `json:"body"`
	Category       NotificationCategory `json:"category"`
	RefID          *int64               `json:"refID"`
	CreatedAt      time.Time            `json:"createdAt"`
	ReadAt         *time.Time           `json:"readAt"`
}
