package models

import "time"

// Notification is the database representation of an emitted notification.
type Notification struct {
	NotificationID string     `db:"notification_id"`
	UserID         string     `db:"user_id"`
	Title          string     `db:"title"`
	Body           string     `db:"body"`
	Category       string     `db:"category"`
	RefID          *int64     `db:"ref_id"` // Nullable
	CreatedAt      time.Time  `db:"created_at"`
	ReadAt         *time.Time `db:"read_at"` // Nullable
}
