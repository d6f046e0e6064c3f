package models

import "time"

// Setting is the database representation of a user preference row.
// Primary key is (user_id, key).
type Setting struct {
	UserID        string    `db:"user_id"`
	Key           string    `db:"key"`
	Value         string    `db:"value"`
	LastUpdatedAt time.Time `db:"last_updated_at"`
}
