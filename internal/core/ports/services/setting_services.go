package services

import "context"

type SettingSvcFacade interface {
	// GetSetting returns the stored value or the default for unwritten keys.
	GetSetting(ctx context.Context, userID, key string) (string, error)
	// ListSettings returns defaults overlaid with the user's writes.
	ListSettings(ctx context.Context, userID string) (map[string]string, error)
	PutSetting(ctx context.Context, userID, key, value string) error

	// DueSoonDays resolves the reminder window used by the recurrence engine.
	DueSoonDays(ctx context.Context, userID string) int
}
