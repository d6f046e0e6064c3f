package repositories

import (
	"context"

	"github.com/centsible/centsible_backend/internal/core/domain"
)

// SettingRepositoryFacade defines operations for the key/value settings store.
type SettingRepositoryFacade interface {
	// GetSetting retrieves a single setting. Returns apperrors.ErrNotFound when
	// the user has never written the key.
	GetSetting(ctx context.Context, userID string, key string) (*domain.Setting, error)

	// ListSettings retrieves all settings a user has written.
	ListSettings(ctx context.Context, userID string) ([]domain.Setting, error)

	// UpsertSetting writes a setting, replacing any previous value.
	UpsertSetting(ctx context.Context, setting domain.Setting) error
}
