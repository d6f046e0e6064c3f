package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/centsible/centsible_backend/internal/apperrors"
	"github.com/centsible/centsible_backend/internal/core/domain"
	portsrepo "github.com/centsible/centsible_backend/internal/core/ports/repositories"
	"github.com/centsible/centsible_backend/internal/middleware"
)

type SettingService struct {
	settingRepo portsrepo.SettingRepositoryFacade
}

func NewSettingService(settingRepo portsrepo.SettingRepositoryFacade) *SettingService {
	return &SettingService{settingRepo: settingRepo}
}

// GetSetting returns the stored value, falling back to the key's default when
// the user has never written it. Unknown keys are ErrNotFound.
func (s *SettingService) GetSetting(ctx context.Context, userID, key string) (string, error) {
	def, known := domain.SettingDefaults[key]
	if !known {
		return "", apperrors.ErrNotFound
	}

	setting, err := s.settingRepo.GetSetting(ctx, userID, key)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return def, nil
		}
		return "", err
	}
	return setting.Value, nil
}

// ListSettings returns the full effective map: every known key's default,
// overlaid with the user's writes.
func (s *SettingService) ListSettings(ctx context.Context, userID string) (map[string]string, error) {
	effective := make(map[string]string, len(domain.SettingDefaults))
	for key, def := range domain.SettingDefaults {
		effective[key] = def
	}

	stored, err := s.settingRepo.ListSettings(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, setting := range stored {
		effective[setting.Key] = setting.Value
	}
	return effective, nil
}

func (s *SettingService) PutSetting(ctx context.Context, userID, key, value string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, known := domain.SettingDefaults[key]; !known {
		return apperrors.NewBadRequestError("unknown setting key: " + key)
	}
	if key == domain.SettingDueSoonDays {
		days, err := strconv.Atoi(value)
		if err != nil || days < 0 || days > domain.MaxDueSoonDays {
			return apperrors.NewBadRequestError(
				fmt.Sprintf("due_soon_days must be an integer between 0 and %d", domain.MaxDueSoonDays))
		}
	}

	setting := domain.Setting{
		UserID:        userID,
		Key:           key,
		Value:         value,
		LastUpdatedAt: time.Now(),
	}
	if err := s.settingRepo.UpsertSetting(ctx, setting); err != nil {
		logger.Error("Failed to upsert setting in repository", slog.String("error", err.Error()), slog.String("key", key))
		return err
	}
	return nil
}

// DueSoonDays resolves the reminder window for a user. Any read or parse
// problem falls back to the default so a bad setting never breaks the
// recurrence engine; values written before the cap existed are clamped to
// MaxDueSoonDays rather than dropped.
func (s *SettingService) DueSoonDays(ctx context.Context, userID string) int {
	value, err := s.GetSetting(ctx, userID, domain.SettingDueSoonDays)
	if err != nil {
		value = domain.SettingDefaults[domain.SettingDueSoonDays]
	}
	days, err := strconv.Atoi(value)
	if err != nil || days < 0 {
		days, _ = strconv.Atoi(domain.SettingDefaults[domain.SettingDueSoonDays])
	}
	if days > domain.MaxDueSoonDays {
		days = domain.MaxDueSoonDays
	}
	return days
}
