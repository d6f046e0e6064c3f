package mapping

import (
	"github.com/centsible/centsible_backend/internal/core/domain"
	"github.com/centsible/centsible_backend/internal/models"
)

// ToModelSetting converts a domain Setting to a model Setting
func ToModelSetting(d domain.Setting) models.Setting {
	return models.Setting{
		UserID:        d.UserID,
		Key:           d.Key,
		Value:         d.Value,
		LastUpdatedAt: d.LastUpdatedAt,
	}
}

// ToDomainSetting converts a model Setting to a domain Setting
func ToDomainSetting(m models.Setting) domain.Setting {
	return domain.Setting{
		UserID:        m.UserID,
		Key:           m.Key,
		Value:         m.Value,
		LastUpdatedAt: m.LastUpdatedAt,
	}
}

// ToDomainSettingSlice converts a slice of model Settings to domain Settings
func ToDomainSettingSlice(ms []models.Setting) []domain.Setting {
	ds := make([]domain.Setting, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainSetting(m)
	}
	return ds
}
