package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/centsible/centsible_backend/internal/apperrors"
	"github.com/centsible/centsible_backend/internal/core/domain"
	portsrepo "github.com/centsible/centsible_backend/internal/core/ports/repositories"
	"github.com/centsible/centsible_backend/internal/models"
	"github.com/centsible/centsible_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxSettingRepository struct {
	pool *pgxpool.Pool
}

// newPgxSettingRepository creates a new repository for user settings.
func newPgxSettingRepository(pool *pgxpool.Pool) portsrepo.SettingRepositoryFacade {
	return &PgxSettingRepository{pool: pool}
}

var _ portsrepo.SettingRepositoryFacade = (*PgxSettingRepository)(nil)

// GetSetting retrieves one setting row. ErrNotFound means the user has never
// written this key; the service layer supplies the default.
func (r *PgxSettingRepository) GetSetting(ctx context.Context, userID string, key string) (*domain.Setting, error) {
	query := `SELECT user_id, key, value, last_updated_at FROM settings WHERE user_id = $1 AND key = $2;`

	var m models.Setting
	err := r.pool.QueryRow(ctx, query, userID, key).Scan(&m.UserID, &m.Key, &m.Value, &m.LastUpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get setting %s: %w", key, err)
	}

	setting := mapping.ToDomainSetting(m)
	return &setting, nil
}

// ListSettings retrieves all settings a user has written.
func (r *PgxSettingRepository) ListSettings(ctx context.Context, userID string) ([]domain.Setting, error) {
	query := `SELECT user_id, key, value, last_updated_at FROM settings WHERE user_id = $1;`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}
	defer rows.Close()

	var modelSettings []models.Setting
	for rows.Next() {
		var m models.Setting
		if err := rows.Scan(&m.UserID, &m.Key, &m.Value, &m.LastUpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan setting row: %w", err)
		}
		modelSettings = append(modelSettings, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading setting rows: %w", err)
	}

	return mapping.ToDomainSettingSlice(modelSettings), nil
}

// UpsertSetting writes a setting, replacing any previous value.
func (r *PgxSettingRepository) UpsertSetting(ctx context.Context, setting domain.Setting) error {
	m := mapping.ToModelSetting(setting)

	query := `
		INSERT INTO settings (user_id, key, value, last_updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, key) DO UPDATE
		SET value = EXCLUDED.value, last_updated_at = EXCLUDED.last_updated_at;
	`
	if _, err := r.pool.Exec(ctx, query, m.UserID, m.Key, m.Value, m.LastUpdatedAt); err != nil {
		return fmt.Errorf("failed to upsert setting %s: %w", m.Key, err)
	}
	return nil
}
