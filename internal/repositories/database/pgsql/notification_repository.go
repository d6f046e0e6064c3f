package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/centsible/centsible_backend/internal/apperrors"
	"github.com/centsible/centsible_backend/internal/core/domain"
	portsrepo "github.com/centsible/centsible_backend/internal/core/ports/repositories"
	"github.com/centsible/centsible_backend/internal/models"
	"github.com/centsible/centsible_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxNotificationRepository struct {
	pool *pgxpool.Pool
}

// newPgxNotificationRepository creates a new repository for notifications.
func newPgxNotificationRepository(pool *pgxpool.Pool) portsrepo.NotificationRepositoryFacade {
	return &PgxNotificationRepository{pool: pool}
}

var _ portsrepo.NotificationRepositoryFacade = (*PgxNotificationRepository)(nil)

// SaveNotification inserts a notification record.
func (r *PgxNotificationRepository) SaveNotification(ctx context.Context, n domain.Notification) error {
	m := mapping.ToModelNotification(n)

	query := `
		INSERT INTO notifications (notification_id, user_id, title, body, category, ref_id, created_at, read_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.pool.Exec(ctx, query,
		m.NotificationID,
		m.UserID,
		m.Title,
		m.Body,
		m.Category,
		m.RefID,
		m.CreatedAt,
		m.ReadAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save notification %s: %w", m.NotificationID, err)
	}
	return nil
}

// ListNotificationsByUser retrieves a page of a user's notifications, newest first.
func (r *PgxNotificationRepository) ListNotificationsByUser(ctx context.Context, userID string, limit int, offset int) ([]domain.Notification, error) {
	query := `
		SELECT notification_id, user_id, title, body, category, ref_id, created_at, read_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var modelNs []models.Notification
	for rows.Next() {
		var m models.Notification
		if err := rows.Scan(&m.NotificationID, &m.UserID, &m.Title, &m.Body, &m.Category, &m.RefID, &m.CreatedAt, &m.ReadAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification row: %w", err)
		}
		modelNs = append(modelNs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading notification rows: %w", err)
	}

	return mapping.ToDomainNotificationSlice(modelNs), nil
}

// MarkNotificationRead stamps a notification as read by its owner.
// Already-read notifications keep their original read_at.
func (r *PgxNotificationRepository) MarkNotificationRead(ctx context.Context, userID string, notificationID string, now time.Time) error {
	query := `
		UPDATE notifications
		SET read_at = $3
		WHERE notification_id = $1 AND user_id = $2 AND read_at IS NULL;
	`
	tag, err := r.pool.Exec(ctx, query, notificationID, userID, now)
	if err != nil {
		return fmt.Errorf("failed to mark notification %s read: %w", notificationID, err)
	}
	if tag.RowsAffected() == 0 {
		// Either not found, not owned, or already read. Check existence so the
		// caller can tell the first two apart from the idempotent case.
		var exists bool
		if err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM notifications WHERE notification_id = $1 AND user_id = $2);`, notificationID, userID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check notification %s: %w", notificationID, err)
		}
		if !exists {
			return apperrors.ErrNotFound
		}
	}
	return nil
}
