package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/centsible/centsible_backend/internal/apperrors"
	"github.com/centsible/centsible_backend/internal/core/domain"
	portsrepo "github.com/centsible/centsible_backend/internal/core/ports/repositories"
	"github.com/centsible/centsible_backend/internal/models"
	"github.com/centsible/centsible_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const ruleColumns = `rule_id, user_id, name, amount, account_id, category_id, next_due, frequency, is_subscription, is_active, kind, created_at, created_by, last_updated_at, last_updated_by`

type PgxRecurringRepository struct {
	pool *pgxpool.Pool
}

// newPgxRecurringRepository creates a new repository for recurring rule data.
func newPgxRecurringRepository(pool *pgxpool.Pool) portsrepo.RecurringRepositoryFacade {
	return &PgxRecurringRepository{pool: pool}
}

var _ portsrepo.RecurringRepositoryFacade = (*PgxRecurringRepository)(nil)

func scanRule(row pgx.Row) (models.RecurringRule, error) {
	var m models.RecurringRule
	err := row.Scan(
		&m.RuleID,
		&m.UserID,
		&m.Name,
		&m.Amount,
		&m.AccountID,
		&m.CategoryID,
		&m.NextDue,
		&m.Frequency,
		&m.IsSubscription,
		&m.IsActive,
		&m.Kind,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxRecurringRepository) listRules(ctx context.Context, query string, args ...interface{}) ([]domain.RecurringRule, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list recurring rules: %w", err)
	}
	defer rows.Close()

	var modelRules []models.RecurringRule
	for rows.Next() {
		m, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recurring rule row: %w", err)
		}
		modelRules = append(modelRules, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading recurring rule rows: %w", err)
	}

	return mapping.ToDomainRecurringRuleSlice(modelRules), nil
}

// SaveRule inserts a new recurring rule.
func (r *PgxRecurringRepository) SaveRule(ctx context.Context, rule domain.RecurringRule) error {
	m := mapping.ToModelRecurringRule(rule)

	query := `
		INSERT INTO recurring_rules (` + ruleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.pool.Exec(ctx, query,
		m.RuleID,
		m.UserID,
		m.Name,
		m.Amount,
		m.AccountID,
		m.CategoryID,
		m.NextDue,
		m.Frequency,
		m.IsSubscription,
		m.IsActive,
		m.Kind,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: rule with ID %s already exists", apperrors.ErrDuplicate, m.RuleID)
		}
		return fmt.Errorf("failed to save recurring rule %s: %w", m.RuleID, err)
	}
	return nil
}

// FindRuleByID retrieves a rule by its ID.
func (r *PgxRecurringRepository) FindRuleByID(ctx context.Context, ruleID string) (*domain.RecurringRule, error) {
	query := `SELECT ` + ruleColumns + ` FROM recurring_rules WHERE rule_id = $1;`

	m, err := scanRule(r.pool.QueryRow(ctx, query, ruleID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find recurring rule %s: %w", ruleID, err)
	}

	rule := mapping.ToDomainRecurringRule(m)
	return &rule, nil
}

// ListRules retrieves all rules of a user, soonest due first.
func (r *PgxRecurringRepository) ListRules(ctx context.Context, userID string) ([]domain.RecurringRule, error) {
	query := `SELECT ` + ruleColumns + ` FROM recurring_rules WHERE user_id = $1 ORDER BY next_due ASC;`
	return r.listRules(ctx, query, userID)
}

// ListDueRules retrieves every active rule with next_due <= asOf, across all
// users, oldest due first so the furthest-behind rules are handled first.
func (r *PgxRecurringRepository) ListDueRules(ctx context.Context, asOf time.Time) ([]domain.RecurringRule, error) {
	query := `
		SELECT ` + ruleColumns + `
		FROM recurring_rules
		WHERE is_active = TRUE AND next_due <= $1
		ORDER BY next_due ASC;
	`
	return r.listRules(ctx, query, asOf)
}

// ListRulesDueBetween retrieves every active rule with after < next_due <= until.
func (r *PgxRecurringRepository) ListRulesDueBetween(ctx context.Context, after time.Time, until time.Time) ([]domain.RecurringRule, error) {
	query := `
		SELECT ` + ruleColumns + `
		FROM recurring_rules
		WHERE is_active = TRUE AND next_due > $1 AND next_due <= $2
		ORDER BY next_due ASC;
	`
	return r.listRules(ctx, query, after, until)
}

// UpdateRule rewrites a rule's user-editable columns. next_due is deliberately
// absent; only UpdateRuleNextDue moves it.
func (r *PgxRecurringRepository) UpdateRule(ctx context.Context, rule domain.RecurringRule) error {
	m := mapping.ToModelRecurringRule(rule)

	query := `
		UPDATE recurring_rules
		SET name = $2, amount = $3, account_id = $4, category_id = $5, frequency = $6, is_subscription = $7, is_active = $8, last_updated_at = $9, last_updated_by = $10
		WHERE rule_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		m.RuleID,
		m.Name,
		m.Amount,
		m.AccountID,
		m.CategoryID,
		m.Frequency,
		m.IsSubscription,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update recurring rule %s: %w", m.RuleID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateRuleNextDue advances a rule's due date.
func (r *PgxRecurringRepository) UpdateRuleNextDue(ctx context.Context, ruleID string, nextDue time.Time, now time.Time) error {
	query := `
		UPDATE recurring_rules
		SET next_due = $2, last_updated_at = $3
		WHERE rule_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query, ruleID, nextDue, now)
	if err != nil {
		return fmt.Errorf("failed to advance due date of rule %s: %w", ruleID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteRule removes a rule.
func (r *PgxRecurringRepository) DeleteRule(ctx context.Context, ruleID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM recurring_rules WHERE rule_id = $1;`, ruleID)
	if err != nil {
		return fmt.Errorf("failed to delete recurring rule %s: %w", ruleID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
