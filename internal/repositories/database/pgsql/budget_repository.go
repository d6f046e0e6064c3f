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
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const budgetColumns = `budget_id, user_id, month, year, note, created_at, created_by, last_updated_at, last_updated_by`
const budgetCategoryColumns = `budget_category_id, budget_id, category_id, planned, reminder_enabled, created_at, created_by, last_updated_at, last_updated_by`

type PgxBudgetRepository struct {
	pool *pgxpool.Pool
}

// newPgxBudgetRepository creates a new repository for budget data.
func newPgxBudgetRepository(pool *pgxpool.Pool) portsrepo.BudgetRepositoryFacade {
	return &PgxBudgetRepository{pool: pool}
}

var _ portsrepo.BudgetRepositoryFacade = (*PgxBudgetRepository)(nil)

func scanBudget(row pgx.Row) (models.Budget, error) {
	var m models.Budget
	err := row.Scan(
		&m.BudgetID,
		&m.UserID,
		&m.Month,
		&m.Year,
		&m.Note,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanBudgetCategory(row pgx.Row) (models.BudgetCategory, error) {
	var m models.BudgetCategory
	err := row.Scan(
		&m.BudgetCategoryID,
		&m.BudgetID,
		&m.CategoryID,
		&m.Planned,
		&m.ReminderEnabled,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveBudget inserts a new budget. The (user_id, month, year) unique
// constraint surfaces as ErrDuplicate.
func (r *PgxBudgetRepository) SaveBudget(ctx context.Context, budget domain.Budget) error {
	m := mapping.ToModelBudget(budget)

	query := `
		INSERT INTO budgets (` + budgetColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.pool.Exec(ctx, query,
		m.BudgetID,
		m.UserID,
		m.Month,
		m.Year,
		m.Note,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: budget for %d/%d already exists", apperrors.ErrDuplicate, m.Month, m.Year)
		}
		return fmt.Errorf("failed to save budget %s: %w", m.BudgetID, err)
	}
	return nil
}

// FindBudgetByID retrieves a budget by its ID.
func (r *PgxBudgetRepository) FindBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE budget_id = $1;`

	m, err := scanBudget(r.pool.QueryRow(ctx, query, budgetID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find budget %s: %w", budgetID, err)
	}

	budget := mapping.ToDomainBudget(m)
	return &budget, nil
}

// FindBudgetByPeriod retrieves a user's budget for a month/year.
func (r *PgxBudgetRepository) FindBudgetByPeriod(ctx context.Context, userID string, month int, year int) (*domain.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE user_id = $1 AND month = $2 AND year = $3;`

	m, err := scanBudget(r.pool.QueryRow(ctx, query, userID, month, year))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find budget for %d/%d: %w", month, year, err)
	}

	budget := mapping.ToDomainBudget(m)
	return &budget, nil
}

func (r *PgxBudgetRepository) listBudgets(ctx context.Context, query string, args ...interface{}) ([]domain.Budget, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	defer rows.Close()

	var modelBudgets []models.Budget
	for rows.Next() {
		m, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan budget row: %w", err)
		}
		modelBudgets = append(modelBudgets, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading budget rows: %w", err)
	}

	budgets := make([]domain.Budget, len(modelBudgets))
	for i, m := range modelBudgets {
		budgets[i] = mapping.ToDomainBudget(m)
	}
	return budgets, nil
}

// ListBudgets retrieves a page of a user's budgets, newest period first.
func (r *PgxBudgetRepository) ListBudgets(ctx context.Context, userID string, limit int, offset int) ([]domain.Budget, error) {
	query := `
		SELECT ` + budgetColumns + `
		FROM budgets
		WHERE user_id = $1
		ORDER BY year DESC, month DESC
		LIMIT $2 OFFSET $3;
	`
	return r.listBudgets(ctx, query, userID, limit, offset)
}

// ListBudgetsForPeriod retrieves every budget for a month/year across all users.
func (r *PgxBudgetRepository) ListBudgetsForPeriod(ctx context.Context, month int, year int) ([]domain.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE month = $1 AND year = $2;`
	return r.listBudgets(ctx, query, month, year)
}

// UpdateBudget rewrites a budget's note.
func (r *PgxBudgetRepository) UpdateBudget(ctx context.Context, budget domain.Budget) error {
	m := mapping.ToModelBudget(budget)

	query := `
		UPDATE budgets
		SET note = $2, last_updated_at = $3, last_updated_by = $4
		WHERE budget_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query, m.BudgetID, m.Note, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return fmt.Errorf("failed to update budget %s: %w", m.BudgetID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteBudget removes a budget. Category links cascade.
func (r *PgxBudgetRepository) DeleteBudget(ctx context.Context, budgetID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM budgets WHERE budget_id = $1;`, budgetID)
	if err != nil {
		return fmt.Errorf("failed to delete budget %s: %w", budgetID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindBudgetCategoryByID retrieves a budget/category link by its ID.
func (r *PgxBudgetRepository) FindBudgetCategoryByID(ctx context.Context, budgetCategoryID string) (*domain.BudgetCategory, error) {
	query := `SELECT ` + budgetCategoryColumns + ` FROM budget_categories WHERE budget_category_id = $1;`

	m, err := scanBudgetCategory(r.pool.QueryRow(ctx, query, budgetCategoryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find budget category %s: %w", budgetCategoryID, err)
	}

	link := mapping.ToDomainBudgetCategory(m)
	return &link, nil
}

// ListBudgetCategories retrieves all category links of a budget.
func (r *PgxBudgetRepository) ListBudgetCategories(ctx context.Context, budgetID string) ([]domain.BudgetCategory, error) {
	query := `SELECT ` + budgetCategoryColumns + ` FROM budget_categories WHERE budget_id = $1 ORDER BY created_at ASC;`

	rows, err := r.pool.Query(ctx, query, budgetID)
	if err != nil {
		return nil, fmt.Errorf("failed to list budget categories: %w", err)
	}
	defer rows.Close()

	var links []domain.BudgetCategory
	for rows.Next() {
		m, err := scanBudgetCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan budget category row: %w", err)
		}
		links = append(links, mapping.ToDomainBudgetCategory(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading budget category rows: %w", err)
	}
	return links, nil
}

// SaveBudgetCategory inserts a budget/category link. The (budget_id,
// category_id) unique constraint surfaces as ErrDuplicate.
func (r *PgxBudgetRepository) SaveBudgetCategory(ctx context.Context, link domain.BudgetCategory) error {
	m := mapping.ToModelBudgetCategory(link)

	query := `
		INSERT INTO budget_categories (` + budgetCategoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.pool.Exec(ctx, query,
		m.BudgetCategoryID,
		m.BudgetID,
		m.CategoryID,
		m.Planned,
		m.ReminderEnabled,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: category %s is already in this budget", apperrors.ErrDuplicate, m.CategoryID)
		}
		return fmt.Errorf("failed to save budget category %s: %w", m.BudgetCategoryID, err)
	}
	return nil
}

// UpdateBudgetCategory rewrites a budget/category link.
func (r *PgxBudgetRepository) UpdateBudgetCategory(ctx context.Context, link domain.BudgetCategory) error {
	m := mapping.ToModelBudgetCategory(link)

	query := `
		UPDATE budget_categories
		SET planned = $2, reminder_enabled = $3, last_updated_at = $4, last_updated_by = $5
		WHERE budget_category_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query, m.BudgetCategoryID, m.Planned, m.ReminderEnabled, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return fmt.Errorf("failed to update budget category %s: %w", m.BudgetCategoryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteBudgetCategory removes a budget/category link.
func (r *PgxBudgetRepository) DeleteBudgetCategory(ctx context.Context, budgetCategoryID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM budget_categories WHERE budget_category_id = $1;`, budgetCategoryID)
	if err != nil {
		return fmt.Errorf("failed to delete budget category %s: %w", budgetCategoryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
