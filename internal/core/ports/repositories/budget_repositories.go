package repositories

import (
	"context"

	"github.com/centsible/centsible_backend/internal/core/domain"
)

// BudgetReader defines read operations for budget data
type BudgetReader interface {
	// FindBudgetByID retrieves a specific budget by its unique identifier.
	FindBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error)

	// FindBudgetByPeriod retrieves a user's budget for a given month/year.
	FindBudgetByPeriod(ctx context.Context, userID string, month int, year int) (*domain.Budget, error)

	// ListBudgets retrieves a paginated list of a user's budgets, newest period first.
	ListBudgets(ctx context.Context, userID string, limit int, offset int) ([]domain.Budget, error)

	// ListBudgetsForPeriod retrieves every budget for a month/year across all
	// users. Used by the pace alerter.
	ListBudgetsForPeriod(ctx context.Context, month int, year int) ([]domain.Budget, error)

	// FindBudgetCategoryByID retrieves a budget/category link by its identifier.
	FindBudgetCategoryByID(ctx context.Context, budgetCategoryID string) (*domain.BudgetCategory, error)

	// ListBudgetCategories retrieves all category links of a budget.
	ListBudgetCategories(ctx context.Context, budgetID string) ([]domain.BudgetCategory, error)
}

// BudgetWriter defines write operations for budget data
type BudgetWriter interface {
	// SaveBudget persists a new budget. Returns apperrors.ErrDuplicate when the
	// (user, month, year) period is already budgeted.
	SaveBudget(ctx context.Context, budget domain.Budget) error

	// UpdateBudget updates an existing budget's note.
	UpdateBudget(ctx context.Context, budget domain.Budget) error

	// DeleteBudget removes a budget. Category links cascade in the database.
	DeleteBudget(ctx context.Context, budgetID string) error

	// SaveBudgetCategory persists a new budget/category link.
	SaveBudgetCategory(ctx context.Context, link domain.BudgetCategory) error

	// UpdateBudgetCategory updates a budget/category link.
	UpdateBudgetCategory(ctx context.Context, link domain.BudgetCategory) error

	// DeleteBudgetCategory removes a budget/category link.
	DeleteBudgetCategory(ctx context.Context, budgetCategoryID string) error
}

// BudgetRepositoryFacade combines all budget-related repository interfaces
type BudgetRepositoryFacade interface {
	BudgetReader
	BudgetWriter
}
