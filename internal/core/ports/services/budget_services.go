package services

import (
	"context"
	"time"

	"github.com/centsible/centsible_backend/internal/core/domain"
	"github.com/centsible/centsible_backend/internal/dto"
)

type BudgetManager interface {
	CreateBudget(ctx context.Context, userID string, req dto.CreateBudgetRequest) (*domain.Budget, error)
	GetBudget(ctx context.Context, userID, budgetID string) (*domain.Budget, []domain.BudgetCategory, error)
	ListBudgets(ctx context.Context, userID string, limit, offset int) ([]domain.Budget, error)
	UpdateBudget(ctx context.Context, userID, budgetID string, req dto.UpdateBudgetRequest) (*domain.Budget, error)
	DeleteBudget(ctx context.Context, userID, budgetID string) error

	AddBudgetCategory(ctx context.Context, userID, budgetID string, req dto.AddBudgetCategoryRequest) (*domain.BudgetCategory, error)
	UpdateBudgetCategory(ctx context.Context, userID, budgetCategoryID string, req dto.UpdateBudgetCategoryRequest) (*domain.BudgetCategory, error)
	RemoveBudgetCategory(ctx context.Context, userID, budgetCategoryID string) error
}

// PaceEvaluator runs the scheduled budget pace check over every budget that
// covers the current period.
type PaceEvaluator interface {
	EvaluatePace(ctx context.Context, now time.Time) error
}

type BudgetSvcFacade interface {
	BudgetManager
	PaceEvaluator
}
