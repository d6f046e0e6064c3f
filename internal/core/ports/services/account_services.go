package services

import (
	"context"

	"github.com/centsible/centsible_backend/internal/core/domain"
	"github.com/centsible/centsible_backend/internal/dto"
	"github.com/shopspring/decimal"
)

type AccountManager interface {
	CreateAccount(ctx context.Context, userID string, req dto.CreateAccountRequest) (*domain.Account, error)
	GetAccount(ctx context.Context, userID, accountID string) (*domain.Account, error)
	ListAccounts(ctx context.Context, userID string, limit, offset int) ([]domain.Account, error)
	UpdateAccount(ctx context.Context, userID, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error)
	DeactivateAccount(ctx context.Context, userID, accountID string) error
}

// BalanceReconciler recomputes an account's cached balance from its full
// transaction history and persists the result.
type BalanceReconciler interface {
	RecomputeBalance(ctx context.Context, userID, accountID string) (decimal.Decimal, error)
}

type AccountSvcFacade interface {
	AccountManager
	BalanceReconciler
}
