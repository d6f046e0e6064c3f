package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/centsible/centsible_backend/internal/apperrors"
	"github.com/centsible/centsible_backend/internal/core/domain"
	portsrepo "github.com/centsible/centsible_backend/internal/core/ports/repositories"
	"github.com/centsible/centsible_backend/internal/dto"
	"github.com/centsible/centsible_backend/internal/middleware"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AccountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	txnRepo     portsrepo.TransactionRepositoryFacade
}

func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, txnRepo portsrepo.TransactionRepositoryFacade) *AccountService {
	return &AccountService{accountRepo: accountRepo, txnRepo: txnRepo}
}

// findOwnedAccount loads an account and verifies userID owns it.
func (s *AccountService) findOwnedAccount(ctx context.Context, userID, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.UserID != userID {
		return nil, apperrors.ErrForbidden
	}
	return account, nil
}

func (s *AccountService) CreateAccount(ctx context.Context, userID string, req dto.CreateAccountRequest) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.CreditLimit != nil && req.AccountType != domain.Credit {
		return nil, apperrors.NewBadRequestError("credit limit is only valid for CREDIT accounts")
	}
	if req.CreditLimit != nil && req.CreditLimit.IsNegative() {
		return nil, apperrors.NewBadRequestError("credit limit must not be negative")
	}

	now := time.Now()
	account := domain.Account{
		AccountID:   uuid.NewString(),
		UserID:      userID,
		Name:        req.Name,
		AccountType: req.AccountType,
		CreditLimit: req.CreditLimit,
		Balance:     decimal.Zero,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account in repository", slog.String("error", err.Error()), slog.String("account_id", account.AccountID))
		return nil, err
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID))
	return &account, nil
}

func (s *AccountService) GetAccount(ctx context.Context, userID, accountID string) (*domain.Account, error) {
	return s.findOwnedAccount(ctx, userID, accountID)
}

func (s *AccountService) ListAccounts(ctx context.Context, userID string, limit, offset int) ([]domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	accounts, err := s.accountRepo.ListAccounts(ctx, userID, limit, offset)
	if err != nil {
		logger.Error("Failed to list accounts from repository", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

func (s *AccountService) UpdateAccount(ctx context.Context, userID, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.findOwnedAccount(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.CreditLimit != nil {
		if account.AccountType != domain.Credit {
			return nil, apperrors.NewBadRequestError("credit limit is only valid for CREDIT accounts")
		}
		account.CreditLimit = req.CreditLimit
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
	}
	account.LastUpdatedAt = time.Now()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		logger.Error("Failed to update account in repository", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, err
	}

	return account, nil
}

func (s *AccountService) DeactivateAccount(ctx context.Context, userID, accountID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.findOwnedAccount(ctx, userID, accountID); err != nil {
		return err
	}

	if err := s.accountRepo.DeactivateAccount(ctx, accountID, userID, time.Now()); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to deactivate account in repository", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return err
	}

	logger.Info("Account deactivated", slog.String("account_id", accountID))
	return nil
}

// RecomputeBalance rebuilds the account's cached balance from its full
// transaction history. The result depends only on the stored transactions,
// so running it twice in a row yields the same balance.
func (s *AccountService) RecomputeBalance(ctx context.Context, userID, accountID string) (decimal.Decimal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.findOwnedAccount(ctx, userID, accountID); err != nil {
		return decimal.Zero, err
	}

	balance, err := s.txnRepo.RecalculateAccountBalance(ctx, accountID, userID, time.Now())
	if err != nil {
		logger.Error("Failed to recalculate account balance", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return decimal.Zero, err
	}

	logger.Info("Account balance recomputed", slog.String("account_id", accountID), slog.String("balance", balance.String()))
	return balance, nil
}
