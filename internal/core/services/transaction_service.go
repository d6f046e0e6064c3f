package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/centsible/centsible_backend/internal/apperrors"
	"github.com/centsible/centsible_backend/internal/core/domain"
	portsrepo "github.com/centsible/centsible_backend/internal/core/ports/repositories"
	"github.com/centsible/centsible_backend/internal/dto"
	"github.com/centsible/centsible_backend/internal/middleware"
	"github.com/google/uuid"
)

// TransactionService owns transaction mutations and keeps account balances
// reconciled. Every mutation is followed by a balance rewrite for each
// touched account; a transfer touches both sides.
type TransactionService struct {
	txnRepo      portsrepo.TransactionRepositoryFacade
	accountRepo  portsrepo.AccountRepositoryFacade
	categoryRepo portsrepo.CategoryRepositoryFacade
}

func NewTransactionService(
	txnRepo portsrepo.TransactionRepositoryFacade,
	accountRepo portsrepo.AccountRepositoryFacade,
	categoryRepo portsrepo.CategoryRepositoryFacade,
) *TransactionService {
	return &TransactionService{txnRepo: txnRepo, accountRepo: accountRepo, categoryRepo: categoryRepo}
}

// checkAccount verifies the account exists, belongs to userID and is active.
func (s *TransactionService) checkAccount(ctx context.Context, userID, accountID string) error {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return err
	}
	if account.UserID != userID {
		return apperrors.ErrForbidden
	}
	if !account.IsActive {
		return apperrors.NewBadRequestError(fmt.Sprintf("account %s is inactive", accountID))
	}
	return nil
}

// checkCategory verifies the category exists, belongs to userID, and matches
// the transaction kind: income categories for INCOME, expense categories for
// EXPENSE. Transfers carry no category constraint.
func (s *TransactionService) checkCategory(ctx context.Context, userID, categoryID string, kind domain.TransactionKind) error {
	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		return err
	}
	if category.UserID != userID {
		return apperrors.ErrForbidden
	}
	switch kind {
	case domain.Income:
		if category.Kind != domain.IncomeCategory {
			return apperrors.NewBadRequestError("income transactions require an income category")
		}
	case domain.Expense:
		if category.Kind != domain.ExpenseCategory {
			return apperrors.NewBadRequestError("expense transactions require an expense category")
		}
	}
	return nil
}

// reconcile rewrites the cached balance of every account in accountIDs.
// A failure here leaves the transaction row persisted and the balance stale;
// the next mutation or an explicit recompute repairs it, so the error is
// logged rather than surfaced to the caller.
func (s *TransactionService) reconcile(ctx context.Context, userID string, accountIDs []string) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now()
	for _, accountID := range accountIDs {
		if _, err := s.txnRepo.RecalculateAccountBalance(ctx, accountID, userID, now); err != nil {
			logger.Error("Balance reconciliation failed, balance is stale until next write",
				slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
	}
}

func (s *TransactionService) CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now()
	occurredAt := now
	if req.OccurredAt != nil {
		occurredAt = *req.OccurredAt
	}

	txn := domain.Transaction{
		TransactionID:        uuid.NewString(),
		UserID:               userID,
		Description:          req.Description,
		Amount:               req.Amount,
		Kind:                 req.Kind,
		OccurredAt:           occurredAt,
		AccountID:            req.AccountID,
		CategoryID:           req.CategoryID,
		DestinationAccountID: req.DestinationAccountID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := txn.Validate(); err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}

	if err := s.checkAccount(ctx, userID, txn.AccountID); err != nil {
		return nil, err
	}
	if txn.DestinationAccountID != nil {
		if err := s.checkAccount(ctx, userID, *txn.DestinationAccountID); err != nil {
			return nil, err
		}
	}
	if txn.CategoryID != nil {
		if err := s.checkCategory(ctx, userID, *txn.CategoryID, txn.Kind); err != nil {
			return nil, err
		}
	}

	if err := s.txnRepo.SaveTransaction(ctx, txn); err != nil {
		logger.Error("Failed to save transaction in repository", slog.String("error", err.Error()), slog.String("transaction_id", txn.TransactionID))
		return nil, err
	}

	s.reconcile(ctx, userID, txn.Touches())

	logger.Info("Transaction created", slog.String("transaction_id", txn.TransactionID), slog.String("kind", string(txn.Kind)))
	return &txn, nil
}

func (s *TransactionService) GetTransaction(ctx context.Context, userID, transactionID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if txn.UserID != userID {
		return nil, apperrors.ErrForbidden
	}
	return txn, nil
}

func (s *TransactionService) ListTransactionsByAccount(ctx context.Context, userID, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, nil, err
	}
	if account.UserID != userID {
		return nil, nil, apperrors.ErrForbidden
	}

	txns, next, err := s.txnRepo.ListTransactionsByAccountID(ctx, accountID, limit, nextToken)
	if err != nil {
		logger.Error("Failed to list transactions from repository", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, nil, err
	}
	if txns == nil {
		txns = []domain.Transaction{}
	}
	return txns, next, nil
}

func (s *TransactionService) UpdateTransaction(ctx context.Context, userID, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.GetTransaction(ctx, userID, transactionID)
	if err != nil {
		return nil, err
	}

	// The set of accounts to reconcile is the union of the accounts touched
	// before and after the edit.
	touched := map[string]struct{}{}
	for _, id := range existing.Touches() {
		touched[id] = struct{}{}
	}

	updated := *existing
	if req.Description != nil {
		updated.Description = *req.Description
	}
	if req.Amount != nil {
		updated.Amount = *req.Amount
	}
	if req.OccurredAt != nil {
		updated.OccurredAt = *req.OccurredAt
	}
	if req.AccountID != nil {
		updated.AccountID = *req.AccountID
	}
	if req.CategoryID != nil {
		updated.CategoryID = req.CategoryID
	}
	if req.DestinationAccountID != nil {
		if updated.Kind != domain.Transfer {
			return nil, apperrors.NewBadRequestError("destination account is only valid for TRANSFER transactions")
		}
		updated.DestinationAccountID = req.DestinationAccountID
	}
	updated.LastUpdatedAt = time.Now()
	updated.LastUpdatedBy = userID

	if err := updated.Validate(); err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}

	if req.AccountID != nil {
		if err := s.checkAccount(ctx, userID, updated.AccountID); err != nil {
			return nil, err
		}
	}
	if req.DestinationAccountID != nil {
		if err := s.checkAccount(ctx, userID, *updated.DestinationAccountID); err != nil {
			return nil, err
		}
	}
	if req.CategoryID != nil {
		if err := s.checkCategory(ctx, userID, *updated.CategoryID, updated.Kind); err != nil {
			return nil, err
		}
	}

	if err := s.txnRepo.UpdateTransaction(ctx, updated); err != nil {
		logger.Error("Failed to update transaction in repository", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return nil, err
	}

	for _, id := range updated.Touches() {
		touched[id] = struct{}{}
	}
	accountIDs := make([]string, 0, len(touched))
	for id := range touched {
		accountIDs = append(accountIDs, id)
	}
	s.reconcile(ctx, userID, accountIDs)

	return &updated, nil
}

func (s *TransactionService) DeleteTransaction(ctx context.Context, userID, transactionID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.GetTransaction(ctx, userID, transactionID)
	if err != nil {
		return err
	}

	if err := s.txnRepo.DeleteTransaction(ctx, transactionID); err != nil {
		logger.Error("Failed to delete transaction in repository", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return err
	}

	s.reconcile(ctx, userID, existing.Touches())

	logger.Info("Transaction deleted", slog.String("transaction_id", transactionID))
	return nil
}
