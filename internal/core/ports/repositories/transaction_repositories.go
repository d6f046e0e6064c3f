package repositories

import (
	"context"
	"time"

	"github.com/centsible/centsible_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionReader defines read operations for transaction data
type TransactionReader interface {
	// FindTransactionByID retrieves a specific transaction by its unique identifier.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactionsByAccountID retrieves a paginated list of transactions touching
	// an account (as source or transfer destination) using token-based pagination,
	// newest first. It returns the transactions, a token for the next page, and an error.
	ListTransactionsByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)

	// SumExpensesByCategory sums EXPENSE transaction amounts for a user's category
	// with occurred_at in [from, to).
	SumExpensesByCategory(ctx context.Context, userID string, categoryID string, from time.Time, to time.Time) (decimal.Decimal, error)
}

// TransactionWriter defines write operations for transaction data
type TransactionWriter interface {
	// SaveTransaction persists a new transaction.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error

	// UpdateTransaction updates an existing transaction.
	UpdateTransaction(ctx context.Context, txn domain.Transaction) error

	// DeleteTransaction removes a transaction.
	DeleteTransaction(ctx context.Context, transactionID string) error
}

// TransactionBalanceSupport defines the reconciliation primitive.
type TransactionBalanceSupport interface {
	// RecalculateAccountBalance recomputes the signed sum of all transactions
	// touching the account and writes it through to accounts.balance, inside a
	// single database transaction with the account row locked. Returns the new
	// balance.
	RecalculateAccountBalance(ctx context.Context, accountID string, updatedBy string, now time.Time) (decimal.Decimal, error)
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
	TransactionBalanceSupport
}

// TransactionRepositoryWithTx extends the facade with transaction capabilities
type TransactionRepositoryWithTx interface {
	TransactionRepositoryFacade
	TransactionManager
}
