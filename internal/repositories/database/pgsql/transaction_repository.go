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
	"github.com/centsible/centsible_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const transactionColumns = `transaction_id, user_id, description, amount, kind, occurred_at, account_id, category_id, destination_account_id, created_at, created_by, last_updated_at, last_updated_by`

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for transaction data.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryWithTx {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepositoryWithTx = (*PgxTransactionRepository)(nil)

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.UserID,
		&m.Description,
		&m.Amount,
		&m.Kind,
		&m.OccurredAt,
		&m.AccountID,
		&m.CategoryID,
		&m.DestinationAccountID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveTransaction inserts a new transaction.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)

	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.TransactionID,
		m.UserID,
		m.Description,
		m.Amount,
		m.Kind,
		m.OccurredAt,
		m.AccountID,
		m.CategoryID,
		m.DestinationAccountID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: transaction with ID %s already exists", apperrors.ErrDuplicate, m.TransactionID)
		}
		return fmt.Errorf("failed to save transaction %s: %w", m.TransactionID, err)
	}
	return nil
}

// FindTransactionByID retrieves a transaction by its ID.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`

	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}

	txn := mapping.ToDomainTransaction(m)
	return &txn, nil
}

// ListTransactionsByAccountID retrieves a page of transactions touching an
// account (as source or transfer destination), newest first. Token-based
// pagination keys on (occurred_at, created_at).
func (r *PgxTransactionRepository) ListTransactionsByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 25
	}

	args := []interface{}{accountID, limit + 1}
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE (account_id = $1 OR destination_account_id = $1)
	`
	if nextToken != nil && *nextToken != "" {
		occurredAt, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewBadRequestError("invalid pagination token")
		}
		query += ` AND (occurred_at, created_at) < ($3, $4)`
		args = append(args, occurredAt, createdAt)
	}
	query += `
		ORDER BY occurred_at DESC, created_at DESC
		LIMIT $2;
	`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var modelTxns []models.Transaction
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		modelTxns = append(modelTxns, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed reading transaction rows: %w", err)
	}

	var token *string
	if len(modelTxns) > limit {
		modelTxns = modelTxns[:limit]
		last := modelTxns[len(modelTxns)-1]
		encoded := pagination.EncodeToken(last.OccurredAt, last.CreatedAt)
		token = &encoded
	}

	return mapping.ToDomainTransactionSlice(modelTxns), token, nil
}

// SumExpensesByCategory sums EXPENSE amounts for a user's category with
// occurred_at in [from, to).
func (r *PgxTransactionRepository) SumExpensesByCategory(ctx context.Context, userID string, categoryID string, from time.Time, to time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE user_id = $1
		  AND category_id = $2
		  AND kind = 'EXPENSE'
		  AND occurred_at >= $3
		  AND occurred_at < $4;
	`
	var sum decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, userID, categoryID, from, to).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum expenses for category %s: %w", categoryID, err)
	}
	return sum, nil
}

// UpdateTransaction rewrites a transaction's mutable columns.
func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)

	query := `
		UPDATE transactions
		SET description = $2, amount = $3, occurred_at = $4, account_id = $5, category_id = $6, destination_account_id = $7, last_updated_at = $8, last_updated_by = $9
		WHERE transaction_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.TransactionID,
		m.Description,
		m.Amount,
		m.OccurredAt,
		m.AccountID,
		m.CategoryID,
		m.DestinationAccountID,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction %s: %w", m.TransactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteTransaction removes a transaction.
func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1;`, transactionID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// RecalculateAccountBalance recomputes the signed sum of every transaction
// touching the account and writes it through to accounts.balance. The whole
// operation runs in one database transaction with the account row locked, so
// concurrent mutations serialize on the same account and the cache can never
// hold a partially applied sum. The CASE mirrors ledger.SignedAmount: income
// credits, expenses and outgoing transfers debit, incoming transfers credit.
func (r *PgxTransactionRepository) RecalculateAccountBalance(ctx context.Context, accountID string, updatedBy string, now time.Time) (decimal.Decimal, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	var current decimal.Decimal
	err = tx.QueryRow(ctx, `SELECT balance FROM accounts WHERE account_id = $1 FOR UPDATE;`, accountID).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, apperrors.ErrNotFound
		}
		return decimal.Zero, fmt.Errorf("failed to lock account %s: %w", accountID, err)
	}

	sumQuery := `
		SELECT COALESCE(SUM(
			CASE
				WHEN account_id = $1 AND kind = 'INCOME' THEN amount
				WHEN account_id = $1 THEN -amount
				WHEN destination_account_id = $1 AND kind = 'TRANSFER' THEN amount
				ELSE 0
			END
		), 0)
		FROM transactions
		WHERE account_id = $1 OR destination_account_id = $1;
	`
	var balance decimal.Decimal
	if err := tx.QueryRow(ctx, sumQuery, accountID).Scan(&balance); err != nil {
		return decimal.Zero, fmt.Errorf("failed to compute balance of account %s: %w", accountID, err)
	}

	updateQuery := `
		UPDATE accounts
		SET balance = $2, last_updated_at = $3, last_updated_by = $4
		WHERE account_id = $1;
	`
	if _, err := tx.Exec(ctx, updateQuery, accountID, balance, now, updatedBy); err != nil {
		return decimal.Zero, fmt.Errorf("failed to write balance of account %s: %w", accountID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return decimal.Zero, err
	}
	return balance, nil
}
