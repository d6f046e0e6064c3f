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
	"github.com/shopspring/decimal"
)

type PgxAccountRepository struct {
	pool *pgxpool.Pool
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{pool: pool}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	modelAcc := mapping.ToModelAccount(account)

	query := `
		INSERT INTO accounts (account_id, user_id, name, account_type, credit_limit, balance, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.pool.Exec(ctx, query,
		modelAcc.AccountID,
		modelAcc.UserID,
		modelAcc.Name,
		modelAcc.AccountType,
		modelAcc.CreditLimit,
		modelAcc.Balance,
		modelAcc.IsActive,
		modelAcc.CreatedAt,
		modelAcc.CreatedBy,
		modelAcc.LastUpdatedAt,
		modelAcc.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: account with ID %s already exists", apperrors.ErrDuplicate, modelAcc.AccountID)
		}
		return fmt.Errorf("failed to save account %s: %w", modelAcc.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `
		SELECT account_id, user_id, name, account_type, credit_limit, balance, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM accounts
		WHERE account_id = $1;
	`
	var modelAcc models.Account
	err := r.pool.QueryRow(ctx, query, accountID).Scan(
		&modelAcc.AccountID,
		&modelAcc.UserID,
		&modelAcc.Name,
		&modelAcc.AccountType,
		&modelAcc.CreditLimit,
		&modelAcc.Balance,
		&modelAcc.IsActive,
		&modelAcc.CreatedAt,
		&modelAcc.CreatedBy,
		&modelAcc.LastUpdatedAt,
		&modelAcc.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}

	account := mapping.ToDomainAccount(modelAcc)
	return &account, nil
}

// ListAccounts retrieves a page of a user's accounts, oldest first.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, userID string, limit int, offset int) ([]domain.Account, error) {
	query := `
		SELECT account_id, user_id, name, account_type, credit_limit, balance, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM accounts
		WHERE user_id = $1
		ORDER BY created_at ASC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var modelAccs []models.Account
	for rows.Next() {
		var m models.Account
		if err := rows.Scan(
			&m.AccountID,
			&m.UserID,
			&m.Name,
			&m.AccountType,
			&m.CreditLimit,
			&m.Balance,
			&m.IsActive,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		modelAccs = append(modelAccs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading account rows: %w", err)
	}

	return mapping.ToDomainAccountSlice(modelAccs), nil
}

// UpdateAccount rewrites an account's mutable columns.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	modelAcc := mapping.ToModelAccount(account)

	query := `
		UPDATE accounts
		SET name = $2, credit_limit = $3, is_active = $4, last_updated_at = $5, last_updated_by = $6
		WHERE account_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		modelAcc.AccountID,
		modelAcc.Name,
		modelAcc.CreditLimit,
		modelAcc.IsActive,
		modelAcc.LastUpdatedAt,
		modelAcc.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update account %s: %w", modelAcc.AccountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateAccountBalance overwrites the cached balance of an account.
func (r *PgxAccountRepository) UpdateAccountBalance(ctx context.Context, accountID string, balance decimal.Decimal, updatedBy string, now time.Time) error {
	query := `
		UPDATE accounts
		SET balance = $2, last_updated_at = $3, last_updated_by = $4
		WHERE account_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query, accountID, balance, now, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to update balance of account %s: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateAccount marks an account as inactive.
func (r *PgxAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	query := `
		UPDATE accounts
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE account_id = $1 AND is_active = TRUE;
	`
	tag, err := r.pool.Exec(ctx, query, accountID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate account %s: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
