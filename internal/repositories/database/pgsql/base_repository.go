package pgsql

import (
	"context"
	"errors"

	"github.com/centsible/centsible_backend/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BaseRepository holds the shared pgx pool and the transaction helpers the
// concrete repositories embed. Multi-statement work such as
// RecalculateAccountBalance runs through Begin/Commit with a deferred
// Rollback that is a no-op once the commit lands.
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// Begin opens a database transaction on the shared pool.
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	return tx, nil
}

// Commit finalizes tx.
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}

// Rollback aborts tx. Rolling back an already-committed transaction is not
// an error, so deferred rollbacks after a successful commit stay silent.
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return apperrors.NewAppError(500, "failed to rollback transaction", err)
	}
	return nil
}
