package pgsql

import (
	portsrepo "github.com/centsible/centsible_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:      newPgxAccountRepository(dbPool),
		TransactionRepo:  newPgxTransactionRepository(dbPool),
		CategoryRepo:     newPgxCategoryRepository(dbPool),
		BudgetRepo:       newPgxBudgetRepository(dbPool),
		RecurringRepo:    newPgxRecurringRepository(dbPool),
		SettingRepo:      newPgxSettingRepository(dbPool),
		NotificationRepo: newPgxNotificationRepository(dbPool),
		UserRepo:         newPgxUserRepository(dbPool),
	}
}
