package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	AccountRepo      AccountRepositoryFacade
	TransactionRepo  TransactionRepositoryFacade
	CategoryRepo     CategoryRepositoryFacade
	BudgetRepo       BudgetRepositoryFacade
	RecurringRepo    RecurringRepositoryFacade
	SettingRepo      SettingRepositoryFacade
	NotificationRepo NotificationRepositoryFacade
	UserRepo         UserRepositoryFacade
}
