package services

import (
	portsrepo "github.com/centsible/centsible_backend/internal/core/ports/repositories"
	portssvc "github.com/centsible/centsible_backend/internal/core/ports/services"
	"github.com/centsible/centsible_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Notification first: the budget and recurring services alert through it.
	container.Notification = NewNotificationService(repos.NotificationRepo)
	container.Setting = NewSettingService(repos.SettingRepo)

	container.Account = NewAccountService(repos.AccountRepo, repos.TransactionRepo)
	container.Category = NewCategoryService(repos.CategoryRepo)
	container.Transaction = NewTransactionService(repos.TransactionRepo, repos.AccountRepo, repos.CategoryRepo)

	container.Budget = NewBudgetService(
		repos.BudgetRepo,
		repos.CategoryRepo,
		repos.TransactionRepo,
		container.Notification,
	)
	container.Recurring = NewRecurringService(
		repos.RecurringRepo,
		repos.AccountRepo,
		repos.CategoryRepo,
		repos.TransactionRepo,
		container.Setting,
		container.Notification,
	)

	container.User = NewUserService(repos.UserRepo)
	container.Auth = NewAuthService(repos.UserRepo, cfg)
	container.GoogleOAuth = NewGoogleOAuthService(cfg, container.User, container.Auth)

	return container
}

// Compile-time checks that each service satisfies its facade.
var (
	_ portssvc.AccountSvcFacade      = (*AccountService)(nil)
	_ portssvc.TransactionSvcFacade  = (*TransactionService)(nil)
	_ portssvc.CategorySvcFacade     = (*CategoryService)(nil)
	_ portssvc.BudgetSvcFacade       = (*BudgetService)(nil)
	_ portssvc.RecurringSvcFacade    = (*RecurringService)(nil)
	_ portssvc.SettingSvcFacade      = (*SettingService)(nil)
	_ portssvc.NotificationSvcFacade = (*NotificationService)(nil)
	_ portssvc.UserSvcFacade         = (*UserService)(nil)
	_ portssvc.AuthSvcFacade         = (*AuthService)(nil)
	_ portssvc.GoogleOAuthSvcFacade  = (*GoogleOAuthService)(nil)
)
