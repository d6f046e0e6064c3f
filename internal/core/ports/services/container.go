package services

// ServiceContainer holds every service facade the handlers and scheduler
// jobs depend on.
type ServiceContainer struct {
	Account      AccountSvcFacade
	Transaction  TransactionSvcFacade
	Category     CategorySvcFacade
	Budget       BudgetSvcFacade
	Recurring    RecurringSvcFacade
	Setting      SettingSvcFacade
	Notification NotificationSvcFacade
	User         UserSvcFacade
	Auth         AuthSvcFacade
	GoogleOAuth  GoogleOAuthSvcFacade
}
