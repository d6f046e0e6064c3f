package services_test

import (
	"context"
	"time"

	"github.com/centsible/centsible_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// Shared mock repositories for the service test suites.

// MockAccountRepository is a mock type for the AccountRepositoryFacade interface
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, userID string, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccountBalance(ctx context.Context, accountID string, balance decimal.Decimal, updatedBy string, now time.Time) error {
	args := m.Called(ctx, accountID, balance, updatedBy, now)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	args := m.Called(ctx, accountID, userID, now)
	return args.Error(0)
}

// MockTransactionRepository is a mock type for the TransactionRepositoryFacade interface
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactionsByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, accountID, limit, nextToken)
	var txns []domain.Transaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.Transaction)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return txns, token, args.Error(2)
}

func (m *MockTransactionRepository) SumExpensesByCategory(ctx context.Context, userID string, categoryID string, from time.Time, to time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, userID, categoryID, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	args := m.Called(ctx, transactionID)
	return args.Error(0)
}

func (m *MockTransactionRepository) RecalculateAccountBalance(ctx context.Context, accountID string, updatedBy string, now time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, accountID, updatedBy, now)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// MockCategoryRepository is a mock type for the CategoryRepositoryFacade interface
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) ListCategories(ctx context.Context, userID string) ([]domain.Category, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) DeleteCategory(ctx context.Context, categoryID string) error {
	args := m.Called(ctx, categoryID)
	return args.Error(0)
}

// MockBudgetRepository is a mock type for the BudgetRepositoryFacade interface
type MockBudgetRepository struct {
	mock.Mock
}

func (m *MockBudgetRepository) FindBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error) {
	args := m.Called(ctx, budgetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Budget), args.Error(1)
}

func (m *MockBudgetRepository) FindBudgetByPeriod(ctx context.Context, userID string, month int, year int) (*domain.Budget, error) {
	args := m.Called(ctx, userID, month, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Budget), args.Error(1)
}

func (m *MockBudgetRepository) ListBudgets(ctx context.Context, userID string, limit int, offset int) ([]domain.Budget, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Budget), args.Error(1)
}

func (m *MockBudgetRepository) ListBudgetsForPeriod(ctx context.Context, month int, year int) ([]domain.Budget, error) {
	args := m.Called(ctx, month, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Budget), args.Error(1)
}

func (m *MockBudgetRepository) FindBudgetCategoryByID(ctx context.Context, budgetCategoryID string) (*domain.BudgetCategory, error) {
	args := m.Called(ctx, budgetCategoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BudgetCategory), args.Error(1)
}

func (m *MockBudgetRepository) ListBudgetCategories(ctx context.Context, budgetID string) ([]domain.BudgetCategory, error) {
	args := m.Called(ctx, budgetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BudgetCategory), args.Error(1)
}

func (m *MockBudgetRepository) SaveBudget(ctx context.Context, budget domain.Budget) error {
	args := m.Called(ctx, budget)
	return args.Error(0)
}

func (m *MockBudgetRepository) UpdateBudget(ctx context.Context, budget domain.Budget) error {
	args := m.Called(ctx, budget)
	return args.Error(0)
}

func (m *MockBudgetRepository) DeleteBudget(ctx context.Context, budgetID string) error {
	args := m.Called(ctx, budgetID)
	return args.Error(0)
}

func (m *MockBudgetRepository) SaveBudgetCategory(ctx context.Context, link domain.BudgetCategory) error {
	args := m.Called(ctx, link)
	return args.Error(0)
}

func (m *MockBudgetRepository) UpdateBudgetCategory(ctx context.Context, link domain.BudgetCategory) error {
	args := m.Called(ctx, link)
	return args.Error(0)
}

func (m *MockBudgetRepository) DeleteBudgetCategory(ctx context.Context, budgetCategoryID string) error {
	args := m.Called(ctx, budgetCategoryID)
	return args.Error(0)
}

// MockRecurringRepository is a mock type for the RecurringRepositoryFacade interface
type MockRecurringRepository struct {
	mock.Mock
}

func (m *MockRecurringRepository) FindRuleByID(ctx context.Context, ruleID string) (*domain.RecurringRule, error) {
	args := m.Called(ctx, ruleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RecurringRule), args.Error(1)
}

func (m *MockRecurringRepository) ListRules(ctx context.Context, userID string) ([]domain.RecurringRule, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RecurringRule), args.Error(1)
}

func (m *MockRecurringRepository) ListDueRules(ctx context.Context, asOf time.Time) ([]domain.RecurringRule, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RecurringRule), args.Error(1)
}

func (m *MockRecurringRepository) ListRulesDueBetween(ctx context.Context, after time.Time, until time.Time) ([]domain.RecurringRule, error) {
	args := m.Called(ctx, after, until)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RecurringRule), args.Error(1)
}

func (m *MockRecurringRepository) SaveRule(ctx context.Context, rule domain.RecurringRule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

func (m *MockRecurringRepository) UpdateRule(ctx context.Context, rule domain.RecurringRule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

func (m *MockRecurringRepository) UpdateRuleNextDue(ctx context.Context, ruleID string, nextDue time.Time, now time.Time) error {
	args := m.Called(ctx, ruleID, nextDue, now)
	return args.Error(0)
}

func (m *MockRecurringRepository) DeleteRule(ctx context.Context, ruleID string) error {
	args := m.Called(ctx, ruleID)
	return args.Error(0)
}

// MockSettingRepository is a mock type for the SettingRepositoryFacade interface
type MockSettingRepository struct {
	mock.Mock
}

func (m *MockSettingRepository) GetSetting(ctx context.Context, userID string, key string) (*domain.Setting, error) {
	args := m.Called(ctx, userID, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Setting), args.Error(1)
}

func (m *MockSettingRepository) ListSettings(ctx context.Context, userID string) ([]domain.Setting, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Setting), args.Error(1)
}

func (m *MockSettingRepository) UpsertSetting(ctx context.Context, setting domain.Setting) error {
	args := m.Called(ctx, setting)
	return args.Error(0)
}

// MockNotifier is a mock type for the Notifier interface
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, userID string, req domain.NotificationRequest) error {
	args := m.Called(ctx, userID, req)
	return args.Error(0)
}

// MockSettingService is a mock type for the SettingSvcFacade interface
type MockSettingService struct {
	mock.Mock
}

func (m *MockSettingService) GetSetting(ctx context.Context, userID, key string) (string, error) {
	args := m.Called(ctx, userID, key)
	return args.String(0), args.Error(1)
}

func (m *MockSettingService) ListSettings(ctx context.Context, userID string) (map[string]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

func (m *MockSettingService) PutSetting(ctx context.Context, userID, key, value string) error {
	args := m.Called(ctx, userID, key, value)
	return args.Error(0)
}

func (m *MockSettingService) DueSoonDays(ctx context.Context, userID string) int {
	args := m.Called(ctx, userID)
	return args.Int(0)
}
