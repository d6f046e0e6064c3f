package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/centsible/centsible_backend/internal/core/domain"
	"github.com/centsible/centsible_backend/internal/core/services"
	"github.com/centsible/centsible_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type RecurringServiceTestSuite struct {
	suite.Suite
	mockRecurringRepo *MockRecurringRepository
	mockAccountRepo   *MockAccountRepository
	mockCategoryRepo  *MockCategoryRepository
	mockTxnRepo       *MockTransactionRepository
	mockSettingSvc    *MockSettingService
	mockNotifier      *MockNotifier
	service           *services.RecurringService
}

func (suite *RecurringServiceTestSuite) SetupTest() {
	suite.mockRecurringRepo = new(MockRecurringRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockCategoryRepo = new(MockCategoryRepository)
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockSettingSvc = new(MockSettingService)
	suite.mockNotifier = new(MockNotifier)
	suite.service = services.NewRecurringService(
		suite.mockRecurringRepo,
		suite.mockAccountRepo,
		suite.mockCategoryRepo,
		suite.mockTxnRepo,
		suite.mockSettingSvc,
		suite.mockNotifier,
	)
}

// expectNoReminders stubs an empty due-soon prefetch so ProcessDueRules tests
// can focus on materialization.
func (suite *RecurringServiceTestSuite) expectNoReminders(ctx context.Context) {
	suite.mockRecurringRepo.On("ListRulesDueBetween", ctx, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
		Return([]domain.RecurringRule{}, nil).Once()
}

func (suite *RecurringServiceTestSuite) TestCreateRule_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	account := &domain.Account{AccountID: uuid.NewString(), UserID: userID, IsActive: true}
	firstDue := time.Now().AddDate(0, 0, 5)

	req := dto.CreateRecurringRuleRequest{
		Name:      "Rent",
		Amount:    decimal.NewFromInt(1200),
		AccountID: account.AccountID,
		FirstDue:  firstDue,
		Frequency: domain.Monthly,
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, account.AccountID).Return(account, nil).Once()
	suite.mockRecurringRepo.On("SaveRule", ctx, mock.AnythingOfType("domain.RecurringRule")).Return(nil).Once()

	rule, err := suite.service.CreateRule(ctx, userID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(rule)
	suite.NotEmpty(rule.RuleID)
	suite.Equal(firstDue, rule.NextDue)
	suite.Equal(domain.Expense, rule.Kind, "kind defaults to EXPENSE")
	suite.True(rule.IsActive)

	suite.mockRecurringRepo.AssertExpectations(suite.T())
}

func (suite *RecurringServiceTestSuite) TestCreateRule_NonPositiveAmount() {
	ctx := context.Background()
	req := dto.CreateRecurringRuleRequest{
		Name:      "Free",
		Amount:    decimal.Zero,
		AccountID: uuid.NewString(),
		FirstDue:  time.Now(),
		Frequency: domain.Weekly,
	}

	rule, err := suite.service.CreateRule(ctx, uuid.NewString(), req)

	suite.Require().Error(err)
	suite.Nil(rule)
	suite.mockRecurringRepo.AssertNotCalled(suite.T(), "SaveRule", mock.Anything, mock.Anything)
}

func (suite *RecurringServiceTestSuite) TestProcessDueRules_MaterializesAndAdvances() {
	ctx := context.Background()
	now := time.Date(2025, 6, 10, 6, 0, 0, 0, time.UTC)
	userID := uuid.NewString()
	accountID := uuid.NewString()
	due := time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)

	rule := domain.RecurringRule{
		RuleID:    uuid.NewString(),
		UserID:    userID,
		Name:      "Netflix",
		Amount:    decimal.NewFromInt(15),
		AccountID: accountID,
		NextDue:   due,
		Frequency: domain.Monthly,
		IsActive:  true,
		Kind:      domain.Expense,
	}

	suite.mockRecurringRepo.On("ListDueRules", ctx, now).Return([]domain.RecurringRule{rule}, nil).Once()
	// The materialized transaction is dated at the missed due date and named
	// after the rule.
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.UserID == userID &&
			txn.Description == "Netflix" &&
			txn.AccountID == accountID &&
			txn.OccurredAt.Equal(due) &&
			txn.Kind == domain.Expense
	})).Return(nil).Once()
	suite.mockTxnRepo.On("RecalculateAccountBalance", ctx, accountID, userID, now).
		Return(decimal.NewFromInt(-15), nil).Once()
	suite.mockRecurringRepo.On("UpdateRuleNextDue", ctx, rule.RuleID, due.AddDate(0, 1, 0), now).Return(nil).Once()
	suite.mockNotifier.On("Notify", ctx, userID, mock.MatchedBy(func(req domain.NotificationRequest) bool {
		return req.Category == domain.RecurringNotification
	})).Return(nil).Once()
	suite.expectNoReminders(ctx)

	err := suite.service.ProcessDueRules(ctx, now)

	suite.Require().NoError(err)
	suite.mockRecurringRepo.AssertExpectations(suite.T())
	suite.mockTxnRepo.AssertExpectations(suite.T())
	suite.mockNotifier.AssertExpectations(suite.T())
}

// A rule that slipped several periods behind still posts one transaction and
// moves one period forward per evaluation; catching up takes successive runs.
func (suite *RecurringServiceTestSuite) TestProcessDueRules_LongOverdueRuleAdvancesOnePeriod() {
	ctx := context.Background()
	now := time.Date(2025, 6, 10, 6, 0, 0, 0, time.UTC)
	userID := uuid.NewString()
	accountID := uuid.NewString()
	due := now.AddDate(0, 0, -40)

	rule := domain.RecurringRule{
		RuleID:    uuid.NewString(),
		UserID:    userID,
		Name:      "Insurance",
		Amount:    decimal.NewFromInt(120),
		AccountID: accountID,
		NextDue:   due,
		Frequency: domain.Monthly,
		IsActive:  true,
		Kind:      domain.Expense,
	}

	suite.mockRecurringRepo.On("ListDueRules", ctx, now).Return([]domain.RecurringRule{rule}, nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.OccurredAt.Equal(due)
	})).Return(nil).Once()
	suite.mockTxnRepo.On("RecalculateAccountBalance", ctx, accountID, userID, now).
		Return(decimal.NewFromInt(-120), nil).Once()
	// One month forward from the missed date, not two and not up to now.
	suite.mockRecurringRepo.On("UpdateRuleNextDue", ctx, rule.RuleID, due.AddDate(0, 1, 0), now).Return(nil).Once()
	suite.mockNotifier.On("Notify", ctx, userID, mock.Anything).Return(nil).Once()
	suite.expectNoReminders(ctx)

	err := suite.service.ProcessDueRules(ctx, now)

	suite.Require().NoError(err)
	suite.mockTxnRepo.AssertNumberOfCalls(suite.T(), "SaveTransaction", 1)
	suite.mockRecurringRepo.AssertNumberOfCalls(suite.T(), "UpdateRuleNextDue", 1)
	suite.mockRecurringRepo.AssertExpectations(suite.T())
}

func (suite *RecurringServiceTestSuite) TestProcessDueRules_AdvanceFailureIsReturned() {
	ctx := context.Background()
	now := time.Date(2025, 6, 10, 6, 0, 0, 0, time.UTC)
	userID := uuid.NewString()
	accountID := uuid.NewString()

	rule := domain.RecurringRule{
		RuleID:    uuid.NewString(),
		UserID:    userID,
		Name:      "Gym",
		Amount:    decimal.NewFromInt(40),
		AccountID: accountID,
		NextDue:   now.AddDate(0, 0, -1),
		Frequency: domain.Monthly,
		IsActive:  true,
		Kind:      domain.Expense,
	}

	suite.mockRecurringRepo.On("ListDueRules", ctx, now).Return([]domain.RecurringRule{rule}, nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction")).Return(nil).Once()
	suite.mockTxnRepo.On("RecalculateAccountBalance", ctx, accountID, userID, now).
		Return(decimal.Zero, nil).Once()
	// The transaction is already posted, so a failed advance must be surfaced.
	suite.mockRecurringRepo.On("UpdateRuleNextDue", ctx, rule.RuleID, mock.AnythingOfType("time.Time"), now).
		Return(assert.AnError).Once()
	suite.expectNoReminders(ctx)

	err := suite.service.ProcessDueRules(ctx, now)

	suite.Require().Error(err)
	suite.ErrorContains(err, "failed to advance due date")
	suite.mockNotifier.AssertNotCalled(suite.T(), "Notify", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RecurringServiceTestSuite) TestProcessDueRules_OneFailingRuleDoesNotStopOthers() {
	ctx := context.Background()
	now := time.Date(2025, 6, 10, 6, 0, 0, 0, time.UTC)
	userID := uuid.NewString()

	broken := domain.RecurringRule{
		RuleID: uuid.NewString(), UserID: userID, Name: "Broken",
		Amount: decimal.NewFromInt(5), AccountID: uuid.NewString(),
		NextDue: now.AddDate(0, 0, -2), Frequency: domain.Weekly, IsActive: true, Kind: domain.Expense,
	}
	healthy := domain.RecurringRule{
		RuleID: uuid.NewString(), UserID: userID, Name: "Healthy",
		Amount: decimal.NewFromInt(9), AccountID: uuid.NewString(),
		NextDue: now.AddDate(0, 0, -1), Frequency: domain.Weekly, IsActive: true, Kind: domain.Expense,
	}

	suite.mockRecurringRepo.On("ListDueRules", ctx, now).Return([]domain.RecurringRule{broken, healthy}, nil).Once()

	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.Description == "Broken"
	})).Return(assert.AnError).Once()

	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.Description == "Healthy"
	})).Return(nil).Once()
	suite.mockTxnRepo.On("RecalculateAccountBalance", ctx, healthy.AccountID, userID, now).
		Return(decimal.Zero, nil).Once()
	suite.mockRecurringRepo.On("UpdateRuleNextDue", ctx, healthy.RuleID, mock.AnythingOfType("time.Time"), now).Return(nil).Once()
	suite.mockNotifier.On("Notify", ctx, userID, mock.Anything).Return(nil).Once()
	suite.expectNoReminders(ctx)

	err := suite.service.ProcessDueRules(ctx, now)

	suite.Require().Error(err, "the failing rule's error is still reported")
	suite.ErrorContains(err, broken.RuleID)
	suite.mockTxnRepo.AssertExpectations(suite.T())
	suite.mockRecurringRepo.AssertExpectations(suite.T())
}

func (suite *RecurringServiceTestSuite) TestProcessDueRules_DueSoonReminderRespectsUserWindow() {
	ctx := context.Background()
	now := time.Date(2025, 6, 10, 6, 0, 0, 0, time.UTC)
	nearUser := uuid.NewString()
	farUser := uuid.NewString()

	// Due in 3 days: inside nearUser's 7-day window.
	nearRule := domain.RecurringRule{
		RuleID: uuid.NewString(), UserID: nearUser, Name: "Electric bill",
		Amount: decimal.NewFromInt(60), AccountID: uuid.NewString(),
		NextDue: now.AddDate(0, 0, 3), Frequency: domain.Monthly, IsActive: true, Kind: domain.Expense,
	}
	// Due in 3 days as well, but farUser narrowed their window to 1 day.
	farRule := domain.RecurringRule{
		RuleID: uuid.NewString(), UserID: farUser, Name: "Water bill",
		Amount: decimal.NewFromInt(30), AccountID: uuid.NewString(),
		NextDue: now.AddDate(0, 0, 3), Frequency: domain.Monthly, IsActive: true, Kind: domain.Expense,
	}

	suite.mockRecurringRepo.On("ListDueRules", ctx, now).Return([]domain.RecurringRule{}, nil).Once()
	suite.mockRecurringRepo.On("ListRulesDueBetween", ctx, now, mock.AnythingOfType("time.Time")).
		Return([]domain.RecurringRule{nearRule, farRule}, nil).Once()
	suite.mockSettingSvc.On("DueSoonDays", ctx, nearUser).Return(7).Once()
	suite.mockSettingSvc.On("DueSoonDays", ctx, farUser).Return(1).Once()
	suite.mockNotifier.On("Notify", ctx, nearUser, mock.MatchedBy(func(req domain.NotificationRequest) bool {
		return req.Title == "Upcoming bill"
	})).Return(nil).Once()

	err := suite.service.ProcessDueRules(ctx, now)

	suite.Require().NoError(err)
	suite.mockNotifier.AssertNumberOfCalls(suite.T(), "Notify", 1)
	suite.mockSettingSvc.AssertExpectations(suite.T())
}

func (suite *RecurringServiceTestSuite) TestUpdateRule_NeverTouchesNextDue() {
	ctx := context.Background()
	userID := uuid.NewString()
	originalDue := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	rule := &domain.RecurringRule{
		RuleID:    uuid.NewString(),
		UserID:    userID,
		Name:      "Spotify",
		Amount:    decimal.NewFromInt(10),
		AccountID: uuid.NewString(),
		NextDue:   originalDue,
		Frequency: domain.Monthly,
		IsActive:  true,
		Kind:      domain.Expense,
	}

	newName := "Spotify Family"
	req := dto.UpdateRecurringRuleRequest{Name: &newName}

	suite.mockRecurringRepo.On("FindRuleByID", ctx, rule.RuleID).Return(rule, nil).Once()
	suite.mockRecurringRepo.On("UpdateRule", ctx, mock.MatchedBy(func(r domain.RecurringRule) bool {
		return r.Name == newName && r.NextDue.Equal(originalDue)
	})).Return(nil).Once()

	updated, err := suite.service.UpdateRule(ctx, userID, rule.RuleID, req)

	suite.Require().NoError(err)
	suite.Equal(originalDue, updated.NextDue)
	suite.mockRecurringRepo.AssertExpectations(suite.T())
}

func TestRecurringService(t *testing.T) {
	suite.Run(t, new(RecurringServiceTestSuite))
}
