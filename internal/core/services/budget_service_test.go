package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/centsible/centsible_backend/internal/apperrors"
	"github.com/centsible/centsible_backend/internal/core/domain"
	"github.com/centsible/centsible_backend/internal/core/services"
	"github.com/centsible/centsible_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type BudgetServiceTestSuite struct {
	suite.Suite
	mockBudgetRepo   *MockBudgetRepository
	mockCategoryRepo *MockCategoryRepository
	mockTxnRepo      *MockTransactionRepository
	mockNotifier     *MockNotifier
	service          *services.BudgetService
}

func (suite *BudgetServiceTestSuite) SetupTest() {
	suite.mockBudgetRepo = new(MockBudgetRepository)
	suite.mockCategoryRepo = new(MockCategoryRepository)
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockNotifier = new(MockNotifier)
	suite.service = services.NewBudgetService(
		suite.mockBudgetRepo,
		suite.mockCategoryRepo,
		suite.mockTxnRepo,
		suite.mockNotifier,
	)
}

func (suite *BudgetServiceTestSuite) TestCreateBudget_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	req := dto.CreateBudgetRequest{Month: 6, Year: 2025, Note: "Summer plan"}

	suite.mockBudgetRepo.On("SaveBudget", ctx, mock.AnythingOfType("domain.Budget")).Return(nil).Once()

	budget, err := suite.service.CreateBudget(ctx, userID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(budget)
	suite.Equal(6, budget.Month)
	suite.Equal(2025, budget.Year)
	suite.mockBudgetRepo.AssertExpectations(suite.T())
}

func (suite *BudgetServiceTestSuite) TestCreateBudget_DuplicatePeriod() {
	ctx := context.Background()
	req := dto.CreateBudgetRequest{Month: 6, Year: 2025}

	suite.mockBudgetRepo.On("SaveBudget", ctx, mock.AnythingOfType("domain.Budget")).Return(apperrors.ErrDuplicate).Once()

	budget, err := suite.service.CreateBudget(ctx, uuid.NewString(), req)

	suite.Require().Error(err)
	suite.Nil(budget)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *BudgetServiceTestSuite) TestAddBudgetCategory_RejectsIncomeCategory() {
	ctx := context.Background()
	userID := uuid.NewString()
	budget := &domain.Budget{BudgetID: uuid.NewString(), UserID: userID, Month: 6, Year: 2025}
	category := &domain.Category{CategoryID: uuid.NewString(), UserID: userID, Name: "Salary", Kind: domain.IncomeCategory}

	req := dto.AddBudgetCategoryRequest{CategoryID: category.CategoryID, Planned: decimal.NewFromInt(100)}

	suite.mockBudgetRepo.On("FindBudgetByID", ctx, budget.BudgetID).Return(budget, nil).Once()
	suite.mockCategoryRepo.On("FindCategoryByID", ctx, category.CategoryID).Return(category, nil).Once()

	link, err := suite.service.AddBudgetCategory(ctx, userID, budget.BudgetID, req)

	suite.Require().Error(err)
	suite.Nil(link)
	suite.mockBudgetRepo.AssertNotCalled(suite.T(), "SaveBudgetCategory", mock.Anything, mock.Anything)
}

func (suite *BudgetServiceTestSuite) TestAddBudgetCategory_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	budget := &domain.Budget{BudgetID: uuid.NewString(), UserID: userID, Month: 6, Year: 2025}
	category := &domain.Category{CategoryID: uuid.NewString(), UserID: userID, Name: "Groceries", Kind: domain.ExpenseCategory}

	req := dto.AddBudgetCategoryRequest{
		CategoryID:      category.CategoryID,
		Planned:         decimal.NewFromInt(400),
		ReminderEnabled: true,
	}

	suite.mockBudgetRepo.On("FindBudgetByID", ctx, budget.BudgetID).Return(budget, nil).Once()
	suite.mockCategoryRepo.On("FindCategoryByID", ctx, category.CategoryID).Return(category, nil).Once()
	suite.mockBudgetRepo.On("SaveBudgetCategory", ctx, mock.AnythingOfType("domain.BudgetCategory")).Return(nil).Once()

	link, err := suite.service.AddBudgetCategory(ctx, userID, budget.BudgetID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(link)
	suite.True(link.Planned.Equal(decimal.NewFromInt(400)))
	suite.True(link.ReminderEnabled)
	suite.mockBudgetRepo.AssertExpectations(suite.T())
}

// June 10th: a third of the month gone but 80% of the plan spent. Spending
// leads time by well over the margin, so the pace alert fires.
func (suite *BudgetServiceTestSuite) TestEvaluatePace_SpendingAheadOfTimeFiresAlert() {
	ctx := context.Background()
	now := time.Date(2025, 6, 10, 6, 0, 0, 0, time.UTC)
	userID := uuid.NewString()

	budget := domain.Budget{BudgetID: uuid.NewString(), UserID: userID, Month: 6, Year: 2025}
	category := &domain.Category{CategoryID: uuid.NewString(), UserID: userID, Name: "Dining out", Kind: domain.ExpenseCategory}
	link := domain.BudgetCategory{
		BudgetCategoryID: uuid.NewString(),
		BudgetID:         budget.BudgetID,
		CategoryID:       category.CategoryID,
		Planned:          decimal.NewFromInt(100),
		ReminderEnabled:  false,
	}

	suite.mockBudgetRepo.On("ListBudgetsForPeriod", ctx, 6, 2025).Return([]domain.Budget{budget}, nil).Once()
	suite.mockBudgetRepo.On("ListBudgetCategories", ctx, budget.BudgetID).Return([]domain.BudgetCategory{link}, nil).Once()
	suite.mockTxnRepo.On("SumExpensesByCategory", ctx, userID, category.CategoryID,
		time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)).
		Return(decimal.NewFromInt(80), nil).Once()
	suite.mockCategoryRepo.On("FindCategoryByID", ctx, category.CategoryID).Return(category, nil).Once()
	suite.mockNotifier.On("Notify", ctx, userID, mock.MatchedBy(func(req domain.NotificationRequest) bool {
		return req.Title == "Spending faster than planned" && req.Category == domain.BudgetNotification
	})).Return(nil).Once()

	err := suite.service.EvaluatePace(ctx, now)

	suite.Require().NoError(err)
	suite.mockNotifier.AssertNumberOfCalls(suite.T(), "Notify", 1)
}

// June 28th: 85% spent but 93% of the month gone. Spending trails time, so no
// pace alert; the opt-in reminder still fires because spending crossed 80%.
func (suite *BudgetServiceTestSuite) TestEvaluatePace_LateMonthOnlyReminderFires() {
	ctx := context.Background()
	now := time.Date(2025, 6, 28, 6, 0, 0, 0, time.UTC)
	userID := uuid.NewString()

	budget := domain.Budget{BudgetID: uuid.NewString(), UserID: userID, Month: 6, Year: 2025}
	category := &domain.Category{CategoryID: uuid.NewString(), UserID: userID, Name: "Transport", Kind: domain.ExpenseCategory}
	link := domain.BudgetCategory{
		BudgetCategoryID: uuid.NewString(),
		BudgetID:         budget.BudgetID,
		CategoryID:       category.CategoryID,
		Planned:          decimal.NewFromInt(100),
		ReminderEnabled:  true,
	}

	suite.mockBudgetRepo.On("ListBudgetsForPeriod", ctx, 6, 2025).Return([]domain.Budget{budget}, nil).Once()
	suite.mockBudgetRepo.On("ListBudgetCategories", ctx, budget.BudgetID).Return([]domain.BudgetCategory{link}, nil).Once()
	suite.mockTxnRepo.On("SumExpensesByCategory", ctx, userID, category.CategoryID,
		mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
		Return(decimal.NewFromInt(85), nil).Once()
	suite.mockCategoryRepo.On("FindCategoryByID", ctx, category.CategoryID).Return(category, nil).Once()
	suite.mockNotifier.On("Notify", ctx, userID, mock.MatchedBy(func(req domain.NotificationRequest) bool {
		return req.Title == "Budget almost used up"
	})).Return(nil).Once()

	err := suite.service.EvaluatePace(ctx, now)

	suite.Require().NoError(err)
	suite.mockNotifier.AssertNumberOfCalls(suite.T(), "Notify", 1)
}

func (suite *BudgetServiceTestSuite) TestEvaluatePace_ZeroPlannedIsSkipped() {
	ctx := context.Background()
	now := time.Date(2025, 6, 10, 6, 0, 0, 0, time.UTC)
	userID := uuid.NewString()

	budget := domain.Budget{BudgetID: uuid.NewString(), UserID: userID, Month: 6, Year: 2025}
	link := domain.BudgetCategory{
		BudgetCategoryID: uuid.NewString(),
		BudgetID:         budget.BudgetID,
		CategoryID:       uuid.NewString(),
		Planned:          decimal.Zero,
	}

	suite.mockBudgetRepo.On("ListBudgetsForPeriod", ctx, 6, 2025).Return([]domain.Budget{budget}, nil).Once()
	suite.mockBudgetRepo.On("ListBudgetCategories", ctx, budget.BudgetID).Return([]domain.BudgetCategory{link}, nil).Once()

	err := suite.service.EvaluatePace(ctx, now)

	suite.Require().NoError(err)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SumExpensesByCategory",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockNotifier.AssertNotCalled(suite.T(), "Notify", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BudgetServiceTestSuite) TestGetBudget_WrongOwner() {
	ctx := context.Background()
	budgetID := uuid.NewString()
	other := &domain.Budget{BudgetID: budgetID, UserID: uuid.NewString()}

	suite.mockBudgetRepo.On("FindBudgetByID", ctx, budgetID).Return(other, nil).Once()

	budget, links, err := suite.service.GetBudget(ctx, uuid.NewString(), budgetID)

	suite.Require().Error(err)
	suite.Nil(budget)
	suite.Nil(links)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func TestBudgetService(t *testing.T) {
	suite.Run(t, new(BudgetServiceTestSuite))
}
