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
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type TransactionServiceTestSuite struct {
	suite.Suite
	mockTxnRepo      *MockTransactionRepository
	mockAccountRepo  *MockAccountRepository
	mockCategoryRepo *MockCategoryRepository
	service          *services.TransactionService
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockCategoryRepo = new(MockCategoryRepository)
	suite.service = services.NewTransactionService(suite.mockTxnRepo, suite.mockAccountRepo, suite.mockCategoryRepo)
}

func (suite *TransactionServiceTestSuite) activeAccount(userID string) *domain.Account {
	return &domain.Account{AccountID: uuid.NewString(), UserID: userID, IsActive: true}
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_ExpenseReconcilesAccount() {
	ctx := context.Background()
	userID := uuid.NewString()
	account := suite.activeAccount(userID)

	req := dto.CreateTransactionRequest{
		Description: "Groceries",
		Amount:      decimal.NewFromInt(80),
		Kind:        domain.Expense,
		AccountID:   account.AccountID,
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, account.AccountID).Return(account, nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction")).Return(nil).Once()
	suite.mockTxnRepo.On("RecalculateAccountBalance", ctx, account.AccountID, userID, mock.AnythingOfType("time.Time")).
		Return(decimal.NewFromInt(-80), nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, userID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.NotEmpty(txn.TransactionID)
	suite.Equal(userID, txn.UserID)
	suite.Equal(domain.Expense, txn.Kind)
	suite.WithinDuration(time.Now(), txn.OccurredAt, time.Second)

	suite.mockTxnRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_TransferReconcilesBothAccounts() {
	ctx := context.Background()
	userID := uuid.NewString()
	source := suite.activeAccount(userID)
	dest := suite.activeAccount(userID)

	req := dto.CreateTransactionRequest{
		Description:          "Move to savings",
		Amount:               decimal.NewFromInt(500),
		Kind:                 domain.Transfer,
		AccountID:            source.AccountID,
		DestinationAccountID: &dest.AccountID,
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, source.AccountID).Return(source, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, dest.AccountID).Return(dest, nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction")).Return(nil).Once()
	suite.mockTxnRepo.On("RecalculateAccountBalance", ctx, source.AccountID, userID, mock.AnythingOfType("time.Time")).
		Return(decimal.NewFromInt(-500), nil).Once()
	suite.mockTxnRepo.On("RecalculateAccountBalance", ctx, dest.AccountID, userID, mock.AnythingOfType("time.Time")).
		Return(decimal.NewFromInt(500), nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, userID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_InvalidAmount() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Description: "Bad",
		Amount:      decimal.Zero,
		Kind:        domain.Expense,
		AccountID:   uuid.NewString(),
	}

	txn, err := suite.service.CreateTransaction(ctx, uuid.NewString(), req)

	suite.Require().Error(err)
	suite.Nil(txn)
	var appErr *apperrors.AppError
	suite.Require().ErrorAs(err, &appErr)
	suite.Equal(400, appErr.Code)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_InactiveAccount() {
	ctx := context.Background()
	userID := uuid.NewString()
	account := &domain.Account{AccountID: uuid.NewString(), UserID: userID, IsActive: false}

	req := dto.CreateTransactionRequest{
		Description: "On closed account",
		Amount:      decimal.NewFromInt(10),
		Kind:        domain.Expense,
		AccountID:   account.AccountID,
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, account.AccountID).Return(account, nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, userID, req)

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_CategoryKindMismatch() {
	ctx := context.Background()
	userID := uuid.NewString()
	account := suite.activeAccount(userID)
	category := &domain.Category{CategoryID: uuid.NewString(), UserID: userID, Name: "Salary", Kind: domain.IncomeCategory}

	req := dto.CreateTransactionRequest{
		Description: "Mislabeled",
		Amount:      decimal.NewFromInt(25),
		Kind:        domain.Expense,
		AccountID:   account.AccountID,
		CategoryID:  &category.CategoryID,
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, account.AccountID).Return(account, nil).Once()
	suite.mockCategoryRepo.On("FindCategoryByID", ctx, category.CategoryID).Return(category, nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, userID, req)

	suite.Require().Error(err)
	suite.Nil(txn)
	var appErr *apperrors.AppError
	suite.Require().ErrorAs(err, &appErr)
	suite.Equal(400, appErr.Code)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_ReconcileFailureDoesNotFailCreate() {
	ctx := context.Background()
	userID := uuid.NewString()
	account := suite.activeAccount(userID)

	req := dto.CreateTransactionRequest{
		Description: "Coffee",
		Amount:      decimal.NewFromInt(4),
		Kind:        domain.Expense,
		AccountID:   account.AccountID,
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, account.AccountID).Return(account, nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction")).Return(nil).Once()
	// The write succeeded; a reconcile failure leaves the balance stale but
	// must not surface to the caller.
	suite.mockTxnRepo.On("RecalculateAccountBalance", ctx, account.AccountID, userID, mock.AnythingOfType("time.Time")).
		Return(decimal.Zero, assert.AnError).Once()

	txn, err := suite.service.CreateTransaction(ctx, userID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestGetTransaction_WrongOwner() {
	ctx := context.Background()
	txnID := uuid.NewString()
	existing := &domain.Transaction{TransactionID: txnID, UserID: uuid.NewString()}

	suite.mockTxnRepo.On("FindTransactionByID", ctx, txnID).Return(existing, nil).Once()

	txn, err := suite.service.GetTransaction(ctx, uuid.NewString(), txnID)

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_MoveReconcilesOldAndNewAccounts() {
	ctx := context.Background()
	userID := uuid.NewString()
	oldAccountID := uuid.NewString()
	newAccount := suite.activeAccount(userID)
	txnID := uuid.NewString()

	existing := &domain.Transaction{
		TransactionID: txnID,
		UserID:        userID,
		Description:   "Rent",
		Amount:        decimal.NewFromInt(900),
		Kind:          domain.Expense,
		OccurredAt:    time.Now().AddDate(0, 0, -1),
		AccountID:     oldAccountID,
	}

	req := dto.UpdateTransactionRequest{AccountID: &newAccount.AccountID}

	suite.mockTxnRepo.On("FindTransactionByID", ctx, txnID).Return(existing, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, newAccount.AccountID).Return(newAccount, nil).Once()
	suite.mockTxnRepo.On("UpdateTransaction", ctx, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.TransactionID == txnID && txn.AccountID == newAccount.AccountID
	})).Return(nil).Once()
	// Both the account the transaction left and the one it moved to get rewritten.
	suite.mockTxnRepo.On("RecalculateAccountBalance", ctx, oldAccountID, userID, mock.AnythingOfType("time.Time")).
		Return(decimal.Zero, nil).Once()
	suite.mockTxnRepo.On("RecalculateAccountBalance", ctx, newAccount.AccountID, userID, mock.AnythingOfType("time.Time")).
		Return(decimal.NewFromInt(-900), nil).Once()

	updated, err := suite.service.UpdateTransaction(ctx, userID, txnID, req)

	suite.Require().NoError(err)
	suite.Equal(newAccount.AccountID, updated.AccountID)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_DestinationOnNonTransfer() {
	ctx := context.Background()
	userID := uuid.NewString()
	txnID := uuid.NewString()
	destID := uuid.NewString()

	existing := &domain.Transaction{
		TransactionID: txnID,
		UserID:        userID,
		Amount:        decimal.NewFromInt(10),
		Kind:          domain.Expense,
		AccountID:     uuid.NewString(),
	}

	req := dto.UpdateTransactionRequest{DestinationAccountID: &destID}

	suite.mockTxnRepo.On("FindTransactionByID", ctx, txnID).Return(existing, nil).Once()

	updated, err := suite.service.UpdateTransaction(ctx, userID, txnID, req)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "UpdateTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_ReconcilesTouchedAccounts() {
	ctx := context.Background()
	userID := uuid.NewString()
	txnID := uuid.NewString()
	sourceID := uuid.NewString()
	destID := uuid.NewString()

	existing := &domain.Transaction{
		TransactionID:        txnID,
		UserID:               userID,
		Amount:               decimal.NewFromInt(200),
		Kind:                 domain.Transfer,
		AccountID:            sourceID,
		DestinationAccountID: &destID,
	}

	suite.mockTxnRepo.On("FindTransactionByID", ctx, txnID).Return(existing, nil).Once()
	suite.mockTxnRepo.On("DeleteTransaction", ctx, txnID).Return(nil).Once()
	suite.mockTxnRepo.On("RecalculateAccountBalance", ctx, sourceID, userID, mock.AnythingOfType("time.Time")).
		Return(decimal.Zero, nil).Once()
	suite.mockTxnRepo.On("RecalculateAccountBalance", ctx, destID, userID, mock.AnythingOfType("time.Time")).
		Return(decimal.Zero, nil).Once()

	err := suite.service.DeleteTransaction(ctx, userID, txnID)

	suite.Require().NoError(err)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func TestTransactionService(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
