package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/centsible/centsible_backend/internal/apperrors"
	"github.com/centsible/centsible_backend/internal/core/domain"
	"github.com/centsible/centsible_backend/internal/core/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type SettingServiceTestSuite struct {
	suite.Suite
	mockSettingRepo *MockSettingRepository
	service         *services.SettingService
}

func (suite *SettingServiceTestSuite) SetupTest() {
	suite.mockSettingRepo = new(MockSettingRepository)
	suite.service = services.NewSettingService(suite.mockSettingRepo)
}

func (suite *SettingServiceTestSuite) TestGetSetting_StoredValue() {
	ctx := context.Background()
	userID := uuid.NewString()
	stored := &domain.Setting{UserID: userID, Key: domain.SettingTheme, Value: "dark"}

	suite.mockSettingRepo.On("GetSetting", ctx, userID, domain.SettingTheme).Return(stored, nil).Once()

	value, err := suite.service.GetSetting(ctx, userID, domain.SettingTheme)

	suite.Require().NoError(err)
	suite.Equal("dark", value)
	suite.mockSettingRepo.AssertExpectations(suite.T())
}

func (suite *SettingServiceTestSuite) TestGetSetting_UnwrittenKeyFallsBackToDefault() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockSettingRepo.On("GetSetting", ctx, userID, domain.SettingCurrency).Return(nil, apperrors.ErrNotFound).Once()

	value, err := suite.service.GetSetting(ctx, userID, domain.SettingCurrency)

	suite.Require().NoError(err)
	suite.Equal("USD", value)
}

func (suite *SettingServiceTestSuite) TestGetSetting_UnknownKey() {
	ctx := context.Background()

	value, err := suite.service.GetSetting(ctx, uuid.NewString(), "no_such_key")

	suite.Require().Error(err)
	suite.Empty(value)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockSettingRepo.AssertNotCalled(suite.T(), "GetSetting", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SettingServiceTestSuite) TestListSettings_OverlaysStoredOnDefaults() {
	ctx := context.Background()
	userID := uuid.NewString()
	stored := []domain.Setting{
		{UserID: userID, Key: domain.SettingTheme, Value: "dark"},
		{UserID: userID, Key: domain.SettingDueSoonDays, Value: "14"},
	}

	suite.mockSettingRepo.On("ListSettings", ctx, userID).Return(stored, nil).Once()

	effective, err := suite.service.ListSettings(ctx, userID)

	suite.Require().NoError(err)
	suite.Len(effective, len(domain.SettingDefaults))
	suite.Equal("dark", effective[domain.SettingTheme])
	suite.Equal("14", effective[domain.SettingDueSoonDays])
	suite.Equal("USD", effective[domain.SettingCurrency])
	suite.Equal("en", effective[domain.SettingLanguage])
}

func (suite *SettingServiceTestSuite) TestPutSetting_Success() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockSettingRepo.On("UpsertSetting", ctx, mock.MatchedBy(func(setting domain.Setting) bool {
		return setting.UserID == userID &&
			setting.Key == domain.SettingTheme &&
			setting.Value == "dark" &&
			time.Since(setting.LastUpdatedAt) < time.Second
	})).Return(nil).Once()

	err := suite.service.PutSetting(ctx, userID, domain.SettingTheme, "dark")

	suite.Require().NoError(err)
	suite.mockSettingRepo.AssertExpectations(suite.T())
}

func (suite *SettingServiceTestSuite) TestPutSetting_UnknownKey() {
	ctx := context.Background()

	err := suite.service.PutSetting(ctx, uuid.NewString(), "no_such_key", "x")

	suite.Require().Error(err)
	var appErr *apperrors.AppError
	suite.Require().ErrorAs(err, &appErr)
	suite.Equal(400, appErr.Code)
	suite.mockSettingRepo.AssertNotCalled(suite.T(), "UpsertSetting", mock.Anything, mock.Anything)
}

func (suite *SettingServiceTestSuite) TestPutSetting_DueSoonDaysMustBeNonNegativeInt() {
	ctx := context.Background()
	userID := uuid.NewString()

	// 45 is out of range: the recurrence engine only prefetches rules due
	// within MaxDueSoonDays, so a wider window would silently never remind.
	for _, bad := range []string{"abc", "-1", "3.5", "", "32", "45"} {
		err := suite.service.PutSetting(ctx, userID, domain.SettingDueSoonDays, bad)
		suite.Require().Error(err, "value %q should be rejected", bad)
	}
	suite.mockSettingRepo.AssertNotCalled(suite.T(), "UpsertSetting", mock.Anything, mock.Anything)

	suite.mockSettingRepo.On("UpsertSetting", ctx, mock.AnythingOfType("domain.Setting")).Return(nil).Times(2)
	suite.Require().NoError(suite.service.PutSetting(ctx, userID, domain.SettingDueSoonDays, "0"))
	suite.Require().NoError(suite.service.PutSetting(ctx, userID, domain.SettingDueSoonDays, "31"))
}

func (suite *SettingServiceTestSuite) TestDueSoonDays_OversizedStoredValueIsClamped() {
	ctx := context.Background()
	userID := uuid.NewString()
	stored := &domain.Setting{UserID: userID, Key: domain.SettingDueSoonDays, Value: "45"}

	suite.mockSettingRepo.On("GetSetting", ctx, userID, domain.SettingDueSoonDays).Return(stored, nil).Once()

	suite.Equal(domain.MaxDueSoonDays, suite.service.DueSoonDays(ctx, userID))
}

func (suite *SettingServiceTestSuite) TestDueSoonDays_StoredValue() {
	ctx := context.Background()
	userID := uuid.NewString()
	stored := &domain.Setting{UserID: userID, Key: domain.SettingDueSoonDays, Value: "14"}

	suite.mockSettingRepo.On("GetSetting", ctx, userID, domain.SettingDueSoonDays).Return(stored, nil).Once()

	suite.Equal(14, suite.service.DueSoonDays(ctx, userID))
}

func (suite *SettingServiceTestSuite) TestDueSoonDays_RepoErrorFallsBackToDefault() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockSettingRepo.On("GetSetting", ctx, userID, domain.SettingDueSoonDays).Return(nil, assert.AnError).Once()

	suite.Equal(7, suite.service.DueSoonDays(ctx, userID))
}

func (suite *SettingServiceTestSuite) TestDueSoonDays_GarbageValueFallsBackToDefault() {
	ctx := context.Background()
	userID := uuid.NewString()
	stored := &domain.Setting{UserID: userID, Key: domain.SettingDueSoonDays, Value: "soon"}

	suite.mockSettingRepo.On("GetSetting", ctx, userID, domain.SettingDueSoonDays).Return(stored, nil).Once()

	suite.Equal(7, suite.service.DueSoonDays(ctx, userID))
}

func TestSettingService(t *testing.T) {
	suite.Run(t, new(SettingServiceTestSuite))
}
