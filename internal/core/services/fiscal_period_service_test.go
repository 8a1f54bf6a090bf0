package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/lukmanha083/kidkazz-ledger/internal/apperrors"
	"github.com/lukmanha083/kidkazz-ledger/internal/core/domain"
	"github.com/lukmanha083/kidkazz-ledger/internal/core/services"
)

type FiscalPeriodServiceTestSuite struct {
	suite.Suite
	mockPeriodRepo *MockFiscalPeriodRepository
	service        *services.FiscalPeriodService
}

func (suite *FiscalPeriodServiceTestSuite) SetupTest() {
	suite.mockPeriodRepo = new(MockFiscalPeriodRepository)
	suite.service = services.NewFiscalPeriodService(suite.mockPeriodRepo)
}

func (suite *FiscalPeriodServiceTestSuite) TestOpenPeriod_Success() {
	ctx := context.Background()
	existing := &domain.FiscalPeriod{FiscalYear: 2025, FiscalMonth: 4, Status: domain.PeriodOpen}
	suite.mockPeriodRepo.On("SavePeriod", ctx, mock.AnythingOfType("domain.FiscalPeriod")).Return(existing, nil).Once()

	period, err := suite.service.OpenPeriod(ctx, 2025, 4, "admin")

	suite.Require().NoError(err)
	suite.Equal(domain.PeriodOpen, period.Status)
	suite.mockPeriodRepo.AssertExpectations(suite.T())
}

func (suite *FiscalPeriodServiceTestSuite) TestOpenPeriod_InvalidMonth() {
	ctx := context.Background()

	_, err := suite.service.OpenPeriod(ctx, 2025, 13, "admin")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockPeriodRepo.AssertNotCalled(suite.T(), "SavePeriod", mock.Anything, mock.Anything)
}

func (suite *FiscalPeriodServiceTestSuite) TestClosePeriod_Success() {
	ctx := context.Background()
	open := &domain.FiscalPeriod{FiscalYear: 2025, FiscalMonth: 4, Status: domain.PeriodOpen}
	suite.mockPeriodRepo.On("TransitionPeriod", ctx, 2025, 4).Return(open, nil).Once()

	period, err := suite.service.ClosePeriod(ctx, 2025, 4, "admin")

	suite.Require().NoError(err)
	suite.Equal(domain.PeriodClosed, period.Status)
	suite.Equal("admin", period.ClosedBy)
	suite.Require().NotNil(period.ClosedAt)
}

func (suite *FiscalPeriodServiceTestSuite) TestClosePeriod_AlreadyClosed() {
	ctx := context.Background()
	closedAt := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	closed := &domain.FiscalPeriod{FiscalYear: 2025, FiscalMonth: 4, Status: domain.PeriodClosed, ClosedAt: &closedAt, ClosedBy: "admin"}
	suite.mockPeriodRepo.On("TransitionPeriod", ctx, 2025, 4).Return(closed, nil).Once()

	period, err := suite.service.ClosePeriod(ctx, 2025, 4, "someone-else")

	// Closing twice is a no-op: the original close audit fields survive.
	suite.Require().NoError(err)
	suite.Equal(domain.PeriodClosed, period.Status)
	suite.Equal("admin", period.ClosedBy)
	suite.Equal(closedAt, *period.ClosedAt)
}

func (suite *FiscalPeriodServiceTestSuite) TestClosePeriod_Locked() {
	ctx := context.Background()
	locked := &domain.FiscalPeriod{FiscalYear: 2025, FiscalMonth: 4, Status: domain.PeriodLocked}
	suite.mockPeriodRepo.On("TransitionPeriod", ctx, 2025, 4).Return(locked, nil).Once()

	_, err := suite.service.ClosePeriod(ctx, 2025, 4, "admin")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrPeriodLocked)
}

func (suite *FiscalPeriodServiceTestSuite) TestReopenPeriod_Success() {
	ctx := context.Background()
	closed := &domain.FiscalPeriod{FiscalYear: 2025, FiscalMonth: 4, Status: domain.PeriodClosed}
	suite.mockPeriodRepo.On("TransitionPeriod", ctx, 2025, 4).Return(closed, nil).Once()

	period, err := suite.service.ReopenPeriod(ctx, 2025, 4, "admin", "late vendor invoice")

	suite.Require().NoError(err)
	suite.Equal(domain.PeriodOpen, period.Status)
	suite.Equal("late vendor invoice", period.ReopenReason)
	suite.Equal("admin", period.ReopenedBy)
}

func (suite *FiscalPeriodServiceTestSuite) TestReopenPeriod_MissingReason() {
	ctx := context.Background()
	closed := &domain.FiscalPeriod{FiscalYear: 2025, FiscalMonth: 4, Status: domain.PeriodClosed}
	suite.mockPeriodRepo.On("TransitionPeriod", ctx, 2025, 4).Return(closed, nil).Once()

	_, err := suite.service.ReopenPeriod(ctx, 2025, 4, "admin", "")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *FiscalPeriodServiceTestSuite) TestReopenPeriod_NotClosed() {
	ctx := context.Background()
	open := &domain.FiscalPeriod{FiscalYear: 2025, FiscalMonth: 4, Status: domain.PeriodOpen}
	suite.mockPeriodRepo.On("TransitionPeriod", ctx, 2025, 4).Return(open, nil).Once()

	_, err := suite.service.ReopenPeriod(ctx, 2025, 4, "admin", "oops")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *FiscalPeriodServiceTestSuite) TestReopenPeriod_Locked() {
	ctx := context.Background()
	locked := &domain.FiscalPeriod{FiscalYear: 2025, FiscalMonth: 4, Status: domain.PeriodLocked}
	suite.mockPeriodRepo.On("TransitionPeriod", ctx, 2025, 4).Return(locked, nil).Once()

	_, err := suite.service.ReopenPeriod(ctx, 2025, 4, "admin", "audit finding")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrPeriodLocked)
}

func (suite *FiscalPeriodServiceTestSuite) TestLockPeriod_Success() {
	ctx := context.Background()
	closed := &domain.FiscalPeriod{FiscalYear: 2025, FiscalMonth: 4, Status: domain.PeriodClosed}
	suite.mockPeriodRepo.On("TransitionPeriod", ctx, 2025, 4).Return(closed, nil).Once()

	period, err := suite.service.LockPeriod(ctx, 2025, 4, "admin")

	suite.Require().NoError(err)
	suite.Equal(domain.PeriodLocked, period.Status)
}

func (suite *FiscalPeriodServiceTestSuite) TestLockPeriod_StillOpen() {
	ctx := context.Background()
	open := &domain.FiscalPeriod{FiscalYear: 2025, FiscalMonth: 4, Status: domain.PeriodOpen}
	suite.mockPeriodRepo.On("TransitionPeriod", ctx, 2025, 4).Return(open, nil).Once()

	_, err := suite.service.LockPeriod(ctx, 2025, 4, "admin")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *FiscalPeriodServiceTestSuite) TestLockPeriod_AlreadyLocked() {
	ctx := context.Background()
	locked := &domain.FiscalPeriod{FiscalYear: 2025, FiscalMonth: 4, Status: domain.PeriodLocked}
	suite.mockPeriodRepo.On("TransitionPeriod", ctx, 2025, 4).Return(locked, nil).Once()

	_, err := suite.service.LockPeriod(ctx, 2025, 4, "admin")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrAlreadyLocked)
}

func (suite *FiscalPeriodServiceTestSuite) TestIsOpen_NeverOpened() {
	ctx := context.Background()
	suite.mockPeriodRepo.On("FindPeriod", ctx, 2025, 7).Return(nil, apperrors.ErrNotFound).Once()

	open, err := suite.service.IsOpen(ctx, 2025, 7)

	suite.Require().NoError(err)
	suite.False(open)
}

func (suite *FiscalPeriodServiceTestSuite) TestIsOpen_OpenPeriod() {
	ctx := context.Background()
	period := &domain.FiscalPeriod{FiscalYear: 2025, FiscalMonth: 7, Status: domain.PeriodOpen}
	suite.mockPeriodRepo.On("FindPeriod", ctx, 2025, 7).Return(period, nil).Once()

	open, err := suite.service.IsOpen(ctx, 2025, 7)

	suite.Require().NoError(err)
	suite.True(open)
}

func TestFiscalPeriodService(t *testing.T) {
	suite.Run(t, new(FiscalPeriodServiceTestSuite))
}
