package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/lukmanha083/kidkazz-ledger/internal/apperrors"
	"github.com/lukmanha083/kidkazz-ledger/internal/core/domain"
	"github.com/lukmanha083/kidkazz-ledger/internal/core/services"
	"github.com/lukmanha083/kidkazz-ledger/internal/dto"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	service         *services.AccountService
	userID          string
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewAccountService(suite.mockAccountRepo)
	suite.userID = uuid.NewString()
}

func (suite *AccountServiceTestSuite) TestCreateAccount_Defaults() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Code:        "1000",
		Name:        "Cash",
		AccountType: "ASSET",
	}

	var saved domain.Account
	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.Account) }).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.NormalDebit, account.NormalBalance)
	suite.Equal(1, account.Level)
	suite.True(account.IsDetailAccount)
	suite.Equal(domain.AccountActive, account.Status)
	suite.Equal(saved.AccountID, account.AccountID)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_CreditDefaultForLiability() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Code: "2000", Name: "Accounts Payable", AccountType: "LIABILITY"}

	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.NormalCredit, account.NormalBalance)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_UnderSummaryParent() {
	ctx := context.Background()
	parent := &domain.Account{
		AccountID:       uuid.NewString(),
		Code:            "1",
		AccountType:     domain.Asset,
		Level:           1,
		IsDetailAccount: false,
		Status:          domain.AccountActive,
	}
	req := dto.CreateAccountRequest{Code: "1100", Name: "Bank", AccountType: "ASSET", ParentAccountID: parent.AccountID}

	suite.mockAccountRepo.On("FindAccountByID", ctx, parent.AccountID).Return(parent, nil).Once()
	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(2, account.Level)
	suite.Equal(parent.AccountID, account.ParentAccountID)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DetailParentRejected() {
	ctx := context.Background()
	parent := &domain.Account{
		AccountID:       uuid.NewString(),
		Code:            "1000",
		AccountType:     domain.Asset,
		Level:           2,
		IsDetailAccount: true,
		Status:          domain.AccountActive,
	}
	req := dto.CreateAccountRequest{Code: "1001", Name: "Petty Cash", AccountType: "ASSET", ParentAccountID: parent.AccountID}

	suite.mockAccountRepo.On("FindAccountByID", ctx, parent.AccountID).Return(parent, nil).Once()

	_, err := suite.service.CreateAccount(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidHierarchy)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_ParentTypeMismatch() {
	ctx := context.Background()
	parent := &domain.Account{
		AccountID:       uuid.NewString(),
		Code:            "4",
		AccountType:     domain.Revenue,
		Level:           1,
		IsDetailAccount: false,
		Status:          domain.AccountActive,
	}
	req := dto.CreateAccountRequest{Code: "1100", Name: "Bank", AccountType: "ASSET", ParentAccountID: parent.AccountID}

	suite.mockAccountRepo.On("FindAccountByID", ctx, parent.AccountID).Return(parent, nil).Once()

	_, err := suite.service.CreateAccount(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidHierarchy)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DuplicateCode() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Code: "1000", Name: "Cash", AccountType: "ASSET"}

	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(apperrors.ErrDuplicateCode).Once()

	_, err := suite.service.CreateAccount(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicateCode)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_StructuralChangeWithPostings() {
	ctx := context.Background()
	account := &domain.Account{
		AccountID:       uuid.NewString(),
		Code:            "1000",
		AccountType:     domain.Asset,
		NormalBalance:   domain.NormalDebit,
		IsDetailAccount: true,
		Status:          domain.AccountActive,
	}
	newNormal := "CREDIT"
	req := dto.UpdateAccountRequest{NormalBalance: &newNormal}

	suite.mockAccountRepo.On("FindAccountByID", ctx, account.AccountID).Return(account, nil).Once()
	suite.mockAccountRepo.On("HasPostings", ctx, account.AccountID).Return(true, nil).Once()

	_, err := suite.service.UpdateAccount(ctx, account.AccountID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrAccountHasTransactions)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "UpdateAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_RenameAlwaysAllowed() {
	ctx := context.Background()
	account := &domain.Account{
		AccountID:       uuid.NewString(),
		Code:            "1000",
		Name:            "Cash",
		AccountType:     domain.Asset,
		IsDetailAccount: true,
		Status:          domain.AccountActive,
	}
	newName := "Cash on Hand"
	req := dto.UpdateAccountRequest{Name: &newName}

	suite.mockAccountRepo.On("FindAccountByID", ctx, account.AccountID).Return(account, nil).Once()
	suite.mockAccountRepo.On("UpdateAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	updated, err := suite.service.UpdateAccount(ctx, account.AccountID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("Cash on Hand", updated.Name)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "HasPostings", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount_Success() {
	ctx := context.Background()
	account := &domain.Account{
		AccountID:       uuid.NewString(),
		Code:            "1000",
		AccountType:     domain.Asset,
		IsDetailAccount: true,
		Status:          domain.AccountActive,
	}

	var updated domain.Account
	suite.mockAccountRepo.On("FindAccountByID", ctx, account.AccountID).Return(account, nil).Once()
	suite.mockAccountRepo.On("UpdateAccount", ctx, mock.AnythingOfType("domain.Account")).
		Run(func(args mock.Arguments) { updated = args.Get(1).(domain.Account) }).Return(nil).Once()

	err := suite.service.DeactivateAccount(ctx, account.AccountID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.AccountInactive, updated.Status)
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount_AlreadyInactive() {
	ctx := context.Background()
	account := &domain.Account{
		AccountID: uuid.NewString(),
		Code:      "1000",
		Status:    domain.AccountInactive,
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, account.AccountID).Return(account, nil).Once()

	err := suite.service.DeactivateAccount(ctx, account.AccountID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AccountServiceTestSuite) TestListAccountTree() {
	ctx := context.Background()
	rootID := uuid.NewString()
	childID := uuid.NewString()
	accounts := []domain.Account{
		{AccountID: rootID, Code: "1", Name: "Assets", AccountType: domain.Asset, Level: 1},
		{AccountID: childID, Code: "1000", Name: "Cash", AccountType: domain.Asset, ParentAccountID: rootID, Level: 2, IsDetailAccount: true},
		{AccountID: uuid.NewString(), Code: "2", Name: "Liabilities", AccountType: domain.Liability, Level: 1},
	}

	suite.mockAccountRepo.On("ListAccounts", ctx).Return(accounts, nil).Once()

	tree, err := suite.service.ListAccountTree(ctx)

	suite.Require().NoError(err)
	suite.Require().Len(tree, 2)
	suite.Equal("1", tree[0].Code)
	suite.Require().Len(tree[0].Children, 1)
	suite.Equal("1000", tree[0].Children[0].Code)
	suite.Empty(tree[1].Children)
}

func TestAccountService(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
