package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/lukmanha083/kidkazz-ledger/internal/apperrors"
	"github.com/lukmanha083/kidkazz-ledger/internal/core/domain"
	portsrepo "github.com/lukmanha083/kidkazz-ledger/internal/core/ports/repositories"
	"github.com/lukmanha083/kidkazz-ledger/internal/core/services"
	"github.com/lukmanha083/kidkazz-ledger/internal/dto"
)

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByParent(ctx context.Context, parentAccountID string) ([]domain.Account, error) {
	args := m.Called(ctx, parentAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) HasPostings(ctx context.Context, accountID string) (bool, error) {
	args := m.Called(ctx, accountID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

// --- Mock FiscalPeriodRepository ---
type MockFiscalPeriodRepository struct {
	mock.Mock
}

var _ portsrepo.FiscalPeriodRepositoryFacade = (*MockFiscalPeriodRepository)(nil)

func (m *MockFiscalPeriodRepository) SavePeriod(ctx context.Context, period domain.FiscalPeriod) (*domain.FiscalPeriod, error) {
	args := m.Called(ctx, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalPeriod), args.Error(1)
}

func (m *MockFiscalPeriodRepository) FindPeriod(ctx context.Context, year, month int) (*domain.FiscalPeriod, error) {
	args := m.Called(ctx, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalPeriod), args.Error(1)
}

func (m *MockFiscalPeriodRepository) ListPeriods(ctx context.Context, year int) ([]domain.FiscalPeriod, error) {
	args := m.Called(ctx, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FiscalPeriod), args.Error(1)
}

// TransitionPeriod applies the callback to the configured period so tests
// exercise the real domain transitions through the service.
func (m *MockFiscalPeriodRepository) TransitionPeriod(ctx context.Context, year, month int, apply func(p *domain.FiscalPeriod) error) (*domain.FiscalPeriod, error) {
	args := m.Called(ctx, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	period := args.Get(0).(*domain.FiscalPeriod)
	if err := apply(period); err != nil {
		return nil, err
	}
	return period, args.Error(1)
}

// --- Mock JournalRepository ---
type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepositoryFacade = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalLine), args.Error(1)
}

func (m *MockJournalRepository) ListEntries(ctx context.Context, limit int, nextToken *string, includeVoided bool) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, limit, nextToken, includeVoided)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.JournalEntry), returnedNextToken, args.Error(2)
}

func (m *MockJournalRepository) ListLinesByAccount(ctx context.Context, accountID string, year, month int) ([]domain.JournalLine, error) {
	args := m.Called(ctx, accountID, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalLine), args.Error(1)
}

func (m *MockJournalRepository) NextEntryNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockJournalRepository) SavePosted(ctx context.Context, entry domain.JournalEntry, deltas []domain.BalanceDelta, event domain.PostingEvent) error {
	args := m.Called(ctx, entry, deltas, event)
	return args.Error(0)
}

func (m *MockJournalRepository) SaveVoided(ctx context.Context, entry domain.JournalEntry, deltas []domain.BalanceDelta, event domain.PostingEvent) error {
	args := m.Called(ctx, entry, deltas, event)
	return args.Error(0)
}

// --- Mock BalanceRepository ---
type MockBalanceRepository struct {
	mock.Mock
}

var _ portsrepo.BalanceRepositoryFacade = (*MockBalanceRepository)(nil)

func (m *MockBalanceRepository) GetBalance(ctx context.Context, accountID string, year, month int) (*domain.AccountBalance, error) {
	args := m.Called(ctx, accountID, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountBalance), args.Error(1)
}

func (m *MockBalanceRepository) ListBalancesForYear(ctx context.Context, accountID string, year, uptoMonth int) ([]domain.AccountBalance, error) {
	args := m.Called(ctx, accountID, year, uptoMonth)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountBalance), args.Error(1)
}

func (m *MockBalanceRepository) ListBalancesForPeriod(ctx context.Context, year, month int) ([]domain.AccountBalance, error) {
	args := m.Called(ctx, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountBalance), args.Error(1)
}

func (m *MockBalanceRepository) ApplyDeltas(ctx context.Context, tx pgx.Tx, deltas []domain.BalanceDelta, at time.Time) error {
	args := m.Called(ctx, tx, deltas, at)
	return args.Error(0)
}

func (m *MockBalanceRepository) RecomputePeriod(ctx context.Context, accountID string, year, month int) (*domain.AccountBalance, error) {
	args := m.Called(ctx, accountID, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountBalance), args.Error(1)
}

func (m *MockBalanceRepository) CarryForwardOpeningBalance(ctx context.Context, accountID string, fromYear, fromMonth, toYear, toMonth int) error {
	args := m.Called(ctx, accountID, fromYear, fromMonth, toYear, toMonth)
	return args.Error(0)
}

// --- Test Suite Setup ---
type PostingServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	mockPeriodRepo  *MockFiscalPeriodRepository
	mockJournalRepo *MockJournalRepository
	service         *services.PostingService
	cashAccount     domain.Account
	revenueAccount  domain.Account
	summaryAccount  domain.Account
	entryDate       time.Time
	userID          string
}

func (suite *PostingServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockPeriodRepo = new(MockFiscalPeriodRepository)
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.service = services.NewPostingService(suite.mockAccountRepo, suite.mockPeriodRepo, suite.mockJournalRepo)

	suite.entryDate = time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	suite.userID = uuid.NewString()

	suite.cashAccount = domain.Account{
		AccountID:       uuid.NewString(),
		Code:            "1000",
		AccountType:     domain.Asset,
		NormalBalance:   domain.NormalDebit,
		IsDetailAccount: true,
		Status:          domain.AccountActive,
	}
	suite.revenueAccount = domain.Account{
		AccountID:       uuid.NewString(),
		Code:            "4000",
		AccountType:     domain.Revenue,
		NormalBalance:   domain.NormalCredit,
		IsDetailAccount: true,
		Status:          domain.AccountActive,
	}
	suite.summaryAccount = domain.Account{
		AccountID:       uuid.NewString(),
		Code:            "1",
		AccountType:     domain.Asset,
		NormalBalance:   domain.NormalDebit,
		IsDetailAccount: false,
		Status:          domain.AccountActive,
	}
}

func (suite *PostingServiceTestSuite) openPeriod() *domain.FiscalPeriod {
	return &domain.FiscalPeriod{FiscalYear: 2025, FiscalMonth: 3, Status: domain.PeriodOpen}
}

func (suite *PostingServiceTestSuite) balancedRequest() dto.CreateEntryRequest {
	return dto.CreateEntryRequest{
		EntryDate:   suite.entryDate,
		Description: "March sale",
		Lines: []dto.EntryLineRequest{
			{AccountID: suite.cashAccount.AccountID, Direction: "DEBIT", Amount: decimal.NewFromInt(100)},
			{AccountID: suite.revenueAccount.AccountID, Direction: "CREDIT", Amount: decimal.NewFromInt(100)},
		},
	}
}

func (suite *PostingServiceTestSuite) accountsMap(accounts ...domain.Account) map[string]domain.Account {
	m := make(map[string]domain.Account, len(accounts))
	for _, a := range accounts {
		m[a.AccountID] = a
	}
	return m
}

// --- Test Cases ---

func (suite *PostingServiceTestSuite) TestPostEntry_Success() {
	ctx := context.Background()
	req := suite.balancedRequest()

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.AnythingOfType("[]string")).
		Return(suite.accountsMap(suite.cashAccount, suite.revenueAccount), nil).Once()
	suite.mockPeriodRepo.On("FindPeriod", ctx, 2025, 3).Return(suite.openPeriod(), nil).Once()
	suite.mockJournalRepo.On("NextEntryNumber", ctx).Return("JE-000042", nil).Once()

	var savedDeltas []domain.BalanceDelta
	var savedEvent domain.PostingEvent
	suite.mockJournalRepo.On("SavePosted", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.BalanceDelta"), mock.AnythingOfType("domain.PostingEvent")).
		Run(func(args mock.Arguments) {
			savedDeltas = args.Get(2).([]domain.BalanceDelta)
			savedEvent = args.Get(3).(domain.PostingEvent)
		}).Return(nil).Once()

	entry, err := suite.service.PostEntry(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.Equal(domain.Posted, entry.Status)
	suite.Equal("JE-000042", entry.EntryNumber)
	suite.Equal(2025, entry.FiscalYear)
	suite.Equal(3, entry.FiscalMonth)
	suite.Equal(domain.Manual, entry.EntryType)
	suite.Equal(suite.userID, entry.PostedBy)
	suite.Require().NotNil(entry.PostedAt)

	suite.Require().Len(savedDeltas, 2)
	suite.Equal(suite.cashAccount.AccountID, savedDeltas[0].AccountID)
	suite.True(savedDeltas[0].Debit.Equal(decimal.NewFromInt(100)))
	suite.True(savedDeltas[0].Credit.IsZero())
	suite.Equal(suite.revenueAccount.AccountID, savedDeltas[1].AccountID)
	suite.True(savedDeltas[1].Credit.Equal(decimal.NewFromInt(100)))

	suite.Equal(domain.EntryPostedEvent, savedEvent.EventType)
	suite.Equal(entry.EntryID, savedEvent.EntryID)
	suite.True(savedEvent.TotalAmount.Equal(decimal.NewFromInt(100)))

	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockPeriodRepo.AssertExpectations(suite.T())
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestPostEntry_Unbalanced() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.Lines[1].Amount = decimal.NewFromInt(99)

	_, err := suite.service.PostEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnbalancedEntry)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SavePosted", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestPostEntry_ExactDecimalBalance() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.Lines = []dto.EntryLineRequest{
		{AccountID: suite.cashAccount.AccountID, Direction: "DEBIT", Amount: decimal.RequireFromString("0.1")},
		{AccountID: suite.cashAccount.AccountID, Direction: "DEBIT", Amount: decimal.RequireFromString("0.2")},
		{AccountID: suite.revenueAccount.AccountID, Direction: "CREDIT", Amount: decimal.RequireFromString("0.3")},
	}

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.AnythingOfType("[]string")).
		Return(suite.accountsMap(suite.cashAccount, suite.revenueAccount), nil).Once()
	suite.mockPeriodRepo.On("FindPeriod", ctx, 2025, 3).Return(suite.openPeriod(), nil).Once()
	suite.mockJournalRepo.On("NextEntryNumber", ctx).Return("JE-000043", nil).Once()
	suite.mockJournalRepo.On("SavePosted", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.BalanceDelta"), mock.AnythingOfType("domain.PostingEvent")).Return(nil).Once()

	entry, err := suite.service.PostEntry(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.Posted, entry.Status)
}

func (suite *PostingServiceTestSuite) TestPostEntry_SingleLine() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.Lines = req.Lines[:1]

	_, err := suite.service.PostEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PostingServiceTestSuite) TestPostEntry_UnknownAccount() {
	ctx := context.Background()
	req := suite.balancedRequest()

	// Only the cash account resolves.
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.AnythingOfType("[]string")).
		Return(suite.accountsMap(suite.cashAccount), nil).Once()

	_, err := suite.service.PostEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidAccount)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SavePosted", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestPostEntry_SummaryAccount() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.Lines[0].AccountID = suite.summaryAccount.AccountID

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.AnythingOfType("[]string")).
		Return(suite.accountsMap(suite.summaryAccount, suite.revenueAccount), nil).Once()

	_, err := suite.service.PostEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidAccount)
}

func (suite *PostingServiceTestSuite) TestPostEntry_InactiveAccount() {
	ctx := context.Background()
	req := suite.balancedRequest()

	inactive := suite.cashAccount
	inactive.Status = domain.AccountInactive
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.AnythingOfType("[]string")).
		Return(suite.accountsMap(inactive, suite.revenueAccount), nil).Once()

	_, err := suite.service.PostEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidAccount)
}

func (suite *PostingServiceTestSuite) TestPostEntry_PeriodClosed() {
	ctx := context.Background()
	req := suite.balancedRequest()

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.AnythingOfType("[]string")).
		Return(suite.accountsMap(suite.cashAccount, suite.revenueAccount), nil).Once()
	closed := &domain.FiscalPeriod{FiscalYear: 2025, FiscalMonth: 3, Status: domain.PeriodClosed}
	suite.mockPeriodRepo.On("FindPeriod", ctx, 2025, 3).Return(closed, nil).Once()
	suite.mockJournalRepo.On("NextEntryNumber", ctx).Return("JE-000044", nil).Once()

	_, err := suite.service.PostEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrPeriodNotOpen)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SavePosted", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestPostEntry_PeriodNeverOpened() {
	ctx := context.Background()
	req := suite.balancedRequest()

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.AnythingOfType("[]string")).
		Return(suite.accountsMap(suite.cashAccount, suite.revenueAccount), nil).Once()
	suite.mockPeriodRepo.On("FindPeriod", ctx, 2025, 3).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockJournalRepo.On("NextEntryNumber", ctx).Return("JE-000045", nil).Once()

	_, err := suite.service.PostEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrPeriodNotOpen)
}

func (suite *PostingServiceTestSuite) TestPostEntry_SaveError() {
	ctx := context.Background()
	req := suite.balancedRequest()

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.AnythingOfType("[]string")).
		Return(suite.accountsMap(suite.cashAccount, suite.revenueAccount), nil).Once()
	suite.mockPeriodRepo.On("FindPeriod", ctx, 2025, 3).Return(suite.openPeriod(), nil).Once()
	suite.mockJournalRepo.On("NextEntryNumber", ctx).Return("JE-000046", nil).Once()
	suite.mockJournalRepo.On("SavePosted", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.BalanceDelta"), mock.AnythingOfType("domain.PostingEvent")).
		Return(apperrors.ErrPeriodNotOpen).Once()

	_, err := suite.service.PostEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrPeriodNotOpen)
}

func (suite *PostingServiceTestSuite) postedEntry() *domain.JournalEntry {
	postedAt := suite.entryDate.Add(24 * time.Hour)
	return &domain.JournalEntry{
		EntryID:     uuid.NewString(),
		EntryNumber: "JE-000042",
		EntryDate:   suite.entryDate,
		FiscalYear:  2025,
		FiscalMonth: 3,
		EntryType:   domain.Manual,
		Status:      domain.Posted,
		PostedAt:    &postedAt,
		PostedBy:    suite.userID,
	}
}

func (suite *PostingServiceTestSuite) entryLines(entryID string) []domain.JournalLine {
	return []domain.JournalLine{
		{LineID: uuid.NewString(), JournalEntryID: entryID, LineSequence: 1, AccountID: suite.cashAccount.AccountID, Direction: domain.Debit, Amount: decimal.NewFromInt(100)},
		{LineID: uuid.NewString(), JournalEntryID: entryID, LineSequence: 2, AccountID: suite.revenueAccount.AccountID, Direction: domain.Credit, Amount: decimal.NewFromInt(100)},
	}
}

func (suite *PostingServiceTestSuite) TestVoidEntry_Success() {
	ctx := context.Background()
	entry := suite.postedEntry()
	lines := suite.entryLines(entry.EntryID)

	suite.mockJournalRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, entry.EntryID).Return(lines, nil).Once()
	closed := &domain.FiscalPeriod{FiscalYear: 2025, FiscalMonth: 3, Status: domain.PeriodClosed}
	suite.mockPeriodRepo.On("FindPeriod", ctx, 2025, 3).Return(closed, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.AnythingOfType("[]string")).
		Return(suite.accountsMap(suite.cashAccount, suite.revenueAccount), nil).Once()

	var savedDeltas []domain.BalanceDelta
	var savedEvent domain.PostingEvent
	suite.mockJournalRepo.On("SaveVoided", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.BalanceDelta"), mock.AnythingOfType("domain.PostingEvent")).
		Run(func(args mock.Arguments) {
			savedDeltas = args.Get(2).([]domain.BalanceDelta)
			savedEvent = args.Get(3).(domain.PostingEvent)
		}).Return(nil).Once()

	voided, err := suite.service.VoidEntry(ctx, entry.EntryID, dto.VoidEntryRequest{Reason: "duplicate capture"}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.Voided, voided.Status)
	suite.Equal("duplicate capture", voided.VoidReason)
	suite.Require().NotNil(voided.VoidedAt)

	// Reversal deltas are the exact algebraic inverse of the posting.
	suite.Require().Len(savedDeltas, 2)
	suite.True(savedDeltas[0].Debit.Equal(decimal.NewFromInt(-100)))
	suite.True(savedDeltas[0].Credit.IsZero())
	suite.True(savedDeltas[1].Credit.Equal(decimal.NewFromInt(-100)))
	suite.Equal(domain.EntryVoidedEvent, savedEvent.EventType)

	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestVoidEntry_AlreadyVoided() {
	ctx := context.Background()
	entry := suite.postedEntry()
	entry.Status = domain.Voided
	lines := suite.entryLines(entry.EntryID)

	suite.mockJournalRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, entry.EntryID).Return(lines, nil).Once()
	suite.mockPeriodRepo.On("FindPeriod", ctx, 2025, 3).Return(suite.openPeriod(), nil).Once()

	_, err := suite.service.VoidEntry(ctx, entry.EntryID, dto.VoidEntryRequest{Reason: "again"}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrAlreadyVoided)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveVoided", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestVoidEntry_PeriodLocked() {
	ctx := context.Background()
	entry := suite.postedEntry()
	lines := suite.entryLines(entry.EntryID)

	suite.mockJournalRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, entry.EntryID).Return(lines, nil).Once()
	locked := &domain.FiscalPeriod{FiscalYear: 2025, FiscalMonth: 3, Status: domain.PeriodLocked}
	suite.mockPeriodRepo.On("FindPeriod", ctx, 2025, 3).Return(locked, nil).Once()

	_, err := suite.service.VoidEntry(ctx, entry.EntryID, dto.VoidEntryRequest{Reason: "too late"}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrPeriodLocked)
}

func (suite *PostingServiceTestSuite) TestVoidEntry_MissingReason() {
	ctx := context.Background()
	entry := suite.postedEntry()
	lines := suite.entryLines(entry.EntryID)

	suite.mockJournalRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, entry.EntryID).Return(lines, nil).Once()
	suite.mockPeriodRepo.On("FindPeriod", ctx, 2025, 3).Return(suite.openPeriod(), nil).Once()

	_, err := suite.service.VoidEntry(ctx, entry.EntryID, dto.VoidEntryRequest{}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PostingServiceTestSuite) TestGetEntry_NotFound() {
	ctx := context.Background()
	suite.mockJournalRepo.On("FindEntryByID", ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetEntry(ctx, "missing")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *PostingServiceTestSuite) TestListEntries_DefaultsLimit() {
	ctx := context.Background()
	suite.mockJournalRepo.On("ListEntries", ctx, 20, (*string)(nil), false).
		Return([]domain.JournalEntry{*suite.postedEntry()}, nil, nil).Once()

	resp, err := suite.service.ListEntries(ctx, dto.ListEntriesParams{})

	suite.Require().NoError(err)
	suite.Len(resp.Entries, 1)
	suite.Nil(resp.NextToken)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestListAccountLines_Success() {
	ctx := context.Background()
	entry := suite.postedEntry()
	lines := suite.entryLines(entry.EntryID)[:1]

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.cashAccount.AccountID).Return(&suite.cashAccount, nil).Once()
	suite.mockJournalRepo.On("ListLinesByAccount", ctx, suite.cashAccount.AccountID, 2025, 3).Return(lines, nil).Once()

	got, err := suite.service.ListAccountLines(ctx, suite.cashAccount.AccountID, 2025, 3)

	suite.Require().NoError(err)
	suite.Require().Len(got, 1)
	suite.Equal(suite.cashAccount.AccountID, got[0].AccountID)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestListAccountLines_UnknownAccount() {
	ctx := context.Background()
	suite.mockAccountRepo.On("FindAccountByID", ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ListAccountLines(ctx, "missing", 2025, 3)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "ListLinesByAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- Run Test Suite ---
func TestPostingService(t *testing.T) {
	suite.Run(t, new(PostingServiceTestSuite))
}
