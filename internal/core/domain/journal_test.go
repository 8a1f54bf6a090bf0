package domain_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lukmanha083/kidkazz-ledger/internal/apperrors"
	"github.com/lukmanha083/kidkazz-ledger/internal/core/domain"
)

var (
	testNow  = time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)
	testDate = time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
)

func balancedLines(amount string) []domain.NewLineParams {
	amt := decimal.RequireFromString(amount)
	return []domain.NewLineParams{
		{AccountID: "acc-cash", Direction: domain.Debit, Amount: amt},
		{AccountID: "acc-revenue", Direction: domain.Credit, Amount: amt},
	}
}

func draftEntry(t *testing.T) *domain.JournalEntry {
	t.Helper()
	entry, err := domain.NewDraftEntry(domain.NewEntryParams{
		EntryDate:   testDate,
		Description: "test posting",
		CreatedBy:   "user-1",
	}, balancedLines("100.00"), testNow)
	require.NoError(t, err)
	return entry
}

func TestNewDraftEntry(t *testing.T) {
	entry := draftEntry(t)

	assert.Equal(t, domain.Draft, entry.Status)
	assert.Equal(t, domain.Manual, entry.EntryType)
	assert.Equal(t, 2024, entry.FiscalYear)
	assert.Equal(t, 3, entry.FiscalMonth)
	assert.Empty(t, entry.EntryNumber, "entry number is assigned at posting")
	require.Len(t, entry.Lines, 2)
	assert.Equal(t, 1, entry.Lines[0].LineSequence)
	assert.Equal(t, 2, entry.Lines[1].LineSequence)
	assert.Equal(t, entry.EntryID, entry.Lines[0].JournalEntryID)
	assert.True(t, decimal.RequireFromString("100.00").Equal(entry.TotalAmount()))
	assert.Equal(t, []string{"acc-cash", "acc-revenue"}, entry.AffectedAccountIDs())
}

func TestNewDraftEntry_Validation(t *testing.T) {
	tests := []struct {
		name    string
		lines   []domain.NewLineParams
		wantErr error
	}{
		{
			name:    "fewer than two lines",
			lines:   balancedLines("100.00")[:1],
			wantErr: apperrors.ErrValidation,
		},
		{
			name: "zero amount line rejected",
			lines: []domain.NewLineParams{
				{AccountID: "a", Direction: domain.Debit, Amount: decimal.Zero},
				{AccountID: "b", Direction: domain.Credit, Amount: decimal.Zero},
			},
			wantErr: apperrors.ErrValidation,
		},
		{
			name: "negative amount line rejected",
			lines: []domain.NewLineParams{
				{AccountID: "a", Direction: domain.Debit, Amount: decimal.RequireFromString("-5")},
				{AccountID: "b", Direction: domain.Credit, Amount: decimal.RequireFromString("-5")},
			},
			wantErr: apperrors.ErrValidation,
		},
		{
			name: "unbalanced entry rejected",
			lines: []domain.NewLineParams{
				{AccountID: "a", Direction: domain.Debit, Amount: decimal.RequireFromString("150.00")},
				{AccountID: "b", Direction: domain.Credit, Amount: decimal.RequireFromString("100.00")},
			},
			wantErr: apperrors.ErrUnbalancedEntry,
		},
		{
			name: "unknown direction rejected",
			lines: []domain.NewLineParams{
				{AccountID: "a", Direction: "SIDEWAYS", Amount: decimal.RequireFromString("10")},
				{AccountID: "b", Direction: domain.Credit, Amount: decimal.RequireFromString("10")},
			},
			wantErr: apperrors.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.NewDraftEntry(domain.NewEntryParams{
				EntryDate: testDate,
				CreatedBy: "user-1",
			}, tt.lines, testNow)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNewDraftEntry_ExactDecimalBalance(t *testing.T) {
	// 0.1+0.2 style sums must balance exactly under decimal arithmetic.
	lines := []domain.NewLineParams{
		{AccountID: "a", Direction: domain.Debit, Amount: decimal.RequireFromString("0.1")},
		{AccountID: "a", Direction: domain.Debit, Amount: decimal.RequireFromString("0.2")},
		{AccountID: "b", Direction: domain.Credit, Amount: decimal.RequireFromString("0.3")},
	}
	_, err := domain.NewDraftEntry(domain.NewEntryParams{EntryDate: testDate, CreatedBy: "u"}, lines, testNow)
	assert.NoError(t, err)
}

func TestJournalEntry_Post(t *testing.T) {
	entry := draftEntry(t)

	err := entry.Post("JE-000042", "user-2", testNow, true)
	require.NoError(t, err)
	assert.Equal(t, domain.Posted, entry.Status)
	assert.Equal(t, "JE-000042", entry.EntryNumber)
	assert.Equal(t, "user-2", entry.PostedBy)
	require.NotNil(t, entry.PostedAt)

	// Posting twice must fail.
	err = entry.Post("JE-000043", "user-2", testNow, true)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyPosted)
}

func TestJournalEntry_Post_PeriodNotOpen(t *testing.T) {
	entry := draftEntry(t)
	err := entry.Post("JE-000042", "user-2", testNow, false)
	assert.ErrorIs(t, err, apperrors.ErrPeriodNotOpen)
	assert.Equal(t, domain.Draft, entry.Status, "failed post must not change status")
}

func TestJournalEntry_Void(t *testing.T) {
	entry := draftEntry(t)
	require.NoError(t, entry.Post("JE-000042", "user-2", testNow, true))

	err := entry.Void("duplicate posting", "user-3", testNow, false)
	require.NoError(t, err)
	assert.Equal(t, domain.Voided, entry.Status)
	assert.Equal(t, "duplicate posting", entry.VoidReason)
	assert.Equal(t, "user-3", entry.VoidedBy)

	// Re-voiding must fail.
	err = entry.Void("again", "user-3", testNow, false)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyVoided)
}

func TestJournalEntry_Void_Guards(t *testing.T) {
	t.Run("draft cannot be voided", func(t *testing.T) {
		entry := draftEntry(t)
		err := entry.Void("reason", "user-3", testNow, false)
		assert.ErrorIs(t, err, apperrors.ErrNotPosted)
	})

	t.Run("locked period blocks void", func(t *testing.T) {
		entry := draftEntry(t)
		require.NoError(t, entry.Post("JE-000042", "user-2", testNow, true))
		err := entry.Void("reason", "user-3", testNow, true)
		assert.ErrorIs(t, err, apperrors.ErrPeriodLocked)
		assert.Equal(t, domain.Posted, entry.Status)
	})

	t.Run("void reason is mandatory", func(t *testing.T) {
		entry := draftEntry(t)
		require.NoError(t, entry.Post("JE-000042", "user-2", testNow, true))
		err := entry.Void("", "user-3", testNow, false)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})
}
