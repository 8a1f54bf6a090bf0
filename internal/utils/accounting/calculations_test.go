package accounting_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/lukmanha083/kidkazz-ledger/internal/core/domain"
	"github.com/lukmanha083/kidkazz-ledger/internal/utils/accounting"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestClosingBalance(t *testing.T) {
	tests := []struct {
		name    string
		normal  domain.NormalBalance
		opening string
		debits  string
		credits string
		want    string
	}{
		{"debit-normal grows with debits", domain.NormalDebit, "100.00", "50.00", "20.00", "130.00"},
		{"credit-normal grows with credits", domain.NormalCredit, "100.00", "50.00", "20.00", "70.00"},
		{"debit-normal can go negative", domain.NormalDebit, "0", "10.00", "25.00", "-15.00"},
		{"zero activity keeps opening", domain.NormalCredit, "42.42", "0", "0", "42.42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := accounting.ClosingBalance(tt.normal, d(tt.opening), d(tt.debits), d(tt.credits))
			assert.True(t, d(tt.want).Equal(got), "want %s got %s", tt.want, got)
		})
	}
}

func TestSumByDirection(t *testing.T) {
	lines := []domain.JournalLine{
		{Direction: domain.Debit, Amount: d("100.50")},
		{Direction: domain.Credit, Amount: d("60.50")},
		{Direction: domain.Credit, Amount: d("40.00")},
	}
	debits, credits := accounting.SumByDirection(lines)
	assert.True(t, d("100.50").Equal(debits))
	assert.True(t, d("100.50").Equal(credits))
}

func TestDeltasForLines(t *testing.T) {
	normals := map[string]domain.NormalBalance{
		"cash":    domain.NormalDebit,
		"revenue": domain.NormalCredit,
	}
	lines := []domain.JournalLine{
		{AccountID: "cash", Direction: domain.Debit, Amount: d("100")},
		{AccountID: "revenue", Direction: domain.Credit, Amount: d("100")},
		{AccountID: "cash", Direction: domain.Debit, Amount: d("25")},
		{AccountID: "cash", Direction: domain.Credit, Amount: d("25")},
	}

	deltas := accounting.DeltasForLines(lines, 2024, 3, normals, false)
	assert.Len(t, deltas, 2)

	assert.Equal(t, "cash", deltas[0].AccountID)
	assert.Equal(t, 2024, deltas[0].FiscalYear)
	assert.Equal(t, 3, deltas[0].FiscalMonth)
	assert.Equal(t, domain.NormalDebit, deltas[0].NormalBalance)
	assert.True(t, d("125").Equal(deltas[0].Debit))
	assert.True(t, d("25").Equal(deltas[0].Credit))

	assert.Equal(t, "revenue", deltas[1].AccountID)
	assert.True(t, d("0").Equal(deltas[1].Debit))
	assert.True(t, d("100").Equal(deltas[1].Credit))
}

func TestDeltasForLines_ReverseIsExactInverse(t *testing.T) {
	normals := map[string]domain.NormalBalance{"cash": domain.NormalDebit}
	lines := []domain.JournalLine{
		{AccountID: "cash", Direction: domain.Debit, Amount: d("99.99")},
		{AccountID: "cash", Direction: domain.Credit, Amount: d("99.99")},
	}

	forward := accounting.DeltasForLines(lines, 2024, 3, normals, false)
	reversed := accounting.DeltasForLines(lines, 2024, 3, normals, true)

	assert.True(t, forward[0].Debit.Add(reversed[0].Debit).IsZero())
	assert.True(t, forward[0].Credit.Add(reversed[0].Credit).IsZero())
}
