package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/lukmanha083/kidkazz-ledger/internal/core/domain"
)

// BalanceQueryParams identifies one (year, month) balance of an account.
type BalanceQueryParams struct {
	Year  int `form:"year" binding:"required"`
	Month int `form:"month" binding:"required,fiscalmonth"`
}

// YearToDateParams identifies a year-to-date aggregation window.
type YearToDateParams struct {
	Year      int `form:"year" binding:"required"`
	UptoMonth int `form:"uptoMonth" binding:"required,fiscalmonth"`
}

// RecomputeBalanceRequest asks for one balance row to be rebuilt from the
// posted line history.
type RecomputeBalanceRequest struct {
	FiscalYear  int `json:"fiscalYear" binding:"required"`
	FiscalMonth int `json:"fiscalMonth" binding:"required,fiscalmonth"`
}

// CarryForwardRequest seeds a period's opening balance from a prior period's
// closing balance.
type CarryForwardRequest struct {
	FromYear  int `json:"fromYear" binding:"required"`
	FromMonth int `json:"fromMonth" binding:"required,fiscalmonth"`
	ToYear    int `json:"toYear" binding:"required"`
	ToMonth   int `json:"toMonth" binding:"required,fiscalmonth"`
}

// BalanceResponse defines the data returned for one (account, period) balance.
type BalanceResponse struct {
	AccountID      string          `json:"accountID"`
	FiscalYear     int             `json:"fiscalYear"`
	FiscalMonth    int             `json:"fiscalMonth"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	DebitTotal     decimal.Decimal `json:"debitTotal"`
	CreditTotal    decimal.Decimal `json:"creditTotal"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
	LastUpdatedAt  time.Time       `json:"lastUpdatedAt"`
}

// YearToDateResponse aggregates an account's activity from the start of a
// fiscal year up to a month.
type YearToDateResponse struct {
	AccountID      string          `json:"accountID"`
	FiscalYear     int             `json:"fiscalYear"`
	UptoMonth      int             `json:"uptoMonth"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	DebitTotal     decimal.Decimal `json:"debitTotal"`
	CreditTotal    decimal.Decimal `json:"creditTotal"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
}

// TrialBalanceRow is one account's line in a trial balance report.
type TrialBalanceRow struct {
	AccountID      string          `json:"accountID"`
	DebitTotal     decimal.Decimal `json:"debitTotal"`
	CreditTotal    decimal.Decimal `json:"creditTotal"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
}

// TrialBalanceResponse is the trial balance for one fiscal period. A healthy
// ledger always has DebitTotal equal to CreditTotal.
type TrialBalanceResponse struct {
	FiscalYear  int               `json:"fiscalYear"`
	FiscalMonth int               `json:"fiscalMonth"`
	Rows        []TrialBalanceRow `json:"rows"`
	DebitTotal  decimal.Decimal   `json:"debitTotal"`
	CreditTotal decimal.Decimal   `json:"creditTotal"`
	InBalance   bool              `json:"inBalance"`
}

// ToBalanceResponse converts a domain AccountBalance to its response DTO.
func ToBalanceResponse(b *domain.AccountBalance) BalanceResponse {
	return BalanceResponse{
		AccountID:      b.AccountID,
		FiscalYear:     b.FiscalYear,
		FiscalMonth:    b.FiscalMonth,
		OpeningBalance: b.OpeningBalance,
		DebitTotal:     b.DebitTotal,
		CreditTotal:    b.CreditTotal,
		ClosingBalance: b.ClosingBalance,
		LastUpdatedAt:  b.LastUpdatedAt,
	}
}

// ToYearToDateResponse converts domain YearToDateTotals to its response DTO.
func ToYearToDateResponse(t *domain.YearToDateTotals) YearToDateResponse {
	return YearToDateResponse{
		AccountID:      t.AccountID,
		FiscalYear:     t.FiscalYear,
		UptoMonth:      t.UptoMonth,
		OpeningBalance: t.OpeningBalance,
		DebitTotal:     t.DebitTotal,
		CreditTotal:    t.CreditTotal,
		ClosingBalance: t.ClosingBalance,
	}
}
