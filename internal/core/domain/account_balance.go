package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountBalance is the materialized per-account-per-period summary. It is
// derived purely from the posted journal line history: deleting a row and
// recomputing it must reproduce the incremental value exactly. Reports read
// this cache instead of re-scanning historical lines.
type AccountBalance struct {
	AccountID      string          `json:"accountID"`
	FiscalYear     int             `json:"fiscalYear"`
	FiscalMonth    int             `json:"fiscalMonth"`
	OpeningBalance decimal.Decimal `json:"openingBalance"` // Prior period's closing balance
	DebitTotal     decimal.Decimal `json:"debitTotal"`
	CreditTotal    decimal.Decimal `json:"creditTotal"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
	LastUpdatedAt  time.Time       `json:"lastUpdatedAt"`
}

// BalanceDelta is the net debit/credit effect of one posting (or void) on a
// single (account, period) balance row. Voids carry negated amounts.
type BalanceDelta struct {
	AccountID     string
	FiscalYear    int
	FiscalMonth   int
	NormalBalance NormalBalance
	Debit         decimal.Decimal
	Credit        decimal.Decimal
}

// YearToDateTotals aggregates an account's activity from the start of a
// fiscal year up to and including a given month.
type YearToDateTotals struct {
	AccountID      string          `json:"accountID"`
	FiscalYear     int             `json:"fiscalYear"`
	UptoMonth      int             `json:"uptoMonth"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	DebitTotal     decimal.Decimal `json:"debitTotal"`
	CreditTotal    decimal.Decimal `json:"creditTotal"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
}
