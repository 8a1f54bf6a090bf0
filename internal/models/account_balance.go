package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountBalance is the database representation of a materialized
// per-account-per-period balance row.
type AccountBalance struct {
	AccountID      string          `json:"accountID"`
	FiscalYear     int             `json:"fiscalYear"`
	FiscalMonth    int             `json:"fiscalMonth"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	DebitTotal     decimal.Decimal `json:"debitTotal"`
	CreditTotal    decimal.Decimal `json:"creditTotal"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
	LastUpdatedAt  time.Time       `json:"lastUpdatedAt"`
}
