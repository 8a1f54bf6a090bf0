package services

import (
	"context"

	"github.com/lukmanha083/kidkazz-ledger/internal/core/domain"
	"github.com/lukmanha083/kidkazz-ledger/internal/dto"
)

// BalanceSvcFacade defines reporting and repair operations over materialized
// account balances.
type BalanceSvcFacade interface {
	// GetAccountBalance retrieves the balance row for one (account, period).
	GetAccountBalance(ctx context.Context, accountID string, year, month int) (*domain.AccountBalance, error)

	// GetYearToDateTotals aggregates an account's activity for a fiscal year
	// up to and including the given month.
	GetYearToDateTotals(ctx context.Context, accountID string, year, uptoMonth int) (*domain.YearToDateTotals, error)

	// RecomputePeriod rebuilds one balance row from the posted line history.
	// Used for repair after a partial materialization failure, and by tests
	// to verify the incremental path.
	RecomputePeriod(ctx context.Context, accountID string, year, month int) (*domain.AccountBalance, error)

	// CarryForwardOpeningBalance seeds a period's opening balance from a
	// prior period's closing balance.
	CarryForwardOpeningBalance(ctx context.Context, accountID string, fromYear, fromMonth, toYear, toMonth int) error

	// TrialBalance reports every account's totals for one period.
	TrialBalance(ctx context.Context, year, month int) (*dto.TrialBalanceResponse, error)
}
