package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/lukmanha083/kidkazz-ledger/internal/core/domain"
)

// BalanceReader defines read operations over materialized account balances.
type BalanceReader interface {
	// GetBalance retrieves the balance row for one (account, period) pair.
	GetBalance(ctx context.Context, accountID string, year, month int) (*domain.AccountBalance, error)

	// ListBalancesForYear retrieves an account's balance rows for a fiscal
	// year up to and including the given month, ordered by month.
	ListBalancesForYear(ctx context.Context, accountID string, year, uptoMonth int) ([]domain.AccountBalance, error)

	// ListBalancesForPeriod retrieves every account's balance row for one
	// period, ordered by account ID. Used for trial balance reporting.
	ListBalancesForPeriod(ctx context.Context, year, month int) ([]domain.AccountBalance, error)
}

// BalanceWriter defines the materializer's write operations.
type BalanceWriter interface {
	// ApplyDeltas applies balance deltas inside an existing transaction,
	// locking rows in sorted (accountID, year, month) order so concurrent
	// postings that share accounts cannot deadlock. Rows are created lazily;
	// a new row's opening balance is the closing balance of the account's
	// most recent prior period.
	ApplyDeltas(ctx context.Context, tx pgx.Tx, deltas []domain.BalanceDelta, at time.Time) error

	// RecomputePeriod rebuilds one (account, period) balance row from the
	// posted journal line history. It is idempotent and deterministic: the
	// line log is the system of record, the balance row is a cache.
	RecomputePeriod(ctx context.Context, accountID string, year, month int) (*domain.AccountBalance, error)

	// CarryForwardOpeningBalance re-seeds the target period's opening balance
	// from the source period's closing balance and recomputes its closing.
	CarryForwardOpeningBalance(ctx context.Context, accountID string, fromYear, fromMonth, toYear, toMonth int) error
}

// BalanceRepositoryFacade combines all balance repository interfaces.
type BalanceRepositoryFacade interface {
	BalanceReader
	BalanceWriter
}
