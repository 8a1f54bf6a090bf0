package services

import (
	"context"

	"github.com/lukmanha083/kidkazz-ledger/internal/core/domain"
)

// FiscalPeriodSvcFacade defines the fiscal period register operations.
type FiscalPeriodSvcFacade interface {
	// OpenPeriod creates an Open period for (year, month). Opening an
	// already-open period is a no-op, not an error.
	OpenPeriod(ctx context.Context, year, month int, actor string) (*domain.FiscalPeriod, error)

	// ClosePeriod transitions Open -> Closed. Idempotent on Closed periods.
	ClosePeriod(ctx context.Context, year, month int, closedBy string) (*domain.FiscalPeriod, error)

	// ReopenPeriod transitions Closed -> Open with a mandatory reason.
	ReopenPeriod(ctx context.Context, year, month int, reopenedBy, reason string) (*domain.FiscalPeriod, error)

	// LockPeriod transitions Closed -> Locked. Locked is terminal.
	LockPeriod(ctx context.Context, year, month int, lockedBy string) (*domain.FiscalPeriod, error)

	// IsOpen reports whether the period exists and is Open.
	IsOpen(ctx context.Context, year, month int) (bool, error)

	// GetPeriod retrieves one period.
	GetPeriod(ctx context.Context, year, month int) (*domain.FiscalPeriod, error)

	// ListPeriods retrieves all periods of a fiscal year.
	ListPeriods(ctx context.Context, year int) ([]domain.FiscalPeriod, error)
}
