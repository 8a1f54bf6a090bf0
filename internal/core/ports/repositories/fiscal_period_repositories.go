package repositories

import (
	"context"

	"github.com/lukmanha083/kidkazz-ledger/internal/core/domain"
)

// FiscalPeriodRepositoryFacade defines persistence for the fiscal period register.
type FiscalPeriodRepositoryFacade interface {
	// SavePeriod inserts a new period. Inserting a period that already exists
	// is a no-op so that open(year, month) stays idempotent; the existing row
	// is returned either way.
	SavePeriod(ctx context.Context, period domain.FiscalPeriod) (*domain.FiscalPeriod, error)

	// FindPeriod retrieves a period by its (year, month) key.
	FindPeriod(ctx context.Context, year, month int) (*domain.FiscalPeriod, error)

	// ListPeriods retrieves all periods of a fiscal year ordered by month.
	ListPeriods(ctx context.Context, year int) ([]domain.FiscalPeriod, error)

	// TransitionPeriod loads the period under a row lock, applies the given
	// state transition and persists the result atomically. Transitions are
	// thereby serialized against concurrent postings, which take a shared
	// lock on the same row.
	TransitionPeriod(ctx context.Context, year, month int, apply func(p *domain.FiscalPeriod) error) (*domain.FiscalPeriod, error)
}
