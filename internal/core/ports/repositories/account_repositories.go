package repositories

import (
	"context"

	"github.com/lukmanha083/kidkazz-ledger/internal/core/domain"
)

// AccountReader defines read operations for chart-of-accounts data.
type AccountReader interface {
	// FindAccountByID retrieves an account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByCode retrieves an account by its unique human-readable code.
	FindAccountByCode(ctx context.Context, code string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts keyed by ID. Missing IDs
	// are simply absent from the map; the caller decides whether that is an error.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// FindAccountsByParent retrieves the direct children of an account,
	// ordered by code.
	FindAccountsByParent(ctx context.Context, parentAccountID string) ([]domain.Account, error)

	// ListAccounts retrieves the full chart of accounts ordered by code.
	ListAccounts(ctx context.Context) ([]domain.Account, error)

	// HasPostings reports whether any journal line references the account.
	HasPostings(ctx context.Context, accountID string) (bool, error)
}

// AccountWriter defines write operations for chart-of-accounts data.
type AccountWriter interface {
	// SaveAccount inserts a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount persists changes to an existing account.
	UpdateAccount(ctx context.Context, account domain.Account) error
}

// AccountRepositoryFacade combines all account repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
