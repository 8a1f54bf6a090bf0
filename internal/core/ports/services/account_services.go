package services

import (
	"context"

	"github.com/lukmanha083/kidkazz-ledger/internal/core/domain"
	"github.com/lukmanha083/kidkazz-ledger/internal/dto"
)

// AccountReaderSvc defines read operations over the chart of accounts.
type AccountReaderSvc interface {
	// GetAccountByID retrieves an account by ID.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// GetAccountByCode retrieves an account by its unique code.
	GetAccountByCode(ctx context.Context, code string) (*domain.Account, error)

	// GetAccountsByIDs retrieves multiple accounts keyed by ID.
	GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccountsByParent retrieves the direct children of an account.
	ListAccountsByParent(ctx context.Context, parentAccountID string) ([]domain.Account, error)

	// ListAccountTree returns the full chart of accounts as a nested tree.
	ListAccountTree(ctx context.Context) ([]dto.AccountNode, error)
}

// AccountWriterSvc defines administrative write operations on the chart.
type AccountWriterSvc interface {
	// CreateAccount validates and persists a new chart-of-accounts node.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)

	// UpdateAccount applies non-structural updates; structural changes to an
	// account with postings are rejected.
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)

	// DeactivateAccount soft-deletes an account. Accounts with postings are
	// never physically deleted.
	DeactivateAccount(ctx context.Context, accountID string, userID string) error
}

// AccountSvcFacade combines all account service interfaces.
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
