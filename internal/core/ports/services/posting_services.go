package services

import (
	"context"

	"github.com/lukmanha083/kidkazz-ledger/internal/core/domain"
	"github.com/lukmanha083/kidkazz-ledger/internal/dto"
)

// PostingSvcFacade is the posting coordinator: the single use case that ties
// the chart of accounts, the fiscal period register, the journal entry
// aggregate and the balance materializer together.
type PostingSvcFacade interface {
	// PostEntry validates a draft entry against the chart of accounts and the
	// fiscal period register, then persists it as Posted and materializes
	// balances atomically. All business-rule violations are returned before
	// anything is persisted.
	PostEntry(ctx context.Context, req dto.CreateEntryRequest, requestedBy string) (*domain.JournalEntry, error)

	// VoidEntry logically reverses a posted entry. The original period must
	// not be locked; balances are decremented by the original amounts.
	VoidEntry(ctx context.Context, entryID string, req dto.VoidEntryRequest, voidedBy string) (*domain.JournalEntry, error)

	// GetEntry retrieves an entry with its lines.
	GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a paginated list of entries.
	ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)

	// ListAccountLines retrieves the posted lines hitting one account in a
	// fiscal period, the drill-down behind a balance row.
	ListAccountLines(ctx context.Context, accountID string, year, month int) ([]domain.JournalLine, error)
}
