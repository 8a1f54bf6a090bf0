package repositories

import (
	"context"

	"github.com/lukmanha083/kidkazz-ledger/internal/core/domain"
)

// JournalEntryReader defines read operations for journal entry data.
type JournalEntryReader interface {
	// FindEntryByID retrieves a journal entry header by ID.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// FindLinesByEntryID retrieves all lines of an entry in line-sequence order.
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error)

	// ListEntries retrieves a paginated list of entries using token-based
	// pagination, most recent first. Voided entries are included only when
	// requested.
	ListEntries(ctx context.Context, limit int, nextToken *string, includeVoided bool) ([]domain.JournalEntry, *string, error)

	// ListLinesByAccount retrieves the posted lines that hit one account in a
	// fiscal period, oldest entry first. Lines of voided entries are excluded
	// since they no longer contribute to the account's balance.
	ListLinesByAccount(ctx context.Context, accountID string, year, month int) ([]domain.JournalLine, error)
}

// JournalEntryWriter defines the transactional write operations of the
// posting engine. Both writes are all-or-nothing: entry rows, balance rows
// and the outbox event commit together or not at all.
type JournalEntryWriter interface {
	// NextEntryNumber reserves the next entry number. Numbers are monotonic
	// and gap-tolerant: a number reserved for a posting that later aborts is
	// simply skipped.
	NextEntryNumber(ctx context.Context) (string, error)

	// SavePosted persists a Posted entry with its lines, applies the balance
	// deltas and records the posting event in one transaction. The entry's
	// fiscal period is re-verified Open under a shared row lock; if it has
	// been closed concurrently the transaction fails with ErrPeriodNotOpen.
	SavePosted(ctx context.Context, entry domain.JournalEntry, deltas []domain.BalanceDelta, event domain.PostingEvent) error

	// SaveVoided updates a Voided entry, applies the reversing balance deltas
	// and records the void event in one transaction. The entry's original
	// period is re-verified not Locked under a shared row lock.
	SaveVoided(ctx context.Context, entry domain.JournalEntry, deltas []domain.BalanceDelta, event domain.PostingEvent) error
}

// JournalRepositoryFacade combines all journal repository interfaces.
type JournalRepositoryFacade interface {
	JournalEntryReader
	JournalEntryWriter
}
