package pgsql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lukmanha083/kidkazz-ledger/internal/apperrors"
	"github.com/lukmanha083/kidkazz-ledger/internal/core/domain"
	portsrepo "github.com/lukmanha083/kidkazz-ledger/internal/core/ports/repositories"
	"github.com/lukmanha083/kidkazz-ledger/internal/models"
	"github.com/lukmanha083/kidkazz-ledger/internal/utils/mapping"
	"github.com/lukmanha083/kidkazz-ledger/internal/utils/pagination"
)

const entryColumns = `entry_id, entry_number, entry_date, fiscal_year, fiscal_month, entry_type, status, description, source_service, source_reference_id, posted_at, posted_by, voided_at, voided_by, void_reason, created_at, created_by, last_updated_at, last_updated_by`

type PgxJournalRepository struct {
	BaseRepository
	balanceRepo portsrepo.BalanceWriter
}

func newPgxJournalRepository(pool *pgxpool.Pool, balanceRepo portsrepo.BalanceWriter) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
		balanceRepo:    balanceRepo,
	}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

func scanEntry(row rowScanner) (models.JournalEntry, error) {
	var m models.JournalEntry
	var entryNumber, sourceService, sourceRefID, postedBy, voidedBy, voidReason sql.NullString
	err := row.Scan(
		&m.EntryID,
		&entryNumber,
		&m.EntryDate,
		&m.FiscalYear,
		&m.FiscalMonth,
		&m.EntryType,
		&m.Status,
		&m.Description,
		&sourceService,
		&sourceRefID,
		&m.PostedAt,
		&postedBy,
		&m.VoidedAt,
		&voidedBy,
		&voidReason,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return models.JournalEntry{}, err
	}
	m.EntryNumber = entryNumber.String
	m.SourceService = sourceService.String
	m.SourceReferenceID = sourceRefID.String
	m.PostedBy = postedBy.String
	m.VoidedBy = voidedBy.String
	m.VoidReason = voidReason.String
	return m, nil
}

// NextEntryNumber reserves the next entry number from the posting sequence.
// Sequence values survive aborted transactions, so the series is monotonic
// but may contain gaps.
func (r *PgxJournalRepository) NextEntryNumber(ctx context.Context) (string, error) {
	var n int64
	if err := r.Pool.QueryRow(ctx, `SELECT nextval('journal_entry_number_seq');`).Scan(&n); err != nil {
		return "", fmt.Errorf("failed to reserve entry number: %w", err)
	}
	return fmt.Sprintf("JE-%06d", n), nil
}

// SavePosted persists a Posted entry with its lines, applies the balance
// deltas and records the outbox event, all in one transaction. The fiscal
// period row is re-read under a shared lock inside the transaction: the
// pre-check in the service is advisory, this one is authoritative.
func (r *PgxJournalRepository) SavePosted(ctx context.Context, entry domain.JournalEntry, deltas []domain.BalanceDelta, event domain.PostingEvent) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	status, err := lockPeriodShared(ctx, tx, entry.FiscalYear, entry.FiscalMonth)
	if err != nil {
		return err
	}
	if status != domain.PeriodOpen {
		return fmt.Errorf("%w: period %d-%02d is %s", apperrors.ErrPeriodNotOpen, entry.FiscalYear, entry.FiscalMonth, status)
	}

	m := mapping.ToModelJournalEntry(entry)
	entryQuery := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
	`
	_, err = tx.Exec(ctx, entryQuery,
		m.EntryID,
		m.EntryNumber,
		m.EntryDate,
		m.FiscalYear,
		m.FiscalMonth,
		m.EntryType,
		m.Status,
		m.Description,
		nullString(m.SourceService),
		nullString(m.SourceReferenceID),
		m.PostedAt,
		nullString(m.PostedBy),
		m.VoidedAt,
		nullString(m.VoidedBy),
		nullString(m.VoidReason),
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert journal entry %s: %w", m.EntryID, err)
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO journal_lines (line_id, journal_entry_id, line_sequence, account_id, direction, amount, dimension)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	for _, line := range entry.Lines {
		ml := mapping.ToModelJournalLine(line)
		batch.Queue(lineQuery,
			ml.LineID,
			ml.JournalEntryID,
			ml.LineSequence,
			ml.AccountID,
			ml.Direction,
			ml.Amount,
			nullString(ml.Dimension),
		)
	}
	br := tx.SendBatch(ctx, batch)
	for range entry.Lines {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("failed to insert journal lines for entry %s: %w", m.EntryID, err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to close line batch for entry %s: %w", m.EntryID, err)
	}

	if err := r.balanceRepo.ApplyDeltas(ctx, tx, deltas, entry.LastUpdatedAt); err != nil {
		return err
	}

	if err := insertLedgerEvent(ctx, tx, event); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// SaveVoided marks a Posted entry Voided, applies the reversing deltas and
// records the void event in one transaction. The entry's original period is
// re-verified not Locked under a shared lock.
func (r *PgxJournalRepository) SaveVoided(ctx context.Context, entry domain.JournalEntry, deltas []domain.BalanceDelta, event domain.PostingEvent) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	status, err := lockPeriodShared(ctx, tx, entry.FiscalYear, entry.FiscalMonth)
	if err != nil {
		return err
	}
	if status == domain.PeriodLocked {
		return fmt.Errorf("%w: period %d-%02d", apperrors.ErrPeriodLocked, entry.FiscalYear, entry.FiscalMonth)
	}

	m := mapping.ToModelJournalEntry(entry)
	voidQuery := `
		UPDATE journal_entries
		SET status = $2, voided_at = $3, voided_by = $4, void_reason = $5, last_updated_at = $6, last_updated_by = $7
		WHERE entry_id = $1 AND status = 'POSTED';
	`
	tag, err := tx.Exec(ctx, voidQuery,
		m.EntryID,
		m.Status,
		m.VoidedAt,
		nullString(m.VoidedBy),
		nullString(m.VoidReason),
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to void journal entry %s: %w", m.EntryID, err)
	}
	if tag.RowsAffected() == 0 {
		// Someone got here first, or the entry vanished.
		var current models.EntryStatus
		err := tx.QueryRow(ctx, `SELECT status FROM journal_entries WHERE entry_id = $1;`, m.EntryID).Scan(&current)
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to re-read journal entry %s: %w", m.EntryID, err)
		}
		if current == models.EntryStatus(domain.Voided) {
			return apperrors.ErrAlreadyVoided
		}
		return apperrors.ErrNotPosted
	}

	if err := r.balanceRepo.ApplyDeltas(ctx, tx, deltas, entry.LastUpdatedAt); err != nil {
		return err
	}

	if err := insertLedgerEvent(ctx, tx, event); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// FindEntryByID retrieves a journal entry header by ID.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = $1;`

	m, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal entry %s: %w", entryID, err)
	}

	d := mapping.ToDomainJournalEntry(m)
	return &d, nil
}

// FindLinesByEntryID retrieves all lines of an entry in line-sequence order.
func (r *PgxJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	query := `
		SELECT line_id, journal_entry_id, line_sequence, account_id, direction, amount, dimension
		FROM journal_lines
		WHERE journal_entry_id = $1
		ORDER BY line_sequence;
	`
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for entry %s: %w", entryID, err)
	}
	defer rows.Close()

	modelLines := make([]models.JournalLine, 0)
	for rows.Next() {
		var ml models.JournalLine
		var dimension sql.NullString
		if err := rows.Scan(&ml.LineID, &ml.JournalEntryID, &ml.LineSequence, &ml.AccountID, &ml.Direction, &ml.Amount, &dimension); err != nil {
			return nil, fmt.Errorf("failed to scan journal line row: %w", err)
		}
		ml.Dimension = dimension.String
		modelLines = append(modelLines, ml)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal line rows: %w", err)
	}
	return mapping.ToDomainJournalLineSlice(modelLines), nil
}

// ListLinesByAccount retrieves the posted lines hitting one account in a
// fiscal period. This is the drill-down behind a balance row: summing these
// lines reproduces the row's debit and credit totals.
func (r *PgxJournalRepository) ListLinesByAccount(ctx context.Context, accountID string, year, month int) ([]domain.JournalLine, error) {
	query := `
		SELECT l.line_id, l.journal_entry_id, l.line_sequence, l.account_id, l.direction, l.amount, l.dimension
		FROM journal_lines l
		JOIN journal_entries e ON e.entry_id = l.journal_entry_id
		WHERE l.account_id = $1 AND e.fiscal_year = $2 AND e.fiscal_month = $3 AND e.status = 'POSTED'
		ORDER BY e.entry_date, e.created_at, l.line_sequence;
	`
	rows, err := r.Pool.Query(ctx, query, accountID, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for account %s in %d-%02d: %w", accountID, year, month, err)
	}
	defer rows.Close()

	modelLines := make([]models.JournalLine, 0)
	for rows.Next() {
		var ml models.JournalLine
		var dimension sql.NullString
		if err := rows.Scan(&ml.LineID, &ml.JournalEntryID, &ml.LineSequence, &ml.AccountID, &ml.Direction, &ml.Amount, &dimension); err != nil {
			return nil, fmt.Errorf("failed to scan journal line row: %w", err)
		}
		ml.Dimension = dimension.String
		modelLines = append(modelLines, ml)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal line rows: %w", err)
	}
	return mapping.ToDomainJournalLineSlice(modelLines), nil
}

// ListEntries retrieves entries newest first with keyset pagination on
// (entry_date, created_at), so pages stay stable while posting continues.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, limit int, nextToken *string, includeVoided bool) ([]domain.JournalEntry, *string, error) {
	args := []any{limit + 1}
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE 1=1`

	if !includeVoided {
		query += ` AND status <> 'VOIDED'`
	}
	if nextToken != nil && *nextToken != "" {
		entryDate, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		query += fmt.Sprintf(` AND (entry_date, created_at) < ($%d, $%d)`, len(args)+1, len(args)+2)
		args = append(args, entryDate, createdAt)
	}
	query += ` ORDER BY entry_date DESC, created_at DESC LIMIT $1;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query journal entries: %w", err)
	}
	defer rows.Close()

	entries := make([]domain.JournalEntry, 0, limit)
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan journal entry row: %w", err)
		}
		entries = append(entries, mapping.ToDomainJournalEntry(m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating journal entry rows: %w", err)
	}

	var newToken *string
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[limit-1]
		token := pagination.EncodeToken(last.EntryDate, last.CreatedAt)
		newToken = &token
	}
	return entries, newToken, nil
}

// lockPeriodShared takes a shared row lock on the fiscal period inside the
// caller's transaction and returns the status seen under the lock. A missing
// period means posting was never allowed there.
func lockPeriodShared(ctx context.Context, tx pgx.Tx, year, month int) (domain.PeriodStatus, error) {
	var status domain.PeriodStatus
	err := tx.QueryRow(ctx, `SELECT status FROM fiscal_periods WHERE fiscal_year = $1 AND fiscal_month = $2 FOR SHARE;`, year, month).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", fmt.Errorf("%w: period %d-%02d was never opened", apperrors.ErrPeriodNotOpen, year, month)
		}
		return "", fmt.Errorf("failed to lock fiscal period %d-%02d: %w", year, month, err)
	}
	return status, nil
}

// insertLedgerEvent records the outbox row in the caller's transaction. The
// payload carries the full event so the publisher needs no joins.
func insertLedgerEvent(ctx context.Context, tx pgx.Tx, event domain.PostingEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal ledger event %s: %w", event.EventID, err)
	}

	query := `
		INSERT INTO ledger_events (event_id, event_type, entry_id, payload, occurred_at)
		VALUES ($1, $2, $3, $4, $5);
	`
	if _, err := tx.Exec(ctx, query, event.EventID, string(event.EventType), event.EntryID, payload, event.OccurredAt); err != nil {
		return fmt.Errorf("failed to insert ledger event %s: %w", event.EventID, err)
	}
	return nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
