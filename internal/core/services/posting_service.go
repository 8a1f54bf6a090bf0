package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/lukmanha083/kidkazz-ledger/internal/apperrors"
	"github.com/lukmanha083/kidkazz-ledger/internal/core/domain"
	portsrepo "github.com/lukmanha083/kidkazz-ledger/internal/core/ports/repositories"
	"github.com/lukmanha083/kidkazz-ledger/internal/dto"
	"github.com/lukmanha083/kidkazz-ledger/internal/middleware"
	"github.com/lukmanha083/kidkazz-ledger/internal/utils/accounting"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// PostingService is the posting coordinator. It validates a requested entry
// against the chart of accounts and the fiscal period register, then hands
// the repository an entry, its balance deltas and its outbox event to commit
// as one transaction. Every business-rule check fails before anything is
// persisted.
type PostingService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	periodRepo  portsrepo.FiscalPeriodRepositoryFacade
	journalRepo portsrepo.JournalRepositoryFacade
}

func NewPostingService(
	accountRepo portsrepo.AccountRepositoryFacade,
	periodRepo portsrepo.FiscalPeriodRepositoryFacade,
	journalRepo portsrepo.JournalRepositoryFacade,
) *PostingService {
	return &PostingService{
		accountRepo: accountRepo,
		periodRepo:  periodRepo,
		journalRepo: journalRepo,
	}
}

// PostEntry validates and posts a journal entry in one step. Draft entries
// never leave this method: callers either get a Posted entry or an error.
func (s *PostingService) PostEntry(ctx context.Context, req dto.CreateEntryRequest, requestedBy string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now()

	lines := make([]domain.NewLineParams, len(req.Lines))
	for i, l := range req.Lines {
		lines[i] = domain.NewLineParams{
			AccountID: l.AccountID,
			Direction: domain.Direction(l.Direction),
			Amount:    l.Amount,
			Dimension: l.Dimension,
		}
	}

	entry, err := domain.NewDraftEntry(domain.NewEntryParams{
		EntryDate:         req.EntryDate,
		EntryType:         domain.EntryType(req.EntryType),
		Description:       req.Description,
		SourceService:     req.SourceService,
		SourceReferenceID: req.SourceReferenceID,
		CreatedBy:         requestedBy,
	}, lines, now)
	if err != nil {
		return nil, err
	}

	normals, err := s.resolveNormalBalances(ctx, entry, true)
	if err != nil {
		return nil, err
	}

	periodOpen, err := s.periodIsOpen(ctx, entry.FiscalYear, entry.FiscalMonth)
	if err != nil {
		logger.Error("Failed to check fiscal period", slog.String("error", err.Error()), slog.Int("year", entry.FiscalYear), slog.Int("month", entry.FiscalMonth))
		return nil, err
	}

	entryNumber, err := s.journalRepo.NextEntryNumber(ctx)
	if err != nil {
		logger.Error("Failed to reserve entry number", slog.String("error", err.Error()))
		return nil, err
	}

	if err := entry.Post(entryNumber, requestedBy, now, periodOpen); err != nil {
		return nil, err
	}

	deltas := accounting.DeltasForLines(entry.Lines, entry.FiscalYear, entry.FiscalMonth, normals, false)
	event := domain.PostingEvent{
		EventID:          uuid.NewString(),
		EventType:        domain.EntryPostedEvent,
		EntryID:          entry.EntryID,
		EntryNumber:      entry.EntryNumber,
		AffectedAccounts: entry.AffectedAccountIDs(),
		FiscalYear:       entry.FiscalYear,
		FiscalMonth:      entry.FiscalMonth,
		TotalAmount:      entry.TotalAmount(),
		OccurredAt:       now,
	}

	if err := s.journalRepo.SavePosted(ctx, *entry, deltas, event); err != nil {
		if !errors.Is(err, apperrors.ErrPeriodNotOpen) {
			logger.Error("Failed to persist posted entry", slog.String("error", err.Error()), slog.String("entry_id", entry.EntryID))
		}
		return nil, err
	}

	logger.Info("Journal entry posted",
		slog.String("entry_id", entry.EntryID),
		slog.String("entry_number", entry.EntryNumber),
		slog.Int("year", entry.FiscalYear),
		slog.Int("month", entry.FiscalMonth),
		slog.String("total_amount", entry.TotalAmount().String()),
	)
	return entry, nil
}

// VoidEntry logically reverses a posted entry. The entry row stays in place
// for audit; balances are decremented by the original amounts in the entry's
// original fiscal period.
func (s *PostingService) VoidEntry(ctx context.Context, entryID string, req dto.VoidEntryRequest, voidedBy string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now()

	entry, err := s.GetEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}

	period, err := s.periodRepo.FindPeriod(ctx, entry.FiscalYear, entry.FiscalMonth)
	if err != nil {
		logger.Error("Failed to load fiscal period for void", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, err
	}

	if err := entry.Void(req.Reason, voidedBy, now, period.Status == domain.PeriodLocked); err != nil {
		return nil, err
	}

	normals, err := s.resolveNormalBalances(ctx, entry, false)
	if err != nil {
		return nil, err
	}

	deltas := accounting.DeltasForLines(entry.Lines, entry.FiscalYear, entry.FiscalMonth, normals, true)
	event := domain.PostingEvent{
		EventID:          uuid.NewString(),
		EventType:        domain.EntryVoidedEvent,
		EntryID:          entry.EntryID,
		EntryNumber:      entry.EntryNumber,
		AffectedAccounts: entry.AffectedAccountIDs(),
		FiscalYear:       entry.FiscalYear,
		FiscalMonth:      entry.FiscalMonth,
		TotalAmount:      entry.TotalAmount(),
		OccurredAt:       now,
	}

	if err := s.journalRepo.SaveVoided(ctx, *entry, deltas, event); err != nil {
		if !errors.Is(err, apperrors.ErrPeriodLocked) {
			logger.Error("Failed to persist voided entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		}
		return nil, err
	}

	logger.Info("Journal entry voided",
		slog.String("entry_id", entry.EntryID),
		slog.String("entry_number", entry.EntryNumber),
		slog.String("voided_by", voidedBy),
	)
	return entry, nil
}

// GetEntry retrieves an entry header with its lines in sequence order.
func (s *PostingService) GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find journal entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		}
		return nil, err
	}

	lines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		logger.Error("Failed to load journal lines", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, err
	}
	entry.Lines = lines
	return entry, nil
}

// ListEntries retrieves a paginated list of entries, most recent first.
func (s *PostingService) ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	limit := params.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	entries, nextToken, err := s.journalRepo.ListEntries(ctx, limit, params.NextToken, params.IncludeVoided)
	if err != nil {
		logger.Error("Failed to list journal entries", slog.String("error", err.Error()))
		return nil, err
	}

	responses := make([]dto.EntryResponse, len(entries))
	for i := range entries {
		responses[i] = dto.ToEntryResponse(&entries[i])
	}
	return &dto.ListEntriesResponse{Entries: responses, NextToken: nextToken}, nil
}

// ListAccountLines retrieves the posted lines hitting one account in a fiscal
// period. Summing them reproduces the account's balance row for that period.
func (s *PostingService) ListAccountLines(ctx context.Context, accountID string, year, month int) ([]domain.JournalLine, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return nil, err
	}

	lines, err := s.journalRepo.ListLinesByAccount(ctx, accountID, year, month)
	if err != nil {
		logger.Error("Failed to list account lines", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, err
	}
	return lines, nil
}

// resolveNormalBalances loads the accounts an entry touches and returns their
// normal balances. When checkPostable is set, every account must be an active
// detail account; voids skip the check so entries against since-deactivated
// accounts can still be reversed.
func (s *PostingService) resolveNormalBalances(ctx context.Context, entry *domain.JournalEntry, checkPostable bool) (map[string]domain.NormalBalance, error) {
	accountIDs := entry.AffectedAccountIDs()
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to resolve entry accounts", slog.String("error", err.Error()), slog.String("entry_id", entry.EntryID))
		return nil, err
	}

	normals := make(map[string]domain.NormalBalance, len(accountIDs))
	for _, id := range accountIDs {
		account, ok := accounts[id]
		if !ok {
			return nil, fmt.Errorf("%w: account %s not found", apperrors.ErrInvalidAccount, id)
		}
		if checkPostable && !account.IsPostable() {
			return nil, fmt.Errorf("%w: account %s is not a postable detail account", apperrors.ErrInvalidAccount, account.Code)
		}
		normals[id] = account.NormalBalance
	}
	return normals, nil
}

// periodIsOpen reports whether posting into (year, month) is allowed. A
// period that was never opened rejects postings the same way a closed one
// does.
func (s *PostingService) periodIsOpen(ctx context.Context, year, month int) (bool, error) {
	period, err := s.periodRepo.FindPeriod(ctx, year, month)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return period.IsOpen(), nil
}
