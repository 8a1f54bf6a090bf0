package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lukmanha083/kidkazz-ledger/internal/apperrors"
)

// EntryStatus indicates the lifecycle state of a journal entry.
type EntryStatus string

const (
	Draft  EntryStatus = "DRAFT"
	Posted EntryStatus = "POSTED"
	Voided EntryStatus = "VOIDED"
)

// EntryType classifies how a journal entry originated.
type EntryType string

const (
	Manual    EntryType = "MANUAL"
	System    EntryType = "SYSTEM"
	Recurring EntryType = "RECURRING"
	Adjusting EntryType = "ADJUSTING"
	Closing   EntryType = "CLOSING"
)

// Direction indicates whether a journal line is a Debit or a Credit.
type Direction string

const (
	Debit  Direction = "DEBIT"
	Credit Direction = "CREDIT"
)

// JournalLine is a single line of a journal entry, affecting one detail account.
type JournalLine struct {
	LineID         string          `json:"lineID"`         // Primary key (UUID)
	JournalEntryID string          `json:"journalEntryID"` // FK -> JournalEntry
	LineSequence   int             `json:"lineSequence"`   // Preserves presentation order, 1-based
	AccountID      string          `json:"accountID"`      // Must reference a detail account
	Direction      Direction       `json:"direction"`
	Amount         decimal.Decimal `json:"amount"`              // Strictly positive
	Dimension      string          `json:"dimension,omitempty"` // Analytic tag, no ledger semantics
}

// JournalEntry is the aggregate root for one balanced financial event.
// Lifecycle is strictly forward: Draft -> Posted -> Voided. Draft entries may
// be discarded without posting; Posted and Voided entries are immutable audit
// records and are never physically deleted.
type JournalEntry struct {
	EntryID           string        `json:"entryID"`     // Primary key (UUID)
	EntryNumber       string        `json:"entryNumber"` // Unique human-readable number, assigned at posting
	EntryDate         time.Time     `json:"entryDate"`
	FiscalYear        int           `json:"fiscalYear"`  // Denormalized from EntryDate
	FiscalMonth       int           `json:"fiscalMonth"` // Denormalized from EntryDate
	EntryType         EntryType     `json:"entryType"`
	Status            EntryStatus   `json:"status"`
	Description       string        `json:"description"`
	SourceService     string        `json:"sourceService,omitempty"`     // Set for entries generated by other subsystems
	SourceReferenceID string        `json:"sourceReferenceID,omitempty"`
	PostedAt          *time.Time    `json:"postedAt,omitempty"`
	PostedBy          string        `json:"postedBy,omitempty"`
	VoidedAt          *time.Time    `json:"voidedAt,omitempty"`
	VoidedBy          string        `json:"voidedBy,omitempty"`
	VoidReason        string        `json:"voidReason,omitempty"`
	Lines             []JournalLine `json:"lines,omitempty"`
	AuditFields
}

// NewLineParams describes one line of a draft entry under construction.
type NewLineParams struct {
	AccountID string
	Direction Direction
	Amount    decimal.Decimal
	Dimension string
}

// NewEntryParams describes the header of a draft entry under construction.
type NewEntryParams struct {
	EntryDate         time.Time
	EntryType         EntryType
	Description       string
	SourceService     string
	SourceReferenceID string
	CreatedBy         string
}

// NewDraftEntry validates and constructs a Draft journal entry. It either
// returns a fully valid entry or a typed error; there is no partially valid
// intermediate. The balanced-entry invariant is checked with exact decimal
// equality.
func NewDraftEntry(params NewEntryParams, lines []NewLineParams, now time.Time) (*JournalEntry, error) {
	if len(lines) < 2 {
		return nil, fmt.Errorf("%w: journal entry must have at least two lines", apperrors.ErrValidation)
	}
	if params.EntryDate.IsZero() {
		return nil, fmt.Errorf("%w: entry date is required", apperrors.ErrValidation)
	}

	entryID := uuid.NewString()
	debitTotal := decimal.Zero
	creditTotal := decimal.Zero
	domainLines := make([]JournalLine, len(lines))
	for i, lp := range lines {
		if lp.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: line %d amount must be greater than zero", apperrors.ErrValidation, i+1)
		}
		if lp.AccountID == "" {
			return nil, fmt.Errorf("%w: line %d is missing an account", apperrors.ErrValidation, i+1)
		}
		switch lp.Direction {
		case Debit:
			debitTotal = debitTotal.Add(lp.Amount)
		case Credit:
			creditTotal = creditTotal.Add(lp.Amount)
		default:
			return nil, fmt.Errorf("%w: line %d has unknown direction %q", apperrors.ErrValidation, i+1, lp.Direction)
		}
		domainLines[i] = JournalLine{
			LineID:         uuid.NewString(),
			JournalEntryID: entryID,
			LineSequence:   i + 1,
			AccountID:      lp.AccountID,
			Direction:      lp.Direction,
			Amount:         lp.Amount,
			Dimension:      lp.Dimension,
		}
	}

	if !debitTotal.Equal(creditTotal) {
		return nil, fmt.Errorf("%w: debit total %s, credit total %s",
			apperrors.ErrUnbalancedEntry, debitTotal.String(), creditTotal.String())
	}

	entryType := params.EntryType
	if entryType == "" {
		entryType = Manual
	}

	year, month := PeriodOf(params.EntryDate)
	return &JournalEntry{
		EntryID:           entryID,
		EntryDate:         params.EntryDate,
		FiscalYear:        year,
		FiscalMonth:       month,
		EntryType:         entryType,
		Status:            Draft,
		Description:       params.Description,
		SourceService:     params.SourceService,
		SourceReferenceID: params.SourceReferenceID,
		Lines:             domainLines,
		AuditFields: AuditFields{
			CreatedAt:     now,
			CreatedBy:     params.CreatedBy,
			LastUpdatedAt: now,
			LastUpdatedBy: params.CreatedBy,
		},
	}, nil
}

// Post transitions Draft -> Posted. The caller supplies the result of the
// fiscal period check; posting is the only transition that triggers balance
// materialization.
func (e *JournalEntry) Post(entryNumber, postedBy string, at time.Time, periodOpen bool) error {
	switch e.Status {
	case Posted:
		return apperrors.ErrAlreadyPosted
	case Voided:
		return apperrors.ErrAlreadyVoided
	}
	if !periodOpen {
		return apperrors.ErrPeriodNotOpen
	}
	if entryNumber == "" {
		return fmt.Errorf("%w: entry number is required for posting", apperrors.ErrValidation)
	}
	e.EntryNumber = entryNumber
	e.Status = Posted
	e.PostedAt = &at
	e.PostedBy = postedBy
	e.LastUpdatedAt = at
	e.LastUpdatedBy = postedBy
	return nil
}

// Void transitions Posted -> Voided. The original period must not be locked.
// Voiding logically reverses the entry's balance effect; the entry itself is
// retained for audit and never re-enters Draft.
func (e *JournalEntry) Void(reason, voidedBy string, at time.Time, periodLocked bool) error {
	switch e.Status {
	case Draft:
		return apperrors.ErrNotPosted
	case Voided:
		return apperrors.ErrAlreadyVoided
	}
	if periodLocked {
		return apperrors.ErrPeriodLocked
	}
	if reason == "" {
		return fmt.Errorf("%w: void reason is required", apperrors.ErrValidation)
	}
	e.Status = Voided
	e.VoidedAt = &at
	e.VoidedBy = voidedBy
	e.VoidReason = reason
	e.LastUpdatedAt = at
	e.LastUpdatedBy = voidedBy
	return nil
}

// TotalAmount returns the economic value of the entry: the debit-side total,
// which equals the credit-side total for any valid entry.
func (e *JournalEntry) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, line := range e.Lines {
		if line.Direction == Debit {
			total = total.Add(line.Amount)
		}
	}
	return total
}

// AffectedAccountIDs returns the distinct account IDs referenced by the
// entry's lines, in first-appearance order.
func (e *JournalEntry) AffectedAccountIDs() []string {
	seen := make(map[string]struct{}, len(e.Lines))
	ids := make([]string, 0, len(e.Lines))
	for _, line := range e.Lines {
		if _, ok := seen[line.AccountID]; !ok {
			seen[line.AccountID] = struct{}{}
			ids = append(ids, line.AccountID)
		}
	}
	return ids
}
