package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/lukmanha083/kidkazz-ledger/internal/core/domain"
)

// EntryLineRequest defines one line of an entry to be posted.
type EntryLineRequest struct {
	AccountID string          `json:"accountID" binding:"required"`
	Direction string          `json:"direction" binding:"required,oneof=DEBIT CREDIT"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Dimension string          `json:"dimension"`
}

// CreateEntryRequest defines the payload for posting a journal entry.
type CreateEntryRequest struct {
	EntryDate         time.Time          `json:"entryDate" binding:"required"`
	EntryType         string             `json:"entryType" binding:"omitempty,oneof=MANUAL SYSTEM RECURRING ADJUSTING CLOSING"`
	Description       string             `json:"description"`
	SourceService     string             `json:"sourceService"`
	SourceReferenceID string             `json:"sourceReferenceID"`
	Lines             []EntryLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// VoidEntryRequest defines the payload for voiding a posted entry.
type VoidEntryRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// LineResponse defines the data returned for a journal line.
type LineResponse struct {
	LineID       string          `json:"lineID"`
	LineSequence int             `json:"lineSequence"`
	AccountID    string          `json:"accountID"`
	Direction    string          `json:"direction"`
	Amount       decimal.Decimal `json:"amount"`
	Dimension    string          `json:"dimension,omitempty"`
}

// EntryResponse defines the data returned for a journal entry.
type EntryResponse struct {
	EntryID     string          `json:"entryID"`
	EntryNumber string          `json:"entryNumber,omitempty"`
	EntryDate   time.Time       `json:"entryDate"`
	FiscalYear  int             `json:"fiscalYear"`
	FiscalMonth int             `json:"fiscalMonth"`
	EntryType   string          `json:"entryType"`
	Status      string          `json:"status"`
	Description string          `json:"description,omitempty"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	PostedAt    *time.Time      `json:"postedAt,omitempty"`
	PostedBy    string          `json:"postedBy,omitempty"`
	VoidedAt    *time.Time      `json:"voidedAt,omitempty"`
	VoidedBy    string          `json:"voidedBy,omitempty"`
	VoidReason  string          `json:"voidReason,omitempty"`
	Lines       []LineResponse  `json:"lines,omitempty"`
}

// AccountLineResponse is one posted line in an account drill-down. Unlike
// LineResponse it carries the owning entry's ID since the entry context is
// not implied.
type AccountLineResponse struct {
	LineID         string          `json:"lineID"`
	JournalEntryID string          `json:"journalEntryID"`
	LineSequence   int             `json:"lineSequence"`
	Direction      string          `json:"direction"`
	Amount         decimal.Decimal `json:"amount"`
	Dimension      string          `json:"dimension,omitempty"`
}

// AccountLinesResponse is the posted activity of one account in one period.
type AccountLinesResponse struct {
	AccountID   string                `json:"accountID"`
	FiscalYear  int                   `json:"fiscalYear"`
	FiscalMonth int                   `json:"fiscalMonth"`
	Lines       []AccountLineResponse `json:"lines"`
}

// ToAccountLinesResponse converts drill-down lines to their response DTO.
func ToAccountLinesResponse(accountID string, year, month int, lines []domain.JournalLine) AccountLinesResponse {
	resp := AccountLinesResponse{
		AccountID:   accountID,
		FiscalYear:  year,
		FiscalMonth: month,
		Lines:       make([]AccountLineResponse, len(lines)),
	}
	for i, line := range lines {
		resp.Lines[i] = AccountLineResponse{
			LineID:         line.LineID,
			JournalEntryID: line.JournalEntryID,
			LineSequence:   line.LineSequence,
			Direction:      string(line.Direction),
			Amount:         line.Amount,
			Dimension:      line.Dimension,
		}
	}
	return resp
}

// ListEntriesParams holds parameters for listing journal entries.
type ListEntriesParams struct {
	Limit         int     `form:"limit"`
	NextToken     *string `form:"nextToken"`
	IncludeVoided bool    `form:"includeVoided"`
}

// ListEntriesResponse is the paginated entry listing payload.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// ToLineResponse converts a domain JournalLine to its response DTO.
func ToLineResponse(line *domain.JournalLine) LineResponse {
	return LineResponse{
		LineID:       line.LineID,
		LineSequence: line.LineSequence,
		AccountID:    line.AccountID,
		Direction:    string(line.Direction),
		Amount:       line.Amount,
		Dimension:    line.Dimension,
	}
}

// ToEntryResponse converts a domain JournalEntry to its response DTO.
func ToEntryResponse(e *domain.JournalEntry) EntryResponse {
	resp := EntryResponse{
		EntryID:     e.EntryID,
		EntryNumber: e.EntryNumber,
		EntryDate:   e.EntryDate,
		FiscalYear:  e.FiscalYear,
		FiscalMonth: e.FiscalMonth,
		EntryType:   string(e.EntryType),
		Status:      string(e.Status),
		Description: e.Description,
		TotalAmount: e.TotalAmount(),
		PostedAt:    e.PostedAt,
		PostedBy:    e.PostedBy,
		VoidedAt:    e.VoidedAt,
		VoidedBy:    e.VoidedBy,
		VoidReason:  e.VoidReason,
	}
	if len(e.Lines) > 0 {
		resp.Lines = make([]LineResponse, len(e.Lines))
		for i := range e.Lines {
			resp.Lines[i] = ToLineResponse(&e.Lines[i])
		}
	}
	return resp
}
