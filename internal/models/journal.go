package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the lifecycle state of a journal entry row.
type EntryStatus string

// EntryType classifies how a journal entry originated.
type EntryType string

// Direction indicates whether a line is a debit or a credit.
type Direction string

// JournalEntry is the database representation of a journal entry header.
type JournalEntry struct {
	EntryID           string      `json:"entryID"`
	EntryNumber       string      `json:"entryNumber"`
	EntryDate         time.Time   `json:"entryDate"`
	FiscalYear        int         `json:"fiscalYear"`
	FiscalMonth       int         `json:"fiscalMonth"`
	EntryType         EntryType   `json:"entryType"`
	Status            EntryStatus `json:"status"`
	Description       string      `json:"description"`
	SourceService     string      `json:"sourceService"`     // Empty string maps to NULL
	SourceReferenceID string      `json:"sourceReferenceID"` // Empty string maps to NULL
	PostedAt          *time.Time  `json:"postedAt"`
	PostedBy          string      `json:"postedBy"`
	VoidedAt          *time.Time  `json:"voidedAt"`
	VoidedBy          string      `json:"voidedBy"`
	VoidReason        string      `json:"voidReason"`
	AuditFields
}

// JournalLine is the database representation of one journal entry line.
type JournalLine struct {
	LineID         string          `json:"lineID"`
	JournalEntryID string          `json:"journalEntryID"`
	LineSequence   int             `json:"lineSequence"`
	AccountID      string          `json:"accountID"`
	Direction      Direction       `json:"direction"`
	Amount         decimal.Decimal `json:"amount"`
	Dimension      string          `json:"dimension"` // Empty string maps to NULL
}
