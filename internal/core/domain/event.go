package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEventType distinguishes the events the engine records.
type LedgerEventType string

const (
	EntryPostedEvent LedgerEventType = "ledger.entry.posted"
	EntryVoidedEvent LedgerEventType = "ledger.entry.voided"
)

// PostingEvent is recorded atomically with every successful posting or void.
// Delivery is the outbox publisher's job, not the engine's; the engine only
// guarantees the event row commits in the same transaction as the entry.
type PostingEvent struct {
	EventID          string          `json:"eventID"`
	EventType        LedgerEventType `json:"eventType"`
	EntryID          string          `json:"entryID"`
	EntryNumber      string          `json:"entryNumber"`
	AffectedAccounts []string        `json:"affectedAccounts"`
	FiscalYear       int             `json:"fiscalYear"`
	FiscalMonth      int             `json:"fiscalMonth"`
	TotalAmount      decimal.Decimal `json:"totalAmount"`
	OccurredAt       time.Time       `json:"occurredAt"`
}
