package models

import "time"

// PeriodStatus is the state of a fiscal period row.
type PeriodStatus string

// FiscalPeriod is the database representation of one (year, month) window.
type FiscalPeriod struct {
	FiscalYear   int          `json:"fiscalYear"`
	FiscalMonth  int          `json:"fiscalMonth"`
	Status       PeriodStatus `json:"status"`
	ClosedAt     *time.Time   `json:"closedAt"`
	ClosedBy     string       `json:"closedBy"`
	ReopenedAt   *time.Time   `json:"reopenedAt"`
	ReopenedBy   string       `json:"reopenedBy"`
	ReopenReason string       `json:"reopenReason"`
	AuditFields
}
