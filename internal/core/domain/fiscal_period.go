package domain

import (
	"fmt"
	"time"

	"github.com/lukmanha083/kidkazz-ledger/internal/apperrors"
)

// PeriodStatus is the state of a fiscal period.
type PeriodStatus string

const (
	PeriodOpen   PeriodStatus = "OPEN"
	PeriodClosed PeriodStatus = "CLOSED"
	PeriodLocked PeriodStatus = "LOCKED"
)

// FiscalPeriod tracks one (year, month) accounting window and gates posting.
//
// State machine:
//
//	Open --close--> Closed --reopen(reason)--> Open
//	Closed --lock--> Locked (terminal)
type FiscalPeriod struct {
	FiscalYear  int          `json:"fiscalYear"`
	FiscalMonth int          `json:"fiscalMonth"` // 1..12
	Status      PeriodStatus `json:"status"`
	ClosedAt    *time.Time   `json:"closedAt,omitempty"`
	ClosedBy    string       `json:"closedBy,omitempty"`
	ReopenedAt  *time.Time   `json:"reopenedAt,omitempty"`
	ReopenedBy  string       `json:"reopenedBy,omitempty"`
	ReopenReason string      `json:"reopenReason,omitempty"`
	AuditFields
}

// NewOpenPeriod constructs an Open fiscal period for the given year and month.
func NewOpenPeriod(year, month int, createdBy string, at time.Time) (*FiscalPeriod, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: fiscal month %d out of range", apperrors.ErrValidation, month)
	}
	if year < 1900 || year > 9999 {
		return nil, fmt.Errorf("%w: fiscal year %d out of range", apperrors.ErrValidation, year)
	}
	return &FiscalPeriod{
		FiscalYear:  year,
		FiscalMonth: month,
		Status:      PeriodOpen,
		AuditFields: AuditFields{
			CreatedAt:     at,
			CreatedBy:     createdBy,
			LastUpdatedAt: at,
			LastUpdatedBy: createdBy,
		},
	}, nil
}

// PeriodOf returns the fiscal (year, month) a date falls in.
func PeriodOf(date time.Time) (int, int) {
	return date.Year(), int(date.Month())
}

// Close transitions Open -> Closed. Closing an already-Closed period is a
// no-op so at-least-once callers can retry safely; closedAt is not touched.
// Returns whether the period actually changed.
func (p *FiscalPeriod) Close(closedBy string, at time.Time) (bool, error) {
	switch p.Status {
	case PeriodLocked:
		return false, apperrors.ErrPeriodLocked
	case PeriodClosed:
		return false, nil
	}
	p.Status = PeriodClosed
	p.ClosedAt = &at
	p.ClosedBy = closedBy
	p.LastUpdatedAt = at
	p.LastUpdatedBy = closedBy
	return true, nil
}

// Reopen transitions Closed -> Open. A reason is mandatory and persisted.
func (p *FiscalPeriod) Reopen(reopenedBy, reason string, at time.Time) error {
	if reason == "" {
		return fmt.Errorf("%w: reopen reason is required", apperrors.ErrValidation)
	}
	switch p.Status {
	case PeriodLocked:
		return apperrors.ErrPeriodLocked
	case PeriodOpen:
		return fmt.Errorf("%w: period %d-%02d is not closed", apperrors.ErrValidation, p.FiscalYear, p.FiscalMonth)
	}
	p.Status = PeriodOpen
	p.ReopenedAt = &at
	p.ReopenedBy = reopenedBy
	p.ReopenReason = reason
	p.LastUpdatedAt = at
	p.LastUpdatedBy = reopenedBy
	return nil
}

// Lock transitions Closed -> Locked. Locked is terminal: no posting, voiding
// or reopening may ever touch the period again.
func (p *FiscalPeriod) Lock(lockedBy string, at time.Time) error {
	switch p.Status {
	case PeriodLocked:
		return apperrors.ErrAlreadyLocked
	case PeriodOpen:
		return fmt.Errorf("%w: period %d-%02d must be closed before locking", apperrors.ErrValidation, p.FiscalYear, p.FiscalMonth)
	}
	p.Status = PeriodLocked
	p.LastUpdatedAt = at
	p.LastUpdatedBy = lockedBy
	return nil
}

// IsOpen reports whether posting into this period is currently allowed.
func (p *FiscalPeriod) IsOpen() bool {
	return p.Status == PeriodOpen
}
