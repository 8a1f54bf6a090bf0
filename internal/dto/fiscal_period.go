package dto

import (
	"time"

	"github.com/lukmanha083/kidkazz-ledger/internal/core/domain"
)

// ReopenPeriodRequest defines the payload for reopening a closed period.
// The reason is mandatory and persisted on the period for audit.
type ReopenPeriodRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// PeriodResponse defines the data returned for a fiscal period.
type PeriodResponse struct {
	FiscalYear   int        `json:"fiscalYear"`
	FiscalMonth  int        `json:"fiscalMonth"`
	Status       string     `json:"status"`
	ClosedAt     *time.Time `json:"closedAt,omitempty"`
	ClosedBy     string     `json:"closedBy,omitempty"`
	ReopenedAt   *time.Time `json:"reopenedAt,omitempty"`
	ReopenedBy   string     `json:"reopenedBy,omitempty"`
	ReopenReason string     `json:"reopenReason,omitempty"`
}

// ToPeriodResponse converts a domain FiscalPeriod to its response DTO.
func ToPeriodResponse(p *domain.FiscalPeriod) PeriodResponse {
	return PeriodResponse{
		FiscalYear:   p.FiscalYear,
		FiscalMonth:  p.FiscalMonth,
		Status:       string(p.Status),
		ClosedAt:     p.ClosedAt,
		ClosedBy:     p.ClosedBy,
		ReopenedAt:   p.ReopenedAt,
		ReopenedBy:   p.ReopenedBy,
		ReopenReason: p.ReopenReason,
	}
}
