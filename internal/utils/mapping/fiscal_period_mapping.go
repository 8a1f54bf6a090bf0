package mapping

import (
	"github.com/lukmanha083/kidkazz-ledger/internal/core/domain"
	"github.com/lukmanha083/kidkazz-ledger/internal/models"
)

// ToModelFiscalPeriod converts a domain FiscalPeriod to its model form.
func ToModelFiscalPeriod(d domain.FiscalPeriod) models.FiscalPeriod {
	return models.FiscalPeriod{
		FiscalYear:   d.FiscalYear,
		FiscalMonth:  d.FiscalMonth,
		Status:       models.PeriodStatus(d.Status),
		ClosedAt:     d.ClosedAt,
		ClosedBy:     d.ClosedBy,
		ReopenedAt:   d.ReopenedAt,
		ReopenedBy:   d.ReopenedBy,
		ReopenReason: d.ReopenReason,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainFiscalPeriod converts a model FiscalPeriod to its domain form.
func ToDomainFiscalPeriod(m models.FiscalPeriod) domain.FiscalPeriod {
	return domain.FiscalPeriod{
		FiscalYear:   m.FiscalYear,
		FiscalMonth:  m.FiscalMonth,
		Status:       domain.PeriodStatus(m.Status),
		ClosedAt:     m.ClosedAt,
		ClosedBy:     m.ClosedBy,
		ReopenedAt:   m.ReopenedAt,
		ReopenedBy:   m.ReopenedBy,
		ReopenReason: m.ReopenReason,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}
