package mapping

import (
	"github.com/lukmanha083/kidkazz-ledger/internal/core/domain"
	"github.com/lukmanha083/kidkazz-ledger/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry header to its model form.
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:           d.EntryID,
		EntryNumber:       d.EntryNumber,
		EntryDate:         d.EntryDate,
		FiscalYear:        d.FiscalYear,
		FiscalMonth:       d.FiscalMonth,
		EntryType:         models.EntryType(d.EntryType),
		Status:            models.EntryStatus(d.Status),
		Description:       d.Description,
		SourceService:     d.SourceService,
		SourceReferenceID: d.SourceReferenceID,
		PostedAt:          d.PostedAt,
		PostedBy:          d.PostedBy,
		VoidedAt:          d.VoidedAt,
		VoidedBy:          d.VoidedBy,
		VoidReason:        d.VoidReason,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a model JournalEntry to its domain form.
// Lines are loaded separately.
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:           m.EntryID,
		EntryNumber:       m.EntryNumber,
		EntryDate:         m.EntryDate,
		FiscalYear:        m.FiscalYear,
		FiscalMonth:       m.FiscalMonth,
		EntryType:         domain.EntryType(m.EntryType),
		Status:            domain.EntryStatus(m.Status),
		Description:       m.Description,
		SourceService:     m.SourceService,
		SourceReferenceID: m.SourceReferenceID,
		PostedAt:          m.PostedAt,
		PostedBy:          m.PostedBy,
		VoidedAt:          m.VoidedAt,
		VoidedBy:          m.VoidedBy,
		VoidReason:        m.VoidReason,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelJournalLine converts a domain JournalLine to its model form.
func ToModelJournalLine(d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		LineID:         d.LineID,
		JournalEntryID: d.JournalEntryID,
		LineSequence:   d.LineSequence,
		AccountID:      d.AccountID,
		Direction:      models.Direction(d.Direction),
		Amount:         d.Amount,
		Dimension:      d.Dimension,
	}
}

// ToDomainJournalLine converts a model JournalLine to its domain form.
func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		LineID:         m.LineID,
		JournalEntryID: m.JournalEntryID,
		LineSequence:   m.LineSequence,
		AccountID:      m.AccountID,
		Direction:      domain.Direction(m.Direction),
		Amount:         m.Amount,
		Dimension:      m.Dimension,
	}
}

// ToDomainJournalLineSlice converts a slice of model lines to domain lines.
func ToDomainJournalLineSlice(ms []models.JournalLine) []domain.JournalLine {
	ds := make([]domain.JournalLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournalLine(m)
	}
	return ds
}
