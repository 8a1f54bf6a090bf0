package mapping

import (
	"github.com/lukmanha083/kidkazz-ledger/internal/core/domain"
	"github.com/lukmanha083/kidkazz-ledger/internal/models"
)

// ToDomainAccountBalance converts a model AccountBalance to its domain form.
func ToDomainAccountBalance(m models.AccountBalance) domain.AccountBalance {
	return domain.AccountBalance{
		AccountID:      m.AccountID,
		FiscalYear:     m.FiscalYear,
		FiscalMonth:    m.FiscalMonth,
		OpeningBalance: m.OpeningBalance,
		DebitTotal:     m.DebitTotal,
		CreditTotal:    m.CreditTotal,
		ClosingBalance: m.ClosingBalance,
		LastUpdatedAt:  m.LastUpdatedAt,
	}
}

// ToDomainAccountBalanceSlice converts model balance rows to domain form.
func ToDomainAccountBalanceSlice(ms []models.AccountBalance) []domain.AccountBalance {
	ds := make([]domain.AccountBalance, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccountBalance(m)
	}
	return ds
}
