package mapping

import (
	"github.com/lukmanha083/kidkazz-ledger/internal/core/domain"
	"github.com/lukmanha083/kidkazz-ledger/internal/models"
)

// ToModelAccount converts a domain Account to a model Account.
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:       d.AccountID,
		Code:            d.Code,
		Name:            d.Name,
		AccountType:     models.AccountType(d.AccountType),
		AccountCategory: d.AccountCategory,
		NormalBalance:   models.NormalBalance(d.NormalBalance),
		ParentAccountID: d.ParentAccountID,
		Level:           d.Level,
		IsDetailAccount: d.IsDetailAccount,
		Status:          models.AccountStatus(d.Status),
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account.
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:       m.AccountID,
		Code:            m.Code,
		Name:            m.Name,
		AccountType:     domain.AccountType(m.AccountType),
		AccountCategory: m.AccountCategory,
		NormalBalance:   domain.NormalBalance(m.NormalBalance),
		ParentAccountID: m.ParentAccountID,
		Level:           m.Level,
		IsDetailAccount: m.IsDetailAccount,
		Status:          domain.AccountStatus(m.Status),
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}
