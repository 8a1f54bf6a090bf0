package services

import (
	portsrepo "github.com/lukmanha083/kidkazz-ledger/internal/core/ports/repositories"
	portssvc "github.com/lukmanha083/kidkazz-ledger/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies.
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Account: NewAccountService(repos.AccountRepo),
		Period:  NewFiscalPeriodService(repos.PeriodRepo),
		Posting: NewPostingService(repos.AccountRepo, repos.PeriodRepo, repos.JournalRepo),
		Balance: NewBalanceService(repos.BalanceRepo, repos.AccountRepo),
	}
}

// Compile-time interface conformance checks.
var (
	_ portssvc.AccountSvcFacade      = (*AccountService)(nil)
	_ portssvc.FiscalPeriodSvcFacade = (*FiscalPeriodService)(nil)
	_ portssvc.PostingSvcFacade      = (*PostingService)(nil)
	_ portssvc.BalanceSvcFacade      = (*BalanceService)(nil)
)
