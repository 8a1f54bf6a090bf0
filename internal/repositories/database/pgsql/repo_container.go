package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/lukmanha083/kidkazz-ledger/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	periodRepo := newPgxFiscalPeriodRepository(dbPool)
	balanceRepo := newPgxBalanceRepository(dbPool)
	journalRepo := newPgxJournalRepository(dbPool, balanceRepo)

	return portsrepo.RepositoryProvider{
		AccountRepo: accountRepo,
		PeriodRepo:  periodRepo,
		JournalRepo: journalRepo,
		BalanceRepo: balanceRepo,
	}
}
