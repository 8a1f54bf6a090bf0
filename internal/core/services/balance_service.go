package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/lukmanha083/kidkazz-ledger/internal/apperrors"
	"github.com/lukmanha083/kidkazz-ledger/internal/core/domain"
	portsrepo "github.com/lukmanha083/kidkazz-ledger/internal/core/ports/repositories"
	"github.com/lukmanha083/kidkazz-ledger/internal/dto"
	"github.com/lukmanha083/kidkazz-ledger/internal/middleware"
)

// BalanceService exposes the materialized balances for reporting and repair.
type BalanceService struct {
	balanceRepo portsrepo.BalanceRepositoryFacade
	accountRepo portsrepo.AccountReader
}

func NewBalanceService(balanceRepo portsrepo.BalanceRepositoryFacade, accountRepo portsrepo.AccountReader) *BalanceService {
	return &BalanceService{balanceRepo: balanceRepo, accountRepo: accountRepo}
}

func (s *BalanceService) GetAccountBalance(ctx context.Context, accountID string, year, month int) (*domain.AccountBalance, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	balance, err := s.balanceRepo.GetBalance(ctx, accountID, year, month)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to get account balance", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return nil, err
	}
	return balance, nil
}

// GetYearToDateTotals sums an account's activity across the year's balance
// rows up to the given month. An account with no activity yet reports zeros,
// provided the account itself exists.
func (s *BalanceService) GetYearToDateTotals(ctx context.Context, accountID string, year, uptoMonth int) (*domain.YearToDateTotals, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return nil, err
	}

	balances, err := s.balanceRepo.ListBalancesForYear(ctx, accountID, year, uptoMonth)
	if err != nil {
		logger.Error("Failed to list balances for year", slog.String("error", err.Error()), slog.String("account_id", accountID), slog.Int("year", year))
		return nil, err
	}

	totals := &domain.YearToDateTotals{
		AccountID:      accountID,
		FiscalYear:     year,
		UptoMonth:      uptoMonth,
		OpeningBalance: decimal.Zero,
		DebitTotal:     decimal.Zero,
		CreditTotal:    decimal.Zero,
		ClosingBalance: decimal.Zero,
	}
	for i, b := range balances {
		if i == 0 {
			totals.OpeningBalance = b.OpeningBalance
		}
		totals.DebitTotal = totals.DebitTotal.Add(b.DebitTotal)
		totals.CreditTotal = totals.CreditTotal.Add(b.CreditTotal)
		totals.ClosingBalance = b.ClosingBalance
	}
	return totals, nil
}

// RecomputePeriod rebuilds one balance row from the posted line history and
// returns the fresh value. The result must equal what incremental updates
// produced; a difference means the cache had drifted and is now repaired.
func (s *BalanceService) RecomputePeriod(ctx context.Context, accountID string, year, month int) (*domain.AccountBalance, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return nil, err
	}

	balance, err := s.balanceRepo.RecomputePeriod(ctx, accountID, year, month)
	if err != nil {
		logger.Error("Failed to recompute balance", slog.String("error", err.Error()), slog.String("account_id", accountID), slog.Int("year", year), slog.Int("month", month))
		return nil, err
	}

	logger.Info("Balance recomputed", slog.String("account_id", accountID), slog.Int("year", year), slog.Int("month", month), slog.String("closing_balance", balance.ClosingBalance.String()))
	return balance, nil
}

// CarryForwardOpeningBalance re-seeds the target period's opening balance
// from the source period's closing balance. Typically run per account after
// closing a period, before activity begins in the next one.
func (s *BalanceService) CarryForwardOpeningBalance(ctx context.Context, accountID string, fromYear, fromMonth, toYear, toMonth int) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return err
	}

	if err := s.balanceRepo.CarryForwardOpeningBalance(ctx, accountID, fromYear, fromMonth, toYear, toMonth); err != nil {
		logger.Error("Failed to carry forward opening balance", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return err
	}

	logger.Info("Opening balance carried forward",
		slog.String("account_id", accountID),
		slog.Int("from_year", fromYear), slog.Int("from_month", fromMonth),
		slog.Int("to_year", toYear), slog.Int("to_month", toMonth),
	)
	return nil
}

// TrialBalance reports every account's totals for one period. The report is
// in balance exactly when the period's debit and credit totals match, which
// holds whenever every posting was balanced.
func (s *BalanceService) TrialBalance(ctx context.Context, year, month int) (*dto.TrialBalanceResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	balances, err := s.balanceRepo.ListBalancesForPeriod(ctx, year, month)
	if err != nil {
		logger.Error("Failed to list balances for period", slog.String("error", err.Error()), slog.Int("year", year), slog.Int("month", month))
		return nil, err
	}

	resp := &dto.TrialBalanceResponse{
		FiscalYear:  year,
		FiscalMonth: month,
		Rows:        make([]dto.TrialBalanceRow, len(balances)),
		DebitTotal:  decimal.Zero,
		CreditTotal: decimal.Zero,
	}
	for i, b := range balances {
		resp.Rows[i] = dto.TrialBalanceRow{
			AccountID:      b.AccountID,
			DebitTotal:     b.DebitTotal,
			CreditTotal:    b.CreditTotal,
			ClosingBalance: b.ClosingBalance,
		}
		resp.DebitTotal = resp.DebitTotal.Add(b.DebitTotal)
		resp.CreditTotal = resp.CreditTotal.Add(b.CreditTotal)
	}
	resp.InBalance = resp.DebitTotal.Equal(resp.CreditTotal)
	return resp, nil
}
