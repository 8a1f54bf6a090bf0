package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/lukmanha083/kidkazz-ledger/internal/apperrors"
	"github.com/lukmanha083/kidkazz-ledger/internal/core/domain"
	portsrepo "github.com/lukmanha083/kidkazz-ledger/internal/core/ports/repositories"
	"github.com/lukmanha083/kidkazz-ledger/internal/middleware"
)

// FiscalPeriodService manages the fiscal period register. All state
// transitions run through the repository's row-locked transition so they are
// serialized against concurrent postings into the same period.
type FiscalPeriodService struct {
	periodRepo portsrepo.FiscalPeriodRepositoryFacade
}

func NewFiscalPeriodService(repo portsrepo.FiscalPeriodRepositoryFacade) *FiscalPeriodService {
	return &FiscalPeriodService{periodRepo: repo}
}

// OpenPeriod creates an Open period for (year, month). Opening a period that
// already exists is a no-op returning the existing row, whatever its status;
// reopening a closed period is an explicit, audited operation instead.
func (s *FiscalPeriodService) OpenPeriod(ctx context.Context, year, month int, actor string) (*domain.FiscalPeriod, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	period, err := domain.NewOpenPeriod(year, month, actor, time.Now())
	if err != nil {
		return nil, err
	}

	saved, err := s.periodRepo.SavePeriod(ctx, *period)
	if err != nil {
		logger.Error("Failed to save fiscal period", slog.String("error", err.Error()), slog.Int("year", year), slog.Int("month", month))
		return nil, err
	}

	logger.Info("Fiscal period opened", slog.Int("year", saved.FiscalYear), slog.Int("month", saved.FiscalMonth), slog.String("status", string(saved.Status)))
	return saved, nil
}

// ClosePeriod transitions Open -> Closed. Closing an already-closed period
// succeeds without changing anything, so retries are safe.
func (s *FiscalPeriodService) ClosePeriod(ctx context.Context, year, month int, closedBy string) (*domain.FiscalPeriod, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	period, err := s.periodRepo.TransitionPeriod(ctx, year, month, func(p *domain.FiscalPeriod) error {
		_, err := p.Close(closedBy, time.Now())
		return err
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrPeriodLocked) {
			logger.Error("Failed to close fiscal period", slog.String("error", err.Error()), slog.Int("year", year), slog.Int("month", month))
		}
		return nil, err
	}

	logger.Info("Fiscal period closed", slog.Int("year", year), slog.Int("month", month), slog.String("closed_by", closedBy))
	return period, nil
}

// ReopenPeriod transitions Closed -> Open with a mandatory audit reason.
func (s *FiscalPeriodService) ReopenPeriod(ctx context.Context, year, month int, reopenedBy, reason string) (*domain.FiscalPeriod, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	period, err := s.periodRepo.TransitionPeriod(ctx, year, month, func(p *domain.FiscalPeriod) error {
		return p.Reopen(reopenedBy, reason, time.Now())
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrPeriodLocked) && !errors.Is(err, apperrors.ErrValidation) {
			logger.Error("Failed to reopen fiscal period", slog.String("error", err.Error()), slog.Int("year", year), slog.Int("month", month))
		}
		return nil, err
	}

	logger.Warn("Fiscal period reopened", slog.Int("year", year), slog.Int("month", month), slog.String("reopened_by", reopenedBy), slog.String("reason", reason))
	return period, nil
}

// LockPeriod transitions Closed -> Locked. A locked period can never be
// posted to, voided against or reopened.
func (s *FiscalPeriodService) LockPeriod(ctx context.Context, year, month int, lockedBy string) (*domain.FiscalPeriod, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	period, err := s.periodRepo.TransitionPeriod(ctx, year, month, func(p *domain.FiscalPeriod) error {
		return p.Lock(lockedBy, time.Now())
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrAlreadyLocked) && !errors.Is(err, apperrors.ErrValidation) {
			logger.Error("Failed to lock fiscal period", slog.String("error", err.Error()), slog.Int("year", year), slog.Int("month", month))
		}
		return nil, err
	}

	logger.Info("Fiscal period locked", slog.Int("year", year), slog.Int("month", month), slog.String("locked_by", lockedBy))
	return period, nil
}

// IsOpen reports whether the period exists and is Open. A period that was
// never opened does not accept postings.
func (s *FiscalPeriodService) IsOpen(ctx context.Context, year, month int) (bool, error) {
	period, err := s.periodRepo.FindPeriod(ctx, year, month)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return period.IsOpen(), nil
}

func (s *FiscalPeriodService) GetPeriod(ctx context.Context, year, month int) (*domain.FiscalPeriod, error) {
	return s.periodRepo.FindPeriod(ctx, year, month)
}

func (s *FiscalPeriodService) ListPeriods(ctx context.Context, year int) ([]domain.FiscalPeriod, error) {
	periods, err := s.periodRepo.ListPeriods(ctx, year)
	if err != nil {
		return nil, err
	}
	if periods == nil {
		return []domain.FiscalPeriod{}, nil
	}
	return periods, nil
}
