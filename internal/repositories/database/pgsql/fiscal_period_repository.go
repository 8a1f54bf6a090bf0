package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lukmanha083/kidkazz-ledger/internal/apperrors"
	"github.com/lukmanha083/kidkazz-ledger/internal/core/domain"
	portsrepo "github.com/lukmanha083/kidkazz-ledger/internal/core/ports/repositories"
	"github.com/lukmanha083/kidkazz-ledger/internal/models"
	"github.com/lukmanha083/kidkazz-ledger/internal/utils/mapping"
)

const periodColumns = `fiscal_year, fiscal_month, status, closed_at, closed_by, reopened_at, reopened_by, reopen_reason, created_at, created_by, last_updated_at, last_updated_by`

type PgxFiscalPeriodRepository struct {
	BaseRepository
}

func newPgxFiscalPeriodRepository(pool *pgxpool.Pool) portsrepo.FiscalPeriodRepositoryFacade {
	return &PgxFiscalPeriodRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.FiscalPeriodRepositoryFacade = (*PgxFiscalPeriodRepository)(nil)

func scanPeriod(row rowScanner) (models.FiscalPeriod, error) {
	var m models.FiscalPeriod
	var closedBy, reopenedBy, reopenReason sql.NullString
	err := row.Scan(
		&m.FiscalYear,
		&m.FiscalMonth,
		&m.Status,
		&m.ClosedAt,
		&closedBy,
		&m.ReopenedAt,
		&reopenedBy,
		&reopenReason,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return models.FiscalPeriod{}, err
	}
	m.ClosedBy = closedBy.String
	m.ReopenedBy = reopenedBy.String
	m.ReopenReason = reopenReason.String
	return m, nil
}

// SavePeriod inserts a new period. Inserting an existing (year, month) is a
// no-op; the row that ends up in the table is returned either way, so
// opening a period is idempotent under concurrent callers.
func (r *PgxFiscalPeriodRepository) SavePeriod(ctx context.Context, period domain.FiscalPeriod) (*domain.FiscalPeriod, error) {
	m := mapping.ToModelFiscalPeriod(period)

	query := `
		INSERT INTO fiscal_periods (fiscal_year, fiscal_month, status, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (fiscal_year, fiscal_month) DO NOTHING;
	`
	_, err := r.Pool.Exec(ctx, query,
		m.FiscalYear,
		m.FiscalMonth,
		m.Status,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to save fiscal period %d-%02d: %w", m.FiscalYear, m.FiscalMonth, err)
	}

	return r.FindPeriod(ctx, m.FiscalYear, m.FiscalMonth)
}

// FindPeriod retrieves a period by its (year, month) key.
func (r *PgxFiscalPeriodRepository) FindPeriod(ctx context.Context, year, month int) (*domain.FiscalPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM fiscal_periods WHERE fiscal_year = $1 AND fiscal_month = $2;`

	m, err := scanPeriod(r.Pool.QueryRow(ctx, query, year, month))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find fiscal period %d-%02d: %w", year, month, err)
	}

	d := mapping.ToDomainFiscalPeriod(m)
	return &d, nil
}

// ListPeriods retrieves all periods of a fiscal year ordered by month.
func (r *PgxFiscalPeriodRepository) ListPeriods(ctx context.Context, year int) ([]domain.FiscalPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM fiscal_periods WHERE fiscal_year = $1 ORDER BY fiscal_month;`

	rows, err := r.Pool.Query(ctx, query, year)
	if err != nil {
		return nil, fmt.Errorf("failed to query fiscal periods for year %d: %w", year, err)
	}
	defer rows.Close()

	periods := make([]domain.FiscalPeriod, 0, 12)
	for rows.Next() {
		m, err := scanPeriod(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fiscal period row: %w", err)
		}
		periods = append(periods, mapping.ToDomainFiscalPeriod(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fiscal period rows: %w", err)
	}
	return periods, nil
}

// TransitionPeriod loads the period under FOR UPDATE, applies the transition
// and persists the result in one transaction. Postings take a shared lock on
// the same row, so a transition never commits while a posting into the
// period is in flight, and vice versa.
func (r *PgxFiscalPeriodRepository) TransitionPeriod(ctx context.Context, year, month int, apply func(p *domain.FiscalPeriod) error) (*domain.FiscalPeriod, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	query := `SELECT ` + periodColumns + ` FROM fiscal_periods WHERE fiscal_year = $1 AND fiscal_month = $2 FOR UPDATE;`

	m, err := scanPeriod(tx.QueryRow(ctx, query, year, month))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock fiscal period %d-%02d: %w", year, month, err)
	}

	period := mapping.ToDomainFiscalPeriod(m)
	if err := apply(&period); err != nil {
		return nil, err
	}

	updated := mapping.ToModelFiscalPeriod(period)
	updateQuery := `
		UPDATE fiscal_periods
		SET status = $3, closed_at = $4, closed_by = $5, reopened_at = $6, reopened_by = $7, reopen_reason = $8, last_updated_at = $9, last_updated_by = $10
		WHERE fiscal_year = $1 AND fiscal_month = $2;
	`
	var closedBy, reopenedBy, reopenReason sql.NullString
	if updated.ClosedBy != "" {
		closedBy = sql.NullString{String: updated.ClosedBy, Valid: true}
	}
	if updated.ReopenedBy != "" {
		reopenedBy = sql.NullString{String: updated.ReopenedBy, Valid: true}
	}
	if updated.ReopenReason != "" {
		reopenReason = sql.NullString{String: updated.ReopenReason, Valid: true}
	}

	_, err = tx.Exec(ctx, updateQuery,
		updated.FiscalYear,
		updated.FiscalMonth,
		updated.Status,
		updated.ClosedAt,
		closedBy,
		updated.ReopenedAt,
		reopenedBy,
		reopenReason,
		updated.LastUpdatedAt,
		updated.LastUpdatedBy,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update fiscal period %d-%02d: %w", year, month, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &period, nil
}
