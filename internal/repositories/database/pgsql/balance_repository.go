package pgsql

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/lukmanha083/kidkazz-ledger/internal/apperrors"
	"github.com/lukmanha083/kidkazz-ledger/internal/core/domain"
	portsrepo "github.com/lukmanha083/kidkazz-ledger/internal/core/ports/repositories"
	"github.com/lukmanha083/kidkazz-ledger/internal/models"
	"github.com/lukmanha083/kidkazz-ledger/internal/utils/accounting"
	"github.com/lukmanha083/kidkazz-ledger/internal/utils/mapping"
)

const balanceColumns = `account_id, fiscal_year, fiscal_month, opening_balance, debit_total, credit_total, closing_balance, last_updated_at`

// querier is satisfied by both *pgxpool.Pool and pgx.Tx so balance helpers
// can run inside or outside a caller-owned transaction.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PgxBalanceRepository struct {
	BaseRepository
}

func newPgxBalanceRepository(pool *pgxpool.Pool) portsrepo.BalanceRepositoryFacade {
	return &PgxBalanceRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.BalanceRepositoryFacade = (*PgxBalanceRepository)(nil)

func scanBalance(row rowScanner) (models.AccountBalance, error) {
	var m models.AccountBalance
	err := row.Scan(
		&m.AccountID,
		&m.FiscalYear,
		&m.FiscalMonth,
		&m.OpeningBalance,
		&m.DebitTotal,
		&m.CreditTotal,
		&m.ClosingBalance,
		&m.LastUpdatedAt,
	)
	return m, err
}

// GetBalance retrieves the balance row for one (account, period) pair.
func (r *PgxBalanceRepository) GetBalance(ctx context.Context, accountID string, year, month int) (*domain.AccountBalance, error) {
	query := `SELECT ` + balanceColumns + ` FROM account_balances WHERE account_id = $1 AND fiscal_year = $2 AND fiscal_month = $3;`

	m, err := scanBalance(r.Pool.QueryRow(ctx, query, accountID, year, month))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get balance for account %s in %d-%02d: %w", accountID, year, month, err)
	}

	d := mapping.ToDomainAccountBalance(m)
	return &d, nil
}

// ListBalancesForYear retrieves an account's balance rows for a fiscal year
// up to and including the given month.
func (r *PgxBalanceRepository) ListBalancesForYear(ctx context.Context, accountID string, year, uptoMonth int) ([]domain.AccountBalance, error) {
	query := `
		SELECT ` + balanceColumns + `
		FROM account_balances
		WHERE account_id = $1 AND fiscal_year = $2 AND fiscal_month <= $3
		ORDER BY fiscal_month;
	`
	rows, err := r.Pool.Query(ctx, query, accountID, year, uptoMonth)
	if err != nil {
		return nil, fmt.Errorf("failed to query balances for account %s in year %d: %w", accountID, year, err)
	}
	defer rows.Close()

	return collectBalances(rows)
}

// ListBalancesForPeriod retrieves every account's balance row for one period.
func (r *PgxBalanceRepository) ListBalancesForPeriod(ctx context.Context, year, month int) ([]domain.AccountBalance, error) {
	query := `
		SELECT ` + balanceColumns + `
		FROM account_balances
		WHERE fiscal_year = $1 AND fiscal_month = $2
		ORDER BY account_id;
	`
	rows, err := r.Pool.Query(ctx, query, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to query balances for %d-%02d: %w", year, month, err)
	}
	defer rows.Close()

	return collectBalances(rows)
}

// ApplyDeltas applies balance deltas inside the caller's transaction. Rows
// are locked in sorted (account, year, month) order; two concurrent postings
// that touch overlapping accounts always acquire locks in the same order, so
// they queue instead of deadlocking.
func (r *PgxBalanceRepository) ApplyDeltas(ctx context.Context, tx pgx.Tx, deltas []domain.BalanceDelta, at time.Time) error {
	ordered := make([]domain.BalanceDelta, len(deltas))
	copy(ordered, deltas)
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].AccountID != ordered[j].AccountID {
			return ordered[i].AccountID < ordered[j].AccountID
		}
		if ordered[i].FiscalYear != ordered[j].FiscalYear {
			return ordered[i].FiscalYear < ordered[j].FiscalYear
		}
		return ordered[i].FiscalMonth < ordered[j].FiscalMonth
	})

	lockQuery := `
		SELECT opening_balance, debit_total, credit_total
		FROM account_balances
		WHERE account_id = $1 AND fiscal_year = $2 AND fiscal_month = $3
		FOR UPDATE;
	`
	for _, delta := range ordered {
		var opening, debitTotal, creditTotal decimal.Decimal
		err := tx.QueryRow(ctx, lockQuery, delta.AccountID, delta.FiscalYear, delta.FiscalMonth).
			Scan(&opening, &debitTotal, &creditTotal)
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			// First activity in this period: seed the opening balance from
			// the account's most recent prior period.
			opening, err = priorClosingBalance(ctx, tx, delta.AccountID, delta.FiscalYear, delta.FiscalMonth)
			if err != nil {
				return err
			}
			debitTotal = delta.Debit
			creditTotal = delta.Credit
			closing := accounting.ClosingBalance(delta.NormalBalance, opening, debitTotal, creditTotal)

			insertQuery := `
				INSERT INTO account_balances (account_id, fiscal_year, fiscal_month, opening_balance, debit_total, credit_total, closing_balance, last_updated_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
			`
			if _, err := tx.Exec(ctx, insertQuery, delta.AccountID, delta.FiscalYear, delta.FiscalMonth, opening, debitTotal, creditTotal, closing, at); err != nil {
				return fmt.Errorf("failed to insert balance row for account %s in %d-%02d: %w", delta.AccountID, delta.FiscalYear, delta.FiscalMonth, err)
			}
		case err != nil:
			return fmt.Errorf("failed to lock balance row for account %s in %d-%02d: %w", delta.AccountID, delta.FiscalYear, delta.FiscalMonth, err)
		default:
			debitTotal = debitTotal.Add(delta.Debit)
			creditTotal = creditTotal.Add(delta.Credit)
			closing := accounting.ClosingBalance(delta.NormalBalance, opening, debitTotal, creditTotal)

			updateQuery := `
				UPDATE account_balances
				SET debit_total = $4, credit_total = $5, closing_balance = $6, last_updated_at = $7
				WHERE account_id = $1 AND fiscal_year = $2 AND fiscal_month = $3;
			`
			if _, err := tx.Exec(ctx, updateQuery, delta.AccountID, delta.FiscalYear, delta.FiscalMonth, debitTotal, creditTotal, closing, at); err != nil {
				return fmt.Errorf("failed to update balance row for account %s in %d-%02d: %w", delta.AccountID, delta.FiscalYear, delta.FiscalMonth, err)
			}
		}
	}
	return nil
}

// RecomputePeriod rebuilds one balance row from the posted line history. The
// journal lines are the system of record; whatever the incremental path left
// in the row is discarded and replaced.
func (r *PgxBalanceRepository) RecomputePeriod(ctx context.Context, accountID string, year, month int) (*domain.AccountBalance, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	normal, err := accountNormalBalance(ctx, tx, accountID)
	if err != nil {
		return nil, err
	}

	// Lock the row if it exists so concurrent postings wait for the repair.
	var discard decimal.Decimal
	err = tx.QueryRow(ctx, `SELECT opening_balance FROM account_balances WHERE account_id = $1 AND fiscal_year = $2 AND fiscal_month = $3 FOR UPDATE;`,
		accountID, year, month).Scan(&discard)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to lock balance row for account %s in %d-%02d: %w", accountID, year, month, err)
	}

	aggregateQuery := `
		SELECT
			COALESCE(SUM(CASE WHEN l.direction = 'DEBIT' THEN l.amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN l.direction = 'CREDIT' THEN l.amount ELSE 0 END), 0)
		FROM journal_lines l
		JOIN journal_entries e ON e.entry_id = l.journal_entry_id
		WHERE l.account_id = $1 AND e.fiscal_year = $2 AND e.fiscal_month = $3 AND e.status = 'POSTED';
	`
	var debitTotal, creditTotal decimal.Decimal
	if err := tx.QueryRow(ctx, aggregateQuery, accountID, year, month).Scan(&debitTotal, &creditTotal); err != nil {
		return nil, fmt.Errorf("failed to aggregate posted lines for account %s in %d-%02d: %w", accountID, year, month, err)
	}

	opening, err := priorClosingBalance(ctx, tx, accountID, year, month)
	if err != nil {
		return nil, err
	}
	closing := accounting.ClosingBalance(normal, opening, debitTotal, creditTotal)
	now := time.Now()

	upsertQuery := `
		INSERT INTO account_balances (account_id, fiscal_year, fiscal_month, opening_balance, debit_total, credit_total, closing_balance, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (account_id, fiscal_year, fiscal_month) DO UPDATE
		SET opening_balance = EXCLUDED.opening_balance,
			debit_total = EXCLUDED.debit_total,
			credit_total = EXCLUDED.credit_total,
			closing_balance = EXCLUDED.closing_balance,
			last_updated_at = EXCLUDED.last_updated_at;
	`
	if _, err := tx.Exec(ctx, upsertQuery, accountID, year, month, opening, debitTotal, creditTotal, closing, now); err != nil {
		return nil, fmt.Errorf("failed to upsert recomputed balance for account %s in %d-%02d: %w", accountID, year, month, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	return &domain.AccountBalance{
		AccountID:      accountID,
		FiscalYear:     year,
		FiscalMonth:    month,
		OpeningBalance: opening,
		DebitTotal:     debitTotal,
		CreditTotal:    creditTotal,
		ClosingBalance: closing,
		LastUpdatedAt:  now,
	}, nil
}

// CarryForwardOpeningBalance re-seeds the target period's opening balance
// from the source period's closing balance and recomputes the target closing
// from its existing totals.
func (r *PgxBalanceRepository) CarryForwardOpeningBalance(ctx context.Context, accountID string, fromYear, fromMonth, toYear, toMonth int) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	normal, err := accountNormalBalance(ctx, tx, accountID)
	if err != nil {
		return err
	}

	var sourceClosing decimal.Decimal
	err = tx.QueryRow(ctx, `SELECT closing_balance FROM account_balances WHERE account_id = $1 AND fiscal_year = $2 AND fiscal_month = $3;`,
		accountID, fromYear, fromMonth).Scan(&sourceClosing)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: no balance for account %s in %d-%02d", apperrors.ErrNotFound, accountID, fromYear, fromMonth)
		}
		return fmt.Errorf("failed to read source balance for account %s: %w", accountID, err)
	}

	var debitTotal, creditTotal decimal.Decimal
	now := time.Now()
	err = tx.QueryRow(ctx, `SELECT debit_total, credit_total FROM account_balances WHERE account_id = $1 AND fiscal_year = $2 AND fiscal_month = $3 FOR UPDATE;`,
		accountID, toYear, toMonth).Scan(&debitTotal, &creditTotal)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		insertQuery := `
			INSERT INTO account_balances (account_id, fiscal_year, fiscal_month, opening_balance, debit_total, credit_total, closing_balance, last_updated_at)
			VALUES ($1, $2, $3, $4, 0, 0, $4, $5);
		`
		if _, err := tx.Exec(ctx, insertQuery, accountID, toYear, toMonth, sourceClosing, now); err != nil {
			return fmt.Errorf("failed to seed balance row for account %s in %d-%02d: %w", accountID, toYear, toMonth, err)
		}
	case err != nil:
		return fmt.Errorf("failed to lock target balance row for account %s: %w", accountID, err)
	default:
		closing := accounting.ClosingBalance(normal, sourceClosing, debitTotal, creditTotal)
		updateQuery := `
			UPDATE account_balances
			SET opening_balance = $4, closing_balance = $5, last_updated_at = $6
			WHERE account_id = $1 AND fiscal_year = $2 AND fiscal_month = $3;
		`
		if _, err := tx.Exec(ctx, updateQuery, accountID, toYear, toMonth, sourceClosing, closing, now); err != nil {
			return fmt.Errorf("failed to carry forward balance for account %s: %w", accountID, err)
		}
	}

	return r.Commit(ctx, tx)
}

// priorClosingBalance returns the closing balance of the account's most
// recent period before (year, month), or zero when no prior activity exists.
func priorClosingBalance(ctx context.Context, q querier, accountID string, year, month int) (decimal.Decimal, error) {
	query := `
		SELECT closing_balance
		FROM account_balances
		WHERE account_id = $1 AND (fiscal_year, fiscal_month) < ($2, $3)
		ORDER BY fiscal_year DESC, fiscal_month DESC
		LIMIT 1;
	`
	var closing decimal.Decimal
	err := q.QueryRow(ctx, query, accountID, year, month).Scan(&closing)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, nil
		}
		return decimal.Zero, fmt.Errorf("failed to read prior closing balance for account %s: %w", accountID, err)
	}
	return closing, nil
}

func accountNormalBalance(ctx context.Context, q querier, accountID string) (domain.NormalBalance, error) {
	var normal domain.NormalBalance
	err := q.QueryRow(ctx, `SELECT normal_balance FROM accounts WHERE account_id = $1;`, accountID).Scan(&normal)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.ErrNotFound
		}
		return "", fmt.Errorf("failed to read normal balance for account %s: %w", accountID, err)
	}
	return normal, nil
}

func collectBalances(rows pgx.Rows) ([]domain.AccountBalance, error) {
	balances := make([]domain.AccountBalance, 0)
	for rows.Next() {
		m, err := scanBalance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan balance row: %w", err)
		}
		balances = append(balances, mapping.ToDomainAccountBalance(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating balance rows: %w", err)
	}
	return balances, nil
}
