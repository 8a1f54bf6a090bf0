package accounting

import (
	"github.com/shopspring/decimal"

	"github.com/lukmanha083/kidkazz-ledger/internal/core/domain"
)

// ClosingBalance computes a period's closing balance from its opening balance
// and debit/credit totals. Accounts whose normal balance is Debit grow with
// debits; Credit-normal accounts grow with credits.
func ClosingBalance(normal domain.NormalBalance, opening, debitTotal, creditTotal decimal.Decimal) decimal.Decimal {
	if normal == domain.NormalDebit {
		return opening.Add(debitTotal).Sub(creditTotal)
	}
	return opening.Sub(debitTotal).Add(creditTotal)
}

// SumByDirection returns the debit and credit totals of a set of lines.
func SumByDirection(lines []domain.JournalLine) (debits, credits decimal.Decimal) {
	debits = decimal.Zero
	credits = decimal.Zero
	for _, line := range lines {
		if line.Direction == domain.Debit {
			debits = debits.Add(line.Amount)
		} else {
			credits = credits.Add(line.Amount)
		}
	}
	return debits, credits
}

// DeltasForLines aggregates journal lines into per-account balance deltas for
// the entry's fiscal period. When reverse is true the amounts are negated,
// which makes a void the exact algebraic inverse of the original posting.
func DeltasForLines(lines []domain.JournalLine, year, month int, normals map[string]domain.NormalBalance, reverse bool) []domain.BalanceDelta {
	byAccount := make(map[string]*domain.BalanceDelta, len(lines))
	order := make([]string, 0, len(lines))
	for _, line := range lines {
		delta, ok := byAccount[line.AccountID]
		if !ok {
			delta = &domain.BalanceDelta{
				AccountID:     line.AccountID,
				FiscalYear:    year,
				FiscalMonth:   month,
				NormalBalance: normals[line.AccountID],
				Debit:         decimal.Zero,
				Credit:        decimal.Zero,
			}
			byAccount[line.AccountID] = delta
			order = append(order, line.AccountID)
		}
		amount := line.Amount
		if reverse {
			amount = amount.Neg()
		}
		if line.Direction == domain.Debit {
			delta.Debit = delta.Debit.Add(amount)
		} else {
			delta.Credit = delta.Credit.Add(amount)
		}
	}

	deltas := make([]domain.BalanceDelta, len(order))
	for i, id := range order {
		deltas[i] = *byAccount[id]
	}
	return deltas
}
