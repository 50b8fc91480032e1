package accounting

import (
	"fmt"

	"github.com/awqaf-platform/waqf_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SignedLineAmount applies the account's nature to a journal line.
// This is used in both services and repositories to ensure consistent accounting logic.
func SignedLineAmount(line domain.JournalLine, nature domain.AccountNature) (decimal.Decimal, error) {
	signed, err := nature.SignedMovement(line.Debit, line.Credit)
	if err != nil {
		return decimal.Zero, fmt.Errorf("line %d on account %s: %w", line.LineNumber, line.AccountID, err)
	}
	return signed, nil
}

// TotalsByAccount folds lines into per-account debit and credit sums.
func TotalsByAccount(lines []domain.JournalLine) map[string]domain.PostedTotals {
	out := make(map[string]domain.PostedTotals)
	for _, l := range lines {
		t, ok := out[l.AccountID]
		if !ok {
			t = domain.PostedTotals{Debit: decimal.Zero, Credit: decimal.Zero}
		}
		t.Debit = t.Debit.Add(l.Debit)
		t.Credit = t.Credit.Add(l.Credit)
		out[l.AccountID] = t
	}
	return out
}

// RevenueAndExpense returns total revenues (net credit on revenue leaves) and
// total expenses (net debit on expense leaves).
func RevenueAndExpense(accounts []domain.Account, totals map[string]domain.PostedTotals) (revenues, expenses decimal.Decimal) {
	revenues, expenses = decimal.Zero, decimal.Zero
	for _, acc := range accounts {
		if acc.IsHeader {
			continue
		}
		t, ok := totals[acc.AccountID]
		if !ok {
			continue
		}
		switch acc.AccountType {
		case domain.Revenue:
			revenues = revenues.Add(t.Credit.Sub(t.Debit))
		case domain.Expense:
			expenses = expenses.Add(t.Debit.Sub(t.Credit))
		case domain.Asset, domain.Liability, domain.Equity:
		}
	}
	return revenues, expenses
}

// TrialBalance lists every leaf with postings and asserts debits equal credits.
func TrialBalance(fiscalYearID string, accounts []domain.Account, totals map[string]domain.PostedTotals) (*domain.TrialBalance, error) {
	tb := &domain.TrialBalance{
		FiscalYearID: fiscalYearID,
		Lines:        []domain.TrialBalanceLine{},
		TotalDebit:   decimal.Zero,
		TotalCredit:  decimal.Zero,
	}
	for _, acc := range accounts {
		if acc.IsHeader {
			continue
		}
		t, ok := totals[acc.AccountID]
		if !ok {
			continue
		}
		bal, err := acc.Nature.SignedMovement(t.Debit, t.Credit)
		if err != nil {
			return nil, fmt.Errorf("account %s: %w", acc.AccountID, err)
		}
		tb.Lines = append(tb.Lines, domain.TrialBalanceLine{
			AccountID:   acc.AccountID,
			Code:        acc.Code,
			Name:        acc.Name,
			AccountType: acc.AccountType,
			Debit:       t.Debit,
			Credit:      t.Credit,
			Balance:     bal,
		})
		tb.TotalDebit = tb.TotalDebit.Add(t.Debit)
		tb.TotalCredit = tb.TotalCredit.Add(t.Credit)
	}
	if !tb.TotalDebit.Equal(tb.TotalCredit) {
		return tb, fmt.Errorf("trial balance does not balance: debit %s, credit %s", tb.TotalDebit, tb.TotalCredit)
	}
	return tb, nil
}
