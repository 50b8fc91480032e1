package domain

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// PostedTotals holds the debit and credit sums of posted lines for one account.
type PostedTotals struct {
	Debit  decimal.Decimal
	Credit decimal.Decimal
}

// ComputeBalances derives the balance of every account from posted totals.
// Leaves use their nature-signed movement; headers sum their direct children.
// The result depends only on its inputs, so repeated calls agree.
func ComputeBalances(accounts []Account, totals map[string]PostedTotals) (map[string]decimal.Decimal, error) {
	byID := make(map[string]Account, len(accounts))
	children := make(map[string][]string, len(accounts))
	for _, acc := range accounts {
		byID[acc.AccountID] = acc
		if acc.ParentAccountID != "" {
			children[acc.ParentAccountID] = append(children[acc.ParentAccountID], acc.AccountID)
		}
	}
	for _, ids := range children {
		sort.Strings(ids)
	}

	balances := make(map[string]decimal.Decimal, len(accounts))
	visiting := make(map[string]bool)

	var walk func(id string) (decimal.Decimal, error)
	walk = func(id string) (decimal.Decimal, error) {
		if b, ok := balances[id]; ok {
			return b, nil
		}
		if visiting[id] {
			return decimal.Zero, fmt.Errorf("account hierarchy cycle at %s", id)
		}
		visiting[id] = true
		defer delete(visiting, id)

		acc, ok := byID[id]
		if !ok {
			return decimal.Zero, fmt.Errorf("account %s not in chart", id)
		}

		sum := decimal.Zero
		if acc.IsHeader {
			for _, childID := range children[id] {
				cb, err := walk(childID)
				if err != nil {
					return decimal.Zero, err
				}
				sum = sum.Add(cb)
			}
		} else {
			t := totals[id]
			signed, err := acc.Nature.SignedMovement(t.Debit, t.Credit)
			if err != nil {
				return decimal.Zero, fmt.Errorf("account %s: %w", id, err)
			}
			sum = signed
		}
		balances[id] = sum
		return sum, nil
	}

	for _, acc := range accounts {
		if _, err := walk(acc.AccountID); err != nil {
			return nil, err
		}
	}
	return balances, nil
}
