package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

func (t AccountType) Valid() bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// DefaultNature returns the normal balance side of the account type.
func (t AccountType) DefaultNature() (AccountNature, error) {
	switch t {
	case Asset, Expense:
		return DebitNature, nil
	case Liability, Equity, Revenue:
		return CreditNature, nil
	}
	return "", fmt.Errorf("unknown account type %q", t)
}

// ParseAccountType converts free-form input into a closed AccountType.
func ParseAccountType(s string) (AccountType, error) {
	t := AccountType(strings.ToUpper(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("unknown account type %q", s)
	}
	return t, nil
}

// AccountNature is the side on which an account's balance normally grows.
type AccountNature string

const (
	DebitNature  AccountNature = "DEBIT"
	CreditNature AccountNature = "CREDIT"
)

func (n AccountNature) Valid() bool {
	switch n {
	case DebitNature, CreditNature:
		return true
	}
	return false
}

// SignedMovement returns debit-credit for debit-nature accounts and credit-debit
// for credit-nature accounts.
func (n AccountNature) SignedMovement(debit, credit decimal.Decimal) (decimal.Decimal, error) {
	switch n {
	case DebitNature:
		return debit.Sub(credit), nil
	case CreditNature:
		return credit.Sub(debit), nil
	}
	return decimal.Zero, fmt.Errorf("unknown account nature %q", n)
}

// Account is a node in the hierarchical chart of accounts. Header accounts
// aggregate their children and never receive postings.
type Account struct {
	AccountID       string        `json:"accountID"`
	Code            string        `json:"code"`
	Name            string        `json:"name"`
	AccountType     AccountType   `json:"accountType"`
	Nature          AccountNature `json:"nature"`
	ParentAccountID string        `json:"parentAccountID"` // empty for root accounts
	IsHeader        bool          `json:"isHeader"`
	Description     string        `json:"description"`
	Archival        ArchivalState `json:"archival"`
	AuditFields
}

// IsPostable reports whether the account may receive journal lines.
func (a Account) IsPostable() bool {
	return !a.IsHeader && a.Archival.IsActive()
}

// ValidateAccountCode checks a dotted code such as "1", "1.2" or "1.2.10".
func ValidateAccountCode(code string) error {
	if code == "" {
		return fmt.Errorf("account code is required")
	}
	for _, seg := range strings.Split(code, ".") {
		if seg == "" {
			return fmt.Errorf("account code %q has an empty segment", code)
		}
		for _, r := range seg {
			if r < '0' || r > '9' {
				return fmt.Errorf("account code %q must contain digits and dots only", code)
			}
		}
	}
	return nil
}

// ValidateChildCode checks that child extends parent by exactly one segment.
func ValidateChildCode(parentCode, childCode string) error {
	if err := ValidateAccountCode(childCode); err != nil {
		return err
	}
	if parentCode == "" {
		if strings.Contains(childCode, ".") {
			return fmt.Errorf("root account code %q must have a single segment", childCode)
		}
		return nil
	}
	prefix := parentCode + "."
	if !strings.HasPrefix(childCode, prefix) || strings.Contains(childCode[len(prefix):], ".") {
		return fmt.Errorf("account code %q must extend parent code %q by one segment", childCode, parentCode)
	}
	return nil
}

// AccountBalance is the derived balance of an account.
type AccountBalance struct {
	AccountID string          `json:"accountID"`
	Code      string          `json:"code"`
	Balance   decimal.Decimal `json:"balance"`
	IsHeader  bool            `json:"isHeader"`
}

// TrialBalanceLine is one leaf in a trial balance.
type TrialBalanceLine struct {
	AccountID   string          `json:"accountID"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	AccountType AccountType     `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Balance     decimal.Decimal `json:"balance"`
}

// TrialBalance lists posted totals per leaf account.
type TrialBalance struct {
	FiscalYearID string             `json:"fiscalYearID"`
	Lines        []TrialBalanceLine `json:"lines"`
	TotalDebit   decimal.Decimal    `json:"totalDebit"`
	TotalCredit  decimal.Decimal    `json:"totalCredit"`
}
