package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// BankTxnDirection tells whether money left (debit) or entered (credit) the bank account.
type BankTxnDirection string

const (
	BankDebit  BankTxnDirection = "DEBIT"
	BankCredit BankTxnDirection = "CREDIT"
)

func (d BankTxnDirection) Valid() bool {
	switch d {
	case BankDebit, BankCredit:
		return true
	}
	return false
}

// BankStatement is an externally imported statement for one bank account.
type BankStatement struct {
	StatementID    string            `json:"statementID"`
	BankAccountID  string            `json:"bankAccountID"` // ledger asset account
	StatementDate  time.Time         `json:"statementDate"`
	PeriodStart    time.Time         `json:"periodStart"`
	PeriodEnd      time.Time         `json:"periodEnd"`
	OpeningBalance decimal.Decimal   `json:"openingBalance"`
	ClosingBalance decimal.Decimal   `json:"closingBalance"`
	IsReconciled   bool              `json:"isReconciled"`
	ReconciledAt   *time.Time        `json:"reconciledAt"`
	ReconciledBy   string            `json:"reconciledBy"`
	Transactions   []BankTransaction `json:"transactions"`
	AuditFields
}

// BankTransaction is one statement line; it matches at most one journal entry.
type BankTransaction struct {
	TransactionID  string           `json:"transactionID"`
	StatementID    string           `json:"statementID"`
	TxnDate        time.Time        `json:"txnDate"`
	Description    string           `json:"description"`
	Reference      string           `json:"reference"`
	Direction      BankTxnDirection `json:"direction"`
	Amount         decimal.Decimal  `json:"amount"`
	MatchedEntryID string           `json:"matchedEntryID"`
	MatchedAt      *time.Time       `json:"matchedAt"`
	MatchedBy      string           `json:"matchedBy"`
}

func (t BankTransaction) IsMatched() bool { return t.MatchedEntryID != "" }

// Validate checks an imported line.
func (t BankTransaction) Validate() error {
	if !t.Direction.Valid() {
		return fmt.Errorf("unknown direction %q", t.Direction)
	}
	if !t.Amount.IsPositive() {
		return fmt.Errorf("amount must be positive")
	}
	return nil
}

// ReconciliationCheck is the outcome of comparing a statement with its lines.
type ReconciliationCheck struct {
	ComputedClosing decimal.Decimal
	// Discrepancy is closing - computed.
	Discrepancy     decimal.Decimal
	UnmatchedTxnIDs []string
}

func (c ReconciliationCheck) OK() bool {
	return len(c.UnmatchedTxnIDs) == 0 && c.Discrepancy.IsZero()
}

// CheckReconciliation computes opening + credits - debits and lists unmatched lines.
func (s BankStatement) CheckReconciliation() (ReconciliationCheck, error) {
	computed := s.OpeningBalance
	var unmatched []string
	for _, t := range s.Transactions {
		switch t.Direction {
		case BankCredit:
			computed = computed.Add(t.Amount)
		case BankDebit:
			computed = computed.Sub(t.Amount)
		default:
			return ReconciliationCheck{}, fmt.Errorf("transaction %s has unknown direction %q", t.TransactionID, t.Direction)
		}
		if !t.IsMatched() {
			unmatched = append(unmatched, t.TransactionID)
		}
	}
	return ReconciliationCheck{
		ComputedClosing: computed,
		Discrepancy:     s.ClosingBalance.Sub(computed),
		UnmatchedTxnIDs: unmatched,
	}, nil
}

// ReconcileResult is returned by reconcileStatement.
type ReconcileResult struct {
	Reconciled  bool             `json:"reconciled"`
	Discrepancy *decimal.Decimal `json:"discrepancy,omitempty"`
}
