package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankStatement is a row of the bank_statements table.
type BankStatement struct {
	StatementID    string          `db:"statement_id"`
	BankAccountID  string          `db:"bank_account_id"`
	StatementDate  time.Time       `db:"statement_date"`
	PeriodStart    time.Time       `db:"period_start"`
	PeriodEnd      time.Time       `db:"period_end"`
	OpeningBalance decimal.Decimal `db:"opening_balance"`
	ClosingBalance decimal.Decimal `db:"closing_balance"`
	IsReconciled   bool            `db:"is_reconciled"`
	ReconciledAt   *time.Time      `db:"reconciled_at"`
	ReconciledBy   *string         `db:"reconciled_by"`
	AuditFields
}

// BankTransaction is a row of the bank_transactions table.
type BankTransaction struct {
	TransactionID  string          `db:"transaction_id"`
	StatementID    string          `db:"statement_id"`
	TxnDate        time.Time       `db:"txn_date"`
	Description    *string         `db:"description"`
	Reference      *string         `db:"reference"`
	Direction      string          `db:"direction"`
	Amount         decimal.Decimal `db:"amount"`
	MatchedEntryID *string         `db:"matched_entry_id"`
	MatchedAt      *time.Time      `db:"matched_at"`
	MatchedBy      *string         `db:"matched_by"`
}
