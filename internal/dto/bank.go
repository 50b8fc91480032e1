package dto

import (
	"time"

	"github.com/awqaf-platform/waqf_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ImportBankTransactionRequest is one imported statement line.
type ImportBankTransactionRequest struct {
	TxnDate     time.Time               `json:"txnDate" binding:"required"`
	Description string                  `json:"description"`
	Reference   string                  `json:"reference"`
	Direction   domain.BankTxnDirection `json:"direction" binding:"required,oneof=DEBIT CREDIT"`
	Amount      decimal.Decimal         `json:"amount"`
}

// ImportStatementRequest imports a bank statement with its lines.
type ImportStatementRequest struct {
	BankAccountID  string                         `json:"bankAccountID" binding:"required"`
	StatementDate  time.Time                      `json:"statementDate" binding:"required"`
	PeriodStart    time.Time                      `json:"periodStart" binding:"required"`
	PeriodEnd      time.Time                      `json:"periodEnd" binding:"required"`
	OpeningBalance decimal.Decimal                `json:"openingBalance"`
	ClosingBalance decimal.Decimal                `json:"closingBalance"`
	Transactions   []ImportBankTransactionRequest `json:"transactions" binding:"dive"`
}

// MatchTransactionRequest links a bank transaction to a journal entry.
type MatchTransactionRequest struct {
	EntryID string `json:"entryID" binding:"required"`
}

// MatchedResponse is returned by the match endpoint.
type MatchedResponse struct {
	Matched bool `json:"matched"`
}
