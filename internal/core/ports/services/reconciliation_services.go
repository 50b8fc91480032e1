package services

import (
	"context"

	"github.com/awqaf-platform/waqf_ledger/internal/core/domain"
	"github.com/awqaf-platform/waqf_ledger/internal/dto"
)

type ReconciliationReaderSvc interface {
	GetStatement(ctx context.Context, statementID string) (*domain.BankStatement, error)
}

type ReconciliationWriterSvc interface {
	// ImportStatement stores an external bank statement and its lines.
	ImportStatement(ctx context.Context, req dto.ImportStatementRequest, userID string) (*domain.BankStatement, error)

	// MatchTransaction links a bank transaction to exactly one posted entry.
	MatchTransaction(ctx context.Context, transactionID string, entryID string, userID string) error

	// UnmatchTransaction removes a link on a statement that is not reconciled.
	UnmatchTransaction(ctx context.Context, transactionID string, userID string) error

	// ReconcileStatement marks the statement reconciled when every line is
	// matched and the balances agree. On mismatch the result carries the
	// discrepancy and the error is an integrity error.
	ReconcileStatement(ctx context.Context, statementID string, userID string) (*domain.ReconcileResult, error)
}

type ReconciliationSvcFacade interface {
	ReconciliationReaderSvc
	ReconciliationWriterSvc
}
