package repositories

import (
	"context"
	"time"

	"github.com/awqaf-platform/waqf_ledger/internal/core/domain"
)

type BankStatementReader interface {
	// FindStatementByID retrieves a statement with its transactions.
	FindStatementByID(ctx context.Context, statementID string) (*domain.BankStatement, error)

	FindTransactionByID(ctx context.Context, transactionID string) (*domain.BankTransaction, error)
}

type BankStatementWriter interface {
	// SaveStatement persists an imported statement and its transactions.
	SaveStatement(ctx context.Context, statement domain.BankStatement) error

	// MatchTransaction links an unmatched transaction to a posted entry. A
	// transaction that is already matched, or an entry already used by another
	// transaction, yields a conflict error.
	MatchTransaction(ctx context.Context, transactionID, entryID, userID string, at time.Time) error

	// UnmatchTransaction clears a match on a statement that is not reconciled.
	UnmatchTransaction(ctx context.Context, transactionID, userID string, at time.Time) error

	// MarkReconciled flips a statement to reconciled once.
	MarkReconciled(ctx context.Context, statementID, userID string, at time.Time) error
}

type BankRepositoryFacade interface {
	BankStatementReader
	BankStatementWriter
}
