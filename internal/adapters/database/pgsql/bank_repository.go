package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/awqaf-platform/waqf_ledger/internal/apperrors"
	"github.com/awqaf-platform/waqf_ledger/internal/core/domain"
	portsrepo "github.com/awqaf-platform/waqf_ledger/internal/core/ports/repositories"
	"github.com/awqaf-platform/waqf_ledger/internal/models"
	"github.com/awqaf-platform/waqf_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	statementColumns = `statement_id, bank_account_id, statement_date, period_start, period_end,
	opening_balance, closing_balance, is_reconciled, reconciled_at, reconciled_by,
	created_at, created_by, last_updated_at, last_updated_by`
	bankTxnColumns = `transaction_id, statement_id, txn_date, description, reference, direction, amount,
	matched_entry_id, matched_at, matched_by`
)

type PgxBankRepository struct {
	BaseRepository
}

func newPgxBankRepository(pool *pgxpool.Pool) portsrepo.BankRepositoryFacade {
	return &PgxBankRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BankRepositoryFacade = (*PgxBankRepository)(nil)

func scanBankTransaction(row pgx.Row) (domain.BankTransaction, error) {
	var m models.BankTransaction
	err := row.Scan(
		&m.TransactionID,
		&m.StatementID,
		&m.TxnDate,
		&m.Description,
		&m.Reference,
		&m.Direction,
		&m.Amount,
		&m.MatchedEntryID,
		&m.MatchedAt,
		&m.MatchedBy,
	)
	if err != nil {
		return domain.BankTransaction{}, err
	}
	return mapping.ToDomainBankTransaction(m), nil
}

func (r *PgxBankRepository) SaveStatement(ctx context.Context, statement domain.BankStatement) error {
	m := mapping.ToModelBankStatement(statement)
	return r.inTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO bank_statements (`+statementColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
		`,
			m.StatementID, m.BankAccountID, m.StatementDate, m.PeriodStart, m.PeriodEnd,
			m.OpeningBalance, m.ClosingBalance, m.IsReconciled, m.ReconciledAt, m.ReconciledBy,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		)
		if err != nil {
			return mapDBError(err, "failed to insert statement "+m.StatementID)
		}

		batch := &pgx.Batch{}
		query := `INSERT INTO bank_transactions (` + bankTxnColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);`
		for _, t := range statement.Transactions {
			tm := mapping.ToModelBankTransaction(t)
			batch.Queue(query,
				tm.TransactionID, tm.StatementID, tm.TxnDate, tm.Description, tm.Reference, tm.Direction, tm.Amount,
				tm.MatchedEntryID, tm.MatchedAt, tm.MatchedBy,
			)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return mapDBError(err, "failed to insert bank transactions")
		}
		return nil
	})
}

func (r *PgxBankRepository) FindStatementByID(ctx context.Context, statementID string) (*domain.BankStatement, error) {
	var m models.BankStatement
	err := r.Pool.QueryRow(ctx, `SELECT `+statementColumns+` FROM bank_statements WHERE statement_id = $1;`, statementID).Scan(
		&m.StatementID, &m.BankAccountID, &m.StatementDate, &m.PeriodStart, &m.PeriodEnd,
		&m.OpeningBalance, &m.ClosingBalance, &m.IsReconciled, &m.ReconciledAt, &m.ReconciledBy,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, mapDBError(err, "statement "+statementID)
	}
	stmt := mapping.ToDomainBankStatement(m)

	rows, err := r.Pool.Query(ctx, `
		SELECT `+bankTxnColumns+` FROM bank_transactions
		WHERE statement_id = $1
		ORDER BY txn_date, transaction_id;
	`, statementID)
	if err != nil {
		return nil, mapDBError(err, "failed to query bank transactions")
	}
	defer rows.Close()
	stmt.Transactions = []domain.BankTransaction{}
	for rows.Next() {
		t, err := scanBankTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bank transaction: %w", err)
		}
		stmt.Transactions = append(stmt.Transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bank transactions: %w", err)
	}
	return &stmt, nil
}

func (r *PgxBankRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.BankTransaction, error) {
	query := `SELECT ` + bankTxnColumns + ` FROM bank_transactions WHERE transaction_id = $1;`
	t, err := scanBankTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		return nil, mapDBError(err, "bank transaction "+transactionID)
	}
	return &t, nil
}

// lockStatementOf takes a share lock on the statement holding the
// transaction, so a reconcile cannot commit between the check and the write,
// and refuses a reconciled statement.
func lockStatementOf(ctx context.Context, tx pgx.Tx, transactionID string) (string, error) {
	var statementID string
	var reconciled bool
	err := tx.QueryRow(ctx, `
		SELECT s.statement_id, s.is_reconciled
		FROM bank_statements s
		JOIN bank_transactions t ON t.statement_id = s.statement_id
		WHERE t.transaction_id = $1
		FOR SHARE OF s;
	`, transactionID).Scan(&statementID, &reconciled)
	if err != nil {
		return "", mapDBError(err, "bank transaction "+transactionID)
	}
	if reconciled {
		return "", apperrors.InvalidTransitionError(statementID, "RECONCILED", "MODIFIED")
	}
	return statementID, nil
}

// MatchTransaction sets the match only on an unmatched line whose entry is
// posted and touches the statement's bank account. The partial unique index
// on matched_entry_id stops two lines claiming the same entry.
func (r *PgxBankRepository) MatchTransaction(ctx context.Context, transactionID, entryID, userID string, at time.Time) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		if _, err := lockStatementOf(ctx, tx, transactionID); err != nil {
			return err
		}
		cmdTag, err := tx.Exec(ctx, `
			UPDATE bank_transactions t
			SET matched_entry_id = $2, matched_at = $3, matched_by = $4
			FROM bank_statements s
			WHERE t.transaction_id = $1
			  AND s.statement_id = t.statement_id
			  AND t.matched_entry_id IS NULL
			  AND EXISTS (
			      SELECT 1 FROM journal_lines l
			      JOIN journal_entries e ON e.entry_id = l.entry_id
			      WHERE l.entry_id = $2
			        AND l.account_id = s.bank_account_id
			        AND e.status = 'POSTED'
			  );
		`, transactionID, entryID, at, userID)
		if err != nil {
			mapped := mapDBError(err, "failed to match transaction "+transactionID)
			if errors.Is(mapped, apperrors.ErrDuplicate) {
				return apperrors.ConflictError(entryID, "entry is already matched to another bank transaction")
			}
			return mapped
		}
		if cmdTag.RowsAffected() == 0 {
			return apperrors.ConflictError(transactionID,
				"transaction is already matched, or the entry is no longer posted on the statement's bank account")
		}
		return nil
	})
}

func (r *PgxBankRepository) UnmatchTransaction(ctx context.Context, transactionID, userID string, at time.Time) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		statementID, err := lockStatementOf(ctx, tx, transactionID)
		if err != nil {
			return err
		}
		cmdTag, err := tx.Exec(ctx, `
			UPDATE bank_transactions
			SET matched_entry_id = NULL, matched_at = NULL, matched_by = NULL
			WHERE transaction_id = $1 AND matched_entry_id IS NOT NULL;
		`, transactionID)
		if err != nil {
			return mapDBError(err, "failed to unmatch transaction "+transactionID)
		}
		if cmdTag.RowsAffected() == 0 {
			return apperrors.InvalidTransitionError(transactionID, "UNMATCHED", "UNMATCHED")
		}
		_, err = tx.Exec(ctx, `
			UPDATE bank_statements SET last_updated_at = $2, last_updated_by = $3
			WHERE statement_id = $1;
		`, statementID, at, userID)
		return mapDBError(err, "failed to touch statement")
	})
}

// MarkReconciled locks the statement and re-counts unmatched lines in the
// same transaction, so a concurrent unmatch either lands first and is
// reported or waits and then finds the statement reconciled.
func (r *PgxBankRepository) MarkReconciled(ctx context.Context, statementID, userID string, at time.Time) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		var reconciled bool
		err := tx.QueryRow(ctx, `
			SELECT is_reconciled FROM bank_statements WHERE statement_id = $1 FOR UPDATE;
		`, statementID).Scan(&reconciled)
		if err != nil {
			return mapDBError(err, "statement "+statementID)
		}
		if reconciled {
			return apperrors.ConflictError(statementID, "statement was reconciled concurrently")
		}

		rows, err := tx.Query(ctx, `
			SELECT transaction_id FROM bank_transactions
			WHERE statement_id = $1 AND matched_entry_id IS NULL
			ORDER BY txn_date, transaction_id;
		`, statementID)
		if err != nil {
			return mapDBError(err, "failed to count unmatched transactions")
		}
		unmatched, err := pgx.CollectRows(rows, pgx.RowTo[string])
		if err != nil {
			return fmt.Errorf("failed to scan unmatched transactions: %w", err)
		}
		if len(unmatched) > 0 {
			return apperrors.UnmatchedTransactionsError(statementID, unmatched)
		}

		_, err = tx.Exec(ctx, `
			UPDATE bank_statements
			SET is_reconciled = TRUE, reconciled_at = $2, reconciled_by = $3,
			    last_updated_at = $2, last_updated_by = $3
			WHERE statement_id = $1;
		`, statementID, at, userID)
		return mapDBError(err, "failed to reconcile statement "+statementID)
	})
}
