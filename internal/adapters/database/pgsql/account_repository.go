package pgsql

import (
	"context"
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

const accountColumns = `account_id, code, name, account_type, nature, parent_account_id, is_header, description,
	archival_status, archive_reason, archived_at, archived_by,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for the chart of accounts.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

func scanAccount(row pgx.Row) (domain.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.Code,
		&m.Name,
		&m.AccountType,
		&m.Nature,
		&m.ParentAccountID,
		&m.IsHeader,
		&m.Description,
		&m.ArchivalStatus,
		&m.ArchiveReason,
		&m.ArchivedAt,
		&m.ArchivedBy,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return domain.Account{}, err
	}
	return mapping.ToDomainAccount(m), nil
}

func collectAccounts(rows pgx.Rows) ([]domain.Account, error) {
	defer rows.Close()
	accounts := []domain.Account{}
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, acc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accounts, nil
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.Code,
		m.Name,
		m.AccountType,
		m.Nature,
		m.ParentAccountID,
		m.IsHeader,
		m.Description,
		m.ArchivalStatus,
		m.ArchiveReason,
		m.ArchivedAt,
		m.ArchivedBy,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	return mapDBError(err, "failed to insert account "+m.Code)
}

func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`
	acc, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		return nil, mapDBError(err, "account "+accountID)
	}
	return &acc, nil
}

func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE code = $1;`
	acc, err := scanAccount(r.Pool.QueryRow(ctx, query, code))
	if err != nil {
		return nil, mapDBError(err, "account code "+code)
	}
	return &acc, nil
}

func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	out := make(map[string]domain.Account, len(accountIDs))
	if len(accountIDs) == 0 {
		return out, nil
	}
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = ANY($1);`
	rows, err := r.Pool.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, mapDBError(err, "failed to query accounts by IDs")
	}
	accounts, err := collectAccounts(rows)
	if err != nil {
		return nil, err
	}
	for _, acc := range accounts {
		out[acc.AccountID] = acc
	}
	return out, nil
}

func (r *PgxAccountRepository) ListAccounts(ctx context.Context, includeArchived bool) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts`
	if !includeArchived {
		query += ` WHERE ` + activePredicate("")
	}
	query += ` ORDER BY code;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, mapDBError(err, "failed to list accounts")
	}
	return collectAccounts(rows)
}

func (r *PgxAccountRepository) ListChildren(ctx context.Context, parentAccountID string) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE parent_account_id = $1 ORDER BY code;`
	rows, err := r.Pool.Query(ctx, query, parentAccountID)
	if err != nil {
		return nil, mapDBError(err, "failed to list children of "+parentAccountID)
	}
	return collectAccounts(rows)
}

// UpdateAccount updates descriptive fields of an active account.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	query := `
		UPDATE accounts
		SET name = $2,
		    description = $3,
		    last_updated_at = $4,
		    last_updated_by = $5
		WHERE account_id = $1 AND ` + activePredicate("") + `;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		account.AccountID,
		account.Name,
		mapping.NullableString(account.Description),
		account.LastUpdatedAt,
		account.LastUpdatedBy,
	)
	if err != nil {
		return mapDBError(err, "failed to update account "+account.AccountID)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.InvalidTransitionError(account.AccountID, string(domain.ArchivalArchived), "UPDATED")
	}
	return nil
}

// ArchiveAccount re-checks, under a row lock, that the account carries no
// posted balance and has no active children.
func (r *PgxAccountRepository) ArchiveAccount(ctx context.Context, accountID string, state domain.ArchivalState) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		var status string
		err := tx.QueryRow(ctx, `SELECT archival_status FROM accounts WHERE account_id = $1 FOR UPDATE;`, accountID).Scan(&status)
		if err != nil {
			return mapDBError(err, "account "+accountID)
		}
		if status != string(domain.ArchivalActive) {
			return apperrors.InvalidTransitionError(accountID, status, string(domain.ArchivalArchived))
		}

		var activeChildren int
		err = tx.QueryRow(ctx, `
			SELECT COUNT(*) FROM accounts
			WHERE parent_account_id = $1 AND ` + activePredicate("") + `;
		`, accountID).Scan(&activeChildren)
		if err != nil {
			return mapDBError(err, "failed to count children of "+accountID)
		}
		if activeChildren > 0 {
			return apperrors.ReferenceIntegrityError(accountID, "account has active children")
		}

		var hasBalance bool
		err = tx.QueryRow(ctx, `
			SELECT COALESCE(SUM(l.debit) <> SUM(l.credit), FALSE)
			FROM journal_lines l
			JOIN journal_entries e ON e.entry_id = l.entry_id
			WHERE l.account_id = $1 AND ` + postedPredicate("e") + `;
		`, accountID).Scan(&hasBalance)
		if err != nil {
			return mapDBError(err, "failed to sum balance of "+accountID)
		}
		if hasBalance {
			return apperrors.ReferenceIntegrityError(accountID, "account carries a non-zero balance")
		}

		archivedAt := time.Now().UTC()
		if state.ArchivedAt != nil {
			archivedAt = *state.ArchivedAt
		}
		_, err = tx.Exec(ctx, `
			UPDATE accounts
			SET archival_status = $2,
			    archive_reason = $3,
			    archived_at = $4,
			    archived_by = $5,
			    last_updated_at = $4,
			    last_updated_by = $5
			WHERE account_id = $1;
		`, accountID, string(state.Status), mapping.NullableString(state.Reason), archivedAt, state.ArchivedBy)
		return mapDBError(err, "failed to archive account "+accountID)
	})
}
