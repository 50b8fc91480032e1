package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/awqaf-platform/waqf_ledger/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// querier is satisfied by both the pool and a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Rollback rolls back a transaction
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}
	return nil
}

// inTx runs fn inside one transaction and commits only if fn succeeds.
func (r *BaseRepository) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck // no-op after commit

	if err := fn(tx); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// mapDBError translates driver errors into the application taxonomy.
func mapDBError(err error, what string) error {
	if err == nil {
		return nil
	}
	if _, ok := apperrors.AsAppError(err); ok {
		return err
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", what, apperrors.ErrNotFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%s (%s): %w", what, pgErr.ConstraintName, apperrors.ErrDuplicate)
		case pgForeignKeyViolation:
			return apperrors.NewAppError(apperrors.KindState, apperrors.CodeReferenceIntegrity,
				what+": referenced row is missing or still in use", err)
		case pgCheckViolation:
			return apperrors.NewAppError(apperrors.KindIntegrity, apperrors.CodeInvalidInput,
				what+": constraint "+pgErr.ConstraintName+" violated", err)
		}
	}
	return fmt.Errorf("%s: %w", what, err)
}

// activePredicate is the single filter for rows that are not archived.
func activePredicate(alias string) string {
	if alias != "" {
		alias += "."
	}
	return alias + "archival_status = 'ACTIVE'"
}

// postedPredicate selects entries that went through posting. Cancelled
// entries stay in the ledger because their reversal offsets them.
func postedPredicate(alias string) string {
	if alias != "" {
		alias += "."
	}
	return alias + "posted_at IS NOT NULL"
}
