package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/awqaf-platform/waqf_ledger/internal/apperrors"
	"github.com/awqaf-platform/waqf_ledger/internal/core/domain"
	portsrepo "github.com/awqaf-platform/waqf_ledger/internal/core/ports/repositories"
	"github.com/awqaf-platform/waqf_ledger/internal/models"
	"github.com/awqaf-platform/waqf_ledger/internal/utils/accounting"
	"github.com/awqaf-platform/waqf_ledger/internal/utils/mapping"
	"github.com/awqaf-platform/waqf_ledger/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const entryColumns = `entry_id, fiscal_year_id, entry_number, entry_date, description, status,
	reference, reversal_of_id, reversed_by_id, cancel_reason, posted_at,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxJournalRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountReader
}

// newPgxJournalRepository creates a new repository for journal entries and their lines.
func newPgxJournalRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountReader) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

func scanEntry(row pgx.Row) (domain.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID,
		&m.FiscalYearID,
		&m.EntryNumber,
		&m.EntryDate,
		&m.Description,
		&m.Status,
		&m.Reference,
		&m.ReversalOfID,
		&m.ReversedByID,
		&m.CancelReason,
		&m.PostedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return domain.JournalEntry{}, err
	}
	return mapping.ToDomainJournalEntry(m), nil
}

func insertEntry(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) error {
	m := mapping.ToModelJournalEntry(entry)
	query := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := tx.Exec(ctx, query,
		m.EntryID,
		m.FiscalYearID,
		m.EntryNumber,
		m.EntryDate,
		m.Description,
		m.Status,
		m.Reference,
		m.ReversalOfID,
		m.ReversedByID,
		m.CancelReason,
		m.PostedAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	return mapDBError(err, "failed to insert entry "+m.EntryID)
}

// insertLines queues every line in one batch.
func insertLines(ctx context.Context, tx pgx.Tx, lines []domain.JournalLine) error {
	batch := &pgx.Batch{}
	query := `
		INSERT INTO journal_lines (line_id, entry_id, account_id, line_number, debit, credit, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	for _, l := range lines {
		m := mapping.ToModelJournalLine(l)
		batch.Queue(query, m.LineID, m.EntryID, m.AccountID, m.LineNumber, m.Debit, m.Credit, m.Description)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return mapDBError(err, "failed to insert journal lines")
	}
	return nil
}

// lockOpenYear takes the fiscal year row lock that serialises postings and
// close, and rejects a year that no longer accepts postings.
func lockOpenYear(ctx context.Context, tx pgx.Tx, fiscalYearID string, entryDate time.Time) error {
	var m models.FiscalYear
	err := tx.QueryRow(ctx, `
		SELECT fiscal_year_id, start_date, end_date, status
		FROM fiscal_years WHERE fiscal_year_id = $1 FOR UPDATE;
	`, fiscalYearID).Scan(&m.FiscalYearID, &m.StartDate, &m.EndDate, &m.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewAppError(apperrors.KindValidation, apperrors.CodeClosedPeriod, "fiscal year does not exist", nil).
				WithEntity(fiscalYearID)
		}
		return mapDBError(err, "failed to lock fiscal year "+fiscalYearID)
	}
	fy := mapping.ToDomainFiscalYear(m)
	if !fy.Status.AcceptsPostings() {
		return apperrors.ClosedPeriodError(fiscalYearID, string(fy.Status))
	}
	if !fy.Contains(entryDate) {
		return apperrors.NewAppError(apperrors.KindValidation, apperrors.CodeClosedPeriod,
			"entry date "+entryDate.Format(time.DateOnly)+" is outside the fiscal year", nil).WithEntity(fiscalYearID)
	}
	return nil
}

// allocateEntryNumber hands out the next number of the locked year and bumps
// its version.
func allocateEntryNumber(ctx context.Context, tx pgx.Tx, fiscalYearID, userID string, at time.Time) (int64, error) {
	var next int64
	err := tx.QueryRow(ctx, `
		UPDATE fiscal_years
		SET next_entry_number = next_entry_number + 1,
		    version = version + 1,
		    last_updated_at = $2,
		    last_updated_by = $3
		WHERE fiscal_year_id = $1
		RETURNING next_entry_number - 1;
	`, fiscalYearID, at, userID).Scan(&next)
	if err != nil {
		return 0, mapDBError(err, "failed to allocate entry number")
	}
	return next, nil
}

// checkPostableAccounts re-validates the accounts under a share lock so a
// concurrent archive cannot slip between validation and insert.
func checkPostableAccounts(ctx context.Context, tx pgx.Tx, accountIDs []string) error {
	rows, err := tx.Query(ctx, `
		SELECT account_id, is_header, archival_status
		FROM accounts WHERE account_id = ANY($1) FOR SHARE;
	`, accountIDs)
	if err != nil {
		return mapDBError(err, "failed to lock accounts")
	}
	defer rows.Close()
	seen := make(map[string]bool, len(accountIDs))
	for rows.Next() {
		var id, status string
		var header bool
		if err := rows.Scan(&id, &header, &status); err != nil {
			return fmt.Errorf("failed to scan account lock row: %w", err)
		}
		seen[id] = true
		if header {
			return apperrors.InvalidAccountError(id, "header accounts cannot receive postings")
		}
		if status != string(domain.ArchivalActive) {
			return apperrors.InvalidAccountError(id, "account is archived")
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating account lock rows: %w", err)
	}
	for _, id := range accountIDs {
		if !seen[id] {
			return apperrors.InvalidAccountError(id, "account does not exist")
		}
	}
	return nil
}

func (r *PgxJournalRepository) SaveDraft(ctx context.Context, entry domain.JournalEntry) error {
	entry.Status = domain.EntryDraft
	entry.EntryNumber = 0
	entry.PostedAt = nil
	return r.inTx(ctx, func(tx pgx.Tx) error {
		if err := insertEntry(ctx, tx, entry); err != nil {
			return err
		}
		return insertLines(ctx, tx, entry.Lines)
	})
}

// PostEntry writes a new entry or promotes the stored draft with the same id.
func (r *PgxJournalRepository) PostEntry(ctx context.Context, entry domain.JournalEntry) (*domain.JournalEntry, error) {
	err := r.inTx(ctx, func(tx pgx.Tx) error {
		if err := lockOpenYear(ctx, tx, entry.FiscalYearID, entry.EntryDate); err != nil {
			return err
		}
		if err := checkPostableAccounts(ctx, tx, entry.AccountIDs()); err != nil {
			return err
		}

		var stored string
		exists := true
		err := tx.QueryRow(ctx, `SELECT status FROM journal_entries WHERE entry_id = $1 FOR UPDATE;`, entry.EntryID).Scan(&stored)
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			exists = false
		case err != nil:
			return mapDBError(err, "failed to lock entry "+entry.EntryID)
		case stored != string(domain.EntryDraft):
			return apperrors.InvalidTransitionError(entry.EntryID, stored, string(domain.EntryPosted))
		}

		now := time.Now().UTC()
		number, err := allocateEntryNumber(ctx, tx, entry.FiscalYearID, entry.LastUpdatedBy, now)
		if err != nil {
			return err
		}
		entry.Status = domain.EntryPosted
		entry.EntryNumber = number
		entry.PostedAt = &now

		if !exists {
			if err := insertEntry(ctx, tx, entry); err != nil {
				return err
			}
			return insertLines(ctx, tx, entry.Lines)
		}
		_, err = tx.Exec(ctx, `
			UPDATE journal_entries
			SET status = 'POSTED',
			    fiscal_year_id = $2,
			    entry_number = $3,
			    posted_at = $4,
			    last_updated_at = $5,
			    last_updated_by = $6
			WHERE entry_id = $1 AND status = 'DRAFT';
		`, entry.EntryID, entry.FiscalYearID, number, now, entry.LastUpdatedAt, entry.LastUpdatedBy)
		return mapDBError(err, "failed to post draft "+entry.EntryID)
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// CancelEntry posts the reversal and flips the original with a status guard.
func (r *PgxJournalRepository) CancelEntry(ctx context.Context, originalID string, reversal domain.JournalEntry, reason string, userID string, at time.Time) (*domain.JournalEntry, error) {
	err := r.inTx(ctx, func(tx pgx.Tx) error {
		var status, fiscalYearID string
		err := tx.QueryRow(ctx, `
			SELECT status, fiscal_year_id FROM journal_entries WHERE entry_id = $1 FOR UPDATE;
		`, originalID).Scan(&status, &fiscalYearID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ReferenceIntegrityError(originalID, "entry does not exist")
			}
			return mapDBError(err, "failed to lock entry "+originalID)
		}
		if status != string(domain.EntryPosted) {
			return apperrors.ReferenceIntegrityError(originalID, "entry is "+status+", only posted entries can be cancelled")
		}
		if err := lockOpenYear(ctx, tx, fiscalYearID, reversal.EntryDate); err != nil {
			return err
		}

		number, err := allocateEntryNumber(ctx, tx, fiscalYearID, userID, at)
		if err != nil {
			return err
		}
		reversal.FiscalYearID = fiscalYearID
		reversal.Status = domain.EntryPosted
		reversal.EntryNumber = number
		reversal.PostedAt = &at
		if err := insertEntry(ctx, tx, reversal); err != nil {
			return err
		}
		if err := insertLines(ctx, tx, reversal.Lines); err != nil {
			return err
		}

		cmdTag, err := tx.Exec(ctx, `
			UPDATE journal_entries
			SET status = 'CANCELLED',
			    reversed_by_id = $2,
			    cancel_reason = $3,
			    last_updated_at = $4,
			    last_updated_by = $5
			WHERE entry_id = $1 AND status = 'POSTED';
		`, originalID, reversal.EntryID, reason, at, userID)
		if err != nil {
			return mapDBError(err, "failed to cancel entry "+originalID)
		}
		if cmdTag.RowsAffected() == 0 {
			return apperrors.ConflictError(originalID, "entry changed while cancelling")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &reversal, nil
}

// FindEntryByID retrieves an entry with its lines ordered by line number.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = $1;`
	entry, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		return nil, mapDBError(err, "entry "+entryID)
	}
	lines, err := r.findLinesByEntryIDs(ctx, []string{entryID})
	if err != nil {
		return nil, err
	}
	entry.Lines = lines[entryID]
	return &entry, nil
}

// findLinesByEntryIDs returns the lines keyed by entry id. Every requested
// id has an entry in the map.
func (r *PgxJournalRepository) findLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.JournalLine, error) {
	out := make(map[string][]domain.JournalLine, len(entryIDs))
	if len(entryIDs) == 0 {
		return out, nil
	}
	rows, err := r.Pool.Query(ctx, `
		SELECT line_id, entry_id, account_id, line_number, debit, credit, description
		FROM journal_lines
		WHERE entry_id = ANY($1)
		ORDER BY entry_id, line_number;
	`, entryIDs)
	if err != nil {
		return nil, mapDBError(err, "failed to query journal lines")
	}
	defer rows.Close()
	for rows.Next() {
		var m models.JournalLine
		if err := rows.Scan(&m.LineID, &m.EntryID, &m.AccountID, &m.LineNumber, &m.Debit, &m.Credit, &m.Description); err != nil {
			return nil, fmt.Errorf("failed to scan journal line: %w", err)
		}
		out[m.EntryID] = append(out[m.EntryID], mapping.ToDomainJournalLine(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal lines: %w", err)
	}
	for _, id := range entryIDs {
		if _, ok := out[id]; !ok {
			out[id] = []domain.JournalLine{}
		}
	}
	return out, nil
}

// ListEntries pages newest first on (entry_date, created_at, entry_id).
func (r *PgxJournalRepository) ListEntries(ctx context.Context, filter portsrepo.ListEntriesFilter) ([]domain.JournalEntry, *string, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE TRUE`
	args := []any{}
	next := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}
	if filter.FiscalYearID != "" {
		query += ` AND fiscal_year_id = ` + next(filter.FiscalYearID)
	}
	if filter.Status != nil {
		query += ` AND status = ` + next(string(*filter.Status))
	}
	if filter.NextToken != nil && *filter.NextToken != "" {
		cur, err := pagination.DecodeCursor(*filter.NextToken)
		if err != nil {
			return nil, nil, apperrors.InvalidInputError("invalid nextToken: %v", err)
		}
		query += ` AND (entry_date, created_at, entry_id) < (` + next(cur.Date) + `, ` + next(cur.CreatedAt) + `, ` + next(cur.ID) + `)`
	}
	query += ` ORDER BY entry_date DESC, created_at DESC, entry_id DESC LIMIT ` + next(limit+1) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, mapDBError(err, "failed to query entries")
	}
	entries := make([]domain.JournalEntry, 0, limit+1)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			rows.Close()
			return nil, nil, fmt.Errorf("failed to scan entry row: %w", err)
		}
		entries = append(entries, e)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating entry rows: %w", err)
	}

	var token *string
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[limit-1]
		token = pagination.NextToken(len(entries), limit, pagination.Cursor{
			Date:      last.EntryDate,
			CreatedAt: last.CreatedAt,
			ID:        last.EntryID,
		})
	}

	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.EntryID
	}
	lines, err := r.findLinesByEntryIDs(ctx, ids)
	if err != nil {
		return nil, nil, err
	}
	for i := range entries {
		entries[i].Lines = lines[entries[i].EntryID]
	}
	return entries, token, nil
}

func (r *PgxJournalRepository) CountEntriesByStatus(ctx context.Context, fiscalYearID string, status domain.EntryStatus) (int64, error) {
	var n int64
	err := r.Pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM journal_entries WHERE fiscal_year_id = $1 AND status = $2;
	`, fiscalYearID, string(status)).Scan(&n)
	if err != nil {
		return 0, mapDBError(err, "failed to count entries")
	}
	return n, nil
}

// FindUnbalancedEntries checks the stored lines, not the entry as validated
// at posting time.
func (r *PgxJournalRepository) FindUnbalancedEntries(ctx context.Context, fiscalYearID string) ([]string, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT e.entry_id
		FROM journal_entries e
		JOIN journal_lines l ON l.entry_id = e.entry_id
		WHERE e.fiscal_year_id = $1 AND `+postedPredicate("e")+`
		GROUP BY e.entry_id
		HAVING SUM(l.debit) <> SUM(l.credit)
		ORDER BY e.entry_id;
	`, fiscalYearID)
	if err != nil {
		return nil, mapDBError(err, "failed to check entry balance")
	}
	defer rows.Close()
	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan entry id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *PgxJournalRepository) SumPostedByAccount(ctx context.Context, fiscalYearID string, window *domain.DateWindow) (map[string]domain.PostedTotals, error) {
	query := `
		SELECT l.account_id, COALESCE(SUM(l.debit), 0), COALESCE(SUM(l.credit), 0)
		FROM journal_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE ` + postedPredicate("e")
	args := []any{}
	if fiscalYearID != "" {
		args = append(args, fiscalYearID)
		query += ` AND e.fiscal_year_id = $` + strconv.Itoa(len(args))
	}
	if window != nil {
		args = append(args, window.Start, window.End)
		query += ` AND e.entry_date BETWEEN $` + strconv.Itoa(len(args)-1) + ` AND $` + strconv.Itoa(len(args))
	}
	query += ` GROUP BY l.account_id;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, mapDBError(err, "failed to sum posted lines")
	}
	defer rows.Close()
	out := make(map[string]domain.PostedTotals)
	for rows.Next() {
		var id string
		var debit, credit decimal.Decimal
		if err := rows.Scan(&id, &debit, &credit); err != nil {
			return nil, fmt.Errorf("failed to scan account totals: %w", err)
		}
		out[id] = domain.PostedTotals{Debit: debit, Credit: credit}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account totals: %w", err)
	}
	return out, nil
}

// LedgerSnapshot folds the posted totals of the window through the chart of
// accounts, so it always agrees with account balances.
func (r *PgxJournalRepository) LedgerSnapshot(ctx context.Context, fiscalYearID string, window domain.DateWindow) (domain.LedgerSnapshot, error) {
	totals, err := r.SumPostedByAccount(ctx, fiscalYearID, &window)
	if err != nil {
		return domain.LedgerSnapshot{}, err
	}
	accounts, err := r.accountRepo.ListAccounts(ctx, true)
	if err != nil {
		return domain.LedgerSnapshot{}, fmt.Errorf("failed to load chart of accounts: %w", err)
	}
	revenues, expenses := accounting.RevenueAndExpense(accounts, totals)

	var count int64
	err = r.Pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM journal_entries e
		WHERE e.fiscal_year_id = $1 AND `+postedPredicate("e")+` AND e.entry_date BETWEEN $2 AND $3;
	`, fiscalYearID, window.Start, window.End).Scan(&count)
	if err != nil {
		return domain.LedgerSnapshot{}, mapDBError(err, "failed to count posted entries")
	}
	return domain.LedgerSnapshot{
		TotalRevenues: revenues,
		TotalExpenses: expenses,
		PostedEntries: count,
	}, nil
}
