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

const fiscalYearColumns = `fiscal_year_id, name, start_date, end_date, status, is_active,
	closed_at, closed_by, published_at, version,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxFiscalYearRepository struct {
	BaseRepository
}

func newPgxFiscalYearRepository(pool *pgxpool.Pool) portsrepo.FiscalYearRepositoryFacade {
	return &PgxFiscalYearRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.FiscalYearRepositoryFacade = (*PgxFiscalYearRepository)(nil)

func scanFiscalYear(row pgx.Row) (domain.FiscalYear, error) {
	var m models.FiscalYear
	err := row.Scan(
		&m.FiscalYearID,
		&m.Name,
		&m.StartDate,
		&m.EndDate,
		&m.Status,
		&m.IsActive,
		&m.ClosedAt,
		&m.ClosedBy,
		&m.PublishedAt,
		&m.Version,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return domain.FiscalYear{}, err
	}
	return mapping.ToDomainFiscalYear(m), nil
}

func (r *PgxFiscalYearRepository) findOne(ctx context.Context, what string, where string, args ...any) (*domain.FiscalYear, error) {
	query := `SELECT ` + fiscalYearColumns + ` FROM fiscal_years WHERE ` + where + `;`
	fy, err := scanFiscalYear(r.Pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, mapDBError(err, what)
	}
	return &fy, nil
}

func (r *PgxFiscalYearRepository) SaveFiscalYear(ctx context.Context, fy domain.FiscalYear) error {
	m := mapping.ToModelFiscalYear(fy)
	query := `
		INSERT INTO fiscal_years (` + fiscalYearColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.FiscalYearID,
		m.Name,
		m.StartDate,
		m.EndDate,
		m.Status,
		m.IsActive,
		m.ClosedAt,
		m.ClosedBy,
		m.PublishedAt,
		m.Version,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	return mapDBError(err, "failed to save fiscal year "+m.FiscalYearID)
}

func (r *PgxFiscalYearRepository) FindFiscalYearByID(ctx context.Context, fiscalYearID string) (*domain.FiscalYear, error) {
	return r.findOne(ctx, "fiscal year "+fiscalYearID, `fiscal_year_id = $1`, fiscalYearID)
}

func (r *PgxFiscalYearRepository) FindFiscalYearByDate(ctx context.Context, date time.Time) (*domain.FiscalYear, error) {
	return r.findOne(ctx, "fiscal year covering "+date.Format(time.DateOnly),
		`$1::date BETWEEN start_date AND end_date ORDER BY start_date LIMIT 1`, date)
}

func (r *PgxFiscalYearRepository) FindActiveFiscalYear(ctx context.Context) (*domain.FiscalYear, error) {
	return r.findOne(ctx, "active fiscal year", `is_active`)
}

func (r *PgxFiscalYearRepository) ListFiscalYears(ctx context.Context) ([]domain.FiscalYear, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+fiscalYearColumns+` FROM fiscal_years ORDER BY start_date;`)
	if err != nil {
		return nil, mapDBError(err, "failed to list fiscal years")
	}
	defer rows.Close()
	years := []domain.FiscalYear{}
	for rows.Next() {
		fy, err := scanFiscalYear(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fiscal year row: %w", err)
		}
		years = append(years, fy)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fiscal year rows: %w", err)
	}
	return years, nil
}

func (r *PgxFiscalYearRepository) FindClosureSummary(ctx context.Context, fiscalYearID string) (*domain.ClosureSummary, error) {
	var m models.FiscalYearClosure
	err := r.Pool.QueryRow(ctx, `
		SELECT fiscal_year_id, total_revenues, total_expenses, net_income, zakat_rate, zakat_due,
		       total_nazer_share, total_charity, corpus_carried_forward, total_distributed,
		       approved_distributions, posted_entries, computed_at
		FROM fiscal_year_closures WHERE fiscal_year_id = $1;
	`, fiscalYearID).Scan(
		&m.FiscalYearID, &m.TotalRevenues, &m.TotalExpenses, &m.NetIncome, &m.ZakatRate, &m.ZakatDue,
		&m.TotalNazerShare, &m.TotalCharity, &m.CorpusCarriedForward, &m.TotalDistributed,
		&m.ApprovedDistributions, &m.PostedEntries, &m.ComputedAt,
	)
	if err != nil {
		return nil, mapDBError(err, "closure summary of "+fiscalYearID)
	}
	summary := mapping.ToDomainClosure(m)
	return &summary, nil
}

// ActivateFiscalYear clears the previous active flag and sets the new one in
// one transaction; the partial unique index rejects two active years.
func (r *PgxFiscalYearRepository) ActivateFiscalYear(ctx context.Context, fiscalYearID string, userID string, at time.Time) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `
			UPDATE fiscal_years SET is_active = FALSE, last_updated_at = $1, last_updated_by = $2
			WHERE is_active AND fiscal_year_id <> $3;
		`, at, userID, fiscalYearID); err != nil {
			return mapDBError(err, "failed to clear active fiscal year")
		}
		cmdTag, err := tx.Exec(ctx, `
			UPDATE fiscal_years
			SET is_active = TRUE, version = version + 1, last_updated_at = $2, last_updated_by = $3
			WHERE fiscal_year_id = $1;
		`, fiscalYearID, at, userID)
		if err != nil {
			return mapDBError(err, "failed to activate fiscal year "+fiscalYearID)
		}
		if cmdTag.RowsAffected() == 0 {
			return fmt.Errorf("fiscal year %s: %w", fiscalYearID, apperrors.ErrNotFound)
		}
		return nil
	})
}

// CommitClose is the compare-and-set half of the close. The version check
// catches any posting made after the preview; the distribution re-check
// catches a distribution created after it.
func (r *PgxFiscalYearRepository) CommitClose(ctx context.Context, fiscalYearID string, expectedVersion int64, summary domain.ClosureSummary, userID string, at time.Time) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		cmdTag, err := tx.Exec(ctx, `
			UPDATE fiscal_years
			SET status = 'CLOSED',
			    is_active = FALSE,
			    closed_at = $3,
			    closed_by = $4,
			    version = version + 1,
			    last_updated_at = $3,
			    last_updated_by = $4
			WHERE fiscal_year_id = $1 AND status = 'OPEN' AND version = $2;
		`, fiscalYearID, expectedVersion, at, userID)
		if err != nil {
			return mapDBError(err, "failed to close fiscal year "+fiscalYearID)
		}
		if cmdTag.RowsAffected() == 0 {
			return apperrors.ConflictError(fiscalYearID, "fiscal year changed since the close preview")
		}

		var pending int
		if err := tx.QueryRow(ctx, `
			SELECT COUNT(*) FROM distributions WHERE fiscal_year_id = $1 AND status = 'PENDING';
		`, fiscalYearID).Scan(&pending); err != nil {
			return mapDBError(err, "failed to check pending distributions")
		}
		if pending > 0 {
			return apperrors.CloseBlockedError(fiscalYearID, []string{
				fmt.Sprintf("%s: %d distribution(s) awaiting approval", domain.BlockPendingDistribution, pending),
			})
		}

		m := mapping.ToModelClosure(summary)
		_, err = tx.Exec(ctx, `
			INSERT INTO fiscal_year_closures (
				fiscal_year_id, total_revenues, total_expenses, net_income, zakat_rate, zakat_due,
				total_nazer_share, total_charity, corpus_carried_forward, total_distributed,
				approved_distributions, posted_entries, computed_at, closed_by, closed_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
		`,
			fiscalYearID, m.TotalRevenues, m.TotalExpenses, m.NetIncome, m.ZakatRate, m.ZakatDue,
			m.TotalNazerShare, m.TotalCharity, m.CorpusCarriedForward, m.TotalDistributed,
			m.ApprovedDistributions, m.PostedEntries, m.ComputedAt, userID, at,
		)
		return mapDBError(err, "failed to store closure summary")
	})
}

func (r *PgxFiscalYearRepository) Publish(ctx context.Context, fiscalYearID string, userID string, at time.Time) error {
	cmdTag, err := r.Pool.Exec(ctx, `
		UPDATE fiscal_years
		SET status = 'PUBLISHED', published_at = $2, version = version + 1,
		    last_updated_at = $2, last_updated_by = $3
		WHERE fiscal_year_id = $1 AND status = 'CLOSED';
	`, fiscalYearID, at, userID)
	if err != nil {
		return mapDBError(err, "failed to publish fiscal year "+fiscalYearID)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ConflictError(fiscalYearID, "fiscal year is no longer closed")
	}
	return nil
}
