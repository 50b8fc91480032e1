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
	"github.com/awqaf-platform/waqf_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	distributionColumns = `distribution_id, fiscal_year_id, period_start, period_end, revision,
	total_revenues, total_expenses, net_revenues, nazer_share, waqif_charity, waqf_corpus,
	distributable_amount, beneficiaries_count, nazer_percent, charity_percent, corpus_percent,
	snapshot_posted_entries, status, decided_at, vouchers_issued, version,
	created_at, created_by, last_updated_at, last_updated_by`
	detailColumns = `detail_id, distribution_id, revision, beneficiary_id, beneficiary_type, share_percentage,
	allocated_amount, residual_applied, payment_status, payment_date, cancel_reason, voucher_number`
	approvalColumns = `approval_id, distribution_id, revision, level, role, status,
	decided_by, decided_at, note, created_at`
)

type PgxDistributionRepository struct {
	BaseRepository
}

func newPgxDistributionRepository(pool *pgxpool.Pool) portsrepo.DistributionRepositoryFacade {
	return &PgxDistributionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.DistributionRepositoryFacade = (*PgxDistributionRepository)(nil)

func scanDistribution(row pgx.Row) (domain.Distribution, error) {
	var m models.Distribution
	err := row.Scan(
		&m.DistributionID,
		&m.FiscalYearID,
		&m.PeriodStart,
		&m.PeriodEnd,
		&m.Revision,
		&m.TotalRevenues,
		&m.TotalExpenses,
		&m.NetRevenues,
		&m.NazerShare,
		&m.WaqifCharity,
		&m.WaqfCorpus,
		&m.DistributableAmount,
		&m.BeneficiariesCount,
		&m.NazerPercent,
		&m.CharityPercent,
		&m.CorpusPercent,
		&m.SnapshotPostedEntries,
		&m.Status,
		&m.DecidedAt,
		&m.VouchersIssued,
		&m.Version,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return domain.Distribution{}, err
	}
	return mapping.ToDomainDistribution(m), nil
}

func scanDetail(row pgx.Row) (domain.DistributionDetail, error) {
	var m models.DistributionDetail
	err := row.Scan(
		&m.DetailID,
		&m.DistributionID,
		&m.Revision,
		&m.BeneficiaryID,
		&m.BeneficiaryType,
		&m.SharePercentage,
		&m.AllocatedAmount,
		&m.ResidualApplied,
		&m.PaymentStatus,
		&m.PaymentDate,
		&m.CancelReason,
		&m.VoucherNumber,
	)
	if err != nil {
		return domain.DistributionDetail{}, err
	}
	return mapping.ToDomainDistributionDetail(m), nil
}

func scanApproval(row pgx.Row) (domain.Approval, error) {
	var m models.Approval
	err := row.Scan(
		&m.ApprovalID,
		&m.DistributionID,
		&m.Revision,
		&m.Level,
		&m.Role,
		&m.Status,
		&m.DecidedBy,
		&m.DecidedAt,
		&m.Note,
		&m.CreatedAt,
	)
	if err != nil {
		return domain.Approval{}, err
	}
	return mapping.ToDomainApproval(m), nil
}

// insertChildren queues the revision's details and approvals in one batch.
func insertChildren(ctx context.Context, tx pgx.Tx, d domain.Distribution) error {
	batch := &pgx.Batch{}
	detailQuery := `INSERT INTO distribution_details (` + detailColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);`
	for _, det := range d.Details {
		if det.Revision != d.Revision {
			continue
		}
		m := mapping.ToModelDistributionDetail(det)
		batch.Queue(detailQuery,
			m.DetailID, m.DistributionID, m.Revision, m.BeneficiaryID, m.BeneficiaryType, m.SharePercentage,
			m.AllocatedAmount, m.ResidualApplied, m.PaymentStatus, m.PaymentDate, m.CancelReason, m.VoucherNumber,
		)
	}
	approvalQuery := `INSERT INTO distribution_approvals (` + approvalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);`
	for _, a := range d.Approvals {
		if a.Revision != d.Revision {
			continue
		}
		m := mapping.ToModelApproval(a)
		batch.Queue(approvalQuery,
			m.ApprovalID, m.DistributionID, m.Revision, m.Level, m.Role, m.Status,
			m.DecidedBy, m.DecidedAt, m.Note, m.CreatedAt,
		)
	}
	if batch.Len() == 0 {
		return nil
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return mapDBError(err, "failed to insert distribution details")
	}
	return nil
}

// shareOpenYear holds a share lock on the year row for the rest of the
// transaction. CommitClose needs the row exclusively, so a close either waits
// for this write and then counts it as pending, or commits first and is seen
// here.
func shareOpenYear(ctx context.Context, tx pgx.Tx, fiscalYearID string) error {
	var status string
	err := tx.QueryRow(ctx, `
		SELECT status FROM fiscal_years WHERE fiscal_year_id = $1 FOR SHARE;
	`, fiscalYearID).Scan(&status)
	if err != nil {
		return mapDBError(err, "fiscal year "+fiscalYearID)
	}
	if domain.FiscalYearStatus(status) != domain.FiscalYearOpen {
		return apperrors.PeriodLockedError(fiscalYearID, status)
	}
	return nil
}

func (r *PgxDistributionRepository) CreateDistribution(ctx context.Context, d domain.Distribution) error {
	m := mapping.ToModelDistribution(d)
	return r.inTx(ctx, func(tx pgx.Tx) error {
		if err := shareOpenYear(ctx, tx, m.FiscalYearID); err != nil {
			return err
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO distributions (`+distributionColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
			        $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25);
		`,
			m.DistributionID, m.FiscalYearID, m.PeriodStart, m.PeriodEnd, m.Revision,
			m.TotalRevenues, m.TotalExpenses, m.NetRevenues, m.NazerShare, m.WaqifCharity, m.WaqfCorpus,
			m.DistributableAmount, m.BeneficiariesCount, m.NazerPercent, m.CharityPercent, m.CorpusPercent,
			m.SnapshotPostedEntries, m.Status, m.DecidedAt, m.VouchersIssued, m.Version,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		)
		if err != nil {
			mapped := mapDBError(err, "failed to insert distribution")
			if errors.Is(mapped, apperrors.ErrDuplicate) {
				return apperrors.ConflictError(m.FiscalYearID, "a distribution for this period was created concurrently")
			}
			return mapped
		}
		return insertChildren(ctx, tx, d)
	})
}

func (r *PgxDistributionRepository) SaveRevision(ctx context.Context, d domain.Distribution, expectedVersion int64) error {
	m := mapping.ToModelDistribution(d)
	return r.inTx(ctx, func(tx pgx.Tx) error {
		if err := shareOpenYear(ctx, tx, m.FiscalYearID); err != nil {
			return err
		}
		cmdTag, err := tx.Exec(ctx, `
			UPDATE distributions
			SET revision = $3,
			    total_revenues = $4,
			    total_expenses = $5,
			    net_revenues = $6,
			    nazer_share = $7,
			    waqif_charity = $8,
			    waqf_corpus = $9,
			    distributable_amount = $10,
			    beneficiaries_count = $11,
			    nazer_percent = $12,
			    charity_percent = $13,
			    corpus_percent = $14,
			    snapshot_posted_entries = $15,
			    status = 'PENDING',
			    decided_at = NULL,
			    vouchers_issued = FALSE,
			    version = version + 1,
			    last_updated_at = $16,
			    last_updated_by = $17
			WHERE distribution_id = $1 AND version = $2;
		`,
			m.DistributionID, expectedVersion, m.Revision,
			m.TotalRevenues, m.TotalExpenses, m.NetRevenues, m.NazerShare, m.WaqifCharity, m.WaqfCorpus,
			m.DistributableAmount, m.BeneficiariesCount, m.NazerPercent, m.CharityPercent, m.CorpusPercent,
			m.SnapshotPostedEntries, m.LastUpdatedAt, m.LastUpdatedBy,
		)
		if err != nil {
			return mapDBError(err, "failed to revise distribution "+m.DistributionID)
		}
		if cmdTag.RowsAffected() == 0 {
			return apperrors.ConflictError(m.DistributionID, "distribution changed since it was read")
		}

		_, err = tx.Exec(ctx, `
			UPDATE distribution_details
			SET payment_status = 'CANCELLED', cancel_reason = $3
			WHERE distribution_id = $1 AND revision < $2 AND payment_status = 'PENDING';
		`, m.DistributionID, m.Revision, "superseded by revision "+strconv.Itoa(m.Revision))
		if err != nil {
			return mapDBError(err, "failed to supersede earlier details")
		}
		return insertChildren(ctx, tx, d)
	})
}

// RecordDecision is guarded on the year still being open, on the
// distribution version and on the approval still being pending.
func (r *PgxDistributionRepository) RecordDecision(ctx context.Context, decided domain.Approval, status domain.DistributionStatus, expectedVersion int64) error {
	a := mapping.ToModelApproval(decided)
	return r.inTx(ctx, func(tx pgx.Tx) error {
		var fiscalYearID string
		if err := tx.QueryRow(ctx, `
			SELECT fiscal_year_id FROM distributions WHERE distribution_id = $1;
		`, a.DistributionID).Scan(&fiscalYearID); err != nil {
			return mapDBError(err, "distribution "+a.DistributionID)
		}
		if err := shareOpenYear(ctx, tx, fiscalYearID); err != nil {
			return err
		}
		var decidedAt *time.Time
		if status.IsTerminal() {
			decidedAt = a.DecidedAt
		}
		cmdTag, err := tx.Exec(ctx, `
			UPDATE distributions
			SET status = $3, decided_at = $4, version = version + 1,
			    last_updated_at = COALESCE($4, now()), last_updated_by = COALESCE($5, last_updated_by)
			WHERE distribution_id = $1 AND version = $2 AND status = 'PENDING';
		`, a.DistributionID, expectedVersion, string(status), decidedAt, a.DecidedBy)
		if err != nil {
			return mapDBError(err, "failed to update distribution status")
		}
		if cmdTag.RowsAffected() == 0 {
			return apperrors.ConflictError(a.DistributionID, "distribution changed since it was read")
		}

		cmdTag, err = tx.Exec(ctx, `
			UPDATE distribution_approvals
			SET status = $2, decided_by = $3, decided_at = $4, note = $5
			WHERE approval_id = $1 AND status = 'PENDING';
		`, a.ApprovalID, a.Status, a.DecidedBy, a.DecidedAt, a.Note)
		if err != nil {
			return mapDBError(err, "failed to record approval "+a.ApprovalID)
		}
		if cmdTag.RowsAffected() == 0 {
			return apperrors.ConflictError(a.ApprovalID, "approval was decided concurrently")
		}
		return nil
	})
}

func (r *PgxDistributionRepository) UpdateDetailPayment(ctx context.Context, detailID string, from, to domain.PaymentStatus, paymentDate *time.Time, reason string) error {
	cmdTag, err := r.Pool.Exec(ctx, `
		UPDATE distribution_details
		SET payment_status = $3, payment_date = $4, cancel_reason = $5
		WHERE detail_id = $1 AND payment_status = $2;
	`, detailID, string(from), string(to), paymentDate, mapping.NullableString(reason))
	if err != nil {
		return mapDBError(err, "failed to update payment of "+detailID)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ConflictError(detailID, "detail is no longer "+string(from))
	}
	return nil
}

func (r *PgxDistributionRepository) IssueVouchers(ctx context.Context, distributionID string, vouchers map[string]string, userID string, at time.Time) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		cmdTag, err := tx.Exec(ctx, `
			UPDATE distributions
			SET vouchers_issued = TRUE, version = version + 1, last_updated_at = $2, last_updated_by = $3
			WHERE distribution_id = $1 AND status = 'APPROVED' AND NOT vouchers_issued;
		`, distributionID, at, userID)
		if err != nil {
			return mapDBError(err, "failed to flag vouchers on "+distributionID)
		}
		if cmdTag.RowsAffected() == 0 {
			return apperrors.ConflictError(distributionID, "vouchers were issued concurrently")
		}
		batch := &pgx.Batch{}
		for detailID, voucher := range vouchers {
			batch.Queue(`
				UPDATE distribution_details SET voucher_number = $3
				WHERE detail_id = $1 AND distribution_id = $2 AND voucher_number IS NULL;
			`, detailID, distributionID, voucher)
		}
		if batch.Len() == 0 {
			return nil
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return mapDBError(err, "failed to assign vouchers")
		}
		return nil
	})
}

func (r *PgxDistributionRepository) FindDistributionByID(ctx context.Context, distributionID string) (*domain.Distribution, error) {
	query := `SELECT ` + distributionColumns + ` FROM distributions WHERE distribution_id = $1;`
	d, err := scanDistribution(r.Pool.QueryRow(ctx, query, distributionID))
	if err != nil {
		return nil, mapDBError(err, "distribution "+distributionID)
	}
	if err := r.loadChildren(ctx, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *PgxDistributionRepository) FindDistributionByPeriod(ctx context.Context, period domain.DistributionPeriod) (*domain.Distribution, error) {
	query := `SELECT ` + distributionColumns + ` FROM distributions
		WHERE fiscal_year_id = $1 AND period_start = $2 AND period_end = $3;`
	d, err := scanDistribution(r.Pool.QueryRow(ctx, query, period.FiscalYearID, period.PeriodStart, period.PeriodEnd))
	if err != nil {
		return nil, mapDBError(err, "distribution for period")
	}
	if err := r.loadChildren(ctx, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// loadChildren fills every revision's details and approvals.
func (r *PgxDistributionRepository) loadChildren(ctx context.Context, d *domain.Distribution) error {
	rows, err := r.Pool.Query(ctx, `
		SELECT `+detailColumns+` FROM distribution_details
		WHERE distribution_id = $1 ORDER BY revision, beneficiary_id;
	`, d.DistributionID)
	if err != nil {
		return mapDBError(err, "failed to query distribution details")
	}
	d.Details = []domain.DistributionDetail{}
	for rows.Next() {
		det, err := scanDetail(rows)
		if err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan distribution detail: %w", err)
		}
		d.Details = append(d.Details, det)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating distribution details: %w", err)
	}

	rows, err = r.Pool.Query(ctx, `
		SELECT `+approvalColumns+` FROM distribution_approvals
		WHERE distribution_id = $1 ORDER BY revision, level;
	`, d.DistributionID)
	if err != nil {
		return mapDBError(err, "failed to query approvals")
	}
	defer rows.Close()
	d.Approvals = []domain.Approval{}
	for rows.Next() {
		a, err := scanApproval(rows)
		if err != nil {
			return fmt.Errorf("failed to scan approval: %w", err)
		}
		d.Approvals = append(d.Approvals, a)
	}
	return rows.Err()
}

func (r *PgxDistributionRepository) ListDistributions(ctx context.Context, filter portsrepo.DistributionFilter) ([]domain.Distribution, error) {
	query := `SELECT ` + distributionColumns + ` FROM distributions WHERE TRUE`
	args := []any{}
	if filter.FiscalYearID != "" {
		args = append(args, filter.FiscalYearID)
		query += ` AND fiscal_year_id = $` + strconv.Itoa(len(args))
	}
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		query += ` AND status = $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY period_start, distribution_id;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, mapDBError(err, "failed to list distributions")
	}
	defer rows.Close()
	list := []domain.Distribution{}
	for rows.Next() {
		d, err := scanDistribution(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan distribution row: %w", err)
		}
		list = append(list, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating distribution rows: %w", err)
	}
	return list, nil
}

func (r *PgxDistributionRepository) FindDetailByID(ctx context.Context, detailID string) (*domain.DistributionDetail, error) {
	query := `SELECT ` + detailColumns + ` FROM distribution_details WHERE detail_id = $1;`
	det, err := scanDetail(r.Pool.QueryRow(ctx, query, detailID))
	if err != nil {
		return nil, mapDBError(err, "distribution detail "+detailID)
	}
	return &det, nil
}

// ListPublishedHistory exposes only the approved revision of distributions
// in published years.
func (r *PgxDistributionRepository) ListPublishedHistory(ctx context.Context, beneficiaryID string) ([]domain.HistoricalAllocation, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT f.fiscal_year_id, f.name, f.published_at, x.distribution_id, x.period_start, x.period_end,
		       d.allocated_amount, d.payment_status, d.payment_date
		FROM distribution_details d
		JOIN distributions x ON x.distribution_id = d.distribution_id AND x.revision = d.revision
		JOIN fiscal_years f ON f.fiscal_year_id = x.fiscal_year_id
		WHERE d.beneficiary_id = $1 AND x.status = 'APPROVED' AND f.status = 'PUBLISHED'
		ORDER BY x.period_start, x.distribution_id;
	`, beneficiaryID)
	if err != nil {
		return nil, mapDBError(err, "failed to query allocation history")
	}
	defer rows.Close()
	out := []domain.HistoricalAllocation{}
	for rows.Next() {
		var h domain.HistoricalAllocation
		var publishedAt *time.Time
		var status string
		if err := rows.Scan(&h.FiscalYearID, &h.FiscalYearName, &publishedAt, &h.DistributionID,
			&h.PeriodStart, &h.PeriodEnd, &h.AllocatedAmount, &status, &h.PaymentDate); err != nil {
			return nil, fmt.Errorf("failed to scan allocation history: %w", err)
		}
		if publishedAt != nil {
			h.PublishedAt = *publishedAt
		}
		h.PaymentStatus = domain.PaymentStatus(status)
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating allocation history: %w", err)
	}
	return out, nil
}
