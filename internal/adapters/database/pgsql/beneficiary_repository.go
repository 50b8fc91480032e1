package pgsql

import (
	"context"
	"fmt"

	"github.com/awqaf-platform/waqf_ledger/internal/apperrors"
	"github.com/awqaf-platform/waqf_ledger/internal/core/domain"
	portsrepo "github.com/awqaf-platform/waqf_ledger/internal/core/ports/repositories"
	"github.com/awqaf-platform/waqf_ledger/internal/models"
	"github.com/awqaf-platform/waqf_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const beneficiaryColumns = `beneficiary_id, name, beneficiary_type, share_percentage,
	archival_status, archive_reason, archived_at, archived_by,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxBeneficiaryRepository struct {
	BaseRepository
}

func newPgxBeneficiaryRepository(pool *pgxpool.Pool) portsrepo.BeneficiaryRepositoryFacade {
	return &PgxBeneficiaryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BeneficiaryRepositoryFacade = (*PgxBeneficiaryRepository)(nil)

func scanBeneficiary(row pgx.Row) (domain.Beneficiary, error) {
	var m models.Beneficiary
	err := row.Scan(
		&m.BeneficiaryID,
		&m.Name,
		&m.BeneficiaryType,
		&m.SharePercentage,
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
		return domain.Beneficiary{}, err
	}
	return mapping.ToDomainBeneficiary(m), nil
}

func (r *PgxBeneficiaryRepository) SaveBeneficiary(ctx context.Context, b domain.Beneficiary) error {
	m := mapping.ToModelBeneficiary(b)
	query := `
		INSERT INTO beneficiaries (` + beneficiaryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.BeneficiaryID,
		m.Name,
		m.BeneficiaryType,
		m.SharePercentage,
		m.ArchivalStatus,
		m.ArchiveReason,
		m.ArchivedAt,
		m.ArchivedBy,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	return mapDBError(err, "failed to save beneficiary "+m.BeneficiaryID)
}

// UpdateBeneficiary changes the share of an active beneficiary. Existing
// distribution details keep the share they were computed with.
func (r *PgxBeneficiaryRepository) UpdateBeneficiary(ctx context.Context, b domain.Beneficiary) error {
	cmdTag, err := r.Pool.Exec(ctx, `
		UPDATE beneficiaries
		SET name = $2, share_percentage = $3, last_updated_at = $4, last_updated_by = $5
		WHERE beneficiary_id = $1 AND `+activePredicate("")+`;
	`, b.BeneficiaryID, b.Name, b.SharePercentage, b.LastUpdatedAt, b.LastUpdatedBy)
	if err != nil {
		return mapDBError(err, "failed to update beneficiary "+b.BeneficiaryID)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.InvalidTransitionError(b.BeneficiaryID, string(domain.ArchivalArchived), "UPDATED")
	}
	return nil
}

func (r *PgxBeneficiaryRepository) FindBeneficiaryByID(ctx context.Context, beneficiaryID string) (*domain.Beneficiary, error) {
	query := `SELECT ` + beneficiaryColumns + ` FROM beneficiaries WHERE beneficiary_id = $1;`
	b, err := scanBeneficiary(r.Pool.QueryRow(ctx, query, beneficiaryID))
	if err != nil {
		return nil, mapDBError(err, "beneficiary "+beneficiaryID)
	}
	return &b, nil
}

func (r *PgxBeneficiaryRepository) ListBeneficiaries(ctx context.Context, includeArchived bool) ([]domain.Beneficiary, error) {
	query := `SELECT ` + beneficiaryColumns + ` FROM beneficiaries`
	if !includeArchived {
		query += ` WHERE ` + activePredicate("")
	}
	query += ` ORDER BY beneficiary_id;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, mapDBError(err, "failed to list beneficiaries")
	}
	defer rows.Close()
	list := []domain.Beneficiary{}
	for rows.Next() {
		b, err := scanBeneficiary(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan beneficiary row: %w", err)
		}
		list = append(list, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating beneficiary rows: %w", err)
	}
	return list, nil
}

func (r *PgxBeneficiaryRepository) ArchiveBeneficiary(ctx context.Context, beneficiaryID string, state domain.ArchivalState) error {
	cols := mapping.ToModelArchival(state)
	cmdTag, err := r.Pool.Exec(ctx, `
		UPDATE beneficiaries
		SET archival_status = $2, archive_reason = $3, archived_at = $4, archived_by = $5,
		    last_updated_at = $4, last_updated_by = $5
		WHERE beneficiary_id = $1 AND `+activePredicate("")+`;
	`, beneficiaryID, cols.ArchivalStatus, cols.ArchiveReason, cols.ArchivedAt, cols.ArchivedBy)
	if err != nil {
		return mapDBError(err, "failed to archive beneficiary "+beneficiaryID)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.InvalidTransitionError(beneficiaryID, string(domain.ArchivalArchived), string(domain.ArchivalArchived))
	}
	return nil
}
