package pgsql

import (
	"context"
	"fmt"

	"github.com/awqaf-platform/waqf_ledger/internal/core/domain"
	portsrepo "github.com/awqaf-platform/waqf_ledger/internal/core/ports/repositories"
	"github.com/awqaf-platform/waqf_ledger/internal/models"
	"github.com/awqaf-platform/waqf_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const budgetColumns = `budget_id, account_id, fiscal_year_id, period_type, period_number, budgeted_amount, notes,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxBudgetRepository struct {
	BaseRepository
}

func newPgxBudgetRepository(pool *pgxpool.Pool) portsrepo.BudgetRepositoryFacade {
	return &PgxBudgetRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BudgetRepositoryFacade = (*PgxBudgetRepository)(nil)

func scanBudget(row pgx.Row) (domain.Budget, error) {
	var m models.Budget
	err := row.Scan(
		&m.BudgetID,
		&m.AccountID,
		&m.FiscalYearID,
		&m.PeriodType,
		&m.PeriodNumber,
		&m.BudgetedAmount,
		&m.Notes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return domain.Budget{}, err
	}
	return mapping.ToDomainBudget(m), nil
}

// UpsertBudget keeps the original id and creation audit when the key exists.
func (r *PgxBudgetRepository) UpsertBudget(ctx context.Context, budget domain.Budget) (*domain.Budget, error) {
	m := mapping.ToModelBudget(budget)
	query := `
		INSERT INTO budgets (` + budgetColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (account_id, fiscal_year_id, period_type, period_number) DO UPDATE
		SET budgeted_amount = EXCLUDED.budgeted_amount,
		    notes = EXCLUDED.notes,
		    last_updated_at = EXCLUDED.last_updated_at,
		    last_updated_by = EXCLUDED.last_updated_by
		RETURNING ` + budgetColumns + `;
	`
	saved, err := scanBudget(r.Pool.QueryRow(ctx, query,
		m.BudgetID,
		m.AccountID,
		m.FiscalYearID,
		m.PeriodType,
		m.PeriodNumber,
		m.BudgetedAmount,
		m.Notes,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	))
	if err != nil {
		return nil, mapDBError(err, "failed to upsert budget")
	}
	return &saved, nil
}

func (r *PgxBudgetRepository) ListBudgets(ctx context.Context, fiscalYearID string) ([]domain.Budget, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT `+budgetColumns+` FROM budgets
		WHERE fiscal_year_id = $1
		ORDER BY account_id, period_type, period_number;
	`, fiscalYearID)
	if err != nil {
		return nil, mapDBError(err, "failed to list budgets")
	}
	defer rows.Close()
	budgets := []domain.Budget{}
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan budget row: %w", err)
		}
		budgets = append(budgets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating budget rows: %w", err)
	}
	return budgets, nil
}
