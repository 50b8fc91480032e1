package repositories

import (
	"context"

	"github.com/awqaf-platform/waqf_ledger/internal/core/domain"
)

// BudgetRepositoryFacade persists budget lines.
type BudgetRepositoryFacade interface {
	// UpsertBudget inserts or replaces the line keyed by account, year, period type and number.
	UpsertBudget(ctx context.Context, budget domain.Budget) (*domain.Budget, error)

	ListBudgets(ctx context.Context, fiscalYearID string) ([]domain.Budget, error)
}
