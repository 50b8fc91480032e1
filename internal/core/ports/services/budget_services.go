package services

import (
	"context"

	"github.com/awqaf-platform/waqf_ledger/internal/core/domain"
	"github.com/awqaf-platform/waqf_ledger/internal/dto"
)

// BudgetSvcFacade manages budget lines and their variance against the ledger.
type BudgetSvcFacade interface {
	// SetBudget inserts or replaces a budget line.
	SetBudget(ctx context.Context, req dto.SetBudgetRequest, userID string) (*domain.Budget, error)

	// GetBudgetReport returns budgeted, actual and variance per budget line.
	GetBudgetReport(ctx context.Context, fiscalYearID string) ([]domain.BudgetVariance, error)
}
