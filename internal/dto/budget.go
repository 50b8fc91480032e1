package dto

import (
	"github.com/awqaf-platform/waqf_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SetBudgetRequest upserts a budget line.
type SetBudgetRequest struct {
	AccountID      string            `json:"accountID" binding:"required"`
	FiscalYearID   string            `json:"fiscalYearID" binding:"required"`
	PeriodType     domain.PeriodType `json:"periodType" binding:"required,oneof=MONTHLY QUARTERLY YEARLY"`
	PeriodNumber   int               `json:"periodNumber" binding:"required,min=1,max=12"`
	BudgetedAmount decimal.Decimal   `json:"budgetedAmount"`
	Notes          string            `json:"notes"`
}

// BudgetReportResponse lists variances for a fiscal year.
type BudgetReportResponse struct {
	FiscalYearID string                  `json:"fiscalYearID"`
	Lines        []domain.BudgetVariance `json:"lines"`
}
