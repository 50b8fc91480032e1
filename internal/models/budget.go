package models

import "github.com/shopspring/decimal"

// Budget is a row of the budgets table.
type Budget struct {
	BudgetID       string          `db:"budget_id"`
	AccountID      string          `db:"account_id"`
	FiscalYearID   string          `db:"fiscal_year_id"`
	PeriodType     string          `db:"period_type"`
	PeriodNumber   int             `db:"period_number"`
	BudgetedAmount decimal.Decimal `db:"budgeted_amount"`
	Notes          *string         `db:"notes"`
	AuditFields
}
