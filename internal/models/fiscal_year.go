package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FiscalYear is a row of the fiscal_years table.
type FiscalYear struct {
	FiscalYearID string     `db:"fiscal_year_id"`
	Name         string     `db:"name"`
	StartDate    time.Time  `db:"start_date"`
	EndDate      time.Time  `db:"end_date"`
	Status       string     `db:"status"`
	IsActive     bool       `db:"is_active"`
	ClosedAt     *time.Time `db:"closed_at"`
	ClosedBy     *string    `db:"closed_by"`
	PublishedAt  *time.Time `db:"published_at"`
	Version      int64      `db:"version"`
	AuditFields
}

// FiscalYearClosure is a row of the fiscal_year_closures table.
type FiscalYearClosure struct {
	FiscalYearID          string          `db:"fiscal_year_id"`
	TotalRevenues         decimal.Decimal `db:"total_revenues"`
	TotalExpenses         decimal.Decimal `db:"total_expenses"`
	NetIncome             decimal.Decimal `db:"net_income"`
	ZakatRate             decimal.Decimal `db:"zakat_rate"`
	ZakatDue              decimal.Decimal `db:"zakat_due"`
	TotalNazerShare       decimal.Decimal `db:"total_nazer_share"`
	TotalCharity          decimal.Decimal `db:"total_charity"`
	CorpusCarriedForward  decimal.Decimal `db:"corpus_carried_forward"`
	TotalDistributed      decimal.Decimal `db:"total_distributed"`
	ApprovedDistributions int             `db:"approved_distributions"`
	PostedEntries         int64           `db:"posted_entries"`
	ComputedAt            time.Time       `db:"computed_at"`
}
