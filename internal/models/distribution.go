package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Distribution is a row of the distributions table.
type Distribution struct {
	DistributionID        string          `db:"distribution_id"`
	FiscalYearID          string          `db:"fiscal_year_id"`
	PeriodStart           time.Time       `db:"period_start"`
	PeriodEnd             time.Time       `db:"period_end"`
	Revision              int             `db:"revision"`
	TotalRevenues         decimal.Decimal `db:"total_revenues"`
	TotalExpenses         decimal.Decimal `db:"total_expenses"`
	NetRevenues           decimal.Decimal `db:"net_revenues"`
	NazerShare            decimal.Decimal `db:"nazer_share"`
	WaqifCharity          decimal.Decimal `db:"waqif_charity"`
	WaqfCorpus            decimal.Decimal `db:"waqf_corpus"`
	DistributableAmount   decimal.Decimal `db:"distributable_amount"`
	BeneficiariesCount    int             `db:"beneficiaries_count"`
	NazerPercent          decimal.Decimal `db:"nazer_percent"`
	CharityPercent        decimal.Decimal `db:"charity_percent"`
	CorpusPercent         decimal.Decimal `db:"corpus_percent"`
	SnapshotPostedEntries int64           `db:"snapshot_posted_entries"`
	Status                string          `db:"status"`
	DecidedAt             *time.Time      `db:"decided_at"`
	VouchersIssued        bool            `db:"vouchers_issued"`
	Version               int64           `db:"version"`
	AuditFields
}

// DistributionDetail is a row of the distribution_details table.
type DistributionDetail struct {
	DetailID        string          `db:"detail_id"`
	DistributionID  string          `db:"distribution_id"`
	Revision        int             `db:"revision"`
	BeneficiaryID   string          `db:"beneficiary_id"`
	BeneficiaryType string          `db:"beneficiary_type"`
	SharePercentage decimal.Decimal `db:"share_percentage"`
	AllocatedAmount decimal.Decimal `db:"allocated_amount"`
	ResidualApplied decimal.Decimal `db:"residual_applied"`
	PaymentStatus   string          `db:"payment_status"`
	PaymentDate     *time.Time      `db:"payment_date"`
	CancelReason    *string         `db:"cancel_reason"`
	VoucherNumber   *string         `db:"voucher_number"`
}

// Approval is a row of the distribution_approvals table.
type Approval struct {
	ApprovalID     string     `db:"approval_id"`
	DistributionID string     `db:"distribution_id"`
	Revision       int        `db:"revision"`
	Level          int        `db:"level"`
	Role           string     `db:"role"`
	Status         string     `db:"status"`
	DecidedBy      *string    `db:"decided_by"`
	DecidedAt      *time.Time `db:"decided_at"`
	Note           *string    `db:"note"`
	CreatedAt      time.Time  `db:"created_at"`
}
