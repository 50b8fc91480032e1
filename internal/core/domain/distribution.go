package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DistributionStatus is the overall state of a distribution.
type DistributionStatus string

const (
	DistributionPending  DistributionStatus = "PENDING"
	DistributionApproved DistributionStatus = "APPROVED"
	DistributionRejected DistributionStatus = "REJECTED"
)

func (s DistributionStatus) Valid() bool {
	switch s {
	case DistributionPending, DistributionApproved, DistributionRejected:
		return true
	}
	return false
}

// IsTerminal reports whether the distribution no longer blocks a year-end close.
func (s DistributionStatus) IsTerminal() bool {
	switch s {
	case DistributionApproved, DistributionRejected:
		return true
	case DistributionPending:
		return false
	}
	return false
}

// PaymentStatus tracks a detail line's payout.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentPaid      PaymentStatus = "PAID"
	PaymentCancelled PaymentStatus = "CANCELLED"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentCancelled:
		return true
	}
	return false
}

// CanTransitionTo allows pending -> paid and pending -> cancelled only.
func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	switch s {
	case PaymentPending:
		return next == PaymentPaid || next == PaymentCancelled
	case PaymentPaid, PaymentCancelled:
		return false
	}
	return false
}

// SplitConfig holds the custodian, charity and corpus percentages.
type SplitConfig struct {
	NazerPercent   decimal.Decimal `json:"nazerPercent"`
	CharityPercent decimal.Decimal `json:"charityPercent"`
	CorpusPercent  decimal.Decimal `json:"corpusPercent"`
}

// Validate checks each percentage is within 0..100 and the total does not exceed 100.
func (c SplitConfig) Validate() error {
	hundred := decimal.NewFromInt(100)
	for name, p := range map[string]decimal.Decimal{
		"nazer":   c.NazerPercent,
		"charity": c.CharityPercent,
		"corpus":  c.CorpusPercent,
	} {
		if p.IsNegative() || p.GreaterThan(hundred) {
			return fmt.Errorf("%s percentage %s outside 0..100", name, p)
		}
	}
	if total := c.NazerPercent.Add(c.CharityPercent).Add(c.CorpusPercent); total.GreaterThan(hundred) {
		return fmt.Errorf("split percentages total %s exceeds 100", total)
	}
	return nil
}

// LedgerSnapshot captures the ledger figures a distribution was computed from.
// Comparing snapshots detects entries posted after computation.
type LedgerSnapshot struct {
	TotalRevenues decimal.Decimal `json:"totalRevenues"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	PostedEntries int64           `json:"postedEntries"`
}

func (s LedgerSnapshot) Equal(o LedgerSnapshot) bool {
	return s.TotalRevenues.Equal(o.TotalRevenues) &&
		s.TotalExpenses.Equal(o.TotalExpenses) &&
		s.PostedEntries == o.PostedEntries
}

func (s LedgerSnapshot) NetRevenues() decimal.Decimal {
	return s.TotalRevenues.Sub(s.TotalExpenses)
}

// DistributionPeriod identifies the slice of a fiscal year being distributed.
type DistributionPeriod struct {
	FiscalYearID string    `json:"fiscalYearID"`
	PeriodStart  time.Time `json:"periodStart"`
	PeriodEnd    time.Time `json:"periodEnd"`
}

// Distribution is an approvable allocation of a period's net revenue.
type Distribution struct {
	DistributionID      string             `json:"distributionID"`
	Period              DistributionPeriod `json:"period"`
	Revision            int                `json:"revision"`
	TotalRevenues       decimal.Decimal    `json:"totalRevenues"`
	TotalExpenses       decimal.Decimal    `json:"totalExpenses"`
	NetRevenues         decimal.Decimal    `json:"netRevenues"`
	NazerShare          decimal.Decimal    `json:"nazerShare"`
	WaqifCharity        decimal.Decimal    `json:"waqifCharity"`
	WaqfCorpus          decimal.Decimal    `json:"waqfCorpus"`
	DistributableAmount decimal.Decimal    `json:"distributableAmount"`
	BeneficiariesCount  int                `json:"beneficiariesCount"`
	// Split is frozen at computation time.
	Split          SplitConfig          `json:"split"`
	Snapshot       LedgerSnapshot       `json:"snapshot"`
	Status         DistributionStatus   `json:"status"`
	DecidedAt      *time.Time           `json:"decidedAt"`
	Details        []DistributionDetail `json:"details"`
	Approvals      []Approval           `json:"approvals"`
	Version        int64                `json:"version"`
	VouchersIssued bool                 `json:"vouchersIssued"`
	AuditFields
}

// DistributionDetail is one beneficiary's allocation within a revision.
type DistributionDetail struct {
	DetailID        string          `json:"detailID"`
	DistributionID  string          `json:"distributionID"`
	Revision        int             `json:"revision"`
	BeneficiaryID   string          `json:"beneficiaryID"`
	BeneficiaryType BeneficiaryType `json:"beneficiaryType"`
	SharePercentage decimal.Decimal `json:"sharePercentage"`
	AllocatedAmount decimal.Decimal `json:"allocatedAmount"`
	// ResidualApplied is the rounding remainder added to this line.
	ResidualApplied decimal.Decimal `json:"residualApplied"`
	PaymentStatus   PaymentStatus   `json:"paymentStatus"`
	PaymentDate     *time.Time      `json:"paymentDate"`
	CancelReason    string          `json:"cancelReason"`
	VoucherNumber   string          `json:"voucherNumber"`
}

// SplitResult is the outcome of applying a SplitConfig to net revenues.
type SplitResult struct {
	NetRevenues         decimal.Decimal
	NazerShare          decimal.Decimal
	WaqifCharity        decimal.Decimal
	WaqfCorpus          decimal.Decimal
	DistributableAmount decimal.Decimal
}

// ApplySplit rounds each share to the currency unit and leaves the exact
// remainder as the distributable amount. Callers reject negative net first.
func ApplySplit(net decimal.Decimal, cfg SplitConfig) SplitResult {
	nazer := Percent(net, cfg.NazerPercent)
	charity := Percent(net, cfg.CharityPercent)
	corpus := Percent(net, cfg.CorpusPercent)
	return SplitResult{
		NetRevenues:         net,
		NazerShare:          nazer,
		WaqifCharity:        charity,
		WaqfCorpus:          corpus,
		DistributableAmount: net.Sub(nazer).Sub(charity).Sub(corpus),
	}
}

// CheckConservation verifies distributable == net - shares and that the
// details sum exactly to the distributable amount.
func (d Distribution) CheckConservation() error {
	expected := d.NetRevenues.Sub(d.NazerShare).Sub(d.WaqifCharity).Sub(d.WaqfCorpus)
	if !expected.Equal(d.DistributableAmount) {
		return fmt.Errorf("distributable %s != net minus shares %s", d.DistributableAmount, expected)
	}
	sum := decimal.Zero
	for _, det := range d.Details {
		if det.Revision != d.Revision {
			continue
		}
		sum = sum.Add(det.AllocatedAmount)
	}
	if len(d.Details) > 0 && !sum.Equal(d.DistributableAmount) {
		return fmt.Errorf("details sum %s != distributable %s", sum, d.DistributableAmount)
	}
	return nil
}

// CurrentApprovals returns the approvals belonging to the current revision.
func (d Distribution) CurrentApprovals() []Approval {
	out := make([]Approval, 0, len(d.Approvals))
	for _, a := range d.Approvals {
		if a.Revision == d.Revision {
			out = append(out, a)
		}
	}
	return out
}

// HasGrantedApproval reports whether any approval of the current revision is approved.
func (d Distribution) HasGrantedApproval() bool {
	for _, a := range d.CurrentApprovals() {
		if a.Status == ApprovalApproved {
			return true
		}
	}
	return false
}

// HistoricalAllocation is a beneficiary-facing row from a published fiscal year.
type HistoricalAllocation struct {
	FiscalYearID    string          `json:"fiscalYearID"`
	FiscalYearName  string          `json:"fiscalYearName"`
	PublishedAt     time.Time       `json:"publishedAt"`
	DistributionID  string          `json:"distributionID"`
	PeriodStart     time.Time       `json:"periodStart"`
	PeriodEnd       time.Time       `json:"periodEnd"`
	AllocatedAmount decimal.Decimal `json:"allocatedAmount"`
	PaymentStatus   PaymentStatus   `json:"paymentStatus"`
	PaymentDate     *time.Time      `json:"paymentDate"`
}
