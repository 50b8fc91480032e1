package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PeriodType is the granularity of a budget line.
type PeriodType string

const (
	PeriodMonthly   PeriodType = "MONTHLY"
	PeriodQuarterly PeriodType = "QUARTERLY"
	PeriodYearly    PeriodType = "YEARLY"
)

func (p PeriodType) Valid() bool {
	switch p {
	case PeriodMonthly, PeriodQuarterly, PeriodYearly:
		return true
	}
	return false
}

// MaxPeriodNumber returns how many periods of this type fit in a fiscal year.
func (p PeriodType) MaxPeriodNumber() (int, error) {
	switch p {
	case PeriodMonthly:
		return 12, nil
	case PeriodQuarterly:
		return 4, nil
	case PeriodYearly:
		return 1, nil
	}
	return 0, fmt.Errorf("unknown period type %q", p)
}

func ParsePeriodType(s string) (PeriodType, error) {
	p := PeriodType(strings.ToUpper(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("unknown period type %q", s)
	}
	return p, nil
}

// DateWindow is an inclusive range of calendar days.
type DateWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// PeriodWindow returns the window of the n-th period counted from the fiscal
// year start. The last window is clipped to the fiscal year end.
func PeriodWindow(fy FiscalYear, p PeriodType, n int) (DateWindow, error) {
	limit, err := p.MaxPeriodNumber()
	if err != nil {
		return DateWindow{}, err
	}
	if n < 1 || n > limit {
		return DateWindow{}, fmt.Errorf("period number %d out of range 1..%d for %s", n, limit, p)
	}
	start := truncateDay(fy.StartDate)
	var months int
	switch p {
	case PeriodMonthly:
		months = 1
	case PeriodQuarterly:
		months = 3
	case PeriodYearly:
		return DateWindow{Start: start, End: truncateDay(fy.EndDate)}, nil
	}
	ws := start.AddDate(0, months*(n-1), 0)
	we := ws.AddDate(0, months, -1)
	if n == limit || we.After(truncateDay(fy.EndDate)) {
		we = truncateDay(fy.EndDate)
	}
	return DateWindow{Start: ws, End: we}, nil
}

// Budget is a planned amount for an account in one period of a fiscal year.
type Budget struct {
	BudgetID       string          `json:"budgetID"`
	AccountID      string          `json:"accountID"`
	FiscalYearID   string          `json:"fiscalYearID"`
	PeriodType     PeriodType      `json:"periodType"`
	PeriodNumber   int             `json:"periodNumber"`
	BudgetedAmount decimal.Decimal `json:"budgetedAmount"`
	Notes          string          `json:"notes"`
	AuditFields
}

// BudgetVariance pairs a budget with its ledger actual.
type BudgetVariance struct {
	Budget
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	Window      DateWindow      `json:"window"`
	Actual      decimal.Decimal `json:"actual"`
	Variance    decimal.Decimal `json:"variance"` // actual - budgeted
}

// NewBudgetVariance computes variance = actual - budgeted.
func NewBudgetVariance(b Budget, acc Account, w DateWindow, actual decimal.Decimal) BudgetVariance {
	return BudgetVariance{
		Budget:      b,
		AccountCode: acc.Code,
		AccountName: acc.Name,
		Window:      w,
		Actual:      actual,
		Variance:    actual.Sub(b.BudgetedAmount),
	}
}
