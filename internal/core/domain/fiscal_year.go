package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// FiscalYearStatus is the lifecycle state of a fiscal year. The transient
// closing step is the read-only preview and is never persisted.
type FiscalYearStatus string

const (
	FiscalYearOpen      FiscalYearStatus = "OPEN"
	FiscalYearClosed    FiscalYearStatus = "CLOSED"
	FiscalYearPublished FiscalYearStatus = "PUBLISHED"
)

func (s FiscalYearStatus) Valid() bool {
	switch s {
	case FiscalYearOpen, FiscalYearClosed, FiscalYearPublished:
		return true
	}
	return false
}

// AcceptsPostings reports whether journal entries may target the year.
func (s FiscalYearStatus) AcceptsPostings() bool {
	switch s {
	case FiscalYearOpen:
		return true
	case FiscalYearClosed, FiscalYearPublished:
		return false
	}
	return false
}

// CanTransitionTo encodes open -> closed -> published.
func (s FiscalYearStatus) CanTransitionTo(next FiscalYearStatus) bool {
	switch s {
	case FiscalYearOpen:
		return next == FiscalYearClosed
	case FiscalYearClosed:
		return next == FiscalYearPublished
	case FiscalYearPublished:
		return false
	}
	return false
}

// FiscalYear owns a date range of ledger activity. Version increments on
// every posting and state change and guards optimistic close.
type FiscalYear struct {
	FiscalYearID string           `json:"fiscalYearID"`
	Name         string           `json:"name"`
	StartDate    time.Time        `json:"startDate"`
	EndDate      time.Time        `json:"endDate"`
	Status       FiscalYearStatus `json:"status"`
	IsActive     bool             `json:"isActive"`
	ClosedAt     *time.Time       `json:"closedAt"`
	ClosedBy     string           `json:"closedBy"`
	PublishedAt  *time.Time       `json:"publishedAt"`
	Version      int64            `json:"version"`
	AuditFields
}

func (f FiscalYear) IsClosed() bool    { return f.Status == FiscalYearClosed || f.Status == FiscalYearPublished }
func (f FiscalYear) IsPublished() bool { return f.Status == FiscalYearPublished }

// Contains reports whether the date falls inside the year, both ends inclusive.
func (f FiscalYear) Contains(date time.Time) bool {
	d := truncateDay(date)
	return !d.Before(truncateDay(f.StartDate)) && !d.After(truncateDay(f.EndDate))
}

// ValidateFiscalYearRange checks a fiscal year's date bounds.
func ValidateFiscalYearRange(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return fmt.Errorf("start and end dates are required")
	}
	if !truncateDay(end).After(truncateDay(start)) {
		return fmt.Errorf("end date must be after start date")
	}
	return nil
}

// HasEnded reports whether the calendar day of at is after the last day of
// the year. The last day itself still accepts postings.
func (f FiscalYear) HasEnded(at time.Time) bool {
	return truncateDay(at).After(truncateDay(f.EndDate))
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ClosureSummary is the year-end artifact committed on close.
type ClosureSummary struct {
	FiscalYearID          string          `json:"fiscalYearID"`
	TotalRevenues         decimal.Decimal `json:"totalRevenues"`
	TotalExpenses         decimal.Decimal `json:"totalExpenses"`
	NetIncome             decimal.Decimal `json:"netIncome"`
	ZakatRate             decimal.Decimal `json:"zakatRate"`
	ZakatDue              decimal.Decimal `json:"zakatDue"`
	TotalNazerShare       decimal.Decimal `json:"totalNazerShare"`
	TotalCharity          decimal.Decimal `json:"totalCharity"`
	CorpusCarriedForward  decimal.Decimal `json:"corpusCarriedForward"`
	TotalDistributed      decimal.Decimal `json:"totalDistributed"`
	ApprovedDistributions int             `json:"approvedDistributions"`
	PostedEntries         int64           `json:"postedEntries"`
	ComputedAt            time.Time       `json:"computedAt"`
}

// NewClosureSummary derives net income and zakat from ledger totals. Zakat is
// levied only on a positive net income.
func NewClosureSummary(fiscalYearID string, revenues, expenses, zakatRate decimal.Decimal) ClosureSummary {
	net := revenues.Sub(expenses)
	zakat := decimal.Zero
	if net.IsPositive() {
		zakat = Percent(net, zakatRate)
	}
	return ClosureSummary{
		FiscalYearID:         fiscalYearID,
		TotalRevenues:        revenues,
		TotalExpenses:        expenses,
		NetIncome:            net,
		ZakatRate:            zakatRate,
		ZakatDue:             zakat,
		TotalNazerShare:      decimal.Zero,
		TotalCharity:         decimal.Zero,
		CorpusCarriedForward: decimal.Zero,
		TotalDistributed:     decimal.Zero,
	}
}

// AddApprovedDistribution folds an approved distribution into the summary.
func (s *ClosureSummary) AddApprovedDistribution(d Distribution) {
	s.TotalNazerShare = s.TotalNazerShare.Add(d.NazerShare)
	s.TotalCharity = s.TotalCharity.Add(d.WaqifCharity)
	s.CorpusCarriedForward = s.CorpusCarriedForward.Add(d.WaqfCorpus)
	s.TotalDistributed = s.TotalDistributed.Add(d.DistributableAmount)
	s.ApprovedDistributions++
}

// ClosePreview is the read-only result of the closing validation step.
type ClosePreview struct {
	FiscalYearID    string           `json:"fiscalYearID"`
	Status          FiscalYearStatus `json:"status"`
	CanClose        bool             `json:"canClose"`
	Summary         ClosureSummary   `json:"summary"`
	BlockingReasons []BlockingReason `json:"blockingReasons"`
	// Version observed by the preview; close commits only if it is unchanged.
	Version int64 `json:"version"`
}

// BlockingReasonKind enumerates why a year cannot close.
type BlockingReasonKind string

const (
	BlockNotOpen             BlockingReasonKind = "NOT_OPEN"
	BlockPendingDistribution BlockingReasonKind = "PENDING_DISTRIBUTION"
	BlockDraftEntries        BlockingReasonKind = "DRAFT_ENTRIES"
	BlockUnbalancedEntry     BlockingReasonKind = "UNBALANCED_ENTRY"
)

type BlockingReason struct {
	Kind     BlockingReasonKind `json:"kind"`
	EntityID string             `json:"entityID,omitempty"`
	Message  string             `json:"message"`
}

func (r BlockingReason) String() string {
	if r.EntityID != "" {
		return fmt.Sprintf("%s %s: %s", r.Kind, r.EntityID, r.Message)
	}
	return fmt.Sprintf("%s: %s", r.Kind, r.Message)
}

// CloseResult is returned by a close request.
type CloseResult struct {
	Closed  bool         `json:"closed"`
	Preview ClosePreview `json:"preview"`
}
