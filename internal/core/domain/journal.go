package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the state of a journal entry.
type EntryStatus string

const (
	EntryDraft     EntryStatus = "DRAFT"
	EntryPosted    EntryStatus = "POSTED"
	EntryCancelled EntryStatus = "CANCELLED"
)

func (s EntryStatus) Valid() bool {
	switch s {
	case EntryDraft, EntryPosted, EntryCancelled:
		return true
	}
	return false
}

// CanTransitionTo encodes draft -> posted -> cancelled.
func (s EntryStatus) CanTransitionTo(next EntryStatus) bool {
	switch s {
	case EntryDraft:
		return next == EntryPosted
	case EntryPosted:
		return next == EntryCancelled
	case EntryCancelled:
		return false
	}
	return false
}

// ParseEntryStatus converts free-form input into a closed EntryStatus.
func ParseEntryStatus(s string) (EntryStatus, error) {
	st := EntryStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", fmt.Errorf("unknown entry status %q", s)
	}
	return st, nil
}

// JournalEntry is a dated double-entry transaction owned by one fiscal year.
type JournalEntry struct {
	EntryID      string      `json:"entryID"`
	FiscalYearID string      `json:"fiscalYearID"`
	EntryNumber  int64       `json:"entryNumber"` // assigned on posting, 0 for drafts
	EntryDate    time.Time   `json:"entryDate"`
	Description  string      `json:"description"`
	Status       EntryStatus `json:"status"`
	// Reference links the originating document, e.g. "distribution:<id>".
	Reference    string        `json:"reference"`
	ReversalOfID string        `json:"reversalOfID"`
	ReversedByID string        `json:"reversedByID"`
	CancelReason string        `json:"cancelReason"`
	Lines        []JournalLine `json:"lines"`
	PostedAt     *time.Time    `json:"postedAt"`
	AuditFields
}

// TouchesAccount reports whether any line of the entry posts to accountID.
func (e JournalEntry) TouchesAccount(accountID string) bool {
	for _, l := range e.Lines {
		if l.AccountID == accountID {
			return true
		}
	}
	return false
}

// JournalLine affects exactly one leaf account on exactly one side.
type JournalLine struct {
	LineID      string          `json:"lineID"`
	EntryID     string          `json:"entryID"`
	AccountID   string          `json:"accountID"`
	LineNumber  int             `json:"lineNumber"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
}

// LineShapeError describes a malformed line.
type LineShapeError struct {
	LineNumber int
	Reason     string
}

func (e *LineShapeError) Error() string {
	return fmt.Sprintf("line %d: %s", e.LineNumber, e.Reason)
}

// ValidateShape checks a line in isolation: non-negative amounts, exactly one
// side non-zero, and no precision below the smallest currency unit.
func (l JournalLine) ValidateShape() error {
	if l.AccountID == "" {
		return &LineShapeError{l.LineNumber, "account is required"}
	}
	if l.Debit.IsNegative() || l.Credit.IsNegative() {
		return &LineShapeError{l.LineNumber, "amounts must be non-negative"}
	}
	debitSet, creditSet := !l.Debit.IsZero(), !l.Credit.IsZero()
	if debitSet == creditSet {
		return &LineShapeError{l.LineNumber, "exactly one of debit or credit must be non-zero"}
	}
	if !l.Debit.Equal(RoundMoney(l.Debit)) || !l.Credit.Equal(RoundMoney(l.Credit)) {
		return &LineShapeError{l.LineNumber, "amount is finer than the smallest currency unit"}
	}
	return nil
}

// Totals returns the debit and credit sums of the entry's lines.
func (e JournalEntry) Totals() (debit, credit decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	for _, l := range e.Lines {
		debit = debit.Add(l.Debit)
		credit = credit.Add(l.Credit)
	}
	return debit, credit
}

// Imbalance returns debits - credits; zero for a balanced entry.
func (e JournalEntry) Imbalance() decimal.Decimal {
	d, c := e.Totals()
	return d.Sub(c)
}

// AccountIDs returns the distinct accounts referenced by the lines, in line order.
func (e JournalEntry) AccountIDs() []string {
	seen := make(map[string]bool, len(e.Lines))
	ids := make([]string, 0, len(e.Lines))
	for _, l := range e.Lines {
		if !seen[l.AccountID] {
			seen[l.AccountID] = true
			ids = append(ids, l.AccountID)
		}
	}
	return ids
}

// BuildReversal returns a draft entry with debits and credits swapped on every line.
func (e JournalEntry) BuildReversal(newEntryID string, date time.Time, newLineID func() string) JournalEntry {
	rev := JournalEntry{
		EntryID:      newEntryID,
		FiscalYearID: e.FiscalYearID,
		EntryDate:    date,
		Description:  fmt.Sprintf("Reversal of entry #%d: %s", e.EntryNumber, e.Description),
		Status:       EntryDraft,
		Reference:    e.Reference,
		ReversalOfID: e.EntryID,
		Lines:        make([]JournalLine, len(e.Lines)),
	}
	for i, l := range e.Lines {
		rev.Lines[i] = JournalLine{
			LineID:      newLineID(),
			EntryID:     newEntryID,
			AccountID:   l.AccountID,
			LineNumber:  l.LineNumber,
			Debit:       l.Credit,
			Credit:      l.Debit,
			Description: l.Description,
		}
	}
	return rev
}
