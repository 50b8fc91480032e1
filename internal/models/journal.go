package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is a row of the journal_entries table.
type JournalEntry struct {
	EntryID      string     `db:"entry_id"`
	FiscalYearID string     `db:"fiscal_year_id"`
	EntryNumber  *int64     `db:"entry_number"` // NULL while draft
	EntryDate    time.Time  `db:"entry_date"`
	Description  string     `db:"description"`
	Status       string     `db:"status"`
	Reference    *string    `db:"reference"`
	ReversalOfID *string    `db:"reversal_of_id"`
	ReversedByID *string    `db:"reversed_by_id"`
	CancelReason *string    `db:"cancel_reason"`
	PostedAt     *time.Time `db:"posted_at"`
	AuditFields
}

// JournalLine is a row of the journal_lines table.
type JournalLine struct {
	LineID      string          `db:"line_id"`
	EntryID     string          `db:"entry_id"`
	AccountID   string          `db:"account_id"`
	LineNumber  int             `db:"line_number"`
	Debit       decimal.Decimal `db:"debit"`
	Credit      decimal.Decimal `db:"credit"`
	Description *string         `db:"description"`
}
