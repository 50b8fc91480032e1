package repositories

import (
	"context"
	"time"

	"github.com/awqaf-platform/waqf_ledger/internal/core/domain"
)

// ListEntriesFilter narrows an entry listing. NextToken is an opaque cursor.
type ListEntriesFilter struct {
	FiscalYearID string
	Status       *domain.EntryStatus
	Limit        int
	NextToken    *string
}

// JournalReader defines read operations for journal entries
type JournalReader interface {
	// FindEntryByID retrieves an entry together with its ordered lines.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ListEntries returns entries newest first and a token for the next page.
	ListEntries(ctx context.Context, filter ListEntriesFilter) ([]domain.JournalEntry, *string, error)

	// CountEntriesByStatus counts entries of a fiscal year in the given status.
	CountEntriesByStatus(ctx context.Context, fiscalYearID string, status domain.EntryStatus) (int64, error)

	// FindUnbalancedEntries returns IDs of posted entries whose stored lines do not balance.
	FindUnbalancedEntries(ctx context.Context, fiscalYearID string) ([]string, error)
}

// JournalWriter defines write operations for journal entries
type JournalWriter interface {
	// SaveDraft persists an entry in draft status with its lines.
	SaveDraft(ctx context.Context, entry domain.JournalEntry) error

	// PostEntry posts an entry atomically. Inside one transaction it locks the
	// fiscal year, rejects a year that is not open, assigns the next entry
	// number, writes the entry (or promotes the stored draft) and bumps the
	// fiscal year version. The posted entry is returned.
	PostEntry(ctx context.Context, entry domain.JournalEntry) (*domain.JournalEntry, error)

	// CancelEntry posts the reversal and marks the original cancelled in one
	// transaction. The original must still be posted and its year open.
	CancelEntry(ctx context.Context, originalID string, reversal domain.JournalEntry, reason string, userID string, at time.Time) (*domain.JournalEntry, error)
}

// LedgerReader derives figures from posted lines only.
type LedgerReader interface {
	// SumPostedByAccount returns debit/credit totals per account. An empty
	// fiscalYearID spans all years; a nil window spans the whole year.
	SumPostedByAccount(ctx context.Context, fiscalYearID string, window *domain.DateWindow) (map[string]domain.PostedTotals, error)

	// LedgerSnapshot returns revenue net credit, expense net debit and the
	// posted entry count for the window.
	LedgerSnapshot(ctx context.Context, fiscalYearID string, window domain.DateWindow) (domain.LedgerSnapshot, error)
}

// JournalRepositoryFacade combines all journal-related repository interfaces
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
	LedgerReader
}
