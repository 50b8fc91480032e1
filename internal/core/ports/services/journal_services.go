package services

import (
	"context"

	"github.com/awqaf-platform/waqf_ledger/internal/core/domain"
	"github.com/awqaf-platform/waqf_ledger/internal/dto"
)

// JournalReaderSvc defines read operations for journal entries
type JournalReaderSvc interface {
	// GetEntry retrieves an entry with its lines.
	GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a page of entries for a fiscal year.
	ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)
}

// JournalWriterSvc defines write operations for journal entries
type JournalWriterSvc interface {
	// CreateDraft stores an entry in draft status. Lines are checked for shape only.
	CreateDraft(ctx context.Context, req dto.CreateJournalEntryRequest, userID string) (*domain.JournalEntry, error)

	// PostDraft fully validates a stored draft and posts it.
	PostDraft(ctx context.Context, entryID string, userID string) (*domain.JournalEntry, error)

	// PostJournalEntry validates and posts an entry atomically.
	PostJournalEntry(ctx context.Context, req dto.CreateJournalEntryRequest, userID string) (*domain.JournalEntry, error)

	// CancelEntry posts a reversing entry and marks the original cancelled.
	// The reversal is returned.
	CancelEntry(ctx context.Context, entryID string, reason string, userID string) (*domain.JournalEntry, error)
}

// JournalSvcFacade combines all journal-related service interfaces
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
}
