package dto

import (
	"time"

	"github.com/awqaf-platform/waqf_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateJournalLineRequest is one line of a journal entry request.
type CreateJournalLineRequest struct {
	AccountID   string          `json:"accountID" binding:"required"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
}

// CreateJournalEntryRequest is used both for drafts and direct posting.
type CreateJournalEntryRequest struct {
	EntryDate   time.Time                  `json:"entryDate" binding:"required"`
	Description string                     `json:"description" binding:"required"`
	Reference   string                     `json:"reference"`
	Lines       []CreateJournalLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// CancelEntryRequest carries the reason for a cancellation.
type CancelEntryRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// ListEntriesParams defines the query parameters for listing entries.
type ListEntriesParams struct {
	FiscalYearID string  `form:"fiscalYearID" binding:"required"`
	Status       string  `form:"status"`
	Limit        int     `form:"limit,default=20" binding:"min=1,max=100"`
	NextToken    *string `form:"nextToken"`
}

// JournalLineResponse defines the data returned for a journal line.
type JournalLineResponse struct {
	LineID      string          `json:"lineID"`
	LineNumber  int             `json:"lineNumber"`
	AccountID   string          `json:"accountID"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	EntryID      string                `json:"entryID"`
	EntryNumber  int64                 `json:"entryNumber"`
	FiscalYearID string                `json:"fiscalYearID"`
	EntryDate    time.Time             `json:"entryDate"`
	Description  string                `json:"description"`
	Status       domain.EntryStatus    `json:"status"`
	Reference    string                `json:"reference,omitempty"`
	ReversalOfID string                `json:"reversalOfID,omitempty"`
	ReversedByID string                `json:"reversedByID,omitempty"`
	TotalDebit   decimal.Decimal       `json:"totalDebit"`
	TotalCredit  decimal.Decimal       `json:"totalCredit"`
	Lines        []JournalLineResponse `json:"lines"`
	PostedAt     *time.Time            `json:"postedAt,omitempty"`
	CreatedAt    time.Time             `json:"createdAt"`
	CreatedBy    string                `json:"createdBy"`
}

// ListEntriesResponse wraps a page of entries.
type ListEntriesResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// ToJournalEntryResponse converts a domain.JournalEntry to its DTO.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	debit, credit := e.Totals()
	lines := make([]JournalLineResponse, len(e.Lines))
	for i, l := range e.Lines {
		lines[i] = JournalLineResponse{
			LineID:      l.LineID,
			LineNumber:  l.LineNumber,
			AccountID:   l.AccountID,
			Debit:       l.Debit,
			Credit:      l.Credit,
			Description: l.Description,
		}
	}
	return JournalEntryResponse{
		EntryID:      e.EntryID,
		EntryNumber:  e.EntryNumber,
		FiscalYearID: e.FiscalYearID,
		EntryDate:    e.EntryDate,
		Description:  e.Description,
		Status:       e.Status,
		Reference:    e.Reference,
		ReversalOfID: e.ReversalOfID,
		ReversedByID: e.ReversedByID,
		TotalDebit:   debit,
		TotalCredit:  credit,
		Lines:        lines,
		PostedAt:     e.PostedAt,
		CreatedAt:    e.CreatedAt,
		CreatedBy:    e.CreatedBy,
	}
}

// ToJournalEntryResponses converts a slice of entries.
func ToJournalEntryResponses(entries []domain.JournalEntry) []JournalEntryResponse {
	out := make([]JournalEntryResponse, len(entries))
	for i := range entries {
		out[i] = ToJournalEntryResponse(&entries[i])
	}
	return out
}
