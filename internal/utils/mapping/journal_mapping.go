package mapping

import (
	"github.com/awqaf-platform/waqf_ledger/internal/core/domain"
	"github.com/awqaf-platform/waqf_ledger/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry to a model JournalEntry.
// Lines are mapped separately.
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	m := models.JournalEntry{
		EntryID:      d.EntryID,
		FiscalYearID: d.FiscalYearID,
		EntryDate:    d.EntryDate,
		Description:  d.Description,
		Status:       string(d.Status),
		Reference:    NullableString(d.Reference),
		ReversalOfID: NullableString(d.ReversalOfID),
		ReversedByID: NullableString(d.ReversedByID),
		CancelReason: NullableString(d.CancelReason),
		PostedAt:     d.PostedAt,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
	if d.EntryNumber > 0 {
		n := d.EntryNumber
		m.EntryNumber = &n
	}
	return m
}

// ToDomainJournalEntry converts a model JournalEntry to a domain JournalEntry without lines.
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	d := domain.JournalEntry{
		EntryID:      m.EntryID,
		FiscalYearID: m.FiscalYearID,
		EntryDate:    m.EntryDate,
		Description:  m.Description,
		Status:       domain.EntryStatus(m.Status),
		Reference:    StringValue(m.Reference),
		ReversalOfID: StringValue(m.ReversalOfID),
		ReversedByID: StringValue(m.ReversedByID),
		CancelReason: StringValue(m.CancelReason),
		PostedAt:     m.PostedAt,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
	if m.EntryNumber != nil {
		d.EntryNumber = *m.EntryNumber
	}
	return d
}

// ToModelJournalLine converts a domain JournalLine to a model JournalLine
func ToModelJournalLine(d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		LineID:      d.LineID,
		EntryID:     d.EntryID,
		AccountID:   d.AccountID,
		LineNumber:  d.LineNumber,
		Debit:       d.Debit,
		Credit:      d.Credit,
		Description: NullableString(d.Description),
	}
}

// ToDomainJournalLine converts a model JournalLine to a domain JournalLine
func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		LineID:      m.LineID,
		EntryID:     m.EntryID,
		AccountID:   m.AccountID,
		LineNumber:  m.LineNumber,
		Debit:       m.Debit,
		Credit:      m.Credit,
		Description: StringValue(m.Description),
	}
}
