package mapping

import (
	"github.com/awqaf-platform/waqf_ledger/internal/core/domain"
	"github.com/awqaf-platform/waqf_ledger/internal/models"
)

func ToModelFiscalYear(d domain.FiscalYear) models.FiscalYear {
	return models.FiscalYear{
		FiscalYearID: d.FiscalYearID,
		Name:         d.Name,
		StartDate:    d.StartDate,
		EndDate:      d.EndDate,
		Status:       string(d.Status),
		IsActive:     d.IsActive,
		ClosedAt:     d.ClosedAt,
		ClosedBy:     NullableString(d.ClosedBy),
		PublishedAt:  d.PublishedAt,
		Version:      d.Version,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainFiscalYear(m models.FiscalYear) domain.FiscalYear {
	return domain.FiscalYear{
		FiscalYearID: m.FiscalYearID,
		Name:         m.Name,
		StartDate:    m.StartDate,
		EndDate:      m.EndDate,
		Status:       domain.FiscalYearStatus(m.Status),
		IsActive:     m.IsActive,
		ClosedAt:     m.ClosedAt,
		ClosedBy:     StringValue(m.ClosedBy),
		PublishedAt:  m.PublishedAt,
		Version:      m.Version,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

func ToModelClosure(d domain.ClosureSummary) models.FiscalYearClosure {
	return models.FiscalYearClosure{
		FiscalYearID:          d.FiscalYearID,
		TotalRevenues:         d.TotalRevenues,
		TotalExpenses:         d.TotalExpenses,
		NetIncome:             d.NetIncome,
		ZakatRate:             d.ZakatRate,
		ZakatDue:              d.ZakatDue,
		TotalNazerShare:       d.TotalNazerShare,
		TotalCharity:          d.TotalCharity,
		CorpusCarriedForward:  d.CorpusCarriedForward,
		TotalDistributed:      d.TotalDistributed,
		ApprovedDistributions: d.ApprovedDistributions,
		PostedEntries:         d.PostedEntries,
		ComputedAt:            d.ComputedAt,
	}
}

func ToDomainClosure(m models.FiscalYearClosure) domain.ClosureSummary {
	return domain.ClosureSummary{
		FiscalYearID:          m.FiscalYearID,
		TotalRevenues:         m.TotalRevenues,
		TotalExpenses:         m.TotalExpenses,
		NetIncome:             m.NetIncome,
		ZakatRate:             m.ZakatRate,
		ZakatDue:              m.ZakatDue,
		TotalNazerShare:       m.TotalNazerShare,
		TotalCharity:          m.TotalCharity,
		CorpusCarriedForward:  m.CorpusCarriedForward,
		TotalDistributed:      m.TotalDistributed,
		ApprovedDistributions: m.ApprovedDistributions,
		PostedEntries:         m.PostedEntries,
		ComputedAt:            m.ComputedAt,
	}
}
