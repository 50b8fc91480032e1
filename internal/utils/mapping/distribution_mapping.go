package mapping

import (
	"github.com/awqaf-platform/waqf_ledger/internal/core/domain"
	"github.com/awqaf-platform/waqf_ledger/internal/models"
)

func ToModelBeneficiary(d domain.Beneficiary) models.Beneficiary {
	return models.Beneficiary{
		BeneficiaryID:   d.BeneficiaryID,
		Name:            d.Name,
		BeneficiaryType: string(d.BeneficiaryType),
		SharePercentage: d.SharePercentage,
		ArchivalColumns: ToModelArchival(d.Archival),
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainBeneficiary(m models.Beneficiary) domain.Beneficiary {
	return domain.Beneficiary{
		BeneficiaryID:   m.BeneficiaryID,
		Name:            m.Name,
		BeneficiaryType: domain.BeneficiaryType(m.BeneficiaryType),
		SharePercentage: m.SharePercentage,
		Archival:        ToDomainArchival(m.ArchivalColumns),
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelDistribution flattens the header. The ledger snapshot is stored as
// the revenue and expense totals plus the posted entry count.
func ToModelDistribution(d domain.Distribution) models.Distribution {
	return models.Distribution{
		DistributionID:        d.DistributionID,
		FiscalYearID:          d.Period.FiscalYearID,
		PeriodStart:           d.Period.PeriodStart,
		PeriodEnd:             d.Period.PeriodEnd,
		Revision:              d.Revision,
		TotalRevenues:         d.TotalRevenues,
		TotalExpenses:         d.TotalExpenses,
		NetRevenues:           d.NetRevenues,
		NazerShare:            d.NazerShare,
		WaqifCharity:          d.WaqifCharity,
		WaqfCorpus:            d.WaqfCorpus,
		DistributableAmount:   d.DistributableAmount,
		BeneficiariesCount:    d.BeneficiariesCount,
		NazerPercent:          d.Split.NazerPercent,
		CharityPercent:        d.Split.CharityPercent,
		CorpusPercent:         d.Split.CorpusPercent,
		SnapshotPostedEntries: d.Snapshot.PostedEntries,
		Status:                string(d.Status),
		DecidedAt:             d.DecidedAt,
		VouchersIssued:        d.VouchersIssued,
		Version:               d.Version,
		AuditFields:           ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainDistribution(m models.Distribution) domain.Distribution {
	return domain.Distribution{
		DistributionID: m.DistributionID,
		Period: domain.DistributionPeriod{
			FiscalYearID: m.FiscalYearID,
			PeriodStart:  m.PeriodStart,
			PeriodEnd:    m.PeriodEnd,
		},
		Revision:            m.Revision,
		TotalRevenues:       m.TotalRevenues,
		TotalExpenses:       m.TotalExpenses,
		NetRevenues:         m.NetRevenues,
		NazerShare:          m.NazerShare,
		WaqifCharity:        m.WaqifCharity,
		WaqfCorpus:          m.WaqfCorpus,
		DistributableAmount: m.DistributableAmount,
		BeneficiariesCount:  m.BeneficiariesCount,
		Split: domain.SplitConfig{
			NazerPercent:   m.NazerPercent,
			CharityPercent: m.CharityPercent,
			CorpusPercent:  m.CorpusPercent,
		},
		Snapshot: domain.LedgerSnapshot{
			TotalRevenues: m.TotalRevenues,
			TotalExpenses: m.TotalExpenses,
			PostedEntries: m.SnapshotPostedEntries,
		},
		Status:         domain.DistributionStatus(m.Status),
		DecidedAt:      m.DecidedAt,
		VouchersIssued: m.VouchersIssued,
		Version:        m.Version,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

func ToModelDistributionDetail(d domain.DistributionDetail) models.DistributionDetail {
	return models.DistributionDetail{
		DetailID:        d.DetailID,
		DistributionID:  d.DistributionID,
		Revision:        d.Revision,
		BeneficiaryID:   d.BeneficiaryID,
		BeneficiaryType: string(d.BeneficiaryType),
		SharePercentage: d.SharePercentage,
		AllocatedAmount: d.AllocatedAmount,
		ResidualApplied: d.ResidualApplied,
		PaymentStatus:   string(d.PaymentStatus),
		PaymentDate:     d.PaymentDate,
		CancelReason:    NullableString(d.CancelReason),
		VoucherNumber:   NullableString(d.VoucherNumber),
	}
}

func ToDomainDistributionDetail(m models.DistributionDetail) domain.DistributionDetail {
	return domain.DistributionDetail{
		DetailID:        m.DetailID,
		DistributionID:  m.DistributionID,
		Revision:        m.Revision,
		BeneficiaryID:   m.BeneficiaryID,
		BeneficiaryType: domain.BeneficiaryType(m.BeneficiaryType),
		SharePercentage: m.SharePercentage,
		AllocatedAmount: m.AllocatedAmount,
		ResidualApplied: m.ResidualApplied,
		PaymentStatus:   domain.PaymentStatus(m.PaymentStatus),
		PaymentDate:     m.PaymentDate,
		CancelReason:    StringValue(m.CancelReason),
		VoucherNumber:   StringValue(m.VoucherNumber),
	}
}

func ToModelApproval(d domain.Approval) models.Approval {
	return models.Approval{
		ApprovalID:     d.ApprovalID,
		DistributionID: d.DistributionID,
		Revision:       d.Revision,
		Level:          d.Level,
		Role:           string(d.Role),
		Status:         string(d.Status),
		DecidedBy:      NullableString(d.DecidedBy),
		DecidedAt:      d.DecidedAt,
		Note:           NullableString(d.Note),
		CreatedAt:      d.CreatedAt,
	}
}

func ToDomainApproval(m models.Approval) domain.Approval {
	return domain.Approval{
		ApprovalID:     m.ApprovalID,
		DistributionID: m.DistributionID,
		Revision:       m.Revision,
		Level:          m.Level,
		Role:           domain.ApproverRole(m.Role),
		Status:         domain.ApprovalStatus(m.Status),
		DecidedBy:      StringValue(m.DecidedBy),
		DecidedAt:      m.DecidedAt,
		Note:           StringValue(m.Note),
		CreatedAt:      m.CreatedAt,
	}
}
