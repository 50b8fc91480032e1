package mapping

import (
	"github.com/awqaf-platform/waqf_ledger/internal/core/domain"
	"github.com/awqaf-platform/waqf_ledger/internal/models"
)

// ToModelAuditFields converts a domain AuditFields to a model AuditFields
func ToModelAuditFields(d domain.AuditFields) models.AuditFields {
	return models.AuditFields{
		CreatedAt:     d.CreatedAt,
		CreatedBy:     d.CreatedBy,
		LastUpdatedAt: d.LastUpdatedAt,
		LastUpdatedBy: d.LastUpdatedBy,
	}
}

// ToDomainAuditFields converts a model AuditFields to a domain AuditFields
func ToDomainAuditFields(m models.AuditFields) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     m.CreatedAt,
		CreatedBy:     m.CreatedBy,
		LastUpdatedAt: m.LastUpdatedAt,
		LastUpdatedBy: m.LastUpdatedBy,
	}
}

// ToModelArchival converts a domain ArchivalState to its columns.
func ToModelArchival(d domain.ArchivalState) models.ArchivalColumns {
	return models.ArchivalColumns{
		ArchivalStatus: string(d.Status),
		ArchiveReason:  NullableString(d.Reason),
		ArchivedAt:     d.ArchivedAt,
		ArchivedBy:     NullableString(d.ArchivedBy),
	}
}

// ToDomainArchival converts archival columns to a domain ArchivalState.
func ToDomainArchival(m models.ArchivalColumns) domain.ArchivalState {
	return domain.ArchivalState{
		Status:     domain.ArchivalStatus(m.ArchivalStatus),
		Reason:     StringValue(m.ArchiveReason),
		ArchivedAt: m.ArchivedAt,
		ArchivedBy: StringValue(m.ArchivedBy),
	}
}
