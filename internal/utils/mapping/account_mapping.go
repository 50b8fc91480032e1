package mapping

import (
	"github.com/awqaf-platform/waqf_ledger/internal/core/domain"
	"github.com/awqaf-platform/waqf_ledger/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:       d.AccountID,
		Code:            d.Code,
		Name:            d.Name,
		AccountType:     string(d.AccountType),
		Nature:          string(d.Nature),
		ParentAccountID: NullableString(d.ParentAccountID),
		IsHeader:        d.IsHeader,
		Description:     NullableString(d.Description),
		ArchivalColumns: ToModelArchival(d.Archival),
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:       m.AccountID,
		Code:            m.Code,
		Name:            m.Name,
		AccountType:     domain.AccountType(m.AccountType),
		Nature:          domain.AccountNature(m.Nature),
		ParentAccountID: StringValue(m.ParentAccountID),
		IsHeader:        m.IsHeader,
		Description:     StringValue(m.Description),
		Archival:        ToDomainArchival(m.ArchivalColumns),
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountSlice converts a slice of model Accounts to a slice of domain Accounts
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
