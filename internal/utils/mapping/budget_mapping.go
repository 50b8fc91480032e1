package mapping

import (
	"github.com/awqaf-platform/waqf_ledger/internal/core/domain"
	"github.com/awqaf-platform/waqf_ledger/internal/models"
)

func ToModelBudget(d domain.Budget) models.Budget {
	return models.Budget{
		BudgetID:       d.BudgetID,
		AccountID:      d.AccountID,
		FiscalYearID:   d.FiscalYearID,
		PeriodType:     string(d.PeriodType),
		PeriodNumber:   d.PeriodNumber,
		BudgetedAmount: d.BudgetedAmount,
		Notes:          NullableString(d.Notes),
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainBudget(m models.Budget) domain.Budget {
	return domain.Budget{
		BudgetID:       m.BudgetID,
		AccountID:      m.AccountID,
		FiscalYearID:   m.FiscalYearID,
		PeriodType:     domain.PeriodType(m.PeriodType),
		PeriodNumber:   m.PeriodNumber,
		BudgetedAmount: m.BudgetedAmount,
		Notes:          StringValue(m.Notes),
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}
