package services

import (
	portsrepo "github.com/awqaf-platform/waqf_ledger/internal/core/ports/repositories"
	portssvc "github.com/awqaf-platform/waqf_ledger/internal/core/ports/services"
	"github.com/awqaf-platform/waqf_ledger/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// events may be nil, in which case no change notifications are emitted.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, events portssvc.EventPublisher) *portssvc.ServiceContainer {
	opts := []Option{}
	if events != nil {
		opts = append(opts, WithEventPublisher(events))
	}
	policy := cfg.ApprovalPolicy()

	return &portssvc.ServiceContainer{
		Account: NewAccountService(repos.AccountRepo, repos.JournalRepo, opts...),
		Journal: NewJournalService(repos.JournalRepo, repos.AccountRepo, repos.FiscalYearRepo, opts...),
		Budget: NewBudgetService(
			repos.BudgetRepo,
			repos.AccountRepo,
			repos.FiscalYearRepo,
			repos.JournalRepo,
			opts...,
		),
		Reconciliation: NewReconciliationService(repos.BankRepo, repos.JournalRepo, repos.AccountRepo, opts...),
		FiscalYear: NewFiscalYearService(
			repos.FiscalYearRepo,
			repos.JournalRepo,
			repos.DistributionRepo,
			cfg.ZakatRate(),
			cfg.CloseTimeout,
			opts...,
		),
		Beneficiary: NewBeneficiaryService(repos.BeneficiaryRepo, opts...),
		Distribution: NewDistributionService(
			repos.DistributionRepo,
			repos.BeneficiaryRepo,
			repos.FiscalYearRepo,
			repos.JournalRepo,
			cfg.SplitConfig(),
			policy,
			opts...,
		),
		Approval: NewApprovalService(repos.DistributionRepo, repos.FiscalYearRepo, repos.JournalRepo, policy, opts...),
	}
}
