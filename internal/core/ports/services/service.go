package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Account        AccountSvcFacade
	Journal        JournalSvcFacade
	Budget         BudgetSvcFacade
	Reconciliation ReconciliationSvcFacade
	FiscalYear     FiscalYearSvcFacade
	Beneficiary    BeneficiarySvcFacade
	Distribution   DistributionSvcFacade
	Approval       ApprovalSvcFacade
}
