package pgsql

import (
	portsrepo "github.com/awqaf-platform/waqf_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	journalRepo := newPgxJournalRepository(dbPool, accountRepo)
	fiscalYearRepo := newPgxFiscalYearRepository(dbPool)
	budgetRepo := newPgxBudgetRepository(dbPool)
	bankRepo := newPgxBankRepository(dbPool)
	beneficiaryRepo := newPgxBeneficiaryRepository(dbPool)
	distributionRepo := newPgxDistributionRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:      accountRepo,
		JournalRepo:      journalRepo,
		FiscalYearRepo:   fiscalYearRepo,
		BudgetRepo:       budgetRepo,
		BankRepo:         bankRepo,
		BeneficiaryRepo:  beneficiaryRepo,
		DistributionRepo: distributionRepo,
	}
}
