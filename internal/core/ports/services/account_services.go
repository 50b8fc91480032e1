package services

import (
	"context"

	"github.com/awqaf-platform/waqf_ledger/internal/core/domain"
	"github.com/awqaf-platform/waqf_ledger/internal/dto"
)

// AccountReaderSvc defines read operations for the chart of accounts
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its ID.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// ListAccounts returns the chart ordered by code.
	ListAccounts(ctx context.Context, includeArchived bool) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for the chart of accounts
type AccountWriterSvc interface {
	// CreateAccount validates the code hierarchy and persists a new account.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error)

	// UpdateAccount changes descriptive fields only.
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)

	// ArchiveAccount archives an account that carries no balance and no active children.
	ArchiveAccount(ctx context.Context, accountID string, reason string, userID string) error
}

// AccountBalanceSvc derives balances from posted journal lines.
type AccountBalanceSvc interface {
	// GetAccountBalance returns the signed balance of a leaf, or the recursive sum for a header.
	GetAccountBalance(ctx context.Context, accountID string) (*domain.AccountBalance, error)

	// GetTrialBalance lists posted totals per leaf for one fiscal year.
	GetTrialBalance(ctx context.Context, fiscalYearID string) (*domain.TrialBalance, error)
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
	AccountBalanceSvc
}
