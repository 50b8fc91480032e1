package repositories

import (
	"context"

	"github.com/awqaf-platform/waqf_ledger/internal/core/domain"
)

// AccountReader defines read operations for the chart of accounts
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByCode retrieves an account by its hierarchical code.
	FindAccountByCode(ctx context.Context, code string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts keyed by ID. Missing IDs are absent from the map.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts returns the chart ordered by code.
	ListAccounts(ctx context.Context, includeArchived bool) ([]domain.Account, error)

	// ListChildren returns the direct children of a header account.
	ListChildren(ctx context.Context, parentAccountID string) ([]domain.Account, error)
}

// AccountWriter defines write operations for the chart of accounts
type AccountWriter interface {
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates mutable descriptive fields only.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// ArchiveAccount moves an active account to the archived state.
	ArchiveAccount(ctx context.Context, accountID string, state domain.ArchivalState) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
