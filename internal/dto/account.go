package dto

import (
	"time"

	"github.com/awqaf-platform/waqf_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Code            string               `json:"code" binding:"required"`
	Name            string               `json:"name" binding:"required"`
	AccountType     domain.AccountType   `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	Nature          domain.AccountNature `json:"nature" binding:"omitempty,oneof=DEBIT CREDIT"` // defaults from type
	ParentAccountID *string              `json:"parentAccountID"`
	IsHeader        bool                 `json:"isHeader"`
	Description     string               `json:"description"`
}

// UpdateAccountRequest defines the data allowed for updating an account.
type UpdateAccountRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// ArchiveRequest carries the reason for archiving an entity.
type ArchiveRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID       string               `json:"accountID"`
	Code            string               `json:"code"`
	Name            string               `json:"name"`
	AccountType     domain.AccountType   `json:"accountType"`
	Nature          domain.AccountNature `json:"nature"`
	ParentAccountID string               `json:"parentAccountID"`
	IsHeader        bool                 `json:"isHeader"`
	Description     string               `json:"description"`
	Archival        domain.ArchivalState `json:"archival"`
	CreatedAt       time.Time            `json:"createdAt"`
	CreatedBy       string               `json:"createdBy"`
	LastUpdatedAt   time.Time            `json:"lastUpdatedAt"`
	LastUpdatedBy   string               `json:"lastUpdatedBy"`
}

// AccountBalanceResponse is returned by the balance endpoint.
type AccountBalanceResponse struct {
	AccountID string          `json:"accountID"`
	Code      string          `json:"code"`
	IsHeader  bool            `json:"isHeader"`
	Balance   decimal.Decimal `json:"balance"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:       acc.AccountID,
		Code:            acc.Code,
		Name:            acc.Name,
		AccountType:     acc.AccountType,
		Nature:          acc.Nature,
		ParentAccountID: acc.ParentAccountID,
		IsHeader:        acc.IsHeader,
		Description:     acc.Description,
		Archival:        acc.Archival,
		CreatedAt:       acc.CreatedAt,
		CreatedBy:       acc.CreatedBy,
		LastUpdatedAt:   acc.LastUpdatedAt,
		LastUpdatedBy:   acc.LastUpdatedBy,
	}
}

// ToAccountResponses converts a slice of domain.Account.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	out := make([]AccountResponse, len(accounts))
	for i := range accounts {
		out[i] = ToAccountResponse(&accounts[i])
	}
	return out
}

func ToAccountBalanceResponse(b *domain.AccountBalance) AccountBalanceResponse {
	return AccountBalanceResponse{
		AccountID: b.AccountID,
		Code:      b.Code,
		IsHeader:  b.IsHeader,
		Balance:   b.Balance,
	}
}
