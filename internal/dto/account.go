package dto

import (
	"github.com/lukmanha083/kidkazz-ledger/internal/core/domain"
)

// CreateAccountRequest defines the payload for creating a chart-of-accounts node.
type CreateAccountRequest struct {
	Code            string `json:"code" binding:"required"`
	Name            string `json:"name" binding:"required"`
	AccountType     string `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE COGS EXPENSE"`
	AccountCategory string `json:"accountCategory"`
	NormalBalance   string `json:"normalBalance" binding:"omitempty,oneof=DEBIT CREDIT"` // Defaults by account type when omitted
	ParentAccountID string `json:"parentAccountID"`
	IsDetailAccount *bool  `json:"isDetailAccount"` // Defaults to true
}

// UpdateAccountRequest defines the updatable fields of an account. Structural
// fields (normal balance, detail flag) are rejected once postings exist.
type UpdateAccountRequest struct {
	Name            *string `json:"name"`
	AccountCategory *string `json:"accountCategory"`
	IsDetailAccount *bool   `json:"isDetailAccount"`
	NormalBalance   *string `json:"normalBalance" binding:"omitempty,oneof=DEBIT CREDIT"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID       string `json:"accountID"`
	Code            string `json:"code"`
	Name            string `json:"name"`
	AccountType     string `json:"accountType"`
	AccountCategory string `json:"accountCategory,omitempty"`
	NormalBalance   string `json:"normalBalance"`
	ParentAccountID string `json:"parentAccountID,omitempty"`
	Level           int    `json:"level"`
	IsDetailAccount bool   `json:"isDetailAccount"`
	Status          string `json:"status"`
}

// AccountNode is an account with its children, used by the tree endpoint.
type AccountNode struct {
	AccountResponse
	Children []AccountNode `json:"children,omitempty"`
}

// ToAccountResponse converts a domain Account to its response DTO.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:       a.AccountID,
		Code:            a.Code,
		Name:            a.Name,
		AccountType:     string(a.AccountType),
		AccountCategory: a.AccountCategory,
		NormalBalance:   string(a.NormalBalance),
		ParentAccountID: a.ParentAccountID,
		Level:           a.Level,
		IsDetailAccount: a.IsDetailAccount,
		Status:          string(a.Status),
	}
}

// ToAccountResponses converts a slice of domain Accounts to response DTOs.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	responses := make([]AccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = ToAccountResponse(&accounts[i])
	}
	return responses
}
