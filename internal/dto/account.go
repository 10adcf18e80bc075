package dto

import (
	"github.com/ledgerly/bankrecon_app/internal/core/domain"
)

// AccountResponse defines the data returned for a chart-of-accounts entry.
type AccountResponse struct {
	AccountID   string `json:"accountID"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	AccountType string `json:"accountType"`
	IsActive    bool   `json:"isActive"`
}

// ToAccountResponse converts a domain account to its response DTO.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:   a.AccountID,
		Code:        a.Code,
		Name:        a.Name,
		AccountType: string(a.AccountType),
		IsActive:    a.IsActive,
	}
}

// ToAccountResponses converts a slice of domain accounts to DTOs.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	responses := make([]AccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = ToAccountResponse(&accounts[i])
	}
	return responses
}
