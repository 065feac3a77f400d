package dto

import (
	"time"

	"github.com/omarrayoubb/gateway-sub003/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	OrganizationID *string            `json:"organizationID"` // Optional, nil = global scope
	Code           string             `json:"code" binding:"required,max=50"`
	Name           string             `json:"name" binding:"required,max=255"`
	AccountType    domain.AccountType `json:"accountType" binding:"required,oneof=asset liability equity revenue expense"`
	Subtype        string             `json:"subtype" binding:"max=100"`
	CurrencyCode   string             `json:"currencyCode" binding:"required,len=3"`
	Description    string             `json:"description"`
	Balance        decimal.Decimal    `json:"balance"` // Opening snapshot set by an administrator
}

// FindAccountParams locates a default account by type and subtype.
type FindAccountParams struct {
	OrganizationID *string `form:"organizationID"`
	Type           string  `form:"type" binding:"required,oneof=asset liability equity revenue expense"`
	Subtype        string  `form:"subtype" binding:"required"`
}

// ListAccountsParams defines the query parameters for listing accounts.
type ListAccountsParams struct {
	OrganizationID *string `form:"organizationID"`
	Type           string  `form:"type" binding:"omitempty,oneof=asset liability equity revenue expense"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID      string             `json:"accountID"`
	OrganizationID *string            `json:"organizationID,omitempty"`
	Code           string             `json:"code"`
	Name           string             `json:"name"`
	AccountType    domain.AccountType `json:"accountType"`
	Subtype        string             `json:"subtype"`
	CurrencyCode   string             `json:"currencyCode"`
	Description    string             `json:"description"`
	IsActive       bool               `json:"isActive"`
	Balance        decimal.Decimal    `json:"balance"`
	CreatedAt      time.Time          `json:"createdAt"`
	CreatedBy      string             `json:"createdBy"`
	LastUpdatedAt  time.Time          `json:"lastUpdatedAt"`
	LastUpdatedBy  string             `json:"lastUpdatedBy"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:      acc.AccountID,
		OrganizationID: acc.OrganizationID,
		Code:           acc.Code,
		Name:           acc.Name,
		AccountType:    acc.AccountType,
		Subtype:        acc.Subtype,
		CurrencyCode:   acc.CurrencyCode,
		Description:    acc.Description,
		IsActive:       acc.IsActive,
		Balance:        acc.Balance,
		CreatedAt:      acc.CreatedAt,
		CreatedBy:      acc.CreatedBy,
		LastUpdatedAt:  acc.LastUpdatedAt,
		LastUpdatedBy:  acc.LastUpdatedBy,
	}
}
