package services

import (
	"context"

	"github.com/omarrayoubb/gateway-sub003/internal/core/domain"
	"github.com/omarrayoubb/gateway-sub003/internal/dto"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its unique identifier.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// GetAccountsByIDs retrieves multiple accounts by their IDs.
	GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// FindAccountByTypeAndSubtype locates a default account (cash, AR, AP, ...) in the organization scope.
	FindAccountByTypeAndSubtype(ctx context.Context, organizationID *string, accountType domain.AccountType, subtype string) (*domain.Account, error)

	// ListAccounts lists accounts, optionally restricted to a type.
	ListAccounts(ctx context.Context, organizationID *string, accountType *domain.AccountType) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccount persists a new account.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error)
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
