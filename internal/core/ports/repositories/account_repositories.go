package repositories

import (
	"context"

	"github.com/omarrayoubb/gateway-sub003/internal/core/domain"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts by their IDs. Missing IDs yield ErrNotFound.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// FindAccountByTypeAndSubtype returns the first active account (by code) with the given
	// type and subtype in the organization scope.
	FindAccountByTypeAndSubtype(ctx context.Context, organizationID *string, accountType domain.AccountType, subtype string) (*domain.Account, error)

	// ListAccounts lists accounts ordered by code, optionally restricted to one type.
	// A nil organizationID lists every account regardless of scope.
	ListAccounts(ctx context.Context, organizationID *string, accountType *domain.AccountType) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
