package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/omarrayoubb/gateway-sub003/internal/apperrors"
	"github.com/omarrayoubb/gateway-sub003/internal/core/domain"
	portsrepo "github.com/omarrayoubb/gateway-sub003/internal/core/ports/repositories"
	portssvc "github.com/omarrayoubb/gateway-sub003/internal/core/ports/services"
	"github.com/omarrayoubb/gateway-sub003/internal/dto"
)

type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates the chart-of-accounts lookup service.
func NewAccountService(repo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{
		BaseService: newBaseService(),
		accountRepo: repo,
	}
}

func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	if !req.AccountType.IsValid() {
		return nil, apperrors.NewValidationError("unknown account type %q", req.AccountType)
	}
	if strings.TrimSpace(req.Code) == "" || strings.TrimSpace(req.Name) == "" {
		return nil, apperrors.NewValidationError("account code and name are required")
	}
	if !domain.FitsAmountScale(req.Balance) {
		return nil, apperrors.NewValidationError("balance allows at most %d decimal places", domain.AmountScale)
	}

	now := s.now()
	account := domain.Account{
		AccountID:      uuid.NewString(),
		OrganizationID: req.OrganizationID,
		Code:           strings.TrimSpace(req.Code),
		Name:           strings.TrimSpace(req.Name),
		AccountType:    req.AccountType,
		Subtype:        req.Subtype,
		CurrencyCode:   strings.ToUpper(req.CurrencyCode),
		Description:    req.Description,
		IsActive:       true,
		Balance:        req.Balance,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save account", slog.String("code", account.Code))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Account created", slog.String("account_id", account.AccountID), slog.String("code", account.Code))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		// ErrNotFound is an expected outcome
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by ID", slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

func (s *accountService) GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find accounts by IDs", slog.Int("count", len(accountIDs)))
		}
		return nil, err
	}
	return accounts, nil
}

func (s *accountService) FindAccountByTypeAndSubtype(ctx context.Context, organizationID *string, accountType domain.AccountType, subtype string) (*domain.Account, error) {
	if !accountType.IsValid() {
		return nil, apperrors.NewValidationError("unknown account type %q", accountType)
	}
	account, err := s.accountRepo.FindAccountByTypeAndSubtype(ctx, organizationID, accountType, subtype)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find default account",
				slog.String("account_type", string(accountType)), slog.String("subtype", subtype))
		}
		return nil, err
	}
	return account, nil
}

func (s *accountService) ListAccounts(ctx context.Context, organizationID *string, accountType *domain.AccountType) ([]domain.Account, error) {
	if accountType != nil && !accountType.IsValid() {
		return nil, apperrors.NewValidationError("unknown account type %q", *accountType)
	}
	accounts, err := s.accountRepo.ListAccounts(ctx, organizationID, accountType)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts")
		return nil, err
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	s.LogDebug(ctx, "Accounts listed", slog.Int("count", len(accounts)))
	return accounts, nil
}
