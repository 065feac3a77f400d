package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/omarrayoubb/gateway-sub003/internal/apperrors"
	"github.com/omarrayoubb/gateway-sub003/internal/core/domain"
)

func (s *Store) SaveAccount(ctx context.Context, account domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[account.AccountID]; ok {
		return fmt.Errorf("%w: account %s", apperrors.ErrDuplicate, account.AccountID)
	}
	for _, a := range s.accounts {
		if a.Code == account.Code && domain.SameScope(a.OrganizationID, account.OrganizationID) {
			return fmt.Errorf("%w: account code %s", apperrors.ErrDuplicate, account.Code)
		}
	}
	s.recordAccountLocked(ctx, account.AccountID)
	s.accounts[account.AccountID] = account
	return nil
}

func (s *Store) FindAccountByID(_ context.Context, accountID string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.accounts[accountID]
	if !ok {
		return nil, apperrors.NewNotFoundError("account", accountID)
	}
	return &a, nil
}

func (s *Store) FindAccountsByIDs(_ context.Context, accountIDs []string) (map[string]domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]domain.Account, len(accountIDs))
	for _, id := range accountIDs {
		a, ok := s.accounts[id]
		if !ok {
			return nil, apperrors.NewNotFoundError("account", id)
		}
		out[id] = a
	}
	return out, nil
}

func (s *Store) FindAccountByTypeAndSubtype(_ context.Context, organizationID *string, accountType domain.AccountType, subtype string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var match *domain.Account
	for _, a := range s.accounts {
		if !a.IsActive || a.AccountType != accountType || a.Subtype != subtype || !domain.SameScope(a.OrganizationID, organizationID) {
			continue
		}
		if match == nil || a.Code < match.Code {
			a := a
			match = &a
		}
	}
	if match == nil {
		return nil, apperrors.NewNotFoundError("account", string(accountType)+"/"+subtype)
	}
	return match, nil
}

func (s *Store) ListAccounts(_ context.Context, organizationID *string, accountType *domain.AccountType) ([]domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		if organizationID != nil && !domain.SameScope(a.OrganizationID, organizationID) {
			continue
		}
		if accountType != nil && a.AccountType != *accountType {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Code != out[j].Code {
			return out[i].Code < out[j].Code
		}
		return out[i].AccountID < out[j].AccountID
	})
	return out, nil
}
