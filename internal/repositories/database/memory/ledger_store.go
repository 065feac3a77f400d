package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/omarrayoubb/gateway-sub003/internal/core/domain"
	"github.com/omarrayoubb/gateway-sub003/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

func (s *Store) ListLedgerEntriesByAccount(_ context.Context, accountID string, from, to *time.Time) ([]domain.GeneralLedgerEntry, error) {
	s.mu.RLock()
	out := make([]domain.GeneralLedgerEntry, 0)
	for _, r := range s.ledger {
		if r.AccountID == accountID && accounting.InWindow(r.TransactionDate, from, to) {
			out = append(out, s.withAccountLocked(r))
		}
	}
	s.mu.RUnlock()

	sortChronological(out)
	return out, nil
}

func (s *Store) SumNetSince(_ context.Context, accountID string, from *time.Time) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := make([]domain.GeneralLedgerEntry, 0)
	for _, r := range s.ledger {
		if r.AccountID == accountID {
			rows = append(rows, r)
		}
	}
	return accounting.NetSince(rows, from), nil
}

func (s *Store) ListLedgerEntriesByTransaction(_ context.Context, transactionID string, transactionType domain.TransactionType) ([]domain.GeneralLedgerEntry, error) {
	s.mu.RLock()
	out := make([]domain.GeneralLedgerEntry, 0)
	for _, r := range s.ledger {
		if r.TransactionID == transactionID && r.TransactionType == transactionType {
			out = append(out, s.withAccountLocked(r))
		}
	}
	s.mu.RUnlock()

	sortChronological(out)
	return out, nil
}

func (s *Store) CountUnprojectedPostedLines(_ context.Context, accountID string, from *time.Time) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	projected := make(map[string]bool)
	for _, r := range s.ledger {
		if r.AccountID == accountID && r.TransactionType == domain.TxnJournalEntry {
			projected[r.TransactionID] = true
		}
	}

	n := 0
	for _, e := range s.entries {
		if e.Status != domain.StatusPosted || projected[e.JournalEntryID] {
			continue
		}
		if from != nil && domain.DateOf(e.EntryDate).Before(domain.DateOf(*from)) {
			continue
		}
		for _, l := range e.Lines {
			if l.AccountID == accountID {
				n++
			}
		}
	}
	return n, nil
}

func (s *Store) UpsertLedgerEntries(ctx context.Context, rows []domain.GeneralLedgerEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for _, row := range rows {
		if id, ok := s.findLedgerKeyLocked(row.TransactionID, row.AccountID, row.TransactionType); ok {
			existing := s.ledger[id]
			existing.TransactionDate = domain.DateOf(row.TransactionDate)
			existing.Reference = row.Reference
			existing.Description = row.Description
			existing.Debit = row.Debit
			existing.Credit = row.Credit
			existing.UpdatedAt = now
			s.recordLedgerLocked(ctx, id)
			s.ledger[id] = existing
			continue
		}

		if row.EntryID == "" {
			row.EntryID = uuid.NewString()
		}
		row.TransactionDate = domain.DateOf(row.TransactionDate)
		row.Balance = decimal.Zero
		row.AccountCode, row.AccountName = "", ""
		row.CreatedAt = now
		row.UpdatedAt = now
		s.recordLedgerLocked(ctx, row.EntryID)
		s.ledger[row.EntryID] = row
	}
	return nil
}

func (s *Store) findLedgerKeyLocked(transactionID, accountID string, transactionType domain.TransactionType) (string, bool) {
	for id, r := range s.ledger {
		if r.TransactionID == transactionID && r.AccountID == accountID && r.TransactionType == transactionType {
			return id, true
		}
	}
	return "", false
}

func (s *Store) DeleteLedgerEntriesByTransaction(ctx context.Context, transactionID string, transactionType domain.TransactionType) (int64, error) {
	return s.deleteLedgerWhere(ctx, func(r domain.GeneralLedgerEntry) bool {
		return r.TransactionID == transactionID && r.TransactionType == transactionType
	}), nil
}

func (s *Store) DeleteStaleLedgerEntries(ctx context.Context, transactionID string, transactionType domain.TransactionType, keepAccountIDs []string) (int64, error) {
	keep := make(map[string]bool, len(keepAccountIDs))
	for _, id := range keepAccountIDs {
		keep[id] = true
	}
	return s.deleteLedgerWhere(ctx, func(r domain.GeneralLedgerEntry) bool {
		return r.TransactionID == transactionID && r.TransactionType == transactionType && !keep[r.AccountID]
	}), nil
}

func (s *Store) DeleteLedgerEntriesByAccount(ctx context.Context, accountID string, transactionType domain.TransactionType) (int64, error) {
	return s.deleteLedgerWhere(ctx, func(r domain.GeneralLedgerEntry) bool {
		return r.AccountID == accountID && r.TransactionType == transactionType
	}), nil
}

func (s *Store) deleteLedgerWhere(ctx context.Context, match func(domain.GeneralLedgerEntry) bool) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for id, r := range s.ledger {
		if match(r) {
			s.recordLedgerLocked(ctx, id)
			delete(s.ledger, id)
			n++
		}
	}
	return n
}

// withAccountLocked fills the joined account columns the way the SQL store does.
func (s *Store) withAccountLocked(r domain.GeneralLedgerEntry) domain.GeneralLedgerEntry {
	if a, ok := s.accounts[r.AccountID]; ok {
		r.AccountCode = a.Code
		r.AccountName = a.Name
	}
	return r
}

func sortChronological(rows []domain.GeneralLedgerEntry) {
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if !a.TransactionDate.Equal(b.TransactionDate) {
			return a.TransactionDate.Before(b.TransactionDate)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.EntryID < b.EntryID
	})
}
