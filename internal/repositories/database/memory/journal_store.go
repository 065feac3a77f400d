package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/omarrayoubb/gateway-sub003/internal/apperrors"
	"github.com/omarrayoubb/gateway-sub003/internal/core/domain"
	portsrepo "github.com/omarrayoubb/gateway-sub003/internal/core/ports/repositories"
	"github.com/omarrayoubb/gateway-sub003/internal/utils/pagination"
)

func (s *Store) FindJournalEntryByID(_ context.Context, journalEntryID string) (*domain.JournalEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[journalEntryID]
	if !ok {
		return nil, apperrors.NewNotFoundError("journal entry", journalEntryID)
	}
	e = cloneEntry(e)
	sort.SliceStable(e.Lines, func(i, j int) bool { return e.Lines[i].LineNumber < e.Lines[j].LineNumber })
	return &e, nil
}

func (s *Store) EntryNumberExists(_ context.Context, organizationID *string, entryNumber string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entryNumberTakenLocked(organizationID, entryNumber, ""), nil
}

func (s *Store) entryNumberTakenLocked(organizationID *string, entryNumber, exceptID string) bool {
	for id, e := range s.entries {
		if id != exceptID && e.EntryNumber == entryNumber && domain.SameScope(e.OrganizationID, organizationID) {
			return true
		}
	}
	return false
}

func (s *Store) ListJournalEntries(_ context.Context, filter portsrepo.JournalEntryListFilter, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	var cursor *pagination.Cursor
	if nextToken != nil && *nextToken != "" {
		c, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		cursor = &c
	}

	s.mu.RLock()
	matched := make([]domain.JournalEntry, 0)
	for _, e := range s.entries {
		if !matchesFilter(e, filter) {
			continue
		}
		if cursor != nil && !cursor.Before(e.EntryDate, e.CreatedAt, e.JournalEntryID) {
			continue
		}
		e.Lines = nil
		matched = append(matched, e)
	}
	s.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if !a.EntryDate.Equal(b.EntryDate) {
			return a.EntryDate.After(b.EntryDate)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.JournalEntryID > b.JournalEntryID
	})

	if limit <= 0 || len(matched) <= limit {
		return matched, nil, nil
	}
	page := matched[:limit]
	last := page[len(page)-1]
	token := pagination.EncodeToken(pagination.Cursor{EntryDate: last.EntryDate, CreatedAt: last.CreatedAt, ID: last.JournalEntryID})
	return page, &token, nil
}

func matchesFilter(e domain.JournalEntry, f portsrepo.JournalEntryListFilter) bool {
	if f.OrganizationID != nil && !domain.SameScope(e.OrganizationID, f.OrganizationID) {
		return false
	}
	if f.Status != nil && e.Status != *f.Status {
		return false
	}
	if f.EntryType != nil && e.EntryType != *f.EntryType {
		return false
	}
	d := domain.DateOf(e.EntryDate)
	if f.From != nil && d.Before(domain.DateOf(*f.From)) {
		return false
	}
	if f.To != nil && d.After(domain.DateOf(*f.To)) {
		return false
	}
	return true
}

func touchesAccount(e domain.JournalEntry, accountID string) bool {
	for _, l := range e.Lines {
		if l.AccountID == accountID {
			return true
		}
	}
	return false
}

func (s *Store) FindPostedEntriesByAccount(_ context.Context, accountID string) ([]domain.JournalEntry, error) {
	s.mu.RLock()
	out := make([]domain.JournalEntry, 0)
	for _, e := range s.entries {
		if e.Status == domain.StatusPosted && touchesAccount(e, accountID) {
			out = append(out, cloneEntry(e))
		}
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.EntryDate.Equal(b.EntryDate) {
			return a.EntryDate.Before(b.EntryDate)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.JournalEntryID < b.JournalEntryID
	})
	return out, nil
}

func (s *Store) CountDraftEntriesForAccount(_ context.Context, accountID string, from *time.Time) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, e := range s.entries {
		if e.Status != domain.StatusDraft || !touchesAccount(e, accountID) {
			continue
		}
		if from != nil && domain.DateOf(e.EntryDate).Before(domain.DateOf(*from)) {
			continue
		}
		n++
	}
	return n, nil
}

func (s *Store) CreateJournalEntry(ctx context.Context, entry domain.JournalEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[entry.JournalEntryID]; ok {
		return fmt.Errorf("%w: journal entry %s", apperrors.ErrDuplicate, entry.JournalEntryID)
	}
	if s.entryNumberTakenLocked(entry.OrganizationID, entry.EntryNumber, "") {
		return fmt.Errorf("%w: entry number %s", apperrors.ErrDuplicate, entry.EntryNumber)
	}
	s.recordEntryLocked(ctx, entry.JournalEntryID)
	s.entries[entry.JournalEntryID] = cloneEntry(entry)
	return nil
}

func (s *Store) UpdateJournalEntry(ctx context.Context, entry domain.JournalEntry, replaceLines bool, expectedVersion int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.checkVersionLocked(entry.JournalEntryID, expectedVersion)
	if err != nil {
		return err
	}
	if entry.EntryNumber != existing.EntryNumber && s.entryNumberTakenLocked(entry.OrganizationID, entry.EntryNumber, entry.JournalEntryID) {
		return fmt.Errorf("%w: entry number %s", apperrors.ErrDuplicate, entry.EntryNumber)
	}

	updated := cloneEntry(entry)
	if !replaceLines {
		updated.Lines = existing.Lines
	}
	updated.CreatedAt = existing.CreatedAt
	updated.CreatedBy = existing.CreatedBy
	updated.Version = expectedVersion + 1
	s.recordEntryLocked(ctx, entry.JournalEntryID)
	s.entries[entry.JournalEntryID] = updated
	return nil
}

func (s *Store) UpdateJournalEntryStatus(ctx context.Context, entry domain.JournalEntry, expectedVersion int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.checkVersionLocked(entry.JournalEntryID, expectedVersion)
	if err != nil {
		return err
	}
	existing.Status = entry.Status
	existing.TotalDebit = entry.TotalDebit
	existing.TotalCredit = entry.TotalCredit
	existing.IsBalanced = entry.IsBalanced
	existing.Notes = entry.Notes
	existing.PostedAt = entry.PostedAt
	existing.VoidedAt = entry.VoidedAt
	existing.LastUpdatedAt = entry.LastUpdatedAt
	existing.LastUpdatedBy = entry.LastUpdatedBy
	existing.Version = expectedVersion + 1
	s.recordEntryLocked(ctx, entry.JournalEntryID)
	s.entries[entry.JournalEntryID] = existing
	return nil
}

func (s *Store) checkVersionLocked(id string, expectedVersion int) (domain.JournalEntry, error) {
	existing, ok := s.entries[id]
	if !ok {
		return domain.JournalEntry{}, apperrors.NewNotFoundError("journal entry", id)
	}
	if existing.Version != expectedVersion {
		return domain.JournalEntry{}, fmt.Errorf("%w: journal entry %s is at version %d, expected %d",
			apperrors.ErrConflict, id, existing.Version, expectedVersion)
	}
	return existing, nil
}

func (s *Store) DeleteJournalEntry(ctx context.Context, journalEntryID string, expectedVersion int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.checkVersionLocked(journalEntryID, expectedVersion)
	if err != nil {
		return err
	}
	if err := existing.CanRemove(); err != nil {
		return err
	}
	s.recordEntryLocked(ctx, journalEntryID)
	delete(s.entries, journalEntryID)
	return nil
}
