package repositories

import (
	"context"
	"time"

	"github.com/omarrayoubb/gateway-sub003/internal/core/domain"
)

// JournalEntryListFilter narrows ListJournalEntries.
type JournalEntryListFilter struct {
	OrganizationID *string
	Status         *domain.EntryStatus
	EntryType      *domain.EntryType
	From           *time.Time
	To             *time.Time
}

// JournalEntryReader defines read operations for journal entry data
type JournalEntryReader interface {
	// FindJournalEntryByID retrieves a journal entry and its lines ordered by line number.
	FindJournalEntryByID(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error)

	// EntryNumberExists reports whether entryNumber is taken in the organization scope.
	// A nil organization is its own scope.
	EntryNumberExists(ctx context.Context, organizationID *string, entryNumber string) (bool, error)

	// ListJournalEntries returns headers (no lines) newest first with token-based pagination.
	ListJournalEntries(ctx context.Context, filter JournalEntryListFilter, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)

	// FindPostedEntriesByAccount returns every posted entry with at least one line on the
	// account, ordered by entry date then creation time, lines included.
	FindPostedEntriesByAccount(ctx context.Context, accountID string) ([]domain.JournalEntry, error)

	// CountDraftEntriesForAccount counts draft entries touching the account dated on or after from.
	CountDraftEntriesForAccount(ctx context.Context, accountID string, from *time.Time) (int, error)
}

// JournalEntryWriter defines write operations for journal entry data
type JournalEntryWriter interface {
	// CreateJournalEntry persists header and lines as one unit. A taken entry number in
	// the same scope yields ErrDuplicate.
	CreateJournalEntry(ctx context.Context, entry domain.JournalEntry) error

	// UpdateJournalEntry rewrites header fields and, when replaceLines is set, deletes and
	// recreates the line set. The row must still be at expectedVersion (ErrConflict otherwise);
	// the stored version becomes expectedVersion+1.
	UpdateJournalEntry(ctx context.Context, entry domain.JournalEntry, replaceLines bool, expectedVersion int) error

	// UpdateJournalEntryStatus writes status, totals, notes and posted/voided timestamps under
	// the same optimistic version check as UpdateJournalEntry.
	UpdateJournalEntryStatus(ctx context.Context, entry domain.JournalEntry, expectedVersion int) error

	// DeleteJournalEntry removes a draft entry and its lines, provided it is still a draft
	// at expectedVersion.
	DeleteJournalEntry(ctx context.Context, journalEntryID string, expectedVersion int) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces
type JournalRepositoryFacade interface {
	JournalEntryReader
	JournalEntryWriter
}
