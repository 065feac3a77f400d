package services

import (
	"context"

	"github.com/omarrayoubb/gateway-sub003/internal/core/domain"
	"github.com/omarrayoubb/gateway-sub003/internal/dto"
)

// JournalReaderSvc defines read operations for journal entries
type JournalReaderSvc interface {
	// GetJournalEntry retrieves a journal entry with its lines.
	GetJournalEntry(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error)

	// ListJournalEntries retrieves a page of journal entry headers.
	ListJournalEntries(ctx context.Context, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error)
}

// JournalWriterSvc defines the draft lifecycle of journal entries
type JournalWriterSvc interface {
	// CreateJournalEntry validates and persists a header with its lines.
	CreateJournalEntry(ctx context.Context, req dto.CreateJournalEntryRequest, userID string) (*domain.JournalEntry, error)

	// UpdateJournalEntry changes a draft; supplied lines replace the whole set.
	UpdateJournalEntry(ctx context.Context, journalEntryID string, req dto.UpdateJournalEntryRequest, userID string) (*domain.JournalEntry, error)

	// DeleteJournalEntry removes a draft.
	DeleteJournalEntry(ctx context.Context, journalEntryID string, userID string) error
}

// JournalSvcFacade combines all journal-related service interfaces
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
}

// PostingSvc drives the draft -> posted -> void transitions.
type PostingSvc interface {
	// PostJournalEntry posts a balanced draft and projects it into the general ledger.
	PostJournalEntry(ctx context.Context, journalEntryID string, userID string) (*domain.PostingResult, error)

	// VoidJournalEntry voids a posted entry and removes its ledger rows.
	VoidJournalEntry(ctx context.Context, journalEntryID string, reason string, userID string) (*domain.PostingResult, error)
}

// EntryLocker serializes post/void of one entry across processes.
type EntryLocker interface {
	// Lock blocks until the key is held or fails with ErrConflict. The returned
	// function releases the lock.
	Lock(ctx context.Context, key string) (func(), error)
}
