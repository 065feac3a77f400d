package services

import (
	"context"
	"log/slog"

	"github.com/omarrayoubb/gateway-sub003/internal/core/domain"
	portsrepo "github.com/omarrayoubb/gateway-sub003/internal/core/ports/repositories"
	portssvc "github.com/omarrayoubb/gateway-sub003/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

const postingLockPrefix = "posting:"

// postingService drives draft -> posted -> void.
//
// By default the status flip is committed first and the projection is written
// afterwards on a best-effort basis; a failed projection leaves the entry posted and
// reports LedgerSynced=false. With strict sync the two share one transaction.
type postingService struct {
	BaseService
	journalRepo portsrepo.JournalRepositoryFacade
	projector   portssvc.LedgerProjectorSvc
	txManager   portsrepo.TransactionManager
	locker      portssvc.EntryLocker
	tolerance   decimal.Decimal
	strictSync  bool
}

// PostingServiceOption configures the posting service.
type PostingServiceOption func(*postingService)

// WithStrictSync runs the projection inside the posting transaction.
func WithStrictSync(strict bool) PostingServiceOption {
	return func(s *postingService) {
		s.strictSync = strict
	}
}

// WithEntryLocker serializes post/void of the same entry across processes.
func WithEntryLocker(locker portssvc.EntryLocker) PostingServiceOption {
	return func(s *postingService) {
		s.locker = locker
	}
}

// WithBalanceTolerance overrides the exclusive bound on |debit - credit|.
func WithBalanceTolerance(t decimal.Decimal) PostingServiceOption {
	return func(s *postingService) {
		if t.IsPositive() {
			s.tolerance = t
		}
	}
}

// NewPostingService creates the posting engine.
func NewPostingService(
	journalRepo portsrepo.JournalRepositoryFacade,
	projector portssvc.LedgerProjectorSvc,
	txManager portsrepo.TransactionManager,
	opts ...PostingServiceOption,
) portssvc.PostingSvc {
	s := &postingService{
		BaseService: newBaseService(),
		journalRepo: journalRepo,
		projector:   projector,
		txManager:   txManager,
		tolerance:   domain.DefaultBalanceTolerance,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.PostingSvc = (*postingService)(nil)

// PostJournalEntry posts a balanced draft. Totals are recomputed from the lines;
// the cached header totals are not trusted.
func (s *postingService) PostJournalEntry(ctx context.Context, journalEntryID string, userID string) (*domain.PostingResult, error) {
	unlock, err := s.lock(ctx, journalEntryID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	var posted *domain.JournalEntry
	err = s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		entry, err := s.journalRepo.FindJournalEntryByID(ctx, journalEntryID)
		if err != nil {
			return err
		}
		if err := entry.CanPost(); err != nil {
			return err
		}

		totals := domain.ComputeTotalsWithTolerance(entry.Lines, s.tolerance)
		if err := totals.MismatchError(); err != nil {
			return err
		}

		now := s.now()
		expectedVersion := entry.Version
		entry.ApplyTotals(totals)
		entry.Status = domain.StatusPosted
		entry.PostedAt = &now
		entry.LastUpdatedAt = now
		entry.LastUpdatedBy = userID

		if err := s.journalRepo.UpdateJournalEntryStatus(ctx, *entry, expectedVersion); err != nil {
			return err
		}
		entry.Version = expectedVersion + 1
		posted = entry

		if s.strictSync {
			return s.projector.SyncTransaction(ctx, domain.SourceFromJournalEntry(*entry))
		}
		return nil
	})
	if err != nil {
		if !isExpectedJournalError(err) {
			s.LogError(ctx, err, "Failed to post journal entry", slog.String("journal_entry_id", journalEntryID))
		}
		return nil, err
	}

	result := &domain.PostingResult{Entry: posted, LedgerSynced: true}
	if !s.strictSync {
		if err := s.projector.SyncTransaction(ctx, domain.SourceFromJournalEntry(*posted)); err != nil {
			s.LogError(ctx, err, "Ledger sync failed; entry stays posted and can be replayed",
				slog.String("journal_entry_id", journalEntryID))
			result.LedgerSynced = false
		}
	}

	s.LogInfo(ctx, "Journal entry posted",
		slog.String("journal_entry_id", journalEntryID),
		slog.String("total", posted.TotalDebit.StringFixed(2)),
		slog.Bool("ledger_synced", result.LedgerSynced))
	return result, nil
}

// VoidJournalEntry voids a posted entry and erases its ledger footprint. A voided
// entry is never reopened; corrections go into a new entry.
func (s *postingService) VoidJournalEntry(ctx context.Context, journalEntryID string, reason string, userID string) (*domain.PostingResult, error) {
	unlock, err := s.lock(ctx, journalEntryID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	var voided *domain.JournalEntry
	err = s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		entry, err := s.journalRepo.FindJournalEntryByID(ctx, journalEntryID)
		if err != nil {
			return err
		}
		if err := entry.CanVoid(); err != nil {
			return err
		}

		now := s.now()
		expectedVersion := entry.Version
		entry.AppendVoidReason(reason)
		entry.Status = domain.StatusVoid
		entry.VoidedAt = &now
		entry.LastUpdatedAt = now
		entry.LastUpdatedBy = userID

		if err := s.journalRepo.UpdateJournalEntryStatus(ctx, *entry, expectedVersion); err != nil {
			return err
		}
		entry.Version = expectedVersion + 1
		voided = entry

		if s.strictSync {
			return s.projector.RemoveTransaction(ctx, journalEntryID, domain.TxnJournalEntry)
		}
		return nil
	})
	if err != nil {
		if !isExpectedJournalError(err) {
			s.LogError(ctx, err, "Failed to void journal entry", slog.String("journal_entry_id", journalEntryID))
		}
		return nil, err
	}

	result := &domain.PostingResult{Entry: voided, LedgerSynced: true}
	if !s.strictSync {
		if err := s.projector.RemoveTransaction(ctx, journalEntryID, domain.TxnJournalEntry); err != nil {
			s.LogError(ctx, err, "Ledger cleanup failed; entry stays void and can be replayed",
				slog.String("journal_entry_id", journalEntryID))
			result.LedgerSynced = false
		}
	}

	s.LogInfo(ctx, "Journal entry voided",
		slog.String("journal_entry_id", journalEntryID),
		slog.Bool("ledger_synced", result.LedgerSynced))
	return result, nil
}

func (s *postingService) lock(ctx context.Context, journalEntryID string) (func(), error) {
	if s.locker == nil {
		return func() {}, nil
	}
	unlock, err := s.locker.Lock(ctx, postingLockPrefix+journalEntryID)
	if err != nil {
		s.LogWarn(ctx, "Could not obtain posting lock",
			slog.String("journal_entry_id", journalEntryID), slog.String("error", err.Error()))
		return nil, err
	}
	return unlock, nil
}
