package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/omarrayoubb/gateway-sub003/internal/apperrors"
	"github.com/omarrayoubb/gateway-sub003/internal/core/domain"
	portsrepo "github.com/omarrayoubb/gateway-sub003/internal/core/ports/repositories"
	portssvc "github.com/omarrayoubb/gateway-sub003/internal/core/ports/services"
	"github.com/omarrayoubb/gateway-sub003/internal/dto"
	"github.com/shopspring/decimal"
)

const (
	defaultJournalPageSize = 20
	maxJournalPageSize     = 100
	entryNumberAttempts    = 5
)

// journalService owns the draft lifecycle of journal entries.
type journalService struct {
	BaseService
	journalRepo portsrepo.JournalRepositoryFacade
	accountSvc  portssvc.AccountReaderSvc
	projector   portssvc.LedgerProjectorSvc
	txManager   portsrepo.TransactionManager
	tolerance   decimal.Decimal
	strictSync  bool
}

// JournalServiceOption configures the journal service.
type JournalServiceOption func(*journalService)

// WithJournalBalanceTolerance overrides the balance tolerance used for IsBalanced.
func WithJournalBalanceTolerance(t decimal.Decimal) JournalServiceOption {
	return func(s *journalService) {
		if t.IsPositive() {
			s.tolerance = t
		}
	}
}

// WithJournalStrictSync makes create-as-posted fail when the projection cannot be written.
func WithJournalStrictSync(strict bool) JournalServiceOption {
	return func(s *journalService) {
		s.strictSync = strict
	}
}

// NewJournalService creates a new JournalService.
func NewJournalService(
	journalRepo portsrepo.JournalRepositoryFacade,
	accountSvc portssvc.AccountReaderSvc,
	projector portssvc.LedgerProjectorSvc,
	txManager portsrepo.TransactionManager,
	opts ...JournalServiceOption,
) portssvc.JournalSvcFacade {
	s := &journalService{
		BaseService: newBaseService(),
		journalRepo: journalRepo,
		accountSvc:  accountSvc,
		projector:   projector,
		txManager:   txManager,
		tolerance:   domain.DefaultBalanceTolerance,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// CreateJournalEntry validates and persists a header with its lines in one transaction.
func (s *journalService) CreateJournalEntry(ctx context.Context, req dto.CreateJournalEntryRequest, userID string) (*domain.JournalEntry, error) {
	entryDate, err := dto.ParseDate(req.EntryDate)
	if err != nil {
		return nil, apperrors.NewValidationError("entryDate %q is not a YYYY-MM-DD date", req.EntryDate)
	}

	entryType := req.EntryType
	if entryType == "" {
		entryType = domain.EntryManual
	}
	if !entryType.IsValid() {
		return nil, apperrors.NewValidationError("unknown entry type %q", entryType)
	}

	status := req.Status
	if status == "" {
		status = domain.StatusDraft
	}
	if status != domain.StatusDraft && status != domain.StatusPosted {
		return nil, apperrors.NewValidationError("entries are created as draft or posted, not %q", status)
	}

	now := s.now()
	entryID := uuid.NewString()

	lines, err := s.buildLines(ctx, entryID, req.OrganizationID, req.Lines, now)
	if err != nil {
		return nil, err
	}
	totals := domain.ComputeTotalsWithTolerance(lines, s.tolerance)

	entry := domain.JournalEntry{
		JournalEntryID: entryID,
		OrganizationID: req.OrganizationID,
		EntryNumber:    strings.TrimSpace(req.EntryNumber),
		EntryDate:      domain.DateOf(entryDate),
		EntryType:      entryType,
		Status:         domain.StatusDraft,
		Reference:      req.Reference,
		Notes:          req.Notes,
		Version:        1,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
		Lines: lines,
	}
	entry.ApplyTotals(totals)

	if status == domain.StatusPosted {
		// Balance must hold before a record is ever marked posted.
		if err := entry.CanPost(); err != nil {
			return nil, err
		}
		if err := totals.MismatchError(); err != nil {
			return nil, err
		}
		entry.Status = domain.StatusPosted
		entry.PostedAt = &now
	}

	err = s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.assignEntryNumber(ctx, &entry); err != nil {
			return err
		}
		if err := s.journalRepo.CreateJournalEntry(ctx, entry); err != nil {
			return err
		}
		if entry.Status == domain.StatusPosted && s.strictSync {
			return s.projector.SyncTransaction(ctx, domain.SourceFromJournalEntry(entry))
		}
		return nil
	})
	if err != nil {
		if !isExpectedJournalError(err) {
			s.LogError(ctx, err, "Failed to create journal entry", slog.String("journal_entry_id", entryID))
		}
		return nil, err
	}

	if entry.Status == domain.StatusPosted && !s.strictSync {
		if err := s.projector.SyncTransaction(ctx, domain.SourceFromJournalEntry(entry)); err != nil {
			s.LogError(ctx, err, "Ledger sync failed after create; entry stays posted",
				slog.String("journal_entry_id", entry.JournalEntryID))
		}
	}

	s.LogInfo(ctx, "Journal entry created",
		slog.String("journal_entry_id", entry.JournalEntryID),
		slog.String("entry_number", entry.EntryNumber),
		slog.String("status", string(entry.Status)),
		slog.Int("lines", len(entry.Lines)))
	return &entry, nil
}

// assignEntryNumber rejects a taken number in the entry's scope, or generates one when empty.
func (s *journalService) assignEntryNumber(ctx context.Context, entry *domain.JournalEntry) error {
	if entry.EntryNumber != "" {
		exists, err := s.journalRepo.EntryNumberExists(ctx, entry.OrganizationID, entry.EntryNumber)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%w: entry number %s is already used in this organization", apperrors.ErrDuplicate, entry.EntryNumber)
		}
		return nil
	}

	for i := 0; i < entryNumberAttempts; i++ {
		candidate := generateEntryNumber(entry.EntryDate)
		exists, err := s.journalRepo.EntryNumberExists(ctx, entry.OrganizationID, candidate)
		if err != nil {
			return err
		}
		if !exists {
			entry.EntryNumber = candidate
			return nil
		}
	}
	return apperrors.NewAppError(500, "could not generate a free entry number",
		fmt.Errorf("%w: %d generated entry numbers were already taken", apperrors.ErrInternal, entryNumberAttempts))
}

// generateEntryNumber returns JE-YYYYMMDD-XXXXXXXX.
func generateEntryNumber(date time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("JE-%s-%s", date.Format("20060102"), suffix)
}

// buildLines resolves every account, captures its code and name, and validates amounts.
func (s *journalService) buildLines(ctx context.Context, entryID string, organizationID *string, reqs []dto.JournalEntryLineRequest, now time.Time) ([]domain.JournalEntryLine, error) {
	lines := make([]domain.JournalEntryLine, len(reqs))
	if len(reqs) == 0 {
		return lines, nil
	}

	seen := make(map[string]struct{}, len(reqs))
	accountIDs := make([]string, 0, len(reqs))
	for i, r := range reqs {
		lines[i] = domain.JournalEntryLine{
			LineID:         uuid.NewString(),
			JournalEntryID: entryID,
			AccountID:      strings.TrimSpace(r.AccountID),
			Description:    r.Description,
			Debit:          r.Debit,
			Credit:         r.Credit,
			CreatedAt:      now,
		}
		if _, ok := seen[lines[i].AccountID]; !ok && lines[i].AccountID != "" {
			seen[lines[i].AccountID] = struct{}{}
			accountIDs = append(accountIDs, lines[i].AccountID)
		}
	}
	domain.NumberLines(lines)

	for _, l := range lines {
		if err := l.Validate(); err != nil {
			return nil, err
		}
	}

	accounts, err := s.accountSvc.GetAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return nil, err
	}

	for i := range lines {
		acc, ok := accounts[lines[i].AccountID]
		if !ok {
			return nil, apperrors.NewNotFoundError("account", lines[i].AccountID)
		}
		if !acc.IsActive {
			return nil, apperrors.NewValidationError("line %d: account %s is inactive", lines[i].LineNumber, acc.Code)
		}
		// Global accounts are usable from any organization; scoped ones only from their own.
		if acc.OrganizationID != nil && !domain.SameScope(acc.OrganizationID, organizationID) {
			return nil, apperrors.NewValidationError("line %d: account %s belongs to another organization", lines[i].LineNumber, acc.Code)
		}
		lines[i].AccountCode = acc.Code
		lines[i].AccountName = acc.Name
	}
	return lines, nil
}

// GetJournalEntry retrieves a journal entry with its lines.
func (s *journalService) GetJournalEntry(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindJournalEntryByID(ctx, journalEntryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find journal entry", slog.String("journal_entry_id", journalEntryID))
		}
		return nil, err
	}
	return entry, nil
}

// ListJournalEntries retrieves a page of journal entry headers, newest first.
func (s *journalService) ListJournalEntries(ctx context.Context, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error) {
	filter := portsrepo.JournalEntryListFilter{OrganizationID: params.OrganizationID}

	if params.Status != "" {
		st := domain.EntryStatus(params.Status)
		if !st.IsValid() {
			return nil, apperrors.NewValidationError("unknown status %q", params.Status)
		}
		filter.Status = &st
	}
	if params.EntryType != "" {
		et := domain.EntryType(params.EntryType)
		if !et.IsValid() {
			return nil, apperrors.NewValidationError("unknown entry type %q", params.EntryType)
		}
		filter.EntryType = &et
	}

	var err error
	if filter.From, err = dto.ParseOptionalDate(params.From); err != nil {
		return nil, apperrors.NewValidationError("from %q is not a YYYY-MM-DD date", params.From)
	}
	if filter.To, err = dto.ParseOptionalDate(params.To); err != nil {
		return nil, apperrors.NewValidationError("to %q is not a YYYY-MM-DD date", params.To)
	}
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return nil, apperrors.NewValidationError("from must not be after to")
	}

	limit := params.Limit
	if limit <= 0 {
		limit = defaultJournalPageSize
	}
	if limit > maxJournalPageSize {
		limit = maxJournalPageSize
	}

	entries, nextToken, err := s.journalRepo.ListJournalEntries(ctx, filter, limit, params.NextToken)
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to list journal entries")
		}
		return nil, err
	}

	resp := &dto.ListJournalEntriesResponse{
		JournalEntries: make([]dto.JournalEntryResponse, len(entries)),
		NextToken:      nextToken,
	}
	for i := range entries {
		resp.JournalEntries[i] = dto.ToJournalEntryResponse(&entries[i])
	}
	return resp, nil
}

// UpdateJournalEntry changes a draft. A non-nil Lines replaces the whole set and the
// totals are recomputed from the new lines.
func (s *journalService) UpdateJournalEntry(ctx context.Context, journalEntryID string, req dto.UpdateJournalEntryRequest, userID string) (*domain.JournalEntry, error) {
	var updated *domain.JournalEntry
	err := s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		entry, err := s.journalRepo.FindJournalEntryByID(ctx, journalEntryID)
		if err != nil {
			return err
		}
		if err := entry.CanEdit(); err != nil {
			return err
		}
		expectedVersion := entry.Version
		now := s.now()

		if req.EntryDate != nil {
			d, err := dto.ParseDate(*req.EntryDate)
			if err != nil {
				return apperrors.NewValidationError("entryDate %q is not a YYYY-MM-DD date", *req.EntryDate)
			}
			entry.EntryDate = domain.DateOf(d)
		}
		if req.EntryType != nil {
			if !req.EntryType.IsValid() {
				return apperrors.NewValidationError("unknown entry type %q", *req.EntryType)
			}
			entry.EntryType = *req.EntryType
		}
		if req.Reference != nil {
			entry.Reference = *req.Reference
		}
		if req.Notes != nil {
			entry.Notes = *req.Notes
		}

		replaceLines := req.Lines != nil
		if replaceLines {
			lines, err := s.buildLines(ctx, entry.JournalEntryID, entry.OrganizationID, req.Lines, now)
			if err != nil {
				return err
			}
			entry.Lines = lines
		}
		entry.ApplyTotals(domain.ComputeTotalsWithTolerance(entry.Lines, s.tolerance))
		entry.LastUpdatedAt = now
		entry.LastUpdatedBy = userID

		if err := s.journalRepo.UpdateJournalEntry(ctx, *entry, replaceLines, expectedVersion); err != nil {
			return err
		}
		entry.Version = expectedVersion + 1
		updated = entry
		return nil
	})
	if err != nil {
		if !isExpectedJournalError(err) {
			s.LogError(ctx, err, "Failed to update journal entry", slog.String("journal_entry_id", journalEntryID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Journal entry updated",
		slog.String("journal_entry_id", updated.JournalEntryID),
		slog.Int("version", updated.Version))
	return updated, nil
}

// DeleteJournalEntry removes a draft, then clears any projected rows for it.
func (s *journalService) DeleteJournalEntry(ctx context.Context, journalEntryID string, userID string) error {
	err := s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		entry, err := s.journalRepo.FindJournalEntryByID(ctx, journalEntryID)
		if err != nil {
			return err
		}
		if err := entry.CanRemove(); err != nil {
			return err
		}
		return s.journalRepo.DeleteJournalEntry(ctx, journalEntryID, entry.Version)
	})
	if err != nil {
		if !isExpectedJournalError(err) {
			s.LogError(ctx, err, "Failed to delete journal entry", slog.String("journal_entry_id", journalEntryID))
		}
		return err
	}

	// A draft never reached the projection; this only guards against leftovers.
	if err := s.projector.RemoveTransaction(ctx, journalEntryID, domain.TxnJournalEntry); err != nil {
		s.LogWarn(ctx, "Failed to clear ledger rows of deleted journal entry",
			slog.String("journal_entry_id", journalEntryID), slog.String("error", err.Error()))
	}

	s.LogInfo(ctx, "Journal entry deleted", slog.String("journal_entry_id", journalEntryID), slog.String("user_id", userID))
	return nil
}

// isExpectedJournalError reports errors that are caller mistakes rather than failures.
func isExpectedJournalError(err error) bool {
	return errors.Is(err, apperrors.ErrValidation) ||
		errors.Is(err, apperrors.ErrNotFound) ||
		errors.Is(err, apperrors.ErrDuplicate) ||
		errors.Is(err, apperrors.ErrConflict) ||
		errors.Is(err, apperrors.ErrInvalidState) ||
		errors.Is(err, apperrors.ErrBalanceMismatch)
}
