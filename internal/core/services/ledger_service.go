package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/omarrayoubb/gateway-sub003/internal/apperrors"
	"github.com/omarrayoubb/gateway-sub003/internal/core/domain"
	portsrepo "github.com/omarrayoubb/gateway-sub003/internal/core/ports/repositories"
	portssvc "github.com/omarrayoubb/gateway-sub003/internal/core/ports/services"
	"github.com/omarrayoubb/gateway-sub003/internal/utils/accounting"
)

// ledgerService projects posted transactions into the general ledger and rebuilds
// balances over time from the present-day account snapshot.
type ledgerService struct {
	BaseService
	ledgerRepo  portsrepo.LedgerRepositoryFacade
	journalRepo portsrepo.JournalEntryReader
	accountRepo portsrepo.AccountReader
	txManager   portsrepo.TransactionManager
}

// NewLedgerService creates the general ledger projector.
func NewLedgerService(
	ledgerRepo portsrepo.LedgerRepositoryFacade,
	journalRepo portsrepo.JournalEntryReader,
	accountRepo portsrepo.AccountReader,
	txManager portsrepo.TransactionManager,
) portssvc.LedgerSvcFacade {
	return &ledgerService{
		BaseService: newBaseService(),
		ledgerRepo:  ledgerRepo,
		journalRepo: journalRepo,
		accountRepo: accountRepo,
		txManager:   txManager,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// SyncTransaction upserts one row per account and drops rows of accounts the
// source no longer touches.
func (s *ledgerService) SyncTransaction(ctx context.Context, source domain.LedgerSource) error {
	if err := validateSource(source); err != nil {
		return err
	}

	rows := source.ProjectedRows()
	keep := make([]string, len(rows))
	for i, r := range rows {
		keep[i] = r.AccountID
	}

	var stale int64
	err := s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.ledgerRepo.UpsertLedgerEntries(ctx, rows); err != nil {
			return err
		}
		var err error
		stale, err = s.ledgerRepo.DeleteStaleLedgerEntries(ctx, source.TransactionID, source.TransactionType, keep)
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to sync transaction into general ledger",
			slog.String("transaction_id", source.TransactionID),
			slog.String("transaction_type", string(source.TransactionType)))
		return err
	}

	s.LogDebug(ctx, "Transaction projected",
		slog.String("transaction_id", source.TransactionID),
		slog.String("transaction_type", string(source.TransactionType)),
		slog.Int("rows", len(rows)),
		slog.Int64("stale_removed", stale))
	return nil
}

func validateSource(source domain.LedgerSource) error {
	if strings.TrimSpace(source.TransactionID) == "" {
		return apperrors.NewValidationError("transaction id is required")
	}
	if _, err := domain.ParseTransactionType(string(source.TransactionType)); err != nil {
		return apperrors.NewValidationError("%s", err.Error())
	}
	if source.TransactionDate.IsZero() {
		return apperrors.NewValidationError("transaction date is required")
	}
	for i, l := range source.Lines {
		if strings.TrimSpace(l.AccountID) == "" {
			return apperrors.NewValidationError("line %d: account is required", i+1)
		}
		if l.Debit.IsNegative() || l.Credit.IsNegative() {
			return apperrors.NewValidationError("line %d: debit and credit must not be negative", i+1)
		}
		if !l.Debit.IsZero() && !l.Credit.IsZero() {
			return apperrors.NewValidationError("line %d: a line cannot carry both a debit and a credit", i+1)
		}
		if !domain.FitsAmountScale(l.Debit) || !domain.FitsAmountScale(l.Credit) {
			return apperrors.NewValidationError("line %d: amounts allow at most %d decimal places", i+1, domain.AmountScale)
		}
	}
	return nil
}

// RemoveTransaction erases every projected row of a source transaction.
func (s *ledgerService) RemoveTransaction(ctx context.Context, transactionID string, transactionType domain.TransactionType) error {
	if strings.TrimSpace(transactionID) == "" {
		return apperrors.NewValidationError("transaction id is required")
	}
	if _, err := domain.ParseTransactionType(string(transactionType)); err != nil {
		return apperrors.NewValidationError("%s", err.Error())
	}

	n, err := s.ledgerRepo.DeleteLedgerEntriesByTransaction(ctx, transactionID, transactionType)
	if err != nil {
		s.LogError(ctx, err, "Failed to remove transaction from general ledger",
			slog.String("transaction_id", transactionID),
			slog.String("transaction_type", string(transactionType)))
		return err
	}
	s.LogDebug(ctx, "Transaction removed from general ledger",
		slog.String("transaction_id", transactionID), slog.Int64("rows", n))
	return nil
}

// RebuildAccountLedger drops the account's journal entry rows and replays every posted
// entry touching it in entry date order. Rows of other transaction types are kept.
func (s *ledgerService) RebuildAccountLedger(ctx context.Context, accountID string) (int, error) {
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return 0, err
	}

	projected := 0
	err := s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		entries, err := s.journalRepo.FindPostedEntriesByAccount(ctx, accountID)
		if err != nil {
			return err
		}
		if _, err := s.ledgerRepo.DeleteLedgerEntriesByAccount(ctx, accountID, domain.TxnJournalEntry); err != nil {
			return err
		}

		rows := make([]domain.GeneralLedgerEntry, 0, len(entries))
		for _, e := range entries {
			for _, r := range domain.SourceFromJournalEntry(e).ProjectedRows() {
				if r.AccountID == accountID {
					rows = append(rows, r)
				}
			}
		}
		if err := s.ledgerRepo.UpsertLedgerEntries(ctx, rows); err != nil {
			return err
		}
		projected = len(rows)
		return nil
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to rebuild account ledger", slog.String("account_id", accountID))
		}
		return 0, err
	}

	s.LogInfo(ctx, "Account ledger rebuilt", slog.String("account_id", accountID), slog.Int("rows", projected))
	return projected, nil
}

// GetAccountLedger returns the account's rows in the window with running balances.
func (s *ledgerService) GetAccountLedger(ctx context.Context, accountID string, periodStart, periodEnd *time.Time) (*domain.AccountLedger, error) {
	if err := validateWindow(periodStart, periodEnd); err != nil {
		return nil, err
	}

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load account for ledger", slog.String("account_id", accountID))
		}
		return nil, err
	}

	ledger, err := s.reconstruct(ctx, *account, periodStart, periodEnd)
	if err != nil {
		return nil, err
	}

	rec, err := s.reconcile(ctx, accountID, periodStart)
	if err != nil {
		return nil, err
	}
	ledger.Reconciliation = rec
	return ledger, nil
}

// GetGeneralLedger reconstructs each selected account independently, then merges and
// re-sorts the rows.
func (s *ledgerService) GetGeneralLedger(ctx context.Context, filter domain.GeneralLedgerFilter) (*domain.GeneralLedger, error) {
	if err := validateWindow(filter.PeriodStart, filter.PeriodEnd); err != nil {
		return nil, err
	}
	switch filter.SortBy {
	case "", domain.SortByTransactionDate, domain.SortByAccountCode, domain.SortByDebit, domain.SortByCredit:
	default:
		return nil, apperrors.NewValidationError("unknown sort field %q", filter.SortBy)
	}
	switch filter.SortOrder {
	case "", domain.SortAsc, domain.SortDesc:
	default:
		return nil, apperrors.NewValidationError("unknown sort order %q", filter.SortOrder)
	}

	var accounts []domain.Account
	if filter.AccountID != nil && *filter.AccountID != "" {
		acc, err := s.accountRepo.FindAccountByID(ctx, *filter.AccountID)
		if err != nil {
			return nil, err
		}
		accounts = []domain.Account{*acc}
	} else {
		var err error
		accounts, err = s.accountRepo.ListAccounts(ctx, nil, nil)
		if err != nil {
			s.LogError(ctx, err, "Failed to list accounts for general ledger")
			return nil, err
		}
	}

	gl := &domain.GeneralLedger{Transactions: []domain.GeneralLedgerEntry{}}
	for _, acc := range accounts {
		ledger, err := s.reconstruct(ctx, acc, filter.PeriodStart, filter.PeriodEnd)
		if err != nil {
			return nil, err
		}
		if len(ledger.Transactions) == 0 {
			continue
		}
		gl.AccountCount++
		gl.Transactions = append(gl.Transactions, ledger.Transactions...)
	}

	accounting.SortLedgerEntries(gl.Transactions, filter.SortBy, filter.SortOrder)
	gl.Totals = accounting.SumTotals(gl.Transactions)
	return gl, nil
}

// reconstruct anchors on the account's present balance and walks backward to the
// window start, then forward through the window.
func (s *ledgerService) reconstruct(ctx context.Context, account domain.Account, periodStart, periodEnd *time.Time) (*domain.AccountLedger, error) {
	netSince, err := s.ledgerRepo.SumNetSince(ctx, account.AccountID, periodStart)
	if err != nil {
		return nil, err
	}
	opening := accounting.OpeningBalance(account.Balance, netSince)

	rows, err := s.ledgerRepo.ListLedgerEntriesByAccount(ctx, account.AccountID, periodStart, periodEnd)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		if rows[i].AccountCode == "" {
			rows[i].AccountCode = account.Code
			rows[i].AccountName = account.Name
		}
	}
	closing, totals := accounting.ApplyRunningBalances(opening, rows)

	return &domain.AccountLedger{
		Account:        account,
		PeriodStart:    periodStart,
		PeriodEnd:      periodEnd,
		OpeningBalance: opening,
		ClosingBalance: closing,
		Transactions:   rows,
		Totals:         totals,
	}, nil
}

// reconcile checks the precondition of the backward walk: nothing affecting the
// account since the window start may be missing from the projection.
func (s *ledgerService) reconcile(ctx context.Context, accountID string, periodStart *time.Time) (domain.Reconciliation, error) {
	drafts, err := s.journalRepo.CountDraftEntriesForAccount(ctx, accountID, periodStart)
	if err != nil {
		return domain.Reconciliation{}, err
	}
	unprojected, err := s.ledgerRepo.CountUnprojectedPostedLines(ctx, accountID, periodStart)
	if err != nil {
		return domain.Reconciliation{}, err
	}

	rec := domain.Reconciliation{
		Complete:         drafts == 0 && unprojected == 0,
		DraftEntries:     drafts,
		UnprojectedLines: unprojected,
	}
	if !rec.Complete {
		s.LogWarn(ctx, "Opening balance may be off: projection is incomplete for the window",
			slog.String("account_id", accountID),
			slog.Int("draft_entries", drafts),
			slog.Int("unprojected_lines", unprojected))
	}
	return rec, nil
}

func validateWindow(periodStart, periodEnd *time.Time) error {
	if periodStart != nil && periodEnd != nil && domain.DateOf(*periodStart).After(domain.DateOf(*periodEnd)) {
		return apperrors.NewValidationError("periodStart must not be after periodEnd")
	}
	return nil
}
