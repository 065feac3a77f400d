package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/omarrayoubb/gateway-sub003/internal/apperrors"
	"github.com/omarrayoubb/gateway-sub003/internal/core/domain"
	portssvc "github.com/omarrayoubb/gateway-sub003/internal/core/ports/services"
	"github.com/omarrayoubb/gateway-sub003/internal/dto"
)

// subledgerService turns sub-ledger records into balanced journal entries and hands
// them to the posting engine.
type subledgerService struct {
	BaseService
	accountSvc portssvc.AccountReaderSvc
	journalSvc portssvc.JournalWriterSvc
	postingSvc portssvc.PostingSvc
}

// NewSubledgerService creates the sub-ledger adapters.
func NewSubledgerService(accountSvc portssvc.AccountReaderSvc, journalSvc portssvc.JournalWriterSvc, postingSvc portssvc.PostingSvc) portssvc.SubledgerSvc {
	return &subledgerService{
		BaseService: newBaseService(),
		accountSvc:  accountSvc,
		journalSvc:  journalSvc,
		postingSvc:  postingSvc,
	}
}

var _ portssvc.SubledgerSvc = (*subledgerService)(nil)

// RecordExpense debits the expense account and credits the payment account, the default
// cash account, or the default accrued liabilities account for accruals.
func (s *subledgerService) RecordExpense(ctx context.Context, req dto.RecordExpenseRequest, userID string) (*domain.PostingResult, error) {
	if !req.Amount.IsPositive() {
		return nil, apperrors.NewValidationError("expense amount must be positive")
	}
	if strings.TrimSpace(req.ExpenseAccountID) == "" {
		return nil, apperrors.NewValidationError("expense account is required")
	}

	expenseAcc, err := s.accountSvc.GetAccountByID(ctx, req.ExpenseAccountID)
	if err != nil {
		return nil, err
	}
	if expenseAcc.AccountType != domain.Expense {
		return nil, apperrors.NewValidationError("account %s is a %s account, not an expense account", expenseAcc.Code, expenseAcc.AccountType)
	}

	counter, err := s.counterAccount(ctx, req)
	if err != nil {
		return nil, err
	}

	reference := req.Reference
	if reference == "" && req.ExpenseID != "" {
		reference = "EXP-" + req.ExpenseID
	}

	entry, err := s.journalSvc.CreateJournalEntry(ctx, dto.CreateJournalEntryRequest{
		OrganizationID: req.OrganizationID,
		EntryDate:      req.ExpenseDate,
		EntryType:      domain.EntryAutomated,
		Reference:      reference,
		Notes:          req.Description,
		Lines: []dto.JournalEntryLineRequest{
			{AccountID: expenseAcc.AccountID, Description: req.Description, Debit: req.Amount},
			{AccountID: counter.AccountID, Description: req.Description, Credit: req.Amount},
		},
	}, userID)
	if err != nil {
		return nil, err
	}

	result, err := s.postingSvc.PostJournalEntry(ctx, entry.JournalEntryID, userID)
	if err != nil {
		// Do not leave an orphaned draft behind.
		if delErr := s.journalSvc.DeleteJournalEntry(ctx, entry.JournalEntryID, userID); delErr != nil {
			s.LogError(ctx, delErr, "Failed to discard expense draft after posting failed",
				slog.String("journal_entry_id", entry.JournalEntryID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Expense recorded",
		slog.String("journal_entry_id", entry.JournalEntryID),
		slog.String("expense_account", expenseAcc.Code),
		slog.String("counter_account", counter.Code),
		slog.String("amount", req.Amount.StringFixed(2)))
	return result, nil
}

func (s *subledgerService) counterAccount(ctx context.Context, req dto.RecordExpenseRequest) (*domain.Account, error) {
	if req.PaymentAccountID != nil && *req.PaymentAccountID != "" {
		return s.accountSvc.GetAccountByID(ctx, *req.PaymentAccountID)
	}

	accountType, subtype := domain.Asset, domain.SubtypeCash
	if req.Accrued {
		accountType, subtype = domain.Liability, domain.SubtypeAccruedLiabilities
	}
	acc, err := s.accountSvc.FindAccountByTypeAndSubtype(ctx, req.OrganizationID, accountType, subtype)
	if err != nil {
		return nil, fmt.Errorf("no default %s account: %w", subtype, err)
	}
	return acc, nil
}
