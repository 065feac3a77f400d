package dto

import (
	"fmt"

	"github.com/omarrayoubb/gateway-sub003/internal/apperrors"
	"github.com/omarrayoubb/gateway-sub003/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountLedgerParams bounds an account ledger query. Both bounds are optional.
type AccountLedgerParams struct {
	PeriodStart string `form:"periodStart" binding:"omitempty,datetime=2006-01-02"`
	PeriodEnd   string `form:"periodEnd" binding:"omitempty,datetime=2006-01-02"`
}

// GeneralLedgerParams defines the query parameters of the general ledger listing.
type GeneralLedgerParams struct {
	AccountID   string `form:"accountID"`
	PeriodStart string `form:"periodStart" binding:"omitempty,datetime=2006-01-02"`
	PeriodEnd   string `form:"periodEnd" binding:"omitempty,datetime=2006-01-02"`
	SortBy      string `form:"sortBy" binding:"omitempty,oneof=transaction_date account_code debit credit"`
	SortOrder   string `form:"sortOrder" binding:"omitempty,oneof=asc desc"`
}

// ToFilter converts query parameters to a domain filter.
func (p GeneralLedgerParams) ToFilter() (domain.GeneralLedgerFilter, error) {
	start, err := ParseOptionalDate(p.PeriodStart)
	if err != nil {
		return domain.GeneralLedgerFilter{}, fmt.Errorf("periodStart: %w", err)
	}
	end, err := ParseOptionalDate(p.PeriodEnd)
	if err != nil {
		return domain.GeneralLedgerFilter{}, fmt.Errorf("periodEnd: %w", err)
	}
	f := domain.GeneralLedgerFilter{
		PeriodStart: start,
		PeriodEnd:   end,
		SortBy:      domain.LedgerSortField(p.SortBy),
		SortOrder:   domain.SortOrder(p.SortOrder),
	}
	if p.AccountID != "" {
		id := p.AccountID
		f.AccountID = &id
	}
	return f, nil
}

// LedgerSourceLineRequest is one account movement of a sub-ledger transaction.
type LedgerSourceLineRequest struct {
	AccountID   string          `json:"accountID" binding:"required"`
	Description string          `json:"description" binding:"max=500"`
	Debit       decimal.Decimal `json:"debit" binding:"gte=0"`
	Credit      decimal.Decimal `json:"credit" binding:"gte=0"`
}

// SyncLedgerSourceRequest projects a posted sub-ledger transaction (invoice, payment, bill, expense).
type SyncLedgerSourceRequest struct {
	TransactionID   string                    `json:"transactionID" binding:"required"`
	TransactionType string                    `json:"transactionType" binding:"required,oneof=invoice payment bill expense"`
	TransactionDate string                    `json:"transactionDate" binding:"required,datetime=2006-01-02"`
	Reference       string                    `json:"reference" binding:"max=255"`
	Description     string                    `json:"description"`
	Lines           []LedgerSourceLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// ToLedgerSource converts the request into projector input.
func (r SyncLedgerSourceRequest) ToLedgerSource() (domain.LedgerSource, error) {
	txnType, err := domain.ParseSourceTransactionType(r.TransactionType)
	if err != nil {
		return domain.LedgerSource{}, apperrors.NewValidationError("%s", err.Error())
	}
	date, err := ParseDate(r.TransactionDate)
	if err != nil {
		return domain.LedgerSource{}, apperrors.NewValidationError("transactionDate: %s", err.Error())
	}
	src := domain.LedgerSource{
		TransactionID:   r.TransactionID,
		TransactionType: txnType,
		TransactionDate: date,
		Reference:       r.Reference,
		Description:     r.Description,
		Lines:           make([]domain.LedgerSourceLine, len(r.Lines)),
	}
	for i, l := range r.Lines {
		src.Lines[i] = domain.LedgerSourceLine{
			AccountID:   l.AccountID,
			Description: l.Description,
			Debit:       l.Debit,
			Credit:      l.Credit,
		}
	}
	return src, nil
}

// LedgerEntryResponse defines the data returned for a projected ledger row.
type LedgerEntryResponse struct {
	EntryID         string                 `json:"entryID"`
	AccountID       string                 `json:"accountID"`
	AccountCode     string                 `json:"accountCode,omitempty"`
	AccountName     string                 `json:"accountName,omitempty"`
	TransactionDate string                 `json:"transactionDate"`
	TransactionType domain.TransactionType `json:"transactionType"`
	TransactionID   string                 `json:"transactionID"`
	Reference       string                 `json:"reference,omitempty"`
	Description     string                 `json:"description,omitempty"`
	Debit           decimal.Decimal        `json:"debit"`
	Credit          decimal.Decimal        `json:"credit"`
	Balance         decimal.Decimal        `json:"balance"`
}

// AccountLedgerResponse is the reconstructed ledger of one account.
type AccountLedgerResponse struct {
	Account        AccountResponse       `json:"account"`
	PeriodStart    *string               `json:"periodStart,omitempty"`
	PeriodEnd      *string               `json:"periodEnd,omitempty"`
	OpeningBalance decimal.Decimal       `json:"openingBalance"`
	ClosingBalance decimal.Decimal       `json:"closingBalance"`
	Transactions   []LedgerEntryResponse `json:"transactions"`
	Totals         domain.LedgerTotals   `json:"totals"`
	Reconciliation domain.Reconciliation `json:"reconciliation"`
}

// GeneralLedgerResponse is the merged multi-account listing.
type GeneralLedgerResponse struct {
	Transactions []LedgerEntryResponse `json:"transactions"`
	Totals       domain.LedgerTotals   `json:"totals"`
	AccountCount int                   `json:"accountCount"`
}

// RebuildLedgerResponse reports the outcome of a projection replay.
type RebuildLedgerResponse struct {
	AccountID     string `json:"accountID"`
	RowsProjected int    `json:"rowsProjected"`
}

// ToLedgerEntryResponses converts projected rows.
func ToLedgerEntryResponses(rows []domain.GeneralLedgerEntry) []LedgerEntryResponse {
	out := make([]LedgerEntryResponse, len(rows))
	for i, r := range rows {
		out[i] = LedgerEntryResponse{
			EntryID:         r.EntryID,
			AccountID:       r.AccountID,
			AccountCode:     r.AccountCode,
			AccountName:     r.AccountName,
			TransactionDate: FormatDate(r.TransactionDate),
			TransactionType: r.TransactionType,
			TransactionID:   r.TransactionID,
			Reference:       r.Reference,
			Description:     r.Description,
			Debit:           r.Debit,
			Credit:          r.Credit,
			Balance:         r.Balance,
		}
	}
	return out
}

// ToAccountLedgerResponse converts a domain.AccountLedger.
func ToAccountLedgerResponse(l *domain.AccountLedger) AccountLedgerResponse {
	return AccountLedgerResponse{
		Account:        ToAccountResponse(&l.Account),
		PeriodStart:    formatOptionalDate(l.PeriodStart),
		PeriodEnd:      formatOptionalDate(l.PeriodEnd),
		OpeningBalance: l.OpeningBalance,
		ClosingBalance: l.ClosingBalance,
		Transactions:   ToLedgerEntryResponses(l.Transactions),
		Totals:         l.Totals,
		Reconciliation: l.Reconciliation,
	}
}

// ToGeneralLedgerResponse converts a domain.GeneralLedger.
func ToGeneralLedgerResponse(g *domain.GeneralLedger) GeneralLedgerResponse {
	return GeneralLedgerResponse{
		Transactions: ToLedgerEntryResponses(g.Transactions),
		Totals:       g.Totals,
		AccountCount: g.AccountCount,
	}
}
