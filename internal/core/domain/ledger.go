package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType tags the kind of source a projected ledger row came from.
// The set is closed; every variant feeds the projector through the same LedgerSource shape.
type TransactionType string

const (
	TxnJournalEntry TransactionType = "journal_entry"
	TxnInvoice      TransactionType = "invoice"
	TxnPayment      TransactionType = "payment"
	TxnBill         TransactionType = "bill"
	TxnExpense      TransactionType = "expense"
)

// TransactionTypes lists every variant.
var TransactionTypes = []TransactionType{TxnJournalEntry, TxnInvoice, TxnPayment, TxnBill, TxnExpense}

// ParseTransactionType validates s against the closed set.
func ParseTransactionType(s string) (TransactionType, error) {
	for _, t := range TransactionTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown transaction type %q", s)
}

// ParseSourceTransactionType accepts only the types sub-ledgers own. Journal entry rows
// are written by posting, voiding and rebuilding, never by an outside caller.
func ParseSourceTransactionType(s string) (TransactionType, error) {
	t, err := ParseTransactionType(s)
	if err != nil {
		return "", err
	}
	if t == TxnJournalEntry {
		return "", fmt.Errorf("transaction type %q is projected by the posting engine", s)
	}
	return t, nil
}

// GeneralLedgerEntry is one projected row per (transaction, account, type).
// Balance is never trusted from storage; readers recompute it.
type GeneralLedgerEntry struct {
	EntryID         string          `json:"entryID"`
	AccountID       string          `json:"accountID"`
	AccountCode     string          `json:"accountCode,omitempty"`
	AccountName     string          `json:"accountName,omitempty"`
	TransactionDate time.Time       `json:"transactionDate"`
	TransactionType TransactionType `json:"transactionType"`
	TransactionID   string          `json:"transactionID"`
	Reference       string          `json:"reference,omitempty"`
	Description     string          `json:"description,omitempty"`
	Debit           decimal.Decimal `json:"debit"`
	Credit          decimal.Decimal `json:"credit"`
	Balance         decimal.Decimal `json:"balance"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// Net is debit minus credit.
func (e GeneralLedgerEntry) Net() decimal.Decimal {
	return e.Debit.Sub(e.Credit)
}

// LedgerSourceLine is the minimal tuple the projector needs per account.
type LedgerSourceLine struct {
	AccountID   string          `json:"accountID"`
	Description string          `json:"description,omitempty"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// LedgerSource is a posted transaction of any type, ready for projection.
type LedgerSource struct {
	TransactionID   string             `json:"transactionID"`
	TransactionType TransactionType    `json:"transactionType"`
	TransactionDate time.Time          `json:"transactionDate"`
	Reference       string             `json:"reference,omitempty"`
	Description     string             `json:"description,omitempty"`
	Lines           []LedgerSourceLine `json:"lines"`
}

// SourceFromJournalEntry builds the projector input for a journal entry.
func SourceFromJournalEntry(e JournalEntry) LedgerSource {
	src := LedgerSource{
		TransactionID:   e.JournalEntryID,
		TransactionType: TxnJournalEntry,
		TransactionDate: DateOf(e.EntryDate),
		Reference:       e.EntryNumber,
		Description:     e.Notes,
		Lines:           make([]LedgerSourceLine, 0, len(e.Lines)),
	}
	if e.Reference != "" {
		src.Reference = e.Reference
	}
	for _, l := range e.Lines {
		src.Lines = append(src.Lines, LedgerSourceLine{
			AccountID:   l.AccountID,
			Description: l.Description,
			Debit:       l.Debit,
			Credit:      l.Credit,
		})
	}
	return src
}

// ProjectedRows collapses the source into one row per account, which is the
// uniqueness key of the projection. Order follows first appearance.
func (s LedgerSource) ProjectedRows() []GeneralLedgerEntry {
	idx := make(map[string]int, len(s.Lines))
	rows := make([]GeneralLedgerEntry, 0, len(s.Lines))
	for _, l := range s.Lines {
		if i, ok := idx[l.AccountID]; ok {
			rows[i].Debit = rows[i].Debit.Add(l.Debit)
			rows[i].Credit = rows[i].Credit.Add(l.Credit)
			if rows[i].Description == "" {
				rows[i].Description = l.Description
			}
			continue
		}
		desc := l.Description
		if desc == "" {
			desc = s.Description
		}
		idx[l.AccountID] = len(rows)
		rows = append(rows, GeneralLedgerEntry{
			AccountID:       l.AccountID,
			TransactionDate: DateOf(s.TransactionDate),
			TransactionType: s.TransactionType,
			TransactionID:   s.TransactionID,
			Reference:       s.Reference,
			Description:     desc,
			Debit:           l.Debit,
			Credit:          l.Credit,
			Balance:         decimal.Zero,
		})
	}
	return rows
}

// LedgerTotals sums debits and credits over a set of rows.
type LedgerTotals struct {
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
	NetChange   decimal.Decimal `json:"netChange"`
}

// Reconciliation reports whether the projection looked complete for the window
// used to reconstruct an opening balance.
type Reconciliation struct {
	Complete         bool `json:"complete"`
	DraftEntries     int  `json:"draftEntries"`
	UnprojectedLines int  `json:"unprojectedLines"`
}

// AccountLedger is the reconstructed view of one account over a window.
type AccountLedger struct {
	Account        Account              `json:"account"`
	PeriodStart    *time.Time           `json:"periodStart,omitempty"`
	PeriodEnd      *time.Time           `json:"periodEnd,omitempty"`
	OpeningBalance decimal.Decimal      `json:"openingBalance"`
	ClosingBalance decimal.Decimal      `json:"closingBalance"`
	Transactions   []GeneralLedgerEntry `json:"transactions"`
	Totals         LedgerTotals         `json:"totals"`
	Reconciliation Reconciliation       `json:"reconciliation"`
}

// LedgerSortField names the column used to order a general ledger listing.
type LedgerSortField string

const (
	SortByTransactionDate LedgerSortField = "transaction_date"
	SortByAccountCode     LedgerSortField = "account_code"
	SortByDebit           LedgerSortField = "debit"
	SortByCredit          LedgerSortField = "credit"
)

// SortOrder is asc or desc.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// GeneralLedgerFilter selects accounts and a window for queryAll.
type GeneralLedgerFilter struct {
	AccountID   *string
	PeriodStart *time.Time
	PeriodEnd   *time.Time
	SortBy      LedgerSortField
	SortOrder   SortOrder
}

// GeneralLedger is the merged, re-sorted listing across accounts.
type GeneralLedger struct {
	Transactions []GeneralLedgerEntry `json:"transactions"`
	Totals       LedgerTotals         `json:"totals"`
	AccountCount int                  `json:"accountCount"`
}
