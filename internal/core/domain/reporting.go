package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerReportRow is one account's line in the period report.
type LedgerReportRow struct {
	AccountID      string          `json:"accountID"`
	AccountCode    string          `json:"accountCode"`
	AccountName    string          `json:"accountName"`
	AccountType    AccountType     `json:"accountType"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
}

// LedgerReportTotals holds the grand totals used as a trial-balance check.
type LedgerReportTotals struct {
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
	IsBalanced  bool            `json:"isBalanced"`
}

// LedgerReport is the trial-balance-style period summary.
type LedgerReport struct {
	PeriodStart time.Time          `json:"periodStart"`
	PeriodEnd   time.Time          `json:"periodEnd"`
	AccountType *AccountType       `json:"accountType,omitempty"`
	Accounts    []LedgerReportRow  `json:"accounts"`
	Totals      LedgerReportTotals `json:"totals"`
}
