package dto

import (
	"github.com/omarrayoubb/gateway-sub003/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerReportParams are the report bounds. They are validated by the reporting
// service so that internal callers get the same checks as HTTP callers.
type LedgerReportParams struct {
	PeriodStart string `form:"periodStart"`
	PeriodEnd   string `form:"periodEnd"`
	AccountType string `form:"accountType"`
}

// LedgerReportRowResponse represents one account in the report response
type LedgerReportRowResponse struct {
	AccountID      string          `json:"accountID"`
	AccountCode    string          `json:"accountCode"`
	AccountName    string          `json:"accountName"`
	AccountType    string          `json:"accountType"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
}

// LedgerReportResponse represents the period ledger report response
type LedgerReportResponse struct {
	PeriodStart string                    `json:"periodStart"`
	PeriodEnd   string                    `json:"periodEnd"`
	AccountType string                    `json:"accountType,omitempty"`
	Accounts    []LedgerReportRowResponse `json:"accounts"`
	Totals      struct {
		Debit      decimal.Decimal `json:"debit"`
		Credit     decimal.Decimal `json:"credit"`
		IsBalanced bool            `json:"isBalanced"`
	} `json:"totals"`
}

// ToLedgerReportResponse converts a domain.LedgerReport.
func ToLedgerReportResponse(r *domain.LedgerReport) LedgerReportResponse {
	resp := LedgerReportResponse{
		PeriodStart: FormatDate(r.PeriodStart),
		PeriodEnd:   FormatDate(r.PeriodEnd),
		Accounts:    make([]LedgerReportRowResponse, len(r.Accounts)),
	}
	if r.AccountType != nil {
		resp.AccountType = string(*r.AccountType)
	}
	for i, row := range r.Accounts {
		resp.Accounts[i] = LedgerReportRowResponse{
			AccountID:      row.AccountID,
			AccountCode:    row.AccountCode,
			AccountName:    row.AccountName,
			AccountType:    string(row.AccountType),
			OpeningBalance: row.OpeningBalance,
			Debit:          row.Debit,
			Credit:         row.Credit,
			ClosingBalance: row.ClosingBalance,
		}
	}
	resp.Totals.Debit = r.Totals.TotalDebit
	resp.Totals.Credit = r.Totals.TotalCredit
	resp.Totals.IsBalanced = r.Totals.IsBalanced
	return resp
}
