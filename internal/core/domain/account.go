package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "asset"
	Liability AccountType = "liability"
	Equity    AccountType = "equity"
	Revenue   AccountType = "revenue"
	Expense   AccountType = "expense"
)

// IsValid reports whether t is one of the five account types.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// Well-known subtypes used by sub-ledgers to locate default accounts.
const (
	SubtypeCash               = "cash"
	SubtypeAccountsReceivable = "accounts_receivable"
	SubtypeAccountsPayable    = "accounts_payable"
	SubtypeAccruedLiabilities = "accrued_liabilities"
)

// Account represents a chart-of-accounts record.
// Balance is a present-day snapshot; the ledger engine reads it but never writes it.
type Account struct {
	AccountID      string          `json:"accountID"`
	OrganizationID *string         `json:"organizationID,omitempty"` // nil = global scope
	Code           string          `json:"code"`                     // unique per organization scope
	Name           string          `json:"name"`
	AccountType    AccountType     `json:"accountType"`
	Subtype        string          `json:"subtype"`
	CurrencyCode   string          `json:"currencyCode"`
	Description    string          `json:"description"`
	IsActive       bool            `json:"isActive"`
	Balance        decimal.Decimal `json:"balance"`
	AuditFields
}
