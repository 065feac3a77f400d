package dto

import (
	"github.com/shopspring/decimal"
)

// RecordExpenseRequest books an expense through the ledger engine.
// The counter-account is PaymentAccountID when given, otherwise the default cash account,
// or the default accrued liabilities account when Accrued is set.
type RecordExpenseRequest struct {
	OrganizationID   *string         `json:"organizationID"`
	ExpenseID        string          `json:"expenseID" binding:"max=100"`
	ExpenseAccountID string          `json:"expenseAccountID" binding:"required"`
	PaymentAccountID *string         `json:"paymentAccountID"`
	Accrued          bool            `json:"accrued"`
	Amount           decimal.Decimal `json:"amount" binding:"gt=0"`
	ExpenseDate      string          `json:"expenseDate" binding:"required,datetime=2006-01-02"`
	Description      string          `json:"description" binding:"max=500"`
	Reference        string          `json:"reference" binding:"max=255"`
}
