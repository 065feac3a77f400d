package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AuditFields mirrors the audit columns shared by the ledger tables.
type AuditFields struct {
	CreatedAt     time.Time `db:"created_at"`
	CreatedBy     string    `db:"created_by"`
	LastUpdatedAt time.Time `db:"last_updated_at"`
	LastUpdatedBy string    `db:"last_updated_by"`
}

// AccountType is stored lowercase in the accounts table.
type AccountType string

// Account is a row of the accounts table.
type Account struct {
	AccountID      string          `db:"account_id"`
	OrganizationID *string         `db:"organization_id"` // Nullable
	Code           string          `db:"code"`
	Name           string          `db:"name"`
	AccountType    AccountType     `db:"account_type"`
	Subtype        string          `db:"subtype"`
	CurrencyCode   string          `db:"currency_code"`
	Description    string          `db:"description"`
	IsActive       bool            `db:"is_active"`
	Balance        decimal.Decimal `db:"balance"`
	AuditFields
}
