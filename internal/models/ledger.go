package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// GeneralLedgerEntry is a row of the general_ledger_entries table.
// The stored balance column is always written as zero.
type GeneralLedgerEntry struct {
	EntryID         string          `db:"entry_id"`
	AccountID       string          `db:"account_id"`
	TransactionDate time.Time       `db:"transaction_date"`
	TransactionType string          `db:"transaction_type"`
	TransactionID   string          `db:"transaction_id"`
	Reference       string          `db:"reference"`
	Description     string          `db:"description"`
	Debit           decimal.Decimal `db:"debit"`
	Credit          decimal.Decimal `db:"credit"`
	Balance         decimal.Decimal `db:"balance"`
	CreatedAt       time.Time       `db:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at"`

	// Joined from accounts on reads.
	AccountCode string `db:"account_code"`
	AccountName string `db:"account_name"`
}
