package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is a row of the journal_entries table.
type JournalEntry struct {
	JournalEntryID string          `db:"journal_entry_id"`
	OrganizationID *string         `db:"organization_id"`
	EntryNumber    string          `db:"entry_number"`
	EntryDate      time.Time       `db:"entry_date"`
	EntryType      string          `db:"entry_type"`
	Status         string          `db:"status"`
	TotalDebit     decimal.Decimal `db:"total_debit"`
	TotalCredit    decimal.Decimal `db:"total_credit"`
	IsBalanced     bool            `db:"is_balanced"`
	Reference      string          `db:"reference"`
	Notes          string          `db:"notes"`
	Version        int             `db:"version"`
	PostedAt       *time.Time      `db:"posted_at"`
	VoidedAt       *time.Time      `db:"voided_at"`
	AuditFields
}

// JournalEntryLine is a row of the journal_entry_lines table. Account code and
// name are copied onto the line when it is written.
type JournalEntryLine struct {
	LineID         string          `db:"line_id"`
	JournalEntryID string          `db:"journal_entry_id"`
	LineNumber     int             `db:"line_number"`
	AccountID      string          `db:"account_id"`
	AccountCode    string          `db:"account_code"`
	AccountName    string          `db:"account_name"`
	Description    string          `db:"description"`
	Debit          decimal.Decimal `db:"debit"`
	Credit         decimal.Decimal `db:"credit"`
	CreatedAt      time.Time       `db:"created_at"`
}
