package domain

import (
	"time"

	"github.com/omarrayoubb/gateway-sub003/internal/apperrors"
	"github.com/shopspring/decimal"
)

// EntryType classifies how a journal entry came to exist.
type EntryType string

const (
	EntryManual     EntryType = "manual"
	EntryAutomated  EntryType = "automated"
	EntryAdjustment EntryType = "adjustment"
	EntryClosing    EntryType = "closing"
)

// IsValid reports whether t is a known entry type.
func (t EntryType) IsValid() bool {
	switch t {
	case EntryManual, EntryAutomated, EntryAdjustment, EntryClosing:
		return true
	}
	return false
}

// EntryStatus indicates the lifecycle state of a journal entry.
//
//	draft --post--> posted --void--> void
//	draft --remove--> (gone)
type EntryStatus string

const (
	StatusDraft  EntryStatus = "draft"
	StatusPosted EntryStatus = "posted"
	StatusVoid   EntryStatus = "void"
)

// IsValid reports whether s is a known status.
func (s EntryStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusPosted, StatusVoid:
		return true
	}
	return false
}

// DefaultBalanceTolerance is the largest debit/credit gap still considered balanced (exclusive).
var DefaultBalanceTolerance = decimal.New(1, -2)

// JournalEntry is the aggregate root: a header plus its ordered lines.
type JournalEntry struct {
	JournalEntryID string          `json:"journalEntryID"`
	OrganizationID *string         `json:"organizationID,omitempty"`
	EntryNumber    string          `json:"entryNumber"`
	EntryDate      time.Time       `json:"entryDate"`
	EntryType      EntryType       `json:"entryType"`
	Status         EntryStatus     `json:"status"`
	TotalDebit     decimal.Decimal `json:"totalDebit"`
	TotalCredit    decimal.Decimal `json:"totalCredit"`
	IsBalanced     bool            `json:"isBalanced"`
	Reference      string          `json:"reference,omitempty"`
	Notes          string          `json:"notes,omitempty"`
	Version        int             `json:"version"`
	PostedAt       *time.Time      `json:"postedAt,omitempty"`
	VoidedAt       *time.Time      `json:"voidedAt,omitempty"`
	AuditFields
	Lines []JournalEntryLine `json:"lines"`
}

// JournalEntryLine is one debit or credit posting against an account.
// AccountCode and AccountName are captured when the line is created.
type JournalEntryLine struct {
	LineID         string          `json:"lineID"`
	JournalEntryID string          `json:"journalEntryID"`
	LineNumber     int             `json:"lineNumber"`
	AccountID      string          `json:"accountID"`
	AccountCode    string          `json:"accountCode"`
	AccountName    string          `json:"accountName"`
	Description    string          `json:"description,omitempty"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// Validate rejects negative amounts and lines carrying both a debit and a credit.
// AmountScale is the number of decimal places amounts are stored with.
const AmountScale = 4

// FitsAmountScale reports whether d can be stored without rounding.
func FitsAmountScale(d decimal.Decimal) bool {
	return d.Equal(d.Round(AmountScale))
}

func (l JournalEntryLine) Validate() error {
	if l.AccountID == "" {
		return apperrors.NewValidationError("line %d: account is required", l.LineNumber)
	}
	if l.Debit.IsNegative() || l.Credit.IsNegative() {
		return apperrors.NewValidationError("line %d: debit and credit must not be negative", l.LineNumber)
	}
	if !l.Debit.IsZero() && !l.Credit.IsZero() {
		return apperrors.NewValidationError("line %d: a line cannot carry both a debit and a credit", l.LineNumber)
	}
	if !FitsAmountScale(l.Debit) || !FitsAmountScale(l.Credit) {
		return apperrors.NewValidationError("line %d: amounts allow at most %d decimal places", l.LineNumber, AmountScale)
	}
	return nil
}

// Net is debit minus credit.
func (l JournalEntryLine) Net() decimal.Decimal {
	return l.Debit.Sub(l.Credit)
}

// Totals is the derived summary of a set of lines.
type Totals struct {
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
	Difference  decimal.Decimal `json:"difference"`
	IsBalanced  bool            `json:"isBalanced"`
}

// ComputeTotals sums lines using DefaultBalanceTolerance.
func ComputeTotals(lines []JournalEntryLine) Totals {
	return ComputeTotalsWithTolerance(lines, DefaultBalanceTolerance)
}

// ComputeTotalsWithTolerance sums debits and credits and marks the result balanced
// when |debit - credit| < tolerance.
func ComputeTotalsWithTolerance(lines []JournalEntryLine, tolerance decimal.Decimal) Totals {
	debit, credit := decimal.Zero, decimal.Zero
	for _, l := range lines {
		debit = debit.Add(l.Debit)
		credit = credit.Add(l.Credit)
	}
	diff := debit.Sub(credit).Abs()
	return Totals{
		TotalDebit:  debit,
		TotalCredit: credit,
		Difference:  diff,
		IsBalanced:  diff.LessThan(tolerance),
	}
}

// MismatchError converts unbalanced totals into a *apperrors.BalanceMismatchError.
func (t Totals) MismatchError() error {
	if t.IsBalanced {
		return nil
	}
	return &apperrors.BalanceMismatchError{
		TotalDebit:  t.TotalDebit,
		TotalCredit: t.TotalCredit,
		Difference:  t.Difference,
	}
}

// ApplyTotals copies derived totals onto the header cache.
func (e *JournalEntry) ApplyTotals(t Totals) {
	e.TotalDebit = t.TotalDebit
	e.TotalCredit = t.TotalCredit
	e.IsBalanced = t.IsBalanced
}

// NumberLines assigns sequential line numbers starting at 1.
func NumberLines(lines []JournalEntryLine) {
	for i := range lines {
		lines[i].LineNumber = i + 1
	}
}

func (e *JournalEntry) CanEdit() error {
	if e.Status != StatusDraft {
		return apperrors.NewInvalidStateError("update", string(e.Status), "only draft entries can be modified")
	}
	return nil
}

func (e *JournalEntry) CanRemove() error {
	if e.Status != StatusDraft {
		return apperrors.NewInvalidStateError("delete", string(e.Status), "only draft entries can be deleted")
	}
	return nil
}

func (e *JournalEntry) CanPost() error {
	if e.Status != StatusDraft {
		return apperrors.NewInvalidStateError("post", string(e.Status), "entry is not a draft")
	}
	if len(e.Lines) == 0 {
		return apperrors.NewInvalidStateError("post", string(e.Status), "nothing to post")
	}
	return nil
}

func (e *JournalEntry) CanVoid() error {
	switch e.Status {
	case StatusVoid:
		return apperrors.NewInvalidStateError("void", string(e.Status), "entry is already void")
	case StatusDraft:
		return apperrors.NewInvalidStateError("void", string(e.Status), "only posted entries can be voided")
	}
	return nil
}

// AppendVoidReason appends "[VOID] reason" to the notes.
func (e *JournalEntry) AppendVoidReason(reason string) {
	marker := "[VOID]"
	if reason != "" {
		marker += " " + reason
	}
	if e.Notes == "" {
		e.Notes = marker
		return
	}
	e.Notes = e.Notes + "\n" + marker
}
