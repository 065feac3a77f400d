package domain_test

import (
	"errors"
	"testing"

	"github.com/omarrayoubb/gateway-sub003/internal/apperrors"
	"github.com/omarrayoubb/gateway-sub003/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(debit, credit string) domain.JournalEntryLine {
	return domain.JournalEntryLine{
		AccountID: "acc",
		Debit:     decimal.RequireFromString(debit),
		Credit:    decimal.RequireFromString(credit),
	}
}

func TestComputeTotals(t *testing.T) {
	tests := []struct {
		name       string
		lines      []domain.JournalEntryLine
		debit      string
		credit     string
		difference string
		balanced   bool
	}{
		{
			name:       "no lines",
			lines:      nil,
			debit:      "0",
			credit:     "0",
			difference: "0",
			balanced:   true,
		},
		{
			name:       "balanced pair",
			lines:      []domain.JournalEntryLine{line("100", "0"), line("0", "100")},
			debit:      "100",
			credit:     "100",
			difference: "0",
			balanced:   true,
		},
		{
			name:       "off by ten",
			lines:      []domain.JournalEntryLine{line("100", "0"), line("0", "90")},
			debit:      "100",
			credit:     "90",
			difference: "10",
			balanced:   false,
		},
		{
			name:       "sub-cent gap is tolerated",
			lines:      []domain.JournalEntryLine{line("100.005", "0"), line("0", "100")},
			debit:      "100.005",
			credit:     "100",
			difference: "0.005",
			balanced:   true,
		},
		{
			name:       "exactly one cent is not tolerated",
			lines:      []domain.JournalEntryLine{line("100.01", "0"), line("0", "100")},
			debit:      "100.01",
			credit:     "100",
			difference: "0.01",
			balanced:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.ComputeTotals(tt.lines)
			assert.True(t, decimal.RequireFromString(tt.debit).Equal(got.TotalDebit), "debit %s", got.TotalDebit)
			assert.True(t, decimal.RequireFromString(tt.credit).Equal(got.TotalCredit), "credit %s", got.TotalCredit)
			assert.True(t, decimal.RequireFromString(tt.difference).Equal(got.Difference), "difference %s", got.Difference)
			assert.Equal(t, tt.balanced, got.IsBalanced)
		})
	}
}

func TestTotals_MismatchError(t *testing.T) {
	totals := domain.ComputeTotals([]domain.JournalEntryLine{line("100", "0"), line("0", "90")})

	err := totals.MismatchError()
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrBalanceMismatch))

	var mismatch *apperrors.BalanceMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.True(t, mismatch.Difference.Equal(decimal.NewFromInt(10)))
	assert.True(t, mismatch.TotalDebit.Equal(decimal.NewFromInt(100)))
	assert.True(t, mismatch.TotalCredit.Equal(decimal.NewFromInt(90)))

	assert.NoError(t, domain.ComputeTotals(nil).MismatchError())
}

func TestJournalEntryLine_Validate(t *testing.T) {
	tests := []struct {
		name    string
		line    domain.JournalEntryLine
		wantErr bool
	}{
		{name: "debit only", line: line("10", "0")},
		{name: "credit only", line: line("0", "10")},
		{name: "both zero", line: line("0", "0")},
		{name: "both sides", line: line("10", "5"), wantErr: true},
		{name: "negative debit", line: line("-1", "0"), wantErr: true},
		{name: "negative credit", line: line("0", "-1"), wantErr: true},
		{name: "missing account", line: domain.JournalEntryLine{Debit: decimal.NewFromInt(1)}, wantErr: true},
		{name: "four decimals", line: line("10.1234", "0")},
		{name: "trailing zeros", line: line("0", "10.123400")},
		{name: "five decimals", line: line("10.12345", "0"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.line.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrValidation)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestJournalEntry_Transitions(t *testing.T) {
	withLines := []domain.JournalEntryLine{line("1", "0"), line("0", "1")}

	tests := []struct {
		name   string
		entry  domain.JournalEntry
		check  func(*domain.JournalEntry) error
		allows bool
	}{
		{"edit draft", domain.JournalEntry{Status: domain.StatusDraft}, (*domain.JournalEntry).CanEdit, true},
		{"edit posted", domain.JournalEntry{Status: domain.StatusPosted}, (*domain.JournalEntry).CanEdit, false},
		{"edit void", domain.JournalEntry{Status: domain.StatusVoid}, (*domain.JournalEntry).CanEdit, false},
		{"remove draft", domain.JournalEntry{Status: domain.StatusDraft}, (*domain.JournalEntry).CanRemove, true},
		{"remove posted", domain.JournalEntry{Status: domain.StatusPosted}, (*domain.JournalEntry).CanRemove, false},
		{"post draft", domain.JournalEntry{Status: domain.StatusDraft, Lines: withLines}, (*domain.JournalEntry).CanPost, true},
		{"post empty draft", domain.JournalEntry{Status: domain.StatusDraft}, (*domain.JournalEntry).CanPost, false},
		{"post posted", domain.JournalEntry{Status: domain.StatusPosted, Lines: withLines}, (*domain.JournalEntry).CanPost, false},
		{"post void", domain.JournalEntry{Status: domain.StatusVoid, Lines: withLines}, (*domain.JournalEntry).CanPost, false},
		{"void posted", domain.JournalEntry{Status: domain.StatusPosted}, (*domain.JournalEntry).CanVoid, true},
		{"void void", domain.JournalEntry{Status: domain.StatusVoid}, (*domain.JournalEntry).CanVoid, false},
		{"void draft", domain.JournalEntry{Status: domain.StatusDraft}, (*domain.JournalEntry).CanVoid, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := tt.entry
			err := tt.check(&entry)
			if tt.allows {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var stateErr *apperrors.InvalidStateError
			require.True(t, errors.As(err, &stateErr))
			assert.Equal(t, string(tt.entry.Status), stateErr.Status)
			assert.ErrorIs(t, err, apperrors.ErrInvalidState)
		})
	}
}

func TestJournalEntry_AppendVoidReason(t *testing.T) {
	e := domain.JournalEntry{}
	e.AppendVoidReason("data entry error")
	assert.Equal(t, "[VOID] data entry error", e.Notes)

	e = domain.JournalEntry{Notes: "monthly rent"}
	e.AppendVoidReason("")
	assert.Equal(t, "monthly rent\n[VOID]", e.Notes)
}

func TestNumberLines(t *testing.T) {
	lines := []domain.JournalEntryLine{line("1", "0"), line("0", "1"), line("0", "0")}
	domain.NumberLines(lines)
	for i, l := range lines {
		assert.Equal(t, i+1, l.LineNumber)
	}
}
