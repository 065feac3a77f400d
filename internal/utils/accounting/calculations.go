package accounting

import (
	"sort"
	"time"

	"github.com/omarrayoubb/gateway-sub003/internal/core/domain"
	"github.com/shopspring/decimal"
)

// NetOf returns Σ(debit − credit) over rows.
func NetOf(rows []domain.GeneralLedgerEntry) decimal.Decimal {
	net := decimal.Zero
	for _, r := range rows {
		net = net.Add(r.Net())
	}
	return net
}

// NetSince returns Σ(debit − credit) over rows dated on or after from. A nil from covers every row.
func NetSince(rows []domain.GeneralLedgerEntry, from *time.Time) decimal.Decimal {
	net := decimal.Zero
	for _, r := range rows {
		if from != nil && r.TransactionDate.Before(domain.DateOf(*from)) {
			continue
		}
		net = net.Add(r.Net())
	}
	return net
}

// OpeningBalance walks the present-day snapshot backward: the balance at the start of
// the window is the current balance minus everything projected since then.
//
// This only holds if every transaction affecting the account since the window start is
// in the projection. Drafts and unprojected posted entries make the result wrong.
func OpeningBalance(currentBalance, netSinceStart decimal.Decimal) decimal.Decimal {
	return currentBalance.Sub(netSinceStart)
}

// ApplyRunningBalances walks rows forward from opening, writing each row's running
// balance (debit-normal). It returns the closing balance and the window totals.
// rows must already be in chronological order.
func ApplyRunningBalances(opening decimal.Decimal, rows []domain.GeneralLedgerEntry) (decimal.Decimal, domain.LedgerTotals) {
	running := opening
	totals := domain.LedgerTotals{TotalDebit: decimal.Zero, TotalCredit: decimal.Zero}
	for i := range rows {
		running = running.Add(rows[i].Net())
		rows[i].Balance = running
		totals.TotalDebit = totals.TotalDebit.Add(rows[i].Debit)
		totals.TotalCredit = totals.TotalCredit.Add(rows[i].Credit)
	}
	totals.NetChange = totals.TotalDebit.Sub(totals.TotalCredit)
	return running, totals
}

// InWindow reports whether date lies within [from, to]; nil bounds are open.
func InWindow(date time.Time, from, to *time.Time) bool {
	d := domain.DateOf(date)
	if from != nil && d.Before(domain.DateOf(*from)) {
		return false
	}
	if to != nil && d.After(domain.DateOf(*to)) {
		return false
	}
	return true
}

// SumTotals adds up debits and credits of rows.
func SumTotals(rows []domain.GeneralLedgerEntry) domain.LedgerTotals {
	t := domain.LedgerTotals{TotalDebit: decimal.Zero, TotalCredit: decimal.Zero}
	for _, r := range rows {
		t.TotalDebit = t.TotalDebit.Add(r.Debit)
		t.TotalCredit = t.TotalCredit.Add(r.Credit)
	}
	t.NetChange = t.TotalDebit.Sub(t.TotalCredit)
	return t
}

// SortLedgerEntries orders rows by field and order. Unknown or empty values default to
// transaction_date ascending. Ties fall back to date, account code, creation time and id
// so that the result is deterministic.
func SortLedgerEntries(rows []domain.GeneralLedgerEntry, field domain.LedgerSortField, order domain.SortOrder) {
	desc := order == domain.SortDesc

	primary := func(a, b domain.GeneralLedgerEntry) int {
		switch field {
		case domain.SortByAccountCode:
			return compareStrings(a.AccountCode, b.AccountCode)
		case domain.SortByDebit:
			return a.Debit.Cmp(b.Debit)
		case domain.SortByCredit:
			return a.Credit.Cmp(b.Credit)
		default:
			return a.TransactionDate.Compare(b.TransactionDate)
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if c := primary(a, b); c != 0 {
			if desc {
				return c > 0
			}
			return c < 0
		}
		if c := a.TransactionDate.Compare(b.TransactionDate); c != 0 {
			return c < 0
		}
		if c := compareStrings(a.AccountCode, b.AccountCode); c != 0 {
			return c < 0
		}
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c < 0
		}
		return a.EntryID < b.EntryID
	})
}

func compareStrings(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
