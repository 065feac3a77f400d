package repositories

import (
	"context"
	"time"

	"github.com/omarrayoubb/gateway-sub003/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerReader defines read operations over the projected general ledger.
type LedgerReader interface {
	// ListLedgerEntriesByAccount returns the account's rows with from <= transaction_date <= to
	// (either bound optional), ordered by transaction date, creation time and id.
	ListLedgerEntriesByAccount(ctx context.Context, accountID string, from, to *time.Time) ([]domain.GeneralLedgerEntry, error)

	// SumNetSince returns Σ(debit − credit) of the account's rows dated on or after from,
	// or of all rows when from is nil.
	SumNetSince(ctx context.Context, accountID string, from *time.Time) (decimal.Decimal, error)

	// ListLedgerEntriesByTransaction returns the rows projected for one source transaction.
	ListLedgerEntriesByTransaction(ctx context.Context, transactionID string, transactionType domain.TransactionType) ([]domain.GeneralLedgerEntry, error)

	// CountUnprojectedPostedLines counts lines of posted journal entries on the account,
	// dated on or after from, that have no matching projected row.
	CountUnprojectedPostedLines(ctx context.Context, accountID string, from *time.Time) (int, error)
}

// LedgerWriter defines write operations over the projected general ledger.
type LedgerWriter interface {
	// UpsertLedgerEntries inserts rows or updates the existing row with the same
	// (transaction_id, account_id, transaction_type).
	UpsertLedgerEntries(ctx context.Context, rows []domain.GeneralLedgerEntry) error

	// DeleteLedgerEntriesByTransaction removes every row of the source transaction.
	DeleteLedgerEntriesByTransaction(ctx context.Context, transactionID string, transactionType domain.TransactionType) (int64, error)

	// DeleteStaleLedgerEntries removes rows of the source transaction whose account is not in keepAccountIDs.
	DeleteStaleLedgerEntries(ctx context.Context, transactionID string, transactionType domain.TransactionType, keepAccountIDs []string) (int64, error)

	// DeleteLedgerEntriesByAccount removes the account's rows of the given type.
	DeleteLedgerEntriesByAccount(ctx context.Context, accountID string, transactionType domain.TransactionType) (int64, error)
}

// LedgerRepositoryFacade combines ledger read and write operations.
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}
