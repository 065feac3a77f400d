package services

import (
	"context"
	"time"

	"github.com/omarrayoubb/gateway-sub003/internal/core/domain"
)

// LedgerProjectorSvc maintains the general ledger projection.
type LedgerProjectorSvc interface {
	// SyncTransaction upserts one row per account of a posted source transaction.
	SyncTransaction(ctx context.Context, source domain.LedgerSource) error

	// RemoveTransaction erases every projected row of a source transaction.
	RemoveTransaction(ctx context.Context, transactionID string, transactionType domain.TransactionType) error

	// RebuildAccountLedger replays all posted journal entries touching the account and
	// returns the number of rows projected.
	RebuildAccountLedger(ctx context.Context, accountID string) (int, error)
}

// LedgerQuerySvc reconstructs balances from the projection.
type LedgerQuerySvc interface {
	// GetAccountLedger returns the account's rows in the window with running balances.
	GetAccountLedger(ctx context.Context, accountID string, periodStart, periodEnd *time.Time) (*domain.AccountLedger, error)

	// GetGeneralLedger reconstructs each selected account and merges the rows.
	GetGeneralLedger(ctx context.Context, filter domain.GeneralLedgerFilter) (*domain.GeneralLedger, error)
}

// LedgerSvcFacade combines projector and query operations.
type LedgerSvcFacade interface {
	LedgerProjectorSvc
	LedgerQuerySvc
}
