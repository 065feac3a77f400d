package services

import (
	portsrepo "github.com/omarrayoubb/gateway-sub003/internal/core/ports/repositories"
	portssvc "github.com/omarrayoubb/gateway-sub003/internal/core/ports/services"
	"github.com/omarrayoubb/gateway-sub003/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// locker may be nil, in which case post/void rely on the optimistic version check alone.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, locker portssvc.EntryLocker) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Account = NewAccountService(repos.AccountRepo)

	// The projector is shared by journal, posting and the sub-ledger sync endpoint.
	container.Ledger = NewLedgerService(repos.LedgerRepo, repos.JournalRepo, repos.AccountRepo, repos.TxManager)

	postingOpts := []PostingServiceOption{
		WithStrictSync(cfg.LedgerStrictSync),
		WithBalanceTolerance(cfg.BalanceTolerance),
	}
	if locker != nil {
		postingOpts = append(postingOpts, WithEntryLocker(locker))
	}
	container.Posting = NewPostingService(repos.JournalRepo, container.Ledger, repos.TxManager, postingOpts...)

	container.Journal = NewJournalService(
		repos.JournalRepo,
		container.Account,
		container.Ledger,
		repos.TxManager,
		WithJournalStrictSync(cfg.LedgerStrictSync),
		WithJournalBalanceTolerance(cfg.BalanceTolerance),
	)

	container.Reporting = NewReportingService(repos.AccountRepo, repos.LedgerRepo)
	container.Subledger = NewSubledgerService(container.Account, container.Journal, container.Posting)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.AccountSvcFacade = (*accountService)(nil)
	_ portssvc.LedgerSvcFacade  = (*ledgerService)(nil)
)
