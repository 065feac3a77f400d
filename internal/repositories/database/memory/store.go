// Package memory provides an in-memory implementation of the repository ports,
// used by tests and by STORAGE_DRIVER=memory for local development.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/omarrayoubb/gateway-sub003/internal/core/domain"
	portsrepo "github.com/omarrayoubb/gateway-sub003/internal/core/ports/repositories"
)

type txKey struct{}

// Store keeps accounts, journal entries and the ledger projection in maps guarded by one mutex.
// Transactions are serialized; a failed one undoes only the keys it wrote itself.
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex

	accounts map[string]domain.Account
	entries  map[string]domain.JournalEntry
	ledger   map[string]domain.GeneralLedgerEntry

	now func() time.Time
}

var (
	_ portsrepo.AccountRepositoryFacade = (*Store)(nil)
	_ portsrepo.JournalRepositoryFacade = (*Store)(nil)
	_ portsrepo.LedgerRepositoryFacade  = (*Store)(nil)
	_ portsrepo.TransactionManager      = (*Store)(nil)
)

func NewStore() *Store {
	return &Store{
		accounts: make(map[string]domain.Account),
		entries:  make(map[string]domain.JournalEntry),
		ledger:   make(map[string]domain.GeneralLedgerEntry),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// NewRepositoryProvider exposes one Store through every repository port.
func NewRepositoryProvider(s *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo: s,
		JournalRepo: s,
		LedgerRepo:  s,
		TxManager:   s,
	}
}

// WithTransaction implements portsrepo.TransactionManager.
func (s *Store) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if undoFrom(ctx) != nil {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	undo := newUndoLog()
	if err := fn(context.WithValue(ctx, txKey{}, undo)); err != nil {
		s.rollback(undo)
		return err
	}
	return nil
}

// undoLog holds the value each key had before the transaction first wrote it.
// A nil value means the key did not exist.
type undoLog struct {
	accounts map[string]*domain.Account
	entries  map[string]*domain.JournalEntry
	ledger   map[string]*domain.GeneralLedgerEntry
}

func newUndoLog() *undoLog {
	return &undoLog{
		accounts: make(map[string]*domain.Account),
		entries:  make(map[string]*domain.JournalEntry),
		ledger:   make(map[string]*domain.GeneralLedgerEntry),
	}
}

func undoFrom(ctx context.Context) *undoLog {
	u, _ := ctx.Value(txKey{}).(*undoLog)
	return u
}

// The record helpers must be called with s.mu held, before the key is changed.

func (s *Store) recordAccountLocked(ctx context.Context, id string) {
	u := undoFrom(ctx)
	if u == nil {
		return
	}
	if _, seen := u.accounts[id]; seen {
		return
	}
	if a, ok := s.accounts[id]; ok {
		u.accounts[id] = &a
		return
	}
	u.accounts[id] = nil
}

func (s *Store) recordEntryLocked(ctx context.Context, id string) {
	u := undoFrom(ctx)
	if u == nil {
		return
	}
	if _, seen := u.entries[id]; seen {
		return
	}
	if e, ok := s.entries[id]; ok {
		e = cloneEntry(e)
		u.entries[id] = &e
		return
	}
	u.entries[id] = nil
}

func (s *Store) recordLedgerLocked(ctx context.Context, id string) {
	u := undoFrom(ctx)
	if u == nil {
		return
	}
	if _, seen := u.ledger[id]; seen {
		return
	}
	if r, ok := s.ledger[id]; ok {
		u.ledger[id] = &r
		return
	}
	u.ledger[id] = nil
}

func (s *Store) rollback(u *undoLog) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, a := range u.accounts {
		if a == nil {
			delete(s.accounts, id)
			continue
		}
		s.accounts[id] = *a
	}
	for id, e := range u.entries {
		if e == nil {
			delete(s.entries, id)
			continue
		}
		s.entries[id] = *e
	}
	for id, r := range u.ledger {
		if r == nil {
			delete(s.ledger, id)
			continue
		}
		s.ledger[id] = *r
	}
}

func cloneEntry(e domain.JournalEntry) domain.JournalEntry {
	if e.Lines != nil {
		lines := make([]domain.JournalEntryLine, len(e.Lines))
		copy(lines, e.Lines)
		e.Lines = lines
	}
	return e
}
