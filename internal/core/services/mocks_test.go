package services_test

import (
	"context"
	"time"

	"github.com/omarrayoubb/gateway-sub003/internal/core/domain"
	portsrepo "github.com/omarrayoubb/gateway-sub003/internal/core/ports/repositories"
	portssvc "github.com/omarrayoubb/gateway-sub003/internal/core/ports/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByTypeAndSubtype(ctx context.Context, organizationID *string, accountType domain.AccountType, subtype string) (*domain.Account, error) {
	args := m.Called(ctx, organizationID, accountType, subtype)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, organizationID *string, accountType *domain.AccountType) ([]domain.Account, error) {
	args := m.Called(ctx, organizationID, accountType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

// --- Mock JournalRepository ---
type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepositoryFacade = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) FindJournalEntryByID(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, journalEntryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) EntryNumberExists(ctx context.Context, organizationID *string, entryNumber string) (bool, error) {
	args := m.Called(ctx, organizationID, entryNumber)
	return args.Bool(0), args.Error(1)
}

func (m *MockJournalRepository) ListJournalEntries(ctx context.Context, filter portsrepo.JournalEntryListFilter, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, filter, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.JournalEntry), returnedNextToken, args.Error(2)
}

func (m *MockJournalRepository) FindPostedEntriesByAccount(ctx context.Context, accountID string) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) CountDraftEntriesForAccount(ctx context.Context, accountID string, from *time.Time) (int, error) {
	args := m.Called(ctx, accountID, from)
	return args.Int(0), args.Error(1)
}

func (m *MockJournalRepository) CreateJournalEntry(ctx context.Context, entry domain.JournalEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockJournalRepository) UpdateJournalEntry(ctx context.Context, entry domain.JournalEntry, replaceLines bool, expectedVersion int) error {
	args := m.Called(ctx, entry, replaceLines, expectedVersion)
	return args.Error(0)
}

func (m *MockJournalRepository) UpdateJournalEntryStatus(ctx context.Context, entry domain.JournalEntry, expectedVersion int) error {
	args := m.Called(ctx, entry, expectedVersion)
	return args.Error(0)
}

func (m *MockJournalRepository) DeleteJournalEntry(ctx context.Context, journalEntryID string, expectedVersion int) error {
	args := m.Called(ctx, journalEntryID, expectedVersion)
	return args.Error(0)
}

// --- Mock LedgerRepository ---
type MockLedgerRepository struct {
	mock.Mock
}

var _ portsrepo.LedgerRepositoryFacade = (*MockLedgerRepository)(nil)

func (m *MockLedgerRepository) ListLedgerEntriesByAccount(ctx context.Context, accountID string, from, to *time.Time) ([]domain.GeneralLedgerEntry, error) {
	args := m.Called(ctx, accountID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GeneralLedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) SumNetSince(ctx context.Context, accountID string, from *time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, accountID, from)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockLedgerRepository) ListLedgerEntriesByTransaction(ctx context.Context, transactionID string, transactionType domain.TransactionType) ([]domain.GeneralLedgerEntry, error) {
	args := m.Called(ctx, transactionID, transactionType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GeneralLedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) CountUnprojectedPostedLines(ctx context.Context, accountID string, from *time.Time) (int, error) {
	args := m.Called(ctx, accountID, from)
	return args.Int(0), args.Error(1)
}

func (m *MockLedgerRepository) UpsertLedgerEntries(ctx context.Context, rows []domain.GeneralLedgerEntry) error {
	args := m.Called(ctx, rows)
	return args.Error(0)
}

func (m *MockLedgerRepository) DeleteLedgerEntriesByTransaction(ctx context.Context, transactionID string, transactionType domain.TransactionType) (int64, error) {
	args := m.Called(ctx, transactionID, transactionType)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerRepository) DeleteStaleLedgerEntries(ctx context.Context, transactionID string, transactionType domain.TransactionType, keepAccountIDs []string) (int64, error) {
	args := m.Called(ctx, transactionID, transactionType, keepAccountIDs)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerRepository) DeleteLedgerEntriesByAccount(ctx context.Context, accountID string, transactionType domain.TransactionType) (int64, error) {
	args := m.Called(ctx, accountID, transactionType)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock LedgerProjector ---
type MockLedgerProjector struct {
	mock.Mock
}

var _ portssvc.LedgerProjectorSvc = (*MockLedgerProjector)(nil)

func (m *MockLedgerProjector) SyncTransaction(ctx context.Context, source domain.LedgerSource) error {
	args := m.Called(ctx, source)
	return args.Error(0)
}

func (m *MockLedgerProjector) RemoveTransaction(ctx context.Context, transactionID string, transactionType domain.TransactionType) error {
	args := m.Called(ctx, transactionID, transactionType)
	return args.Error(0)
}

func (m *MockLedgerProjector) RebuildAccountLedger(ctx context.Context, accountID string) (int, error) {
	args := m.Called(ctx, accountID)
	return args.Int(0), args.Error(1)
}

// --- Mock EntryLocker ---
type MockEntryLocker struct {
	mock.Mock
	released int
}

var _ portssvc.EntryLocker = (*MockEntryLocker)(nil)

func (m *MockEntryLocker) Lock(ctx context.Context, key string) (func(), error) {
	args := m.Called(ctx, key)
	if err := args.Error(0); err != nil {
		return nil, err
	}
	return func() { m.released++ }, nil
}

// passThroughTx runs fn directly; used with mocked repositories.
type passThroughTx struct{}

func (passThroughTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func ptr[T any](v T) *T { return &v }

func amount(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func day(d int) time.Time { return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC) }
