package mapping

import (
	"github.com/omarrayoubb/gateway-sub003/internal/core/domain"
	"github.com/omarrayoubb/gateway-sub003/internal/models"
	"github.com/shopspring/decimal"
)

// ToModelLedgerEntry converts a projected row for storage. The running balance is
// never persisted.
func ToModelLedgerEntry(d domain.GeneralLedgerEntry) models.GeneralLedgerEntry {
	return models.GeneralLedgerEntry{
		EntryID:         d.EntryID,
		AccountID:       d.AccountID,
		TransactionDate: domain.DateOf(d.TransactionDate),
		TransactionType: string(d.TransactionType),
		TransactionID:   d.TransactionID,
		Reference:       d.Reference,
		Description:     d.Description,
		Debit:           d.Debit,
		Credit:          d.Credit,
		Balance:         decimal.Zero,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

// ToDomainLedgerEntry converts a model GeneralLedgerEntry to a domain GeneralLedgerEntry
func ToDomainLedgerEntry(m models.GeneralLedgerEntry) domain.GeneralLedgerEntry {
	return domain.GeneralLedgerEntry{
		EntryID:         m.EntryID,
		AccountID:       m.AccountID,
		AccountCode:     m.AccountCode,
		AccountName:     m.AccountName,
		TransactionDate: domain.DateOf(m.TransactionDate),
		TransactionType: domain.TransactionType(m.TransactionType),
		TransactionID:   m.TransactionID,
		Reference:       m.Reference,
		Description:     m.Description,
		Debit:           m.Debit,
		Credit:          m.Credit,
		Balance:         decimal.Zero,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// ToDomainLedgerEntrySlice converts a slice of model rows to domain rows
func ToDomainLedgerEntrySlice(ms []models.GeneralLedgerEntry) []domain.GeneralLedgerEntry {
	ds := make([]domain.GeneralLedgerEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLedgerEntry(m)
	}
	return ds
}
