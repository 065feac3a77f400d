package mapping

import (
	"github.com/omarrayoubb/gateway-sub003/internal/core/domain"
	"github.com/omarrayoubb/gateway-sub003/internal/models"
)

// ToModelJournalEntry converts the header of a domain JournalEntry. Lines are mapped separately.
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		JournalEntryID: d.JournalEntryID,
		OrganizationID: d.OrganizationID,
		EntryNumber:    d.EntryNumber,
		EntryDate:      domain.DateOf(d.EntryDate),
		EntryType:      string(d.EntryType),
		Status:         string(d.Status),
		TotalDebit:     d.TotalDebit,
		TotalCredit:    d.TotalCredit,
		IsBalanced:     d.IsBalanced,
		Reference:      d.Reference,
		Notes:          d.Notes,
		Version:        d.Version,
		PostedAt:       d.PostedAt,
		VoidedAt:       d.VoidedAt,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a model header and its lines into the aggregate.
func ToDomainJournalEntry(m models.JournalEntry, lines []models.JournalEntryLine) domain.JournalEntry {
	return domain.JournalEntry{
		JournalEntryID: m.JournalEntryID,
		OrganizationID: m.OrganizationID,
		EntryNumber:    m.EntryNumber,
		EntryDate:      domain.DateOf(m.EntryDate),
		EntryType:      domain.EntryType(m.EntryType),
		Status:         domain.EntryStatus(m.Status),
		TotalDebit:     m.TotalDebit,
		TotalCredit:    m.TotalCredit,
		IsBalanced:     m.IsBalanced,
		Reference:      m.Reference,
		Notes:          m.Notes,
		Version:        m.Version,
		PostedAt:       m.PostedAt,
		VoidedAt:       m.VoidedAt,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
		Lines:          ToDomainJournalEntryLines(lines),
	}
}

// ToModelJournalEntryLine converts a domain JournalEntryLine to a model JournalEntryLine
func ToModelJournalEntryLine(d domain.JournalEntryLine) models.JournalEntryLine {
	return models.JournalEntryLine{
		LineID:         d.LineID,
		JournalEntryID: d.JournalEntryID,
		LineNumber:     d.LineNumber,
		AccountID:      d.AccountID,
		AccountCode:    d.AccountCode,
		AccountName:    d.AccountName,
		Description:    d.Description,
		Debit:          d.Debit,
		Credit:         d.Credit,
		CreatedAt:      d.CreatedAt,
	}
}

// ToDomainJournalEntryLines converts model lines, keeping nil for a nil input.
func ToDomainJournalEntryLines(ms []models.JournalEntryLine) []domain.JournalEntryLine {
	if ms == nil {
		return nil
	}
	ds := make([]domain.JournalEntryLine, len(ms))
	for i, m := range ms {
		ds[i] = domain.JournalEntryLine{
			LineID:         m.LineID,
			JournalEntryID: m.JournalEntryID,
			LineNumber:     m.LineNumber,
			AccountID:      m.AccountID,
			AccountCode:    m.AccountCode,
			AccountName:    m.AccountName,
			Description:    m.Description,
			Debit:          m.Debit,
			Credit:         m.Credit,
			CreatedAt:      m.CreatedAt,
		}
	}
	return ds
}
