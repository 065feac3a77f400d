package dto

import (
	"time"

	"github.com/omarrayoubb/gateway-sub003/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalEntryLineRequest is one line of a create/update request.
type JournalEntryLineRequest struct {
	AccountID   string          `json:"accountID" binding:"required"`
	Description string          `json:"description" binding:"max=500"`
	Debit       decimal.Decimal `json:"debit" binding:"gte=0"`
	Credit      decimal.Decimal `json:"credit" binding:"gte=0"`
}

// CreateJournalEntryRequest defines the data needed to create a journal entry.
// Status may be "posted" to create-and-post a balanced entry in one call.
type CreateJournalEntryRequest struct {
	OrganizationID *string                   `json:"organizationID"`
	EntryNumber    string                    `json:"entryNumber" binding:"max=50"` // generated when empty
	EntryDate      string                    `json:"entryDate" binding:"required,datetime=2006-01-02"`
	EntryType      domain.EntryType          `json:"entryType" binding:"omitempty,oneof=manual automated adjustment closing"`
	Status         domain.EntryStatus        `json:"status" binding:"omitempty,oneof=draft posted"`
	Reference      string                    `json:"reference" binding:"max=255"`
	Notes          string                    `json:"notes"`
	Lines          []JournalEntryLineRequest `json:"lines" binding:"omitempty,dive"`
}

// UpdateJournalEntryRequest defines the fields allowed to change on a draft.
// A non-nil Lines replaces the whole line set, an explicit empty list included.
type UpdateJournalEntryRequest struct {
	EntryDate *string                   `json:"entryDate" binding:"omitempty,datetime=2006-01-02"`
	EntryType *domain.EntryType         `json:"entryType" binding:"omitempty,oneof=manual automated adjustment closing"`
	Reference *string                   `json:"reference" binding:"omitempty,max=255"`
	Notes     *string                   `json:"notes"`
	Lines     []JournalEntryLineRequest `json:"lines" binding:"omitempty,dive"`
}

// VoidJournalEntryRequest carries the optional void reason.
type VoidJournalEntryRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

// ListJournalEntriesParams defines the query parameters for listing journal entries.
type ListJournalEntriesParams struct {
	OrganizationID *string `form:"organizationID"`
	Status         string  `form:"status" binding:"omitempty,oneof=draft posted void"`
	EntryType      string  `form:"entryType" binding:"omitempty,oneof=manual automated adjustment closing"`
	From           string  `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To             string  `form:"to" binding:"omitempty,datetime=2006-01-02"`
	Limit          int     `form:"limit" binding:"omitempty,min=1,max=100"`
	NextToken      *string `form:"nextToken"`
}

// JournalEntryLineResponse defines the data returned for a journal entry line.
type JournalEntryLineResponse struct {
	LineID      string          `json:"lineID"`
	LineNumber  int             `json:"lineNumber"`
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	Description string          `json:"description,omitempty"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	JournalEntryID string                     `json:"journalEntryID"`
	OrganizationID *string                    `json:"organizationID,omitempty"`
	EntryNumber    string                     `json:"entryNumber"`
	EntryDate      string                     `json:"entryDate"`
	EntryType      domain.EntryType           `json:"entryType"`
	Status         domain.EntryStatus         `json:"status"`
	TotalDebit     decimal.Decimal            `json:"totalDebit"`
	TotalCredit    decimal.Decimal            `json:"totalCredit"`
	IsBalanced     bool                       `json:"isBalanced"`
	Reference      string                     `json:"reference,omitempty"`
	Notes          string                     `json:"notes,omitempty"`
	Version        int                        `json:"version"`
	PostedAt       *time.Time                 `json:"postedAt,omitempty"`
	VoidedAt       *time.Time                 `json:"voidedAt,omitempty"`
	CreatedAt      time.Time                  `json:"createdAt"`
	CreatedBy      string                     `json:"createdBy"`
	LastUpdatedAt  time.Time                  `json:"lastUpdatedAt"`
	LastUpdatedBy  string                     `json:"lastUpdatedBy"`
	Lines          []JournalEntryLineResponse `json:"lines,omitempty"`
}

// ListJournalEntriesResponse wraps a page of journal entries.
type ListJournalEntriesResponse struct {
	JournalEntries []JournalEntryResponse `json:"journalEntries"`
	NextToken      *string                `json:"nextToken,omitempty"`
}

// PostingResponse is returned by post and void.
type PostingResponse struct {
	JournalEntry JournalEntryResponse `json:"journalEntry"`
	LedgerSynced bool                 `json:"ledgerSynced"`
}

// ToJournalEntryResponse converts a domain.JournalEntry to its response DTO.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	resp := JournalEntryResponse{
		JournalEntryID: e.JournalEntryID,
		OrganizationID: e.OrganizationID,
		EntryNumber:    e.EntryNumber,
		EntryDate:      FormatDate(e.EntryDate),
		EntryType:      e.EntryType,
		Status:         e.Status,
		TotalDebit:     e.TotalDebit,
		TotalCredit:    e.TotalCredit,
		IsBalanced:     e.IsBalanced,
		Reference:      e.Reference,
		Notes:          e.Notes,
		Version:        e.Version,
		PostedAt:       e.PostedAt,
		VoidedAt:       e.VoidedAt,
		CreatedAt:      e.CreatedAt,
		CreatedBy:      e.CreatedBy,
		LastUpdatedAt:  e.LastUpdatedAt,
		LastUpdatedBy:  e.LastUpdatedBy,
	}
	if len(e.Lines) > 0 {
		resp.Lines = make([]JournalEntryLineResponse, len(e.Lines))
		for i, l := range e.Lines {
			resp.Lines[i] = JournalEntryLineResponse{
				LineID:      l.LineID,
				LineNumber:  l.LineNumber,
				AccountID:   l.AccountID,
				AccountCode: l.AccountCode,
				AccountName: l.AccountName,
				Description: l.Description,
				Debit:       l.Debit,
				Credit:      l.Credit,
			}
		}
	}
	return resp
}

// ToPostingResponse converts a domain.PostingResult.
func ToPostingResponse(r *domain.PostingResult) PostingResponse {
	return PostingResponse{
		JournalEntry: ToJournalEntryResponse(r.Entry),
		LedgerSynced: r.LedgerSynced,
	}
}
