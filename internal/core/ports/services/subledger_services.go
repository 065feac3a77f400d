package services

import (
	"context"

	"github.com/omarrayoubb/gateway-sub003/internal/core/domain"
	"github.com/omarrayoubb/gateway-sub003/internal/dto"
)

// SubledgerSvc adapts sub-ledger records into balanced journal entries.
type SubledgerSvc interface {
	// RecordExpense creates and posts the journal entry for an expense.
	RecordExpense(ctx context.Context, req dto.RecordExpenseRequest, userID string) (*domain.PostingResult, error)
}
