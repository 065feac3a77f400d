package services

import (
	"context"

	"github.com/omarrayoubb/gateway-sub003/internal/core/domain"
	"github.com/omarrayoubb/gateway-sub003/internal/dto"
)

// ReportingService defines operations for generating ledger reports
type ReportingService interface {
	// LedgerReport builds the opening/debit/credit/closing summary per account for a period.
	// Both period bounds are mandatory.
	LedgerReport(ctx context.Context, params dto.LedgerReportParams) (*domain.LedgerReport, error)
}
