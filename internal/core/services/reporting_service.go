package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/omarrayoubb/gateway-sub003/internal/apperrors"
	"github.com/omarrayoubb/gateway-sub003/internal/core/domain"
	portsrepo "github.com/omarrayoubb/gateway-sub003/internal/core/ports/repositories"
	portssvc "github.com/omarrayoubb/gateway-sub003/internal/core/ports/services"
	"github.com/omarrayoubb/gateway-sub003/internal/dto"
	"github.com/omarrayoubb/gateway-sub003/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	accountRepo portsrepo.AccountReader
	ledgerRepo  portsrepo.LedgerReader
}

// NewReportingService creates a new reporting service
func NewReportingService(accountRepo portsrepo.AccountReader, ledgerRepo portsrepo.LedgerReader) portssvc.ReportingService {
	return &reportingService{
		BaseService: newBaseService(),
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
	}
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// LedgerReport builds the opening/debit/credit/closing summary of every matching account.
// Both bounds are checked before anything is read.
func (s *reportingService) LedgerReport(ctx context.Context, params dto.LedgerReportParams) (*domain.LedgerReport, error) {
	if strings.TrimSpace(params.PeriodStart) == "" || strings.TrimSpace(params.PeriodEnd) == "" {
		return nil, apperrors.NewValidationError("periodStart and periodEnd are required")
	}
	start, err := dto.ParseDate(strings.TrimSpace(params.PeriodStart))
	if err != nil {
		return nil, apperrors.NewValidationError("periodStart %q is not a YYYY-MM-DD date", params.PeriodStart)
	}
	end, err := dto.ParseDate(strings.TrimSpace(params.PeriodEnd))
	if err != nil {
		return nil, apperrors.NewValidationError("periodEnd %q is not a YYYY-MM-DD date", params.PeriodEnd)
	}
	if start.After(end) {
		return nil, apperrors.NewValidationError("periodStart must not be after periodEnd")
	}

	var accountType *domain.AccountType
	if params.AccountType != "" {
		t := domain.AccountType(params.AccountType)
		if !t.IsValid() {
			return nil, apperrors.NewValidationError("unknown account type %q", params.AccountType)
		}
		accountType = &t
	}

	accounts, err := s.accountRepo.ListAccounts(ctx, nil, accountType)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts for ledger report")
		return nil, err
	}

	report := &domain.LedgerReport{
		PeriodStart: start,
		PeriodEnd:   end,
		AccountType: accountType,
		Accounts:    make([]domain.LedgerReportRow, 0, len(accounts)),
		Totals: domain.LedgerReportTotals{
			TotalDebit:  decimal.Zero,
			TotalCredit: decimal.Zero,
		},
	}

	for _, acc := range accounts {
		row, err := s.reportRow(ctx, acc, start, end)
		if err != nil {
			s.LogError(ctx, err, "Failed to build ledger report row", slog.String("account_id", acc.AccountID))
			return nil, err
		}
		report.Accounts = append(report.Accounts, row)
		report.Totals.TotalDebit = report.Totals.TotalDebit.Add(row.Debit)
		report.Totals.TotalCredit = report.Totals.TotalCredit.Add(row.Credit)
	}
	report.Totals.IsBalanced = report.Totals.TotalDebit.Sub(report.Totals.TotalCredit).Abs().
		LessThan(domain.DefaultBalanceTolerance)

	if !report.Totals.IsBalanced && accountType == nil {
		s.LogWarn(ctx, "Ledger report grand totals do not match",
			slog.String("debit", report.Totals.TotalDebit.StringFixed(2)),
			slog.String("credit", report.Totals.TotalCredit.StringFixed(2)))
	}

	s.LogInfo(ctx, "Ledger report generated",
		slog.String("period_start", dto.FormatDate(start)),
		slog.String("period_end", dto.FormatDate(end)),
		slog.Int("accounts", len(report.Accounts)))
	return report, nil
}

func (s *reportingService) reportRow(ctx context.Context, acc domain.Account, start, end time.Time) (domain.LedgerReportRow, error) {
	netSince, err := s.ledgerRepo.SumNetSince(ctx, acc.AccountID, &start)
	if err != nil {
		return domain.LedgerReportRow{}, err
	}
	opening := accounting.OpeningBalance(acc.Balance, netSince)

	rows, err := s.ledgerRepo.ListLedgerEntriesByAccount(ctx, acc.AccountID, &start, &end)
	if err != nil {
		return domain.LedgerReportRow{}, err
	}
	totals := accounting.SumTotals(rows)

	return domain.LedgerReportRow{
		AccountID:      acc.AccountID,
		AccountCode:    acc.Code,
		AccountName:    acc.Name,
		AccountType:    acc.AccountType,
		OpeningBalance: opening,
		Debit:          totals.TotalDebit,
		Credit:         totals.TotalCredit,
		ClosingBalance: opening.Add(totals.TotalDebit).Sub(totals.TotalCredit),
	}, nil
}
