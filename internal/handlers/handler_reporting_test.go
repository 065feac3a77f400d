package handlers_test

import (
	"bytes"
	"net/http"
	"testing"
	"time"

	"github.com/omarrayoubb/gateway-sub003/internal/apperrors"
	"github.com/omarrayoubb/gateway-sub003/internal/core/domain"
	"github.com/omarrayoubb/gateway-sub003/internal/dto"
	"github.com/omarrayoubb/gateway-sub003/internal/utils/export"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/xuri/excelize/v2"
)

type ReportingHandlerTestSuite struct {
	apiTestSuite
}

func sampleReport() *domain.LedgerReport {
	return &domain.LedgerReport{
		PeriodStart: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
		Accounts: []domain.LedgerReportRow{
			{AccountID: "acc-x", AccountCode: "1200", AccountName: "Receivables", AccountType: domain.Asset,
				OpeningBalance: amount("400"), Debit: amount("100"), Credit: amount("0"), ClosingBalance: amount("500")},
			{AccountID: "acc-y", AccountCode: "4000", AccountName: "Sales", AccountType: domain.Revenue,
				OpeningBalance: amount("0"), Debit: amount("0"), Credit: amount("100"), ClosingBalance: amount("-100")},
		},
		Totals: domain.LedgerReportTotals{TotalDebit: amount("100"), TotalCredit: amount("100"), IsBalanced: true},
	}
}

func (suite *ReportingHandlerTestSuite) TestLedgerReport() {
	suite.mockReporting.On("LedgerReport", mock.Anything, dto.LedgerReportParams{PeriodStart: "2024-03-01", PeriodEnd: "2024-03-31"}).
		Return(sampleReport(), nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/reports/ledger?periodStart=2024-03-01&periodEnd=2024-03-31", nil)

	suite.Equal(http.StatusOK, w.Code, w.Body.String())
	var resp dto.LedgerReportResponse
	suite.decode(w, &resp)
	suite.Len(resp.Accounts, 2)
	suite.True(resp.Totals.IsBalanced)
	suite.Equal("2024-03-01", resp.PeriodStart)
}

func (suite *ReportingHandlerTestSuite) TestLedgerReport_MissingBounds() {
	suite.mockReporting.On("LedgerReport", mock.Anything, dto.LedgerReportParams{PeriodStart: "2024-03-01"}).
		Return(nil, apperrors.NewValidationError("periodEnd is required")).Once()

	w := suite.do(http.MethodGet, "/api/v1/reports/ledger?periodStart=2024-03-01", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *ReportingHandlerTestSuite) TestExportLedgerReport() {
	suite.mockReporting.On("LedgerReport", mock.Anything, mock.Anything).Return(sampleReport(), nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/reports/ledger/export?periodStart=2024-03-01&periodEnd=2024-03-31", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal(export.XLSXContentType, w.Header().Get("Content-Type"))
	suite.Contains(w.Header().Get("Content-Disposition"), "ledger_report_20240301_20240331.xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	suite.Require().NoError(err)
	defer f.Close()
	code, err := f.GetCellValue(export.LedgerReportSheet, "A5")
	suite.Require().NoError(err)
	suite.Equal("4000", code)
}

func TestReportingHandler(t *testing.T) {
	suite.Run(t, new(ReportingHandlerTestSuite))
}
