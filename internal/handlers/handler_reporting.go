package handlers

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/omarrayoubb/gateway-sub003/internal/core/ports/services"
	"github.com/omarrayoubb/gateway-sub003/internal/dto"
	"github.com/omarrayoubb/gateway-sub003/internal/middleware"
	"github.com/omarrayoubb/gateway-sub003/internal/utils/export"
)

// reportingHandler handles HTTP requests related to ledger reports
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

// registerReportingRoutes registers routes related to ledger reports
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	reportingGroup := rg.Group("/reports")
	{
		reportingGroup.GET("/ledger", h.getLedgerReport)
		reportingGroup.GET("/ledger/export", h.exportLedgerReport)
	}
}

// getLedgerReport godoc
// @Summary Generate ledger report
// @Description Opening balance, period debits and credits and closing balance per account, with grand totals
// @Tags reports
// @Produce json
// @Param periodStart query string true "Period start (YYYY-MM-DD)"
// @Param periodEnd query string true "Period end (YYYY-MM-DD)"
// @Param accountType query string false "Restrict to one account type"
// @Success 200 {object} dto.LedgerReportResponse
// @Failure 400 {object} map[string]string "Missing or invalid period"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Security BearerAuth
// @Router /reports/ledger [get]
func (h *reportingHandler) getLedgerReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.LedgerReportParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ledger report", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	report, err := h.reportingService.LedgerReport(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to generate ledger report")
		return
	}

	logger.Info("Ledger report generated", slog.Int("accounts", len(report.Accounts)), slog.Bool("balanced", report.Totals.IsBalanced))
	c.JSON(http.StatusOK, dto.ToLedgerReportResponse(report))
}

// exportLedgerReport godoc
// @Summary Export ledger report
// @Description Same report as GET /reports/ledger rendered as an xlsx workbook
// @Tags reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param periodStart query string true "Period start (YYYY-MM-DD)"
// @Param periodEnd query string true "Period end (YYYY-MM-DD)"
// @Param accountType query string false "Restrict to one account type"
// @Success 200 {file} file
// @Failure 400 {object} map[string]string "Missing or invalid period"
// @Failure 500 {object} map[string]string "Internal server error"
// @Security BearerAuth
// @Router /reports/ledger/export [get]
func (h *reportingHandler) exportLedgerReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.LedgerReportParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ledger report export", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	report, err := h.reportingService.LedgerReport(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to generate ledger report")
		return
	}

	// Render fully before writing headers so a failure can still produce a JSON error.
	var buf bytes.Buffer
	if err := export.WriteLedgerReport(&buf, report); err != nil {
		logger.Error("Failed to render ledger report workbook", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export ledger report"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.LedgerReportFilename(report)))
	c.Data(http.StatusOK, export.XLSXContentType, buf.Bytes())
}
