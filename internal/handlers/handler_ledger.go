package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/omarrayoubb/gateway-sub003/internal/core/domain"
	portssvc "github.com/omarrayoubb/gateway-sub003/internal/core/ports/services"
	"github.com/omarrayoubb/gateway-sub003/internal/dto"
	"github.com/omarrayoubb/gateway-sub003/internal/middleware"
)

// ledgerHandler exposes the general ledger projection and its queries.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func registerLedgerRoutes(rg *gin.RouterGroup, ls portssvc.LedgerSvcFacade) {
	h := &ledgerHandler{ledgerService: ls}

	ledger := rg.Group("/ledger")
	{
		ledger.GET("", h.getGeneralLedger)
		ledger.GET("/accounts/:id", h.getAccountLedger)
		ledger.POST("/accounts/:id/rebuild", h.rebuildAccountLedger)
		ledger.POST("/sources", h.syncSource)
		ledger.DELETE("/sources/:type/:id", h.removeSource)
	}
}

// getAccountLedger godoc
// @Summary Account ledger
// @Description Reconstructs opening balance, running balances and closing balance of one account for a period
// @Tags ledger
// @Produce  json
// @Param   id path string true "Account ID"
// @Param   periodStart query string false "Window start (YYYY-MM-DD)"
// @Param   periodEnd query string false "Window end (YYYY-MM-DD)"
// @Success 200 {object} dto.AccountLedgerResponse
// @Failure 400 {object} map[string]string "Invalid period"
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /ledger/accounts/{id} [get]
func (h *ledgerHandler) getAccountLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.AccountLedgerParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for account ledger", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	start, err := dto.ParseOptionalDate(params.PeriodStart)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid periodStart: " + err.Error()})
		return
	}
	end, err := dto.ParseOptionalDate(params.PeriodEnd)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid periodEnd: " + err.Error()})
		return
	}

	ledger, err := h.ledgerService.GetAccountLedger(c.Request.Context(), c.Param("id"), start, end)
	if err != nil {
		respondError(c, err, "Failed to build account ledger")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountLedgerResponse(ledger))
}

// getGeneralLedger godoc
// @Summary General ledger
// @Description Merged ledger rows of every account (or one), each carrying its account's running balance
// @Tags ledger
// @Produce  json
// @Param   accountID query string false "Restrict to one account"
// @Param   periodStart query string false "Window start (YYYY-MM-DD)"
// @Param   periodEnd query string false "Window end (YYYY-MM-DD)"
// @Param   sortBy query string false "transaction_date, account_code, debit or credit"
// @Param   sortOrder query string false "asc or desc"
// @Success 200 {object} dto.GeneralLedgerResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Security BearerAuth
// @Router /ledger [get]
func (h *ledgerHandler) getGeneralLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.GeneralLedgerParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for general ledger", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	filter, err := params.ToFilter()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	gl, err := h.ledgerService.GetGeneralLedger(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err, "Failed to build general ledger")
		return
	}
	c.JSON(http.StatusOK, dto.ToGeneralLedgerResponse(gl))
}

// rebuildAccountLedger godoc
// @Summary Rebuild an account's projection
// @Description Replays every posted journal entry touching the account into the general ledger
// @Tags ledger
// @Produce  json
// @Param   id path string true "Account ID"
// @Success 200 {object} dto.RebuildLedgerResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /ledger/accounts/{id}/rebuild [post]
func (h *ledgerHandler) rebuildAccountLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	n, err := h.ledgerService.RebuildAccountLedger(c.Request.Context(), accountID)
	if err != nil {
		respondError(c, err, "Failed to rebuild account ledger")
		return
	}

	logger.Info("Account ledger rebuilt", slog.String("account_id", accountID), slog.Int("rows", n))
	c.JSON(http.StatusOK, dto.RebuildLedgerResponse{AccountID: accountID, RowsProjected: n})
}

// syncSource godoc
// @Summary Project a sub-ledger transaction
// @Description Upserts the general ledger rows of a posted invoice, payment, bill or expense. Rows of accounts no longer present are removed.
// @Tags ledger
// @Accept  json
// @Param   source body dto.SyncLedgerSourceRequest true "Source transaction"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Validation error"
// @Security BearerAuth
// @Router /ledger/sources [post]
func (h *ledgerHandler) syncSource(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SyncLedgerSourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ledger source sync", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	src, err := req.ToLedgerSource()
	if err != nil {
		respondError(c, err, "Failed to sync ledger source")
		return
	}

	if err := h.ledgerService.SyncTransaction(c.Request.Context(), src); err != nil {
		respondError(c, err, "Failed to sync ledger source")
		return
	}
	c.Status(http.StatusNoContent)
}

// removeSource godoc
// @Summary Remove a sub-ledger transaction
// @Description Deletes every general ledger row of a source transaction
// @Tags ledger
// @Param   type path string true "invoice, payment, bill or expense"
// @Param   id path string true "Source transaction ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Unknown transaction type"
// @Security BearerAuth
// @Router /ledger/sources/{type}/{id} [delete]
func (h *ledgerHandler) removeSource(c *gin.Context) {
	txnType, err := domain.ParseSourceTransactionType(c.Param("type"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.ledgerService.RemoveTransaction(c.Request.Context(), c.Param("id"), txnType); err != nil {
		respondError(c, err, "Failed to remove ledger source")
		return
	}
	c.Status(http.StatusNoContent)
}
