package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/omarrayoubb/gateway-sub003/internal/core/ports/services"
	"github.com/omarrayoubb/gateway-sub003/internal/dto"
	"github.com/omarrayoubb/gateway-sub003/internal/middleware"
)

type subledgerHandler struct {
	subledgerService portssvc.SubledgerSvc
}

func registerSubledgerRoutes(rg *gin.RouterGroup, ss portssvc.SubledgerSvc) {
	h := &subledgerHandler{subledgerService: ss}

	subledgers := rg.Group("/subledgers")
	{
		subledgers.POST("/expenses", h.recordExpense)
	}
}

// recordExpense godoc
// @Summary Record an expense
// @Description Creates and posts the journal entry of an expense: debit the expense account, credit the payment account (or default cash / accrued liabilities).
// @Tags subledgers
// @Accept  json
// @Produce  json
// @Param   expense body dto.RecordExpenseRequest true "Expense"
// @Success 201 {object} dto.PostingResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /subledgers/expenses [post]
func (h *subledgerHandler) recordExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RecordExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordExpense", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	result, err := h.subledgerService.RecordExpense(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to record expense")
		return
	}

	logger.Info("Expense recorded", slog.String("journal_entry_id", result.Entry.JournalEntryID), slog.Bool("ledger_synced", result.LedgerSynced))
	c.JSON(http.StatusCreated, dto.ToPostingResponse(result))
}
