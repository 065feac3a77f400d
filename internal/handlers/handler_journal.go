package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/omarrayoubb/gateway-sub003/internal/core/ports/services"
	"github.com/omarrayoubb/gateway-sub003/internal/dto"
	"github.com/omarrayoubb/gateway-sub003/internal/middleware"
)

// journalHandler handles HTTP requests for journal entries and their posting lifecycle.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
	postingService portssvc.PostingSvc
}

func newJournalHandler(js portssvc.JournalSvcFacade, ps portssvc.PostingSvc) *journalHandler {
	return &journalHandler{journalService: js, postingService: ps}
}

// registerJournalRoutes registers routes related to journal entries.
func registerJournalRoutes(rg *gin.RouterGroup, js portssvc.JournalSvcFacade, ps portssvc.PostingSvc) {
	h := newJournalHandler(js, ps)

	entries := rg.Group("/journal-entries")
	{
		entries.POST("", h.createJournalEntry)
		entries.GET("", h.listJournalEntries)
		entries.GET("/:id", h.getJournalEntry)
		entries.PUT("/:id", h.updateJournalEntry)
		entries.DELETE("/:id", h.deleteJournalEntry)
		entries.POST("/:id/post", h.postJournalEntry)
		entries.POST("/:id/void", h.voidJournalEntry)
	}
}

// createJournalEntry godoc
// @Summary Create a journal entry
// @Description Persists a draft journal entry with its lines. With status "posted" a balanced entry is posted in the same call.
// @Tags journal-entries
// @Accept  json
// @Produce  json
// @Param   entry body dto.CreateJournalEntryRequest true "Journal entry"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "Referenced account not found"
// @Failure 409 {object} map[string]string "Entry number already used"
// @Failure 422 {object} map[string]interface{} "Entry is not balanced"
// @Security BearerAuth
// @Router /journal-entries [post]
func (h *journalHandler) createJournalEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateJournalEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	logger.Info("Received request to create journal entry", slog.Int("line_count", len(req.Lines)), slog.String("status", string(req.Status)))

	entry, err := h.journalService.CreateJournalEntry(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create journal entry")
		return
	}

	logger.Info("Journal entry created", slog.String("journal_entry_id", entry.JournalEntryID), slog.String("entry_number", entry.EntryNumber))
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// getJournalEntry godoc
// @Summary Get a journal entry
// @Description Retrieves a journal entry with its lines
// @Tags journal-entries
// @Produce  json
// @Param   id path string true "Journal entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 404 {object} map[string]string "Journal entry not found"
// @Security BearerAuth
// @Router /journal-entries/{id} [get]
func (h *journalHandler) getJournalEntry(c *gin.Context) {
	entry, err := h.journalService.GetJournalEntry(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve journal entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// listJournalEntries godoc
// @Summary List journal entries
// @Description Lists journal entry headers, newest first, with token pagination
// @Tags journal-entries
// @Produce  json
// @Param   organizationID query string false "Organization scope"
// @Param   status query string false "draft, posted or void"
// @Param   entryType query string false "manual, automated, adjustment or closing"
// @Param   from query string false "Earliest entry date (YYYY-MM-DD)"
// @Param   to query string false "Latest entry date (YYYY-MM-DD)"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListJournalEntriesResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Security BearerAuth
// @Router /journal-entries [get]
func (h *journalHandler) listJournalEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListJournalEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListJournalEntries", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.journalService.ListJournalEntries(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to list journal entries")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// updateJournalEntry godoc
// @Summary Update a draft journal entry
// @Description Changes header fields of a draft. A lines array replaces all lines.
// @Tags journal-entries
// @Accept  json
// @Produce  json
// @Param   id path string true "Journal entry ID"
// @Param   entry body dto.UpdateJournalEntryRequest true "Fields to change"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 404 {object} map[string]string "Journal entry not found"
// @Failure 409 {object} map[string]string "Entry changed concurrently"
// @Failure 422 {object} map[string]interface{} "Entry is not a draft"
// @Security BearerAuth
// @Router /journal-entries/{id} [put]
func (h *journalHandler) updateJournalEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateJournalEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	entry, err := h.journalService.UpdateJournalEntry(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update journal entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// deleteJournalEntry godoc
// @Summary Delete a draft journal entry
// @Tags journal-entries
// @Param   id path string true "Journal entry ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Journal entry not found"
// @Failure 422 {object} map[string]interface{} "Entry is not a draft"
// @Security BearerAuth
// @Router /journal-entries/{id} [delete]
func (h *journalHandler) deleteJournalEntry(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.journalService.DeleteJournalEntry(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondError(c, err, "Failed to delete journal entry")
		return
	}
	c.Status(http.StatusNoContent)
}

// postJournalEntry godoc
// @Summary Post a journal entry
// @Description Posts a balanced draft and projects it into the general ledger.
// @Description ledgerSynced is false when the projection failed and needs a rebuild.
// @Tags journal-entries
// @Produce  json
// @Param   id path string true "Journal entry ID"
// @Success 200 {object} dto.PostingResponse
// @Failure 404 {object} map[string]string "Journal entry not found"
// @Failure 409 {object} map[string]string "Entry is being posted by another request"
// @Failure 422 {object} map[string]interface{} "Entry is not a draft or is not balanced"
// @Security BearerAuth
// @Router /journal-entries/{id}/post [post]
func (h *journalHandler) postJournalEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	result, err := h.postingService.PostJournalEntry(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err, "Failed to post journal entry")
		return
	}

	logger.Info("Journal entry posted", slog.String("journal_entry_id", result.Entry.JournalEntryID), slog.Bool("ledger_synced", result.LedgerSynced))
	c.JSON(http.StatusOK, dto.ToPostingResponse(result))
}

// voidJournalEntry godoc
// @Summary Void a posted journal entry
// @Description Marks a posted entry void and removes its general ledger rows. The reason is appended to the notes.
// @Tags journal-entries
// @Accept  json
// @Produce  json
// @Param   id path string true "Journal entry ID"
// @Param   body body dto.VoidJournalEntryRequest false "Void reason"
// @Success 200 {object} dto.PostingResponse
// @Failure 404 {object} map[string]string "Journal entry not found"
// @Failure 422 {object} map[string]interface{} "Entry is not posted"
// @Security BearerAuth
// @Router /journal-entries/{id}/void [post]
func (h *journalHandler) voidJournalEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.VoidJournalEntryRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.Warn("Failed to bind JSON for VoidJournalEntry", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
			return
		}
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	result, err := h.postingService.VoidJournalEntry(c.Request.Context(), c.Param("id"), req.Reason, userID)
	if err != nil {
		respondError(c, err, "Failed to void journal entry")
		return
	}

	logger.Info("Journal entry voided", slog.String("journal_entry_id", result.Entry.JournalEntryID), slog.Bool("ledger_synced", result.LedgerSynced))
	c.JSON(http.StatusOK, dto.ToPostingResponse(result))
}
