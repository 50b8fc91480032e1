package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/awqaf-platform/waqf_ledger/internal/core/ports/services"
	"github.com/awqaf-platform/waqf_ledger/internal/dto"
	"github.com/awqaf-platform/waqf_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// journalHandler handles HTTP requests related to journal entries.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

// newJournalHandler creates a new journalHandler.
func newJournalHandler(journalService portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{
		journalService: journalService,
	}
}

// registerJournalRoutes registers routes related to journal entries.
func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalService)

	journals := rg.Group("/journals")
	{
		journals.POST("", h.postEntry)
		journals.POST("/drafts", h.createDraft)
		journals.GET("", h.listEntries)
		journals.GET("/:id", h.getEntry)
		journals.POST("/:id/post", h.postDraft)
		journals.POST("/:id/cancel", h.cancelEntry)
	}
}

// postEntry godoc
// @Summary Post a journal entry
// @Description Validates and posts a balanced entry in one step. The entry number is assigned on posting.
// @Tags journals
// @Accept  json
// @Produce  json
// @Param   entry body dto.CreateJournalEntryRequest true "Entry with lines"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid or unbalanced lines, unknown account or no covering year"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 409 {object} dto.ErrorResponse "Fiscal year not open"
// @Security BearerAuth
// @Router /journals [post]
func (h *journalHandler) postEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "PostJournalEntry")
		return
	}
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	logger.Info("Received request to post journal entry", slog.Int("lines", len(req.Lines)))

	entry, err := h.journalService.PostJournalEntry(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "post journal entry")
		return
	}

	logger.Info("Journal entry posted", slog.String("entry_id", entry.EntryID), slog.Int64("entry_number", entry.EntryNumber))
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// createDraft godoc
// @Summary Save a draft journal entry
// @Description Drafts are checked for line shape only and do not affect balances.
// @Tags journals
// @Accept  json
// @Produce  json
// @Param   entry body dto.CreateJournalEntryRequest true "Entry with lines"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid lines"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /journals/drafts [post]
func (h *journalHandler) createDraft(c *gin.Context) {
	var req dto.CreateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "CreateDraft")
		return
	}
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	entry, err := h.journalService.CreateDraft(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "save draft")
		return
	}
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// postDraft godoc
// @Summary Post a stored draft
// @Tags journals
// @Produce  json
// @Param   id path string true "Entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 404 {object} dto.ErrorResponse "Entry not found"
// @Failure 409 {object} dto.ErrorResponse "Entry is not a draft"
// @Security BearerAuth
// @Router /journals/{id}/post [post]
func (h *journalHandler) postDraft(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	entry, err := h.journalService.PostDraft(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err, "post draft")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// cancelEntry godoc
// @Summary Cancel a posted entry
// @Description Posts a reversing entry and marks the original cancelled. Returns the reversal.
// @Tags journals
// @Accept  json
// @Produce  json
// @Param   id path string true "Entry ID"
// @Param   request body dto.CancelEntryRequest true "Cancellation reason"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 404 {object} dto.ErrorResponse "Entry not found"
// @Failure 409 {object} dto.ErrorResponse "Entry is not posted or the year is closed"
// @Security BearerAuth
// @Router /journals/{id}/cancel [post]
func (h *journalHandler) cancelEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CancelEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "CancelEntry")
		return
	}
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	entryID := c.Param("id")
	reversal, err := h.journalService.CancelEntry(c.Request.Context(), entryID, req.Reason, userID)
	if err != nil {
		respondError(c, err, "cancel journal entry")
		return
	}

	logger.Info("Journal entry cancelled", slog.String("entry_id", entryID), slog.String("reversal_id", reversal.EntryID))
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(reversal))
}

// getEntry godoc
// @Summary Get a journal entry
// @Tags journals
// @Produce  json
// @Param   id path string true "Entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 404 {object} dto.ErrorResponse "Entry not found"
// @Security BearerAuth
// @Router /journals/{id} [get]
func (h *journalHandler) getEntry(c *gin.Context) {
	entry, err := h.journalService.GetEntry(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "retrieve journal entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// listEntries godoc
// @Summary List journal entries of a fiscal year
// @Tags journals
// @Produce  json
// @Param   fiscalYearID query string true "Fiscal year ID"
// @Param   status query string false "DRAFT, POSTED or CANCELLED"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListEntriesResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid query"
// @Security BearerAuth
// @Router /journals [get]
func (h *journalHandler) listEntries(c *gin.Context) {
	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err, "ListEntries query")
		return
	}

	resp, err := h.journalService.ListEntries(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "list journal entries")
		return
	}
	c.JSON(http.StatusOK, resp)
}
