package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/awqaf-platform/waqf_ledger/internal/core/ports/services"
	"github.com/awqaf-platform/waqf_ledger/internal/dto"
	"github.com/awqaf-platform/waqf_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// fiscalYearHandler handles the fiscal year lifecycle and its reports.
type fiscalYearHandler struct {
	fiscalYearService portssvc.FiscalYearSvcFacade
	accountService    portssvc.AccountSvcFacade
}

func newFiscalYearHandler(fys portssvc.FiscalYearSvcFacade, as portssvc.AccountSvcFacade) *fiscalYearHandler {
	return &fiscalYearHandler{
		fiscalYearService: fys,
		accountService:    as,
	}
}

// registerFiscalYearRoutes registers routes related to fiscal years.
func registerFiscalYearRoutes(rg *gin.RouterGroup, fys portssvc.FiscalYearSvcFacade, as portssvc.AccountSvcFacade) {
	h := newFiscalYearHandler(fys, as)

	years := rg.Group("/fiscal-years")
	{
		years.POST("", h.createFiscalYear)
		years.GET("", h.listFiscalYears)
		years.GET("/:id", h.getFiscalYear)
		years.POST("/:id/activate", h.activateFiscalYear)
		years.GET("/:id/close-preview", h.previewClose)
		years.POST("/:id/close", h.closeFiscalYear)
		years.POST("/:id/publish", h.publishFiscalYear)
		years.GET("/:id/closure-summary", h.getClosureSummary)
		years.GET("/:id/trial-balance", h.getTrialBalance)
	}
}

// createFiscalYear godoc
// @Summary Open a fiscal year
// @Tags fiscal-years
// @Accept  json
// @Produce  json
// @Param   year body dto.CreateFiscalYearRequest true "Fiscal year"
// @Success 201 {object} domain.FiscalYear
// @Failure 400 {object} dto.ErrorResponse "Invalid dates or overlapping year"
// @Security BearerAuth
// @Router /fiscal-years [post]
func (h *fiscalYearHandler) createFiscalYear(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateFiscalYearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "CreateFiscalYear")
		return
	}
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	fy, err := h.fiscalYearService.CreateFiscalYear(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "create fiscal year")
		return
	}
	logger.Info("Fiscal year created", slog.String("fiscal_year_id", fy.FiscalYearID))
	c.JSON(http.StatusCreated, fy)
}

// listFiscalYears godoc
// @Summary List fiscal years
// @Tags fiscal-years
// @Produce  json
// @Success 200 {array} domain.FiscalYear
// @Security BearerAuth
// @Router /fiscal-years [get]
func (h *fiscalYearHandler) listFiscalYears(c *gin.Context) {
	years, err := h.fiscalYearService.ListFiscalYears(c.Request.Context())
	if err != nil {
		respondError(c, err, "list fiscal years")
		return
	}
	c.JSON(http.StatusOK, years)
}

// getFiscalYear godoc
// @Summary Get a fiscal year
// @Tags fiscal-years
// @Produce  json
// @Param   id path string true "Fiscal year ID"
// @Success 200 {object} domain.FiscalYear
// @Failure 404 {object} dto.ErrorResponse "Fiscal year not found"
// @Security BearerAuth
// @Router /fiscal-years/{id} [get]
func (h *fiscalYearHandler) getFiscalYear(c *gin.Context) {
	fy, err := h.fiscalYearService.GetFiscalYear(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "retrieve fiscal year")
		return
	}
	c.JSON(http.StatusOK, fy)
}

// activateFiscalYear godoc
// @Summary Make a fiscal year the active one
// @Tags fiscal-years
// @Param   id path string true "Fiscal year ID"
// @Success 204 "No Content"
// @Failure 409 {object} dto.ErrorResponse "Fiscal year is not open"
// @Security BearerAuth
// @Router /fiscal-years/{id}/activate [post]
func (h *fiscalYearHandler) activateFiscalYear(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	if err := h.fiscalYearService.ActivateFiscalYear(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondError(c, err, "activate fiscal year")
		return
	}
	c.Status(http.StatusNoContent)
}

// previewClose godoc
// @Summary Preview closing a fiscal year
// @Description Runs every close check and computes the summary without changing anything.
// @Tags fiscal-years
// @Produce  json
// @Param   id path string true "Fiscal year ID"
// @Success 200 {object} domain.ClosePreview
// @Failure 404 {object} dto.ErrorResponse "Fiscal year not found"
// @Security BearerAuth
// @Router /fiscal-years/{id}/close-preview [get]
func (h *fiscalYearHandler) previewClose(c *gin.Context) {
	preview, err := h.fiscalYearService.PreviewClose(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "preview close")
		return
	}
	c.JSON(http.StatusOK, preview)
}

// closeFiscalYear godoc
// @Summary Close a fiscal year
// @Description Closes the year when every check passes and nothing changed since the preview.
// @Tags fiscal-years
// @Produce  json
// @Param   id path string true "Fiscal year ID"
// @Param   preview_only query bool false "Only run the preview"
// @Success 200 {object} dto.ClosedResponse
// @Failure 404 {object} dto.ErrorResponse "Fiscal year not found"
// @Failure 409 {object} dto.ErrorResponse "Close blocked, not open, or lost to a concurrent change"
// @Failure 503 {object} dto.ErrorResponse "Close timed out; nothing was committed"
// @Security BearerAuth
// @Router /fiscal-years/{id}/close [post]
func (h *fiscalYearHandler) closeFiscalYear(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.CloseFiscalYearParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err, "Close query")
		return
	}
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	fiscalYearID := c.Param("id")
	result, err := h.fiscalYearService.Close(c.Request.Context(), fiscalYearID, params.PreviewOnly, userID)
	if err != nil {
		respondError(c, err, "close fiscal year")
		return
	}
	if result.Closed {
		logger.Info("Fiscal year closed", slog.String("fiscal_year_id", fiscalYearID))
	}
	c.JSON(http.StatusOK, dto.ClosedResponse{Closed: result.Closed, Preview: result.Preview})
}

// publishFiscalYear godoc
// @Summary Publish a closed fiscal year
// @Description Makes the year's approved distributions visible to beneficiaries.
// @Tags fiscal-years
// @Produce  json
// @Param   id path string true "Fiscal year ID"
// @Success 200 {object} dto.PublishedResponse
// @Failure 409 {object} dto.ErrorResponse "Fiscal year is not closed"
// @Security BearerAuth
// @Router /fiscal-years/{id}/publish [post]
func (h *fiscalYearHandler) publishFiscalYear(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	fy, err := h.fiscalYearService.Publish(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err, "publish fiscal year")
		return
	}
	c.JSON(http.StatusOK, dto.PublishedResponse{Published: true, PublishedAt: fy.PublishedAt})
}

// getClosureSummary godoc
// @Summary Get the summary committed at close
// @Tags fiscal-years
// @Produce  json
// @Param   id path string true "Fiscal year ID"
// @Success 200 {object} domain.ClosureSummary
// @Failure 404 {object} dto.ErrorResponse "Fiscal year not closed"
// @Security BearerAuth
// @Router /fiscal-years/{id}/closure-summary [get]
func (h *fiscalYearHandler) getClosureSummary(c *gin.Context) {
	summary, err := h.fiscalYearService.GetClosureSummary(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "retrieve closure summary")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// getTrialBalance godoc
// @Summary Trial balance of a fiscal year
// @Tags fiscal-years
// @Produce  json
// @Param   id path string true "Fiscal year ID"
// @Success 200 {object} domain.TrialBalance
// @Failure 404 {object} dto.ErrorResponse "Fiscal year not found"
// @Security BearerAuth
// @Router /fiscal-years/{id}/trial-balance [get]
func (h *fiscalYearHandler) getTrialBalance(c *gin.Context) {
	tb, err := h.accountService.GetTrialBalance(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "build trial balance")
		return
	}
	c.JSON(http.StatusOK, tb)
}
