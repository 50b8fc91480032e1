package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/awqaf-platform/waqf_ledger/internal/core/ports/services"
	"github.com/awqaf-platform/waqf_ledger/internal/dto"
	"github.com/awqaf-platform/waqf_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reconciliationHandler handles bank statements and their matching.
type reconciliationHandler struct {
	reconciliationService portssvc.ReconciliationSvcFacade
}

func registerReconciliationRoutes(rg *gin.RouterGroup, rs portssvc.ReconciliationSvcFacade) {
	h := &reconciliationHandler{reconciliationService: rs}

	statements := rg.Group("/bank-statements")
	{
		statements.POST("", h.importStatement)
		statements.GET("/:id", h.getStatement)
		statements.POST("/:id/reconcile", h.reconcileStatement)
	}
	txns := rg.Group("/bank-transactions")
	{
		txns.POST("/:id/match", h.matchTransaction)
		txns.DELETE("/:id/match", h.unmatchTransaction)
	}
}

// importStatement godoc
// @Summary Import a bank statement
// @Tags reconciliation
// @Accept  json
// @Produce  json
// @Param   statement body dto.ImportStatementRequest true "Statement with its lines"
// @Success 201 {object} domain.BankStatement
// @Failure 400 {object} dto.ErrorResponse "Invalid statement"
// @Security BearerAuth
// @Router /bank-statements [post]
func (h *reconciliationHandler) importStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ImportStatementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "ImportStatement")
		return
	}
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	stmt, err := h.reconciliationService.ImportStatement(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "import bank statement")
		return
	}
	logger.Info("Bank statement imported", slog.String("statement_id", stmt.StatementID), slog.Int("transactions", len(stmt.Transactions)))
	c.JSON(http.StatusCreated, stmt)
}

// getStatement godoc
// @Summary Get a bank statement with its lines
// @Tags reconciliation
// @Produce  json
// @Param   id path string true "Statement ID"
// @Success 200 {object} domain.BankStatement
// @Failure 404 {object} dto.ErrorResponse "Statement not found"
// @Security BearerAuth
// @Router /bank-statements/{id} [get]
func (h *reconciliationHandler) getStatement(c *gin.Context) {
	stmt, err := h.reconciliationService.GetStatement(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "retrieve bank statement")
		return
	}
	c.JSON(http.StatusOK, stmt)
}

// matchTransaction godoc
// @Summary Match a bank transaction to a posted entry
// @Tags reconciliation
// @Accept  json
// @Produce  json
// @Param   id path string true "Bank transaction ID"
// @Param   request body dto.MatchTransactionRequest true "Journal entry to match"
// @Success 200 {object} dto.MatchedResponse
// @Failure 409 {object} dto.ErrorResponse "Already matched or statement reconciled"
// @Security BearerAuth
// @Router /bank-transactions/{id}/match [post]
func (h *reconciliationHandler) matchTransaction(c *gin.Context) {
	var req dto.MatchTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "MatchTransaction")
		return
	}
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	if err := h.reconciliationService.MatchTransaction(c.Request.Context(), c.Param("id"), req.EntryID, userID); err != nil {
		respondError(c, err, "match bank transaction")
		return
	}
	c.JSON(http.StatusOK, dto.MatchedResponse{Matched: true})
}

// unmatchTransaction godoc
// @Summary Remove a bank transaction match
// @Tags reconciliation
// @Produce  json
// @Param   id path string true "Bank transaction ID"
// @Success 200 {object} dto.MatchedResponse
// @Failure 409 {object} dto.ErrorResponse "Not matched or statement reconciled"
// @Security BearerAuth
// @Router /bank-transactions/{id}/match [delete]
func (h *reconciliationHandler) unmatchTransaction(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	if err := h.reconciliationService.UnmatchTransaction(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondError(c, err, "unmatch bank transaction")
		return
	}
	c.JSON(http.StatusOK, dto.MatchedResponse{Matched: false})
}

// reconcileStatement godoc
// @Summary Reconcile a bank statement
// @Description Succeeds only when every line is matched and the book balance agrees with the closing balance.
// @Tags reconciliation
// @Produce  json
// @Param   id path string true "Statement ID"
// @Success 200 {object} domain.ReconcileResult
// @Failure 422 {object} dto.ErrorResponse "Unmatched lines or balance discrepancy"
// @Security BearerAuth
// @Router /bank-statements/{id}/reconcile [post]
func (h *reconciliationHandler) reconcileStatement(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	result, err := h.reconciliationService.ReconcileStatement(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err, "reconcile bank statement")
		return
	}
	c.JSON(http.StatusOK, result)
}
