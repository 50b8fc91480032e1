package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/awqaf-platform/waqf_ledger/internal/core/ports/services"
	"github.com/awqaf-platform/waqf_ledger/internal/dto"
	"github.com/awqaf-platform/waqf_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// distributionHandler handles distribution computation, approval and payment.
type distributionHandler struct {
	distributionService portssvc.DistributionSvcFacade
	approvalService     portssvc.ApprovalSvcFacade
}

func newDistributionHandler(ds portssvc.DistributionSvcFacade, as portssvc.ApprovalSvcFacade) *distributionHandler {
	return &distributionHandler{
		distributionService: ds,
		approvalService:     as,
	}
}

// registerDistributionRoutes registers distribution and approval routes.
func registerDistributionRoutes(rg *gin.RouterGroup, ds portssvc.DistributionSvcFacade, as portssvc.ApprovalSvcFacade) {
	h := newDistributionHandler(ds, as)

	distributions := rg.Group("/distributions")
	{
		distributions.POST("", h.computeDistribution)
		distributions.GET("", h.listDistributions)
		distributions.GET("/:id", h.getDistribution)
		distributions.POST("/:id/recompute", h.recompute)
		distributions.POST("/:id/vouchers", h.generateVouchers)
		distributions.POST("/:id/approvals", h.submitApproval)
		distributions.GET("/:id/approvals", h.listApprovals)
	}
	details := rg.Group("/distribution-details")
	{
		details.POST("/:id/paid", h.markDetailPaid)
		details.POST("/:id/cancel", h.cancelDetail)
	}
}

// computeDistribution godoc
// @Summary Compute the distribution of a period
// @Description Creates the distribution or, when it is pending or rejected, a new revision of it.
// @Tags distributions
// @Accept  json
// @Produce  json
// @Param   request body dto.ComputeDistributionRequest true "Period to distribute"
// @Success 200 {object} domain.Distribution
// @Failure 400 {object} dto.ErrorResponse "No eligible beneficiaries, negative amount or invalid period"
// @Failure 409 {object} dto.ErrorResponse "Period locked or concurrent change"
// @Security BearerAuth
// @Router /distributions [post]
func (h *distributionHandler) computeDistribution(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ComputeDistributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "ComputeDistribution")
		return
	}
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	d, err := h.distributionService.ComputeDistribution(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "compute distribution")
		return
	}
	logger.Info("Distribution computed",
		slog.String("distribution_id", d.DistributionID),
		slog.Int("revision", d.Revision),
		slog.String("distributable_amount", d.DistributableAmount.String()))
	c.JSON(http.StatusOK, d)
}

// listDistributions godoc
// @Summary List distributions of a fiscal year
// @Tags distributions
// @Produce  json
// @Param   fiscalYearID query string true "Fiscal year ID"
// @Success 200 {array} domain.Distribution
// @Security BearerAuth
// @Router /distributions [get]
func (h *distributionHandler) listDistributions(c *gin.Context) {
	fiscalYearID := c.Query("fiscalYearID")
	if fiscalYearID == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "fiscalYearID query parameter is required", Kind: "VALIDATION", Code: "INVALID_INPUT"})
		return
	}
	list, err := h.distributionService.ListDistributions(c.Request.Context(), fiscalYearID)
	if err != nil {
		respondError(c, err, "list distributions")
		return
	}
	c.JSON(http.StatusOK, list)
}

// getDistribution godoc
// @Summary Get a distribution with its details and approvals
// @Tags distributions
// @Produce  json
// @Param   id path string true "Distribution ID"
// @Success 200 {object} domain.Distribution
// @Failure 404 {object} dto.ErrorResponse "Distribution not found"
// @Security BearerAuth
// @Router /distributions/{id} [get]
func (h *distributionHandler) getDistribution(c *gin.Context) {
	d, err := h.distributionService.GetDistribution(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "retrieve distribution")
		return
	}
	c.JSON(http.StatusOK, d)
}

// recompute godoc
// @Summary Recompute a distribution from the current ledger
// @Tags distributions
// @Accept  json
// @Produce  json
// @Param   id path string true "Distribution ID"
// @Param   request body dto.RecomputeDistributionRequest false "Recompute options"
// @Success 200 {object} domain.Distribution
// @Failure 409 {object} dto.ErrorResponse "Distribution already approved or period locked"
// @Security BearerAuth
// @Router /distributions/{id}/recompute [post]
func (h *distributionHandler) recompute(c *gin.Context) {
	var req dto.RecomputeDistributionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err, "Recompute")
			return
		}
	}
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	d, err := h.distributionService.Recompute(c.Request.Context(), c.Param("id"), req.RefreshSplit, userID)
	if err != nil {
		respondError(c, err, "recompute distribution")
		return
	}
	c.JSON(http.StatusOK, d)
}

// generateVouchers godoc
// @Summary Issue payment vouchers
// @Description Numbers every pending detail of an approved distribution.
// @Tags distributions
// @Produce  json
// @Param   id path string true "Distribution ID"
// @Success 200 {object} domain.Distribution
// @Failure 409 {object} dto.ErrorResponse "Distribution is not approved"
// @Security BearerAuth
// @Router /distributions/{id}/vouchers [post]
func (h *distributionHandler) generateVouchers(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	d, err := h.distributionService.GeneratePaymentVouchers(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err, "generate payment vouchers")
		return
	}
	c.JSON(http.StatusOK, d)
}

// submitApproval godoc
// @Summary Record an approval decision
// @Description The caller's token must grant the role being decided. Levels are decided in order.
// @Tags approvals
// @Accept  json
// @Produce  json
// @Param   id path string true "Distribution ID"
// @Param   request body dto.SubmitApprovalRequest true "Decision"
// @Success 200 {object} domain.Distribution
// @Failure 403 {object} dto.ErrorResponse "Role not granted"
// @Failure 409 {object} dto.ErrorResponse "Level already decided, out of order, or stale"
// @Security BearerAuth
// @Router /distributions/{id}/approvals [post]
func (h *distributionHandler) submitApproval(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SubmitApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "SubmitApproval")
		return
	}
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		logger.Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
		return
	}

	distributionID := c.Param("id")
	d, err := h.approvalService.SubmitApproval(c.Request.Context(), distributionID, req, actor)
	if err != nil {
		respondError(c, err, "submit approval")
		return
	}
	logger.Info("Approval recorded",
		slog.String("distribution_id", distributionID),
		slog.String("role", string(req.Role)),
		slog.String("decision", string(req.Decision)),
		slog.String("status", string(d.Status)))
	c.JSON(http.StatusOK, d)
}

// listApprovals godoc
// @Summary List approval records of every revision
// @Tags approvals
// @Produce  json
// @Param   id path string true "Distribution ID"
// @Success 200 {array} domain.Approval
// @Failure 404 {object} dto.ErrorResponse "Distribution not found"
// @Security BearerAuth
// @Router /distributions/{id}/approvals [get]
func (h *distributionHandler) listApprovals(c *gin.Context) {
	approvals, err := h.approvalService.ListApprovals(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "list approvals")
		return
	}
	c.JSON(http.StatusOK, approvals)
}

// markDetailPaid godoc
// @Summary Mark a distribution detail paid
// @Tags distributions
// @Accept  json
// @Produce  json
// @Param   id path string true "Detail ID"
// @Param   request body dto.MarkPaidRequest true "Payment date"
// @Success 200 {object} domain.DistributionDetail
// @Failure 409 {object} dto.ErrorResponse "Detail is not payable"
// @Security BearerAuth
// @Router /distribution-details/{id}/paid [post]
func (h *distributionHandler) markDetailPaid(c *gin.Context) {
	var req dto.MarkPaidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "MarkDetailPaid")
		return
	}
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	detail, err := h.distributionService.MarkDetailPaid(c.Request.Context(), c.Param("id"), req.PaidAt, userID)
	if err != nil {
		respondError(c, err, "mark detail paid")
		return
	}
	c.JSON(http.StatusOK, detail)
}

// cancelDetail godoc
// @Summary Cancel a pending distribution detail
// @Tags distributions
// @Accept  json
// @Produce  json
// @Param   id path string true "Detail ID"
// @Param   request body dto.CancelDetailRequest true "Cancellation reason"
// @Success 200 {object} domain.DistributionDetail
// @Failure 409 {object} dto.ErrorResponse "Detail is not pending"
// @Security BearerAuth
// @Router /distribution-details/{id}/cancel [post]
func (h *distributionHandler) cancelDetail(c *gin.Context) {
	var req dto.CancelDetailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "CancelDetail")
		return
	}
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	detail, err := h.distributionService.CancelDetail(c.Request.Context(), c.Param("id"), req.Reason, userID)
	if err != nil {
		respondError(c, err, "cancel detail")
		return
	}
	c.JSON(http.StatusOK, detail)
}
