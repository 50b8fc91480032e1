package handlers

import (
	"net/http"
	"strconv"

	portssvc "github.com/awqaf-platform/waqf_ledger/internal/core/ports/services"
	"github.com/awqaf-platform/waqf_ledger/internal/dto"
	"github.com/gin-gonic/gin"
)

// beneficiaryHandler handles the beneficiary registry and its published history.
type beneficiaryHandler struct {
	beneficiaryService  portssvc.BeneficiarySvcFacade
	distributionService portssvc.DistributionReaderSvc
}

func registerBeneficiaryRoutes(rg *gin.RouterGroup, bs portssvc.BeneficiarySvcFacade, ds portssvc.DistributionReaderSvc) {
	h := &beneficiaryHandler{beneficiaryService: bs, distributionService: ds}

	beneficiaries := rg.Group("/beneficiaries")
	{
		beneficiaries.POST("", h.createBeneficiary)
		beneficiaries.GET("", h.listBeneficiaries)
		beneficiaries.GET("/:id", h.getBeneficiary)
		beneficiaries.PUT("/:id/share", h.updateShare)
		beneficiaries.POST("/:id/archive", h.archiveBeneficiary)
		beneficiaries.GET("/:id/distributions", h.listPublished)
	}
}

// createBeneficiary godoc
// @Summary Register a beneficiary
// @Tags beneficiaries
// @Accept  json
// @Produce  json
// @Param   beneficiary body dto.CreateBeneficiaryRequest true "Beneficiary"
// @Success 201 {object} domain.Beneficiary
// @Failure 400 {object} dto.ErrorResponse "Invalid share"
// @Security BearerAuth
// @Router /beneficiaries [post]
func (h *beneficiaryHandler) createBeneficiary(c *gin.Context) {
	var req dto.CreateBeneficiaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "CreateBeneficiary")
		return
	}
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	b, err := h.beneficiaryService.CreateBeneficiary(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "create beneficiary")
		return
	}
	c.JSON(http.StatusCreated, b)
}

// listBeneficiaries godoc
// @Summary List beneficiaries
// @Tags beneficiaries
// @Produce  json
// @Param   include_archived query bool false "Include archived beneficiaries"
// @Success 200 {array} domain.Beneficiary
// @Security BearerAuth
// @Router /beneficiaries [get]
func (h *beneficiaryHandler) listBeneficiaries(c *gin.Context) {
	includeArchived, _ := strconv.ParseBool(c.Query("include_archived"))
	list, err := h.beneficiaryService.ListBeneficiaries(c.Request.Context(), includeArchived)
	if err != nil {
		respondError(c, err, "list beneficiaries")
		return
	}
	c.JSON(http.StatusOK, list)
}

// getBeneficiary godoc
// @Summary Get a beneficiary
// @Tags beneficiaries
// @Produce  json
// @Param   id path string true "Beneficiary ID"
// @Success 200 {object} domain.Beneficiary
// @Failure 404 {object} dto.ErrorResponse "Beneficiary not found"
// @Security BearerAuth
// @Router /beneficiaries/{id} [get]
func (h *beneficiaryHandler) getBeneficiary(c *gin.Context) {
	b, err := h.beneficiaryService.GetBeneficiary(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "retrieve beneficiary")
		return
	}
	c.JSON(http.StatusOK, b)
}

// updateShare godoc
// @Summary Change a beneficiary's share
// @Description Applies to future computations only.
// @Tags beneficiaries
// @Accept  json
// @Produce  json
// @Param   id path string true "Beneficiary ID"
// @Param   request body dto.UpdateBeneficiaryShareRequest true "New share"
// @Success 200 {object} domain.Beneficiary
// @Failure 400 {object} dto.ErrorResponse "Invalid share"
// @Security BearerAuth
// @Router /beneficiaries/{id}/share [put]
func (h *beneficiaryHandler) updateShare(c *gin.Context) {
	var req dto.UpdateBeneficiaryShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "UpdateBeneficiaryShare")
		return
	}
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	b, err := h.beneficiaryService.UpdateBeneficiaryShare(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err, "update beneficiary share")
		return
	}
	c.JSON(http.StatusOK, b)
}

// archiveBeneficiary godoc
// @Summary Archive a beneficiary
// @Tags beneficiaries
// @Accept  json
// @Param   id path string true "Beneficiary ID"
// @Param   request body dto.ArchiveRequest true "Archive reason"
// @Success 204 "No Content"
// @Failure 404 {object} dto.ErrorResponse "Beneficiary not found"
// @Security BearerAuth
// @Router /beneficiaries/{id}/archive [post]
func (h *beneficiaryHandler) archiveBeneficiary(c *gin.Context) {
	var req dto.ArchiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "ArchiveBeneficiary")
		return
	}
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	if err := h.beneficiaryService.ArchiveBeneficiary(c.Request.Context(), c.Param("id"), req.Reason, userID); err != nil {
		respondError(c, err, "archive beneficiary")
		return
	}
	c.Status(http.StatusNoContent)
}

// listPublished godoc
// @Summary A beneficiary's allocations from published years
// @Tags beneficiaries
// @Produce  json
// @Param   id path string true "Beneficiary ID"
// @Success 200 {array} domain.HistoricalAllocation
// @Security BearerAuth
// @Router /beneficiaries/{id}/distributions [get]
func (h *beneficiaryHandler) listPublished(c *gin.Context) {
	history, err := h.distributionService.ListPublishedDistributions(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "list published distributions")
		return
	}
	c.JSON(http.StatusOK, history)
}
