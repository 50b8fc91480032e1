package handlers

import (
	"net/http"

	portssvc "github.com/awqaf-platform/waqf_ledger/internal/core/ports/services"
	"github.com/awqaf-platform/waqf_ledger/internal/dto"
	"github.com/gin-gonic/gin"
)

type budgetHandler struct {
	budgetService portssvc.BudgetSvcFacade
}

func registerBudgetRoutes(rg *gin.RouterGroup, budgetService portssvc.BudgetSvcFacade) {
	h := &budgetHandler{budgetService: budgetService}

	rg.PUT("/budgets", h.setBudget)
	rg.GET("/fiscal-years/:id/budget-report", h.getBudgetReport)
}

// setBudget godoc
// @Summary Set a budget line
// @Description Inserts or replaces the budget of an account for one period.
// @Tags budgets
// @Accept  json
// @Produce  json
// @Param   budget body dto.SetBudgetRequest true "Budget line"
// @Success 200 {object} domain.Budget
// @Failure 400 {object} dto.ErrorResponse "Invalid period or amount"
// @Failure 409 {object} dto.ErrorResponse "Fiscal year is locked"
// @Security BearerAuth
// @Router /budgets [put]
func (h *budgetHandler) setBudget(c *gin.Context) {
	var req dto.SetBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "SetBudget")
		return
	}
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	budget, err := h.budgetService.SetBudget(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "set budget")
		return
	}
	c.JSON(http.StatusOK, budget)
}

// getBudgetReport godoc
// @Summary Budget versus actual
// @Tags budgets
// @Produce  json
// @Param   id path string true "Fiscal year ID"
// @Success 200 {object} dto.BudgetReportResponse
// @Failure 404 {object} dto.ErrorResponse "Fiscal year not found"
// @Security BearerAuth
// @Router /fiscal-years/{id}/budget-report [get]
func (h *budgetHandler) getBudgetReport(c *gin.Context) {
	fiscalYearID := c.Param("id")
	lines, err := h.budgetService.GetBudgetReport(c.Request.Context(), fiscalYearID)
	if err != nil {
		respondError(c, err, "build budget report")
		return
	}
	c.JSON(http.StatusOK, dto.BudgetReportResponse{FiscalYearID: fiscalYearID, Lines: lines})
}
