package handlers

import (
	"net/http"

	portssvc "github.com/centavo-app/centavo-backend/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

// reportingHandler serves read-only spending reports.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/projects/:projectID/reports")
	{
		reports.GET("/categories", h.categoryTotals)
		reports.GET("/budget", h.budgetReport)
	}
}

// categoryTotals godoc
// @Summary Per-category spending totals
// @Description Totals are in the project's base currency and exclude templates and deleted expenses.
// @Tags reports
// @Produce json
// @Param projectID path string true "Project ID"
// @Success 200 {array} dto.CategoryTotal
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /projects/{projectID}/reports/categories [get]
func (h *reportingHandler) categoryTotals(c *gin.Context) {
	callerID, ok := mustUserID(c)
	if !ok {
		return
	}

	totals, err := h.reportingService.CategoryTotals(c.Request.Context(), c.Param("projectID"), callerID)
	if err != nil {
		respondError(c, err, "Failed to compute category totals")
		return
	}
	c.JSON(http.StatusOK, totals)
}

// budgetReport godoc
// @Summary Budget versus spending report
// @Tags reports
// @Produce json
// @Param projectID path string true "Project ID"
// @Success 200 {object} dto.BudgetReport
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "No budget set"
// @Security BearerAuth
// @Router /projects/{projectID}/reports/budget [get]
func (h *reportingHandler) budgetReport(c *gin.Context) {
	callerID, ok := mustUserID(c)
	if !ok {
		return
	}

	report, err := h.reportingService.BudgetReport(c.Request.Context(), c.Param("projectID"), callerID)
	if err != nil {
		respondError(c, err, "Failed to compute budget report")
		return
	}
	c.JSON(http.StatusOK, report)
}
