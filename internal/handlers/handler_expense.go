package handlers

import (
	"net/http"

	portsrepo "github.com/centavo-app/centavo-backend/internal/core/ports/repositories"
	portssvc "github.com/centavo-app/centavo-backend/internal/core/ports/services"
	"github.com/centavo-app/centavo-backend/internal/dto"
	"github.com/gin-gonic/gin"
)

// expenseHandler handles expense requests within a project.
type expenseHandler struct {
	expenseService portssvc.ExpenseSvcFacade
}

func newExpenseHandler(es portssvc.ExpenseSvcFacade) *expenseHandler {
	return &expenseHandler{expenseService: es}
}

func registerExpenseRoutes(rg *gin.RouterGroup, expenseService portssvc.ExpenseSvcFacade) {
	h := newExpenseHandler(expenseService)

	expenses := rg.Group("/projects/:projectID/expenses")
	{
		expenses.POST("", h.createExpense)
		expenses.GET("", h.listExpenses)
		expenses.GET("/:expenseID", h.getExpense)
		expenses.PUT("/:expenseID", h.updateExpense)
		expenses.DELETE("/:expenseID", h.deleteExpense)
	}
}

// toListFilter converts query parameters into the repository filter.
func toListFilter(params dto.ListExpensesParams) portsrepo.ExpenseListFilter {
	return portsrepo.ExpenseListFilter{
		CategoryID:    params.CategoryID,
		ObligationID:  params.ObligationID,
		TemplatesOnly: params.TemplatesOnly,
		SortBy:        params.SortBy,
		SortDesc:      params.SortDirection == "desc",
		Limit:         params.Limit(),
		Offset:        params.Offset(),
	}
}

// createExpense godoc
// @Summary Record an expense
// @Description Editors and owners only. The converted amount is computed server-side. Linking an obligationID records the expense as a payment toward it.
// @Tags expenses
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID"
// @Param expense body dto.CreateExpenseRequest true "Expense info"
// @Success 201 {object} dto.ExpenseResponse
// @Failure 400 {object} ErrorResponse
// @Failure 402 {object} ErrorResponse "Plan limit reached"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /projects/{projectID}/expenses [post]
func (h *expenseHandler) createExpense(c *gin.Context) {
	callerID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	expense, err := h.expenseService.CreateExpense(c.Request.Context(), c.Param("projectID"), req, callerID)
	if err != nil {
		respondError(c, err, "Failed to create expense")
		return
	}
	c.JSON(http.StatusCreated, dto.ToExpenseResponse(expense))
}

// listExpenses godoc
// @Summary List project expenses
// @Tags expenses
// @Produce json
// @Param projectID path string true "Project ID"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(10)
// @Param categoryId query string false "Filter by category"
// @Param obligationId query string false "Filter by linked obligation"
// @Param templatesOnly query bool false "List templates instead of expenses"
// @Param sortBy query string false "Sort column" Enums(expenseDate, createdAt, convertedAmount) default(expenseDate)
// @Param sortDirection query string false "Sort direction" Enums(asc, desc) default(desc)
// @Success 200 {object} dto.PageResponse[dto.ExpenseResponse]
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /projects/{projectID}/expenses [get]
func (h *expenseHandler) listExpenses(c *gin.Context) {
	callerID, ok := mustUserID(c)
	if !ok {
		return
	}

	var params dto.ListExpensesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	expenses, total, err := h.expenseService.ListExpenses(c.Request.Context(), c.Param("projectID"), toListFilter(params), callerID)
	if err != nil {
		respondError(c, err, "Failed to list expenses")
		return
	}
	c.JSON(http.StatusOK, dto.NewPageResponse(dto.ToListExpenseResponse(expenses), params.Page, params.Limit(), total))
}

// getExpense godoc
// @Summary Get an expense
// @Tags expenses
// @Produce json
// @Param projectID path string true "Project ID"
// @Param expenseID path string true "Expense ID"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /projects/{projectID}/expenses/{expenseID} [get]
func (h *expenseHandler) getExpense(c *gin.Context) {
	callerID, ok := mustUserID(c)
	if !ok {
		return
	}

	expense, err := h.expenseService.GetExpense(c.Request.Context(), c.Param("projectID"), c.Param("expenseID"), callerID)
	if err != nil {
		respondError(c, err, "Failed to get expense")
		return
	}
	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}

// updateExpense godoc
// @Summary Update an expense
// @Description Replaces all fields. Amount and currency changes recompute the converted amount and any linked obligation balance.
// @Tags expenses
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID"
// @Param expenseID path string true "Expense ID"
// @Param expense body dto.UpdateExpenseRequest true "Fields to update"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /projects/{projectID}/expenses/{expenseID} [put]
func (h *expenseHandler) updateExpense(c *gin.Context) {
	callerID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	expense, err := h.expenseService.UpdateExpense(c.Request.Context(), c.Param("projectID"), c.Param("expenseID"), req, callerID)
	if err != nil {
		respondError(c, err, "Failed to update expense")
		return
	}
	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}

// deleteExpense godoc
// @Summary Delete an expense
// @Description Soft delete. A deleted expense stops counting toward any linked obligation's paid amount.
// @Tags expenses
// @Param projectID path string true "Project ID"
// @Param expenseID path string true "Expense ID"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /projects/{projectID}/expenses/{expenseID} [delete]
func (h *expenseHandler) deleteExpense(c *gin.Context) {
	callerID, ok := mustUserID(c)
	if !ok {
		return
	}

	if err := h.expenseService.DeleteExpense(c.Request.Context(), c.Param("projectID"), c.Param("expenseID"), callerID); err != nil {
		respondError(c, err, "Failed to delete expense")
		return
	}
	c.Status(http.StatusNoContent)
}
