package handlers

import (
	"net/http"

	portssvc "github.com/centavo-app/centavo-backend/internal/core/ports/services"
	"github.com/centavo-app/centavo-backend/internal/dto"
	"github.com/gin-gonic/gin"
)

// obligationHandler handles obligation requests within a project. Every
// response carries the derived balance fields.
type obligationHandler struct {
	obligationService portssvc.ObligationSvcFacade
}

func newObligationHandler(os portssvc.ObligationSvcFacade) *obligationHandler {
	return &obligationHandler{obligationService: os}
}

func registerObligationRoutes(rg *gin.RouterGroup, obligationService portssvc.ObligationSvcFacade) {
	h := newObligationHandler(obligationService)

	obligations := rg.Group("/projects/:projectID/obligations")
	{
		obligations.POST("", h.createObligation)
		obligations.GET("", h.listObligations)
		obligations.GET("/:obligationID", h.getObligation)
		obligations.PUT("/:obligationID", h.updateObligation)
		obligations.DELETE("/:obligationID", h.deleteObligation)
	}
}

// createObligation godoc
// @Summary Create an obligation
// @Description Editors and owners only. A new obligation starts with a zero paid amount.
// @Tags obligations
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID"
// @Param obligation body dto.CreateObligationRequest true "Obligation info"
// @Success 201 {object} dto.ObligationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /projects/{projectID}/obligations [post]
func (h *obligationHandler) createObligation(c *gin.Context) {
	callerID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.CreateObligationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	obligation, err := h.obligationService.CreateObligation(c.Request.Context(), c.Param("projectID"), req, callerID)
	if err != nil {
		respondError(c, err, "Failed to create obligation")
		return
	}
	c.JSON(http.StatusCreated, dto.ToObligationResponse(obligation))
}

// listObligations godoc
// @Summary List project obligations
// @Description The status filter matches the derived status, so a paid obligation that a due date would otherwise mark overdue is still "paid".
// @Tags obligations
// @Produce json
// @Param projectID path string true "Project ID"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(10)
// @Param status query string false "Filter by derived status" Enums(open, partially_paid, paid, overdue)
// @Param sortBy query string false "Sort column" Enums(dueDate, createdAt, totalAmount) default(dueDate)
// @Param sortDirection query string false "Sort direction" Enums(asc, desc) default(asc)
// @Success 200 {object} dto.PageResponse[dto.ObligationResponse]
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /projects/{projectID}/obligations [get]
func (h *obligationHandler) listObligations(c *gin.Context) {
	callerID, ok := mustUserID(c)
	if !ok {
		return
	}

	var params dto.ListObligationsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	obligations, total, err := h.obligationService.ListObligations(c.Request.Context(), c.Param("projectID"), params, callerID)
	if err != nil {
		respondError(c, err, "Failed to list obligations")
		return
	}
	c.JSON(http.StatusOK, dto.NewPageResponse(dto.ToListObligationResponse(obligations), params.Page, params.Limit(), total))
}

// getObligation godoc
// @Summary Get an obligation
// @Tags obligations
// @Produce json
// @Param projectID path string true "Project ID"
// @Param obligationID path string true "Obligation ID"
// @Success 200 {object} dto.ObligationResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /projects/{projectID}/obligations/{obligationID} [get]
func (h *obligationHandler) getObligation(c *gin.Context) {
	callerID, ok := mustUserID(c)
	if !ok {
		return
	}

	obligation, err := h.obligationService.GetObligation(c.Request.Context(), c.Param("projectID"), c.Param("obligationID"), callerID)
	if err != nil {
		respondError(c, err, "Failed to get obligation")
		return
	}
	c.JSON(http.StatusOK, dto.ToObligationResponse(obligation))
}

// updateObligation godoc
// @Summary Update an obligation
// @Description The currency is immutable. Lowering the total below the paid amount is allowed and shows a negative remaining amount.
// @Tags obligations
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID"
// @Param obligationID path string true "Obligation ID"
// @Param obligation body dto.UpdateObligationRequest true "Fields to update"
// @Success 200 {object} dto.ObligationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /projects/{projectID}/obligations/{obligationID} [put]
func (h *obligationHandler) updateObligation(c *gin.Context) {
	callerID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateObligationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	obligation, err := h.obligationService.UpdateObligation(c.Request.Context(), c.Param("projectID"), c.Param("obligationID"), req, callerID)
	if err != nil {
		respondError(c, err, "Failed to update obligation")
		return
	}
	c.JSON(http.StatusOK, dto.ToObligationResponse(obligation))
}

// deleteObligation godoc
// @Summary Delete an obligation
// @Description Soft delete. Linked expenses survive as regular expenses.
// @Tags obligations
// @Param projectID path string true "Project ID"
// @Param obligationID path string true "Obligation ID"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /projects/{projectID}/obligations/{obligationID} [delete]
func (h *obligationHandler) deleteObligation(c *gin.Context) {
	callerID, ok := mustUserID(c)
	if !ok {
		return
	}

	if err := h.obligationService.DeleteObligation(c.Request.Context(), c.Param("projectID"), c.Param("obligationID"), callerID); err != nil {
		respondError(c, err, "Failed to delete obligation")
		return
	}
	c.Status(http.StatusNoContent)
}
