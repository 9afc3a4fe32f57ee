package handlers

import (
	"net/http"

	portssvc "github.com/centavo-app/centavo-backend/internal/core/ports/services"
	"github.com/centavo-app/centavo-backend/internal/dto"
	"github.com/gin-gonic/gin"
)

// auditHandler serves the project audit trail.
type auditHandler struct {
	auditService portssvc.AuditSvcFacade
}

func newAuditHandler(as portssvc.AuditSvcFacade) *auditHandler {
	return &auditHandler{auditService: as}
}

func registerAuditRoutes(rg *gin.RouterGroup, auditService portssvc.AuditSvcFacade) {
	h := newAuditHandler(auditService)

	rg.GET("/projects/:projectID/audit-logs", h.listAuditLogs)
}

// listAuditLogs godoc
// @Summary List project audit log entries
// @Description Newest first. Any project member may read the trail.
// @Tags audit
// @Produce json
// @Param projectID path string true "Project ID"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(10)
// @Success 200 {object} dto.PageResponse[dto.AuditLogResponse]
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /projects/{projectID}/audit-logs [get]
func (h *auditHandler) listAuditLogs(c *gin.Context) {
	callerID, ok := mustUserID(c)
	if !ok {
		return
	}

	var params dto.PageParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	entries, total, err := h.auditService.ListForProject(c.Request.Context(), c.Param("projectID"), callerID, params.Page, params.Limit())
	if err != nil {
		respondError(c, err, "Failed to list audit logs")
		return
	}
	c.JSON(http.StatusOK, dto.NewPageResponse(dto.ToListAuditLogResponse(entries), params.Page, params.Limit(), total))
}
