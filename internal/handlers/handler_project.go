package handlers

import (
	"net/http"

	"github.com/centavo-app/centavo-backend/internal/core/domain"
	portssvc "github.com/centavo-app/centavo-backend/internal/core/ports/services"
	"github.com/centavo-app/centavo-backend/internal/dto"
	"github.com/gin-gonic/gin"
)

// projectHandler handles project, membership and budget requests.
type projectHandler struct {
	projectService portssvc.ProjectSvcFacade
}

func newProjectHandler(ps portssvc.ProjectSvcFacade) *projectHandler {
	return &projectHandler{projectService: ps}
}

func registerProjectRoutes(rg *gin.RouterGroup, projectService portssvc.ProjectSvcFacade) {
	h := newProjectHandler(projectService)

	projects := rg.Group("/projects")
	{
		projects.POST("", h.createProject)
		projects.GET("", h.listProjects)
		projects.GET("/:projectID", h.getProject)
		projects.PUT("/:projectID", h.updateProject)
		projects.DELETE("/:projectID", h.deleteProject)

		projects.POST("/:projectID/members", h.addMember)
		projects.GET("/:projectID/members", h.listMembers)
		projects.PUT("/:projectID/members/:memberID", h.changeMemberRole)
		projects.DELETE("/:projectID/members/:memberID", h.removeMember)

		projects.PUT("/:projectID/budget", h.setBudget)
		projects.GET("/:projectID/budget", h.getBudget)
	}
}

// createProject godoc
// @Summary Create a project
// @Description Creates a project with the caller as owner and a default "General" category.
// @Tags projects
// @Accept json
// @Produce json
// @Param project body dto.CreateProjectRequest true "Project info"
// @Success 201 {object} dto.ProjectResponse
// @Failure 400 {object} ErrorResponse
// @Failure 402 {object} ErrorResponse "Plan limit reached"
// @Security BearerAuth
// @Router /projects [post]
func (h *projectHandler) createProject(c *gin.Context) {
	callerID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	project, err := h.projectService.CreateProject(c.Request.Context(), req, callerID)
	if err != nil {
		respondError(c, err, "Failed to create project")
		return
	}
	c.JSON(http.StatusCreated, dto.ToProjectResponse(project, domain.RoleOwner))
}

// listProjects godoc
// @Summary List the caller's projects
// @Tags projects
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(10)
// @Success 200 {object} dto.PageResponse[dto.ProjectResponse]
// @Security BearerAuth
// @Router /projects [get]
func (h *projectHandler) listProjects(c *gin.Context) {
	callerID, ok := mustUserID(c)
	if !ok {
		return
	}

	var params dto.PageParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	projects, roles, total, err := h.projectService.ListProjects(c.Request.Context(), callerID, params.Page, params.Limit())
	if err != nil {
		respondError(c, err, "Failed to list projects")
		return
	}

	items := make([]dto.ProjectResponse, len(projects))
	for i, p := range projects {
		items[i] = dto.ToProjectResponse(&p, roles[p.ProjectID])
	}
	c.JSON(http.StatusOK, dto.NewPageResponse(items, params.Page, params.Limit(), total))
}

// getProject godoc
// @Summary Get a project
// @Tags projects
// @Produce json
// @Param projectID path string true "Project ID"
// @Success 200 {object} dto.ProjectResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /projects/{projectID} [get]
func (h *projectHandler) getProject(c *gin.Context) {
	callerID, ok := mustUserID(c)
	if !ok {
		return
	}

	project, role, err := h.projectService.GetProject(c.Request.Context(), c.Param("projectID"), callerID)
	if err != nil {
		respondError(c, err, "Failed to get project")
		return
	}
	c.JSON(http.StatusOK, dto.ToProjectResponse(project, role))
}

// updateProject godoc
// @Summary Update a project
// @Description Owner only. The base currency cannot be changed.
// @Tags projects
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID"
// @Param project body dto.UpdateProjectRequest true "Fields to update"
// @Success 200 {object} dto.ProjectResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /projects/{projectID} [put]
func (h *projectHandler) updateProject(c *gin.Context) {
	callerID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	project, err := h.projectService.UpdateProject(c.Request.Context(), c.Param("projectID"), req, callerID)
	if err != nil {
		respondError(c, err, "Failed to update project")
		return
	}
	c.JSON(http.StatusOK, dto.ToProjectResponse(project, domain.RoleOwner))
}

// deleteProject godoc
// @Summary Delete a project
// @Description Owner only. Soft-deletes the project; its contents stop being listed.
// @Tags projects
// @Param projectID path string true "Project ID"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /projects/{projectID} [delete]
func (h *projectHandler) deleteProject(c *gin.Context) {
	callerID, ok := mustUserID(c)
	if !ok {
		return
	}

	if err := h.projectService.DeleteProject(c.Request.Context(), c.Param("projectID"), callerID); err != nil {
		respondError(c, err, "Failed to delete project")
		return
	}
	c.Status(http.StatusNoContent)
}

// addMember godoc
// @Summary Add a project member
// @Description Owner only. Invites an existing user by email. Requires a plan with sharing enabled.
// @Tags members
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID"
// @Param member body dto.AddMemberRequest true "Member info"
// @Success 201 {object} dto.MemberResponse
// @Failure 400 {object} ErrorResponse
// @Failure 402 {object} ErrorResponse "Plan does not allow sharing"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "No account with that email"
// @Failure 409 {object} ErrorResponse "Already a member"
// @Security BearerAuth
// @Router /projects/{projectID}/members [post]
func (h *projectHandler) addMember(c *gin.Context) {
	callerID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	member, err := h.projectService.AddMember(c.Request.Context(), c.Param("projectID"), req, callerID)
	if err != nil {
		respondError(c, err, "Failed to add member")
		return
	}
	c.JSON(http.StatusCreated, dto.ToMemberResponse(member))
}

// listMembers godoc
// @Summary List project members
// @Tags members
// @Produce json
// @Param projectID path string true "Project ID"
// @Success 200 {array} dto.MemberResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /projects/{projectID}/members [get]
func (h *projectHandler) listMembers(c *gin.Context) {
	callerID, ok := mustUserID(c)
	if !ok {
		return
	}

	members, err := h.projectService.ListMembers(c.Request.Context(), c.Param("projectID"), callerID)
	if err != nil {
		respondError(c, err, "Failed to list members")
		return
	}

	res := make([]dto.MemberResponse, len(members))
	for i, m := range members {
		res[i] = dto.ToMemberResponse(&m)
	}
	c.JSON(http.StatusOK, res)
}

// changeMemberRole godoc
// @Summary Change a member's role
// @Description Owner only. The owner's own membership cannot be changed.
// @Tags members
// @Accept json
// @Param projectID path string true "Project ID"
// @Param memberID path string true "Membership ID"
// @Param role body dto.ChangeMemberRoleRequest true "New role"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /projects/{projectID}/members/{memberID} [put]
func (h *projectHandler) changeMemberRole(c *gin.Context) {
	callerID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.ChangeMemberRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	err := h.projectService.ChangeMemberRole(c.Request.Context(), c.Param("projectID"), c.Param("memberID"), req.Role, callerID)
	if err != nil {
		respondError(c, err, "Failed to change member role")
		return
	}
	c.Status(http.StatusNoContent)
}

// removeMember godoc
// @Summary Remove a project member
// @Description Owner only. The owner's own membership cannot be removed.
// @Tags members
// @Param projectID path string true "Project ID"
// @Param memberID path string true "Membership ID"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /projects/{projectID}/members/{memberID} [delete]
func (h *projectHandler) removeMember(c *gin.Context) {
	callerID, ok := mustUserID(c)
	if !ok {
		return
	}

	err := h.projectService.RemoveMember(c.Request.Context(), c.Param("projectID"), c.Param("memberID"), callerID)
	if err != nil {
		respondError(c, err, "Failed to remove member")
		return
	}
	c.Status(http.StatusNoContent)
}

// setBudget godoc
// @Summary Set the project budget
// @Description Owner only. Creates or replaces the single budget for the project.
// @Tags budget
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID"
// @Param budget body dto.SetBudgetRequest true "Budget info"
// @Success 200 {object} dto.BudgetResponse
// @Failure 400 {object} ErrorResponse
// @Failure 402 {object} ErrorResponse "Plan does not allow budgets"
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /projects/{projectID}/budget [put]
func (h *projectHandler) setBudget(c *gin.Context) {
	callerID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.SetBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	budget, err := h.projectService.SetBudget(c.Request.Context(), c.Param("projectID"), req, callerID)
	if err != nil {
		respondError(c, err, "Failed to set budget")
		return
	}
	c.JSON(http.StatusOK, dto.ToBudgetResponse(budget))
}

// getBudget godoc
// @Summary Get the project budget
// @Tags budget
// @Produce json
// @Param projectID path string true "Project ID"
// @Success 200 {object} dto.BudgetResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "No budget set"
// @Security BearerAuth
// @Router /projects/{projectID}/budget [get]
func (h *projectHandler) getBudget(c *gin.Context) {
	callerID, ok := mustUserID(c)
	if !ok {
		return
	}

	budget, err := h.projectService.GetBudget(c.Request.Context(), c.Param("projectID"), callerID)
	if err != nil {
		respondError(c, err, "Failed to get budget")
		return
	}
	c.JSON(http.StatusOK, dto.ToBudgetResponse(budget))
}
