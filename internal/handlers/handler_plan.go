package handlers

import (
	"net/http"

	portssvc "github.com/centavo-app/centavo-backend/internal/core/ports/services"
	"github.com/centavo-app/centavo-backend/internal/dto"
	"github.com/gin-gonic/gin"
)

// planHandler serves the plan catalogue.
type planHandler struct {
	planService portssvc.PlanSvcFacade
}

func newPlanHandler(ps portssvc.PlanSvcFacade) *planHandler {
	return &planHandler{planService: ps}
}

func registerPlanRoutes(rg *gin.RouterGroup, planService portssvc.PlanSvcFacade) {
	h := newPlanHandler(planService)

	plans := rg.Group("/plans")
	{
		plans.GET("", h.listPlans)
		plans.GET("/:planID", h.getPlan)
	}
}

// listPlans godoc
// @Summary List active subscription plans
// @Tags plans
// @Produce json
// @Success 200 {array} dto.PlanResponse
// @Security BearerAuth
// @Router /plans [get]
func (h *planHandler) listPlans(c *gin.Context) {
	plans, err := h.planService.ListPlans(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list plans")
		return
	}
	c.JSON(http.StatusOK, dto.ToListPlanResponse(plans))
}

// getPlan godoc
// @Summary Get a plan
// @Tags plans
// @Produce json
// @Param planID path string true "Plan ID"
// @Success 200 {object} dto.PlanResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /plans/{planID} [get]
func (h *planHandler) getPlan(c *gin.Context) {
	plan, err := h.planService.GetPlanByID(c.Request.Context(), c.Param("planID"))
	if err != nil {
		respondError(c, err, "Failed to get plan")
		return
	}
	c.JSON(http.StatusOK, dto.ToPlanResponse(plan))
}
