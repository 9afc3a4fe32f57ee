package handlers

import (
	"net/http"

	portssvc "github.com/centavo-app/centavo-backend/internal/core/ports/services"
	"github.com/centavo-app/centavo-backend/internal/dto"
	"github.com/gin-gonic/gin"
)

// paymentMethodHandler handles the caller's payment methods. These are
// user-owned and never shared between project members.
type paymentMethodHandler struct {
	paymentMethodService portssvc.PaymentMethodSvcFacade
	expenseService       portssvc.ExpenseSvcFacade
}

func newPaymentMethodHandler(pms portssvc.PaymentMethodSvcFacade, es portssvc.ExpenseSvcFacade) *paymentMethodHandler {
	return &paymentMethodHandler{
		paymentMethodService: pms,
		expenseService:       es,
	}
}

func registerPaymentMethodRoutes(rg *gin.RouterGroup, pms portssvc.PaymentMethodSvcFacade, es portssvc.ExpenseSvcFacade) {
	h := newPaymentMethodHandler(pms, es)

	paymentMethods := rg.Group("/payment-methods")
	{
		paymentMethods.POST("", h.createPaymentMethod)
		paymentMethods.GET("", h.listPaymentMethods)
		paymentMethods.GET("/:paymentMethodID", h.getPaymentMethod)
		paymentMethods.PUT("/:paymentMethodID", h.updatePaymentMethod)
		paymentMethods.DELETE("/:paymentMethodID", h.deletePaymentMethod)
		paymentMethods.GET("/:paymentMethodID/expenses", h.listExpenses)
	}
}

// createPaymentMethod godoc
// @Summary Create a payment method
// @Tags payment-methods
// @Accept json
// @Produce json
// @Param paymentMethod body dto.CreatePaymentMethodRequest true "Payment method info"
// @Success 201 {object} dto.PaymentMethodResponse
// @Failure 400 {object} ErrorResponse
// @Failure 402 {object} ErrorResponse "Plan limit reached"
// @Security BearerAuth
// @Router /payment-methods [post]
func (h *paymentMethodHandler) createPaymentMethod(c *gin.Context) {
	callerID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.CreatePaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	pm, err := h.paymentMethodService.CreatePaymentMethod(c.Request.Context(), req, callerID)
	if err != nil {
		respondError(c, err, "Failed to create payment method")
		return
	}
	c.JSON(http.StatusCreated, dto.ToPaymentMethodResponse(pm))
}

// listPaymentMethods godoc
// @Summary List the caller's payment methods
// @Tags payment-methods
// @Produce json
// @Success 200 {array} dto.PaymentMethodResponse
// @Security BearerAuth
// @Router /payment-methods [get]
func (h *paymentMethodHandler) listPaymentMethods(c *gin.Context) {
	callerID, ok := mustUserID(c)
	if !ok {
		return
	}

	pms, err := h.paymentMethodService.ListPaymentMethods(c.Request.Context(), callerID)
	if err != nil {
		respondError(c, err, "Failed to list payment methods")
		return
	}
	c.JSON(http.StatusOK, dto.ToListPaymentMethodResponse(pms))
}

// getPaymentMethod godoc
// @Summary Get a payment method
// @Description Another user's payment method reads as not found.
// @Tags payment-methods
// @Produce json
// @Param paymentMethodID path string true "Payment method ID"
// @Success 200 {object} dto.PaymentMethodResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /payment-methods/{paymentMethodID} [get]
func (h *paymentMethodHandler) getPaymentMethod(c *gin.Context) {
	callerID, ok := mustUserID(c)
	if !ok {
		return
	}

	pm, err := h.paymentMethodService.GetPaymentMethod(c.Request.Context(), c.Param("paymentMethodID"), callerID)
	if err != nil {
		respondError(c, err, "Failed to get payment method")
		return
	}
	c.JSON(http.StatusOK, dto.ToPaymentMethodResponse(pm))
}

// updatePaymentMethod godoc
// @Summary Update a payment method
// @Description The currency cannot be changed after creation.
// @Tags payment-methods
// @Accept json
// @Produce json
// @Param paymentMethodID path string true "Payment method ID"
// @Param paymentMethod body dto.UpdatePaymentMethodRequest true "Fields to update"
// @Success 200 {object} dto.PaymentMethodResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /payment-methods/{paymentMethodID} [put]
func (h *paymentMethodHandler) updatePaymentMethod(c *gin.Context) {
	callerID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.UpdatePaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	pm, err := h.paymentMethodService.UpdatePaymentMethod(c.Request.Context(), c.Param("paymentMethodID"), req, callerID)
	if err != nil {
		respondError(c, err, "Failed to update payment method")
		return
	}
	c.JSON(http.StatusOK, dto.ToPaymentMethodResponse(pm))
}

// deletePaymentMethod godoc
// @Summary Delete a payment method
// @Description Soft delete. Expenses recorded against it keep their reference.
// @Tags payment-methods
// @Param paymentMethodID path string true "Payment method ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /payment-methods/{paymentMethodID} [delete]
func (h *paymentMethodHandler) deletePaymentMethod(c *gin.Context) {
	callerID, ok := mustUserID(c)
	if !ok {
		return
	}

	if err := h.paymentMethodService.DeletePaymentMethod(c.Request.Context(), c.Param("paymentMethodID"), callerID); err != nil {
		respondError(c, err, "Failed to delete payment method")
		return
	}
	c.Status(http.StatusNoContent)
}

// listExpenses godoc
// @Summary List expenses paid with a payment method
// @Description Spans all the caller's projects.
// @Tags payment-methods
// @Produce json
// @Param paymentMethodID path string true "Payment method ID"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(10)
// @Success 200 {object} dto.PageResponse[dto.ExpenseResponse]
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /payment-methods/{paymentMethodID}/expenses [get]
func (h *paymentMethodHandler) listExpenses(c *gin.Context) {
	callerID, ok := mustUserID(c)
	if !ok {
		return
	}

	var params dto.PageParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	expenses, total, err := h.expenseService.ListExpensesByPaymentMethod(c.Request.Context(), c.Param("paymentMethodID"), params.Page, params.Limit(), callerID)
	if err != nil {
		respondError(c, err, "Failed to list expenses")
		return
	}
	c.JSON(http.StatusOK, dto.NewPageResponse(dto.ToListExpenseResponse(expenses), params.Page, params.Limit(), total))
}
