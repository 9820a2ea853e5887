package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/uniformes-app/backoffice/internal/core/ports/services"
	"github.com/uniformes-app/backoffice/internal/dto"
)

// expenseHandler handles HTTP requests for the expense lifecycle.
type expenseHandler struct {
	expenseService portssvc.ExpenseSvcFacade
}

func newExpenseHandler(es portssvc.ExpenseSvcFacade) *expenseHandler {
	return &expenseHandler{expenseService: es}
}

// registerExpenseRoutes registers expense routes on a router group. The group
// may be the global ledger or nested under a school.
func registerExpenseRoutes(rg *gin.RouterGroup, expenseService portssvc.ExpenseSvcFacade) {
	h := newExpenseHandler(expenseService)

	expenses := rg.Group("/expenses")
	{
		expenses.POST("", h.createExpense)
		expenses.GET("", h.listExpenses)
		expenses.GET("/:expenseID", h.getExpense)
		expenses.GET("/:expenseID/adjustments", h.listAdjustments)
		expenses.POST("/:expenseID/payments", h.payExpense)
		expenses.POST("/:expenseID/adjustments", h.adjustExpense)
		expenses.POST("/:expenseID/revert", h.revertExpense)
		expenses.POST("/:expenseID/refund", h.partialRefund)
	}
}

// createExpense godoc
// @Summary Create an expense
// @Description Records a new pending expense with nothing paid yet.
// @Tags expenses
// @Accept json
// @Produce json
// @Param expense body dto.CreateExpenseRequest true "Expense details"
// @Success 201 {object} dto.ExpenseResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /expenses [post]
func (h *expenseHandler) createExpense(c *gin.Context) {
	var req dto.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	expense, err := h.expenseService.CreateExpense(c.Request.Context(), scopeFromRequest(c), req, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToExpenseResponse(expense))
}

// listExpenses godoc
// @Summary List expenses for a ledger scope
// @Description Returns expenses newest first with token pagination.
// @Tags expenses
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Pagination token from the previous page"
// @Success 200 {object} dto.ListExpensesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /expenses [get]
func (h *expenseHandler) listExpenses(c *gin.Context) {
	var params dto.ListExpensesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.expenseService.ListExpenses(c.Request.Context(), scopeFromRequest(c), params)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getExpense godoc
// @Summary Get an expense by ID
// @Tags expenses
// @Produce json
// @Param expenseID path string true "Expense ID"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /expenses/{expenseID} [get]
func (h *expenseHandler) getExpense(c *gin.Context) {
	expense, err := h.expenseService.GetExpenseByID(c.Request.Context(), c.Param("expenseID"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}

// listAdjustments godoc
// @Summary List an expense's adjustment history
// @Description Returns the append-only adjustment rows, oldest first.
// @Tags expenses
// @Produce json
// @Param expenseID path string true "Expense ID"
// @Success 200 {array} dto.ExpenseAdjustmentResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /expenses/{expenseID}/adjustments [get]
func (h *expenseHandler) listAdjustments(c *gin.Context) {
	adjustments, err := h.expenseService.ListAdjustments(c.Request.Context(), c.Param("expenseID"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	responses := make([]dto.ExpenseAdjustmentResponse, len(adjustments))
	for i := range adjustments {
		responses[i] = dto.ToExpenseAdjustmentResponse(adjustments[i])
	}
	c.JSON(http.StatusOK, responses)
}

// payExpense godoc
// @Summary Pay an expense
// @Description Records a (possibly partial) payment, debiting the account the payment method maps to.
// @Tags expenses
// @Accept json
// @Produce json
// @Param expenseID path string true "Expense ID"
// @Param payment body dto.PayExpenseRequest true "Payment details"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Payment exceeds the amount owed"
// @Security BearerAuth
// @Router /expenses/{expenseID}/payments [post]
func (h *expenseHandler) payExpense(c *gin.Context) {
	var req dto.PayExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	expense, err := h.expenseService.PayExpense(c.Request.Context(), c.Param("expenseID"), req, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}

// adjustExpense godoc
// @Summary Adjust an expense
// @Description Applies a post-hoc correction of amount and/or payment account, recording an append-only adjustment.
// @Tags expenses
// @Accept json
// @Produce json
// @Param expenseID path string true "Expense ID"
// @Param adjustment body dto.AdjustExpenseRequest true "Correction details"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /expenses/{expenseID}/adjustments [post]
func (h *expenseHandler) adjustExpense(c *gin.Context) {
	var req dto.AdjustExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	expense, err := h.expenseService.AdjustExpense(c.Request.Context(), c.Param("expenseID"), req, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}

// revertExpense godoc
// @Summary Revert an expense's payments
// @Description Reverses everything paid on the expense, crediting the money back and returning it to pending.
// @Tags expenses
// @Accept json
// @Produce json
// @Param expenseID path string true "Expense ID"
// @Param revert body dto.RevertExpenseRequest false "Optional description"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Nothing has been paid"
// @Security BearerAuth
// @Router /expenses/{expenseID}/revert [post]
func (h *expenseHandler) revertExpense(c *gin.Context) {
	var req dto.RevertExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	expense, err := h.expenseService.RevertExpense(c.Request.Context(), c.Param("expenseID"), req.Description, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}

// partialRefund godoc
// @Summary Refund part of what was paid
// @Description Credits the refund back to the account the expense was paid from.
// @Tags expenses
// @Accept json
// @Produce json
// @Param expenseID path string true "Expense ID"
// @Param refund body dto.PartialRefundRequest true "Refund details"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 400 {object} ErrorResponse "Refund exceeds the amount paid"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /expenses/{expenseID}/refund [post]
func (h *expenseHandler) partialRefund(c *gin.Context) {
	var req dto.PartialRefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	expense, err := h.expenseService.PartialRefund(c.Request.Context(), c.Param("expenseID"), req.RefundAmount, req.Description, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}
