package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/uniformes-app/backoffice/internal/core/domain"
	portssvc "github.com/uniformes-app/backoffice/internal/core/ports/services"
	"github.com/uniformes-app/backoffice/internal/dto"
)

// orderHandler handles HTTP requests for customer orders.
type orderHandler struct {
	orderService portssvc.OrderSvcFacade
}

func newOrderHandler(os portssvc.OrderSvcFacade) *orderHandler {
	return &orderHandler{orderService: os}
}

// registerOrderRoutes registers order routes under /schools/:schoolID.
func registerOrderRoutes(rg *gin.RouterGroup, orderService portssvc.OrderSvcFacade) {
	h := newOrderHandler(orderService)

	orders := rg.Group("/orders")
	{
		orders.POST("", h.createOrder)
		orders.GET("", h.listOrders)
		orders.GET("/:orderID", h.getOrder)
		orders.POST("/:orderID/ready", h.markReady)
		orders.POST("/:orderID/deliver", h.deliver)
		orders.POST("/:orderID/cancel", h.cancel)
		orders.POST("/:orderID/payments", h.recordPayment)
	}
}

// createOrder godoc
// @Summary Create an order
// @Description Creates an order, reserving stock for every line that is not made to order. Reservation is all or nothing.
// @Tags orders
// @Accept json
// @Produce json
// @Param schoolID path string true "School ID"
// @Param order body dto.CreateOrderRequest true "Order details"
// @Success 201 {object} dto.OrderResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "School not found"
// @Failure 409 {object} ErrorResponse "Insufficient stock"
// @Security BearerAuth
// @Router /schools/{schoolID}/orders [post]
func (h *orderHandler) createOrder(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), c.Param("schoolID"), req, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToOrderResponse(order))
}

// listOrders godoc
// @Summary List a school's orders
// @Description Returns orders newest first with token pagination.
// @Tags orders
// @Produce json
// @Param schoolID path string true "School ID"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Pagination token from the previous page"
// @Success 200 {object} dto.ListOrdersResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /schools/{schoolID}/orders [get]
func (h *orderHandler) listOrders(c *gin.Context) {
	var params dto.ListOrdersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.orderService.ListOrders(c.Request.Context(), c.Param("schoolID"), params)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getOrder godoc
// @Summary Get an order with its lines
// @Tags orders
// @Produce json
// @Param schoolID path string true "School ID"
// @Param orderID path string true "Order ID"
// @Success 200 {object} dto.OrderResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /schools/{schoolID}/orders/{orderID} [get]
func (h *orderHandler) getOrder(c *gin.Context) {
	order, err := h.orderService.GetOrderByID(c.Request.Context(), c.Param("orderID"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}

// markReady godoc
// @Summary Mark an order ready for pickup
// @Tags orders
// @Produce json
// @Param schoolID path string true "School ID"
// @Param orderID path string true "Order ID"
// @Success 200 {object} dto.OrderResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Order is not pending"
// @Security BearerAuth
// @Router /schools/{schoolID}/orders/{orderID}/ready [post]
func (h *orderHandler) markReady(c *gin.Context) {
	h.transition(c, h.orderService.MarkOrderReady)
}

// deliver godoc
// @Summary Deliver an order
// @Description Marks the order delivered, consuming every line's stock reservation.
// @Tags orders
// @Produce json
// @Param schoolID path string true "School ID"
// @Param orderID path string true "Order ID"
// @Success 200 {object} dto.OrderResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Order cannot be delivered from its current status"
// @Security BearerAuth
// @Router /schools/{schoolID}/orders/{orderID}/deliver [post]
func (h *orderHandler) deliver(c *gin.Context) {
	h.transition(c, h.orderService.DeliverOrder)
}

// cancel godoc
// @Summary Cancel an order
// @Description Cancels the order and releases exactly what each line had reserved.
// @Tags orders
// @Produce json
// @Param schoolID path string true "School ID"
// @Param orderID path string true "Order ID"
// @Success 200 {object} dto.OrderResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Order already delivered or cancelled"
// @Security BearerAuth
// @Router /schools/{schoolID}/orders/{orderID}/cancel [post]
func (h *orderHandler) cancel(c *gin.Context) {
	h.transition(c, h.orderService.CancelOrder)
}

func (h *orderHandler) transition(c *gin.Context, op func(ctx context.Context, orderID string, userID string) (*domain.Order, error)) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	order, err := op(c.Request.Context(), c.Param("orderID"), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}

// recordPayment godoc
// @Summary Record a payment against an order
// @Description Books the payment as income on the account the payment method maps to and raises the order's paid total.
// @Tags orders
// @Accept json
// @Produce json
// @Param schoolID path string true "School ID"
// @Param orderID path string true "Order ID"
// @Param payment body dto.RecordPaymentRequest true "Payment details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Payment exceeds the order total or the order is cancelled"
// @Security BearerAuth
// @Router /schools/{schoolID}/orders/{orderID}/payments [post]
func (h *orderHandler) recordPayment(c *gin.Context) {
	var req dto.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	txn, err := h.orderService.RecordOrderPayment(c.Request.Context(), c.Param("orderID"), req, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}
