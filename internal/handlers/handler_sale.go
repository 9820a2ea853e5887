package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/uniformes-app/backoffice/internal/core/domain"
	portssvc "github.com/uniformes-app/backoffice/internal/core/ports/services"
	"github.com/uniformes-app/backoffice/internal/dto"
)

// saleHandler handles HTTP requests for direct sales.
type saleHandler struct {
	saleService portssvc.SaleSvcFacade
}

func newSaleHandler(ss portssvc.SaleSvcFacade) *saleHandler {
	return &saleHandler{saleService: ss}
}

// registerSaleRoutes registers sale routes under /schools/:schoolID.
func registerSaleRoutes(rg *gin.RouterGroup, saleService portssvc.SaleSvcFacade) {
	h := newSaleHandler(saleService)

	sales := rg.Group("/sales")
	{
		sales.POST("", h.createSale)
		sales.GET("", h.listSales)
		sales.GET("/:saleID", h.getSale)
		sales.POST("/:saleID/complete", h.complete)
		sales.POST("/:saleID/cancel", h.cancel)
		sales.POST("/:saleID/payments", h.recordPayment)
	}
}

// createSale godoc
// @Summary Create a direct sale
// @Description Creates a sale, reserving stock for every line. Reservation is all or nothing.
// @Tags sales
// @Accept json
// @Produce json
// @Param schoolID path string true "School ID"
// @Param sale body dto.CreateSaleRequest true "Sale details"
// @Success 201 {object} dto.SaleResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "School not found"
// @Failure 409 {object} ErrorResponse "Insufficient stock"
// @Security BearerAuth
// @Router /schools/{schoolID}/sales [post]
func (h *saleHandler) createSale(c *gin.Context) {
	var req dto.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	sale, err := h.saleService.CreateSale(c.Request.Context(), c.Param("schoolID"), req, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToSaleResponse(sale))
}

// listSales godoc
// @Summary List a school's sales
// @Description Returns sales newest first with token pagination.
// @Tags sales
// @Produce json
// @Param schoolID path string true "School ID"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Pagination token from the previous page"
// @Success 200 {object} dto.ListSalesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /schools/{schoolID}/sales [get]
func (h *saleHandler) listSales(c *gin.Context) {
	var params dto.ListSalesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.saleService.ListSales(c.Request.Context(), c.Param("schoolID"), params)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getSale godoc
// @Summary Get a sale with its lines
// @Tags sales
// @Produce json
// @Param schoolID path string true "School ID"
// @Param saleID path string true "Sale ID"
// @Success 200 {object} dto.SaleResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /schools/{schoolID}/sales/{saleID} [get]
func (h *saleHandler) getSale(c *gin.Context) {
	sale, err := h.saleService.GetSaleByID(c.Request.Context(), c.Param("saleID"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSaleResponse(sale))
}

// complete godoc
// @Summary Complete a sale
// @Description Marks the sale completed, consuming every line's stock reservation.
// @Tags sales
// @Produce json
// @Param schoolID path string true "School ID"
// @Param saleID path string true "Sale ID"
// @Success 200 {object} dto.SaleResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Sale is not pending"
// @Security BearerAuth
// @Router /schools/{schoolID}/sales/{saleID}/complete [post]
func (h *saleHandler) complete(c *gin.Context) {
	h.transition(c, h.saleService.CompleteSale)
}

// cancel godoc
// @Summary Cancel a sale
// @Description Cancels the sale and releases exactly what each line had reserved.
// @Tags sales
// @Produce json
// @Param schoolID path string true "School ID"
// @Param saleID path string true "Sale ID"
// @Success 200 {object} dto.SaleResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Sale is not pending"
// @Security BearerAuth
// @Router /schools/{schoolID}/sales/{saleID}/cancel [post]
func (h *saleHandler) cancel(c *gin.Context) {
	h.transition(c, h.saleService.CancelSale)
}

func (h *saleHandler) transition(c *gin.Context, op func(ctx context.Context, saleID string, userID string) (*domain.Sale, error)) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	sale, err := op(c.Request.Context(), c.Param("saleID"), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSaleResponse(sale))
}

// recordPayment godoc
// @Summary Record a payment against a sale
// @Description Books the payment as income on the account the payment method maps to and raises the sale's paid total.
// @Tags sales
// @Accept json
// @Produce json
// @Param schoolID path string true "School ID"
// @Param saleID path string true "Sale ID"
// @Param payment body dto.RecordPaymentRequest true "Payment details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Payment exceeds the sale total or the sale is cancelled"
// @Security BearerAuth
// @Router /schools/{schoolID}/sales/{saleID}/payments [post]
func (h *saleHandler) recordPayment(c *gin.Context) {
	var req dto.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	txn, err := h.saleService.RecordSalePayment(c.Request.Context(), c.Param("saleID"), req, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}
