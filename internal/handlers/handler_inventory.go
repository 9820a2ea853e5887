package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/uniformes-app/backoffice/internal/core/ports/services"
	"github.com/uniformes-app/backoffice/internal/dto"
)

// inventoryHandler handles HTTP requests for per-school stock.
type inventoryHandler struct {
	inventoryService portssvc.InventorySvcFacade
}

func newInventoryHandler(is portssvc.InventorySvcFacade) *inventoryHandler {
	return &inventoryHandler{inventoryService: is}
}

// registerInventoryRoutes registers inventory routes. Inventory only exists
// per school, so the group is always nested under /schools/:schoolID.
func registerInventoryRoutes(rg *gin.RouterGroup, inventoryService portssvc.InventorySvcFacade) {
	h := newInventoryHandler(inventoryService)

	inventory := rg.Group("/inventory")
	{
		inventory.POST("", h.createInventory)
		inventory.GET("", h.listInventory)
		inventory.GET("/:productID", h.getInventory)
		inventory.GET("/:productID/availability", h.checkAvailability)
		inventory.POST("/:productID/adjust", h.adjustStock)
		inventory.POST("/:productID/reserve", h.reserve)
		inventory.POST("/:productID/release", h.release)
		inventory.POST("/:productID/fulfill", h.fulfill)
		inventory.PUT("/:productID/threshold", h.setLowStockThreshold)
	}
}

// createInventory godoc
// @Summary Register a product's stock row
// @Tags inventory
// @Accept json
// @Produce json
// @Param schoolID path string true "School ID"
// @Param inventory body dto.CreateInventoryRequest true "Stock details"
// @Success 201 {object} dto.InventoryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Product already registered"
// @Security BearerAuth
// @Router /schools/{schoolID}/inventory [post]
func (h *inventoryHandler) createInventory(c *gin.Context) {
	var req dto.CreateInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	inv, err := h.inventoryService.CreateInventory(c.Request.Context(), c.Param("schoolID"), req, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToInventoryResponse(inv))
}

// listInventory godoc
// @Summary List a school's stock
// @Tags inventory
// @Produce json
// @Param schoolID path string true "School ID"
// @Param limit query int false "Limit number of results" default(20)
// @Param offset query int false "Offset for pagination" default(0)
// @Success 200 {array} dto.InventoryResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /schools/{schoolID}/inventory [get]
func (h *inventoryHandler) listInventory(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	rows, err := h.inventoryService.ListInventory(c.Request.Context(), c.Param("schoolID"), limit, offset)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	responses := make([]dto.InventoryResponse, len(rows))
	for i := range rows {
		responses[i] = dto.ToInventoryResponse(&rows[i])
	}
	c.JSON(http.StatusOK, responses)
}

// getInventory godoc
// @Summary Get a product's stock row
// @Tags inventory
// @Produce json
// @Param schoolID path string true "School ID"
// @Param productID path string true "Product ID"
// @Success 200 {object} dto.InventoryResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /schools/{schoolID}/inventory/{productID} [get]
func (h *inventoryHandler) getInventory(c *gin.Context) {
	inv, err := h.inventoryService.GetInventory(c.Request.Context(), c.Param("schoolID"), c.Param("productID"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToInventoryResponse(inv))
}

// checkAvailability godoc
// @Summary Check whether a quantity can be reserved
// @Tags inventory
// @Produce json
// @Param schoolID path string true "School ID"
// @Param productID path string true "Product ID"
// @Param quantity query int true "Quantity wanted"
// @Success 200 {object} dto.AvailabilityResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /schools/{schoolID}/inventory/{productID}/availability [get]
func (h *inventoryHandler) checkAvailability(c *gin.Context) {
	quantity, err := strconv.ParseInt(c.Query("quantity"), 10, 64)
	if err != nil || quantity < 1 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "quantity must be a positive integer"})
		return
	}

	productID := c.Param("productID")
	available, err := h.inventoryService.CheckAvailability(c.Request.Context(), c.Param("schoolID"), productID, quantity)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AvailabilityResponse{
		ProductID: productID,
		Quantity:  quantity,
		Available: available,
	})
}

// adjustStock godoc
// @Summary Apply a signed correction to on-hand stock
// @Tags inventory
// @Accept json
// @Produce json
// @Param schoolID path string true "School ID"
// @Param productID path string true "Product ID"
// @Param adjustment body dto.AdjustStockRequest true "Signed delta"
// @Success 200 {object} dto.InventoryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Correction would drop on-hand below what is reserved"
// @Security BearerAuth
// @Router /schools/{schoolID}/inventory/{productID}/adjust [post]
func (h *inventoryHandler) adjustStock(c *gin.Context) {
	var req dto.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	inv, err := h.inventoryService.AdjustStock(c.Request.Context(), c.Param("schoolID"), c.Param("productID"), req.Delta, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToInventoryResponse(inv))
}

func (h *inventoryHandler) reserve(c *gin.Context) {
	h.stockOperation(c, h.inventoryService.Reserve)
}

func (h *inventoryHandler) release(c *gin.Context) {
	h.stockOperation(c, h.inventoryService.Release)
}

func (h *inventoryHandler) fulfill(c *gin.Context) {
	h.stockOperation(c, h.inventoryService.Fulfill)
}

// stockOperation runs one of the reserve/release/fulfill operations, which
// share their request and response shape.
func (h *inventoryHandler) stockOperation(c *gin.Context, op func(ctx context.Context, schoolID, productID string, quantity int64, userID string) error) {
	var req dto.ReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := op(c.Request.Context(), c.Param("schoolID"), c.Param("productID"), req.Quantity, userID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// setLowStockThreshold godoc
// @Summary Set the low-stock notification level
// @Tags inventory
// @Accept json
// @Produce json
// @Param schoolID path string true "School ID"
// @Param productID path string true "Product ID"
// @Param threshold body dto.LowStockThresholdRequest true "Threshold"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /schools/{schoolID}/inventory/{productID}/threshold [put]
func (h *inventoryHandler) setLowStockThreshold(c *gin.Context) {
	var req dto.LowStockThresholdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.inventoryService.SetLowStockThreshold(c.Request.Context(), c.Param("schoolID"), c.Param("productID"), req.Threshold, userID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
