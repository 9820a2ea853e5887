package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/uniformes-app/backoffice/internal/core/ports/services"
	"github.com/uniformes-app/backoffice/internal/dto"
)

// schoolHandler handles HTTP requests related to schools (tenants).
type schoolHandler struct {
	schoolService portssvc.SchoolSvcFacade
}

func newSchoolHandler(ss portssvc.SchoolSvcFacade) *schoolHandler {
	return &schoolHandler{schoolService: ss}
}

// registerSchoolRoutes registers CRUD routes for schools.
func registerSchoolRoutes(rg *gin.RouterGroup, schoolService portssvc.SchoolSvcFacade) {
	h := newSchoolHandler(schoolService)

	schools := rg.Group("/schools")
	{
		schools.POST("", h.createSchool)
		schools.GET("", h.listSchools)
		schools.GET("/:schoolID", h.getSchool)
		schools.PUT("/:schoolID", h.updateSchool)
		schools.DELETE("/:schoolID", h.deleteSchool)
	}
}

// createSchool godoc
// @Summary Create a school
// @Description Registers a new school the business sells uniforms for.
// @Tags schools
// @Accept json
// @Produce json
// @Param school body dto.CreateSchoolRequest true "School details"
// @Success 201 {object} dto.SchoolResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /schools [post]
func (h *schoolHandler) createSchool(c *gin.Context) {
	var req dto.CreateSchoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	school, err := h.schoolService.CreateSchool(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToSchoolResponse(school))
}

// listSchools godoc
// @Summary List schools
// @Tags schools
// @Produce json
// @Param limit query int false "Limit number of results" default(20)
// @Param offset query int false "Offset for pagination" default(0)
// @Success 200 {array} dto.SchoolResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /schools [get]
func (h *schoolHandler) listSchools(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	schools, err := h.schoolService.ListSchools(c.Request.Context(), limit, offset)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	responses := make([]dto.SchoolResponse, len(schools))
	for i := range schools {
		responses[i] = dto.ToSchoolResponse(&schools[i])
	}
	c.JSON(http.StatusOK, responses)
}

// getSchool godoc
// @Summary Get a school by ID
// @Tags schools
// @Produce json
// @Param schoolID path string true "School ID"
// @Success 200 {object} dto.SchoolResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /schools/{schoolID} [get]
func (h *schoolHandler) getSchool(c *gin.Context) {
	school, err := h.schoolService.GetSchoolByID(c.Request.Context(), c.Param("schoolID"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSchoolResponse(school))
}

// updateSchool godoc
// @Summary Update a school
// @Tags schools
// @Accept json
// @Produce json
// @Param schoolID path string true "School ID"
// @Param school body dto.UpdateSchoolRequest true "Fields to update"
// @Success 200 {object} dto.SchoolResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /schools/{schoolID} [put]
func (h *schoolHandler) updateSchool(c *gin.Context) {
	var req dto.UpdateSchoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	school, err := h.schoolService.UpdateSchool(c.Request.Context(), c.Param("schoolID"), req, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSchoolResponse(school))
}

// deleteSchool godoc
// @Summary Deactivate a school
// @Description Marks a school inactive; its ledger history stays intact.
// @Tags schools
// @Produce json
// @Param schoolID path string true "School ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /schools/{schoolID} [delete]
func (h *schoolHandler) deleteSchool(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.schoolService.DeactivateSchool(c.Request.Context(), c.Param("schoolID"), userID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
