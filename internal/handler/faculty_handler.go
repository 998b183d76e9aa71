package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campuskit/academics-api/internal/service"
	appErrors "github.com/campuskit/academics-api/pkg/errors"
	"github.com/campuskit/academics-api/pkg/response"
)

// FacultyHandler exposes faculty onboarding and lookup endpoints.
type FacultyHandler struct {
	faculties *service.FacultyService
	cascades  *service.CascadeService
}

// NewFacultyHandler constructs a faculty handler.
func NewFacultyHandler(faculties *service.FacultyService, cascades *service.CascadeService) *FacultyHandler {
	return &FacultyHandler{faculties: faculties, cascades: cascades}
}

// Create godoc
// @Summary Onboard a faculty member
// @Description Creates the faculty together with a login account. Username and initial password are the employee number.
// @Tags Faculties
// @Accept json
// @Produce json
// @Param payload body service.CreateFacultyRequest true "Faculty payload"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /faculties [post]
func (h *FacultyHandler) Create(c *gin.Context) {
	var req service.CreateFacultyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	faculty, err := h.faculties.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, faculty)
}

// List godoc
// @Summary List faculty members
// @Tags Faculties
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /faculties [get]
func (h *FacultyHandler) List(c *gin.Context) {
	faculties, err := h.faculties.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, faculties, nil)
}

// Get godoc
// @Summary Get faculty member
// @Tags Faculties
// @Produce json
// @Param id path string true "Faculty ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /faculties/{id} [get]
func (h *FacultyHandler) Get(c *gin.Context) {
	faculty, err := h.faculties.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, faculty, nil)
}

// Deactivate godoc
// @Summary Deactivate a faculty's login
// @Tags Faculties
// @Produce json
// @Param id path string true "Faculty ID"
// @Success 204
// @Security BearerAuth
// @Router /faculties/{id}/deactivate [post]
func (h *FacultyHandler) Deactivate(c *gin.Context) {
	if err := h.faculties.Deactivate(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Delete godoc
// @Summary Delete faculty member
// @Description Without force, responds with confirmation_required when the faculty has recorded attendance.
// @Tags Faculties
// @Produce json
// @Param id path string true "Faculty ID"
// @Param force query bool false "Delete despite recorded attendance"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /faculties/{id} [delete]
func (h *FacultyHandler) Delete(c *gin.Context) {
	force, _ := strconv.ParseBool(c.DefaultQuery("force", "false"))
	outcome, err := h.cascades.DeleteFaculty(c.Request.Context(), c.Param("id"), force)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, outcome, nil)
}
