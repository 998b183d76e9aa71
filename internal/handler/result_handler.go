package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campuskit/academics-api/internal/service"
	appErrors "github.com/campuskit/academics-api/pkg/errors"
	"github.com/campuskit/academics-api/pkg/response"
)

// ResultHandler exposes mark entry and result computation endpoints.
type ResultHandler struct {
	results    *service.ResultService
	faculties  *service.FacultyService
	students   *service.StudentService
	dashboards *service.DashboardService
}

// NewResultHandler constructs a result handler.
func NewResultHandler(results *service.ResultService, faculties *service.FacultyService, students *service.StudentService, dashboards *service.DashboardService) *ResultHandler {
	return &ResultHandler{results: results, faculties: faculties, students: students, dashboards: dashboards}
}

// EnterMarks godoc
// @Summary Enter component scores for a class
// @Description The acting faculty is taken from the token and must be assigned to teach the subject for the class. Re-entry overwrites.
// @Tags Marks
// @Accept json
// @Produce json
// @Param payload body service.EnterMarksRequest true "Marks payload"
// @Success 204
// @Security BearerAuth
// @Router /marks [post]
func (h *ResultHandler) EnterMarks(c *gin.Context) {
	faculty, err := currentFaculty(c, h.faculties)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.EnterMarksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	req.FacultyID = faculty.ID
	if err := h.results.EnterMarks(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	for _, entry := range req.Entries {
		h.dashboards.InvalidateStudent(c.Request.Context(), entry.StudentID)
	}
	response.NoContent(c)
}

// StudentResults godoc
// @Summary Computed results for a student
// @Tags Marks
// @Produce json
// @Param id path string true "Student ID"
// @Param semester query string false "Semester label, e.g. 2-1"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /students/{id}/results [get]
func (h *ResultHandler) StudentResults(c *gin.Context) {
	studentID, err := studentIDForRead(c, h.students)
	if err != nil {
		response.Error(c, err)
		return
	}
	results, err := h.results.StudentResults(c.Request.Context(), studentID, c.Query("semester"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, results, nil)
}

// ClassResults godoc
// @Summary Computed results of one subject for a whole class
// @Tags Marks
// @Produce json
// @Param id path string true "Class ID"
// @Param subject_id query string true "Subject ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /classes/{id}/results [get]
func (h *ResultHandler) ClassResults(c *gin.Context) {
	subjectID := c.Query("subject_id")
	if subjectID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "subject_id query parameter is required"))
		return
	}
	results, err := h.results.ClassResults(c.Request.Context(), c.Param("id"), subjectID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, results, nil)
}

// RecomputeGPA godoc
// @Summary Recompute and persist a student's SGPA and CGPA
// @Tags Marks
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /students/{id}/gpa [post]
func (h *ResultHandler) RecomputeGPA(c *gin.Context) {
	student, err := h.results.RecomputeGPA(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	h.dashboards.InvalidateStudent(c.Request.Context(), student.ID)
	response.JSON(c, http.StatusOK, student, nil)
}
