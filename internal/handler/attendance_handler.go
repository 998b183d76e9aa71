package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campuskit/academics-api/internal/service"
	appErrors "github.com/campuskit/academics-api/pkg/errors"
	"github.com/campuskit/academics-api/pkg/response"
)

// AttendanceHandler exposes attendance recording and aggregation endpoints.
type AttendanceHandler struct {
	attendance *service.AttendanceService
	faculties  *service.FacultyService
	students   *service.StudentService
	dashboards *service.DashboardService
}

// NewAttendanceHandler constructs an attendance handler.
func NewAttendanceHandler(attendance *service.AttendanceService, faculties *service.FacultyService, students *service.StudentService, dashboards *service.DashboardService) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendance, faculties: faculties, students: students, dashboards: dashboards}
}

// Mark godoc
// @Summary Record one period's attendance for a class
// @Description The acting faculty is taken from the token and must be assigned to teach the subject for the class.
// @Tags Attendance
// @Accept json
// @Produce json
// @Param payload body service.MarkAttendanceRequest true "Attendance payload"
// @Success 204
// @Security BearerAuth
// @Router /attendance [post]
func (h *AttendanceHandler) Mark(c *gin.Context) {
	faculty, err := currentFaculty(c, h.faculties)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.MarkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	req.FacultyID = faculty.ID
	if err := h.attendance.Mark(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	for _, entry := range req.Entries {
		h.dashboards.InvalidateStudent(c.Request.Context(), entry.StudentID)
	}
	response.NoContent(c)
}

// SubjectSummaries godoc
// @Summary Per-subject attendance percentages for a student
// @Tags Attendance
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /students/{id}/attendance/subjects [get]
func (h *AttendanceHandler) SubjectSummaries(c *gin.Context) {
	studentID, err := studentIDForRead(c, h.students)
	if err != nil {
		response.Error(c, err)
		return
	}
	summaries, err := h.attendance.SubjectSummaries(c.Request.Context(), studentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summaries, nil)
}

// MonthlySummaries godoc
// @Summary Monthly attendance percentages for a student
// @Tags Attendance
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /students/{id}/attendance/monthly [get]
func (h *AttendanceHandler) MonthlySummaries(c *gin.Context) {
	studentID, err := studentIDForRead(c, h.students)
	if err != nil {
		response.Error(c, err)
		return
	}
	summaries, err := h.attendance.MonthlySummaries(c.Request.Context(), studentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summaries, nil)
}

// SemesterSummaries godoc
// @Summary Per-semester attendance percentages for a student
// @Tags Attendance
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /students/{id}/attendance/semesters [get]
func (h *AttendanceHandler) SemesterSummaries(c *gin.Context) {
	studentID, err := studentIDForRead(c, h.students)
	if err != nil {
		response.Error(c, err)
		return
	}
	summaries, err := h.attendance.SemesterSummaries(c.Request.Context(), studentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summaries, nil)
}

// History godoc
// @Summary Day-by-period attendance history for a student
// @Tags Attendance
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /students/{id}/attendance/history [get]
func (h *AttendanceHandler) History(c *gin.Context) {
	studentID, err := studentIDForRead(c, h.students)
	if err != nil {
		response.Error(c, err)
		return
	}
	history, err := h.attendance.History(c.Request.Context(), studentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, history, nil)
}
