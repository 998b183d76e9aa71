package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campuskit/academics-api/internal/service"
	appErrors "github.com/campuskit/academics-api/pkg/errors"
	"github.com/campuskit/academics-api/pkg/response"
)

// AssignmentHandler exposes class-teacher and faculty-subject assignment
// endpoints.
type AssignmentHandler struct {
	assignments *service.AssignmentService
}

// NewAssignmentHandler constructs an assignment handler.
func NewAssignmentHandler(assignments *service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignments: assignments}
}

// AssignClassTeacher godoc
// @Summary Assign a class teacher
// @Description Moving a faculty to a new post vacates their previous one. An occupied post is a conflict.
// @Tags Assignments
// @Accept json
// @Produce json
// @Param payload body service.AssignClassTeacherRequest true "Assignment payload"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /assignments/class-teachers [post]
func (h *AssignmentHandler) AssignClassTeacher(c *gin.Context) {
	var req service.AssignClassTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	assignment, err := h.assignments.AssignClassTeacher(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, assignment)
}

// ListClassTeachers godoc
// @Summary List a batch's class-teacher posts
// @Tags Assignments
// @Produce json
// @Param id path string true "Batch ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /batches/{id}/class-teachers [get]
func (h *AssignmentHandler) ListClassTeachers(c *gin.Context) {
	details, err := h.assignments.ListClassTeachers(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, details, nil)
}

// AssignFacultySubject godoc
// @Summary Assign a faculty to teach a subject for a class
// @Tags Assignments
// @Accept json
// @Produce json
// @Param payload body service.AssignFacultySubjectRequest true "Assignment payload"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /assignments/faculty-subjects [post]
func (h *AssignmentHandler) AssignFacultySubject(c *gin.Context) {
	var req service.AssignFacultySubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	assignment, err := h.assignments.AssignFacultySubject(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, assignment)
}

// UpdateFacultySubject godoc
// @Summary Update a teaching assignment
// @Tags Assignments
// @Accept json
// @Produce json
// @Param id path string true "Assignment ID"
// @Param payload body service.AssignFacultySubjectRequest true "Assignment payload"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /assignments/faculty-subjects/{id} [put]
func (h *AssignmentHandler) UpdateFacultySubject(c *gin.Context) {
	var req service.AssignFacultySubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	assignment, err := h.assignments.UpdateFacultySubject(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, assignment, nil)
}

// ListFacultySubjects godoc
// @Summary List a faculty's teaching assignments
// @Tags Assignments
// @Produce json
// @Param id path string true "Faculty ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /faculties/{id}/subjects [get]
func (h *AssignmentHandler) ListFacultySubjects(c *gin.Context) {
	details, err := h.assignments.ListFacultySubjects(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, details, nil)
}

// ListClassSubjects godoc
// @Summary List a class's teaching assignments
// @Tags Assignments
// @Produce json
// @Param id path string true "Class ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /classes/{id}/subjects [get]
func (h *AssignmentHandler) ListClassSubjects(c *gin.Context) {
	details, err := h.assignments.ListClassSubjects(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, details, nil)
}
