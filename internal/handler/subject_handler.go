package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campuskit/academics-api/internal/service"
	appErrors "github.com/campuskit/academics-api/pkg/errors"
	"github.com/campuskit/academics-api/pkg/response"
)

// SubjectHandler exposes subject endpoints.
type SubjectHandler struct {
	academics *service.AcademicService
	cascades  *service.CascadeService
}

// NewSubjectHandler constructs a subject handler.
func NewSubjectHandler(academics *service.AcademicService, cascades *service.CascadeService) *SubjectHandler {
	return &SubjectHandler{academics: academics, cascades: cascades}
}

// Create godoc
// @Summary Create subject
// @Tags Subjects
// @Accept json
// @Produce json
// @Param payload body service.CreateSubjectRequest true "Subject payload"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /subjects [post]
func (h *SubjectHandler) Create(c *gin.Context) {
	var req service.CreateSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	subject, err := h.academics.CreateSubject(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, subject)
}

// ListByBatch godoc
// @Summary List a batch's subjects
// @Tags Subjects
// @Produce json
// @Param id path string true "Batch ID"
// @Param semester query string false "Semester label, e.g. 2-1"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /batches/{id}/subjects [get]
func (h *SubjectHandler) ListByBatch(c *gin.Context) {
	subjects, err := h.academics.ListSubjects(c.Request.Context(), c.Param("id"), c.Query("semester"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, subjects, nil)
}

// Get godoc
// @Summary Get subject
// @Tags Subjects
// @Produce json
// @Param id path string true "Subject ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /subjects/{id} [get]
func (h *SubjectHandler) Get(c *gin.Context) {
	subject, err := h.academics.GetSubject(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, subject, nil)
}

// Delete godoc
// @Summary Delete subject
// @Description Without force, responds with confirmation_required when attendance or mark history exists.
// @Tags Subjects
// @Produce json
// @Param id path string true "Subject ID"
// @Param force query bool false "Destroy historical records too"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /subjects/{id} [delete]
func (h *SubjectHandler) Delete(c *gin.Context) {
	force, _ := strconv.ParseBool(c.DefaultQuery("force", "false"))
	outcome, err := h.cascades.DeleteSubject(c.Request.Context(), c.Param("id"), force)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, outcome, nil)
}
