package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campuskit/academics-api/internal/service"
	appErrors "github.com/campuskit/academics-api/pkg/errors"
	"github.com/campuskit/academics-api/pkg/response"
)

// TimetableHandler exposes timetable endpoints.
type TimetableHandler struct {
	timetable *service.TimetableService
	faculties *service.FacultyService
}

// NewTimetableHandler constructs a timetable handler.
func NewTimetableHandler(timetable *service.TimetableService, faculties *service.FacultyService) *TimetableHandler {
	return &TimetableHandler{timetable: timetable, faculties: faculties}
}

// SetSlot godoc
// @Summary Place a subject into a weekly slot
// @Description An occupied slot is silently replaced. The acting faculty must teach the subject for the class.
// @Tags Timetable
// @Accept json
// @Produce json
// @Param payload body service.SetSlotRequest true "Slot payload"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /timetable/slots [put]
func (h *TimetableHandler) SetSlot(c *gin.Context) {
	faculty, err := currentFaculty(c, h.faculties)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.SetSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	req.FacultyID = faculty.ID
	slot, err := h.timetable.SetSlot(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, slot, nil)
}

// ClearSlot godoc
// @Summary Vacate a weekly slot
// @Tags Timetable
// @Accept json
// @Produce json
// @Param payload body service.ClearSlotRequest true "Slot key"
// @Success 204
// @Security BearerAuth
// @Router /timetable/slots [delete]
func (h *TimetableHandler) ClearSlot(c *gin.Context) {
	faculty, err := currentFaculty(c, h.faculties)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.ClearSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	req.FacultyID = faculty.ID
	if err := h.timetable.ClearSlot(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ClassWeek godoc
// @Summary Weekly timetable for a class
// @Tags Timetable
// @Produce json
// @Param id path string true "Class ID"
// @Param semester query string true "Semester label, e.g. 2-1"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /classes/{id}/timetable [get]
func (h *TimetableHandler) ClassWeek(c *gin.Context) {
	semester := c.Query("semester")
	if semester == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "semester query parameter is required"))
		return
	}
	entries, err := h.timetable.ClassWeek(c.Request.Context(), c.Param("id"), semester)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, nil)
}

// MyWeek godoc
// @Summary Weekly schedule of the calling faculty
// @Tags Timetable
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /timetable/mine [get]
func (h *TimetableHandler) MyWeek(c *gin.Context) {
	faculty, err := currentFaculty(c, h.faculties)
	if err != nil {
		response.Error(c, err)
		return
	}
	entries, err := h.timetable.FacultyWeek(c.Request.Context(), faculty.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, nil)
}
