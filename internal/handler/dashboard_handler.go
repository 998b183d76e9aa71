package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campuskit/academics-api/internal/service"
	"github.com/campuskit/academics-api/pkg/response"
)

// DashboardHandler exposes composite dashboard endpoints.
type DashboardHandler struct {
	dashboards *service.DashboardService
	students   *service.StudentService
}

// NewDashboardHandler constructs a dashboard handler.
func NewDashboardHandler(dashboards *service.DashboardService, students *service.StudentService) *DashboardHandler {
	return &DashboardHandler{dashboards: dashboards, students: students}
}

// Student godoc
// @Summary Composite dashboard for a student
// @Description Students always get their own dashboard regardless of the id parameter.
// @Tags Dashboard
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /dashboard/students/{id} [get]
func (h *DashboardHandler) Student(c *gin.Context) {
	studentID, err := studentIDForRead(c, h.students)
	if err != nil {
		response.Error(c, err)
		return
	}
	dashboard, err := h.dashboards.StudentDashboard(c.Request.Context(), studentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dashboard, nil)
}
