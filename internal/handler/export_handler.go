package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campuskit/academics-api/internal/service"
	appErrors "github.com/campuskit/academics-api/pkg/errors"
	"github.com/campuskit/academics-api/pkg/response"
)

// ExportHandler exposes report rendering endpoints.
type ExportHandler struct {
	exports *service.ExportService
}

// NewExportHandler constructs an export handler.
func NewExportHandler(exports *service.ExportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// ReportCard godoc
// @Summary Render a student's semester report card as PDF
// @Tags Exports
// @Produce application/pdf
// @Param id path string true "Student ID"
// @Param semester query string true "Semester label, e.g. 2-1"
// @Success 200 {file} binary
// @Security BearerAuth
// @Router /exports/students/{id}/report-card [get]
func (h *ExportHandler) ReportCard(c *gin.Context) {
	semester := c.Query("semester")
	if semester == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "semester query parameter is required"))
		return
	}
	payload, err := h.exports.ReportCardPDF(c.Request.Context(), c.Param("id"), semester)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=report-card-%s.pdf", semester))
	c.Data(http.StatusOK, "application/pdf", payload)
}

// ClassResultSheet godoc
// @Summary Render one subject's class result sheet as CSV
// @Tags Exports
// @Produce text/csv
// @Param id path string true "Class ID"
// @Param subject_id query string true "Subject ID"
// @Success 200 {file} binary
// @Security BearerAuth
// @Router /exports/classes/{id}/results [get]
func (h *ExportHandler) ClassResultSheet(c *gin.Context) {
	subjectID := c.Query("subject_id")
	if subjectID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "subject_id query parameter is required"))
		return
	}
	payload, err := h.exports.ClassResultCSV(c.Request.Context(), c.Param("id"), subjectID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=result-sheet.csv")
	c.Data(http.StatusOK, "text/csv", payload)
}
