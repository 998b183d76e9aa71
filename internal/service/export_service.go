package service

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	appErrors "github.com/campuskit/academics-api/pkg/errors"
	"github.com/campuskit/academics-api/pkg/export"
)

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string, subtitles ...string) ([]byte, error)
}

// ExportService renders report cards and class result sheets.
type ExportService struct {
	results     *ResultService
	students    *StudentService
	academics   *AcademicService
	csv         csvRenderer
	pdf         pdfRenderer
	institution string
	logger      *zap.Logger
}

// NewExportService constructs the service.
func NewExportService(results *ResultService, students *StudentService, academics *AcademicService, csv csvRenderer, pdf pdfRenderer, institution string, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		results:     results,
		students:    students,
		academics:   academics,
		csv:         csv,
		pdf:         pdf,
		institution: institution,
		logger:      logger,
	}
}

// ReportCardPDF renders one student's semester report card.
func (s *ExportService) ReportCardPDF(ctx context.Context, studentID, semester string) ([]byte, error) {
	student, err := s.students.Get(ctx, studentID)
	if err != nil {
		return nil, err
	}
	results, err := s.results.StudentResults(ctx, student.ID, semester)
	if err != nil {
		return nil, err
	}

	headers := []string{"Code", "Subject", "Internal", "External", "Total", "Grade"}
	rows := make([]map[string]string, 0, len(results.Subjects))
	for _, subject := range results.Subjects {
		rows = append(rows, map[string]string{
			"Code":     subject.SubjectCode,
			"Subject":  subject.SubjectName,
			"Internal": strconv.Itoa(subject.Internal),
			"External": strconv.Itoa(subject.External),
			"Total":    strconv.Itoa(subject.Total),
			"Grade":    subject.Grade,
		})
	}

	payload, err := s.pdf.Render(export.Dataset{Headers: headers, Rows: rows},
		s.institution,
		fmt.Sprintf("Report Card - Semester %s", semester),
		fmt.Sprintf("%s (%s)", student.FullName, student.RegisterNo),
		fmt.Sprintf("SGPA: %.2f   CGPA: %.2f", results.SGPA, results.CGPA),
	)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render report card")
	}
	s.logger.Info("report card rendered", zap.String("student_id", student.ID), zap.String("semester", semester))
	return payload, nil
}

// ClassResultCSV renders one subject's result sheet for a class.
func (s *ExportService) ClassResultCSV(ctx context.Context, classID, subjectID string) ([]byte, error) {
	subject, err := s.academics.GetSubject(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	results, err := s.results.ClassResults(ctx, classID, subjectID)
	if err != nil {
		return nil, err
	}

	headers := []string{"Register No", "Internal", "External", "Total", "Grade"}
	rows := make([]map[string]string, 0, len(results))
	for _, result := range results {
		row := map[string]string{
			"Register No": result.RegisterNo,
			"Internal":    "",
			"External":    "",
			"Total":       "",
			"Grade":       "F",
		}
		for _, sr := range result.Subjects {
			if sr.SubjectID != subject.ID {
				continue
			}
			row["Internal"] = strconv.Itoa(sr.Internal)
			row["External"] = strconv.Itoa(sr.External)
			row["Total"] = strconv.Itoa(sr.Total)
			row["Grade"] = sr.Grade
		}
		rows = append(rows, row)
	}

	payload, err := s.csv.Render(export.Dataset{Headers: headers, Rows: rows})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render result sheet")
	}
	s.logger.Info("result sheet rendered", zap.String("class_id", classID), zap.String("subject_id", subject.ID))
	return payload, nil
}
