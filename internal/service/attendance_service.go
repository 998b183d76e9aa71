package service

import (
	"context"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campuskit/academics-api/internal/grading"
	"github.com/campuskit/academics-api/internal/models"
	appErrors "github.com/campuskit/academics-api/pkg/errors"
)

type attendanceRepo interface {
	BulkUpsert(ctx context.Context, records []models.AttendanceRecord) error
	ListByStudent(ctx context.Context, studentID string) ([]models.AttendanceRow, error)
}

type assignmentChecker interface {
	ExistsForFaculty(ctx context.Context, facultyID, subjectID, classID string) (bool, error)
}

// AttendanceEntry is one student's presence flag within a period marking.
type AttendanceEntry struct {
	StudentID string `json:"student_id" validate:"required"`
	Present   bool   `json:"present"`
}

// MarkAttendanceRequest records one period of one subject for a class.
type MarkAttendanceRequest struct {
	FacultyID string            `json:"faculty_id" validate:"required"`
	SubjectID string            `json:"subject_id" validate:"required"`
	ClassID   string            `json:"class_id" validate:"required"`
	Date      time.Time         `json:"date" validate:"required"`
	Period    int               `json:"period" validate:"required,min=1,max=7"`
	Entries   []AttendanceEntry `json:"entries" validate:"required,dive"`
}

// AttendanceService folds raw presence records into percentage figures at
// three granularities, all computed on demand from fresh rows.
type AttendanceService struct {
	attendance  attendanceRepo
	assignments assignmentChecker
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewAttendanceService constructs the service.
func NewAttendanceService(attendance attendanceRepo, assignments assignmentChecker, validate *validator.Validate, logger *zap.Logger) *AttendanceService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceService{attendance: attendance, assignments: assignments, validator: validate, logger: logger}
}

// Mark writes one period's attendance. Only the faculty assigned to teach
// the (subject, class) pair may record it.
func (s *AttendanceService) Mark(ctx context.Context, req MarkAttendanceRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid attendance payload")
	}
	assigned, err := s.assignments.ExistsForFaculty(ctx, req.FacultyID, req.SubjectID, req.ClassID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check teaching assignment")
	}
	if !assigned {
		return appErrors.Clone(appErrors.ErrForbidden, "you are not assigned to teach this subject for this class")
	}

	records := make([]models.AttendanceRecord, 0, len(req.Entries))
	for _, entry := range req.Entries {
		records = append(records, models.AttendanceRecord{
			StudentID:  entry.StudentID,
			SubjectID:  req.SubjectID,
			Date:       req.Date,
			Period:     req.Period,
			Present:    entry.Present,
			RecordedBy: req.FacultyID,
		})
	}
	if err := s.attendance.BulkUpsert(ctx, records); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record attendance")
	}
	s.logger.Info("attendance recorded",
		zap.String("subject_id", req.SubjectID),
		zap.String("class_id", req.ClassID),
		zap.Int("period", req.Period),
		zap.Int("students", len(records)))
	return nil
}

// SubjectSummaries aggregates a student's attendance per subject.
func (s *AttendanceService) SubjectSummaries(ctx context.Context, studentID string) ([]models.AttendanceSummary, error) {
	rows, err := s.list(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return summarize(rows, func(row models.AttendanceRow) (string, string) {
		return row.SubjectID, row.SubjectName
	}), nil
}

// MonthlySummaries aggregates a student's attendance per calendar month.
func (s *AttendanceService) MonthlySummaries(ctx context.Context, studentID string) ([]models.AttendanceSummary, error) {
	rows, err := s.list(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return summarize(rows, func(row models.AttendanceRow) (string, string) {
		month := row.Date.Format("2006-01")
		return month, row.Date.Format("January 2006")
	}), nil
}

// SemesterSummaries aggregates per semester label. The subject's semester
// is used, not the student's current one, so history stays queryable after
// promotion.
func (s *AttendanceService) SemesterSummaries(ctx context.Context, studentID string) ([]models.AttendanceSummary, error) {
	rows, err := s.list(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return summarize(rows, func(row models.AttendanceRow) (string, string) {
		return row.SubjectSemester, "Semester " + row.SubjectSemester
	}), nil
}

// History produces the day-by-period pivot: one row per calendar date, one
// optional cell per period. At most one record exists per (date, period)
// for a student, so cells never collide.
func (s *AttendanceService) History(ctx context.Context, studentID string) ([]models.AttendanceDayRow, error) {
	rows, err := s.list(ctx, studentID)
	if err != nil {
		return nil, err
	}

	byDate := make(map[string]*models.AttendanceDayRow)
	var order []string
	for _, row := range rows {
		day := row.Date.Format("2006-01-02")
		pivot, ok := byDate[day]
		if !ok {
			pivot = &models.AttendanceDayRow{Date: day, Periods: make(map[int]*models.AttendanceCell)}
			byDate[day] = pivot
			order = append(order, day)
		}
		pivot.Periods[row.Period] = &models.AttendanceCell{SubjectName: row.SubjectName, Present: row.Present}
	}

	sort.Strings(order)
	result := make([]models.AttendanceDayRow, 0, len(order))
	for _, day := range order {
		result = append(result, *byDate[day])
	}
	return result, nil
}

func (s *AttendanceService) list(ctx context.Context, studentID string) ([]models.AttendanceRow, error) {
	rows, err := s.attendance.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load attendance")
	}
	return rows, nil
}

func summarize(rows []models.AttendanceRow, keyFn func(models.AttendanceRow) (string, string)) []models.AttendanceSummary {
	groups := make(map[string]*models.AttendanceSummary)
	var order []string
	for _, row := range rows {
		key, label := keyFn(row)
		summary, ok := groups[key]
		if !ok {
			summary = &models.AttendanceSummary{Key: key, Label: label}
			groups[key] = summary
			order = append(order, key)
		}
		summary.Total++
		if row.Present {
			summary.Present++
		}
	}

	sort.Strings(order)
	result := make([]models.AttendanceSummary, 0, len(order))
	for _, key := range order {
		summary := groups[key]
		summary.Percent = grading.Percent(summary.Present, summary.Total)
		result = append(result, *summary)
	}
	return result
}
