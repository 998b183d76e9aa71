package service

import (
	"context"
	"database/sql"
	"errors"
	"sort"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campuskit/academics-api/internal/grading"
	"github.com/campuskit/academics-api/internal/models"
	appErrors "github.com/campuskit/academics-api/pkg/errors"
)

type markRepo interface {
	Upsert(ctx context.Context, record *models.MarkRecord) error
	BulkUpsert(ctx context.Context, records []models.MarkRecord) error
	ListByStudent(ctx context.Context, studentID string) ([]models.MarkRow, error)
	ListByClassSubject(ctx context.Context, classID, subjectID string) ([]models.MarkRow, error)
}

type studentReader interface {
	FindByID(ctx context.Context, id string) (*models.Student, error)
	ListByClass(ctx context.Context, classID string) ([]models.Student, error)
	UpdateGPA(ctx context.Context, studentID string, sgpa, cgpa float64) error
}

// MarkEntry is one student's score for a component in a bulk entry.
type MarkEntry struct {
	StudentID string  `json:"student_id" validate:"required"`
	Score     float64 `json:"score" validate:"min=0"`
}

// EnterMarksRequest records scores for one (subject, class, component).
type EnterMarksRequest struct {
	FacultyID string               `json:"faculty_id" validate:"required"`
	SubjectID string               `json:"subject_id" validate:"required"`
	ClassID   string               `json:"class_id" validate:"required"`
	Component models.MarkComponent `json:"component" validate:"required"`
	Entries   []MarkEntry          `json:"entries" validate:"required,dive"`
}

// ResultService enters raw component scores and derives certified results:
// per-subject internal/external/total/grade figures plus SGPA and CGPA.
// Results are always computed from the current raw marks, never stored.
type ResultService struct {
	marks       markRepo
	students    studentReader
	assignments assignmentChecker
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewResultService constructs the service.
func NewResultService(marks markRepo, students studentReader, assignments assignmentChecker, validate *validator.Validate, logger *zap.Logger) *ResultService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResultService{marks: marks, students: students, assignments: assignments, validator: validate, logger: logger}
}

// EnterMarks upserts component scores for a class. Only the faculty assigned
// to the (subject, class) pair may enter them. Re-entry overwrites.
func (s *ResultService) EnterMarks(ctx context.Context, req EnterMarksRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid marks payload")
	}
	if !req.Component.Valid() {
		return appErrors.Clone(appErrors.ErrValidation, "unknown mark component: "+string(req.Component))
	}
	assigned, err := s.assignments.ExistsForFaculty(ctx, req.FacultyID, req.SubjectID, req.ClassID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check teaching assignment")
	}
	if !assigned {
		return appErrors.Clone(appErrors.ErrForbidden, "you are not assigned to teach this subject for this class")
	}

	records := make([]models.MarkRecord, 0, len(req.Entries))
	for _, entry := range req.Entries {
		records = append(records, models.MarkRecord{
			StudentID: entry.StudentID,
			SubjectID: req.SubjectID,
			Component: req.Component,
			Score:     entry.Score,
		})
	}
	if err := s.marks.BulkUpsert(ctx, records); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save marks")
	}
	s.logger.Info("marks entered",
		zap.String("subject_id", req.SubjectID),
		zap.String("class_id", req.ClassID),
		zap.String("component", string(req.Component)),
		zap.Int("students", len(records)))
	return nil
}

// StudentResults computes a student's results. With a semester filter only
// that semester's subjects are graded and SGPA covers them; CGPA always
// spans every recorded subject.
func (s *ResultService) StudentResults(ctx context.Context, studentID, semester string) (*models.StudentResults, error) {
	student, err := s.students.FindByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}

	rows, err := s.marks.ListByStudent(ctx, student.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load marks")
	}

	all := computeSubjectResults(rows)
	scoped := all
	if semester != "" {
		scoped = scoped[:0:0]
		for _, result := range all {
			if result.Semester == semester {
				scoped = append(scoped, result)
			}
		}
	}

	return &models.StudentResults{
		StudentID:  student.ID,
		RegisterNo: student.RegisterNo,
		Semester:   semester,
		Subjects:   scoped,
		SGPA:       grading.GPA(scoped),
		CGPA:       grading.GPA(all),
	}, nil
}

// ClassResults computes one subject's results for every student in a class.
func (s *ResultService) ClassResults(ctx context.Context, classID, subjectID string) ([]models.StudentResults, error) {
	students, err := s.students.ListByClass(ctx, classID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class students")
	}
	rows, err := s.marks.ListByClassSubject(ctx, classID, subjectID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class marks")
	}

	byStudent := make(map[string][]models.MarkRow)
	for _, row := range rows {
		byStudent[row.StudentID] = append(byStudent[row.StudentID], row)
	}

	results := make([]models.StudentResults, 0, len(students))
	for _, student := range students {
		subjects := computeSubjectResults(byStudent[student.ID])
		results = append(results, models.StudentResults{
			StudentID:  student.ID,
			RegisterNo: student.RegisterNo,
			Subjects:   subjects,
			SGPA:       grading.GPA(subjects),
		})
	}
	return results, nil
}

// RecomputeGPA recalculates and persists a student's SGPA and CGPA. SGPA
// covers the student's current semester.
func (s *ResultService) RecomputeGPA(ctx context.Context, studentID string) (*models.Student, error) {
	student, err := s.students.FindByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	rows, err := s.marks.ListByStudent(ctx, student.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load marks")
	}

	all := computeSubjectResults(rows)
	var current []models.SubjectResult
	for _, result := range all {
		if result.Semester == student.CurrentSemester {
			current = append(current, result)
		}
	}

	sgpa := grading.GPA(current)
	cgpa := grading.GPA(all)
	if err := s.students.UpdateGPA(ctx, student.ID, sgpa, cgpa); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save GPA")
	}
	student.SGPA = sgpa
	student.CGPA = cgpa
	s.logger.Info("gpa recomputed",
		zap.String("student_id", student.ID),
		zap.Float64("sgpa", sgpa),
		zap.Float64("cgpa", cgpa))
	return student, nil
}

// computeSubjectResults groups raw rows by subject and runs the grading
// rules on each group. Output is ordered by subject code for stable
// rendering.
func computeSubjectResults(rows []models.MarkRow) []models.SubjectResult {
	type group struct {
		meta  models.MarkRow
		marks grading.Components
	}
	groups := make(map[string]*group)
	var order []string
	for _, row := range rows {
		g, ok := groups[row.SubjectID]
		if !ok {
			g = &group{meta: row, marks: make(grading.Components)}
			groups[row.SubjectID] = g
			order = append(order, row.SubjectID)
		}
		g.marks[row.Component] = row.Score
	}

	results := make([]models.SubjectResult, 0, len(order))
	for _, subjectID := range order {
		g := groups[subjectID]
		computed := grading.Compute(g.meta.SubjectKind, g.marks)
		results = append(results, models.SubjectResult{
			SubjectID:   subjectID,
			SubjectName: g.meta.SubjectName,
			SubjectCode: g.meta.SubjectCode,
			Kind:        g.meta.SubjectKind,
			Semester:    g.meta.SubjectSemester,
			Credits:     g.meta.SubjectCredits,
			Internal:    computed.Internal,
			External:    computed.External,
			Total:       computed.Total,
			Grade:       computed.Grade,
		})
	}
	sort.Slice(results, func(i, j int) bool { return results[i].SubjectCode < results[j].SubjectCode })
	return results
}
