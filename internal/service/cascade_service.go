package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/campuskit/academics-api/internal/models"
	appErrors "github.com/campuskit/academics-api/pkg/errors"
)

type cascadeExecutor interface {
	DeleteBatch(ctx context.Context, batchID string) error
	DeleteClass(ctx context.Context, classID string) error
	DeleteSubject(ctx context.Context, subjectID string, includeHistory bool) error
	DeleteFaculty(ctx context.Context, facultyID, userID string) error
	DeleteStudent(ctx context.Context, studentID, userID string) error
}

type batchFinder interface {
	FindByID(ctx context.Context, id string) (*models.Batch, error)
}

type classFinder interface {
	FindByID(ctx context.Context, id string) (*models.Class, error)
}

type subjectFinder interface {
	FindByID(ctx context.Context, id string) (*models.Subject, error)
}

type facultyFinder interface {
	FindByID(ctx context.Context, id string) (*models.Faculty, error)
}

type studentFinder interface {
	FindByID(ctx context.Context, id string) (*models.Student, error)
	CountByClass(ctx context.Context, classID string) (int, error)
}

type attendanceCounter interface {
	CountBySubject(ctx context.Context, subjectID string) (int, error)
	CountRecordedBy(ctx context.Context, facultyID string) (int, error)
}

type markCounter interface {
	CountBySubject(ctx context.Context, subjectID string) (int, error)
}

// CascadeService is the deletion orchestrator. It decides the dependency
// closure per root entity and splits dependents into configuration data
// (assignments and timetable slots, always removed) and historical data
// (attendance and marks, removed only behind an explicit force confirmation).
type CascadeService struct {
	cascades   cascadeExecutor
	batches    batchFinder
	classes    classFinder
	subjects   subjectFinder
	faculties  facultyFinder
	students   studentFinder
	attendance attendanceCounter
	marks      markCounter
	metrics    *MetricsService
	logger     *zap.Logger
}

// NewCascadeService constructs the orchestrator.
func NewCascadeService(cascades cascadeExecutor, batches batchFinder, classes classFinder, subjects subjectFinder, faculties facultyFinder, students studentFinder, attendance attendanceCounter, marks markCounter, metrics *MetricsService, logger *zap.Logger) *CascadeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CascadeService{
		cascades:   cascades,
		batches:    batches,
		classes:    classes,
		subjects:   subjects,
		faculties:  faculties,
		students:   students,
		attendance: attendance,
		marks:      marks,
		metrics:    metrics,
		logger:     logger,
	}
}

// DeleteBatch removes a batch and its full closure. Batch deletion is
// always forced; there is no confirmation gate.
func (s *CascadeService) DeleteBatch(ctx context.Context, batchID string) (*models.MutationOutcome, error) {
	batch, err := s.batches.FindByID(ctx, batchID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "batch not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load batch")
	}
	if err := s.cascades.DeleteBatch(ctx, batch.ID); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete batch")
	}
	s.logger.Info("batch cascade completed", zap.String("batch_id", batch.ID))
	s.metrics.RecordCascade("batch", string(models.MutationCompleted))
	return &models.MutationOutcome{Status: models.MutationCompleted, ID: batch.ID}, nil
}

// DeleteClass removes a class. A class with enrolled students is never
// deletable: the precondition is blocking, not confirmable.
func (s *CascadeService) DeleteClass(ctx context.Context, classID string) (*models.MutationOutcome, error) {
	class, err := s.classes.FindByID(ctx, classID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "class not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class")
	}
	count, err := s.students.CountByClass(ctx, class.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count class students")
	}
	if count > 0 {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed,
			fmt.Sprintf("class has %d active students - remove them first", count))
	}
	if err := s.cascades.DeleteClass(ctx, class.ID); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete class")
	}
	s.logger.Info("class cascade completed", zap.String("class_id", class.ID))
	s.metrics.RecordCascade("class", string(models.MutationCompleted))
	return &models.MutationOutcome{Status: models.MutationCompleted, ID: class.ID}, nil
}

// DeleteSubject removes a subject. Timetable slots and teaching assignments
// are configuration and go unconditionally; attendance and marks are
// history and require force.
func (s *CascadeService) DeleteSubject(ctx context.Context, subjectID string, force bool) (*models.MutationOutcome, error) {
	subject, err := s.subjects.FindByID(ctx, subjectID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "subject not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subject")
	}

	attendanceCount, err := s.attendance.CountBySubject(ctx, subject.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to inspect attendance history")
	}
	markCount, err := s.marks.CountBySubject(ctx, subject.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to inspect mark history")
	}

	if (attendanceCount > 0 || markCount > 0) && !force {
		s.metrics.RecordCascade("subject", string(models.MutationConfirmationRequired))
		return &models.MutationOutcome{
			Status: models.MutationConfirmationRequired,
			ID:     subject.ID,
			Reason: fmt.Sprintf("subject %s has %d attendance and %d mark records; deleting it destroys this history - repeat with force to proceed",
				subject.Code, attendanceCount, markCount),
		}, nil
	}

	if err := s.cascades.DeleteSubject(ctx, subject.ID, force); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete subject")
	}
	s.logger.Info("subject cascade completed",
		zap.String("subject_id", subject.ID),
		zap.Bool("force", force),
		zap.Int("attendance_removed", attendanceCount),
		zap.Int("marks_removed", markCount))
	s.metrics.RecordCascade("subject", string(models.MutationCompleted))
	return &models.MutationOutcome{Status: models.MutationCompleted, ID: subject.ID}, nil
}

// DeleteFaculty removes a faculty member and their account. Attendance
// authorship is an audit trail: when the faculty has recorded attendance,
// deletion requires force and deactivation is suggested instead.
func (s *CascadeService) DeleteFaculty(ctx context.Context, facultyID string, force bool) (*models.MutationOutcome, error) {
	faculty, err := s.faculties.FindByID(ctx, facultyID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "faculty not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load faculty")
	}

	recorded, err := s.attendance.CountRecordedBy(ctx, faculty.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to inspect attendance authorship")
	}
	if recorded > 0 && !force {
		s.metrics.RecordCascade("faculty", string(models.MutationConfirmationRequired))
		return &models.MutationOutcome{
			Status: models.MutationConfirmationRequired,
			ID:     faculty.ID,
			Reason: fmt.Sprintf("%s has recorded %d attendance entries; consider deactivating the account instead - repeat with force to delete anyway",
				faculty.FullName, recorded),
		}, nil
	}

	if err := s.cascades.DeleteFaculty(ctx, faculty.ID, faculty.UserID); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete faculty")
	}
	s.logger.Info("faculty cascade completed", zap.String("faculty_id", faculty.ID), zap.Bool("force", force))
	s.metrics.RecordCascade("faculty", string(models.MutationCompleted))
	return &models.MutationOutcome{Status: models.MutationCompleted, ID: faculty.ID}, nil
}

// DeleteStudent removes a student, their history and their account in one
// transaction.
func (s *CascadeService) DeleteStudent(ctx context.Context, studentID string) (*models.MutationOutcome, error) {
	student, err := s.students.FindByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	if err := s.cascades.DeleteStudent(ctx, student.ID, student.UserID); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete student")
	}
	s.logger.Info("student cascade completed", zap.String("student_id", student.ID))
	s.metrics.RecordCascade("student", string(models.MutationCompleted))
	return &models.MutationOutcome{Status: models.MutationCompleted, ID: student.ID}, nil
}
