package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campuskit/academics-api/internal/models"
	appErrors "github.com/campuskit/academics-api/pkg/errors"
)

type classTeacherRepo interface {
	FindByBatchClass(ctx context.Context, batchID, classID string) (*models.ClassTeacherDetail, error)
	Reassign(ctx context.Context, assignment *models.ClassTeacherAssignment) error
	ListByBatch(ctx context.Context, batchID string) ([]models.ClassTeacherDetail, error)
}

type facultySubjectRepo interface {
	FindBySubjectClass(ctx context.Context, subjectID, classID, excludeID string) (*models.FacultySubjectDetail, error)
	Create(ctx context.Context, assignment *models.FacultySubjectAssignment) error
	Update(ctx context.Context, assignment *models.FacultySubjectAssignment) error
	ListByFaculty(ctx context.Context, facultyID string) ([]models.FacultySubjectDetail, error)
	ListByClass(ctx context.Context, classID string) ([]models.FacultySubjectDetail, error)
}

// AssignClassTeacherRequest appoints a faculty to a (batch, class) post.
type AssignClassTeacherRequest struct {
	FacultyID string `json:"faculty_id" validate:"required"`
	BatchID   string `json:"batch_id" validate:"required"`
	ClassID   string `json:"class_id" validate:"required"`
}

// AssignFacultySubjectRequest appoints a faculty to teach a (subject, class).
type AssignFacultySubjectRequest struct {
	FacultyID string `json:"faculty_id" validate:"required"`
	SubjectID string `json:"subject_id" validate:"required"`
	ClassID   string `json:"class_id" validate:"required"`
}

// AssignmentService enforces the two assignment uniqueness invariants: one
// class teacher per (batch, class) and one teaching faculty per
// (subject, class). Uniqueness conflicts are surfaced as errors naming the
// holder instead of opaque constraint violations.
type AssignmentService struct {
	classTeachers   classTeacherRepo
	facultySubjects facultySubjectRepo
	validator       *validator.Validate
	logger          *zap.Logger
}

// NewAssignmentService constructs the resolver.
func NewAssignmentService(classTeachers classTeacherRepo, facultySubjects facultySubjectRepo, validate *validator.Validate, logger *zap.Logger) *AssignmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssignmentService{classTeachers: classTeachers, facultySubjects: facultySubjects, validator: validate, logger: logger}
}

// AssignClassTeacher appoints or moves a faculty to a class-teacher post.
// The faculty's previous post is vacated implicitly; the target post must
// be free or already held by the same faculty.
func (s *AssignmentService) AssignClassTeacher(ctx context.Context, req AssignClassTeacherRequest) (*models.ClassTeacherAssignment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid class teacher payload")
	}

	holder, err := s.classTeachers.FindByBatchClass(ctx, req.BatchID, req.ClassID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check class teacher post")
	}
	if holder != nil && holder.FacultyID != req.FacultyID {
		return nil, appErrors.Clone(appErrors.ErrConflict,
			fmt.Sprintf("%s is already class teacher of %s", holder.FacultyName, holder.ClassName))
	}

	assignment := &models.ClassTeacherAssignment{
		FacultyID: req.FacultyID,
		BatchID:   req.BatchID,
		ClassID:   req.ClassID,
	}
	if err := s.classTeachers.Reassign(ctx, assignment); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to assign class teacher")
	}
	s.logger.Info("class teacher assigned",
		zap.String("faculty_id", req.FacultyID),
		zap.String("batch_id", req.BatchID),
		zap.String("class_id", req.ClassID))
	return assignment, nil
}

// AssignFacultySubject creates a new teaching assignment. No self-exclusion
// applies on create: any existing holder of the (subject, class) pair is a
// conflict.
func (s *AssignmentService) AssignFacultySubject(ctx context.Context, req AssignFacultySubjectRequest) (*models.FacultySubjectAssignment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid faculty subject payload")
	}
	if err := s.checkSubjectClassFree(ctx, req.SubjectID, req.ClassID, ""); err != nil {
		return nil, err
	}

	assignment := &models.FacultySubjectAssignment{
		FacultyID: req.FacultyID,
		SubjectID: req.SubjectID,
		ClassID:   req.ClassID,
	}
	if err := s.facultySubjects.Create(ctx, assignment); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create assignment")
	}
	return assignment, nil
}

// UpdateFacultySubject repoints assignment id at a (faculty, subject, class)
// triple. The assignment's own row is excluded from the uniqueness lookup so
// an in-place edit cannot conflict with itself.
func (s *AssignmentService) UpdateFacultySubject(ctx context.Context, id string, req AssignFacultySubjectRequest) (*models.FacultySubjectAssignment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid faculty subject payload")
	}
	if err := s.checkSubjectClassFree(ctx, req.SubjectID, req.ClassID, id); err != nil {
		return nil, err
	}

	assignment := &models.FacultySubjectAssignment{
		ID:        id,
		FacultyID: req.FacultyID,
		SubjectID: req.SubjectID,
		ClassID:   req.ClassID,
	}
	if err := s.facultySubjects.Update(ctx, assignment); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "assignment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update assignment")
	}
	return assignment, nil
}

// ListClassTeachers returns the class-teacher posts of a batch.
func (s *AssignmentService) ListClassTeachers(ctx context.Context, batchID string) ([]models.ClassTeacherDetail, error) {
	details, err := s.classTeachers.ListByBatch(ctx, batchID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list class teachers")
	}
	return details, nil
}

// ListFacultySubjects returns a faculty's teaching assignments.
func (s *AssignmentService) ListFacultySubjects(ctx context.Context, facultyID string) ([]models.FacultySubjectDetail, error) {
	details, err := s.facultySubjects.ListByFaculty(ctx, facultyID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list assignments")
	}
	return details, nil
}

// ListClassSubjects returns a class's teaching assignments.
func (s *AssignmentService) ListClassSubjects(ctx context.Context, classID string) ([]models.FacultySubjectDetail, error) {
	details, err := s.facultySubjects.ListByClass(ctx, classID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list class assignments")
	}
	return details, nil
}

func (s *AssignmentService) checkSubjectClassFree(ctx context.Context, subjectID, classID, excludeID string) error {
	holder, err := s.facultySubjects.FindBySubjectClass(ctx, subjectID, classID, excludeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check subject assignment")
	}
	return appErrors.Clone(appErrors.ErrConflict,
		fmt.Sprintf("%s already teaches %s for %s", holder.FacultyName, holder.SubjectName, holder.ClassName))
}
