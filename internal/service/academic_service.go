package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campuskit/academics-api/internal/models"
	appErrors "github.com/campuskit/academics-api/pkg/errors"
)

type batchRepo interface {
	Create(ctx context.Context, batch *models.Batch) error
	List(ctx context.Context) ([]models.Batch, error)
	FindByID(ctx context.Context, id string) (*models.Batch, error)
}

type classRepo interface {
	Create(ctx context.Context, class *models.Class) error
	ListByBatch(ctx context.Context, batchID string) ([]models.Class, error)
	FindByID(ctx context.Context, id string) (*models.Class, error)
}

type subjectRepo interface {
	Create(ctx context.Context, subject *models.Subject) error
	ListByBatch(ctx context.Context, batchID, semester string) ([]models.Subject, error)
	FindByID(ctx context.Context, id string) (*models.Subject, error)
}

// CreateBatchRequest opens a new student cohort.
type CreateBatchRequest struct {
	Name      string    `json:"name" validate:"required"`
	StartDate time.Time `json:"start_date" validate:"required"`
	EndDate   time.Time `json:"end_date" validate:"required,gtfield=StartDate"`
}

// CreateClassRequest adds a section to a batch.
type CreateClassRequest struct {
	BatchID string `json:"batch_id" validate:"required"`
	Name    string `json:"name" validate:"required"`
}

// CreateSubjectRequest adds a course to a batch's curriculum.
type CreateSubjectRequest struct {
	BatchID  string             `json:"batch_id" validate:"required"`
	Name     string             `json:"name" validate:"required"`
	Code     string             `json:"code" validate:"required"`
	Credits  float64            `json:"credits" validate:"required,gt=0"`
	Kind     models.SubjectKind `json:"kind" validate:"required"`
	Semester string             `json:"semester" validate:"required"`
}

// AcademicService manages the structural entities of the graph: batches,
// classes and subjects.
type AcademicService struct {
	batches   batchRepo
	classes   classRepo
	subjects  subjectRepo
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAcademicService constructs the service.
func NewAcademicService(batches batchRepo, classes classRepo, subjects subjectRepo, validate *validator.Validate, logger *zap.Logger) *AcademicService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AcademicService{batches: batches, classes: classes, subjects: subjects, validator: validate, logger: logger}
}

// CreateBatch opens a cohort.
func (s *AcademicService) CreateBatch(ctx context.Context, req CreateBatchRequest) (*models.Batch, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid batch payload")
	}
	batch := &models.Batch{
		Name:      req.Name,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Active:    true,
	}
	if err := s.batches.Create(ctx, batch); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create batch")
	}
	s.logger.Info("batch created", zap.String("batch_id", batch.ID), zap.String("name", batch.Name))
	return batch, nil
}

// ListBatches returns all cohorts.
func (s *AcademicService) ListBatches(ctx context.Context) ([]models.Batch, error) {
	batches, err := s.batches.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list batches")
	}
	return batches, nil
}

// GetBatch returns one batch.
func (s *AcademicService) GetBatch(ctx context.Context, id string) (*models.Batch, error) {
	batch, err := s.batches.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "batch not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load batch")
	}
	return batch, nil
}

// CreateClass adds a section to a batch.
func (s *AcademicService) CreateClass(ctx context.Context, req CreateClassRequest) (*models.Class, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid class payload")
	}
	if _, err := s.GetBatch(ctx, req.BatchID); err != nil {
		return nil, err
	}
	class := &models.Class{BatchID: req.BatchID, Name: req.Name}
	if err := s.classes.Create(ctx, class); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create class")
	}
	s.logger.Info("class created", zap.String("class_id", class.ID), zap.String("batch_id", class.BatchID))
	return class, nil
}

// ListClasses returns a batch's sections.
func (s *AcademicService) ListClasses(ctx context.Context, batchID string) ([]models.Class, error) {
	classes, err := s.classes.ListByBatch(ctx, batchID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list classes")
	}
	return classes, nil
}

// GetClass returns one class.
func (s *AcademicService) GetClass(ctx context.Context, id string) (*models.Class, error) {
	class, err := s.classes.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "class not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class")
	}
	return class, nil
}

// CreateSubject adds a course to a batch's curriculum.
func (s *AcademicService) CreateSubject(ctx context.Context, req CreateSubjectRequest) (*models.Subject, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid subject payload")
	}
	if !req.Kind.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "subject kind must be theory or lab")
	}
	if _, err := s.GetBatch(ctx, req.BatchID); err != nil {
		return nil, err
	}
	subject := &models.Subject{
		BatchID:  req.BatchID,
		Name:     req.Name,
		Code:     req.Code,
		Credits:  req.Credits,
		Kind:     req.Kind,
		Semester: req.Semester,
	}
	if err := s.subjects.Create(ctx, subject); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create subject")
	}
	s.logger.Info("subject created", zap.String("subject_id", subject.ID), zap.String("code", subject.Code))
	return subject, nil
}

// ListSubjects returns a batch's subjects, optionally scoped to a semester.
func (s *AcademicService) ListSubjects(ctx context.Context, batchID, semester string) ([]models.Subject, error) {
	subjects, err := s.subjects.ListByBatch(ctx, batchID, semester)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list subjects")
	}
	return subjects, nil
}

// GetSubject returns one subject.
func (s *AcademicService) GetSubject(ctx context.Context, id string) (*models.Subject, error) {
	subject, err := s.subjects.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "subject not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subject")
	}
	return subject, nil
}
