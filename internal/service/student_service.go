package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/campuskit/academics-api/internal/models"
	appErrors "github.com/campuskit/academics-api/pkg/errors"
)

type studentWriter interface {
	CreateWithUser(ctx context.Context, user *models.User, student *models.Student) error
	FindByID(ctx context.Context, id string) (*models.Student, error)
	FindByUserID(ctx context.Context, userID string) (*models.Student, error)
	ListByClass(ctx context.Context, classID string) ([]models.Student, error)
}

type batchReader interface {
	FindByID(ctx context.Context, id string) (*models.Batch, error)
}

// CreateStudentRequest onboards one student into a batch and class.
type CreateStudentRequest struct {
	BatchID    string `json:"batch_id" validate:"required"`
	ClassID    string `json:"class_id" validate:"required"`
	RegisterNo string `json:"register_no" validate:"required"`
	FullName   string `json:"full_name" validate:"required"`
}

// StudentService onboards students. Each student gets a login account in
// the same transaction: username and initial password are the register
// number, with a forced password change on first login.
type StudentService struct {
	students  studentWriter
	batches   batchReader
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs the service.
func NewStudentService(students studentWriter, batches batchReader, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{students: students, batches: batches, validator: validate, logger: logger}
}

// Create onboards a student. The current semester is derived from the
// batch's start date at creation time.
func (s *StudentService) Create(ctx context.Context, req CreateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	batch, err := s.batches.FindByID(ctx, req.BatchID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "batch not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load batch")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.RegisterNo), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash initial password")
	}

	user := &models.User{
		Username:           req.RegisterNo,
		PasswordHash:       string(hash),
		Role:               models.RoleStudent,
		MustChangePassword: true,
		Active:             true,
	}
	student := &models.Student{
		BatchID:         batch.ID,
		ClassID:         req.ClassID,
		RegisterNo:      req.RegisterNo,
		FullName:        req.FullName,
		CurrentSemester: CurrentSemester(batch.StartDate, time.Now().UTC()),
	}
	if err := s.students.CreateWithUser(ctx, user, student); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create student")
	}
	s.logger.Info("student onboarded",
		zap.String("student_id", student.ID),
		zap.String("register_no", student.RegisterNo),
		zap.String("class_id", student.ClassID))
	return student, nil
}

// Get returns one student.
func (s *StudentService) Get(ctx context.Context, id string) (*models.Student, error) {
	student, err := s.students.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	return student, nil
}

// GetByUser returns the student linked to a login account.
func (s *StudentService) GetByUser(ctx context.Context, userID string) (*models.Student, error) {
	student, err := s.students.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "no student profile for this account")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	return student, nil
}

// ListByClass returns the class roster.
func (s *StudentService) ListByClass(ctx context.Context, classID string) ([]models.Student, error) {
	students, err := s.students.ListByClass(ctx, classID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list students")
	}
	return students, nil
}
