package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/campuskit/academics-api/internal/models"
	appErrors "github.com/campuskit/academics-api/pkg/errors"
)

type facultyWriter interface {
	CreateWithUser(ctx context.Context, user *models.User, faculty *models.Faculty) error
	FindByID(ctx context.Context, id string) (*models.Faculty, error)
	FindByUserID(ctx context.Context, userID string) (*models.Faculty, error)
	List(ctx context.Context) ([]models.Faculty, error)
}

type accountDeactivator interface {
	SetActive(ctx context.Context, userID string, active bool) error
}

// CreateFacultyRequest onboards one faculty member.
type CreateFacultyRequest struct {
	EmployeeNo  string `json:"employee_no" validate:"required"`
	FullName    string `json:"full_name" validate:"required"`
	Designation string `json:"designation" validate:"required"`
	Department  string `json:"department" validate:"required"`
}

// FacultyService onboards faculty members. As with students, the login
// account is created in the same transaction with the employee number as
// both username and initial password.
type FacultyService struct {
	faculties facultyWriter
	accounts  accountDeactivator
	validator *validator.Validate
	logger    *zap.Logger
}

// NewFacultyService constructs the service.
func NewFacultyService(faculties facultyWriter, accounts accountDeactivator, validate *validator.Validate, logger *zap.Logger) *FacultyService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FacultyService{faculties: faculties, accounts: accounts, validator: validate, logger: logger}
}

// Create onboards a faculty member.
func (s *FacultyService) Create(ctx context.Context, req CreateFacultyRequest) (*models.Faculty, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid faculty payload")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.EmployeeNo), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash initial password")
	}

	user := &models.User{
		Username:           req.EmployeeNo,
		PasswordHash:       string(hash),
		Role:               models.RoleFaculty,
		MustChangePassword: true,
		Active:             true,
	}
	faculty := &models.Faculty{
		EmployeeNo:  req.EmployeeNo,
		FullName:    req.FullName,
		Designation: req.Designation,
		Department:  req.Department,
	}
	if err := s.faculties.CreateWithUser(ctx, user, faculty); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create faculty")
	}
	s.logger.Info("faculty onboarded",
		zap.String("faculty_id", faculty.ID),
		zap.String("employee_no", faculty.EmployeeNo))
	return faculty, nil
}

// Get returns one faculty member.
func (s *FacultyService) Get(ctx context.Context, id string) (*models.Faculty, error) {
	faculty, err := s.faculties.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "faculty not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load faculty")
	}
	return faculty, nil
}

// GetByUser returns the faculty linked to a login account.
func (s *FacultyService) GetByUser(ctx context.Context, userID string) (*models.Faculty, error) {
	faculty, err := s.faculties.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "no faculty profile for this account")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load faculty")
	}
	return faculty, nil
}

// List returns all faculty members.
func (s *FacultyService) List(ctx context.Context) ([]models.Faculty, error) {
	faculties, err := s.faculties.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list faculties")
	}
	return faculties, nil
}

// Deactivate disables a faculty's login without touching their records.
// This is the suggested alternative to force-deleting a faculty who has
// recorded attendance.
func (s *FacultyService) Deactivate(ctx context.Context, id string) error {
	faculty, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.accounts.SetActive(ctx, faculty.UserID, false); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to deactivate account")
	}
	s.logger.Info("faculty deactivated", zap.String("faculty_id", faculty.ID))
	return nil
}
