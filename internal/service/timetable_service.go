package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campuskit/academics-api/internal/models"
	appErrors "github.com/campuskit/academics-api/pkg/errors"
)

type timetableRepo interface {
	Upsert(ctx context.Context, slot *models.TimetableSlot) error
	FindByKey(ctx context.Context, classID, semester string, day, period int) (*models.TimetableSlot, error)
	DeleteByKey(ctx context.Context, classID, semester string, day, period int) error
	ListByClassSemester(ctx context.Context, classID, semester string) ([]models.TimetableEntry, error)
	ListByFaculty(ctx context.Context, facultyID string) ([]models.TimetableEntry, error)
}

// SetSlotRequest places a subject into one weekly slot.
type SetSlotRequest struct {
	FacultyID string `json:"faculty_id" validate:"required"`
	ClassID   string `json:"class_id" validate:"required"`
	Semester  string `json:"semester" validate:"required"`
	DayOfWeek int    `json:"day_of_week" validate:"required,min=1,max=6"`
	Period    int    `json:"period" validate:"required,min=1,max=7"`
	SubjectID string `json:"subject_id" validate:"required"`
}

// ClearSlotRequest vacates one weekly slot.
type ClearSlotRequest struct {
	FacultyID string `json:"faculty_id" validate:"required"`
	ClassID   string `json:"class_id" validate:"required"`
	Semester  string `json:"semester" validate:"required"`
	DayOfWeek int    `json:"day_of_week" validate:"required,min=1,max=6"`
	Period    int    `json:"period" validate:"required,min=1,max=7"`
}

// TimetableService maintains weekly schedules. Writes are keyed upserts:
// setting an occupied slot silently replaces it, so schedule edits never
// need a delete-then-create dance.
type TimetableService struct {
	slots       timetableRepo
	assignments assignmentChecker
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewTimetableService constructs the service.
func NewTimetableService(slots timetableRepo, assignments assignmentChecker, validate *validator.Validate, logger *zap.Logger) *TimetableService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TimetableService{slots: slots, assignments: assignments, validator: validate, logger: logger}
}

// SetSlot writes a slot. The acting faculty must be assigned to teach the
// subject for the class.
func (s *TimetableService) SetSlot(ctx context.Context, req SetSlotRequest) (*models.TimetableSlot, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid timetable payload")
	}
	assigned, err := s.assignments.ExistsForFaculty(ctx, req.FacultyID, req.SubjectID, req.ClassID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check teaching assignment")
	}
	if !assigned {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "you are not assigned to teach this subject for this class")
	}

	slot := &models.TimetableSlot{
		ClassID:   req.ClassID,
		Semester:  req.Semester,
		DayOfWeek: req.DayOfWeek,
		Period:    req.Period,
		SubjectID: req.SubjectID,
	}
	if err := s.slots.Upsert(ctx, slot); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save timetable slot")
	}
	s.logger.Info("timetable slot set",
		zap.String("class_id", req.ClassID),
		zap.String("semester", req.Semester),
		zap.Int("day", req.DayOfWeek),
		zap.Int("period", req.Period),
		zap.String("subject_id", req.SubjectID))
	return slot, nil
}

// ClearSlot vacates a slot. Only the faculty teaching the occupying subject
// may clear it.
func (s *TimetableService) ClearSlot(ctx context.Context, req ClearSlotRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid timetable payload")
	}
	slot, err := s.slots.FindByKey(ctx, req.ClassID, req.Semester, req.DayOfWeek, req.Period)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "timetable slot is already empty")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load timetable slot")
	}
	assigned, err := s.assignments.ExistsForFaculty(ctx, req.FacultyID, slot.SubjectID, req.ClassID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check teaching assignment")
	}
	if !assigned {
		return appErrors.Clone(appErrors.ErrForbidden, "only the subject's assigned faculty can clear this slot")
	}

	if err := s.slots.DeleteByKey(ctx, req.ClassID, req.Semester, req.DayOfWeek, req.Period); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "timetable slot is already empty")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to clear timetable slot")
	}
	s.logger.Info("timetable slot cleared",
		zap.String("class_id", req.ClassID),
		zap.String("semester", req.Semester),
		zap.Int("day", req.DayOfWeek),
		zap.Int("period", req.Period))
	return nil
}

// ClassWeek returns the class's weekly grid for a semester.
func (s *TimetableService) ClassWeek(ctx context.Context, classID, semester string) ([]models.TimetableEntry, error) {
	entries, err := s.slots.ListByClassSemester(ctx, classID, semester)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class timetable")
	}
	return entries, nil
}

// FacultyWeek returns a faculty's personal weekly schedule.
func (s *TimetableService) FacultyWeek(ctx context.Context, facultyID string) ([]models.TimetableEntry, error) {
	entries, err := s.slots.ListByFaculty(ctx, facultyID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load faculty timetable")
	}
	return entries, nil
}
