package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campuskit/academics-api/internal/models"
	appErrors "github.com/campuskit/academics-api/pkg/errors"
)

type timetableRepoStub struct {
	slot     *models.TimetableSlot
	upserted []*models.TimetableSlot
	deleted  int
}

func (s *timetableRepoStub) Upsert(ctx context.Context, slot *models.TimetableSlot) error {
	s.upserted = append(s.upserted, slot)
	return nil
}

func (s *timetableRepoStub) FindByKey(ctx context.Context, classID, semester string, day, period int) (*models.TimetableSlot, error) {
	if s.slot == nil {
		return nil, sql.ErrNoRows
	}
	return s.slot, nil
}

func (s *timetableRepoStub) DeleteByKey(ctx context.Context, classID, semester string, day, period int) error {
	if s.slot == nil {
		return sql.ErrNoRows
	}
	s.deleted++
	return nil
}

func (s *timetableRepoStub) ListByClassSemester(ctx context.Context, classID, semester string) ([]models.TimetableEntry, error) {
	return nil, nil
}

func (s *timetableRepoStub) ListByFaculty(ctx context.Context, facultyID string) ([]models.TimetableEntry, error) {
	return nil, nil
}

func TestSetSlotRejectsUnassignedFaculty(t *testing.T) {
	repo := &timetableRepoStub{}
	svc := NewTimetableService(repo, &assignmentCheckerStub{assigned: false}, nil, zap.NewNop())

	_, err := svc.SetSlot(context.Background(), SetSlotRequest{
		FacultyID: "f1", ClassID: "c1", Semester: "2-1",
		DayOfWeek: 2, Period: 4, SubjectID: "s1",
	})

	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.upserted)
}

func TestSetSlotUpserts(t *testing.T) {
	repo := &timetableRepoStub{}
	svc := NewTimetableService(repo, &assignmentCheckerStub{assigned: true}, nil, zap.NewNop())

	slot, err := svc.SetSlot(context.Background(), SetSlotRequest{
		FacultyID: "f1", ClassID: "c1", Semester: "2-1",
		DayOfWeek: 2, Period: 4, SubjectID: "s1",
	})

	require.NoError(t, err)
	require.Len(t, repo.upserted, 1)
	assert.Equal(t, "s1", slot.SubjectID)
	assert.Equal(t, 4, slot.Period)
}

func TestClearSlotRequiresOwningFaculty(t *testing.T) {
	repo := &timetableRepoStub{slot: &models.TimetableSlot{SubjectID: "s9"}}
	checker := &assignmentCheckerStub{assigned: false}
	svc := NewTimetableService(repo, checker, nil, zap.NewNop())

	err := svc.ClearSlot(context.Background(), ClearSlotRequest{
		FacultyID: "f1", ClassID: "c1", Semester: "2-1",
		DayOfWeek: 2, Period: 4,
	})

	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
	assert.Zero(t, repo.deleted)
}

func TestClearSlot(t *testing.T) {
	repo := &timetableRepoStub{slot: &models.TimetableSlot{SubjectID: "s1"}}
	svc := NewTimetableService(repo, &assignmentCheckerStub{assigned: true}, nil, zap.NewNop())

	err := svc.ClearSlot(context.Background(), ClearSlotRequest{
		FacultyID: "f1", ClassID: "c1", Semester: "2-1",
		DayOfWeek: 2, Period: 4,
	})

	require.NoError(t, err)
	assert.Equal(t, 1, repo.deleted)
}

func TestClearEmptySlotIsNotFound(t *testing.T) {
	svc := NewTimetableService(&timetableRepoStub{}, &assignmentCheckerStub{assigned: true}, nil, zap.NewNop())

	err := svc.ClearSlot(context.Background(), ClearSlotRequest{
		FacultyID: "f1", ClassID: "c1", Semester: "2-1",
		DayOfWeek: 2, Period: 4,
	})

	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
