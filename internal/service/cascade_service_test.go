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

type cascadeExecutorStub struct {
	batchCalls   int
	classCalls   int
	subjectCalls []bool
	facultyCalls int
	studentCalls int
	err          error
}

func (s *cascadeExecutorStub) DeleteBatch(ctx context.Context, batchID string) error {
	s.batchCalls++
	return s.err
}

func (s *cascadeExecutorStub) DeleteClass(ctx context.Context, classID string) error {
	s.classCalls++
	return s.err
}

func (s *cascadeExecutorStub) DeleteSubject(ctx context.Context, subjectID string, includeHistory bool) error {
	s.subjectCalls = append(s.subjectCalls, includeHistory)
	return s.err
}

func (s *cascadeExecutorStub) DeleteFaculty(ctx context.Context, facultyID, userID string) error {
	s.facultyCalls++
	return s.err
}

func (s *cascadeExecutorStub) DeleteStudent(ctx context.Context, studentID, userID string) error {
	s.studentCalls++
	return s.err
}

type batchFinderStub struct{ batch *models.Batch }

func (s batchFinderStub) FindByID(ctx context.Context, id string) (*models.Batch, error) {
	if s.batch == nil {
		return nil, sql.ErrNoRows
	}
	return s.batch, nil
}

type classFinderStub struct{ class *models.Class }

func (s classFinderStub) FindByID(ctx context.Context, id string) (*models.Class, error) {
	if s.class == nil {
		return nil, sql.ErrNoRows
	}
	return s.class, nil
}

type subjectFinderStub struct{ subject *models.Subject }

func (s subjectFinderStub) FindByID(ctx context.Context, id string) (*models.Subject, error) {
	if s.subject == nil {
		return nil, sql.ErrNoRows
	}
	return s.subject, nil
}

type facultyFinderStub struct{ faculty *models.Faculty }

func (s facultyFinderStub) FindByID(ctx context.Context, id string) (*models.Faculty, error) {
	if s.faculty == nil {
		return nil, sql.ErrNoRows
	}
	return s.faculty, nil
}

type studentFinderStub struct {
	student *models.Student
	count   int
}

func (s studentFinderStub) FindByID(ctx context.Context, id string) (*models.Student, error) {
	if s.student == nil {
		return nil, sql.ErrNoRows
	}
	return s.student, nil
}

func (s studentFinderStub) CountByClass(ctx context.Context, classID string) (int, error) {
	return s.count, nil
}

type attendanceCounterStub struct {
	bySubject  int
	recordedBy int
}

func (s attendanceCounterStub) CountBySubject(ctx context.Context, subjectID string) (int, error) {
	return s.bySubject, nil
}

func (s attendanceCounterStub) CountRecordedBy(ctx context.Context, facultyID string) (int, error) {
	return s.recordedBy, nil
}

type markCounterStub struct{ bySubject int }

func (s markCounterStub) CountBySubject(ctx context.Context, subjectID string) (int, error) {
	return s.bySubject, nil
}

func newCascadeService(exec *cascadeExecutorStub, batches batchFinderStub, classes classFinderStub, subjects subjectFinderStub, faculties facultyFinderStub, students studentFinderStub, attendance attendanceCounterStub, marks markCounterStub) *CascadeService {
	return NewCascadeService(exec, batches, classes, subjects, faculties, students, attendance, marks, nil, zap.NewNop())
}

func TestDeleteClassBlockedByEnrolledStudents(t *testing.T) {
	exec := &cascadeExecutorStub{}
	svc := newCascadeService(exec,
		batchFinderStub{}, classFinderStub{class: &models.Class{ID: "c1", Name: "CSE-A"}},
		subjectFinderStub{}, facultyFinderStub{},
		studentFinderStub{count: 12}, attendanceCounterStub{}, markCounterStub{})

	outcome, err := svc.DeleteClass(context.Background(), "c1")

	require.Error(t, err)
	assert.Nil(t, outcome)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrPreconditionFailed.Code, appErr.Code)
	assert.Contains(t, appErr.Message, "12")
	assert.Zero(t, exec.classCalls, "no mutation may happen when the precondition fails")
}

func TestDeleteClassEmptySucceeds(t *testing.T) {
	exec := &cascadeExecutorStub{}
	svc := newCascadeService(exec,
		batchFinderStub{}, classFinderStub{class: &models.Class{ID: "c1"}},
		subjectFinderStub{}, facultyFinderStub{},
		studentFinderStub{count: 0}, attendanceCounterStub{}, markCounterStub{})

	outcome, err := svc.DeleteClass(context.Background(), "c1")

	require.NoError(t, err)
	assert.True(t, outcome.Completed())
	assert.Equal(t, 1, exec.classCalls)
}

func TestDeleteSubjectRequiresConfirmationWithHistory(t *testing.T) {
	exec := &cascadeExecutorStub{}
	svc := newCascadeService(exec,
		batchFinderStub{}, classFinderStub{},
		subjectFinderStub{subject: &models.Subject{ID: "s1", Code: "CS301"}},
		facultyFinderStub{}, studentFinderStub{},
		attendanceCounterStub{bySubject: 40}, markCounterStub{bySubject: 8})

	outcome, err := svc.DeleteSubject(context.Background(), "s1", false)

	require.NoError(t, err, "confirmation required is an outcome, not an error")
	assert.True(t, outcome.NeedsConfirmation())
	assert.Contains(t, outcome.Reason, "CS301")
	assert.Contains(t, outcome.Reason, "40")
	assert.Contains(t, outcome.Reason, "8")
	assert.Empty(t, exec.subjectCalls)
}

func TestDeleteSubjectForceRemovesHistory(t *testing.T) {
	exec := &cascadeExecutorStub{}
	svc := newCascadeService(exec,
		batchFinderStub{}, classFinderStub{},
		subjectFinderStub{subject: &models.Subject{ID: "s1", Code: "CS301"}},
		facultyFinderStub{}, studentFinderStub{},
		attendanceCounterStub{bySubject: 40}, markCounterStub{bySubject: 8})

	outcome, err := svc.DeleteSubject(context.Background(), "s1", true)

	require.NoError(t, err)
	assert.True(t, outcome.Completed())
	require.Len(t, exec.subjectCalls, 1)
	assert.True(t, exec.subjectCalls[0], "force must cascade into history")
}

func TestDeleteSubjectWithoutHistorySkipsConfirmation(t *testing.T) {
	exec := &cascadeExecutorStub{}
	svc := newCascadeService(exec,
		batchFinderStub{}, classFinderStub{},
		subjectFinderStub{subject: &models.Subject{ID: "s1"}},
		facultyFinderStub{}, studentFinderStub{},
		attendanceCounterStub{}, markCounterStub{})

	outcome, err := svc.DeleteSubject(context.Background(), "s1", false)

	require.NoError(t, err)
	assert.True(t, outcome.Completed())
	require.Len(t, exec.subjectCalls, 1)
	assert.False(t, exec.subjectCalls[0])
}

func TestDeleteFacultyWithRecordedAttendanceNeedsForce(t *testing.T) {
	exec := &cascadeExecutorStub{}
	svc := newCascadeService(exec,
		batchFinderStub{}, classFinderStub{}, subjectFinderStub{},
		facultyFinderStub{faculty: &models.Faculty{ID: "f1", UserID: "u1", FullName: "Dr. Rao"}},
		studentFinderStub{}, attendanceCounterStub{recordedBy: 120}, markCounterStub{})

	outcome, err := svc.DeleteFaculty(context.Background(), "f1", false)
	require.NoError(t, err)
	assert.True(t, outcome.NeedsConfirmation())
	assert.Contains(t, outcome.Reason, "Dr. Rao")
	assert.Contains(t, outcome.Reason, "deactivating")
	assert.Zero(t, exec.facultyCalls)

	outcome, err = svc.DeleteFaculty(context.Background(), "f1", true)
	require.NoError(t, err)
	assert.True(t, outcome.Completed())
	assert.Equal(t, 1, exec.facultyCalls)
}

func TestDeleteBatchAlwaysCascades(t *testing.T) {
	exec := &cascadeExecutorStub{}
	svc := newCascadeService(exec,
		batchFinderStub{batch: &models.Batch{ID: "b1"}}, classFinderStub{},
		subjectFinderStub{}, facultyFinderStub{}, studentFinderStub{},
		attendanceCounterStub{bySubject: 999}, markCounterStub{bySubject: 999})

	outcome, err := svc.DeleteBatch(context.Background(), "b1")

	require.NoError(t, err)
	assert.True(t, outcome.Completed())
	assert.Equal(t, 1, exec.batchCalls)
}

func TestDeleteStudentCascadesHistory(t *testing.T) {
	exec := &cascadeExecutorStub{}
	svc := newCascadeService(exec,
		batchFinderStub{}, classFinderStub{}, subjectFinderStub{}, facultyFinderStub{},
		studentFinderStub{student: &models.Student{ID: "st1", UserID: "u9"}},
		attendanceCounterStub{}, markCounterStub{})

	outcome, err := svc.DeleteStudent(context.Background(), "st1")

	require.NoError(t, err)
	assert.True(t, outcome.Completed())
	assert.Equal(t, 1, exec.studentCalls)
}

func TestDeleteMissingRootsReturnNotFound(t *testing.T) {
	exec := &cascadeExecutorStub{}
	svc := newCascadeService(exec,
		batchFinderStub{}, classFinderStub{}, subjectFinderStub{}, facultyFinderStub{},
		studentFinderStub{}, attendanceCounterStub{}, markCounterStub{})

	_, err := svc.DeleteBatch(context.Background(), "missing")
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)

	_, err = svc.DeleteSubject(context.Background(), "missing", false)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)

	_, err = svc.DeleteStudent(context.Background(), "missing")
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
