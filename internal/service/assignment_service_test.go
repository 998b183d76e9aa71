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

type classTeacherRepoStub struct {
	holder    *models.ClassTeacherDetail
	reassigns []*models.ClassTeacherAssignment
}

func (s *classTeacherRepoStub) FindByBatchClass(ctx context.Context, batchID, classID string) (*models.ClassTeacherDetail, error) {
	if s.holder == nil {
		return nil, sql.ErrNoRows
	}
	return s.holder, nil
}

func (s *classTeacherRepoStub) Reassign(ctx context.Context, assignment *models.ClassTeacherAssignment) error {
	s.reassigns = append(s.reassigns, assignment)
	return nil
}

func (s *classTeacherRepoStub) ListByBatch(ctx context.Context, batchID string) ([]models.ClassTeacherDetail, error) {
	return nil, nil
}

type facultySubjectRepoStub struct {
	holder     *models.FacultySubjectDetail
	excludeIDs []string
	created    []*models.FacultySubjectAssignment
	updated    []*models.FacultySubjectAssignment
	updateErr  error
}

func (s *facultySubjectRepoStub) FindBySubjectClass(ctx context.Context, subjectID, classID, excludeID string) (*models.FacultySubjectDetail, error) {
	s.excludeIDs = append(s.excludeIDs, excludeID)
	if s.holder == nil || (excludeID != "" && s.holder.ID == excludeID) {
		return nil, sql.ErrNoRows
	}
	return s.holder, nil
}

func (s *facultySubjectRepoStub) Create(ctx context.Context, assignment *models.FacultySubjectAssignment) error {
	s.created = append(s.created, assignment)
	return nil
}

func (s *facultySubjectRepoStub) Update(ctx context.Context, assignment *models.FacultySubjectAssignment) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.updated = append(s.updated, assignment)
	return nil
}

func (s *facultySubjectRepoStub) ListByFaculty(ctx context.Context, facultyID string) ([]models.FacultySubjectDetail, error) {
	return nil, nil
}

func (s *facultySubjectRepoStub) ListByClass(ctx context.Context, classID string) ([]models.FacultySubjectDetail, error) {
	return nil, nil
}

func TestAssignClassTeacherConflictNamesHolder(t *testing.T) {
	repo := &classTeacherRepoStub{holder: &models.ClassTeacherDetail{
		ClassTeacherAssignment: models.ClassTeacherAssignment{FacultyID: "f2"},
		FacultyName:            "Prof. Iyer",
		ClassName:              "CSE-B",
	}}
	svc := NewAssignmentService(repo, &facultySubjectRepoStub{}, nil, zap.NewNop())

	_, err := svc.AssignClassTeacher(context.Background(), AssignClassTeacherRequest{
		FacultyID: "f1", BatchID: "b1", ClassID: "c1",
	})

	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
	assert.Contains(t, appErr.Message, "Prof. Iyer")
	assert.Contains(t, appErr.Message, "CSE-B")
	assert.Empty(t, repo.reassigns)
}

func TestAssignClassTeacherSameFacultyIsIdempotent(t *testing.T) {
	repo := &classTeacherRepoStub{holder: &models.ClassTeacherDetail{
		ClassTeacherAssignment: models.ClassTeacherAssignment{FacultyID: "f1"},
	}}
	svc := NewAssignmentService(repo, &facultySubjectRepoStub{}, nil, zap.NewNop())

	assignment, err := svc.AssignClassTeacher(context.Background(), AssignClassTeacherRequest{
		FacultyID: "f1", BatchID: "b1", ClassID: "c1",
	})

	require.NoError(t, err)
	assert.Equal(t, "f1", assignment.FacultyID)
	assert.Len(t, repo.reassigns, 1)
}

func TestAssignClassTeacherVacantPost(t *testing.T) {
	repo := &classTeacherRepoStub{}
	svc := NewAssignmentService(repo, &facultySubjectRepoStub{}, nil, zap.NewNop())

	_, err := svc.AssignClassTeacher(context.Background(), AssignClassTeacherRequest{
		FacultyID: "f1", BatchID: "b1", ClassID: "c1",
	})

	require.NoError(t, err)
	require.Len(t, repo.reassigns, 1)
	assert.Equal(t, "c1", repo.reassigns[0].ClassID)
}

func TestAssignFacultySubjectConflict(t *testing.T) {
	repo := &facultySubjectRepoStub{holder: &models.FacultySubjectDetail{
		FacultySubjectAssignment: models.FacultySubjectAssignment{ID: "a1", FacultyID: "f2"},
		FacultyName:              "Dr. Khan",
		SubjectName:              "Databases",
		ClassName:                "CSE-A",
	}}
	svc := NewAssignmentService(&classTeacherRepoStub{}, repo, nil, zap.NewNop())

	_, err := svc.AssignFacultySubject(context.Background(), AssignFacultySubjectRequest{
		FacultyID: "f1", SubjectID: "s1", ClassID: "c1",
	})

	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
	assert.Contains(t, appErr.Message, "Dr. Khan")
	assert.Contains(t, appErr.Message, "Databases")
	assert.Empty(t, repo.created)
}

func TestUpdateFacultySubjectExcludesOwnRow(t *testing.T) {
	repo := &facultySubjectRepoStub{holder: &models.FacultySubjectDetail{
		FacultySubjectAssignment: models.FacultySubjectAssignment{ID: "a1", FacultyID: "f1"},
	}}
	svc := NewAssignmentService(&classTeacherRepoStub{}, repo, nil, zap.NewNop())

	// Changing a1's faculty keeps the same (subject, class): the row found
	// by the uniqueness probe is a1 itself and must not count as a conflict.
	assignment, err := svc.UpdateFacultySubject(context.Background(), "a1", AssignFacultySubjectRequest{
		FacultyID: "f3", SubjectID: "s1", ClassID: "c1",
	})

	require.NoError(t, err)
	assert.Equal(t, "f3", assignment.FacultyID)
	require.Len(t, repo.excludeIDs, 1)
	assert.Equal(t, "a1", repo.excludeIDs[0])
	assert.Len(t, repo.updated, 1)
}

func TestUpdateFacultySubjectMissingRow(t *testing.T) {
	repo := &facultySubjectRepoStub{updateErr: sql.ErrNoRows}
	svc := NewAssignmentService(&classTeacherRepoStub{}, repo, nil, zap.NewNop())

	_, err := svc.UpdateFacultySubject(context.Background(), "missing", AssignFacultySubjectRequest{
		FacultyID: "f1", SubjectID: "s1", ClassID: "c1",
	})

	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
