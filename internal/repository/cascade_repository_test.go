package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCascadeRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestCascadeRepositoryDeleteClass(t *testing.T) {
	db, mock, cleanup := newCascadeRepoMock(t)
	defer cleanup()
	repo := NewCascadeRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM timetable_slots")).
		WithArgs("class-1").WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM faculty_subject_assignments")).
		WithArgs("class-1").WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM class_teacher_assignments")).
		WithArgs("class-1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM classes")).
		WithArgs("class-1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.DeleteClass(context.Background(), "class-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCascadeRepositoryDeleteClassRollsBackOnFailure(t *testing.T) {
	db, mock, cleanup := newCascadeRepoMock(t)
	defer cleanup()
	repo := NewCascadeRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM timetable_slots")).
		WithArgs("class-1").WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	err := repo.DeleteClass(context.Background(), "class-1")
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCascadeRepositoryDeleteSubjectKeepsHistory(t *testing.T) {
	db, mock, cleanup := newCascadeRepoMock(t)
	defer cleanup()
	repo := NewCascadeRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM timetable_slots")).
		WithArgs("sub-1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM faculty_subject_assignments")).
		WithArgs("sub-1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM subjects")).
		WithArgs("sub-1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.DeleteSubject(context.Background(), "sub-1", false))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCascadeRepositoryDeleteSubjectWithHistory(t *testing.T) {
	db, mock, cleanup := newCascadeRepoMock(t)
	defer cleanup()
	repo := NewCascadeRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM timetable_slots")).
		WithArgs("sub-1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM faculty_subject_assignments")).
		WithArgs("sub-1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM attendance_records")).
		WithArgs("sub-1").WillReturnResult(sqlmock.NewResult(0, 40))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM mark_records")).
		WithArgs("sub-1").WillReturnResult(sqlmock.NewResult(0, 8))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM subjects")).
		WithArgs("sub-1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.DeleteSubject(context.Background(), "sub-1", true))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCascadeRepositoryDeleteFaculty(t *testing.T) {
	db, mock, cleanup := newCascadeRepoMock(t)
	defer cleanup()
	repo := NewCascadeRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM class_teacher_assignments")).
		WithArgs("fac-1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM faculty_subject_assignments")).
		WithArgs("fac-1").WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM faculties")).
		WithArgs("fac-1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM users")).
		WithArgs("user-1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.DeleteFaculty(context.Background(), "fac-1", "user-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCascadeRepositoryDeleteStudent(t *testing.T) {
	db, mock, cleanup := newCascadeRepoMock(t)
	defer cleanup()
	repo := NewCascadeRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM attendance_records")).
		WithArgs("st-1").WillReturnResult(sqlmock.NewResult(0, 120))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM mark_records")).
		WithArgs("st-1").WillReturnResult(sqlmock.NewResult(0, 15))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM students")).
		WithArgs("st-1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM users")).
		WithArgs("user-1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.DeleteStudent(context.Background(), "st-1", "user-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCascadeRepositoryDeleteBatch(t *testing.T) {
	db, mock, cleanup := newCascadeRepoMock(t)
	defer cleanup()
	repo := NewCascadeRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT user_id FROM students")).
		WithArgs("batch-1").
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow("user-1").AddRow("user-2"))
	for i := 0; i < 11; i++ {
		mock.ExpectExec("DELETE FROM").
			WithArgs("batch-1").WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM users")).
		WithArgs("user-1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM users")).
		WithArgs("user-2").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.DeleteBatch(context.Background(), "batch-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
