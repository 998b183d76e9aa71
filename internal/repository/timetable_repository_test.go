package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuskit/academics-api/internal/models"
)

func newTimetableRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestTimetableRepositoryUpsert(t *testing.T) {
	db, mock, cleanup := newTimetableRepoMock(t)
	defer cleanup()
	repo := NewTimetableRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO timetable_slots")).
		WithArgs(sqlmock.AnyArg(), "class-1", "2-1", 2, 4, "sub-1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	slot := &models.TimetableSlot{
		ClassID:   "class-1",
		Semester:  "2-1",
		DayOfWeek: 2,
		Period:    4,
		SubjectID: "sub-1",
	}
	require.NoError(t, repo.Upsert(context.Background(), slot))
	assert.NotEmpty(t, slot.ID, "generated id is written back")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimetableRepositoryFindByKey(t *testing.T) {
	db, mock, cleanup := newTimetableRepoMock(t)
	defer cleanup()
	repo := NewTimetableRepository(db)

	rows := sqlmock.NewRows([]string{"id", "class_id", "semester", "day_of_week", "period", "subject_id", "created_at"}).
		AddRow("slot-1", "class-1", "2-1", 2, 4, "sub-1", time.Now())
	mock.ExpectQuery("SELECT id, class_id, semester, day_of_week, period, subject_id, created_at").
		WithArgs("class-1", "2-1", 2, 4).
		WillReturnRows(rows)

	slot, err := repo.FindByKey(context.Background(), "class-1", "2-1", 2, 4)
	require.NoError(t, err)
	assert.Equal(t, "sub-1", slot.SubjectID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimetableRepositoryDeleteByKey(t *testing.T) {
	db, mock, cleanup := newTimetableRepoMock(t)
	defer cleanup()
	repo := NewTimetableRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM timetable_slots")).
		WithArgs("class-1", "2-1", 2, 4).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.DeleteByKey(context.Background(), "class-1", "2-1", 2, 4))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimetableRepositoryDeleteByKeyEmptySlot(t *testing.T) {
	db, mock, cleanup := newTimetableRepoMock(t)
	defer cleanup()
	repo := NewTimetableRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM timetable_slots")).
		WithArgs("class-1", "2-1", 2, 4).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DeleteByKey(context.Background(), "class-1", "2-1", 2, 4)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
