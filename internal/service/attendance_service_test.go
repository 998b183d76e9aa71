package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campuskit/academics-api/internal/models"
	appErrors "github.com/campuskit/academics-api/pkg/errors"
)

type attendanceRepoStub struct {
	rows     []models.AttendanceRow
	upserted []models.AttendanceRecord
}

func (s *attendanceRepoStub) BulkUpsert(ctx context.Context, records []models.AttendanceRecord) error {
	s.upserted = append(s.upserted, records...)
	return nil
}

func (s *attendanceRepoStub) ListByStudent(ctx context.Context, studentID string) ([]models.AttendanceRow, error) {
	return s.rows, nil
}

type assignmentCheckerStub struct {
	assigned bool
	calls    int
}

func (s *assignmentCheckerStub) ExistsForFaculty(ctx context.Context, facultyID, subjectID, classID string) (bool, error) {
	s.calls++
	return s.assigned, nil
}

func attendanceRow(subjectID, name, semester string, date time.Time, period int, present bool) models.AttendanceRow {
	return models.AttendanceRow{
		AttendanceRecord: models.AttendanceRecord{
			StudentID: "st1",
			SubjectID: subjectID,
			Date:      date,
			Period:    period,
			Present:   present,
		},
		SubjectName:     name,
		SubjectSemester: semester,
	}
}

func TestMarkAttendanceRejectsUnassignedFaculty(t *testing.T) {
	repo := &attendanceRepoStub{}
	checker := &assignmentCheckerStub{assigned: false}
	svc := NewAttendanceService(repo, checker, nil, zap.NewNop())

	err := svc.Mark(context.Background(), MarkAttendanceRequest{
		FacultyID: "f1", SubjectID: "s1", ClassID: "c1",
		Date: time.Now(), Period: 3,
		Entries: []AttendanceEntry{{StudentID: "st1", Present: true}},
	})

	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.upserted)
}

func TestMarkAttendanceStampsRecorder(t *testing.T) {
	repo := &attendanceRepoStub{}
	checker := &assignmentCheckerStub{assigned: true}
	svc := NewAttendanceService(repo, checker, nil, zap.NewNop())

	err := svc.Mark(context.Background(), MarkAttendanceRequest{
		FacultyID: "f1", SubjectID: "s1", ClassID: "c1",
		Date: time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC), Period: 3,
		Entries: []AttendanceEntry{
			{StudentID: "st1", Present: true},
			{StudentID: "st2", Present: false},
		},
	})

	require.NoError(t, err)
	require.Len(t, repo.upserted, 2)
	assert.Equal(t, "f1", repo.upserted[0].RecordedBy)
	assert.Equal(t, 3, repo.upserted[1].Period)
	assert.False(t, repo.upserted[1].Present)
}

func TestSubjectSummariesRoundHalfUp(t *testing.T) {
	day := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	rows := make([]models.AttendanceRow, 0, 8)
	// 1 of 8 present: 12.5% rounds up to 13.
	for i := 0; i < 8; i++ {
		rows = append(rows, attendanceRow("s1", "Databases", "2-1", day.AddDate(0, 0, i), 1, i == 0))
	}
	svc := NewAttendanceService(&attendanceRepoStub{rows: rows}, &assignmentCheckerStub{}, nil, zap.NewNop())

	summaries, err := svc.SubjectSummaries(context.Background(), "st1")

	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, 8, summaries[0].Total)
	assert.Equal(t, 1, summaries[0].Present)
	assert.Equal(t, 13, summaries[0].Percent)
	assert.Equal(t, "Databases", summaries[0].Label)
}

func TestSummariesEmptyStudent(t *testing.T) {
	svc := NewAttendanceService(&attendanceRepoStub{}, &assignmentCheckerStub{}, nil, zap.NewNop())

	summaries, err := svc.SubjectSummaries(context.Background(), "st1")

	require.NoError(t, err)
	assert.Empty(t, summaries)
}

func TestMonthlySummariesGroupByCalendarMonth(t *testing.T) {
	rows := []models.AttendanceRow{
		attendanceRow("s1", "Databases", "2-1", time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC), 1, true),
		attendanceRow("s1", "Databases", "2-1", time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), 1, true),
		attendanceRow("s2", "Networks", "2-1", time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC), 2, false),
	}
	svc := NewAttendanceService(&attendanceRepoStub{rows: rows}, &assignmentCheckerStub{}, nil, zap.NewNop())

	summaries, err := svc.MonthlySummaries(context.Background(), "st1")

	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, "2026-06", summaries[0].Key)
	assert.Equal(t, 100, summaries[0].Percent)
	assert.Equal(t, "2026-07", summaries[1].Key)
	assert.Equal(t, 2, summaries[1].Total)
	assert.Equal(t, 50, summaries[1].Percent)
}

func TestSemesterSummariesUseSubjectSemester(t *testing.T) {
	day := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	rows := []models.AttendanceRow{
		attendanceRow("s1", "Databases", "2-1", day, 1, true),
		attendanceRow("s2", "Maths", "1-2", day, 2, false),
	}
	svc := NewAttendanceService(&attendanceRepoStub{rows: rows}, &assignmentCheckerStub{}, nil, zap.NewNop())

	summaries, err := svc.SemesterSummaries(context.Background(), "st1")

	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, "1-2", summaries[0].Key)
	assert.Equal(t, "Semester 1-2", summaries[0].Label)
	assert.Equal(t, "2-1", summaries[1].Key)
}

func TestHistoryPivotsByDateAndPeriod(t *testing.T) {
	day1 := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 7, 2, 0, 0, 0, 0, time.UTC)
	rows := []models.AttendanceRow{
		attendanceRow("s1", "Databases", "2-1", day2, 1, true),
		attendanceRow("s1", "Databases", "2-1", day1, 1, true),
		attendanceRow("s2", "Networks", "2-1", day1, 4, false),
	}
	svc := NewAttendanceService(&attendanceRepoStub{rows: rows}, &assignmentCheckerStub{}, nil, zap.NewNop())

	history, err := svc.History(context.Background(), "st1")

	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "2026-07-01", history[0].Date)
	require.Contains(t, history[0].Periods, 1)
	require.Contains(t, history[0].Periods, 4)
	assert.Equal(t, "Networks", history[0].Periods[4].SubjectName)
	assert.False(t, history[0].Periods[4].Present)
	assert.NotContains(t, history[0].Periods, 2, "unmarked periods stay absent from the pivot")
	assert.Equal(t, "2026-07-02", history[1].Date)
}
