package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/campuskit/academics-api/internal/models"
)

// AttendanceRepository persists per-period attendance records.
type AttendanceRepository struct {
	db *sqlx.DB
}

// NewAttendanceRepository constructs the repository.
func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// BulkUpsert writes one period's records for a class in a transaction.
// Re-marking the same (student, subject, date, period) overwrites presence.
func (r *AttendanceRepository) BulkUpsert(ctx context.Context, records []models.AttendanceRecord) error {
	if len(records) == 0 {
		return nil
	}
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	for i := range records {
		if records[i].ID == "" {
			records[i].ID = uuid.NewString()
		}
		if records[i].CreatedAt.IsZero() {
			records[i].CreatedAt = time.Now().UTC()
		}
		const query = `INSERT INTO attendance_records (id, student_id, subject_id, date, period, present, recorded_by, created_at)
            VALUES (:id, :student_id, :subject_id, :date, :period, :present, :recorded_by, :created_at)
            ON CONFLICT (student_id, subject_id, date, period)
            DO UPDATE SET present = EXCLUDED.present, recorded_by = EXCLUDED.recorded_by`
		if _, err := tx.NamedExecContext(ctx, query, records[i]); err != nil {
			tx.Rollback() //nolint:errcheck
			return fmt.Errorf("upsert attendance record: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit attendance: %w", err)
	}
	return nil
}

// ListByStudent returns all of a student's attendance rows joined with
// subject metadata, oldest first.
func (r *AttendanceRepository) ListByStudent(ctx context.Context, studentID string) ([]models.AttendanceRow, error) {
	const query = `
SELECT ar.id, ar.student_id, ar.subject_id, ar.date, ar.period, ar.present, ar.recorded_by, ar.created_at,
       s.name AS subject_name, s.code AS subject_code, s.kind AS subject_kind, s.semester AS subject_semester
FROM attendance_records ar
JOIN subjects s ON s.id = ar.subject_id
WHERE ar.student_id = $1
ORDER BY ar.date ASC, ar.period ASC`
	var rows []models.AttendanceRow
	if err := r.db.SelectContext(ctx, &rows, query, studentID); err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	return rows, nil
}

// CountBySubject returns how many attendance rows reference the subject.
func (r *AttendanceRepository) CountBySubject(ctx context.Context, subjectID string) (int, error) {
	const query = `SELECT COUNT(*) FROM attendance_records WHERE subject_id = $1`
	var count int
	if err := r.db.GetContext(ctx, &count, query, subjectID); err != nil {
		return 0, fmt.Errorf("count subject attendance: %w", err)
	}
	return count, nil
}

// CountRecordedBy returns how many attendance rows name the faculty as
// their author.
func (r *AttendanceRepository) CountRecordedBy(ctx context.Context, facultyID string) (int, error) {
	const query = `SELECT COUNT(*) FROM attendance_records WHERE recorded_by = $1`
	var count int
	if err := r.db.GetContext(ctx, &count, query, facultyID); err != nil {
		return 0, fmt.Errorf("count recorded attendance: %w", err)
	}
	return count, nil
}
