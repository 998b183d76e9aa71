package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/campuskit/academics-api/internal/models"
)

// TimetableRepository persists timetable slots.
type TimetableRepository struct {
	db *sqlx.DB
}

// NewTimetableRepository constructs the repository.
func NewTimetableRepository(db *sqlx.DB) *TimetableRepository {
	return &TimetableRepository{db: db}
}

// Upsert writes a slot; a prior slot on the same
// (class, semester, day, period) key is replaced.
func (r *TimetableRepository) Upsert(ctx context.Context, slot *models.TimetableSlot) error {
	if slot.ID == "" {
		slot.ID = uuid.NewString()
	}
	if slot.CreatedAt.IsZero() {
		slot.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO timetable_slots (id, class_id, semester, day_of_week, period, subject_id, created_at)
        VALUES (:id, :class_id, :semester, :day_of_week, :period, :subject_id, :created_at)
        ON CONFLICT (class_id, semester, day_of_week, period)
        DO UPDATE SET subject_id = EXCLUDED.subject_id`
	if _, err := r.db.NamedExecContext(ctx, query, slot); err != nil {
		return fmt.Errorf("upsert timetable slot: %w", err)
	}
	return nil
}

// FindByKey returns the slot occupying the key, if any.
func (r *TimetableRepository) FindByKey(ctx context.Context, classID, semester string, day, period int) (*models.TimetableSlot, error) {
	const query = `SELECT id, class_id, semester, day_of_week, period, subject_id, created_at
        FROM timetable_slots WHERE class_id = $1 AND semester = $2 AND day_of_week = $3 AND period = $4`
	var slot models.TimetableSlot
	if err := r.db.GetContext(ctx, &slot, query, classID, semester, day, period); err != nil {
		return nil, err
	}
	return &slot, nil
}

// DeleteByKey vacates the slot occupying the key.
func (r *TimetableRepository) DeleteByKey(ctx context.Context, classID, semester string, day, period int) error {
	const query = `DELETE FROM timetable_slots WHERE class_id = $1 AND semester = $2 AND day_of_week = $3 AND period = $4`
	result, err := r.db.ExecContext(ctx, query, classID, semester, day, period)
	if err != nil {
		return fmt.Errorf("delete timetable slot: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check deleted slot rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ListByClassSemester returns the class's weekly grid for a semester.
func (r *TimetableRepository) ListByClassSemester(ctx context.Context, classID, semester string) ([]models.TimetableEntry, error) {
	const query = `
SELECT ts.id, ts.class_id, ts.semester, ts.day_of_week, ts.period, ts.subject_id, ts.created_at,
       s.name AS subject_name, s.code AS subject_code, c.name AS class_name,
       COALESCE(f.full_name, '') AS faculty_name
FROM timetable_slots ts
JOIN subjects s ON s.id = ts.subject_id
JOIN classes c ON c.id = ts.class_id
LEFT JOIN faculty_subject_assignments fsa ON fsa.subject_id = ts.subject_id AND fsa.class_id = ts.class_id
LEFT JOIN faculties f ON f.id = fsa.faculty_id
WHERE ts.class_id = $1 AND ts.semester = $2
ORDER BY ts.day_of_week ASC, ts.period ASC`
	var entries []models.TimetableEntry
	if err := r.db.SelectContext(ctx, &entries, query, classID, semester); err != nil {
		return nil, fmt.Errorf("list class timetable: %w", err)
	}
	return entries, nil
}

// ListByFaculty returns the faculty's personal weekly schedule across all
// classes they teach.
func (r *TimetableRepository) ListByFaculty(ctx context.Context, facultyID string) ([]models.TimetableEntry, error) {
	const query = `
SELECT ts.id, ts.class_id, ts.semester, ts.day_of_week, ts.period, ts.subject_id, ts.created_at,
       s.name AS subject_name, s.code AS subject_code, c.name AS class_name,
       f.full_name AS faculty_name
FROM timetable_slots ts
JOIN faculty_subject_assignments fsa ON fsa.subject_id = ts.subject_id AND fsa.class_id = ts.class_id
JOIN faculties f ON f.id = fsa.faculty_id
JOIN subjects s ON s.id = ts.subject_id
JOIN classes c ON c.id = ts.class_id
WHERE fsa.faculty_id = $1
ORDER BY ts.day_of_week ASC, ts.period ASC`
	var entries []models.TimetableEntry
	if err := r.db.SelectContext(ctx, &entries, query, facultyID); err != nil {
		return nil, fmt.Errorf("list faculty timetable: %w", err)
	}
	return entries, nil
}
