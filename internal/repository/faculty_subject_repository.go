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

// FacultySubjectRepository persists faculty-subject teaching assignments.
type FacultySubjectRepository struct {
	db *sqlx.DB
}

// NewFacultySubjectRepository constructs the repository.
func NewFacultySubjectRepository(db *sqlx.DB) *FacultySubjectRepository {
	return &FacultySubjectRepository{db: db}
}

// FindBySubjectClass returns the assignment currently holding the
// (subject, class) pair. excludeID skips one assignment so an in-place
// update does not conflict with itself; pass "" on create.
func (r *FacultySubjectRepository) FindBySubjectClass(ctx context.Context, subjectID, classID, excludeID string) (*models.FacultySubjectDetail, error) {
	query := `
SELECT fsa.id, fsa.faculty_id, fsa.subject_id, fsa.class_id, fsa.created_at,
       f.full_name AS faculty_name, s.name AS subject_name, s.code AS subject_code,
       s.semester AS semester, c.name AS class_name
FROM faculty_subject_assignments fsa
JOIN faculties f ON f.id = fsa.faculty_id
JOIN subjects s ON s.id = fsa.subject_id
JOIN classes c ON c.id = fsa.class_id
WHERE fsa.subject_id = $1 AND fsa.class_id = $2`
	args := []interface{}{subjectID, classID}
	if excludeID != "" {
		query += ` AND fsa.id <> $3`
		args = append(args, excludeID)
	}
	var detail models.FacultySubjectDetail
	if err := r.db.GetContext(ctx, &detail, query, args...); err != nil {
		return nil, err
	}
	return &detail, nil
}

// Create inserts a new assignment.
func (r *FacultySubjectRepository) Create(ctx context.Context, assignment *models.FacultySubjectAssignment) error {
	if assignment.ID == "" {
		assignment.ID = uuid.NewString()
	}
	if assignment.CreatedAt.IsZero() {
		assignment.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO faculty_subject_assignments (id, faculty_id, subject_id, class_id, created_at)
        VALUES (:id, :faculty_id, :subject_id, :class_id, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, assignment); err != nil {
		return fmt.Errorf("create faculty subject assignment: %w", err)
	}
	return nil
}

// Update repoints an existing assignment.
func (r *FacultySubjectRepository) Update(ctx context.Context, assignment *models.FacultySubjectAssignment) error {
	const query = `UPDATE faculty_subject_assignments SET faculty_id = $2, subject_id = $3, class_id = $4 WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, assignment.ID, assignment.FacultyID, assignment.SubjectID, assignment.ClassID)
	if err != nil {
		return fmt.Errorf("update faculty subject assignment: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check updated assignment rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ExistsForFaculty reports whether the faculty currently teaches the
// (subject, class) pair. Timetable writes are gated on this.
func (r *FacultySubjectRepository) ExistsForFaculty(ctx context.Context, facultyID, subjectID, classID string) (bool, error) {
	const query = `SELECT 1 FROM faculty_subject_assignments WHERE faculty_id = $1 AND subject_id = $2 AND class_id = $3 LIMIT 1`
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, facultyID, subjectID, classID); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check faculty subject assignment: %w", err)
	}
	return true, nil
}

// ListByFaculty returns all subjects the faculty teaches.
func (r *FacultySubjectRepository) ListByFaculty(ctx context.Context, facultyID string) ([]models.FacultySubjectDetail, error) {
	const query = `
SELECT fsa.id, fsa.faculty_id, fsa.subject_id, fsa.class_id, fsa.created_at,
       f.full_name AS faculty_name, s.name AS subject_name, s.code AS subject_code,
       s.semester AS semester, c.name AS class_name
FROM faculty_subject_assignments fsa
JOIN faculties f ON f.id = fsa.faculty_id
JOIN subjects s ON s.id = fsa.subject_id
JOIN classes c ON c.id = fsa.class_id
WHERE fsa.faculty_id = $1
ORDER BY s.semester ASC, s.code ASC`
	var details []models.FacultySubjectDetail
	if err := r.db.SelectContext(ctx, &details, query, facultyID); err != nil {
		return nil, fmt.Errorf("list faculty subjects: %w", err)
	}
	return details, nil
}

// ListByClass returns all teaching assignments for a class.
func (r *FacultySubjectRepository) ListByClass(ctx context.Context, classID string) ([]models.FacultySubjectDetail, error) {
	const query = `
SELECT fsa.id, fsa.faculty_id, fsa.subject_id, fsa.class_id, fsa.created_at,
       f.full_name AS faculty_name, s.name AS subject_name, s.code AS subject_code,
       s.semester AS semester, c.name AS class_name
FROM faculty_subject_assignments fsa
JOIN faculties f ON f.id = fsa.faculty_id
JOIN subjects s ON s.id = fsa.subject_id
JOIN classes c ON c.id = fsa.class_id
WHERE fsa.class_id = $1
ORDER BY s.semester ASC, s.code ASC`
	var details []models.FacultySubjectDetail
	if err := r.db.SelectContext(ctx, &details, query, classID); err != nil {
		return nil, fmt.Errorf("list class assignments: %w", err)
	}
	return details, nil
}
