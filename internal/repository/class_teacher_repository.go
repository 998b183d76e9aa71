package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/campuskit/academics-api/internal/models"
)

// ClassTeacherRepository persists class-teacher assignments.
type ClassTeacherRepository struct {
	db *sqlx.DB
}

// NewClassTeacherRepository constructs the repository.
func NewClassTeacherRepository(db *sqlx.DB) *ClassTeacherRepository {
	return &ClassTeacherRepository{db: db}
}

// FindByBatchClass returns the current holder of the (batch, class) post.
func (r *ClassTeacherRepository) FindByBatchClass(ctx context.Context, batchID, classID string) (*models.ClassTeacherDetail, error) {
	const query = `
SELECT cta.id, cta.faculty_id, cta.batch_id, cta.class_id, cta.created_at,
       f.full_name AS faculty_name, b.name AS batch_name, c.name AS class_name
FROM class_teacher_assignments cta
JOIN faculties f ON f.id = cta.faculty_id
JOIN batches b ON b.id = cta.batch_id
JOIN classes c ON c.id = cta.class_id
WHERE cta.batch_id = $1 AND cta.class_id = $2`
	var detail models.ClassTeacherDetail
	if err := r.db.GetContext(ctx, &detail, query, batchID, classID); err != nil {
		return nil, err
	}
	return &detail, nil
}

// Reassign vacates the faculty's previous class-teacher post and writes the
// new one in a single transaction. The unique (batch_id, class_id) constraint
// rejects a post already held by another faculty.
func (r *ClassTeacherRepository) Reassign(ctx context.Context, assignment *models.ClassTeacherAssignment) error {
	if assignment.ID == "" {
		assignment.ID = uuid.NewString()
	}
	if assignment.CreatedAt.IsZero() {
		assignment.CreatedAt = time.Now().UTC()
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	const vacate = `DELETE FROM class_teacher_assignments WHERE faculty_id = $1`
	if _, err := tx.ExecContext(ctx, vacate, assignment.FacultyID); err != nil {
		tx.Rollback() //nolint:errcheck
		return fmt.Errorf("vacate class teacher post: %w", err)
	}
	const insert = `INSERT INTO class_teacher_assignments (id, faculty_id, batch_id, class_id, created_at)
        VALUES (:id, :faculty_id, :batch_id, :class_id, :created_at)`
	if _, err := tx.NamedExecContext(ctx, insert, assignment); err != nil {
		tx.Rollback() //nolint:errcheck
		return fmt.Errorf("assign class teacher: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit class teacher assignment: %w", err)
	}
	return nil
}

// ListByBatch returns all class-teacher posts in a batch.
func (r *ClassTeacherRepository) ListByBatch(ctx context.Context, batchID string) ([]models.ClassTeacherDetail, error) {
	const query = `
SELECT cta.id, cta.faculty_id, cta.batch_id, cta.class_id, cta.created_at,
       f.full_name AS faculty_name, b.name AS batch_name, c.name AS class_name
FROM class_teacher_assignments cta
JOIN faculties f ON f.id = cta.faculty_id
JOIN batches b ON b.id = cta.batch_id
JOIN classes c ON c.id = cta.class_id
WHERE cta.batch_id = $1
ORDER BY c.name ASC`
	var details []models.ClassTeacherDetail
	if err := r.db.SelectContext(ctx, &details, query, batchID); err != nil {
		return nil, fmt.Errorf("list class teachers: %w", err)
	}
	return details, nil
}
