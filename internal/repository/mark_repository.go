package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/campuskit/academics-api/internal/models"
)

// MarkRepository persists raw exam component scores.
type MarkRepository struct {
	db *sqlx.DB
}

// NewMarkRepository constructs the repository.
func NewMarkRepository(db *sqlx.DB) *MarkRepository {
	return &MarkRepository{db: db}
}

// Upsert inserts or updates one component score.
func (r *MarkRepository) Upsert(ctx context.Context, mark *models.MarkRecord) error {
	if mark.ID == "" {
		mark.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if mark.CreatedAt.IsZero() {
		mark.CreatedAt = now
	}
	mark.UpdatedAt = now
	const query = `INSERT INTO mark_records (id, student_id, subject_id, component, score, created_at, updated_at)
        VALUES (:id, :student_id, :subject_id, :component, :score, :created_at, :updated_at)
        ON CONFLICT (student_id, subject_id, component)
        DO UPDATE SET score = EXCLUDED.score, updated_at = EXCLUDED.updated_at`
	if _, err := r.db.NamedExecContext(ctx, query, mark); err != nil {
		return fmt.Errorf("upsert mark: %w", err)
	}
	return nil
}

// BulkUpsert writes multiple component scores in one transaction.
func (r *MarkRepository) BulkUpsert(ctx context.Context, marks []models.MarkRecord) error {
	if len(marks) == 0 {
		return nil
	}
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	for i := range marks {
		if marks[i].ID == "" {
			marks[i].ID = uuid.NewString()
		}
		now := time.Now().UTC()
		if marks[i].CreatedAt.IsZero() {
			marks[i].CreatedAt = now
		}
		marks[i].UpdatedAt = now
		const query = `INSERT INTO mark_records (id, student_id, subject_id, component, score, created_at, updated_at)
            VALUES (:id, :student_id, :subject_id, :component, :score, :created_at, :updated_at)
            ON CONFLICT (student_id, subject_id, component)
            DO UPDATE SET score = EXCLUDED.score, updated_at = EXCLUDED.updated_at`
		if _, err := tx.NamedExecContext(ctx, query, marks[i]); err != nil {
			tx.Rollback() //nolint:errcheck
			return fmt.Errorf("bulk upsert mark: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit marks: %w", err)
	}
	return nil
}

// ListByStudent returns a student's raw marks joined with subject metadata.
func (r *MarkRepository) ListByStudent(ctx context.Context, studentID string) ([]models.MarkRow, error) {
	const query = `
SELECT mr.id, mr.student_id, mr.subject_id, mr.component, mr.score, mr.created_at, mr.updated_at,
       s.name AS subject_name, s.code AS subject_code, s.kind AS subject_kind,
       s.credits AS subject_credits, s.semester AS subject_semester
FROM mark_records mr
JOIN subjects s ON s.id = mr.subject_id
WHERE mr.student_id = $1
ORDER BY s.semester ASC, s.code ASC`
	var rows []models.MarkRow
	if err := r.db.SelectContext(ctx, &rows, query, studentID); err != nil {
		return nil, fmt.Errorf("list marks: %w", err)
	}
	return rows, nil
}

// ListByClassSubject returns all students' marks for one subject of a class.
func (r *MarkRepository) ListByClassSubject(ctx context.Context, classID, subjectID string) ([]models.MarkRow, error) {
	const query = `
SELECT mr.id, mr.student_id, mr.subject_id, mr.component, mr.score, mr.created_at, mr.updated_at,
       s.name AS subject_name, s.code AS subject_code, s.kind AS subject_kind,
       s.credits AS subject_credits, s.semester AS subject_semester
FROM mark_records mr
JOIN subjects s ON s.id = mr.subject_id
JOIN students st ON st.id = mr.student_id
WHERE st.class_id = $1 AND mr.subject_id = $2
ORDER BY st.register_no ASC`
	var rows []models.MarkRow
	if err := r.db.SelectContext(ctx, &rows, query, classID, subjectID); err != nil {
		return nil, fmt.Errorf("list class marks: %w", err)
	}
	return rows, nil
}

// CountBySubject returns how many mark rows reference the subject.
func (r *MarkRepository) CountBySubject(ctx context.Context, subjectID string) (int, error) {
	const query = `SELECT COUNT(*) FROM mark_records WHERE subject_id = $1`
	var count int
	if err := r.db.GetContext(ctx, &count, query, subjectID); err != nil {
		return 0, fmt.Errorf("count subject marks: %w", err)
	}
	return count, nil
}
