package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/campuskit/academics-api/internal/models"
)

// SubjectRepository persists subjects.
type SubjectRepository struct {
	db *sqlx.DB
}

// NewSubjectRepository constructs the repository.
func NewSubjectRepository(db *sqlx.DB) *SubjectRepository {
	return &SubjectRepository{db: db}
}

// Create inserts a new subject.
func (r *SubjectRepository) Create(ctx context.Context, subject *models.Subject) error {
	if subject.ID == "" {
		subject.ID = uuid.NewString()
	}
	if subject.CreatedAt.IsZero() {
		subject.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO subjects (id, batch_id, name, code, credits, kind, semester, created_at)
        VALUES (:id, :batch_id, :name, :code, :credits, :kind, :semester, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, subject); err != nil {
		return fmt.Errorf("create subject: %w", err)
	}
	return nil
}

// ListByBatch returns the batch's subjects, optionally scoped to a semester.
func (r *SubjectRepository) ListByBatch(ctx context.Context, batchID, semester string) ([]models.Subject, error) {
	query := `SELECT id, batch_id, name, code, credits, kind, semester, created_at FROM subjects WHERE batch_id = $1`
	args := []interface{}{batchID}
	if semester != "" {
		query += ` AND semester = $2`
		args = append(args, semester)
	}
	query += ` ORDER BY semester ASC, code ASC`
	var subjects []models.Subject
	if err := r.db.SelectContext(ctx, &subjects, query, args...); err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	return subjects, nil
}

// FindByID returns the subject with the given id.
func (r *SubjectRepository) FindByID(ctx context.Context, id string) (*models.Subject, error) {
	const query = `SELECT id, batch_id, name, code, credits, kind, semester, created_at FROM subjects WHERE id = $1`
	var subject models.Subject
	if err := r.db.GetContext(ctx, &subject, query, id); err != nil {
		return nil, err
	}
	return &subject, nil
}
