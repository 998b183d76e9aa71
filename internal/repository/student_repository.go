package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/campuskit/academics-api/internal/models"
)

// StudentRepository persists students and their linked accounts.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs the repository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// CreateWithUser inserts the login account and the student row in one
// transaction so onboarding can never leave a half-created record.
func (r *StudentRepository) CreateWithUser(ctx context.Context, user *models.User, student *models.Student) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if student.ID == "" {
		student.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	student.UserID = user.ID
	student.CreatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	const userQuery = `INSERT INTO users (id, username, password_hash, role, must_change_password, active, created_at, updated_at)
        VALUES (:id, :username, :password_hash, :role, :must_change_password, :active, :created_at, :updated_at)`
	if _, err := tx.NamedExecContext(ctx, userQuery, user); err != nil {
		tx.Rollback() //nolint:errcheck
		return fmt.Errorf("create student account: %w", err)
	}
	const studentQuery = `INSERT INTO students (id, user_id, batch_id, class_id, register_no, full_name, current_semester, sgpa, cgpa, created_at)
        VALUES (:id, :user_id, :batch_id, :class_id, :register_no, :full_name, :current_semester, :sgpa, :cgpa, :created_at)`
	if _, err := tx.NamedExecContext(ctx, studentQuery, student); err != nil {
		tx.Rollback() //nolint:errcheck
		return fmt.Errorf("create student: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit student: %w", err)
	}
	return nil
}

// FindByID returns the student with the given id.
func (r *StudentRepository) FindByID(ctx context.Context, id string) (*models.Student, error) {
	const query = `SELECT id, user_id, batch_id, class_id, register_no, full_name, current_semester, sgpa, cgpa, created_at
        FROM students WHERE id = $1`
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, id); err != nil {
		return nil, err
	}
	return &student, nil
}

// FindByUserID returns the student linked to the given account.
func (r *StudentRepository) FindByUserID(ctx context.Context, userID string) (*models.Student, error) {
	const query = `SELECT id, user_id, batch_id, class_id, register_no, full_name, current_semester, sgpa, cgpa, created_at
        FROM students WHERE user_id = $1`
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, userID); err != nil {
		return nil, err
	}
	return &student, nil
}

// ListByClass returns the class roster ordered by register number.
func (r *StudentRepository) ListByClass(ctx context.Context, classID string) ([]models.Student, error) {
	const query = `SELECT id, user_id, batch_id, class_id, register_no, full_name, current_semester, sgpa, cgpa, created_at
        FROM students WHERE class_id = $1 ORDER BY register_no ASC`
	var students []models.Student
	if err := r.db.SelectContext(ctx, &students, query, classID); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

// CountByClass returns how many students currently reference the class.
func (r *StudentRepository) CountByClass(ctx context.Context, classID string) (int, error) {
	const query = `SELECT COUNT(*) FROM students WHERE class_id = $1`
	var count int
	if err := r.db.GetContext(ctx, &count, query, classID); err != nil {
		return 0, fmt.Errorf("count students: %w", err)
	}
	return count, nil
}

// UpdateGPA caches the derived GPA figures on the student row.
func (r *StudentRepository) UpdateGPA(ctx context.Context, id string, sgpa, cgpa float64) error {
	const query = `UPDATE students SET sgpa = $2, cgpa = $3 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, sgpa, cgpa); err != nil {
		return fmt.Errorf("update gpa: %w", err)
	}
	return nil
}
