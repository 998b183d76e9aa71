package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/campuskit/academics-api/internal/models"
)

// FacultyRepository persists faculty members and their linked accounts.
type FacultyRepository struct {
	db *sqlx.DB
}

// NewFacultyRepository constructs the repository.
func NewFacultyRepository(db *sqlx.DB) *FacultyRepository {
	return &FacultyRepository{db: db}
}

// CreateWithUser inserts the login account and the faculty row in one
// transaction.
func (r *FacultyRepository) CreateWithUser(ctx context.Context, user *models.User, faculty *models.Faculty) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if faculty.ID == "" {
		faculty.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	faculty.UserID = user.ID
	faculty.CreatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	const userQuery = `INSERT INTO users (id, username, password_hash, role, must_change_password, active, created_at, updated_at)
        VALUES (:id, :username, :password_hash, :role, :must_change_password, :active, :created_at, :updated_at)`
	if _, err := tx.NamedExecContext(ctx, userQuery, user); err != nil {
		tx.Rollback() //nolint:errcheck
		return fmt.Errorf("create faculty account: %w", err)
	}
	const facultyQuery = `INSERT INTO faculties (id, user_id, employee_no, full_name, designation, department, created_at)
        VALUES (:id, :user_id, :employee_no, :full_name, :designation, :department, :created_at)`
	if _, err := tx.NamedExecContext(ctx, facultyQuery, faculty); err != nil {
		tx.Rollback() //nolint:errcheck
		return fmt.Errorf("create faculty: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit faculty: %w", err)
	}
	return nil
}

// FindByID returns the faculty with the given id.
func (r *FacultyRepository) FindByID(ctx context.Context, id string) (*models.Faculty, error) {
	const query = `SELECT id, user_id, employee_no, full_name, designation, department, created_at
        FROM faculties WHERE id = $1`
	var faculty models.Faculty
	if err := r.db.GetContext(ctx, &faculty, query, id); err != nil {
		return nil, err
	}
	return &faculty, nil
}

// FindByUserID returns the faculty linked to the given account.
func (r *FacultyRepository) FindByUserID(ctx context.Context, userID string) (*models.Faculty, error) {
	const query = `SELECT id, user_id, employee_no, full_name, designation, department, created_at
        FROM faculties WHERE user_id = $1`
	var faculty models.Faculty
	if err := r.db.GetContext(ctx, &faculty, query, userID); err != nil {
		return nil, err
	}
	return &faculty, nil
}

// List returns all faculty members ordered by name.
func (r *FacultyRepository) List(ctx context.Context) ([]models.Faculty, error) {
	const query = `SELECT id, user_id, employee_no, full_name, designation, department, created_at
        FROM faculties ORDER BY full_name ASC`
	var faculties []models.Faculty
	if err := r.db.SelectContext(ctx, &faculties, query); err != nil {
		return nil, fmt.Errorf("list faculties: %w", err)
	}
	return faculties, nil
}
