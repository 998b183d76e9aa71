package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// CascadeRepository executes the per-root deletion closures. Each method
// runs in a single transaction: any failed statement rolls back the whole
// cascade, so a root entity is never left partially deleted.
//
// The closure is computed explicitly per root kind rather than delegated to
// ON DELETE CASCADE, because the same referencing relation is treated as
// removable configuration under one root and protected history under
// another.
type CascadeRepository struct {
	db *sqlx.DB
}

// NewCascadeRepository constructs the repository.
func NewCascadeRepository(db *sqlx.DB) *CascadeRepository {
	return &CascadeRepository{db: db}
}

// DeleteBatch removes the batch and every dependent record: assignments and
// timetable slots first, then subject history, subjects, student history,
// students with their accounts, classes, and finally the batch row.
func (r *CascadeRepository) DeleteBatch(ctx context.Context, batchID string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}

	var userIDs []string
	if err := tx.SelectContext(ctx, &userIDs, `SELECT user_id FROM students WHERE batch_id = $1`, batchID); err != nil {
		tx.Rollback() //nolint:errcheck
		return fmt.Errorf("collect batch student accounts: %w", err)
	}

	statements := []string{
		`DELETE FROM class_teacher_assignments WHERE batch_id = $1`,
		`DELETE FROM timetable_slots WHERE class_id IN (SELECT id FROM classes WHERE batch_id = $1)`,
		`DELETE FROM faculty_subject_assignments WHERE subject_id IN (SELECT id FROM subjects WHERE batch_id = $1)`,
		`DELETE FROM attendance_records WHERE subject_id IN (SELECT id FROM subjects WHERE batch_id = $1)`,
		`DELETE FROM mark_records WHERE subject_id IN (SELECT id FROM subjects WHERE batch_id = $1)`,
		`DELETE FROM attendance_records WHERE student_id IN (SELECT id FROM students WHERE batch_id = $1)`,
		`DELETE FROM mark_records WHERE student_id IN (SELECT id FROM students WHERE batch_id = $1)`,
		`DELETE FROM subjects WHERE batch_id = $1`,
		`DELETE FROM students WHERE batch_id = $1`,
		`DELETE FROM classes WHERE batch_id = $1`,
		`DELETE FROM batches WHERE id = $1`,
	}
	for _, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt, batchID); err != nil {
			tx.Rollback() //nolint:errcheck
			return fmt.Errorf("cascade batch delete: %w", err)
		}
	}

	for _, userID := range userIDs {
		if _, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, userID); err != nil {
			tx.Rollback() //nolint:errcheck
			return fmt.Errorf("delete batch student account: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit batch cascade: %w", err)
	}
	return nil
}

// DeleteClass removes the class's configuration dependents and the class
// row. The caller has already verified no student references the class.
func (r *CascadeRepository) DeleteClass(ctx context.Context, classID string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	statements := []string{
		`DELETE FROM timetable_slots WHERE class_id = $1`,
		`DELETE FROM faculty_subject_assignments WHERE class_id = $1`,
		`DELETE FROM class_teacher_assignments WHERE class_id = $1`,
		`DELETE FROM classes WHERE id = $1`,
	}
	for _, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt, classID); err != nil {
			tx.Rollback() //nolint:errcheck
			return fmt.Errorf("cascade class delete: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit class cascade: %w", err)
	}
	return nil
}

// DeleteSubject removes the subject's configuration dependents always, its
// attendance and mark history only when includeHistory is set, then the
// subject row.
func (r *CascadeRepository) DeleteSubject(ctx context.Context, subjectID string, includeHistory bool) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	statements := []string{
		`DELETE FROM timetable_slots WHERE subject_id = $1`,
		`DELETE FROM faculty_subject_assignments WHERE subject_id = $1`,
	}
	if includeHistory {
		statements = append(statements,
			`DELETE FROM attendance_records WHERE subject_id = $1`,
			`DELETE FROM mark_records WHERE subject_id = $1`,
		)
	}
	statements = append(statements, `DELETE FROM subjects WHERE id = $1`)
	for _, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt, subjectID); err != nil {
			tx.Rollback() //nolint:errcheck
			return fmt.Errorf("cascade subject delete: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit subject cascade: %w", err)
	}
	return nil
}

// DeleteFaculty removes the faculty's assignments, the faculty row and the
// linked account. Attendance authored by the faculty is left untouched; the
// caller gates this path behind an explicit confirmation when such rows
// exist.
func (r *CascadeRepository) DeleteFaculty(ctx context.Context, facultyID, userID string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	statements := []string{
		`DELETE FROM class_teacher_assignments WHERE faculty_id = $1`,
		`DELETE FROM faculty_subject_assignments WHERE faculty_id = $1`,
		`DELETE FROM faculties WHERE id = $1`,
	}
	for _, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt, facultyID); err != nil {
			tx.Rollback() //nolint:errcheck
			return fmt.Errorf("cascade faculty delete: %w", err)
		}
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, userID); err != nil {
		tx.Rollback() //nolint:errcheck
		return fmt.Errorf("delete faculty account: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit faculty cascade: %w", err)
	}
	return nil
}

// DeleteStudent removes the student's attendance and mark history, the
// student row and the linked account.
func (r *CascadeRepository) DeleteStudent(ctx context.Context, studentID, userID string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	statements := []string{
		`DELETE FROM attendance_records WHERE student_id = $1`,
		`DELETE FROM mark_records WHERE student_id = $1`,
		`DELETE FROM students WHERE id = $1`,
	}
	for _, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt, studentID); err != nil {
			tx.Rollback() //nolint:errcheck
			return fmt.Errorf("cascade student delete: %w", err)
		}
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, userID); err != nil {
		tx.Rollback() //nolint:errcheck
		return fmt.Errorf("delete student account: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit student cascade: %w", err)
	}
	return nil
}
