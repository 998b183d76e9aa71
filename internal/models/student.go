package models

import "time"

// Student links an account to a batch, class and register number.
type Student struct {
	ID              string    `db:"id" json:"id"`
	UserID          string    `db:"user_id" json:"user_id"`
	BatchID         string    `db:"batch_id" json:"batch_id"`
	ClassID         string    `db:"class_id" json:"class_id"`
	RegisterNo      string    `db:"register_no" json:"register_no"`
	FullName        string    `db:"full_name" json:"full_name"`
	CurrentSemester string    `db:"current_semester" json:"current_semester"`
	SGPA            float64   `db:"sgpa" json:"sgpa"`
	CGPA            float64   `db:"cgpa" json:"cgpa"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

// Faculty links an account to an employee record.
type Faculty struct {
	ID          string    `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"user_id"`
	EmployeeNo  string    `db:"employee_no" json:"employee_no"`
	FullName    string    `db:"full_name" json:"full_name"`
	Designation string    `db:"designation" json:"designation"`
	Department  string    `db:"department" json:"department"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
