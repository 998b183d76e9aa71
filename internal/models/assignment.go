package models

import "time"

// ClassTeacherAssignment appoints a faculty as class teacher of one
// (batch, class) pair. At most one assignment may exist per pair, and a
// faculty holds at most one post at a time.
type ClassTeacherAssignment struct {
	ID        string    `db:"id" json:"id"`
	FacultyID string    `db:"faculty_id" json:"faculty_id"`
	BatchID   string    `db:"batch_id" json:"batch_id"`
	ClassID   string    `db:"class_id" json:"class_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// ClassTeacherDetail joins the assignment with display names.
type ClassTeacherDetail struct {
	ClassTeacherAssignment
	FacultyName string `db:"faculty_name" json:"faculty_name"`
	BatchName   string `db:"batch_name" json:"batch_name"`
	ClassName   string `db:"class_name" json:"class_name"`
}

// FacultySubjectAssignment appoints the teaching faculty for a
// (subject, class) pair. At most one faculty per pair.
type FacultySubjectAssignment struct {
	ID        string    `db:"id" json:"id"`
	FacultyID string    `db:"faculty_id" json:"faculty_id"`
	SubjectID string    `db:"subject_id" json:"subject_id"`
	ClassID   string    `db:"class_id" json:"class_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// FacultySubjectDetail joins the assignment with display names.
type FacultySubjectDetail struct {
	FacultySubjectAssignment
	FacultyName string `db:"faculty_name" json:"faculty_name"`
	SubjectName string `db:"subject_name" json:"subject_name"`
	SubjectCode string `db:"subject_code" json:"subject_code"`
	ClassName   string `db:"class_name" json:"class_name"`
	Semester    string `db:"semester" json:"semester"`
}
