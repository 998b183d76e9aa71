package models

import "time"

// TimetableSlot maps one (class, semester, day, period) key to a subject.
// One slot per key; writes are upserts.
type TimetableSlot struct {
	ID        string    `db:"id" json:"id"`
	ClassID   string    `db:"class_id" json:"class_id"`
	Semester  string    `db:"semester" json:"semester"`
	DayOfWeek int       `db:"day_of_week" json:"day_of_week"`
	Period    int       `db:"period" json:"period"`
	SubjectID string    `db:"subject_id" json:"subject_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// TimetableEntry joins a slot with display metadata for weekly grids.
type TimetableEntry struct {
	TimetableSlot
	SubjectName string `db:"subject_name" json:"subject_name"`
	SubjectCode string `db:"subject_code" json:"subject_code"`
	ClassName   string `db:"class_name" json:"class_name"`
	FacultyName string `db:"faculty_name" json:"faculty_name"`
}
