package models

import "time"

// PeriodsPerDay is the number of teaching periods in a working day.
const PeriodsPerDay = 7

// AttendanceRecord is one period's presence entry for a student.
// Rows are immutable once written; corrections happen through re-marking
// the same (student, subject, date, period) key.
type AttendanceRecord struct {
	ID         string    `db:"id" json:"id"`
	StudentID  string    `db:"student_id" json:"student_id"`
	SubjectID  string    `db:"subject_id" json:"subject_id"`
	Date       time.Time `db:"date" json:"date"`
	Period     int       `db:"period" json:"period"`
	Present    bool      `db:"present" json:"present"`
	RecordedBy string    `db:"recorded_by" json:"recorded_by"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// AttendanceRow extends a record with subject metadata used by the
// aggregation engine.
type AttendanceRow struct {
	AttendanceRecord
	SubjectName     string      `db:"subject_name" json:"subject_name"`
	SubjectCode     string      `db:"subject_code" json:"subject_code"`
	SubjectKind     SubjectKind `db:"subject_kind" json:"subject_kind"`
	SubjectSemester string      `db:"subject_semester" json:"subject_semester"`
}

// AttendanceSummary is the per-group aggregate. Percent is always present,
// 0 for empty groups.
type AttendanceSummary struct {
	Key     string `json:"key"`
	Label   string `json:"label,omitempty"`
	Total   int    `json:"total"`
	Present int    `json:"present"`
	Percent int    `json:"percent"`
}

// AttendanceCell is one (date, period) entry in the history pivot.
type AttendanceCell struct {
	SubjectName string `json:"subject_name"`
	Present     bool   `json:"present"`
}

// AttendanceDayRow is one calendar date in the history pivot, with one
// optional cell per period 1..PeriodsPerDay.
type AttendanceDayRow struct {
	Date    string                  `json:"date"`
	Periods map[int]*AttendanceCell `json:"periods"`
}
