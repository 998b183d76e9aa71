package models

import "time"

// MarkComponent identifies one exam component of a subject.
type MarkComponent string

const (
	ComponentMid1             MarkComponent = "mid1"
	ComponentMid2             MarkComponent = "mid2"
	ComponentLabInternal      MarkComponent = "lab_internal"
	ComponentSemesterExternal MarkComponent = "semester_external"
	ComponentLabExternal      MarkComponent = "lab_external"
	ComponentAssignment       MarkComponent = "assignment"
)

// Valid returns true when the component is a supported value.
func (c MarkComponent) Valid() bool {
	switch c {
	case ComponentMid1, ComponentMid2, ComponentLabInternal,
		ComponentSemesterExternal, ComponentLabExternal, ComponentAssignment:
		return true
	default:
		return false
	}
}

// MarkRecord is one raw component score. One row per
// (student, subject, component).
type MarkRecord struct {
	ID        string        `db:"id" json:"id"`
	StudentID string        `db:"student_id" json:"student_id"`
	SubjectID string        `db:"subject_id" json:"subject_id"`
	Component MarkComponent `db:"component" json:"component"`
	Score     float64       `db:"score" json:"score"`
	CreatedAt time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt time.Time     `db:"updated_at" json:"updated_at"`
}

// MarkRow extends a record with subject metadata for result computation.
type MarkRow struct {
	MarkRecord
	SubjectName     string      `db:"subject_name" json:"subject_name"`
	SubjectCode     string      `db:"subject_code" json:"subject_code"`
	SubjectKind     SubjectKind `db:"subject_kind" json:"subject_kind"`
	SubjectCredits  float64     `db:"subject_credits" json:"subject_credits"`
	SubjectSemester string      `db:"subject_semester" json:"subject_semester"`
}

// SubjectResult is the certified aggregate for one (student, subject).
// Grade is always present, "F" when nothing is recorded.
type SubjectResult struct {
	SubjectID   string      `json:"subject_id"`
	SubjectName string      `json:"subject_name"`
	SubjectCode string      `json:"subject_code"`
	Kind        SubjectKind `json:"kind"`
	Semester    string      `json:"semester"`
	Credits     float64     `json:"credits"`
	Internal    int         `json:"internal"`
	External    int         `json:"external"`
	Total       int         `json:"total"`
	Grade       string      `json:"grade"`
}

// StudentResults groups a student's computed results with GPA figures.
type StudentResults struct {
	StudentID  string          `json:"student_id"`
	RegisterNo string          `json:"register_no"`
	Semester   string          `json:"semester,omitempty"`
	Subjects   []SubjectResult `json:"subjects"`
	SGPA       float64         `json:"sgpa"`
	CGPA       float64         `json:"cgpa"`
}
