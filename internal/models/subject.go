package models

import "time"

// SubjectKind distinguishes theory courses from lab courses.
type SubjectKind string

const (
	SubjectTheory SubjectKind = "theory"
	SubjectLab    SubjectKind = "lab"
)

// Valid returns true when the kind is a supported value.
func (k SubjectKind) Valid() bool {
	return k == SubjectTheory || k == SubjectLab
}

// Subject is a course offered within a batch, scoped to one semester label.
type Subject struct {
	ID        string      `db:"id" json:"id"`
	BatchID   string      `db:"batch_id" json:"batch_id"`
	Name      string      `db:"name" json:"name"`
	Code      string      `db:"code" json:"code"`
	Credits   float64     `db:"credits" json:"credits"`
	Kind      SubjectKind `db:"kind" json:"kind"`
	Semester  string      `db:"semester" json:"semester"`
	CreatedAt time.Time   `db:"created_at" json:"created_at"`
}
