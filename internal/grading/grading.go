// Package grading is the single implementation of mark folding, grade
// derivation and GPA arithmetic. Every view that displays totals or grades
// (dashboards, class reports, exports) must go through this package so the
// displayed figures cannot drift.
package grading

import (
	"math"

	"github.com/campuskit/academics-api/internal/models"
)

// Pass floors. A subject is failed outright when its external component or
// aggregate total falls below these, regardless of the grade table.
const (
	TheoryExternalFloor = 25
	LabExternalFloor    = 35
	AggregateFloor      = 40
)

// Weights for the best-of-two mid exam policy on theory subjects.
const (
	bestMidWeight  = 0.8
	otherMidWeight = 0.2
)

// Components indexes raw scores by exam component. Missing components
// count as zero.
type Components map[models.MarkComponent]float64

// Score returns the component's score, zero when absent.
func (c Components) Score(component models.MarkComponent) float64 {
	return c[component]
}

// Result is the certified (internal, external, total, grade) tuple.
type Result struct {
	Internal int
	External int
	Total    int
	Grade    string
}

// Compute folds raw component scores into a Result under the subject kind's
// policy. Theory: internal = round(best_mid*0.8 + other_mid*0.2), external =
// semester exam. Lab: straight sums, no weighting.
func Compute(kind models.SubjectKind, marks Components) Result {
	var internal, external int
	switch kind {
	case models.SubjectLab:
		internal = roundHalfUp(marks.Score(models.ComponentLabInternal))
		external = roundHalfUp(marks.Score(models.ComponentLabExternal))
	default:
		m1 := marks.Score(models.ComponentMid1)
		m2 := marks.Score(models.ComponentMid2)
		best, other := m1, m2
		if m2 > m1 {
			best, other = m2, m1
		}
		internal = roundHalfUp(best*bestMidWeight + other*otherMidWeight)
		external = roundHalfUp(marks.Score(models.ComponentSemesterExternal))
	}

	total := internal + external
	return Result{
		Internal: internal,
		External: external,
		Total:    total,
		Grade:    grade(kind, external, total),
	}
}

// LetterGrade maps an aggregate total onto the grade table, first match
// wins top-down. It does not apply the pass floors; use Compute for the
// certified grade.
func LetterGrade(total int) string {
	switch {
	case total >= 90:
		return "O"
	case total >= 80:
		return "A+"
	case total >= 70:
		return "A"
	case total >= 60:
		return "B+"
	case total >= 50:
		return "B"
	case total >= 40:
		return "C"
	default:
		return "F"
	}
}

func grade(kind models.SubjectKind, external, total int) string {
	letter := LetterGrade(total)
	// Floors override the table even when it produced a passing grade.
	if kind == models.SubjectLab {
		if external < LabExternalFloor {
			return "F"
		}
	} else if external < TheoryExternalFloor {
		return "F"
	}
	if total < AggregateFloor {
		return "F"
	}
	return letter
}

// GradePoints maps a letter grade to its GPA contribution.
func GradePoints(letter string) float64 {
	switch letter {
	case "O":
		return 10
	case "A+":
		return 9
	case "A":
		return 8
	case "B+":
		return 7
	case "B":
		return 6
	case "C":
		return 5
	default:
		return 0
	}
}

// GPA computes the credit-weighted grade point average over the given
// results. Zero total credits reports 0, never NaN.
func GPA(results []models.SubjectResult) float64 {
	var points, credits float64
	for _, r := range results {
		points += GradePoints(r.Grade) * r.Credits
		credits += r.Credits
	}
	if credits == 0 {
		return 0
	}
	return math.Floor(points/credits*100+0.5) / 100
}

// Percent computes a round-half-up integer percentage; zero totals report 0.
func Percent(present, total int) int {
	if total <= 0 {
		return 0
	}
	return roundHalfUp(float64(present) / float64(total) * 100)
}

func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
