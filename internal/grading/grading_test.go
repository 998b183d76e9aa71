package grading

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuskit/academics-api/internal/models"
)

func TestComputeTheoryWeightedBestOfTwo(t *testing.T) {
	res := Compute(models.SubjectTheory, Components{
		models.ComponentMid1:             24,
		models.ComponentMid2:             18,
		models.ComponentSemesterExternal: 30,
	})

	// round(24*0.8 + 18*0.2) = round(22.8) = 23.
	assert.Equal(t, 23, res.Internal)
	assert.Equal(t, 30, res.External)
	assert.Equal(t, 53, res.Total)
	assert.Equal(t, "B", res.Grade)
}

func TestComputeTheoryMidSymmetry(t *testing.T) {
	for m1 := 0.0; m1 <= 30; m1 += 3 {
		for m2 := 0.0; m2 <= 30; m2 += 3 {
			a := Compute(models.SubjectTheory, Components{
				models.ComponentMid1:             m1,
				models.ComponentMid2:             m2,
				models.ComponentSemesterExternal: 40,
			})
			b := Compute(models.SubjectTheory, Components{
				models.ComponentMid1:             m2,
				models.ComponentMid2:             m1,
				models.ComponentSemesterExternal: 40,
			})
			require.Equal(t, a, b, "internal must be symmetric in mid1/mid2 (%v, %v)", m1, m2)
		}
	}
}

func TestComputeMissingComponentsDefaultToZero(t *testing.T) {
	res := Compute(models.SubjectTheory, Components{})
	assert.Equal(t, 0, res.Internal)
	assert.Equal(t, 0, res.External)
	assert.Equal(t, 0, res.Total)
	assert.Equal(t, "F", res.Grade)
}

func TestComputeLabSimpleSum(t *testing.T) {
	res := Compute(models.SubjectLab, Components{
		models.ComponentLabInternal: 28,
		models.ComponentLabExternal: 40,
	})
	assert.Equal(t, 28, res.Internal)
	assert.Equal(t, 40, res.External)
	assert.Equal(t, 68, res.Total)
	assert.Equal(t, "B+", res.Grade)
}

func TestLabExternalFloorForcesFail(t *testing.T) {
	// total 48 passes the table but external 20 < 35 forces F.
	res := Compute(models.SubjectLab, Components{
		models.ComponentLabInternal: 28,
		models.ComponentLabExternal: 20,
	})
	assert.Equal(t, 48, res.Total)
	assert.Equal(t, "F", res.Grade)
}

func TestTheoryExternalFloorForcesFail(t *testing.T) {
	res := Compute(models.SubjectTheory, Components{
		models.ComponentMid1:             30,
		models.ComponentMid2:             30,
		models.ComponentSemesterExternal: 20,
	})
	assert.GreaterOrEqual(t, res.Total, AggregateFloor)
	assert.Equal(t, "F", res.Grade)
}

func TestAggregateFloorForcesFail(t *testing.T) {
	for _, kind := range []models.SubjectKind{models.SubjectTheory, models.SubjectLab} {
		res := Compute(kind, Components{
			models.ComponentMid1:             5,
			models.ComponentMid2:             3,
			models.ComponentSemesterExternal: 30,
			models.ComponentLabInternal:      2,
			models.ComponentLabExternal:      36,
		})
		if res.Total < AggregateFloor {
			assert.Equal(t, "F", res.Grade, "kind %s total %d", kind, res.Total)
		}
	}
}

func TestLetterGradeTable(t *testing.T) {
	cases := []struct {
		total int
		want  string
	}{
		{100, "O"}, {90, "O"}, {89, "A+"}, {80, "A+"}, {79, "A"}, {70, "A"},
		{69, "B+"}, {60, "B+"}, {59, "B"}, {50, "B"}, {49, "C"}, {40, "C"},
		{39, "F"}, {0, "F"},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("total_%d", tc.total), func(t *testing.T) {
			assert.Equal(t, tc.want, LetterGrade(tc.total))
		})
	}
}

func TestPercentRoundHalfUpAndZeroTotal(t *testing.T) {
	assert.Equal(t, 0, Percent(0, 0))
	assert.Equal(t, 0, Percent(5, 0))
	assert.Equal(t, 50, Percent(1, 2))
	assert.Equal(t, 67, Percent(2, 3))
	assert.Equal(t, 33, Percent(1, 3))
	assert.Equal(t, 13, Percent(1, 8)) // 12.5 rounds up
	assert.Equal(t, 100, Percent(7, 7))
}

func TestGPACreditWeighted(t *testing.T) {
	results := []models.SubjectResult{
		{Grade: "O", Credits: 4},
		{Grade: "B", Credits: 3},
		{Grade: "F", Credits: 2},
	}
	// (10*4 + 6*3 + 0*2) / 9 = 6.44
	assert.InDelta(t, 6.44, GPA(results), 0.001)
}

func TestGPAZeroCredits(t *testing.T) {
	assert.Equal(t, 0.0, GPA(nil))
	assert.Equal(t, 0.0, GPA([]models.SubjectResult{}))
}
