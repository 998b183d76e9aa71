package service

import (
	"fmt"
	"time"
)

const totalSemesters = 8

// CurrentSemester derives the semester label a batch is in at the given
// instant, counting six-month halves from the batch start date. The result
// is clamped to the programme's first and last semesters, so a batch that
// has not started yet reads "1-1" and a finished one reads "4-2".
func CurrentSemester(startDate, now time.Time) string {
	months := (now.Year()-startDate.Year())*12 + int(now.Month()) - int(startDate.Month())
	index := months / 6
	if index < 0 {
		index = 0
	}
	if index > totalSemesters-1 {
		index = totalSemesters - 1
	}
	year := index/2 + 1
	half := index%2 + 1
	return fmt.Sprintf("%d-%d", year, half)
}
