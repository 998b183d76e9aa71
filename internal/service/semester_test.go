package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCurrentSemester(t *testing.T) {
	start := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		now  time.Time
		want string
	}{
		{"first day", start, "1-1"},
		{"five months in", start.AddDate(0, 5, 0), "1-1"},
		{"six months in", start.AddDate(0, 6, 0), "1-2"},
		{"one year in", start.AddDate(1, 0, 0), "2-1"},
		{"eighteen months in", start.AddDate(1, 6, 0), "2-2"},
		{"three and a half years", start.AddDate(3, 6, 0), "4-2"},
		{"past programme end clamps", start.AddDate(6, 0, 0), "4-2"},
		{"before start clamps", start.AddDate(0, -3, 0), "1-1"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CurrentSemester(start, tc.now))
		})
	}
}
