package repository

import (
	"testing"
	"time"
)

func TestMonthRange(t *testing.T) {
	cases := []struct {
		in         time.Time
		start, end string
	}{
		{time.Date(2026, time.October, 16, 15, 4, 0, 0, time.UTC), "2026-10-01", "2026-11-01"},
		{time.Date(2026, time.December, 31, 23, 59, 0, 0, time.UTC), "2026-12-01", "2027-01-01"},
		{time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC), "2024-02-01", "2024-03-01"},
	}
	for _, tc := range cases {
		s, e := MonthRange(tc.in)
		if s.Format("2006-01-02") != tc.start || e.Format("2006-01-02") != tc.end {
			t.Fatalf("in=%v got=[%v,%v)", tc.in, s, e)
		}
	}
}
