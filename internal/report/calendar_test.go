package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthsCoversFullYear(t *testing.T) {
	months := Months(2025)
	require.Len(t, months, 12)

	for i, md := range months {
		assert.Equal(t, 2025, md.Month.Year())
		assert.Equal(t, time.Month(i+1), md.Month.Month())
		assert.Equal(t, 1, md.Month.Day())
	}
}

func TestWorkingDays(t *testing.T) {
	tests := []struct {
		year int
		m    time.Month
		want int
	}{
		{2025, time.January, 23},
		{2025, time.February, 20},
		{2025, time.March, 21},
		{2025, time.April, 22},
		{2025, time.December, 23},
		{2024, time.February, 21}, // leap year
	}
	for _, tt := range tests {
		got := Months(tt.year)[tt.m-1]
		assert.Equal(t, tt.want, got.WorkingDays, "%v %d", tt.m, tt.year)
	}
}

func TestWorkingDaysInvariant(t *testing.T) {
	for _, year := range []int{2020, 2023, 2024, 2025, 2026} {
		for _, md := range Months(year) {
			daysInMonth := endOfMonth(md.Month).Day()
			assert.LessOrEqual(t, md.WorkingDays, daysInMonth)
			weekendDays := daysInMonth - md.WorkingDays
			assert.Contains(t, []int{8, 9, 10}, weekendDays,
				"%v %d has %d weekend days", md.Month.Month(), year, weekendDays)
		}
	}
}

func TestEndOfMonth(t *testing.T) {
	assert.Equal(t, 29, endOfMonth(time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC)).Day())
	assert.Equal(t, 28, endOfMonth(time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)).Day())
	assert.Equal(t, 31, endOfMonth(time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC)).Day())
}
