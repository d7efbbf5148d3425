// report/calendar.go - Calendar builder
package report

import "time"

// MonthDescriptor is one month of the report year.
type MonthDescriptor struct {
	Month       time.Time `json:"month"`        // first calendar day
	WorkingDays int       `json:"working_days"` // Monday-Friday days, holidays not excluded
}

// Months returns descriptors for January through December of year.
func Months(year int) []MonthDescriptor {
	months := make([]MonthDescriptor, 0, 12)
	for m := time.January; m <= time.December; m++ {
		first := time.Date(year, m, 1, 0, 0, 0, 0, time.UTC)
		months = append(months, MonthDescriptor{
			Month:       first,
			WorkingDays: workingDays(first),
		})
	}
	return months
}

// workingDays counts the weekdays of the month starting at first.
func workingDays(first time.Time) int {
	count := 0
	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		switch d.Weekday() {
		case time.Saturday, time.Sunday:
		default:
			count++
		}
	}
	return count
}

// endOfMonth returns the last calendar day of the month containing t.
func endOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).AddDate(0, 1, -1)
}
