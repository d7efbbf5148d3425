package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPeriodYearNavigation(t *testing.T) {
	p := Period{Year: 2025, Month: time.June}
	assert.Equal(t, 2024, p.PrevYear().Year)
	assert.Equal(t, 2026, p.NextYear().Year)
	// month is untouched by year navigation
	assert.Equal(t, time.June, p.NextYear().Month)
}

func TestPeriodMonthRollover(t *testing.T) {
	jan := Period{Year: 2025, Month: time.January}
	assert.Equal(t, Period{Year: 2024, Month: time.December}, jan.PrevMonth())

	dec := Period{Year: 2025, Month: time.December}
	assert.Equal(t, Period{Year: 2026, Month: time.January}, dec.NextMonth())

	jun := Period{Year: 2025, Month: time.June}
	assert.Equal(t, Period{Year: 2025, Month: time.May}, jun.PrevMonth())
	assert.Equal(t, Period{Year: 2025, Month: time.July}, jun.NextMonth())
}

func TestPeriodCurrentMonth(t *testing.T) {
	now := time.Date(2025, time.September, 14, 10, 0, 0, 0, time.UTC)
	p := Period{Year: 1999, Month: time.February}
	assert.Equal(t, Period{Year: 2025, Month: time.September}, p.CurrentMonth(now))
}

func TestPeriodUnbounded(t *testing.T) {
	p := Period{Year: 1, Month: time.January}
	for i := 0; i < 24; i++ {
		p = p.PrevMonth()
	}
	assert.Equal(t, -1, p.Year)
}
