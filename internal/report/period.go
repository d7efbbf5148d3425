// report/period.go - Time-period navigation for annual and monthly views
package report

import "time"

// Period identifies the year (annual views) or the month of a year
// (analytics and time-tracking views) a view is pinned to. Values are
// unbounded; no minimum or maximum year is enforced.
type Period struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

// PeriodOf returns the period containing t.
func PeriodOf(t time.Time) Period {
	return Period{Year: t.Year(), Month: t.Month()}
}

// PrevYear moves one year back.
func (p Period) PrevYear() Period {
	p.Year--
	return p
}

// NextYear moves one year forward.
func (p Period) NextYear() Period {
	p.Year++
	return p
}

// PrevMonth moves one month back, rolling into December of the
// previous year from January.
func (p Period) PrevMonth() Period {
	if p.Month == time.January {
		return Period{Year: p.Year - 1, Month: time.December}
	}
	p.Month--
	return p
}

// NextMonth moves one month forward, rolling into January of the next
// year from December.
func (p Period) NextMonth() Period {
	if p.Month == time.December {
		return Period{Year: p.Year + 1, Month: time.January}
	}
	p.Month++
	return p
}

// CurrentMonth resets the period to the month containing now.
func (p Period) CurrentMonth(now time.Time) Period {
	return PeriodOf(now)
}
