package domain

import "time"

// DateLayout is the calendar-day format used in storage and on the CLI.
const DateLayout = "2006-01-02"

// Day truncates t to its calendar day at UTC midnight. The calendar day is
// taken in t's own location so a local 23:30 stays on the same date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of calendar days from a to b (negative when
// b is before a).
func DaysBetween(a, b time.Time) int {
	return civilDay(b) - civilDay(a)
}

// civilDay numbers t's calendar day from 1970-01-01 in the proleptic
// Gregorian calendar. Counting from y/m/d avoids time.Duration, which
// saturates after about 292 years.
func civilDay(t time.Time) int {
	y, m, d := t.Date()
	if m <= time.February {
		y--
	}
	era := y / 400
	if y%400 < 0 {
		era--
	}
	yoe := y - era*400
	mp := (int(m) + 9) % 12
	doy := (153*mp+2)/5 + d - 1
	doe := yoe*365 + yoe/4 - yoe/100 + doy
	return era*146097 + doe - 719468
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// MustDate parses a YYYY-MM-DD string and panics on error. Intended for tests
// and fixed literals.
func MustDate(s string) time.Time {
	t, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

// TimePtr returns a pointer to t.
func TimePtr(t time.Time) *time.Time {
	return &t
}
