package models

import (
	"fmt"
	"time"
)

// DayFormat is the wire format for calendar days.
const DayFormat = "2006-01-02"

// Day is a calendar day in YYYY-MM-DD form. Completion records are keyed by
// Day, never by a timestamp, so time-of-day can never leak into the ledger.
type Day string

// DayOf truncates a timestamp to its calendar day.
func DayOf(t time.Time) Day {
	return Day(t.Format(DayFormat))
}

// ParseDay validates a YYYY-MM-DD string.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse(DayFormat, s)
	if err != nil {
		return "", fmt.Errorf("invalid date %q, use YYYY-MM-DD: %w", s, err)
	}
	return DayOf(t), nil
}

// Time returns the start of the day. Invalid days return the zero time.
func (d Day) Time() time.Time {
	t, err := time.Parse(DayFormat, string(d))
	if err != nil {
		return time.Time{}
	}
	return t
}

func (d Day) Valid() bool {
	_, err := time.Parse(DayFormat, string(d))
	return err == nil
}

// WeekDay resolves the day's weekday. The boolean is false for malformed
// days, which callers treat as "nothing scheduled" rather than an error.
func (d Day) WeekDay() (WeekDay, bool) {
	t, err := time.Parse(DayFormat, string(d))
	if err != nil {
		return 0, false
	}
	return WeekDayFromTime(t), true
}

// AddDays returns the day shifted by n calendar days.
func (d Day) AddDays(n int) Day {
	return DayOf(d.Time().AddDate(0, 0, n))
}

// After reports whether d is strictly after other. The YYYY-MM-DD encoding
// makes lexicographic order agree with calendar order.
func (d Day) After(other Day) bool {
	return string(d) > string(other)
}
