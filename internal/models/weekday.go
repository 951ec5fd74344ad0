package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// WeekDay is a day of the week, Monday=1 through Sunday=7. The ordering is
// used for rendering schedules and is independent of time.Weekday's
// Sunday-first numbering.
type WeekDay int

const (
	Monday WeekDay = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekDayNames = map[WeekDay]string{
	Monday:    "Monday",
	Tuesday:   "Tuesday",
	Wednesday: "Wednesday",
	Thursday:  "Thursday",
	Friday:    "Friday",
	Saturday:  "Saturday",
	Sunday:    "Sunday",
}

func (w WeekDay) String() string {
	if name, ok := weekDayNames[w]; ok {
		return name
	}
	return fmt.Sprintf("WeekDay(%d)", int(w))
}

func (w WeekDay) ShortName() string {
	if name, ok := weekDayNames[w]; ok {
		return name[:3]
	}
	return "???"
}

func (w WeekDay) Valid() bool {
	return w >= Monday && w <= Sunday
}

// WeekDayFromTime maps a calendar date to its WeekDay. time.Weekday is
// numeric and locale-independent, so the mapping cannot drift with the
// user's locale.
func WeekDayFromTime(t time.Time) WeekDay {
	if t.Weekday() == time.Sunday {
		return Sunday
	}
	return WeekDay(int(t.Weekday()))
}

// ParseWeekDay accepts long names, three-letter abbreviations, and numbers
// 1-7 (Monday=1).
func ParseWeekDay(s string) (WeekDay, error) {
	trimmed := strings.TrimSpace(strings.ToLower(s))
	for wd, name := range weekDayNames {
		if trimmed == strings.ToLower(name) || trimmed == strings.ToLower(name[:3]) {
			return wd, nil
		}
	}
	if num, err := strconv.Atoi(trimmed); err == nil {
		wd := WeekDay(num)
		if wd.Valid() {
			return wd, nil
		}
	}
	return 0, fmt.Errorf("invalid weekday: %q", s)
}

// ParseSchedule parses a comma-separated weekday list into a normalized
// schedule. An empty input yields an empty (irregular event) schedule.
func ParseSchedule(s string) ([]WeekDay, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var schedule []WeekDay
	for _, part := range strings.Split(s, ",") {
		wd, err := ParseWeekDay(part)
		if err != nil {
			return nil, err
		}
		schedule = append(schedule, wd)
	}
	return NormalizeSchedule(schedule), nil
}

// NormalizeSchedule enforces set semantics: duplicates removed, days sorted
// Monday-first. Schedules are stored list-like but must behave as sets.
func NormalizeSchedule(schedule []WeekDay) []WeekDay {
	seen := make(map[WeekDay]bool, len(schedule))
	var out []WeekDay
	for wd := Monday; wd <= Sunday; wd++ {
		seen[wd] = false
	}
	for _, wd := range schedule {
		if wd.Valid() {
			seen[wd] = true
		}
	}
	for wd := Monday; wd <= Sunday; wd++ {
		if seen[wd] {
			out = append(out, wd)
		}
	}
	return out
}

// ScheduleContains reports whether the schedule includes the given day.
func ScheduleContains(schedule []WeekDay, day WeekDay) bool {
	for _, wd := range schedule {
		if wd == day {
			return true
		}
	}
	return false
}

// FormatSchedule renders a schedule as short names, e.g. "Mon,Wed,Fri".
func FormatSchedule(schedule []WeekDay) string {
	if len(schedule) == 0 {
		return "irregular"
	}
	names := make([]string, 0, len(schedule))
	for _, wd := range schedule {
		names = append(names, wd.ShortName())
	}
	return strings.Join(names, ",")
}
