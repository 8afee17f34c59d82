package services

import (
	"time"
)

// DateLayout is the wire format of every calendar date in the system.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD date at UTC midnight.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// CalculateWeekNumber returns the 1-based OJT week that date falls in,
// counted from ojtStart. Dates before the start, and a missing or unparsable
// start, are week 1.
func CalculateWeekNumber(date, ojtStart string) int {
	if ojtStart == "" {
		return 1
	}
	start, err := ParseDate(ojtStart)
	if err != nil {
		return 1
	}
	current, err := ParseDate(date)
	if err != nil {
		return 1
	}
	if current.Before(start) {
		return 1
	}
	days := int(current.Sub(start).Hours() / 24)
	return days/7 + 1
}

func scheduleIncludes(schedule []int, day time.Weekday) bool {
	for _, d := range schedule {
		if d == int(day) {
			return true
		}
	}
	return false
}

// validSchedule reports whether every entry is a weekday number.
func validSchedule(schedule []int) bool {
	for _, d := range schedule {
		if d < int(time.Sunday) || d > int(time.Saturday) {
			return false
		}
	}
	return true
}

// today returns the current calendar date in loc, as a UTC-midnight time.
func today(now time.Time, loc *time.Location) time.Time {
	if loc != nil {
		now = now.In(loc)
	}
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
