package calendar

import "time"

// IsLeapYear applies the Gregorian rule.
func IsLeapYear(y int) bool {
	return y%4 == 0 && y%100 != 0 || y%400 == 0
}

// DaysInMonth returns the length of month m (1..12) in year y, or 0 for an
// invalid month.
func DaysInMonth(y, m int) int {
	switch m {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	case 2:
		if IsLeapYear(y) {
			return 29
		}
		return 28
	default:
		return 0
	}
}

// ClampDay keeps d inside 1..DaysInMonth(y, m).
func ClampDay(y, m, d int) int {
	if d < 1 {
		return 1
	}
	if max := DaysInMonth(y, m); d > max {
		return max
	}
	return d
}

// Date builds a midnight time in loc (UTC when nil).
func Date(y, m, d int, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, loc)
}

// Truncate drops the time of day, keeping t's location.
func Truncate(t time.Time) time.Time {
	return Date(t.Year(), int(t.Month()), t.Day(), t.Location())
}
