package core

import (
	"fmt"
	"time"
)

// dateLayout is the ISO date format used for every date field in the system.
const dateLayout = "2006-01-02"

// FormatDate renders a time as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// ParseDate parses a YYYY-MM-DD string. Malformed dates are a boundary
// validation error; core logic assumes dates already passed this check.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return t, nil
}

// truncateToDay drops the time-of-day component.
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// daysBetween returns the whole-day difference to − from. Negative when
// to precedes from.
func daysBetween(from, to time.Time) int {
	return int(truncateToDay(to).Sub(truncateToDay(from)).Hours() / 24)
}

// startOfWeek returns the Sunday on or before t. The week convention is
// Sunday-start, matching time.Weekday's day-0 index.
func startOfWeek(t time.Time) time.Time {
	day := truncateToDay(t)
	return day.AddDate(0, 0, -int(day.Weekday()))
}
