package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

var timeTextRegex = regexp.MustCompile(`^(\d{1,2}):(\d{2})(?::(\d{2}))?$`)

// TimeOfDay is a wall-clock time with minute precision
type TimeOfDay struct {
	Hour   int
	Minute int
}

// String renders the time as zero-padded HH:MM
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// ParseTimeText parses user input like "9:05", "09:05" or "09:05:00".
// Seconds, when present, must be 00.
func ParseTimeText(raw string) (TimeOfDay, error) {
	matches := timeTextRegex.FindStringSubmatch(strings.TrimSpace(raw))
	if matches == nil {
		return TimeOfDay{}, ErrInvalidTimeText
	}

	hour, err := strconv.Atoi(matches[1])
	if err != nil {
		return TimeOfDay{}, ErrInvalidTimeText
	}
	minute, err := strconv.Atoi(matches[2])
	if err != nil {
		return TimeOfDay{}, ErrInvalidTimeText
	}
	if hour < 0 || hour >= 24 || minute < 0 || minute >= 60 {
		return TimeOfDay{}, ErrInvalidTimeText
	}
	if matches[3] != "" && matches[3] != "00" {
		return TimeOfDay{}, ErrInvalidTimeText
	}

	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

// FormatTimeValue renders t as HH:MM, or 00:00 when t is nil
func FormatTimeValue(t *TimeOfDay) string {
	if t == nil {
		return TimeOfDay{}.String()
	}
	return t.String()
}

// TimeOf extracts the time of day of a stored timestamp in loc, dropping seconds
func TimeOf(t time.Time, loc *time.Location) TimeOfDay {
	if loc != nil {
		t = t.In(loc)
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}
}

// Combine attaches loc to the naive combination of date and time of day.
// This is how user-entered date and time pairs become stored timestamps.
func Combine(date time.Time, tod TimeOfDay, loc *time.Location) time.Time {
	if loc == nil {
		loc = date.Location()
	}
	return time.Date(date.Year(), date.Month(), date.Day(), tod.Hour, tod.Minute, 0, 0, loc)
}

// StartOfDay returns midnight of t's calendar date in loc
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	if loc != nil {
		t = t.In(loc)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DateString formats the calendar date of t as YYYY-MM-DD
func DateString(t time.Time) string {
	return t.Format(dateLayout)
}

// ParseDate parses YYYY-MM-DD into midnight of that date in loc
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	d, err := time.ParseInLocation(dateLayout, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return d, nil
}

// WeekStart returns midnight of the most recent Sunday on or before t
func WeekStart(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// DaysInRange counts calendar days in the inclusive range [start, end]
func DaysInRange(start, end time.Time) int {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	if e.Before(s) {
		return 0
	}
	return int(e.Sub(s).Hours()/24) + 1
}
