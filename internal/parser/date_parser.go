package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/balkashynov/daybook/internal/timeutil"
)

var (
	slashDateRegex = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	agoRegex       = regexp.MustCompile(`^(\d+)\s+(day|days|week|weeks)\s+ago$`)
)

// ParseDate parses the date formats accepted by --date, --from and --to flags.
// Supported formats:
// - YYYY-MM-DD (e.g., "2024-01-10")
// - dd/mm/yyyy (e.g., "10/01/2024")
// - today, yesterday
// - X days ago, X weeks ago
//
// The result is midnight of that date in now's location.
func ParseDate(input string, now time.Time) (time.Time, error) {
	input = strings.ToLower(strings.TrimSpace(input))
	loc := now.Location()
	today := timeutil.StartOfDay(now, loc)

	switch input {
	case "", "today":
		return today, nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	}

	if d, err := timeutil.ParseDate(input, loc); err == nil {
		return d, nil
	}

	if d, err := parseSlashDate(input, loc); err == nil {
		return d, nil
	}

	if d, err := parseAgo(input, today); err == nil {
		return d, nil
	}

	return time.Time{}, fmt.Errorf("invalid date %q. Use: YYYY-MM-DD, dd/mm/yyyy, today, yesterday, X days ago", input)
}

// parseSlashDate parses dd/mm/yyyy format
func parseSlashDate(input string, loc *time.Location) (time.Time, error) {
	matches := slashDateRegex.FindStringSubmatch(input)
	if len(matches) != 4 {
		return time.Time{}, fmt.Errorf("invalid date format")
	}

	day, _ := strconv.Atoi(matches[1])
	month, _ := strconv.Atoi(matches[2])
	year, _ := strconv.Atoi(matches[3])

	if month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("month must be between 1 and 12")
	}

	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)

	// Check if date is valid (handles leap years, etc.)
	if d.Day() != day || d.Month() != time.Month(month) || d.Year() != year {
		return time.Time{}, fmt.Errorf("invalid date")
	}

	return d, nil
}

// parseAgo parses relative formats like "3 days ago"
func parseAgo(input string, today time.Time) (time.Time, error) {
	matches := agoRegex.FindStringSubmatch(input)
	if len(matches) != 3 {
		return time.Time{}, fmt.Errorf("invalid relative date format")
	}

	amount, err := strconv.Atoi(matches[1])
	if err != nil || amount > 3660 {
		return time.Time{}, fmt.Errorf("invalid number")
	}

	switch matches[2] {
	case "week", "weeks":
		return today.AddDate(0, 0, -7*amount), nil
	default:
		return today.AddDate(0, 0, -amount), nil
	}
}

// ClampRange collapses a range whose start is after its end to the start day.
// The bool reports whether clamping happened.
func ClampRange(start, end time.Time) (time.Time, time.Time, bool) {
	if start.After(end) {
		return start, start, true
	}
	return start, end, false
}
